// Package graph resolves relative imports into file-to-file dependency edges
// and computes file centrality with PageRank.
package graph

import (
	"math"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/phobologic/repoatlas/internal/model"
)

// SourceRootAlias is the internal source-root import prefix, as configured by
// bundler path aliases (`@/components/Button` → `src/components/Button`).
const (
	SourceRootAlias = "@/"
	SourceRoot      = "src/"
)

// lookup maps import-like keys to enumerated file paths.
type lookup map[string]string

// newLookup indexes every file by exact path, extensionless path, and bare
// filename stem. Path keys always win over stem keys; among stems, the first
// writer wins.
func newLookup(files []model.SourceFile) lookup {
	l := make(lookup, len(files)*3)
	for i := range files {
		p := files[i].RelPath
		l[p] = p
		l[stripExt(p)] = p
	}
	for i := range files {
		p := files[i].RelPath
		stem := stripExt(path.Base(p))
		if _, taken := l[stem]; !taken {
			l[stem] = p
		}
	}
	return l
}

// resolve returns the file an import resolves to, trying the resolved path,
// its index or package init file, and the resolved path without extension.
func (l lookup) resolve(resolved string) (string, bool) {
	for _, key := range []string{resolved, resolved + "/index", resolved + "/__init__", stripExt(resolved)} {
		if target, ok := l[key]; ok {
			return target, true
		}
	}
	return "", false
}

// IsRelative reports whether an import string refers to a project file.
// Anything else is an external package and never enters the graph.
func IsRelative(imp string) bool {
	return strings.HasPrefix(imp, ".") ||
		strings.HasPrefix(imp, "/") ||
		strings.HasPrefix(imp, SourceRootAlias)
}

// ResolveImport normalises an import relative to the importing file.
func ResolveImport(from, imp string) string {
	switch {
	case strings.HasPrefix(imp, SourceRootAlias):
		return path.Clean(SourceRoot + strings.TrimPrefix(imp, SourceRootAlias))
	case strings.HasPrefix(imp, "/"):
		return path.Clean(strings.TrimPrefix(imp, "/"))
	case dottedModule.MatchString(imp):
		return path.Join(path.Dir(from), dottedPath(imp))
	default:
		return path.Join(path.Dir(from), imp)
	}
}

// dottedModule matches package-relative module names such as `.utils` or
// `..core.models`.
var dottedModule = regexp.MustCompile(`^\.+[\w.]*$`)

// dottedPath turns a package-relative module name into a relative path. One
// leading dot is the importing package, each further dot its parent.
func dottedPath(imp string) string {
	rest := strings.TrimLeft(imp, ".")
	up := len(imp) - len(rest) - 1
	p := "." + strings.Repeat("/..", up)
	if rest == "" {
		return p
	}
	return p + "/" + strings.ReplaceAll(rest, ".", "/")
}

// BuildGraph creates dependency edges from resolvable relative imports.
// Self-edges are dropped and repeated imports of the same target accumulate
// on a single edge. Output is sorted by (From, To).
func BuildGraph(files []model.SourceFile) []model.CrossDependency {
	l := newLookup(files)

	type edgeKey struct{ from, to string }
	counts := make(map[edgeKey]int)

	for i := range files {
		fi := &files[i]
		for _, imp := range fi.Imports {
			if !IsRelative(imp) {
				continue
			}
			target, ok := l.resolve(ResolveImport(fi.RelPath, imp))
			if !ok || target == fi.RelPath {
				continue // unresolved or self-edge
			}
			counts[edgeKey{fi.RelPath, target}]++
		}
	}

	deps := make([]model.CrossDependency, 0, len(counts))
	for key, n := range counts {
		deps = append(deps, model.CrossDependency{From: key.from, To: key.to, ImportCount: n})
	}

	// Sort for deterministic output
	sort.Slice(deps, func(i, j int) bool {
		if deps[i].From != deps[j].From {
			return deps[i].From < deps[j].From
		}
		return deps[i].To < deps[j].To
	})

	return deps
}

// Rank applies PageRank to the dependency graph and returns a score per file.
// Scores sum to ~1; without edges every file gets the same score.
func Rank(files []model.SourceFile, deps []model.CrossDependency) map[string]float64 {
	if len(files) == 0 {
		return map[string]float64{}
	}

	nodes := make(map[string]struct{}, len(files))
	for i := range files {
		nodes[files[i].RelPath] = struct{}{}
	}

	if len(deps) == 0 {
		uniform := 1.0 / float64(len(files))
		ranks := make(map[string]float64, len(files))
		for node := range nodes {
			ranks[node] = uniform
		}
		return ranks
	}

	// Edge from source to target means source imports target; ImportCount
	// weights the edge.
	outEdges := make(map[string][]model.CrossDependency)
	outWeight := make(map[string]float64)
	for _, d := range deps {
		outEdges[d.From] = append(outEdges[d.From], d)
		outWeight[d.From] += float64(d.ImportCount)
	}

	return pageRank(nodes, outEdges, outWeight, 0.85, 100, 1e-6)
}

func pageRank(
	nodes map[string]struct{},
	outEdges map[string][]model.CrossDependency,
	outWeight map[string]float64,
	alpha float64,
	maxIter int,
	tol float64,
) map[string]float64 {
	n := len(nodes)
	// Iterate in sorted order so floating-point sums are reproducible.
	order := sortedKeys(nodes)

	rank := make(map[string]float64, n)
	initial := 1.0 / float64(n)
	for _, node := range order {
		rank[node] = initial
	}

	teleport := (1.0 - alpha) / float64(n)

	for iter := 0; iter < maxIter; iter++ {
		newRank := make(map[string]float64, n)

		// Dangling node contribution (nodes with no outgoing edges)
		var danglingSum float64
		for _, node := range order {
			if outWeight[node] == 0 {
				danglingSum += rank[node]
			}
		}
		danglingContrib := alpha * danglingSum / float64(n)

		for _, node := range order {
			newRank[node] = teleport + danglingContrib
		}

		// Distribute rank through edges
		for _, src := range order {
			w := outWeight[src]
			if w == 0 {
				continue
			}
			for _, d := range outEdges[src] {
				if _, known := nodes[d.To]; known {
					newRank[d.To] += alpha * rank[src] * float64(d.ImportCount) / w
				}
			}
		}

		// Check convergence
		var diff float64
		for _, node := range order {
			diff += math.Abs(newRank[node] - rank[node])
		}

		rank = newRank

		if diff < tol {
			break
		}
	}

	return rank
}

func stripExt(p string) string {
	return strings.TrimSuffix(p, path.Ext(p))
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
