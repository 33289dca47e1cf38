// Package domain clusters source files into named, disjoint domains.
//
// Inference escalates through three tiers gated by sensitivity. Tier 1 fixes
// membership from directory layout; tiers 2 and 3 only enrich or relabel the
// domains it produced.
package domain

import (
	"path"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/phobologic/repoatlas/internal/model"
)

// RootKey is the domain key for files at the project root.
const RootKey = "root"

// layerDirs are the directory names that introduce a layered subtree.
var layerDirs = map[string]struct{}{
	"main":     {},
	"renderer": {},
	"preload":  {},
	"shared":   {},
}

// Infer partitions files into domains. Input order decides first-encounter
// order, so callers pass files sorted by path for deterministic output.
func Infer(files []model.SourceFile, sensitivity model.Sensitivity) []model.Domain {
	domains := byDirectory(files)
	if len(domains) == 0 {
		return nil
	}

	if sensitivity == model.SensitivityMedium || sensitivity == model.SensitivityHigh {
		attachIPCPrefixes(domains)
	}
	if sensitivity == model.SensitivityHigh {
		renameByConvention(domains, files)
	}

	return domains
}

// Key returns the tier-1 domain key of a forward-slash relative path.
func Key(relPath string) string {
	parts := strings.Split(relPath, "/")
	if len(parts) == 1 {
		return RootKey
	}

	base := -1
	if _, ok := layerDirs[parts[0]]; ok {
		base = 0
	} else if parts[0] == "src" {
		if _, ok := layerDirs[parts[1]]; ok {
			base = 1
		}
	}
	if base < 0 {
		return parts[0]
	}

	// A file directly inside the layer dir belongs to the layer itself.
	if len(parts) > base+2 {
		return parts[base+1]
	}
	return parts[base]
}

// byDirectory is tier 1.
func byDirectory(files []model.SourceFile) []model.Domain {
	var order []string
	groups := make(map[string][]model.SourceFile)
	for i := range files {
		k := Key(files[i].RelPath)
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], files[i])
	}

	domains := make([]model.Domain, 0, len(order))
	for _, k := range order {
		domains = append(domains, newDomain(k, groups[k]))
	}

	sort.SliceStable(domains, func(i, j int) bool {
		return len(domains[i].Files) > len(domains[j].Files)
	})
	return domains
}

func newDomain(key string, files []model.SourceFile) model.Domain {
	d := model.Domain{
		Key:           key,
		Name:          Capitalize(key),
		Files:         files,
		MainFiles:     []string{},
		RendererFiles: []string{},
		SharedFiles:   []string{},
		Entrypoints:   []string{},
	}
	for i := range files {
		f := &files[i]
		switch f.Layer {
		case model.LayerMain:
			d.MainFiles = append(d.MainFiles, f.RelPath)
		case model.LayerRenderer:
			d.RendererFiles = append(d.RendererFiles, f.RelPath)
		case model.LayerShared:
			d.SharedFiles = append(d.SharedFiles, f.RelPath)
		}
		if IsEntrypoint(f.RelPath) {
			d.Entrypoints = append(d.Entrypoints, f.RelPath)
		}
	}
	sort.Strings(d.MainFiles)
	sort.Strings(d.RendererFiles)
	sort.Strings(d.SharedFiles)
	sort.Strings(d.Entrypoints)
	return d
}

// IsEntrypoint reports whether a path names an index module.
func IsEntrypoint(relPath string) bool {
	return Stem(relPath) == "index"
}

// Stem returns the file name without directory or extension.
func Stem(relPath string) string {
	base := path.Base(relPath)
	return strings.TrimSuffix(base, path.Ext(base))
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
