// Package ranking scores files for entrypoint worthiness and proposes inline
// annotations for the best candidates.
package ranking

import (
	"path"
	"slices"
	"sort"
	"strings"

	"github.com/phobologic/repoatlas/internal/annotate"
	"github.com/phobologic/repoatlas/internal/domain"
	"github.com/phobologic/repoatlas/internal/model"
)

// Additive score for each heuristic.
const (
	ScoreIndexEntrypoint = 5
	ScoreManyExports     = 3
	ScoreManager         = 4
	ScoreAppRoot         = 5
	ScoreIPCContract     = 5
	ScoreLargeFile       = 1
)

// Rule thresholds.
const (
	ManyExportsThreshold = 5
	LargeFileThreshold   = 200
)

// Reason labels recorded on a tag.
const (
	ReasonIndexEntrypoint = "index-entrypoint"
	ReasonManyExports     = "many-exports"
	ReasonManager         = "manager"
	ReasonAppRoot         = "app-root"
	ReasonIPCContract     = "ipc-contract"
	ReasonLargeFile       = "large-file"
)

// Options tunes SelectTags.
type Options struct {
	// MaxTags caps the proposals; zero or less proposes nothing.
	MaxTags int
	// Existing returns the annotation already present in the file at an
	// absolute path, or nil. Defaults to annotate.ReadExisting.
	Existing func(absPath string) (*string, error)
}

type candidate struct {
	file    *model.SourceFile
	score   int
	reasons []string
	rank    float64
}

// SelectTags scores every file, drops those scoring zero, and returns at most
// MaxTags proposals ordered by score, then centrality, then path. A file that
// already carries an annotation is returned deselected.
func SelectTags(
	files []model.SourceFile,
	domains []model.Domain,
	centrality map[string]float64,
	opts Options,
) []model.InlineTag {
	maxTags := opts.MaxTags
	if maxTags <= 0 {
		return nil
	}
	existing := opts.Existing
	if existing == nil {
		existing = annotate.ReadExisting
	}

	var cands []candidate
	for i := range files {
		score, reasons := Score(&files[i])
		if score == 0 {
			continue
		}
		cands = append(cands, candidate{
			file:    &files[i],
			score:   score,
			reasons: reasons,
			rank:    centrality[files[i].RelPath],
		})
	}

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		if cands[i].rank != cands[j].rank {
			return cands[i].rank > cands[j].rank
		}
		return cands[i].file.RelPath < cands[j].file.RelPath
	})
	if len(cands) > maxTags {
		cands = cands[:maxTags]
	}

	names := domainNames(domains)
	tags := make([]model.InlineTag, 0, len(cands))
	for _, c := range cands {
		// An unreadable file is treated as unannotated; the write step
		// surfaces the real error.
		current, err := existing(c.file.AbsPath)
		if err != nil {
			current = nil
		}
		tags = append(tags, model.InlineTag{
			FilePath:     c.file.AbsPath,
			RelPath:      c.file.RelPath,
			CurrentTag:   current,
			SuggestedTag: Suggest(names[c.file.RelPath], c.reasons),
			Reason:       strings.Join(c.reasons, ", "),
			Score:        c.score,
			Selected:     current == nil,
		})
	}
	return tags
}

// Score evaluates every heuristic independently and returns the total with
// the labels of the rules that fired.
func Score(f *model.SourceFile) (int, []string) {
	var score int
	var reasons []string
	add := func(ok bool, points int, reason string) {
		if ok {
			score += points
			reasons = append(reasons, reason)
		}
	}

	add(domain.IsEntrypoint(f.RelPath), ScoreIndexEntrypoint, ReasonIndexEntrypoint)
	add(len(f.Exports) > ManyExportsThreshold, ScoreManyExports, ReasonManyExports)
	add(domain.IsManager(f.RelPath), ScoreManager, ReasonManager)
	add(IsAppRoot(f.RelPath), ScoreAppRoot, ReasonAppRoot)
	add(domain.IsIPCContract(f.RelPath), ScoreIPCContract, ReasonIPCContract)
	add(f.Lines > LargeFileThreshold, ScoreLargeFile, ReasonLargeFile)

	return score, reasons
}

// IsAppRoot reports whether a path names an application-root component.
func IsAppRoot(relPath string) bool {
	base := path.Base(relPath)
	switch base {
	case "main.tsx", "main.jsx":
		return true
	}
	return domain.Stem(base) == "App"
}

// roles describes a file by the most specific rule that fired.
var roles = []struct {
	reason string
	role   string
}{
	{ReasonAppRoot, "application root"},
	{ReasonIPCContract, "IPC contract"},
	{ReasonIndexEntrypoint, "entrypoint"},
	{ReasonManager, "manager"},
	{ReasonManyExports, "API surface"},
	{ReasonLargeFile, "core module"},
}

// Suggest builds the annotation text for a file in domainName.
func Suggest(domainName string, reasons []string) string {
	role := "module"
	for _, r := range roles {
		if slices.Contains(reasons, r.reason) {
			role = r.role
			break
		}
	}
	if domainName == "" {
		return domain.Capitalize(role)
	}
	return domainName + " " + role
}

// HubFiles returns up to n paths with the highest centrality, ties broken by
// path. Files with zero centrality are never hubs.
func HubFiles(centrality map[string]float64, n int) []string {
	paths := make([]string, 0, len(centrality))
	for p, r := range centrality {
		if r > 0 {
			paths = append(paths, p)
		}
	}
	sort.Slice(paths, func(i, j int) bool {
		ri, rj := centrality[paths[i]], centrality[paths[j]]
		if ri != rj {
			return ri > rj
		}
		return paths[i] < paths[j]
	})
	if n >= 0 && len(paths) > n {
		paths = paths[:n]
	}
	return paths
}

func domainNames(domains []model.Domain) map[string]string {
	names := make(map[string]string)
	for i := range domains {
		for j := range domains[i].Files {
			names[domains[i].Files[j].RelPath] = domains[i].Name
		}
	}
	return names
}
