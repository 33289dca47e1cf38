package atlas

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/phobologic/repoatlas/internal/discover"
	"github.com/phobologic/repoatlas/internal/domain"
	"github.com/phobologic/repoatlas/internal/graph"
	"github.com/phobologic/repoatlas/internal/lang"
	"github.com/phobologic/repoatlas/internal/model"
	"github.com/phobologic/repoatlas/internal/parse"
	"github.com/phobologic/repoatlas/internal/ranking"
	"github.com/phobologic/repoatlas/internal/render"
)

// GeneratedContent holds the rendered documents and proposed annotations.
// The Existing fields carry the current on-disk documents, nil when absent.
type GeneratedContent struct {
	ClaudeMD          string            `json:"claudeMd"`
	RepoIndex         string            `json:"repoIndex"`
	InlineTags        []model.InlineTag `json:"inlineTags"`
	ExistingClaudeMD  *string           `json:"existingClaudeMd"`
	ExistingRepoIndex *string           `json:"existingRepoIndex"`
}

// GenerateResult is the output of one scan.
type GenerateResult struct {
	Scan    *model.ScanResult `json:"scanResult"`
	Content GeneratedContent  `json:"generatedContent"`
}

// Generate scans the project and renders its atlas without writing anything.
// A failure in any phase aborts the scan; no partial result is returned.
func (e *Engine) Generate(projectPath string, settings model.Settings) (*GenerateResult, error) {
	root, err := resolveProject(projectPath)
	if err != nil {
		return nil, err
	}
	if !settings.Sensitivity.Valid() {
		return nil, fmt.Errorf("invalid sensitivity %q", settings.Sensitivity)
	}

	start := time.Now()
	logger := e.logger.With("project", filepath.Base(root))

	e.progress(Progress{Phase: PhaseEnumerating, Message: "Listing source files"})
	listing, err := discover.FilesWith(root, settings.ExcludePatterns, e.strategies...)
	if err != nil {
		return nil, fmt.Errorf("enumerating files: %w", err)
	}
	logger.Debug("enumerated files", "source", listing.Source, "count", len(listing.Files))

	files := e.analyze(root, listing.Files)

	e.progress(Progress{Phase: PhaseInferring, Current: 0, Total: len(files), Message: "Building dependency graph"})
	deps := graph.BuildGraph(files)
	centrality := graph.Rank(files, deps)

	e.progress(Progress{Phase: PhaseInferring, Current: len(files), Total: len(files), Message: "Inferring domains"})
	domains := domain.Infer(files, settings.Sensitivity)

	tags := ranking.SelectTags(files, domains, centrality, ranking.Options{MaxTags: settings.MaxInlineTags})

	scan := &model.ScanResult{
		ProjectName:       filepath.Base(root),
		Files:             files,
		TotalFiles:        len(files),
		Languages:         make(map[lang.Language]int),
		Dependencies:      deps,
		Domains:           domains,
		InlineTags:        tags,
		Centrality:        centrality,
		EnumerationSource: string(listing.Source),
	}
	for i := range files {
		scan.TotalLines += files[i].Lines
		scan.Languages[files[i].Language]++
	}

	e.progress(Progress{Phase: PhaseGenerating, Message: "Rendering documents"})
	existingClaude := readOptional(filepath.Join(root, ClaudeMDName))
	existingIndex := readOptional(filepath.Join(root, filepath.FromSlash(RepoIndexName)))

	var base string
	if existingClaude != nil {
		base = *existingClaude
	}
	content := GeneratedContent{
		ClaudeMD:          render.ApplySection(base, render.Overview(scan)),
		RepoIndex:         render.Index(scan),
		InlineTags:        tags,
		ExistingClaudeMD:  existingClaude,
		ExistingRepoIndex: existingIndex,
	}

	scan.ScanDurationMs = time.Since(start).Milliseconds()
	logger.Info("scan complete",
		"files", scan.TotalFiles,
		"domains", len(domains),
		"dependencies", len(deps),
		"tags", len(tags),
		"duration", time.Duration(scan.ScanDurationMs)*time.Millisecond,
	)
	e.progress(Progress{Phase: PhaseDone, Current: len(files), Total: len(files), Message: "Done"})

	return &GenerateResult{Scan: scan, Content: content}, nil
}

// analyze reads and parses every listed file in order. Unreadable and
// oversized files are skipped.
func (e *Engine) analyze(root string, paths []string) []model.SourceFile {
	total := len(paths)
	files := make([]model.SourceFile, 0, total)

	e.progress(Progress{Phase: PhaseAnalyzing, Current: 0, Total: total, Message: "Analyzing files"})
	for i, rel := range paths {
		if i > 0 && i%ProgressInterval == 0 {
			e.progress(Progress{Phase: PhaseAnalyzing, Current: i, Total: total, Message: rel})
		}

		info, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			e.logger.Debug("skipping unreadable file", "path", rel, "err", err)
			continue
		}
		if info.Size() > e.maxFileSize {
			e.logger.Debug("skipping large file", "path", rel, "bytes", info.Size())
			continue
		}

		f, err := parse.File(root, rel)
		if err != nil {
			e.logger.Debug("skipping unreadable file", "path", rel, "err", err)
			continue
		}
		files = append(files, f)
	}
	e.progress(Progress{Phase: PhaseAnalyzing, Current: total, Total: total, Message: "Analysis complete"})

	return files
}
