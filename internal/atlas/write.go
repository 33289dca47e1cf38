package atlas

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/phobologic/repoatlas/internal/annotate"
	"github.com/phobologic/repoatlas/internal/lang"
	"github.com/phobologic/repoatlas/internal/model"
	"github.com/phobologic/repoatlas/internal/render"
)

// WriteResult reports what Write persisted.
type WriteResult struct {
	ClaudeMDWritten   bool `json:"claudeMdWritten"`
	RepoIndexWritten  bool `json:"repoIndexWritten"`
	InlineTagsWritten int  `json:"inlineTagsWritten"`
}

// Write persists the documents and every selected inline tag. Each item is
// written atomically and independently; a failed item is logged and skipped.
// Empty documents are not written.
func (e *Engine) Write(projectPath, claudeMD, repoIndex string, tags []model.InlineTag) (WriteResult, error) {
	var res WriteResult

	root, err := resolveProject(projectPath)
	if err != nil {
		return res, err
	}

	if claudeMD != "" {
		res.ClaudeMDWritten = e.writeDoc(filepath.Join(root, ClaudeMDName), claudeMD)
	}
	if repoIndex != "" {
		res.RepoIndexWritten = e.writeDoc(filepath.Join(root, filepath.FromSlash(RepoIndexName)), repoIndex)
	}

	for i := range tags {
		t := &tags[i]
		if !t.Selected {
			continue
		}
		if err := e.writeTag(root, t); err != nil {
			e.logger.Warn("failed to write inline tag", "path", t.RelPath, "err", err)
			continue
		}
		res.InlineTagsWritten++
	}

	e.logger.Info("atlas written",
		"claude_md", res.ClaudeMDWritten,
		"repo_index", res.RepoIndexWritten,
		"inline_tags", res.InlineTagsWritten,
	)
	return res, nil
}

func (e *Engine) writeDoc(path, content string) bool {
	if err := e.writer.WriteFile(path, []byte(content)); err != nil {
		e.logger.Warn("failed to write document", "path", path, "err", err)
		return false
	}
	return true
}

func (e *Engine) writeTag(root string, t *model.InlineTag) error {
	target, err := tagPath(root, t)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(target)
	if err != nil {
		return fmt.Errorf("reading %s: %w", t.RelPath, err)
	}
	l := lang.ForPath(target)
	if !annotate.Placeable(content, l) {
		return fmt.Errorf("%s has no leading %s open tag to hold an annotation", t.RelPath, l)
	}
	line := annotate.Line(l, t.SuggestedTag)
	return e.writer.WriteFile(target, annotate.Apply(content, line))
}

// tagPath resolves the file a tag points at and refuses paths outside root.
func tagPath(root string, t *model.InlineTag) (string, error) {
	target := t.FilePath
	if target == "" {
		target = filepath.Join(root, filepath.FromSlash(t.RelPath))
	}
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the project", target)
	}
	return target, nil
}

// Status describes the atlas artifacts currently on disk.
type Status struct {
	HasAtlas       bool       `json:"hasAtlas"`
	ClaudeMDPath   *string    `json:"claudeMdPath"`
	RepoIndexPath  *string    `json:"repoIndexPath"`
	LastGenerated  *time.Time `json:"lastGenerated"`
	InlineTagCount int        `json:"inlineTagCount"`
}

// Status inspects the project's atlas artifacts without scanning. An atlas
// exists when the index is present or CLAUDE.md carries the generated
// block. LastGenerated is the newest artifact modification time.
// InlineTagCount is the number of files in the index's annotation table that
// currently carry an annotation.
func (e *Engine) Status(projectPath string) (Status, error) {
	var st Status

	root, err := resolveProject(projectPath)
	if err != nil {
		return st, err
	}

	claudePath := filepath.Join(root, ClaudeMDName)
	if info, err := os.Stat(claudePath); err == nil && !info.IsDir() {
		st.ClaudeMDPath = &claudePath
		if data, err := os.ReadFile(claudePath); err == nil && strings.Contains(string(data), render.SentinelStart) {
			st.HasAtlas = true
			st.LastGenerated = later(st.LastGenerated, info.ModTime())
		}
	}

	indexPath := filepath.Join(root, filepath.FromSlash(RepoIndexName))
	if info, err := os.Stat(indexPath); err == nil && !info.IsDir() {
		st.RepoIndexPath = &indexPath
		st.HasAtlas = true
		st.LastGenerated = later(st.LastGenerated, info.ModTime())
		if data, err := os.ReadFile(indexPath); err == nil {
			st.InlineTagCount = countAnnotated(root, render.AnnotationPaths(string(data)))
		}
	}

	return st, nil
}

// countAnnotated returns how many of the listed files carry an annotation.
func countAnnotated(root string, relPaths []string) int {
	n := 0
	for _, rel := range relPaths {
		target, err := tagPath(root, &model.InlineTag{RelPath: rel})
		if err != nil {
			continue
		}
		if tag, err := annotate.ReadExisting(target); err == nil && tag != nil {
			n++
		}
	}
	return n
}

func later(cur *time.Time, t time.Time) *time.Time {
	if cur == nil || t.After(*cur) {
		return &t
	}
	return cur
}
