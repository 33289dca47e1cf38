// Package discover finds source files in a project tree.
//
// Listing strategies are tried in order: the git CLI, go-git, and finally a
// manual directory walk. Whichever strategy succeeds, every candidate path
// passes through the same filter, so the result does not depend on which
// strategy ran.
package discover

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/phobologic/repoatlas/internal/lang"
)

// Source names the strategy that produced a listing.
type Source string

const (
	SourceGit   Source = "git"
	SourceGoGit Source = "go-git"
	SourceWalk  Source = "walk"
)

// maxListingBytes caps the git CLI output; larger listings fall through to
// the next strategy.
const maxListingBytes = 32 << 20

var errListingTooLarge = errors.New("listing exceeds output buffer")

var errNotRepository = errors.New("not a git repository")

// skipDirs are excluded wherever they appear in a path.
var skipDirs = map[string]struct{}{
	"node_modules":  {},
	".git":          {},
	".hg":           {},
	".svn":          {},
	"dist":          {},
	"build":         {},
	"out":           {},
	"release":       {},
	"vendor":        {},
	"target":        {},
	"coverage":      {},
	"__pycache__":   {},
	".next":         {},
	".nuxt":         {},
	".venv":         {},
	"venv":          {},
	".tox":          {},
	".mypy_cache":   {},
	".pytest_cache": {},
	".gradle":       {},
	"Pods":          {},
	"DerivedData":   {},
}

// Strategy lists candidate files (forward-slash, relative to root).
type Strategy struct {
	Source Source
	List   func(root string) ([]string, error)
}

var (
	GitCLI = Strategy{Source: SourceGit, List: gitLsFiles}
	GoGit  = Strategy{Source: SourceGoGit, List: goGitLsFiles}
	Walk   = Strategy{Source: SourceWalk}
)

// Listing is the filtered result of a discovery run.
type Listing struct {
	Files  []string
	Source Source
}

// Files discovers source files under root using the default strategy order.
// extra adds directory or file names (or gitignore-style patterns) to the
// base exclusion set.
func Files(root string, extra []string) (Listing, error) {
	return FilesWith(root, extra, GitCLI, GoGit, Walk)
}

// FilesWith is Files with an explicit strategy order. A strategy that fails
// is skipped; the walk strategy never fails.
func FilesWith(root string, extra []string, strategies ...Strategy) (Listing, error) {
	f := newFilter(extra)

	for _, s := range strategies {
		var (
			paths []string
			err   error
		)
		if s.Source == SourceWalk {
			paths = walk(root, f)
		} else {
			paths, err = s.List(root)
			if err != nil {
				continue
			}
		}
		return Listing{Files: f.apply(paths), Source: s.Source}, nil
	}
	return Listing{}, fmt.Errorf("no listing strategy succeeded for %s", root)
}

// filter applies the exclusion set and extension allowlist.
type filter struct {
	names    map[string]struct{}
	patterns *ignore.GitIgnore
}

func newFilter(extra []string) *filter {
	f := &filter{names: make(map[string]struct{}, len(skipDirs)+len(extra))}
	for name := range skipDirs {
		f.names[name] = struct{}{}
	}
	var lines []string
	for _, e := range extra {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		f.names[strings.Trim(e, "/")] = struct{}{}
		lines = append(lines, e)
	}
	if len(lines) > 0 {
		f.patterns = ignore.CompileIgnoreLines(lines...)
	}
	return f
}

// dirAllowed reports whether a directory with this name may be entered.
func (f *filter) dirAllowed(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	_, excluded := f.names[name]
	return !excluded
}

func (f *filter) allow(rel string) bool {
	if rel == "" {
		return false
	}
	segs := strings.Split(rel, "/")
	for _, seg := range segs[:len(segs)-1] {
		if !f.dirAllowed(seg) {
			return false
		}
	}
	if _, excluded := f.names[segs[len(segs)-1]]; excluded {
		return false
	}
	if f.patterns != nil && f.patterns.MatchesPath(rel) {
		return false
	}
	return lang.Supported(rel)
}

// apply filters, deduplicates and sorts paths.
func (f *filter) apply(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	results := make([]string, 0, len(paths))
	for _, p := range paths {
		p = filepath.ToSlash(strings.TrimPrefix(p, "./"))
		if _, dup := seen[p]; dup || !f.allow(p) {
			continue
		}
		seen[p] = struct{}{}
		results = append(results, p)
	}
	sort.Strings(results)
	return results
}

func hasGitDir(root string) bool {
	_, err := os.Stat(filepath.Join(root, ".git"))
	return err == nil
}

// cappedBuffer fails writes once limit bytes would be exceeded.
type cappedBuffer struct {
	buf   bytes.Buffer
	limit int
}

func (c *cappedBuffer) Write(p []byte) (int, error) {
	if c.buf.Len()+len(p) > c.limit {
		return 0, errListingTooLarge
	}
	return c.buf.Write(p)
}

func gitLsFiles(root string) ([]string, error) {
	if !hasGitDir(root) {
		return nil, errNotRepository
	}

	out := &cappedBuffer{limit: maxListingBytes}
	cmd := exec.Command("git", "ls-files", "--cached", "--others", "--exclude-standard", "-z")
	cmd.Dir = root
	cmd.Stdout = out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git ls-files: %w", err)
	}

	var files []string
	for _, p := range strings.Split(out.buf.String(), "\x00") {
		if p != "" {
			files = append(files, p)
		}
	}
	return files, nil
}

// goGitLsFiles lists index entries plus untracked, non-ignored worktree files.
func goGitLsFiles(root string) ([]string, error) {
	if !hasGitDir(root) {
		return nil, errNotRepository
	}

	repo, err := gogit.PlainOpen(root)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}
	idx, err := repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}

	files := make([]string, 0, len(idx.Entries))
	for _, e := range idx.Entries {
		files = append(files, e.Name)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("getting status: %w", err)
	}
	for p, s := range status {
		if s.Worktree == gogit.Untracked {
			files = append(files, p)
		}
	}
	return files, nil
}

// walk lists files manually. Unreadable directories are skipped.
func walk(root string, f *filter) []string {
	gi := loadGitignore(root)

	var results []string
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip errors
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if !f.dirAllowed(d.Name()) || (gi != nil && gi.MatchesPath(rel+"/")) {
				return filepath.SkipDir
			}
			return nil
		}

		// Skip symlinks
		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}

		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		results = append(results, rel)
		return nil
	})
	return results
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
