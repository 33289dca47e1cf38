// Package atlas runs the repository atlas pipeline: enumerate, analyze,
// infer domains, select tags, and render the navigation documents.
package atlas

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/phobologic/repoatlas/internal/atomicfile"
	"github.com/phobologic/repoatlas/internal/discover"
	"github.com/phobologic/repoatlas/internal/render"
)

// ErrProjectNotFound is returned when the project path does not name an
// existing directory.
var ErrProjectNotFound = errors.New("project not found")

// Artifact locations relative to the project root.
const (
	ClaudeMDName  = "CLAUDE.md"
	RepoIndexName = render.IndexPath
)

// DefaultMaxFileSize is the largest file analyzed; bigger files are skipped.
const DefaultMaxFileSize = 1_000_000 // 1 MB

// Options configures an Engine. The zero value is usable.
type Options struct {
	// Logger receives diagnostics. Nil discards them.
	Logger *log.Logger
	// Progress is called synchronously as the scan advances.
	Progress ProgressFunc
	// Strategies overrides the enumeration order; nil uses git, go-git,
	// then a directory walk.
	Strategies []discover.Strategy
	// Writer persists artifacts; nil uses the real filesystem.
	Writer *atomicfile.Writer
	// MaxFileSize in bytes; zero uses DefaultMaxFileSize.
	MaxFileSize int64
}

// Engine generates and writes atlas documents. It holds no per-scan state,
// so one Engine can serve any number of sequential calls.
type Engine struct {
	logger      *log.Logger
	progress    ProgressFunc
	strategies  []discover.Strategy
	writer      *atomicfile.Writer
	maxFileSize int64
}

// New creates an Engine.
func New(opts Options) *Engine {
	e := &Engine{
		logger:      opts.Logger,
		progress:    opts.Progress,
		strategies:  opts.Strategies,
		writer:      opts.Writer,
		maxFileSize: opts.MaxFileSize,
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.progress == nil {
		e.progress = func(Progress) {}
	}
	if len(e.strategies) == 0 {
		e.strategies = []discover.Strategy{discover.GitCLI, discover.GoGit, discover.Walk}
	}
	if e.writer == nil {
		e.writer = &atomicfile.Writer{}
	}
	if e.maxFileSize <= 0 {
		e.maxFileSize = DefaultMaxFileSize
	}
	return e
}

// resolveProject returns the absolute project root.
func resolveProject(projectPath string) (string, error) {
	root, err := filepath.Abs(projectPath)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", projectPath, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", root, ErrProjectNotFound)
		}
		return "", fmt.Errorf("project path: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory: %w", root, ErrProjectNotFound)
	}
	return root, nil
}

func readOptional(path string) *string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	s := string(data)
	return &s
}
