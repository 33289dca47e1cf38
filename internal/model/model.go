// Package model defines core data structures for repoatlas.
package model

import (
	"strings"

	"github.com/phobologic/repoatlas/internal/lang"
)

// Layer is a coarse architectural tier derived from path segments.
type Layer string

const (
	LayerMain     Layer = "main"
	LayerRenderer Layer = "renderer"
	LayerShared   Layer = "shared"
	LayerPreload  Layer = "preload"
	LayerOther    Layer = "other"
)

// Sensitivity gates which domain inference tiers run.
type Sensitivity string

const (
	SensitivityLow    Sensitivity = "low"
	SensitivityMedium Sensitivity = "medium"
	SensitivityHigh   Sensitivity = "high"
)

// Valid reports whether s is one of the known sensitivities.
func (s Sensitivity) Valid() bool {
	switch s {
	case SensitivityLow, SensitivityMedium, SensitivityHigh:
		return true
	}
	return false
}

// SourceFile holds metadata and extracted imports for a single source file.
type SourceFile struct {
	RelPath  string        `json:"relativePath" yaml:"relativePath" toml:"relativePath"`
	AbsPath  string        `json:"absolutePath" yaml:"absolutePath" toml:"absolutePath"`
	Language lang.Language `json:"language" yaml:"language" toml:"language"`
	Lines    int           `json:"lineCount" yaml:"lineCount" toml:"lineCount"`
	Size     int64         `json:"sizeBytes" yaml:"sizeBytes" toml:"sizeBytes"`
	Imports  []string      `json:"imports" yaml:"imports" toml:"imports"`
	Exports  []string      `json:"exports" yaml:"exports" toml:"exports"`
	Layer    Layer         `json:"layer" yaml:"layer" toml:"layer"`
}

// CrossDependency is a directed edge: From imports To ImportCount times.
type CrossDependency struct {
	From        string `json:"from" yaml:"from" toml:"from"`
	To          string `json:"to" yaml:"to" toml:"to"`
	ImportCount int    `json:"importCount" yaml:"importCount" toml:"importCount"`
}

// Domain is a named, disjoint cluster of source files.
type Domain struct {
	Key           string       `json:"key" yaml:"key" toml:"key"`
	Name          string       `json:"name" yaml:"name" toml:"name"`
	Files         []SourceFile `json:"-" yaml:"-" toml:"-"`
	IPCPrefix     string       `json:"ipcPrefix,omitempty" yaml:"ipcPrefix,omitempty" toml:"ipcPrefix,omitempty"`
	MainFiles     []string     `json:"mainFiles" yaml:"mainFiles" toml:"mainFiles"`
	RendererFiles []string     `json:"rendererFiles" yaml:"rendererFiles" toml:"rendererFiles"`
	SharedFiles   []string     `json:"sharedFiles" yaml:"sharedFiles" toml:"sharedFiles"`
	Entrypoints   []string     `json:"entrypoints" yaml:"entrypoints" toml:"entrypoints"`
}

// Paths returns the relative paths of the domain's files in membership order.
func (d *Domain) Paths() []string {
	paths := make([]string, len(d.Files))
	for i := range d.Files {
		paths[i] = d.Files[i].RelPath
	}
	return paths
}

// InlineTag is a proposed single-line entrypoint annotation for a file.
type InlineTag struct {
	FilePath     string  `json:"filePath" yaml:"filePath" toml:"filePath"`
	RelPath      string  `json:"relativePath" yaml:"relativePath" toml:"relativePath"`
	CurrentTag   *string `json:"currentTag" yaml:"currentTag" toml:"currentTag,omitempty"`
	SuggestedTag string  `json:"suggestedTag" yaml:"suggestedTag" toml:"suggestedTag"`
	Reason       string  `json:"reason" yaml:"reason" toml:"reason"`
	Score        int     `json:"score" yaml:"score" toml:"score"`
	Selected     bool    `json:"selected" yaml:"selected" toml:"selected"`
}

// ScanResult is the aggregate output of one atlas scan.
type ScanResult struct {
	ProjectName       string                `json:"projectName" yaml:"projectName" toml:"projectName"`
	Files             []SourceFile          `json:"files" yaml:"files" toml:"files"`
	TotalFiles        int                   `json:"totalFiles" yaml:"totalFiles" toml:"totalFiles"`
	TotalLines        int                   `json:"totalLines" yaml:"totalLines" toml:"totalLines"`
	Languages         map[lang.Language]int `json:"languages" yaml:"languages" toml:"languages"`
	Dependencies      []CrossDependency     `json:"dependencies" yaml:"dependencies" toml:"dependencies"`
	Domains           []Domain              `json:"domains" yaml:"domains" toml:"domains"`
	InlineTags        []InlineTag           `json:"inlineTags" yaml:"inlineTags" toml:"inlineTags"`
	Centrality        map[string]float64    `json:"centrality" yaml:"centrality" toml:"centrality"`
	EnumerationSource string                `json:"enumerationSource" yaml:"enumerationSource" toml:"enumerationSource"`
	ScanDurationMs    int64                 `json:"scanDurationMs" yaml:"scanDurationMs" toml:"scanDurationMs"`
}

// Settings controls a single scan.
type Settings struct {
	MaxInlineTags   int         `mapstructure:"max-inline-tags"`
	Sensitivity     Sensitivity `mapstructure:"sensitivity"`
	ExcludePatterns []string    `mapstructure:"exclude"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		MaxInlineTags: 10,
		Sensitivity:   SensitivityMedium,
	}
}

// LayerFor derives the architectural layer of a forward-slash relative path.
// The first segment naming a layer wins.
func LayerFor(relPath string) Layer {
	for _, seg := range strings.Split(relPath, "/") {
		switch Layer(seg) {
		case LayerMain, LayerRenderer, LayerShared, LayerPreload:
			return Layer(seg)
		}
	}
	return LayerOther
}
