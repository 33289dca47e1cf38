// Package parse extracts import targets and exported names from source files
// using the per-language pattern tables in package lang.
package parse

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/phobologic/repoatlas/internal/lang"
	"github.com/phobologic/repoatlas/internal/model"
)

// Imports returns the deduplicated, sorted import targets found in source.
// Languages without registered patterns yield nil.
func Imports(source []byte, l lang.Language) []string {
	spec := lang.Lookup(l)
	if spec == nil || len(source) == 0 {
		return nil
	}

	seen := make(map[string]struct{})
	collectImports(seen, source, spec.Imports)
	for _, block := range spec.ImportBlocks {
		for _, m := range block.FindAllSubmatch(source, -1) {
			if len(m) >= 2 {
				collectImports(seen, m[1], spec.BlockImports)
			}
		}
	}
	return sortedSet(seen)
}

func collectImports(seen map[string]struct{}, source []byte, patterns []*regexp.Regexp) {
	for _, re := range patterns {
		for _, m := range re.FindAllSubmatch(source, -1) {
			if len(m) < 2 {
				continue
			}
			target := strings.TrimSpace(string(m[1]))
			if target != "" {
				seen[target] = struct{}{}
			}
		}
	}
}

// Exports returns exported top-level names. Only TypeScript and JavaScript
// carry export patterns; every other language yields nil.
func Exports(source []byte, l lang.Language) []string {
	spec := lang.Lookup(l)
	if spec == nil || len(source) == 0 {
		return nil
	}

	seen := make(map[string]struct{})
	for _, re := range spec.Exports {
		for _, m := range re.FindAllSubmatch(source, -1) {
			seen[string(m[1])] = struct{}{}
		}
	}
	for _, re := range spec.ExportLists {
		for _, m := range re.FindAllSubmatch(source, -1) {
			for _, name := range splitExportList(string(m[1])) {
				seen[name] = struct{}{}
			}
		}
	}
	return sortedSet(seen)
}

// splitExportList parses the body of `export { a, b as c, type D }`.
func splitExportList(body string) []string {
	var names []string
	for _, item := range strings.Split(body, ",") {
		fields := strings.Fields(item)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "type" && len(fields) > 1 {
			fields = fields[1:]
		}
		name := fields[0]
		if len(fields) >= 3 && fields[1] == "as" {
			name = fields[2]
		}
		if name == "default" {
			continue
		}
		names = append(names, name)
	}
	return names
}

// File reads root/relPath and builds its SourceFile. relPath must use
// forward slashes.
func File(root, relPath string) (model.SourceFile, error) {
	absPath := filepath.Join(root, filepath.FromSlash(relPath))
	source, err := os.ReadFile(absPath)
	if err != nil {
		return model.SourceFile{}, fmt.Errorf("reading %s: %w", relPath, err)
	}

	l := lang.ForPath(relPath)
	return model.SourceFile{
		RelPath:  relPath,
		AbsPath:  absPath,
		Language: l,
		Lines:    CountLines(source),
		Size:     int64(len(source)),
		Imports:  Imports(source, l),
		Exports:  Exports(source, l),
		Layer:    model.LayerFor(relPath),
	}, nil
}

// CountLines counts lines the way editors do: a trailing newline does not
// start a new line, and non-empty content without one still counts.
func CountLines(source []byte) int {
	if len(source) == 0 {
		return 0
	}
	n := bytes.Count(source, []byte{'\n'})
	if source[len(source)-1] != '\n' {
		n++
	}
	return n
}

func sortedSet(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
