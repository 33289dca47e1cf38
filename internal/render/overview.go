// Package render turns a scan result into the Markdown navigation documents.
// Every function is pure: output depends only on the scan result.
package render

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/phobologic/repoatlas/internal/lang"
	"github.com/phobologic/repoatlas/internal/model"
)

// IndexPath is where the detailed index lives, relative to the project root.
const IndexPath = "docs/REPO_INDEX.md"

// TopLanguages is how many languages the tech stack summary lists.
const TopLanguages = 5

// LanguageCount is one row of the tech stack summary.
type LanguageCount struct {
	Language lang.Language
	Files    int
}

// Overview renders the project overview placed in CLAUDE.md.
func Overview(result *model.ScanResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", result.ProjectName)
	fmt.Fprintf(&b, "Repository atlas. See [%s](%s) for the full file index.\n\n", IndexPath, IndexPath)

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- **Files:** %d\n", result.TotalFiles)
	fmt.Fprintf(&b, "- **Lines:** %d\n", result.TotalLines)
	fmt.Fprintf(&b, "- **Domains:** %d\n\n", len(result.Domains))

	b.WriteString("## Tech Stack\n\n")
	stack := RankLanguages(result.Languages, TopLanguages)
	if len(stack) == 0 {
		b.WriteString("_No recognised languages._\n\n")
	} else {
		rows := make([][]string, 0, len(stack))
		for _, lc := range stack {
			rows = append(rows, []string{string(lc.Language), fmt.Sprint(lc.Files)})
		}
		formatTable(&b, []string{"Language", "Files"}, rows)
		b.WriteString("\n")
	}

	b.WriteString("## Domains\n\n")
	if len(result.Domains) == 0 {
		b.WriteString("_No domains inferred._\n")
		return b.String()
	}
	rows := make([][]string, 0, len(result.Domains))
	for i := range result.Domains {
		d := &result.Domains[i]
		rows = append(rows, []string{
			d.Name,
			fmt.Sprint(len(d.Files)),
			basenames(d.MainFiles),
			basenames(d.RendererFiles),
			basenames(d.SharedFiles),
			d.IPCPrefix,
		})
	}
	formatTable(&b, []string{"Domain", "Files", "Main", "Renderer", "Shared", "IPC Prefix"}, rows)

	return b.String()
}

// RankLanguages returns up to n languages by file count, ties by name.
// Unknown is never listed.
func RankLanguages(counts map[lang.Language]int, n int) []LanguageCount {
	out := make([]LanguageCount, 0, len(counts))
	for l, c := range counts {
		if l == lang.Unknown || c == 0 {
			continue
		}
		out = append(out, LanguageCount{Language: l, Files: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Files != out[j].Files {
			return out[i].Files > out[j].Files
		}
		return out[i].Language < out[j].Language
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func basenames(paths []string) string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = path.Base(p)
	}
	return strings.Join(names, ", ")
}
