package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/phobologic/repoatlas/internal/domain"
	"github.com/phobologic/repoatlas/internal/model"
	"github.com/phobologic/repoatlas/internal/ranking"
)

// MaxHubFiles caps the hub files section.
const MaxHubFiles = 10

// annotationsHeading introduces the inline annotation table. AnnotationPaths
// finds the table by it.
const annotationsHeading = "## Inline Annotations"

// Index renders the detailed repository index.
func Index(result *model.ScanResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Repository Index\n\n", result.ProjectName)

	writeEntrypoints(&b, result)
	writeHubFiles(&b, result)
	writeCrossDomain(&b, result)
	writeAnnotations(&b, result.InlineTags)
	writeDomainFiles(&b, result.Domains)

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// Entrypoints lists index modules in the main and preload layers, sorted.
func Entrypoints(files []model.SourceFile) []string {
	var out []string
	for i := range files {
		f := &files[i]
		if f.Layer != model.LayerMain && f.Layer != model.LayerPreload {
			continue
		}
		if domain.IsEntrypoint(f.RelPath) {
			out = append(out, f.RelPath)
		}
	}
	sort.Strings(out)
	return out
}

func writeEntrypoints(b *strings.Builder, result *model.ScanResult) {
	b.WriteString("## Entrypoints\n\n")
	eps := Entrypoints(result.Files)
	if len(eps) == 0 {
		b.WriteString("_None detected._\n\n")
		return
	}
	for _, ep := range eps {
		fmt.Fprintf(b, "- %s\n", code(ep))
	}
	b.WriteString("\n")
}

func writeHubFiles(b *strings.Builder, result *model.ScanResult) {
	// Without edges every file has the same centrality; nothing is a hub.
	if len(result.Dependencies) == 0 {
		return
	}

	importedBy := make(map[string]int)
	for _, d := range result.Dependencies {
		importedBy[d.To]++
	}

	b.WriteString("## Hub Files\n\n")
	hubs := ranking.HubFiles(result.Centrality, MaxHubFiles)
	rows := make([][]string, 0, len(hubs))
	for _, p := range hubs {
		rows = append(rows, []string{
			code(p),
			fmt.Sprintf("%.4f", result.Centrality[p]),
			fmt.Sprint(importedBy[p]),
		})
	}
	formatTable(b, []string{"File", "Centrality", "Imported By"}, rows)
	b.WriteString("\n")
}

// DomainEdge is the summed import traffic from one domain to another.
type DomainEdge struct {
	From, To string
	Imports  int
}

// CrossDomain sums import counts between distinct domains, keyed by domain
// display name. Sorted by imports desc, then names.
func CrossDomain(domains []model.Domain, deps []model.CrossDependency) []DomainEdge {
	owner := make(map[string]int)
	for i := range domains {
		for j := range domains[i].Files {
			owner[domains[i].Files[j].RelPath] = i
		}
	}

	sums := make(map[[2]int]int)
	for _, d := range deps {
		fi, okFrom := owner[d.From]
		ti, okTo := owner[d.To]
		if !okFrom || !okTo || fi == ti {
			continue
		}
		sums[[2]int{fi, ti}] += d.ImportCount
	}

	edges := make([]DomainEdge, 0, len(sums))
	for k, n := range sums {
		edges = append(edges, DomainEdge{From: domains[k[0]].Name, To: domains[k[1]].Name, Imports: n})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Imports != edges[j].Imports {
			return edges[i].Imports > edges[j].Imports
		}
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}

func writeCrossDomain(b *strings.Builder, result *model.ScanResult) {
	edges := CrossDomain(result.Domains, result.Dependencies)
	if len(edges) == 0 {
		return
	}
	b.WriteString("## Cross-Domain Dependencies\n\n")
	rows := make([][]string, 0, len(edges))
	for _, e := range edges {
		rows = append(rows, []string{e.From, e.To, fmt.Sprint(e.Imports)})
	}
	formatTable(b, []string{"From", "To", "Imports"}, rows)
	b.WriteString("\n")
}

func writeAnnotations(b *strings.Builder, tags []model.InlineTag) {
	if len(tags) == 0 {
		return
	}
	b.WriteString(annotationsHeading + "\n\n")
	rows := make([][]string, 0, len(tags))
	for i := range tags {
		t := &tags[i]
		status := "proposed"
		if t.CurrentTag != nil {
			status = "existing: " + *t.CurrentTag
		}
		rows = append(rows, []string{code(t.RelPath), t.SuggestedTag, t.Reason, fmt.Sprint(t.Score), status})
	}
	formatTable(b, []string{"File", "Suggested Tag", "Reason", "Score", "Status"}, rows)
	b.WriteString("\n")
}

func writeDomainFiles(b *strings.Builder, domains []model.Domain) {
	b.WriteString("## Domains\n\n")
	if len(domains) == 0 {
		b.WriteString("_No domains inferred._\n")
		return
	}
	for i := range domains {
		d := &domains[i]
		fmt.Fprintf(b, "### %s\n\n", d.Name)
		if d.IPCPrefix != "" {
			fmt.Fprintf(b, "IPC prefix: %s\n\n", code(d.IPCPrefix))
		}

		files := make([]model.SourceFile, len(d.Files))
		copy(files, d.Files)
		sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })

		rows := make([][]string, 0, len(files))
		for j := range files {
			f := &files[j]
			rows = append(rows, []string{code(f.RelPath), string(f.Language), fmt.Sprint(f.Lines), string(f.Layer)})
		}
		formatTable(b, []string{"File", "Language", "Lines", "Layer"}, rows)
		b.WriteString("\n")
	}
}

// AnnotationPaths returns the file paths listed in the inline annotation
// table of a rendered index, in table order.
func AnnotationPaths(index string) []string {
	_, rest, ok := strings.Cut(index, annotationsHeading+"\n")
	if !ok {
		return nil
	}
	var paths []string
	rows := 0
	for _, line := range strings.Split(rest, "\n") {
		if strings.HasPrefix(line, "#") {
			break
		}
		if !strings.HasPrefix(line, "|") {
			if rows > 0 {
				break
			}
			continue
		}
		rows++
		if rows <= 2 {
			continue // header and separator
		}
		if p := firstCellPath(line); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// firstCellPath decodes the code-span path in a row's first cell. Escaped
// pipes never appear as " | ", so the first such separator ends the cell.
func firstCellPath(row string) string {
	row = strings.TrimPrefix(row, "| ")
	if end := strings.Index(row, " | "); end >= 0 {
		row = row[:end]
	}
	row = strings.TrimSuffix(strings.TrimPrefix(row, "`"), "`")
	return uncell(row)
}
