package render

import (
	"fmt"
	"strings"
)

// emptyCell stands in for cells with no value so columns stay aligned.
const emptyCell = "-"

// formatTable renders a GitHub-flavoured Markdown table.
func formatTable(b *strings.Builder, columns []string, rows [][]string) {
	fmt.Fprintf(b, "| %s |\n", strings.Join(columns, " | "))
	seps := make([]string, len(columns))
	for i := range seps {
		seps[i] = "---"
	}
	fmt.Fprintf(b, "|%s|\n", strings.Join(seps, "|"))
	for _, row := range rows {
		encoded := make([]string, len(row))
		for i, c := range row {
			encoded[i] = cell(c)
		}
		fmt.Fprintf(b, "| %s |\n", strings.Join(encoded, " | "))
	}
}

// cell escapes a value for use inside a table row.
func cell(value string) string {
	if strings.TrimSpace(value) == "" {
		return emptyCell
	}
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, "|", `\|`)
	escaped = strings.ReplaceAll(escaped, "\r", "")
	escaped = strings.ReplaceAll(escaped, "\n", " ")
	return escaped
}

// uncell reverses the escaping cell applies.
func uncell(value string) string {
	return cellUnescaper.Replace(value)
}

var cellUnescaper = strings.NewReplacer(`\\`, `\`, `\|`, `|`)

// code wraps a path in an inline code span.
func code(s string) string {
	return "`" + s + "`"
}
