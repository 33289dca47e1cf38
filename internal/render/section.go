package render

import "strings"

// Sentinels delimit the generated block inside CLAUDE.md so it can be
// replaced in place on later runs.
const (
	SentinelStart = "<!-- repoatlas:start -->"
	SentinelEnd   = "<!-- repoatlas:end -->"
)

// Section wraps body in sentinels.
func Section(body string) string {
	return SentinelStart + "\n" + strings.TrimRight(body, "\n") + "\n" + SentinelEnd
}

// ApplySection inserts body into content as a sentinel block, replacing an
// existing block if present or appending if not. Content outside the block
// is preserved byte for byte.
func ApplySection(content, body string) string {
	section := Section(body)

	start := strings.Index(content, SentinelStart)
	end := strings.Index(content, SentinelEnd)

	if start >= 0 && end > start {
		return content[:start] + section + content[end+len(SentinelEnd):]
	}

	if content == "" {
		return section + "\n"
	}

	// Append, ensuring a blank line separator.
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + "\n" + section + "\n"
}
