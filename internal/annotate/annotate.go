// Package annotate reads and rewrites single-line entrypoint annotations in
// source files.
package annotate

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/phobologic/repoatlas/internal/lang"
)

// Tag is the annotation keyword following the comment opener.
const Tag = "@atlas-entrypoint:"

// Marker matches one annotation line in any supported comment style and
// captures its text.
var Marker = regexp.MustCompile(`^\s*(?://|#|--|/\*|<!--)\s*@atlas-entrypoint:\s*(.*?)\s*(?:\*/|-->)?\s*$`)

// Line renders an annotation comment for a file in language l.
func Line(l lang.Language, text string) string {
	c := lang.CommentFor(l)
	if c.Close != "" {
		return fmt.Sprintf("%s %s %s %s", c.Open, Tag, text, c.Close)
	}
	return fmt.Sprintf("%s %s %s", c.Open, Tag, text)
}

// Existing returns the text of the first annotation in content.
func Existing(content []byte) (string, bool) {
	for _, line := range strings.Split(string(content), "\n") {
		if m := Marker.FindStringSubmatch(line); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// ReadExisting reads the file at path and returns its annotation, or nil
// when it has none.
func ReadExisting(path string) (*string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if text, ok := Existing(data); ok {
		return &text, nil
	}
	return nil, nil
}

// Apply removes the first existing annotation from content and inserts line
// at the top, below a `#!` interpreter line and a PHP opening tag when
// present.
func Apply(content []byte, line string) []byte {
	lines := strings.Split(string(content), "\n")
	for i, l := range lines {
		if Marker.MatchString(l) {
			lines = append(lines[:i], lines[i+1:]...)
			break
		}
	}

	at := codeStart(lines)

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:at]...)
	out = append(out, line)
	out = append(out, lines[at:]...)
	return []byte(strings.Join(out, "\n"))
}

// Placeable reports whether a comment annotation can be added to a file of
// language l without changing what it outputs. PHP text before the opening
// tag is emitted verbatim, so PHP files need an opening tag line.
func Placeable(content []byte, l lang.Language) bool {
	if l != lang.PHP {
		return true
	}
	lines := strings.Split(string(content), "\n")
	at := 0
	if len(lines) > 0 && strings.HasPrefix(lines[0], "#!") {
		at = 1
	}
	return at < len(lines) && isOpenTag(lines[at])
}

// codeStart returns the first line index an annotation may occupy.
func codeStart(lines []string) int {
	at := 0
	if at < len(lines) && strings.HasPrefix(lines[at], "#!") {
		at++
	}
	if at < len(lines) && isOpenTag(lines[at]) {
		at++
	}
	return at
}

// isOpenTag matches a line that opens a PHP block and leaves it open.
func isOpenTag(line string) bool {
	t := strings.TrimSpace(line)
	if !strings.HasPrefix(t, "<?php") && t != "<?" && !strings.HasPrefix(t, "<? ") {
		return false
	}
	return !strings.Contains(t, "?>")
}
