package domain

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/phobologic/repoatlas/internal/model"
)

// RenameOverlap is the minimum share of a domain's files that must belong to
// one naming group before the domain takes that group's name.
const RenameOverlap = 0.30

// ConventionBase extracts the base name from a manager-style (`session-manager`,
// `SessionManager`) or hook-style (`useSession`, `use-session`) file name.
// The base is lower-cased.
func ConventionBase(relPath string) (string, bool) {
	stem := Stem(relPath)

	if base, ok := managerBase(stem); ok {
		return strings.ToLower(base), true
	}

	if rest, ok := strings.CutPrefix(stem, "use-"); ok && rest != "" {
		return strings.ToLower(rest), true
	}
	if rest, ok := strings.CutPrefix(stem, "use"); ok {
		r, _ := utf8.DecodeRuneInString(rest)
		if unicode.IsUpper(r) {
			return strings.ToLower(rest), true
		}
	}
	return "", false
}

// IsManager reports whether a file follows the manager naming convention.
func IsManager(relPath string) bool {
	_, ok := managerBase(Stem(relPath))
	return ok
}

func managerBase(stem string) (string, bool) {
	for _, suffix := range []string{"-manager", "_manager", "Manager"} {
		if base, ok := strings.CutSuffix(stem, suffix); ok && base != "" {
			return base, true
		}
	}
	return "", false
}

// renameByConvention is tier 3. Groups span all files regardless of domain;
// each domain takes the first group, in name order, that covers at least
// RenameOverlap of it.
func renameByConvention(domains []model.Domain, files []model.SourceFile) {
	groups := make(map[string]map[string]struct{})
	for i := range files {
		base, ok := ConventionBase(files[i].RelPath)
		if !ok {
			continue
		}
		if groups[base] == nil {
			groups[base] = make(map[string]struct{})
		}
		groups[base][files[i].RelPath] = struct{}{}
	}
	if len(groups) == 0 {
		return
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for i := range domains {
		d := &domains[i]
		for _, name := range names {
			if overlap(d.Files, groups[name]) >= RenameOverlap {
				d.Name = Capitalize(name)
				break
			}
		}
	}
}

func overlap(files []model.SourceFile, group map[string]struct{}) float64 {
	if len(files) == 0 {
		return 0
	}
	n := 0
	for i := range files {
		if _, ok := group[files[i].RelPath]; ok {
			n++
		}
	}
	return float64(n) / float64(len(files))
}
