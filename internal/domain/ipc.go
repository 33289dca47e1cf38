package domain

import (
	"path"
	"sort"
	"strings"
	"unicode"

	"github.com/phobologic/repoatlas/internal/model"
)

// ipcContracts are module stems that declare the IPC channel contract shared
// between processes. Importing one marks a file as an IPC participant.
var ipcContracts = map[string]struct{}{
	"ipc-types":    {},
	"ipc-contract": {},
	"ipc-channels": {},
	"ipcTypes":     {},
}

// ipcPrefixes maps known manager-style file stems (kebab-cased) to the
// channel prefix their handlers register under.
var ipcPrefixes = map[string]string{
	"agent-manager":        "agent:",
	"app-manager":          "app:",
	"auth-manager":         "auth:",
	"clipboard-manager":    "clipboard:",
	"config-manager":       "config:",
	"dialog-manager":       "dialog:",
	"file-manager":         "fs:",
	"git-manager":          "git:",
	"menu-manager":         "menu:",
	"notification-manager": "notification:",
	"project-manager":      "project:",
	"pty-manager":          "pty:",
	"session-manager":      "session:",
	"settings-manager":     "settings:",
	"shell-manager":        "shell:",
	"terminal-manager":     "terminal:",
	"update-manager":       "update:",
	"window-manager":       "window:",
	"workspace-manager":    "workspace:",
}

// IsIPCContract reports whether a path or import names an IPC contract module.
func IsIPCContract(p string) bool {
	_, ok := ipcContracts[Stem(p)]
	return ok
}

// IPCPrefix returns the channel prefix for a manager file, if known.
func IPCPrefix(relPath string) (string, bool) {
	prefix, ok := ipcPrefixes[kebab(Stem(relPath))]
	return prefix, ok
}

// attachIPCPrefixes is tier 2. Membership is untouched.
func attachIPCPrefixes(domains []model.Domain) {
	for i := range domains {
		d := &domains[i]
		seen := make(map[string]struct{})
		for j := range d.Files {
			f := &d.Files[j]
			if !importsContract(f.Imports) {
				continue
			}
			if prefix, ok := IPCPrefix(f.RelPath); ok {
				seen[prefix] = struct{}{}
			}
		}
		if len(seen) == 0 {
			continue
		}
		prefixes := make([]string, 0, len(seen))
		for p := range seen {
			prefixes = append(prefixes, p)
		}
		sort.Strings(prefixes)
		d.IPCPrefix = strings.Join(prefixes, ", ")
	}
}

func importsContract(imports []string) bool {
	for _, imp := range imports {
		if IsIPCContract(path.Base(imp)) {
			return true
		}
	}
	return false
}

// kebab lower-cases a camelCase stem into kebab-case: sessionManager →
// session-manager.
func kebab(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return strings.ReplaceAll(b.String(), "_", "-")
}
