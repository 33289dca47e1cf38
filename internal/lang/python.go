package lang

import "regexp"

var pythonSpec = &Spec{
	Name:       Python,
	Extensions: []string{".py", ".pyi"},
	Comment:    hashComment,
	Imports: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*import\s+([\w.]+)`),
		regexp.MustCompile(`(?m)^\s*from\s+(\.+[\w.]*|[\w.]+)\s+import\b`),
	},
}

var rubySpec = &Spec{
	Name:       Ruby,
	Extensions: []string{".rb", ".rake"},
	Comment:    hashComment,
	Imports: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*require\s+['"]([^'"]+)['"]`),
		regexp.MustCompile(`(?m)^\s*require_relative\s+['"]([^'"]+)['"]`),
	},
}

var phpSpec = &Spec{
	Name:       PHP,
	Extensions: []string{".php"},
	Comment:    slashComment,
	Imports: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*use\s+([\w\\]+)`),
		regexp.MustCompile(`(?:require|include)(?:_once)?\s*\(?\s*['"]([^'"]+)['"]`),
	},
}
