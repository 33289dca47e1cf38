package lang

import "regexp"

// The ECMAScript family shares one pattern list. Non-greedy `[^'"]*?` lets a
// named import clause span several lines without crossing a string literal.
var ecmaImports = []*regexp.Regexp{
	regexp.MustCompile(`import\s+[^'"]*?\s*from\s*['"]([^'"]+)['"]`),
	regexp.MustCompile(`(?m)^\s*import\s*['"]([^'"]+)['"]`),
	regexp.MustCompile(`export\s+[^'"=;]*?\s*from\s*['"]([^'"]+)['"]`),
	regexp.MustCompile(`require\s*\(\s*['"]([^'"]+)['"]\s*\)`),
	regexp.MustCompile(`import\s*\(\s*['"]([^'"]+)['"]\s*\)`),
}

var ecmaExports = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^\s*export\s+(?:default\s+)?(?:declare\s+)?(?:abstract\s+)?(?:async\s+)?(?:function\*?|class|const|let|var|interface|type|enum)\s+([A-Za-z_$][\w$]*)`),
}

var ecmaExportLists = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^\s*export\s+(?:type\s+)?\{([^}]*)\}`),
}

var typescriptSpec = &Spec{
	Name:        TypeScript,
	Extensions:  []string{".ts", ".tsx", ".mts", ".cts"},
	Comment:     slashComment,
	Imports:     ecmaImports,
	Exports:     ecmaExports,
	ExportLists: ecmaExportLists,
}

var javascriptSpec = &Spec{
	Name:        JavaScript,
	Extensions:  []string{".js", ".jsx", ".mjs", ".cjs"},
	Comment:     slashComment,
	Imports:     ecmaImports,
	Exports:     ecmaExports,
	ExportLists: ecmaExportLists,
}

// Single-file components carry a script block; only imports are read.
var vueSpec = &Spec{
	Name:       Vue,
	Extensions: []string{".vue"},
	Comment:    htmlComment,
	Imports:    ecmaImports,
}

var svelteSpec = &Spec{
	Name:       Svelte,
	Extensions: []string{".svelte"},
	Comment:    htmlComment,
	Imports:    ecmaImports,
}

var cssSpec = &Spec{
	Name:       CSS,
	Extensions: []string{".css", ".scss", ".less"},
	Comment:    blockComment,
	Imports: []*regexp.Regexp{
		regexp.MustCompile(`@(?:import|use|forward)\s+(?:url\()?['"]([^'"]+)['"]`),
	},
}
