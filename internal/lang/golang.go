package lang

import "regexp"

var goSpec = &Spec{
	Name:       Go,
	Extensions: []string{".go"},
	Comment:    slashComment,
	Imports: []*regexp.Regexp{
		// import "path" and import alias "path"
		regexp.MustCompile(`(?m)^\s*import\s+(?:[\w.]+\s+)?"([^"]+)"`),
	},
	ImportBlocks: []*regexp.Regexp{
		regexp.MustCompile(`(?ms)^[ \t]*import[ \t]*\((.*?)^[ \t]*\)`),
	},
	BlockImports: []*regexp.Regexp{
		// optional alias followed by the path
		regexp.MustCompile(`(?m)^[ \t]*(?:[\w.]+[ \t]+)?"([^"]+)"`),
	},
}

var rustSpec = &Spec{
	Name:       Rust,
	Extensions: []string{".rs"},
	Comment:    slashComment,
	Imports: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*(?:pub(?:\([\w\s]+\))?\s+)?use\s+([\w:]+)`),
		regexp.MustCompile(`(?m)^\s*extern\s+crate\s+(\w+)`),
	},
}

var javaSpec = &Spec{
	Name:       Java,
	Extensions: []string{".java"},
	Comment:    slashComment,
	Imports: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*import\s+(?:static\s+)?([\w.*]+)\s*;`),
	},
}

var kotlinSpec = &Spec{
	Name:       Kotlin,
	Extensions: []string{".kt", ".kts"},
	Comment:    slashComment,
	Imports: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*import\s+([\w.*]+)`),
	},
}

var cSpec = &Spec{
	Name:       C,
	Extensions: []string{".c", ".h"},
	Comment:    slashComment,
	Imports: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*#\s*include\s*["<]([^">]+)[">]`),
	},
}

var cppSpec = &Spec{
	Name:       CPP,
	Extensions: []string{".cpp", ".cc", ".cxx", ".hpp", ".hh", ".hxx"},
	Comment:    slashComment,
	Imports:    cSpec.Imports,
}

var csharpSpec = &Spec{
	Name:       CSharp,
	Extensions: []string{".cs"},
	Comment:    slashComment,
}

var swiftSpec = &Spec{
	Name:       Swift,
	Extensions: []string{".swift"},
	Comment:    slashComment,
}
