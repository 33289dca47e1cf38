// Package lang provides the language registry mapping file extensions to
// languages and the regular-expression tables used to read their imports.
package lang

import (
	"path"
	"regexp"
	"sort"
	"strings"
)

// Language identifies a source language.
type Language string

const (
	Unknown    Language = "unknown"
	TypeScript Language = "typescript"
	JavaScript Language = "javascript"
	Vue        Language = "vue"
	Svelte     Language = "svelte"
	CSS        Language = "css"
	Python     Language = "python"
	Go         Language = "go"
	Rust       Language = "rust"
	Java       Language = "java"
	Kotlin     Language = "kotlin"
	C          Language = "c"
	CPP        Language = "cpp"
	CSharp     Language = "csharp"
	Ruby       Language = "ruby"
	PHP        Language = "php"
	Swift      Language = "swift"
)

// Comment describes how a single-line comment is written in a language.
type Comment struct {
	Open  string
	Close string
}

var (
	slashComment = Comment{Open: "//"}
	hashComment  = Comment{Open: "#"}
	blockComment = Comment{Open: "/*", Close: "*/"}
	htmlComment  = Comment{Open: "<!--", Close: "-->"}
)

// Spec holds the static extraction configuration for a language.
type Spec struct {
	Name       Language
	Extensions []string
	Comment    Comment

	// Imports are applied independently; capture group 1 is the import target.
	Imports []*regexp.Regexp

	// ImportBlocks capture the body of a grouped import declaration in
	// group 1. BlockImports are applied only within those bodies.
	ImportBlocks []*regexp.Regexp
	BlockImports []*regexp.Regexp

	// Exports capture a single exported name in group 1.
	Exports []*regexp.Regexp

	// ExportLists capture a comma-separated export clause in group 1,
	// e.g. the body of `export { a, b as c }`.
	ExportLists []*regexp.Regexp
}

// specs is the read-only language table.
var specs = map[Language]*Spec{
	TypeScript: typescriptSpec,
	JavaScript: javascriptSpec,
	Vue:        vueSpec,
	Svelte:     svelteSpec,
	CSS:        cssSpec,
	Python:     pythonSpec,
	Go:         goSpec,
	Rust:       rustSpec,
	Java:       javaSpec,
	Kotlin:     kotlinSpec,
	C:          cSpec,
	CPP:        cppSpec,
	CSharp:     csharpSpec,
	Ruby:       rubySpec,
	PHP:        phpSpec,
	Swift:      swiftSpec,
}

// extensionMap is derived once from specs and never mutated.
var extensionMap = func() map[string]Language {
	m := make(map[string]Language)
	for name, s := range specs {
		for _, ext := range s.Extensions {
			m[ext] = name
		}
	}
	return m
}()

// ForExtension returns the language for a file extension (including the
// leading dot), or Unknown if the extension is not supported.
func ForExtension(ext string) Language {
	if l, ok := extensionMap[strings.ToLower(ext)]; ok {
		return l
	}
	return Unknown
}

// ForPath returns the language of a file path based on its extension.
func ForPath(p string) Language {
	return ForExtension(path.Ext(p))
}

// Supported reports whether the file at p has an extension in the table.
func Supported(p string) bool {
	return ForPath(p) != Unknown
}

// Lookup returns the spec for a language, or nil if none is registered.
func Lookup(l Language) *Spec {
	return specs[l]
}

// CommentFor returns the line comment syntax for l, defaulting to `//`.
func CommentFor(l Language) Comment {
	if s := specs[l]; s != nil && s.Comment.Open != "" {
		return s.Comment
	}
	return slashComment
}

// All returns every registered language, sorted by name.
func All() []Language {
	out := make([]Language, 0, len(specs))
	for name := range specs {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
