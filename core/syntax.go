package core

import (
	"sort"
	"strings"
)

// CommentSyntax describes the comment delimiters recognized for one file
// extension. At least one of LinePrefix or the BlockOpen/BlockClose pair is
// always present. Values are static configuration and never mutated.
type CommentSyntax struct {
	LinePrefix string // e.g. "//", "#", "--"
	BlockOpen  string // e.g. "/*", "<!--"
	BlockClose string // e.g. "*/", "-->"
}

var defaultSyntax = CommentSyntax{LinePrefix: "//"}

var (
	hashSyntax = CommentSyntax{LinePrefix: "#"}
	cSyntax    = CommentSyntax{LinePrefix: "//", BlockOpen: "/*", BlockClose: "*/"}
	xmlSyntax  = CommentSyntax{BlockOpen: "<!--", BlockClose: "-->"}
	dashSyntax = CommentSyntax{LinePrefix: "--"}
	cssSyntax  = CommentSyntax{BlockOpen: "/*", BlockClose: "*/"}
	luaSyntax  = CommentSyntax{LinePrefix: "--", BlockOpen: "--[[", BlockClose: "]]"}
)

// syntaxByExtension maps a normalized (lowercase, dotted) file extension to
// its comment syntax.
var syntaxByExtension = map[string]CommentSyntax{
	// Hash-style script languages
	".py":   hashSyntax,
	".sh":   hashSyntax,
	".bash": hashSyntax,
	".rb":   hashSyntax,
	".pl":   hashSyntax,
	".r":    hashSyntax,
	".yaml": hashSyntax,
	".yml":  hashSyntax,
	".toml": hashSyntax,
	".tf":   hashSyntax,

	// C family
	".c":     cSyntax,
	".h":     cSyntax,
	".cpp":   cSyntax,
	".cc":    cSyntax,
	".hpp":   cSyntax,
	".cs":    cSyntax,
	".java":  cSyntax,
	".js":    cSyntax,
	".jsx":   cSyntax,
	".ts":    cSyntax,
	".tsx":   cSyntax,
	".go":    cSyntax,
	".php":   cSyntax,
	".rs":    cSyntax,
	".kt":    cSyntax,
	".swift": cSyntax,
	".scala": cSyntax,

	// Markup
	".html": xmlSyntax,
	".htm":  xmlSyntax,
	".xml":  xmlSyntax,
	".svg":  xmlSyntax,
	".md":   xmlSyntax,
	".rst":  CommentSyntax{LinePrefix: ".."},

	// Stylesheets
	".css":  cssSyntax,
	".scss": cSyntax,

	// Data / query languages
	".sql": dashSyntax,
	".hs":  dashSyntax,
	".lua": luaSyntax,
}

// normalizeExtension lowercases an extension and ensures the leading dot.
func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ext
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// SyntaxForExtension resolves the comment syntax for a file extension.
// Lookup is case-insensitive and tolerates a missing leading dot. Unknown
// extensions resolve to the default "//" descriptor rather than failing, so
// best-effort extraction works on files admitted by an explicit include set.
func SyntaxForExtension(ext string) CommentSyntax {
	if s, ok := syntaxByExtension[normalizeExtension(ext)]; ok {
		return s
	}
	return defaultSyntax
}

// RecognizedExtension reports whether an extension has an explicit registry
// entry, i.e. did not fall through to the default descriptor.
func RecognizedExtension(ext string) bool {
	_, ok := syntaxByExtension[normalizeExtension(ext)]
	return ok
}

// RecognizedExtensions returns the registry's extension list, sorted. This
// is the default eligibility set when no include set is given.
func RecognizedExtensions() []string {
	exts := make([]string, 0, len(syntaxByExtension))
	for ext := range syntaxByExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
