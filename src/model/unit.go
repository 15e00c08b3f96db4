package model

import (
	"path/filepath"
	"strings"
)

// Language identifies the programming language of a source unit
type Language string

const (
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangPython     Language = "python"
	LangJava       Language = "java"
	LangC          Language = "c"
	LangCPP        Language = "cpp"
	LangCSharp     Language = "csharp"
	LangPHP        Language = "php"
	LangRuby       Language = "ruby"
	LangGo         Language = "go"
	LangRust       Language = "rust"
	LangSwift      Language = "swift"
	LangKotlin     Language = "kotlin"
)

// extLanguages maps recognized file extensions to their language tag.
// Extensions outside this table are skipped by the source provider.
var extLanguages = map[string]Language{
	".js":    LangJavaScript,
	".jsx":   LangJavaScript,
	".ts":    LangTypeScript,
	".tsx":   LangTypeScript,
	".py":    LangPython,
	".java":  LangJava,
	".c":     LangC,
	".cpp":   LangCPP,
	".cs":    LangCSharp,
	".php":   LangPHP,
	".rb":    LangRuby,
	".go":    LangGo,
	".rs":    LangRust,
	".swift": LangSwift,
	".kt":    LangKotlin,
}

// LanguageForPath returns the language tag for a file path based on its
// extension. The second return value is false for unrecognized extensions.
func LanguageForPath(path string) (Language, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	lang, ok := extLanguages[ext]
	return lang, ok
}

// SupportedExtensions returns the set of recognized file extensions
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extLanguages))
	for ext := range extLanguages {
		exts = append(exts, ext)
	}
	return exts
}

// SourceUnit is one analyzed file: path, language tag, raw text and size.
// Units are immutable once created.
type SourceUnit struct {
	Path      string   `json:"path"`
	Content   string   `json:"-"`
	Language  Language `json:"language"`
	SizeBytes int      `json:"size_bytes"`
}

// NewSourceUnit creates a source unit for the given path and content
func NewSourceUnit(path, content string, lang Language) SourceUnit {
	return SourceUnit{
		Path:      path,
		Content:   content,
		Language:  lang,
		SizeBytes: len(content),
	}
}

// Lines splits the unit content into physical lines
func (u SourceUnit) Lines() []string {
	return strings.Split(u.Content, "\n")
}
