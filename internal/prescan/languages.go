package prescan

import (
	"strings"

	"github.com/sevigo/gitdocify/internal/core"
)

const (
	LangPython     core.Language = "python"
	LangJavaScript core.Language = "javascript"
	LangTypeScript core.Language = "typescript"
	LangJSX        core.Language = "jsx"
	LangTSX        core.Language = "tsx"
	LangMarkdown   core.Language = "markdown"
	LangText       core.Language = "text"
	LangYAML       core.Language = "yaml"
	LangJSON       core.Language = "json"
	LangTOML       core.Language = "toml"
	LangINI        core.Language = "ini"
	LangXML        core.Language = "xml"
)

// languageTable maps a lowercase extension to its language tag. It is never
// modified after package initialization.
var languageTable = map[string]core.Language{
	".py":         LangPython,
	".js":         LangJavaScript,
	".ts":         LangTypeScript,
	".jsx":        LangJSX,
	".tsx":        LangTSX,
	".java":       "java",
	".cpp":        "cpp",
	".c":          "c",
	".h":          "c",
	".hpp":        "cpp",
	".cs":         "csharp",
	".rb":         "ruby",
	".go":         "go",
	".rs":         "rust",
	".php":        "php",
	".swift":      "swift",
	".kt":         "kotlin",
	".scala":      "scala",
	".r":          "r",
	".sql":        "sql",
	".sh":         "bash",
	".yml":        LangYAML,
	".yaml":       LangYAML,
	".json":       LangJSON,
	".xml":        LangXML,
	".html":       "html",
	".css":        "css",
	".scss":       "scss",
	".sass":       "sass",
	".md":         LangMarkdown,
	".txt":        LangText,
	".dockerfile": "dockerfile",
	".makefile":   "makefile",
	".toml":       LangTOML,
	".ini":        LangINI,
	".cfg":        LangINI,
}

// LanguageFor returns the language tag for ext, or core.LanguageUnknown.
// The lookup is case-insensitive.
func LanguageFor(ext string) core.Language {
	if lang, ok := languageTable[strings.ToLower(ext)]; ok {
		return lang
	}
	return core.LanguageUnknown
}

// Supported reports whether files with ext take part in the scan.
func Supported(ext string) bool {
	_, ok := languageTable[strings.ToLower(ext)]
	return ok
}

// SupportedExtensions returns the number of entries in the language table.
func SupportedExtensions() int {
	return len(languageTable)
}

// Ext returns the lowercase extension of a file name. Dot files without a
// further dot (".gitignore") and names ending in a dot have no extension.
func Ext(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i:])
}
