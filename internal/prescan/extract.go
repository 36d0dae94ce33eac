package prescan

import (
	"strings"

	"github.com/sevigo/gitdocify/internal/core"
)

// Extraction is what a heuristic extractor finds in a file's content.
type Extraction struct {
	Imports   []string
	Classes   []string
	Functions []string
	Type      core.FileType
}

// Extractor pulls structural facts out of raw file content. Implementations are
// pattern based and never parse the language.
type Extractor interface {
	Extract(content string) Extraction
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(content string) Extraction

func (f ExtractorFunc) Extract(content string) Extraction {
	return f(content)
}

// Registry dispatches extraction by language tag.
type Registry struct {
	extractors map[core.Language]Extractor
}

// NewRegistry returns an empty registry; every language falls back to
// classification only.
func NewRegistry() *Registry {
	return &Registry{extractors: make(map[core.Language]Extractor)}
}

// DefaultRegistry returns a registry with the Python and JavaScript/TypeScript
// families registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(PythonExtractor{}, LangPython)
	js := JavaScriptExtractor{}
	r.Register(js, LangJavaScript, LangTypeScript, LangJSX, LangTSX)
	return r
}

// Register binds ext to every language in langs, replacing earlier bindings.
func (r *Registry) Register(ext Extractor, langs ...core.Language) {
	for _, l := range langs {
		r.extractors[l] = ext
	}
}

// Enriched reports whether lang has a dedicated extractor.
func (r *Registry) Enriched(lang core.Language) bool {
	_, ok := r.extractors[lang]
	return ok
}

// Extract runs the extractor registered for lang, or classifies the file when
// there is none.
func (r *Registry) Extract(lang core.Language, content string) Extraction {
	if ext, ok := r.extractors[lang]; ok {
		res := ext.Extract(content)
		if res.Type == "" {
			res.Type = core.FileTypeSource
		}
		return res
	}
	return Extraction{Type: DefaultFileType(lang)}
}

// DefaultFileType is the classification given to files without an extractor.
func DefaultFileType(lang core.Language) core.FileType {
	switch lang {
	case LangMarkdown, LangText:
		return core.FileTypeDocumentation
	case LangYAML, LangJSON, LangTOML, LangINI, LangXML:
		return core.FileTypeConfiguration
	case core.LanguageUnknown:
		return core.FileTypeUnknown
	default:
		return core.FileTypeSource
	}
}

func containsAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
