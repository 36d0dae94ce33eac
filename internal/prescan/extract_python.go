package prescan

import (
	"regexp"
	"strings"

	"github.com/sevigo/gitdocify/internal/core"
)

var (
	pyImportRe   = regexp.MustCompile(`(?m)^[ \t]*(?:from\s+\S+\s+)?import\s+(.+)$`)
	pyClassRe    = regexp.MustCompile(`(?m)^[ \t]*class\s+(\w+)`)
	pyFunctionRe = regexp.MustCompile(`(?m)^[ \t]*(?:async[ \t]+)?def\s+(\w+)`)

	pyTestKeywords = []string{"test", "assert", "unittest", "pytest"}
)

// PythonExtractor handles Python-like sources.
type PythonExtractor struct{}

func (PythonExtractor) Extract(content string) Extraction {
	res := Extraction{
		Imports:   []string{},
		Classes:   submatches(pyClassRe, content, 1),
		Functions: submatches(pyFunctionRe, content, 1),
		Type:      core.FileTypeSource,
	}
	for _, m := range pyImportRe.FindAllStringSubmatch(content, -1) {
		if imp := strings.TrimSpace(m[1]); imp != "" {
			res.Imports = append(res.Imports, imp)
		}
	}
	if containsAny(strings.ToLower(content), pyTestKeywords) {
		res.Type = core.FileTypeTest
	}
	return res
}

func submatches(re *regexp.Regexp, content string, group int) []string {
	out := []string{}
	for _, m := range re.FindAllStringSubmatch(content, -1) {
		out = append(out, m[group])
	}
	return out
}
