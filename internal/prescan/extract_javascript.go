package prescan

import (
	"regexp"
	"strings"

	"github.com/sevigo/gitdocify/internal/core"
)

var (
	jsCallImportRe = regexp.MustCompile(`(?:import|require)\s*\(['"]([^'"]+)['"]\)`)
	jsESImportRe   = regexp.MustCompile(`import\s+.+\s+from\s+['"]([^'"]+)['"]`)
	// Either a named function or a variable bound to a function/arrow expression.
	// Only one of the two groups is set per match.
	jsFunctionRe = regexp.MustCompile(`(?:function\s+(\w+)|(\w+)\s*=\s*(?:async\s+)?(?:function|\([^)]*\)\s*=>))`)
	jsClassRe    = regexp.MustCompile(`class\s+(\w+)`)

	jsTestKeywords = []string{"test", "spec", "describe", "it("}
)

// JavaScriptExtractor handles JavaScript, TypeScript, JSX and TSX sources.
type JavaScriptExtractor struct{}

func (JavaScriptExtractor) Extract(content string) Extraction {
	res := Extraction{
		Imports:   []string{},
		Functions: []string{},
		Classes:   submatches(jsClassRe, content, 1),
		Type:      core.FileTypeSource,
	}

	seen := make(map[string]struct{})
	for _, re := range []*regexp.Regexp{jsCallImportRe, jsESImportRe} {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			if _, dup := seen[m[1]]; dup {
				continue
			}
			seen[m[1]] = struct{}{}
			res.Imports = append(res.Imports, m[1])
		}
	}

	for _, m := range jsFunctionRe.FindAllStringSubmatch(content, -1) {
		switch {
		case m[1] != "":
			res.Functions = append(res.Functions, m[1])
		case m[2] != "":
			res.Functions = append(res.Functions, m[2])
		}
	}

	if containsAny(strings.ToLower(content), jsTestKeywords) {
		res.Type = core.FileTypeTest
	}
	return res
}
