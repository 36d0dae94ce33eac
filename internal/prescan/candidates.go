package prescan

import (
	"errors"
	"io/fs"
	"unicode/utf8"

	"github.com/sevigo/gitdocify/internal/core"
)

var errInvalidUTF8 = errors.New("content is not valid UTF-8")

// ReadmeCandidates lists README file names in priority order.
var ReadmeCandidates = []string{"README.md", "README.rst", "README.txt", "README"}

// firstCandidate tries each candidate at the root of fsys in order and returns
// the parsed value of the first one that exists and parses. Missing files are
// silently skipped; unreadable or unparsable files are reported and treated as
// absent.
func firstCandidate[T any](fsys fs.FS, candidates []string, parse func(name string, data []byte) (T, error), report core.Reporter) (T, string, bool) {
	var zero T
	for _, name := range candidates {
		info, err := fs.Stat(fsys, name)
		if err != nil || info.IsDir() {
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				report.Report(core.Diagnostic{
					Severity: core.SeverityWarning,
					Kind:     core.KindReadFailed,
					Path:     name,
					Message:  err.Error(),
				})
			}
			continue
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			report.Report(core.Diagnostic{
				Severity: core.SeverityWarning,
				Kind:     core.KindReadFailed,
				Path:     name,
				Message:  err.Error(),
			})
			continue
		}

		v, err := parse(name, data)
		if err != nil {
			kind := core.KindParseFailed
			if errors.Is(err, errInvalidUTF8) {
				kind = core.KindDecodeFailed
			}
			report.Report(core.Diagnostic{
				Severity: core.SeverityWarning,
				Kind:     kind,
				Path:     name,
				Message:  err.Error(),
			})
			continue
		}
		return v, name, true
	}
	return zero, "", false
}

// ReadReadme returns the content of the first README candidate, or nil.
func ReadReadme(fsys fs.FS, report core.Reporter) *string {
	text, _, ok := firstCandidate(fsys, ReadmeCandidates, func(_ string, data []byte) (string, error) {
		if !utf8.Valid(data) {
			return "", errInvalidUTF8
		}
		return string(data), nil
	}, report)
	if !ok {
		return nil
	}
	return &text
}
