package prescan

import (
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/sevigo/gitdocify/internal/core"
)

// ConfigFilePatterns select root-level configuration files.
var ConfigFilePatterns = []string{
	"*.yml", "*.yaml", "*.json", "*.toml", "*.ini", "*.cfg",
	"Dockerfile", "docker-compose.yml", "Makefile", ".env*",
}

// ConfigPreviewRunes bounds the content kept for each configuration file.
const ConfigPreviewRunes = 1000

// CollectConfigFiles returns the root-level files matching ConfigFilePatterns,
// sorted by path. Paths rejected by m are skipped, so secrets such as .env
// files stay out of the result unless the defaults are changed.
func CollectConfigFiles(fsys fs.FS, m *Matcher, report core.Reporter) []core.ConfigFileEntry {
	seen := make(map[string]struct{})
	var names []string
	for _, pattern := range ConfigFilePatterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			continue
		}
		for _, name := range matches {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)

	entries := []core.ConfigFileEntry{}
	for _, name := range names {
		if m != nil && m.IsExcluded(name) {
			continue
		}
		info, err := fs.Stat(fsys, name)
		if err != nil || !info.Mode().IsRegular() {
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
		entries = append(entries, core.ConfigFileEntry{
			Name:    path.Base(name),
			Path:    name,
			Content: truncateRunes(strings.ToValidUTF8(string(data), ""), ConfigPreviewRunes),
		})
	}
	return entries
}

func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
