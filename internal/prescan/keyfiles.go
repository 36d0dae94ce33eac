package prescan

import (
	"strings"

	"github.com/sevigo/gitdocify/internal/core"
)

// keyFilePredicates rank files by how likely they are to explain a project.
// Earlier predicates win.
var keyFilePredicates = []func(f core.FileRecord) bool{
	nameContains("main"),
	nameContains("app"),
	nameContains("server"),
	nameContains("client"),
	nameContains("api"),
	nameContains("model"),
	nameContains("controller"),
	nameContains("service"),
	func(f core.FileRecord) bool { return len(f.Classes) > 0 },
	func(f core.FileRecord) bool { return len(f.Functions) > 0 },
}

func nameContains(s string) func(core.FileRecord) bool {
	return func(f core.FileRecord) bool {
		return strings.Contains(strings.ToLower(f.Name), s)
	}
}

// SelectKeyFiles returns the files worth describing first. Every file appears
// at most once, in predicate order and then input order.
func SelectKeyFiles(files []core.FileRecord) []core.FileRecord {
	selected := []core.FileRecord{}
	seen := make(map[string]struct{}, len(files))
	for _, pred := range keyFilePredicates {
		for _, f := range files {
			if _, ok := seen[f.Path]; ok || !pred(f) {
				continue
			}
			seen[f.Path] = struct{}{}
			selected = append(selected, f)
		}
	}
	return selected
}
