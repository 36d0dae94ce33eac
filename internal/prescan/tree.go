package prescan

import (
	"io/fs"
	"path"

	"github.com/sevigo/gitdocify/internal/core"
)

// DefaultMaxDepth bounds how deep BuildTree enumerates directories.
const DefaultMaxDepth = 3

// BuildTree walks fsys from its root in sorted order and returns the
// directory structure, skipping excluded entries. Directories at maxDepth are
// present with an empty subtree. Directories that cannot be listed become
// empty subtrees and are reported.
func BuildTree(fsys fs.FS, m *Matcher, maxDepth int, report core.Reporter) core.DirectoryTree {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return buildTree(fsys, ".", m, maxDepth, 0, report)
}

func buildTree(fsys fs.FS, dir string, m *Matcher, maxDepth, depth int, report core.Reporter) core.DirectoryTree {
	tree := core.DirectoryTree{Entries: []core.TreeEntry{}}
	if depth >= maxDepth {
		return tree
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		report.Report(core.Diagnostic{
			Severity: core.SeverityWarning,
			Kind:     core.KindDirUnreadable,
			Path:     dir,
			Message:  err.Error(),
		})
		// ReadDir may return the entries it managed to read alongside the error.
		if len(entries) == 0 {
			return tree
		}
	}

	for _, e := range entries {
		rel := joinRel(dir, e.Name())
		isDir := e.IsDir()
		if m.Match(rel, isDir) {
			continue
		}
		if isDir {
			sub := buildTree(fsys, rel, m, maxDepth, depth+1, report)
			tree.Entries = append(tree.Entries, core.TreeEntry{Name: e.Name() + "/", Children: &sub})
			continue
		}
		tree.Entries = append(tree.Entries, core.TreeEntry{Name: e.Name()})
	}
	return tree
}

func joinRel(dir, name string) string {
	if dir == "." || dir == "" {
		return name
	}
	return path.Join(dir, name)
}
