package prescan

import (
	"fmt"
	"strings"

	"github.com/sevigo/gitdocify/internal/core"
)

// RenderTree renders a directory tree as a nested Markdown list under a
// "Project Structure" heading. Directories are printed in bold.
func RenderTree(name string, tree core.DirectoryTree) string {
	var builder strings.Builder
	builder.WriteString("# Project Structure\n\n")
	if name != "" {
		builder.WriteString(fmt.Sprintf("**%s/**\n\n", name))
	}
	renderEntries(&builder, tree, 0)
	return builder.String()
}

func renderEntries(builder *strings.Builder, tree core.DirectoryTree, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, e := range tree.Entries {
		if e.IsDir() {
			builder.WriteString(fmt.Sprintf("%s- **%s**\n", indent, e.Name))
			renderEntries(builder, *e.Children, depth+1)
			continue
		}
		builder.WriteString(fmt.Sprintf("%s- %s\n", indent, e.Name))
	}
}
