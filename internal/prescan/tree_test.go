package prescan

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/gitdocify/internal/core"
)

func treeFixture() fstest.MapFS {
	return fstest.MapFS{
		"README.md":               {Data: []byte("# Demo\n")},
		"src/app.py":              {Data: []byte("print(1)\n")},
		"src/pkg/util.py":         {Data: []byte("")},
		"a/b/c/d/deep.py":         {Data: []byte("")},
		"node_modules/a/index.js": {Data: []byte("")},
		"tests/test_app.py":       {Data: []byte("")},
	}
}

func TestBuildTree(t *testing.T) {
	m, err := NewMatcher(MatcherOptions{})
	require.NoError(t, err)

	var diags []core.Diagnostic
	tree := BuildTree(treeFixture(), m, 3, func(d core.Diagnostic) { diags = append(diags, d) })
	require.Empty(t, diags)

	names := make([]string, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"README.md", "a/", "src/"}, names)

	src, ok := tree.Find("src")
	require.True(t, ok)
	assert.True(t, src.IsDir())
	_, ok = tree.Find("src/pkg/util.py")
	assert.True(t, ok)

	c, ok := tree.Find("a/b/c/")
	require.True(t, ok, "directories at the depth bound are kept")
	assert.True(t, c.IsDir())
	assert.Empty(t, c.Children.Entries)
}

func TestBuildTree_DefaultDepth(t *testing.T) {
	tree := BuildTree(treeFixture(), &Matcher{}, 0, nil)
	c, ok := tree.Find("a/b/c/")
	require.True(t, ok)
	assert.Empty(t, c.Children.Entries)

	_, ok = tree.Find("node_modules/a/index.js")
	assert.True(t, ok, "an empty matcher excludes nothing")
}

func TestBuildTree_UnreadableDirectory(t *testing.T) {
	m, err := NewMatcher(MatcherOptions{})
	require.NoError(t, err)

	var diags []core.Diagnostic
	tree := BuildTree(failingFS{MapFS: treeFixture(), badDir: "src"}, m, 3,
		func(d core.Diagnostic) { diags = append(diags, d) })

	src, ok := tree.Find("src/")
	require.True(t, ok)
	assert.Empty(t, src.Children.Entries)
	_, ok = tree.Find("README.md")
	assert.True(t, ok, "siblings are still listed")
	_, ok = tree.Find("a/b/c/")
	assert.True(t, ok)

	require.Len(t, diags, 1)
	assert.Equal(t, core.KindDirUnreadable, diags[0].Kind)
	assert.Equal(t, "src", diags[0].Path)
}

func TestRenderTree(t *testing.T) {
	src := core.DirectoryTree{Entries: []core.TreeEntry{{Name: "app.py"}}}
	tree := core.DirectoryTree{Entries: []core.TreeEntry{
		{Name: "README.md"},
		{Name: "src/", Children: &src},
	}}

	want := "# Project Structure\n\n**demo/**\n\n- README.md\n- **src/**\n  - app.py\n"
	assert.Equal(t, want, RenderTree("demo", tree))
	assert.Equal(t, "# Project Structure\n\n", RenderTree("", core.DirectoryTree{}))
}
