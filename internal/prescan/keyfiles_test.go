package prescan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/gitdocify/internal/core"
)

func TestSelectKeyFiles(t *testing.T) {
	files := []core.FileRecord{
		{Path: "lib/util.py", Name: "util.py", Functions: []string{"helper"}},
		{Path: "src/models.py", Name: "models.py", Classes: []string{"User"}},
		{Path: "main.py", Name: "main.py"},
		{Path: "src/App_Main.py", Name: "App_Main.py"},
		{Path: "notes.md", Name: "notes.md"},
		{Path: "src/views.py", Name: "views.py", Classes: []string{"Index"}, Functions: []string{"get"}},
	}

	got := SelectKeyFiles(files)

	paths := make([]string, len(got))
	for i, f := range got {
		paths[i] = f.Path
	}
	assert.Equal(t, []string{"main.py", "src/App_Main.py", "src/models.py", "src/views.py", "lib/util.py"}, paths)
}

func TestSelectKeyFiles_Empty(t *testing.T) {
	assert.Empty(t, SelectKeyFiles(nil))
	assert.NotNil(t, SelectKeyFiles(nil))
}

func TestSelectKeyFiles_Idempotent(t *testing.T) {
	files := []core.FileRecord{
		{Path: "api/client.go", Name: "client.go", Functions: []string{"Do"}},
		{Path: "cmd/main.go", Name: "main.go", Functions: []string{"main"}},
		{Path: "store/model.go", Name: "model.go", Classes: []string{"Record"}},
		{Path: "README.md", Name: "README.md"},
	}

	first := SelectKeyFiles(files)
	second := SelectKeyFiles(files)
	assert.Equal(t, first, second)
	assert.Equal(t, first, SelectKeyFiles(first), "selecting from a selection keeps it unchanged")
}
