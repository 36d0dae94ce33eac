package prescan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher_Match(t *testing.T) {
	tests := []struct {
		name         string
		patterns     []string
		includeTests bool
		path         string
		isDir        bool
		want         bool
	}{
		{name: "Plain source file", path: "src/app.py", want: false},
		{name: "File under node_modules", path: "node_modules/lib/index.js", want: true},
		{name: "Compiled python at any depth", path: "src/pkg/app.pyc", want: true},
		{name: "Dotenv variant", path: ".env.local", want: true},
		{name: "Minified bundle", path: "web/app.min.js", want: true},
		{name: "Lock file", path: "package-lock.json", want: true},
		{name: "Readme", path: "README.md", want: false},
		{name: "Test directory", path: "tests/test_app.py", want: true},
		{name: "Test file prefix at any depth", path: "pkg/test_utils.py", want: true},
		{name: "Nested __tests__ directory", path: "src/__tests__/widget.js", want: true},
		{name: "Go test file", path: "internal/core/tree_test.go", want: true},
		{name: "Spec file", path: "src/widget.spec.ts", want: true},
		{name: "Tests included", includeTests: true, path: "tests/test_app.py", want: false},
		{name: "Spec included", includeTests: true, path: "src/widget.spec.ts", want: false},
		{name: "User glob", patterns: []string{"docs/generated/**"}, path: "docs/generated/api.md", want: true},
		{name: "User glob leaves siblings", patterns: []string{"docs/generated/**"}, path: "docs/guide.md", want: false},
		{name: "Directory-only rule on directory", patterns: []string{"out/"}, path: "out", isDir: true, want: true},
		{name: "Directory-only rule on file", patterns: []string{"out/"}, path: "out", isDir: false, want: false},
		{name: "Extension rule", patterns: []string{"*.pb.go"}, path: "api/v1/service.pb.go", want: true},
		{name: "Root itself", path: ".", isDir: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMatcher(MatcherOptions{Patterns: tt.patterns, IncludeTests: tt.includeTests})
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Match(tt.path, tt.isDir))
		})
	}
}

func TestNewMatcher_InvalidPatterns(t *testing.T) {
	for _, pattern := range []string{"!src/keep.py", "[abc"} {
		_, err := NewMatcher(MatcherOptions{Patterns: []string{pattern}})
		assert.ErrorIs(t, err, ErrInvalidPattern, pattern)
	}
}

func TestMatcher_Rules(t *testing.T) {
	m, err := NewMatcher(MatcherOptions{Patterns: []string{"  vendor/**  ", "", "# comment"}})
	require.NoError(t, err)

	rules := m.Rules()
	assert.Equal(t, "vendor/**", rules[0], "user rules come first and are trimmed")
	assert.Len(t, rules, 1+len(DefaultExcludePatterns)+len(TestExcludePatterns))

	rules[0] = "changed"
	assert.Equal(t, "vendor/**", m.Rules()[0], "Rules returns a copy")

	withTests, err := NewMatcher(MatcherOptions{IncludeTests: true})
	require.NoError(t, err)
	assert.Len(t, withTests.Rules(), len(DefaultExcludePatterns))
}
