package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/gitdocify/internal/config"
	"github.com/sevigo/gitdocify/internal/core"
	"github.com/sevigo/gitdocify/internal/gitutil"
	"github.com/sevigo/gitdocify/internal/llm"
	"github.com/sevigo/gitdocify/mocks"
)

func testConfig() *config.Config {
	return &config.Config{
		Analysis: config.AnalysisConfig{MaxFileSize: 100000, MaxDepth: 3, Workers: 2},
		AI: config.AIConfig{
			LLMProvider:     config.ProviderOllama,
			GeneratorModel:  "test-model",
			MaxPromptTokens: 8000,
			Concurrency:     2,
		},
	}
}

func newTestApp(t *testing.T, gen llm.TextGenerator) *App {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pm, err := llm.NewPromptManager()
	require.NoError(t, err)

	a := NewApp(testConfig(), gitutil.NewClient(logger), pm, logger)
	a.newGenerator = func(context.Context) (llm.TextGenerator, *llm.Tokenizer, error) {
		if gen == nil {
			return nil, nil, errors.New("no generator")
		}
		return gen, llm.NewTokenizer(nil), nil
	}
	return a
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0600))
	}
}

func TestPrepareRoot_Local(t *testing.T) {
	dir := t.TempDir()
	a := newTestApp(t, nil)

	root, err := a.PrepareRoot(t.Context(), dir)
	require.NoError(t, err)
	assert.Equal(t, dir, root.Path)
	assert.Equal(t, filepath.Base(dir), root.Name)
	assert.Nil(t, root.Remote)
	assert.NotNil(t, root.Cleanup)
}

func TestPrepareRoot_Invalid(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(file, []byte("package main"), 0600))
	a := newTestApp(t, nil)

	_, err := a.PrepareRoot(t.Context(), file)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = a.PrepareRoot(t.Context(), filepath.Join(dir, "missing"))
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnalyze_AppliesRepoConfig(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"src/app.py":          "import os\n\nclass App:\n    pass\n",
		"tests/test_app.py":   "def test_app():\n    pass\n",
		"generated/out.py":    "x = 1\n",
		"requirements.txt":    "flask>=2.0\n",
		config.RepoConfigFile: "exclude:\n  - generated/**\ninclude_tests: true\ncustom_instructions:\n  - Keep it short.\n",
	})
	a := newTestApp(t, nil)

	analysis, err := a.Analyze(t.Context(), &Root{Path: dir, Name: "demo"})
	require.NoError(t, err)

	paths := make([]string, 0, len(analysis.Files))
	for _, f := range analysis.Files {
		paths = append(paths, f.Path)
	}
	assert.Contains(t, paths, "src/app.py")
	assert.Contains(t, paths, "tests/test_app.py")
	assert.NotContains(t, paths, "generated/out.py")
	assert.Equal(t, "demo", analysis.ProjectInfo.Name)
	assert.Equal(t, []string{"flask>=2.0"}, analysis.Dependencies[core.EcosystemPython])
	assert.Equal(t, []string{"Keep it short."}, analysis.RepoConfig.CustomInstructions)
	assert.Nil(t, analysis.ProjectInfo.VCS)
}

func TestAnalyze_BrokenRepoConfigFallsBack(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"main.py":             "print('hi')\n",
		config.RepoConfigFile: "exclude: [unterminated\n",
	})
	a := newTestApp(t, nil)

	analysis, err := a.Analyze(t.Context(), &Root{Path: dir, Name: "demo"})
	require.NoError(t, err)
	require.NotEmpty(t, analysis.Files)
	assert.Equal(t, "main.py", analysis.Files[len(analysis.Files)-1].Path)
	assert.Empty(t, analysis.RepoConfig.Exclude)
}

func TestGenerate_UsesRepoSections(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"main.py":             "def main():\n    pass\n",
		config.RepoConfigFile: "sections:\n  - overview\n",
	})

	ctrl := gomock.NewController(t)
	gen := mocks.NewMockTextGenerator(ctrl)
	gen.EXPECT().Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, prompt string) (string, error) {
			assert.Contains(t, prompt, "Project Name: demo")
			return "# demo", nil
		})

	a := newTestApp(t, gen)
	analysis, err := a.Analyze(t.Context(), &Root{Path: dir, Name: "demo"})
	require.NoError(t, err)

	var kinds []llm.EventKind
	doc, err := a.Generate(t.Context(), analysis, func(e llm.Event) { kinds = append(kinds, e.Kind) })
	require.NoError(t, err)
	assert.Equal(t, "# demo", doc.Markdown)
	assert.Equal(t, []llm.EventKind{llm.SectionStarted, llm.SectionDone}, kinds)
}

func TestGenerate_GeneratorUnavailable(t *testing.T) {
	a := newTestApp(t, nil)
	_, err := a.Generate(t.Context(), &Analysis{CodebaseAnalysis: &core.CodebaseAnalysis{}}, nil)
	require.Error(t, err)
}

func TestWriteDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs", "README.md")
	require.NoError(t, WriteDocument(path, "# Title"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n", string(data))
	assert.True(t, strings.HasSuffix(string(data), "\n"))
}

func TestLogReporter(t *testing.T) {
	var sb strings.Builder
	logger := slog.New(slog.NewTextHandler(&sb, &slog.HandlerOptions{Level: slog.LevelDebug}))
	report := LogReporter(logger)

	report(core.Diagnostic{Severity: core.SeverityWarning, Kind: core.KindReadFailed, Path: "a.py", Message: "denied"})
	report(core.Diagnostic{Severity: core.SeverityInfo, Kind: core.KindLargeFile, Path: "big.py"})

	out := sb.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "kind=read_failed")
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "path=big.py")
}
