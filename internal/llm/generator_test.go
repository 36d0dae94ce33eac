package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/gitdocify/internal/core"
	"github.com/sevigo/gitdocify/mocks"
)

// sectionMarkers map a phrase unique to each prompt to the canned answer.
var sectionMarkers = []struct {
	marker string
	answer string
}{
	{"project overview/README", "# Demo"},
	{`"## Architecture"`, "## Architecture"},
	{`"## Installation & Setup"`, "## Installation & Setup"},
	{`"## Usage"`, "## Usage"},
	{`"## API Reference"`, "## API Reference"},
	{`"## Configuration"`, "## Configuration"},
	{`"## Development"`, "## Development"},
}

func answerFor(prompt string) string {
	for _, m := range sectionMarkers {
		if strings.Contains(prompt, m.marker) {
			return m.answer
		}
	}
	return "unexpected prompt"
}

func fullAnalysis() *core.CodebaseAnalysis {
	readme := "# Demo\n"
	return &core.CodebaseAnalysis{
		ProjectInfo: core.ProjectInfo{
			Name:       "demo",
			TotalFiles: 2,
			TotalLines: 12,
			Languages:  map[core.Language]int{"python": 2},
		},
		Structure: core.DirectoryTree{Entries: []core.TreeEntry{{Name: "app.py"}}},
		Files: []core.FileRecord{
			{
				Path: "app.py", Name: "app.py", Language: "python", Type: core.FileTypeSource,
				Imports: []string{"os"}, Classes: []string{"App"}, Functions: []string{"run"},
			},
			{
				Path: "tests/test_app.py", Name: "test_app.py", Language: "python", Type: core.FileTypeTest,
				Imports: []string{}, Classes: []string{}, Functions: []string{"test_run"},
			},
		},
		Dependencies: core.DependencyManifest{core.EcosystemPython: {"flask"}},
		Readme:       &readme,
		ConfigFiles:  []core.ConfigFileEntry{{Name: "config.yml", Path: "config.yml", Content: "debug: true"}},
	}
}

func newTestGenerator(t *testing.T, gen TextGenerator, opts GeneratorOptions) *DocGenerator {
	t.Helper()
	pm, err := NewPromptManager()
	require.NoError(t, err)
	g, err := NewDocGenerator(gen, pm, NewTokenizer(nil), opts, nil)
	require.NoError(t, err)
	return g
}

func TestDocGenerator_AllSections(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := mocks.NewMockTextGenerator(ctrl)
	gen.EXPECT().Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, prompt string) (string, error) {
			return answerFor(prompt), nil
		}).Times(len(Sections))

	g := newTestGenerator(t, gen, GeneratorOptions{MaxPromptTokens: 8000, Concurrency: 3})

	var events []Event
	doc, err := g.Generate(context.Background(), fullAnalysis(), func(e Event) { events = append(events, e) })
	require.NoError(t, err)

	want := make([]string, 0, len(sectionMarkers))
	for _, m := range sectionMarkers {
		want = append(want, m.answer)
	}
	assert.Equal(t, strings.Join(want, "\n\n"), doc.Markdown)
	assert.Empty(t, doc.Failed())
	assert.Positive(t, doc.TotalTokens())

	done := 0
	for _, e := range events {
		if e.Kind == SectionDone {
			done++
		}
		assert.Equal(t, len(Sections), e.Total)
	}
	assert.Equal(t, len(Sections), done)
}

func TestDocGenerator_SkipsSectionsWithoutInput(t *testing.T) {
	analysis := &core.CodebaseAnalysis{
		ProjectInfo:  core.ProjectInfo{Name: "notes", Languages: map[core.Language]int{}},
		Files:        []core.FileRecord{{Path: "notes.md", Name: "notes.md", Type: core.FileTypeDocumentation}},
		Dependencies: core.DependencyManifest{},
	}

	ctrl := gomock.NewController(t)
	gen := mocks.NewMockTextGenerator(ctrl)
	// overview, installation, usage and development always run.
	gen.EXPECT().Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, prompt string) (string, error) {
			return answerFor(prompt), nil
		}).Times(4)

	g := newTestGenerator(t, gen, GeneratorOptions{Concurrency: 2})

	skipped := map[PromptKey]bool{}
	doc, err := g.Generate(context.Background(), analysis, func(e Event) {
		if e.Kind == SectionSkipped {
			skipped[e.Section] = true
		}
	})
	require.NoError(t, err)

	assert.Equal(t, map[PromptKey]bool{ArchitecturePrompt: true, APIReferencePrompt: true, ConfigurationPrompt: true}, skipped)
	assert.Equal(t, "# Demo\n\n## Installation & Setup\n\n## Usage\n\n## Development", doc.Markdown)
}

func TestDocGenerator_FailedSectionBecomesErrorNote(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := mocks.NewMockTextGenerator(ctrl)
	gen.EXPECT().Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, prompt string) (string, error) {
			if strings.Contains(prompt, `"## Usage"`) {
				return "", errors.New("boom")
			}
			return answerFor(prompt), nil
		}).Times(len(Sections))

	g := newTestGenerator(t, gen, GeneratorOptions{Concurrency: 4})

	var failed []Event
	doc, err := g.Generate(context.Background(), fullAnalysis(), func(e Event) {
		if e.Kind == SectionFailed {
			failed = append(failed, e)
		}
	})
	require.NoError(t, err)

	assert.Contains(t, doc.Markdown, "## Generate usage documentation\n\nError generating this section: boom")
	assert.Contains(t, doc.Markdown, "## Development")
	require.Len(t, doc.Failed(), 1)
	assert.Equal(t, UsagePrompt, doc.Failed()[0].Key)
	require.Len(t, failed, 1)
	assert.EqualError(t, failed[0].Err, "boom")
}

func TestDocGenerator_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := mocks.NewMockTextGenerator(ctrl)

	g := newTestGenerator(t, gen, GeneratorOptions{Concurrency: 2})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.Generate(ctx, fullAnalysis(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDocGenerator_NoFiles(t *testing.T) {
	ctrl := gomock.NewController(t)
	g := newTestGenerator(t, mocks.NewMockTextGenerator(ctrl), GeneratorOptions{})

	_, err := g.Generate(context.Background(), &core.CodebaseAnalysis{}, nil)
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestDocGenerator_SectionSelection(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	_, err = NewDocGenerator(nil, pm, nil, GeneratorOptions{Sections: []string{"overview", "changelog"}}, nil)
	assert.ErrorIs(t, err, ErrUnknownSection)

	ctrl := gomock.NewController(t)
	gen := mocks.NewMockTextGenerator(ctrl)
	gen.EXPECT().Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, prompt string) (string, error) {
			return answerFor(prompt), nil
		}).Times(2)

	g := newTestGenerator(t, gen, GeneratorOptions{Sections: []string{"Development", "overview"}})
	doc, err := g.Generate(context.Background(), fullAnalysis(), nil)
	require.NoError(t, err)
	assert.Equal(t, "# Demo\n\n## Development", doc.Markdown)
}

func TestDocGenerator_PromptContents(t *testing.T) {
	long := strings.Repeat("lorem ipsum ", 2000)
	analysis := fullAnalysis()
	analysis.Readme = &long

	ctrl := gomock.NewController(t)
	gen := mocks.NewMockTextGenerator(ctrl)
	var prompt string
	gen.EXPECT().Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p string) (string, error) {
			prompt = p
			return "# Demo", nil
		})

	g := newTestGenerator(t, gen, GeneratorOptions{
		Sections:           []string{"overview"},
		MaxPromptTokens:    400,
		CustomInstructions: []string{"Mention the plugin system."},
	})
	_, err := g.Generate(context.Background(), analysis, nil)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Project Name: demo")
	assert.Contains(t, prompt, `"flask"`)
	assert.Contains(t, prompt, TruncationMarker)
	assert.Contains(t, prompt, "- Mention the plugin system.")
	assert.Less(t, len(prompt), len(long))
}

func TestDocGenerator_ProviderSpecificPrompt(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := mocks.NewMockTextGenerator(ctrl)
	var prompts []string
	gen.EXPECT().Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p string) (string, error) {
			prompts = append(prompts, p)
			return "ok", nil
		}).Times(2)

	g := newTestGenerator(t, gen, GeneratorOptions{Provider: "gemini", Sections: []string{"overview", "usage"}})
	_, err := g.Generate(context.Background(), fullAnalysis(), nil)
	require.NoError(t, err)

	require.Len(t, prompts, 2)
	joined := strings.Join(prompts, "\n")
	assert.Contains(t, joined, "<project_facts>", "gemini overview variant")
	assert.Contains(t, joined, `"## Usage"`, "usage falls back to the default template")
}
