package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/sevigo/gitdocify/internal/core"
	"github.com/sevigo/gitdocify/internal/prescan"
)

const (
	maxKeyFiles        = 10
	maxKeyFileImports  = 10
	maxMainFiles       = 3
	maxMainFileSymbols = 5
	maxAPIFiles        = 5
	configPreviewRunes = 500
	noReadme           = "No existing README found"
)

// Section is one part of the generated document.
type Section struct {
	Key PromptKey
	// Description names the work being done; it heads the placeholder text
	// of a section that failed.
	Description string
	// payloads is the number of JSON blocks the prompt embeds. The prompt
	// token budget is shared between them.
	payloads int
	build    func(a *core.CodebaseAnalysis, enc *encoder) (promptData, bool)
}

// Sections lists the document sections in output order.
var Sections = []Section{
	{Key: OverviewPrompt, Description: "Generate project overview", payloads: 4, build: buildOverview},
	{Key: ArchitecturePrompt, Description: "Generate architecture documentation", payloads: 2, build: buildArchitecture},
	{Key: InstallationPrompt, Description: "Generate installation documentation", payloads: 2, build: buildInstallation},
	{Key: UsagePrompt, Description: "Generate usage documentation", payloads: 1, build: buildUsage},
	{Key: APIReferencePrompt, Description: "Generate API reference", payloads: 1, build: buildAPIReference},
	{Key: ConfigurationPrompt, Description: "Generate configuration documentation", payloads: 1, build: buildConfiguration},
	{Key: DevelopmentPrompt, Description: "Generate development documentation", payloads: 2, build: buildDevelopment},
}

// promptData is what the section templates see. JSON blocks are already
// encoded and truncated.
type promptData struct {
	ProjectName        string
	TotalFiles         int
	TotalLines         int
	Languages          string
	Structure          string
	Dependencies       string
	Readme             string
	KeyFiles           string
	MainFiles          string
	APIFiles           string
	ConfigFiles        string
	TestFileCount      int
	CustomInstructions []string
}

// encoder renders prompt payloads as indented JSON and keeps each of them
// within a token budget.
type encoder struct {
	ctx       context.Context
	tokenizer *Tokenizer
	budget    int
}

func (e *encoder) json(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "{}"
	}
	return e.text(strings.TrimRight(buf.String(), "\n"))
}

func (e *encoder) text(s string) string {
	if e.budget <= 0 {
		return s
	}
	return e.tokenizer.Truncate(e.ctx, s, e.budget)
}

type keyFileSummary struct {
	Path      string        `json:"path"`
	Language  core.Language `json:"language"`
	Type      core.FileType `json:"type"`
	Classes   []string      `json:"classes"`
	Functions []string      `json:"functions"`
	Imports   []string      `json:"imports"`
}

type mainFileSummary struct {
	Path      string        `json:"path"`
	Name      string        `json:"name"`
	Language  core.Language `json:"language"`
	Functions []string      `json:"functions"`
	Classes   []string      `json:"classes"`
}

type apiFileSummary struct {
	Path      string        `json:"path"`
	Language  core.Language `json:"language"`
	Classes   []string      `json:"classes"`
	Functions []string      `json:"functions"`
}

type configFileRef struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

type configFilePreview struct {
	Name           string `json:"name"`
	Path           string `json:"path"`
	ContentPreview string `json:"content_preview"`
}

func buildOverview(a *core.CodebaseAnalysis, enc *encoder) (promptData, bool) {
	readme := noReadme
	if a.Readme != nil {
		readme = enc.text(*a.Readme)
	}
	return promptData{
		ProjectName:  a.ProjectInfo.Name,
		TotalFiles:   a.ProjectInfo.TotalFiles,
		TotalLines:   a.ProjectInfo.TotalLines,
		Languages:    enc.json(a.ProjectInfo.Languages),
		Structure:    enc.json(a.Structure),
		Dependencies: enc.json(a.Dependencies),
		Readme:       readme,
	}, true
}

func buildArchitecture(a *core.CodebaseAnalysis, enc *encoder) (promptData, bool) {
	keyFiles := prescan.SelectKeyFiles(a.Files)
	if len(keyFiles) == 0 {
		return promptData{}, false
	}
	summary := make([]keyFileSummary, 0, maxKeyFiles)
	for _, f := range head(keyFiles, maxKeyFiles) {
		summary = append(summary, keyFileSummary{
			Path:      f.Path,
			Language:  f.Language,
			Type:      f.Type,
			Classes:   capped(f.Classes, -1),
			Functions: capped(f.Functions, -1),
			Imports:   capped(f.Imports, maxKeyFileImports),
		})
	}
	return promptData{
		Structure: enc.json(a.Structure),
		KeyFiles:  enc.json(summary),
	}, true
}

func buildInstallation(a *core.CodebaseAnalysis, enc *encoder) (promptData, bool) {
	refs := make([]configFileRef, 0, len(a.ConfigFiles))
	for _, cf := range a.ConfigFiles {
		refs = append(refs, configFileRef{Name: cf.Name, Path: cf.Path})
	}
	return promptData{
		Dependencies: enc.json(a.Dependencies),
		ConfigFiles:  enc.json(refs),
	}, true
}

func buildUsage(a *core.CodebaseAnalysis, enc *encoder) (promptData, bool) {
	var mainFiles []core.FileRecord
	for _, f := range a.Files {
		name := strings.ToLower(f.Name)
		if strings.Contains(name, "main") || strings.Contains(name, "app") {
			mainFiles = append(mainFiles, f)
		}
	}
	if len(mainFiles) == 0 {
		mainFiles = head(a.Files, maxMainFiles)
	}

	summary := make([]mainFileSummary, 0, len(mainFiles))
	for _, f := range mainFiles {
		summary = append(summary, mainFileSummary{
			Path:      f.Path,
			Name:      f.Name,
			Language:  f.Language,
			Functions: capped(f.Functions, maxMainFileSymbols),
			Classes:   capped(f.Classes, maxMainFileSymbols),
		})
	}
	return promptData{MainFiles: enc.json(summary)}, true
}

func buildAPIReference(a *core.CodebaseAnalysis, enc *encoder) (promptData, bool) {
	var summary []apiFileSummary
	for _, f := range a.Files {
		if len(f.Classes) == 0 && len(f.Functions) == 0 {
			continue
		}
		summary = append(summary, apiFileSummary{
			Path:      f.Path,
			Language:  f.Language,
			Classes:   capped(f.Classes, -1),
			Functions: capped(f.Functions, -1),
		})
		if len(summary) == maxAPIFiles {
			break
		}
	}
	if len(summary) == 0 {
		return promptData{}, false
	}
	return promptData{APIFiles: enc.json(summary)}, true
}

func buildConfiguration(a *core.CodebaseAnalysis, enc *encoder) (promptData, bool) {
	if len(a.ConfigFiles) == 0 {
		return promptData{}, false
	}
	previews := make([]configFilePreview, 0, len(a.ConfigFiles))
	for _, cf := range a.ConfigFiles {
		previews = append(previews, configFilePreview{
			Name:           cf.Name,
			Path:           cf.Path,
			ContentPreview: firstRunes(cf.Content, configPreviewRunes),
		})
	}
	return promptData{ConfigFiles: enc.json(previews)}, true
}

func buildDevelopment(a *core.CodebaseAnalysis, enc *encoder) (promptData, bool) {
	return promptData{
		Structure:     enc.json(a.Structure),
		Dependencies:  enc.json(a.Dependencies),
		TestFileCount: len(a.FilesOfType(core.FileTypeTest)),
	}, true
}

func head(files []core.FileRecord, n int) []core.FileRecord {
	if len(files) > n {
		return files[:n]
	}
	return files
}

// capped returns at most n items (all of them when n < 0), never nil.
func capped(s []string, n int) []string {
	if n >= 0 && len(s) > n {
		s = s[:n]
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func firstRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
