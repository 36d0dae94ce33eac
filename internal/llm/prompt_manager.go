package llm

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"
)

//go:embed prompts/*.prompt
var promptFiles embed.FS

// ErrPromptNotFound is returned when no template serves a section.
var ErrPromptNotFound = errors.New("prompt not found")

// ModelProvider selects a prompt variant. Providers without a dedicated
// template use the default one.
type ModelProvider string

// PromptKey names a document section template.
type PromptKey string

const (
	DefaultProvider ModelProvider = "default"

	OverviewPrompt      PromptKey = "overview"
	ArchitecturePrompt  PromptKey = "architecture"
	InstallationPrompt  PromptKey = "installation"
	UsagePrompt         PromptKey = "usage"
	APIReferencePrompt  PromptKey = "api_reference"
	ConfigurationPrompt PromptKey = "configuration"
	DevelopmentPrompt   PromptKey = "development"
)

type variants map[ModelProvider]*template.Template

// PromptManager holds the section templates, one set of provider variants
// per section.
type PromptManager struct {
	sections map[PromptKey]variants
}

// NewPromptManager loads the embedded prompts. Files are named
// <section>_<provider>.prompt; the section itself may contain underscores.
func NewPromptManager() (*PromptManager, error) {
	return loadPrompts(promptFiles, "prompts/*.prompt")
}

func loadPrompts(fsys fs.FS, pattern string) (*PromptManager, error) {
	names, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}

	pm := &PromptManager{sections: make(map[PromptKey]variants)}
	for _, name := range names {
		key, provider, err := parsePromptName(path.Base(name))
		if err != nil {
			return nil, err
		}
		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt %s: %w", name, err)
		}
		tmpl, err := template.New(string(key) + "_" + string(provider)).Parse(string(body))
		if err != nil {
			return nil, fmt.Errorf("failed to parse prompt %s: %w", name, err)
		}
		if pm.sections[key] == nil {
			pm.sections[key] = make(variants)
		}
		pm.sections[key][provider] = tmpl
	}
	return pm, nil
}

// parsePromptName splits "api_reference_gemini.prompt" into its section and
// provider at the last underscore.
func parsePromptName(file string) (PromptKey, ModelProvider, error) {
	base := strings.TrimSuffix(file, path.Ext(file))
	i := strings.LastIndexByte(base, '_')
	if i <= 0 || i == len(base)-1 {
		return "", "", fmt.Errorf("invalid prompt file name %q: want <section>_<provider>.prompt", file)
	}
	return PromptKey(base[:i]), ModelProvider(base[i+1:]), nil
}

// Has reports whether a template exists for key.
func (pm *PromptManager) Has(key PromptKey) bool {
	return len(pm.sections[key]) > 0
}

// Get returns the provider's template for key, or the default one.
func (pm *PromptManager) Get(key PromptKey, provider ModelProvider) (*template.Template, error) {
	v := pm.sections[key]
	if tmpl := v[provider]; tmpl != nil {
		return tmpl, nil
	}
	if tmpl := v[DefaultProvider]; tmpl != nil {
		return tmpl, nil
	}
	return nil, fmt.Errorf("%w: section %q, provider %q", ErrPromptNotFound, key, provider)
}

// Render executes the template for key with data.
func (pm *PromptManager) Render(key PromptKey, provider ModelProvider, data any) (string, error) {
	tmpl, err := pm.Get(key, provider)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", key, err)
	}
	return sb.String(), nil
}
