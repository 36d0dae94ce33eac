package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/gitdocify/internal/core"
)

func TestAIConfig_Validate(t *testing.T) {
	valid := AIConfig{
		LLMProvider:     ProviderOllama,
		GeneratorModel:  "gemma3:latest",
		OllamaHost:      "http://localhost:11434",
		MaxPromptTokens: 8000,
		Concurrency:     2,
	}

	tests := []struct {
		name    string
		mutate  func(c *AIConfig)
		wantErr bool
	}{
		{
			name:    "Valid ollama config",
			mutate:  func(*AIConfig) {},
			wantErr: false,
		},
		{
			name: "Gemini without key",
			mutate: func(c *AIConfig) {
				c.LLMProvider = ProviderGemini
			},
			wantErr: true,
		},
		{
			name: "Gemini with key",
			mutate: func(c *AIConfig) {
				c.LLMProvider = ProviderGemini
				c.GeminiAPIKey = "secret"
			},
			wantErr: false,
		},
		{
			name: "Unknown provider",
			mutate: func(c *AIConfig) {
				c.LLMProvider = "openai"
			},
			wantErr: true,
		},
		{
			name: "Missing model",
			mutate: func(c *AIConfig) {
				c.GeneratorModel = ""
			},
			wantErr: true,
		},
		{
			name: "Prompt budget too small",
			mutate: func(c *AIConfig) {
				c.MaxPromptTokens = 10
			},
			wantErr: true,
		},
		{
			name: "Concurrency out of range",
			mutate: func(c *AIConfig) {
				c.Concurrency = 0
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAnalysisConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  AnalysisConfig
		wantErr bool
	}{
		{name: "Defaults", config: AnalysisConfig{MaxFileSize: 100000, MaxDepth: 3}, wantErr: false},
		{name: "Zero file size", config: AnalysisConfig{MaxFileSize: 0, MaxDepth: 3}, wantErr: true},
		{name: "Depth too deep", config: AnalysisConfig{MaxFileSize: 1, MaxDepth: 100}, wantErr: true},
		{name: "Negative workers", config: AnalysisConfig{MaxFileSize: 1, MaxDepth: 1, Workers: -1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			assert.Equal(t, tt.wantErr, err != nil, "error = %v", err)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, 100000, cfg.Analysis.MaxFileSize)
	assert.Equal(t, 3, cfg.Analysis.MaxDepth)
	assert.Equal(t, ProviderOllama, cfg.AI.LLMProvider)
	assert.Equal(t, "gemma3:latest", cfg.AI.GeneratorModel)
	assert.Equal(t, 5*time.Minute, cfg.AI.Timeout)
	assert.Equal(t, "DOCUMENTATION.md", cfg.Output.Path)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "gitdocify.yaml")
	content := `
analysis:
  exclude: ["docs/**"]
  max_depth: 5
ai:
  llm_provider: gemini
  gemini_api_key: from-file
output:
  path: out.md
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0600))
	t.Setenv("GITDOCIFY_ANALYSIS_MAX_DEPTH", "4")
	t.Setenv("GITDOCIFY_AI_CONCURRENCY", "3")

	cfg, err := Load(viper.New(), file)
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/**"}, cfg.Analysis.Exclude)
	assert.Equal(t, 4, cfg.Analysis.MaxDepth, "environment wins over the file")
	assert.Equal(t, 3, cfg.AI.Concurrency)
	assert.Equal(t, ProviderGemini, cfg.AI.LLMProvider)
	assert.Equal(t, defaultGeminiModel, cfg.AI.GeneratorModel)
	assert.Equal(t, "from-file", cfg.AI.GeminiAPIKey)
	assert.Equal(t, "out.md", cfg.Output.Path)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidAnalysis(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GITDOCIFY_ANALYSIS_MAX_FILE_SIZE", "0")

	_, err := Load(viper.New(), "")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadRepoConfig(t *testing.T) {
	t.Run("Missing file returns defaults", func(t *testing.T) {
		cfg, err := LoadRepoConfig(t.TempDir())
		assert.ErrorIs(t, err, ErrConfigNotFound)
		require.NotNil(t, cfg)
		assert.Empty(t, cfg.Exclude)
		assert.Nil(t, cfg.IncludeTests)
	})

	t.Run("Parses all fields", func(t *testing.T) {
		dir := t.TempDir()
		content := `
exclude:
  - "generated/**"
include_tests: true
custom_instructions:
  - "Mention the plugin system."
sections: [overview, usage]
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, RepoConfigFile), []byte(content), 0600))

		cfg, err := LoadRepoConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"generated/**"}, cfg.Exclude)
		require.NotNil(t, cfg.IncludeTests)
		assert.True(t, *cfg.IncludeTests)
		assert.Equal(t, []string{"Mention the plugin system."}, cfg.CustomInstructions)
		assert.Equal(t, []string{"overview", "usage"}, cfg.Sections)
	})

	t.Run("Invalid YAML", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, RepoConfigFile), []byte("exclude: [unclosed"), 0600))

		_, err := LoadRepoConfig(dir)
		assert.ErrorIs(t, err, ErrConfigParsing)
	})
}

func TestApplyRepoConfig(t *testing.T) {
	include := true
	base := AnalysisConfig{Exclude: []string{"a/**"}, MaxFileSize: 10, MaxDepth: 3}
	merged := base.ApplyRepoConfig(&core.RepoConfig{Exclude: []string{"b/**"}, IncludeTests: &include})

	assert.Equal(t, []string{"a/**", "b/**"}, merged.Exclude)
	assert.True(t, merged.IncludeTests)
	assert.Equal(t, []string{"a/**"}, base.Exclude, "base is not modified")
	assert.Equal(t, base, base.ApplyRepoConfig(nil))
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GITDOCIFY_TEST_FRESH=from-file\nGITDOCIFY_TEST_SET=from-file\n"), 0600))
	t.Setenv("GITDOCIFY_TEST_SET", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("GITDOCIFY_TEST_FRESH") })

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("GITDOCIFY_TEST_FRESH"))
	assert.Equal(t, "from-env", os.Getenv("GITDOCIFY_TEST_SET"))

	require.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
