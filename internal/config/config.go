package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/sevigo/gitdocify/internal/logger"
)

// EnvPrefix is prepended to every environment variable, e.g. GITDOCIFY_AI_LLM_PROVIDER.
const EnvPrefix = "GITDOCIFY"

var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config holds the application's configuration values.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis"`
	AI       AIConfig       `mapstructure:"ai"`
	Output   OutputConfig   `mapstructure:"output"`
	Logger   logger.Config  `mapstructure:"logger"`
}

// AnalysisConfig controls the codebase scan.
type AnalysisConfig struct {
	Exclude      []string `mapstructure:"exclude"`
	IncludeTests bool     `mapstructure:"include_tests"`
	MaxFileSize  int      `mapstructure:"max_file_size"`
	MaxDepth     int      `mapstructure:"max_depth"`
	Workers      int      `mapstructure:"workers"`
	// GitToken authenticates clones of private remote repositories.
	GitToken string `mapstructure:"git_token"`
}

// AIConfig selects and tunes the language model.
type AIConfig struct {
	LLMProvider     string        `mapstructure:"llm_provider"`
	GeneratorModel  string        `mapstructure:"generator_model"`
	OllamaHost      string        `mapstructure:"ollama_host"`
	GeminiAPIKey    string        `mapstructure:"gemini_api_key"`
	MaxPromptTokens int           `mapstructure:"max_prompt_tokens"`
	Concurrency     int           `mapstructure:"concurrency"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// OutputConfig controls where and how the document is written.
type OutputConfig struct {
	Path     string `mapstructure:"path"`
	Preview  bool   `mapstructure:"preview"`
	Progress bool   `mapstructure:"progress"`
	Theme    string `mapstructure:"theme"`
}

const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"

	defaultOllamaModel = "gemma3:latest"
	defaultGeminiModel = "gemini-2.5-flash"
)

// SetDefaults registers a default for every key so that environment
// variables are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("analysis.exclude", []string{})
	v.SetDefault("analysis.include_tests", false)
	v.SetDefault("analysis.max_file_size", 100000)
	v.SetDefault("analysis.max_depth", 3)
	v.SetDefault("analysis.workers", 8)
	v.SetDefault("analysis.git_token", "")

	v.SetDefault("ai.llm_provider", ProviderOllama)
	v.SetDefault("ai.generator_model", defaultOllamaModel)
	v.SetDefault("ai.ollama_host", "http://localhost:11434")
	v.SetDefault("ai.gemini_api_key", "")
	v.SetDefault("ai.max_prompt_tokens", 8000)
	v.SetDefault("ai.concurrency", 2)
	v.SetDefault("ai.timeout", 5*time.Minute)

	v.SetDefault("output.path", "DOCUMENTATION.md")
	v.SetDefault("output.preview", false)
	v.SetDefault("output.progress", true)
	v.SetDefault("output.theme", "dark")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "text")
	v.SetDefault("logger.output", "stderr")
	v.SetDefault("logger.file", "")
}

// LoadConfig reads the global viper instance, which the CLI has already bound
// its flags to. configFile may be empty, in which case gitdocify.yaml is looked
// up in the working directory and in $HOME/.config/gitdocify.
func LoadConfig(configFile string) (*Config, error) {
	return Load(viper.GetViper(), configFile)
}

// Load reads configuration from defaults, an optional config file, a .env
// file in the working directory and the environment, in increasing order of
// precedence.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("gitdocify")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "gitdocify"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// Special handling for Gemini: the default model is an Ollama one.
	if cfg.AI.LLMProvider == ProviderGemini && cfg.AI.GeneratorModel == defaultOllamaModel {
		cfg.AI.GeneratorModel = defaultGeminiModel
	}
	if cfg.AI.GeminiAPIKey == "" {
		cfg.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}

	if err := cfg.Analysis.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadDotEnv exports the variables of a .env file that are not already set in
// the environment. A missing file is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil //nolint:nilerr // .env is optional
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}

// Validate checks the scan settings.
func (c AnalysisConfig) Validate() error {
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("%w: analysis.max_file_size must be positive, got %d", ErrInvalidConfig, c.MaxFileSize)
	}
	if c.MaxDepth < 1 || c.MaxDepth > 32 {
		return fmt.Errorf("%w: analysis.max_depth must be between 1 and 32, got %d", ErrInvalidConfig, c.MaxDepth)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: analysis.workers cannot be negative", ErrInvalidConfig)
	}
	return nil
}

// Validate checks the model settings. It is only needed by commands that talk
// to a model.
func (c AIConfig) Validate() error {
	switch c.LLMProvider {
	case ProviderOllama:
		if c.OllamaHost == "" {
			return fmt.Errorf("%w: ai.ollama_host must be set for the ollama provider", ErrInvalidConfig)
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("%w: ai.gemini_api_key (or GEMINI_API_KEY) must be set for the gemini provider", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unsupported llm provider %q", ErrInvalidConfig, c.LLMProvider)
	}
	if c.GeneratorModel == "" {
		return fmt.Errorf("%w: ai.generator_model must be set", ErrInvalidConfig)
	}
	if c.MaxPromptTokens < 256 {
		return fmt.Errorf("%w: ai.max_prompt_tokens must be at least 256, got %d", ErrInvalidConfig, c.MaxPromptTokens)
	}
	if c.Concurrency < 1 || c.Concurrency > 16 {
		return fmt.Errorf("%w: ai.concurrency must be between 1 and 16, got %d", ErrInvalidConfig, c.Concurrency)
	}
	return nil
}
