// Package app initializes and orchestrates the main components of gitdocify.
// It wires together the configuration, the scanner and the document generator.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sevigo/goframe/llms"
	"github.com/sevigo/goframe/llms/gemini"
	"github.com/sevigo/goframe/llms/ollama"

	"github.com/sevigo/gitdocify/internal/config"
	"github.com/sevigo/gitdocify/internal/gitutil"
	"github.com/sevigo/gitdocify/internal/llm"
)

// generatorFactory builds the text generator and tokenizer used for a run.
type generatorFactory func(ctx context.Context) (llm.TextGenerator, *llm.Tokenizer, error)

// App holds the main application components.
type App struct {
	cfg          *config.Config
	logger       *slog.Logger
	git          *gitutil.Client
	prompts      *llm.PromptManager
	newGenerator generatorFactory
}

// NewApp sets up the application with all its dependencies. The language
// model is only connected when a document is generated.
func NewApp(cfg *config.Config, gitClient *gitutil.Client, prompts *llm.PromptManager, logger *slog.Logger) *App {
	a := &App{
		cfg:     cfg,
		logger:  logger,
		git:     gitClient,
		prompts: prompts,
	}
	a.newGenerator = a.connectModel
	return a
}

// Config returns the loaded configuration.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

func (a *App) connectModel(ctx context.Context) (llm.TextGenerator, *llm.Tokenizer, error) {
	if err := a.cfg.AI.Validate(); err != nil {
		return nil, nil, err
	}
	a.logger.Info("connecting to generator LLM", "provider", a.cfg.AI.LLMProvider, "model", a.cfg.AI.GeneratorModel)
	model, err := createLLM(ctx, a.cfg, a.logger)
	if err != nil {
		a.logger.Error("failed to connect to generator LLM", "error", err)
		return nil, nil, fmt.Errorf("failed to create generator LLM: %w", err)
	}
	return llm.NewModelGenerator(model), llm.NewTokenizer(model), nil
}

// newOllamaHTTPClient creates an HTTP client with longer timeouts for Ollama requests.
// Ollama can take a while to process requests, so we need more generous timeouts.
func newOllamaHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DisableKeepAlives:   false,
	}

	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// createLLM creates the appropriate LLM client based on the configured provider.
func createLLM(ctx context.Context, cfg *config.Config, logger *slog.Logger) (llms.Model, error) {
	switch cfg.AI.LLMProvider {
	case config.ProviderGemini:
		logger.Info("Using Gemini LLM provider", "model", cfg.AI.GeneratorModel)
		if cfg.AI.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is not set in environment for gemini provider")
		}
		return gemini.New(ctx,
			gemini.WithModel(cfg.AI.GeneratorModel),
			gemini.WithAPIKey(cfg.AI.GeminiAPIKey),
		)

	case config.ProviderOllama:
		logger.Info("Using Ollama LLM provider", "model", cfg.AI.GeneratorModel, "host", cfg.AI.OllamaHost)
		return ollama.New(
			ollama.WithServerURL(cfg.AI.OllamaHost),
			ollama.WithHTTPClient(newOllamaHTTPClient(cfg.AI.Timeout)),
			ollama.WithModel(cfg.AI.GeneratorModel),
			ollama.WithLogger(logger),
		)

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.AI.LLMProvider)
	}
}
