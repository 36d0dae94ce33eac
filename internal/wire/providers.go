package wire

import (
	"log/slog"

	"github.com/google/wire"

	"github.com/sevigo/gitdocify/internal/app"
	"github.com/sevigo/gitdocify/internal/config"
	"github.com/sevigo/gitdocify/internal/gitutil"
	"github.com/sevigo/gitdocify/internal/llm"
	"github.com/sevigo/gitdocify/internal/logger"
)

// AppSet provides everything the command-line tool needs. The language model
// is not part of the graph: it is connected lazily by the app when a document
// is generated, so analysis works offline.
var AppSet = wire.NewSet(
	config.LoadConfig,
	gitutil.NewClient,
	llm.NewPromptManager,
	app.NewApp,
	provideLoggerConfig,
	provideSlogLogger,
)

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return cfg.Logger
}

// provideSlogLogger lets the logger pick its own output from the config.
func provideSlogLogger(loggerConfig logger.Config) *slog.Logger {
	return logger.NewLogger(loggerConfig, nil)
}
