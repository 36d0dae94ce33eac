package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sevigo/gitdocify/internal/config"
	"github.com/sevigo/gitdocify/internal/core"
	"github.com/sevigo/gitdocify/internal/prescan"
)

// LogReporter forwards scan diagnostics to logger. Informational skips are
// logged at debug level.
func LogReporter(logger *slog.Logger) core.Reporter {
	return func(d core.Diagnostic) {
		attrs := []any{"kind", d.Kind, "path", d.Path, "message", d.Message}
		if d.Severity == core.SeverityInfo {
			logger.Debug("scan diagnostic", attrs...)
			return
		}
		logger.Warn("scan diagnostic", attrs...)
	}
}

// Analysis is a finished scan together with the repository settings that
// shaped it.
type Analysis struct {
	*core.CodebaseAnalysis
	RepoConfig *core.RepoConfig
}

// Analyze scans root with the configured settings merged with the
// repository's .gitdocify.yml.
func (a *App) Analyze(ctx context.Context, root *Root) (*Analysis, error) {
	repoCfg, err := config.LoadRepoConfig(root.Path)
	switch {
	case err == nil:
		a.logger.Info("loaded repository config", "file", config.RepoConfigFile)
	case errors.Is(err, config.ErrConfigNotFound):
	default:
		a.logger.Warn("failed to load repository config, using defaults", "file", config.RepoConfigFile, "error", err)
		repoCfg = core.DefaultRepoConfig()
	}

	settings := a.cfg.Analysis.ApplyRepoConfig(repoCfg)
	analyzer, err := prescan.NewAnalyzer(prescan.Options{
		Root:         root.Path,
		Name:         root.Name,
		Exclude:      settings.Exclude,
		IncludeTests: settings.IncludeTests,
		MaxFileSize:  settings.MaxFileSize,
		MaxDepth:     settings.MaxDepth,
		Workers:      settings.Workers,
	},
		prescan.WithReporter(LogReporter(a.logger)),
		prescan.WithVCS(a.git),
	)
	if err != nil {
		return nil, err
	}

	a.logger.Info("analyzing codebase", "path", root.Path, "rules", len(analyzer.Matcher().Rules()))
	result, err := analyzer.Analyze(ctx)
	if err != nil {
		return nil, err
	}
	a.logger.Info("analysis complete",
		"files", len(result.Files),
		"total_files", result.ProjectInfo.TotalFiles,
		"total_lines", result.ProjectInfo.TotalLines,
		"skipped", result.Skipped())
	return &Analysis{CodebaseAnalysis: result, RepoConfig: repoCfg}, nil
}
