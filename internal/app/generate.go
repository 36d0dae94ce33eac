package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sevigo/gitdocify/internal/llm"
)

// Generate writes the document for an analysis. Progress is reported through
// onEvent, which may be nil.
func (a *App) Generate(ctx context.Context, analysis *Analysis, onEvent func(llm.Event)) (*llm.Document, error) {
	gen, tokenizer, err := a.newGenerator(ctx)
	if err != nil {
		return nil, err
	}

	opts := llm.GeneratorOptions{
		Provider:        llm.ModelProvider(a.cfg.AI.LLMProvider),
		MaxPromptTokens: a.cfg.AI.MaxPromptTokens,
		Concurrency:     a.cfg.AI.Concurrency,
		Timeout:         a.cfg.AI.Timeout,
	}
	if analysis.RepoConfig != nil {
		opts.Sections = analysis.RepoConfig.Sections
		opts.CustomInstructions = analysis.RepoConfig.CustomInstructions
	}

	docGen, err := llm.NewDocGenerator(gen, a.prompts, tokenizer, opts, a.logger)
	if err != nil {
		return nil, err
	}
	doc, err := docGen.Generate(ctx, analysis.CodebaseAnalysis, onEvent)
	if err != nil {
		return nil, err
	}
	a.logger.Info("documentation generated",
		"sections", len(doc.Sections),
		"failed", len(doc.Failed()),
		"estimated_tokens", doc.TotalTokens())
	return doc, nil
}

// WriteDocument saves markdown to path, creating parent directories.
func WriteDocument(path, markdown string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	//nolint:gosec // documentation is meant to be readable by others
	if err := os.WriteFile(path, []byte(markdown+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
