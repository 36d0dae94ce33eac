package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sevigo/gitdocify/internal/app"
	"github.com/sevigo/gitdocify/internal/llm"
)

// stdoutPath writes the document to standard output.
const stdoutPath = "-"

var noProgress bool

var generateCmd = &cobra.Command{
	Use:   "generate [path|url]",
	Short: "Analyze a codebase and generate Markdown documentation",
	Long: `Analyze a codebase and generate Markdown documentation.

The input is a local directory (default: the current directory) or a git
repository URL, which is shallow-cloned into a temporary directory.

Examples:
  gitdocify generate
  gitdocify generate ./myproject -o docs/OVERVIEW.md
  gitdocify generate https://github.com/owner/repo --provider gemini --preview`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := bindFlags(cmd, analysisFlagKeys); err != nil {
			return err
		}
		return bindFlags(cmd, map[string]string{
			"output":   "output.path",
			"provider": "ai.llm_provider",
			"model":    "ai.generator_model",
			"timeout":  "ai.timeout",
			"preview":  "output.preview",
		})
	},
	RunE: runGenerate,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	flags := generateCmd.Flags()
	addAnalysisFlags(flags)
	flags.StringP("output", "o", "", `Output file, "-" for stdout (default DOCUMENTATION.md)`)
	flags.String("provider", "", "LLM provider: ollama or gemini")
	flags.String("model", "", "Generator model name")
	flags.Duration("timeout", 0, "Timeout for each model call")
	flags.Bool("preview", false, "Render the generated document in the terminal")
	flags.BoolVar(&noProgress, "no-progress", false, "Disable the interactive progress view")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	input := inputArg(args)
	out := os.Stderr
	timer := newStepTimer(out, 4, verbose)
	overallStart := time.Now()

	titleColor.Fprintln(out, "📚 gitdocify")
	dimColor.Fprintf(out, "   Target: %s\n\n", input)

	// 1. Initialize Application and prepare the input
	timer.step("Preparing repository")
	a, err := initApp()
	if err != nil {
		return err
	}
	cfg := a.Config()

	root, err := a.PrepareRoot(ctx, input)
	if err != nil {
		return err
	}
	defer root.Cleanup()
	if root.Remote != nil {
		timer.info("Cloned %s", root.Remote.FullName())
	}
	timer.done(root.Path)

	// 2. Analyze
	timer.step("Analyzing codebase")
	analysis, err := a.Analyze(ctx, root)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	timer.info("%d files, %d lines", analysis.ProjectInfo.TotalFiles, analysis.ProjectInfo.TotalLines)
	timer.done(fmt.Sprintf("%d skipped", analysis.Skipped()))
	if len(analysis.Files) == 0 {
		return fmt.Errorf("%w in %s\n\nTip: check your exclusion patterns or pass --include-tests", llm.ErrNoFiles, root.Path)
	}

	// 3. Generate
	timer.step(fmt.Sprintf("Generating documentation with %s (%s)", cfg.AI.GeneratorModel, cfg.AI.LLMProvider))
	generate := func(ctx context.Context, onEvent func(llm.Event)) (*llm.Document, error) {
		return a.Generate(ctx, analysis, onEvent)
	}
	var doc *llm.Document
	if cfg.Output.Progress && !noProgress && !verbose {
		doc, err = runWithProgress(ctx, out, ThemeName(cfg.Output.Theme), generate)
	} else {
		doc, err = runPlain(ctx, timer, generate)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("generation cancelled")
		}
		return fmt.Errorf("generation failed: %w", err)
	}
	timer.done(fmt.Sprintf("~%d tokens", doc.TotalTokens()))

	// 4. Write
	timer.step("Writing output")
	if cfg.Output.Path == stdoutPath {
		fmt.Fprintln(os.Stdout, doc.Markdown)
	} else if err := app.WriteDocument(cfg.Output.Path, doc.Markdown); err != nil {
		return err
	}
	timer.done()

	if cfg.Output.Preview && cfg.Output.Path != stdoutPath {
		rendered, err := renderMarkdown(doc.Markdown, ThemeName(cfg.Output.Theme))
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stdout, rendered)
	}

	printGenerateSummary(doc, cfg.Output.Path, time.Since(overallStart))
	return nil
}

func printGenerateSummary(doc *llm.Document, path string, elapsed time.Duration) {
	fmt.Fprintln(os.Stderr)
	if failed := doc.Failed(); len(failed) > 0 {
		warnColor.Fprintf(os.Stderr, "⚠ %d section(s) failed:\n", len(failed))
		for _, s := range failed {
			dimColor.Fprintf(os.Stderr, "   └── %s: %v\n", s.Key, s.Err)
		}
	}
	if path != stdoutPath {
		successColor.Fprintf(os.Stderr, "✓ Documentation written to %s ", path)
	} else {
		successColor.Fprint(os.Stderr, "✓ Documentation generated ")
	}
	dimColor.Fprintf(os.Stderr, "(%s)\n", elapsed.Round(time.Millisecond))
}
