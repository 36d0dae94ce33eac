package main

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sevigo/gitdocify/internal/app"
	"github.com/sevigo/gitdocify/internal/core"
)

var (
	outputJSON  bool
	withContent bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path|url]",
	Short: "Scan a codebase and print what was found",
	Long: `Scan a codebase without calling a language model and print a summary of
its languages, dependencies, configuration files and skipped inputs.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return bindFlags(cmd, analysisFlagKeys)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAnalysis(cmd, args, func(analysis *app.Analysis) error {
			if outputJSON {
				result := analysis.CodebaseAnalysis
				if !withContent {
					result = result.WithoutContent()
				}
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(result)
			}
			printSummary(os.Stdout, analysis.CodebaseAnalysis)
			return nil
		})
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	addAnalysisFlags(analyzeCmd.Flags())
	analyzeCmd.Flags().BoolVar(&outputJSON, "json", false, "Output the analysis as JSON")
	analyzeCmd.Flags().BoolVar(&withContent, "with-content", false, "Include raw file content in the JSON output")
	rootCmd.AddCommand(analyzeCmd)
}

// withAnalysis initializes the app, analyzes the input named by args and
// hands the result to fn. Temporary clones are removed afterwards.
func withAnalysis(cmd *cobra.Command, args []string, fn func(*app.Analysis) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := initApp()
	if err != nil {
		return err
	}
	analysis, cleanup, err := analyzeInput(ctx, a, inputArg(args))
	if err != nil {
		return err
	}
	defer cleanup()
	return fn(analysis)
}

func analyzeInput(ctx context.Context, a *app.App, input string) (*app.Analysis, func(), error) {
	root, err := a.PrepareRoot(ctx, input)
	if err != nil {
		return nil, nil, err
	}
	analysis, err := a.Analyze(ctx, root)
	if err != nil {
		root.Cleanup()
		return nil, nil, fmt.Errorf("analysis failed: %w", err)
	}
	return analysis, root.Cleanup, nil
}

func printSummary(w io.Writer, a *core.CodebaseAnalysis) {
	info := a.ProjectInfo
	titleColor.Fprintf(w, "📊 %s\n", info.Name)
	dimColor.Fprintf(w, "   %s\n", info.Path)
	if vcs := info.VCS; vcs != nil {
		ref := vcs.Branch
		if ref == "" {
			ref = "detached"
		}
		if len(vcs.HeadSHA) >= 7 {
			ref += " @ " + vcs.HeadSHA[:7]
		}
		dimColor.Fprintf(w, "   git: %s", ref)
		if vcs.RemoteURL != "" {
			dimColor.Fprintf(w, " (%s)", vcs.RemoteURL)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)

	boldColor.Fprint(w, "Files: ")
	infoColor.Fprintf(w, "%d", info.TotalFiles)
	boldColor.Fprint(w, "   Lines: ")
	infoColor.Fprintf(w, "%d\n\n", info.TotalLines)

	boldColor.Fprintln(w, "Languages")
	for _, lc := range sortedLanguages(info.Languages) {
		fmt.Fprintf(w, "   %-12s %d\n", lc.lang, lc.count)
	}

	fmt.Fprintln(w)
	boldColor.Fprintln(w, "Dependencies")
	if len(a.Dependencies) == 0 {
		dimColor.Fprintln(w, "   none found")
	}
	ecosystems := make([]core.Ecosystem, 0, len(a.Dependencies))
	for eco := range a.Dependencies {
		ecosystems = append(ecosystems, eco)
	}
	slices.Sort(ecosystems)
	for _, eco := range ecosystems {
		deps := a.Dependencies[eco]
		fmt.Fprintf(w, "   %-12s %d", eco, len(deps))
		dimColor.Fprintf(w, "  %s\n", previewList(deps, 6))
	}

	fmt.Fprintln(w)
	boldColor.Fprint(w, "README: ")
	if a.Readme != nil {
		successColor.Fprintln(w, "found")
	} else {
		warnColor.Fprintln(w, "not found")
	}

	boldColor.Fprint(w, "Config files: ")
	names := make([]string, len(a.ConfigFiles))
	for i, c := range a.ConfigFiles {
		names[i] = c.Path
	}
	if len(names) == 0 {
		dimColor.Fprintln(w, "none")
	} else {
		fmt.Fprintln(w, strings.Join(names, ", "))
	}

	if skipped := a.Skipped(); skipped > 0 {
		fmt.Fprintln(w)
		warnColor.Fprintf(w, "⚠ %d input(s) skipped\n", skipped)
	}
	if verbose {
		for _, d := range a.Diagnostics {
			dimColor.Fprintf(w, "   └── [%s] %s: %s\n", d.Kind, d.Path, d.Message)
		}
	}
}

type languageCount struct {
	lang  core.Language
	count int
}

// sortedLanguages orders languages by file count, then by name.
func sortedLanguages(m map[core.Language]int) []languageCount {
	out := make([]languageCount, 0, len(m))
	for lang, count := range m {
		out = append(out, languageCount{lang: lang, count: count})
	}
	slices.SortFunc(out, func(a, b languageCount) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.lang, b.lang)
	})
	return out
}

func previewList(items []string, n int) string {
	if len(items) <= n {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s, … (+%d)", strings.Join(items[:n], ", "), len(items)-n)
}
