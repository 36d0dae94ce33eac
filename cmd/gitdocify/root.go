package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sevigo/gitdocify/internal/app"
	"github.com/sevigo/gitdocify/internal/wire"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "gitdocify",
	Short: "gitdocify turns a codebase into Markdown documentation.",
	Long: `gitdocify scans a local directory or a remote git repository, extracts its
structure, dependencies and key files, and asks a language model to write a
Markdown document section by section.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./gitdocify.yaml or ~/.config/gitdocify/gitdocify.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging and step timings")
}

// initConfig runs after flag parsing and before any command.
func initConfig() {
	if verbose {
		viper.Set("logger.level", "debug")
	}
}

// bindFlags binds the command's flags to configuration keys. Binding happens
// in PreRunE because several commands share keys and viper keeps only the
// last binding.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for flag, key := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", flag, err)
		}
	}
	return nil
}

// addAnalysisFlags registers the scan flags shared by several commands.
func addAnalysisFlags(flags *pflag.FlagSet) {
	flags.StringSlice("exclude", nil, "Exclusion pattern, gitignore syntax (repeatable, replaces analysis.exclude)")
	flags.Bool("include-tests", false, "Keep test files and directories in the analysis")
	flags.Int("max-depth", 0, "Maximum depth of the directory tree")
}

var analysisFlagKeys = map[string]string{
	"exclude":       "analysis.exclude",
	"include-tests": "analysis.include_tests",
	"max-depth":     "analysis.max_depth",
}

// initApp builds the application and installs its logger as the default.
func initApp() (*app.App, error) {
	a, err := wire.InitializeApp(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize app: %w\n\nTip: check that your gitdocify.yaml exists and is valid", err)
	}
	slog.SetDefault(a.Logger())
	return a, nil
}

func inputArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}
