package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview <file.md>",
	Short: "Render a Markdown file in the terminal",
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return bindFlags(cmd, map[string]string{"theme": "output.theme"})
	},
	RunE: func(_ *cobra.Command, args []string) error {
		a, err := initApp()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		rendered, err := renderMarkdown(string(data), ThemeName(a.Config().Output.Theme))
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stdout, rendered)
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	names := make([]string, 0, len(palettes))
	for _, t := range ListThemes() {
		names = append(names, string(t))
	}
	previewCmd.Flags().String("theme", "", "Glamour style ("+strings.Join(names, ", ")+")")
	rootCmd.AddCommand(previewCmd)
}

// renderMarkdown renders md with the glamour style named by theme. Unknown
// themes fall back to dark.
func renderMarkdown(md string, theme ThemeName) (string, error) {
	if _, ok := palettes[theme]; !ok {
		theme = ThemeDark
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(string(theme)),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
