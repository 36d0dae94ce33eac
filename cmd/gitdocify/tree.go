package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sevigo/gitdocify/internal/app"
	"github.com/sevigo/gitdocify/internal/prescan"
)

var treeCmd = &cobra.Command{
	Use:   "tree [path|url]",
	Short: "Print the directory tree as Markdown",
	Args:  cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return bindFlags(cmd, analysisFlagKeys)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAnalysis(cmd, args, func(analysis *app.Analysis) error {
			fmt.Fprint(os.Stdout, prescan.RenderTree(analysis.ProjectInfo.Name, analysis.Structure))
			return nil
		})
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	addAnalysisFlags(treeCmd.Flags())
	rootCmd.AddCommand(treeCmd)
}
