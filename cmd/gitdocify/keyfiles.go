package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sevigo/gitdocify/internal/app"
	"github.com/sevigo/gitdocify/internal/prescan"
)

var keyFilesLimit int

var keyFilesCmd = &cobra.Command{
	Use:   "keyfiles [path|url]",
	Short: "List the files that best explain a codebase",
	Args:  cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return bindFlags(cmd, analysisFlagKeys)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withAnalysis(cmd, args, func(analysis *app.Analysis) error {
			files := prescan.SelectKeyFiles(analysis.Files)
			if keyFilesLimit > 0 && len(files) > keyFilesLimit {
				files = files[:keyFilesLimit]
			}
			if len(files) == 0 {
				dimColor.Println("No key files found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "RANK\tPATH\tLANGUAGE\tLINES\tCLASSES\tFUNCTIONS")
			for i, f := range files {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\n",
					i+1,
					f.Path,
					f.Language,
					f.Lines,
					len(f.Classes),
					len(f.Functions),
				)
			}
			return w.Flush()
		})
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	addAnalysisFlags(keyFilesCmd.Flags())
	keyFilesCmd.Flags().IntVarP(&keyFilesLimit, "limit", "n", 10, "Number of files to list (0 for all)")
	rootCmd.AddCommand(keyFilesCmd)
}
