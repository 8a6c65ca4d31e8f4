package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var noColor bool

var rootCmd = &cobra.Command{
	Use:     "foretell",
	Short:   "Whimsical fortune predictions for your terminal",
	Version: version,
	Long: `foretell generates fortune predictions with weighted random selection.

Examples:
  foretell predict
  foretell predict --category career --smart
  foretell predict --theme spooky
  foretell rate 3 5
  foretell history --category fortune --since 2025-01-01`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(remindersCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(mcpCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
