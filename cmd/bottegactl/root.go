package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bottega/internal/cli"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "bottegactl",
	Short: "One-shot inventory import and sales report runs",
	Long: `bottegactl runs shop inventory operations without the HTTP service:
import a pasted-text or .xlsx stock list into a ledger, or replay a demo
day of sales and print the resulting report.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cli.LoadEnvFile()
		level := "warn"
		if verbose {
			level = "debug"
		}
		cli.SetupLogger(level)
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the command tree. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(reportCmd)
}
