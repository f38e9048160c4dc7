package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vachan-cat/cattrans/internal/logging"
)

var logLevel string

// rootCmd is the base command every subcommand attaches to via init().
var rootCmd = &cobra.Command{
	Use:   "cattrans",
	Short: "Computer-aided translation engine for Bible translation projects",
	Long: `cattrans manages source sentences, drafts, and learned translation
suggestions for Bible translation projects: tokenizing source text,
applying confirmed translations, and auto-filling the rest from a
context-sensitive suggestion model.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

// Execute runs the root command, the single entry point main calls.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
