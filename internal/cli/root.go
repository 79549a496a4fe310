// Package cli implements the polyglot command.
package cli

import (
	"fmt"
	"os"

	"github.com/polyglot/api/internal/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verbose bool

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "polyglot",
		Short: "Generate code from plain-language prompts",
		Long: `Polyglot turns a plain-language prompt into code in a chosen language.

It suggests a target language from the prompt's wording, asks a remote
model for code, and falls back to a built-in template when no model is
reachable.

Quick Start:
  polyglot serve                         Start the HTTP API
  polyglot analyze "a REST API in flask" Suggest a language
  polyglot generate -l go "an echo server"`,
		SilenceUsage: true,
		Version:      app.Version,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newLanguagesCmd())
	rootCmd.AddCommand(newHintsCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newPingCmd())
	rootCmd.AddCommand(newTokenCmd())
	rootCmd.AddCommand(newEventsCmd())
	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// commandLogger is silent unless --verbose is set, so command output stays clean
func commandLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := app.NewLogger("stderr")
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
