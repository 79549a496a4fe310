package cli

import (
	"fmt"

	"github.com/polyglot/api/internal/languages"
	"github.com/spf13/cobra"
)

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List languages with built-in templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, l := range languages.Languages() {
				fmt.Fprintf(out, "%-12s %-12s .%s\n", l.Value, l.Label, l.Extension)
			}
			return nil
		},
	}
}

func newHintsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hints [language]",
		Short: "Show authoring tips for a language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			hints := languages.Hints(args[0])
			if len(hints) == 0 {
				fmt.Fprintf(out, "No hints for %s.\n", args[0])
				return nil
			}
			for _, h := range hints {
				fmt.Fprintf(out, "- %s\n", h)
			}
			return nil
		},
	}
}
