package cli

import (
	"fmt"
	"strings"

	"github.com/polyglot/api/internal/analyzer"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [prompt]",
		Short: "Suggest a target language for a prompt",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			result := analyzer.Analyze(prompt)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Primary: %s (confidence %.2f)\n", result.PrimarySuggestion, result.Confidence)
			if len(result.Suggestions) == 0 {
				fmt.Fprintln(out, "No language signals found.")
				return nil
			}

			fmt.Fprintln(out)
			for i, s := range result.Suggestions {
				fmt.Fprintf(out, "%d. %-12s score %5.2f  confidence %.2f", i+1, s.Language, s.Score, s.Confidence)
				if len(s.Matches.Keywords) > 0 {
					fmt.Fprintf(out, "  keywords: %s", strings.Join(s.Matches.Keywords, ", "))
				}
				fmt.Fprintln(out)
			}

			frameworks := analyzer.FrameworkSuggestions(result.PrimarySuggestion, prompt)
			if len(frameworks) > 0 {
				fmt.Fprintf(out, "\nFrameworks: %s\n", strings.Join(frameworks, ", "))
			}
			return nil
		},
	}
}
