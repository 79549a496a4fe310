package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/polyglot/api/internal/analyzer"
	"github.com/polyglot/api/internal/app"
	"github.com/polyglot/api/internal/config"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var language string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "generate [prompt]",
		Short: "Generate code for a prompt",
		Long: `Generate code for a prompt and print it.

Without --language the analyzer's top suggestion is used.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.TrimSpace(strings.Join(args, " "))
			if prompt == "" {
				return fmt.Errorf("prompt is required")
			}
			if language == "" {
				language = analyzer.Analyze(prompt).PrimarySuggestion
			}

			svc, _ := app.NewGenerator(config.Load(), commandLogger(), nil, nil)
			result := svc.Generate(cmd.Context(), prompt, language)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			fmt.Fprintln(out, result.Code)
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "target language")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}
