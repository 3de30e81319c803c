package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vetsec/url-security/internal/domain"
	"github.com/vetsec/url-security/internal/domain/heuristics"
)

func newAnalyzeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze URL",
		Short: "Score a single URL and print the verdict",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			result := heuristics.NewEngine(cfg.Lists()).Analyze(args[0])

			if asJSON {
				out := struct {
					URL string `json:"url"`
					domain.AnalysisResult
				}{URL: args[0], AnalysisResult: result}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(out); err != nil {
					return err
				}
			} else {
				printResult(cmd.OutOrStdout(), args[0], result)
			}

			return verdictExit(result.Verdict)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func printResult(w io.Writer, rawURL string, result domain.AnalysisResult) {
	fmt.Fprintf(w, "URL:     %s\n", rawURL)
	fmt.Fprintf(w, "Score:   %d\n", result.Score)
	fmt.Fprintf(w, "Verdict: %s\n", result.Verdict)
	if len(result.Reasons) > 0 {
		fmt.Fprintln(w, "Reasons:")
		for _, reason := range result.Reasons {
			fmt.Fprintf(w, "  - %s\n", reason)
		}
	}
}
