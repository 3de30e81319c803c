package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vetsec/url-security/internal/adapters/sources"
	"github.com/vetsec/url-security/internal/application"
	"github.com/vetsec/url-security/internal/domain"
	"github.com/vetsec/url-security/internal/domain/heuristics"
	"github.com/vetsec/url-security/internal/ports"
)

func newBatchCmd() *cobra.Command {
	var (
		concurrency int
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "batch [FILE]",
		Short: "Score URLs from a file or stdin, one per line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			var source ports.URLSource
			if len(args) == 1 {
				source = sources.NewFileSource(args[0])
			} else {
				source = sources.NewStdinSource(cmd.InOrStdin())
			}

			urls, err := source.URLs(cmd.Context())
			if err != nil {
				return err
			}
			if len(urls) == 0 {
				return fmt.Errorf("no URLs in %s", source.Name())
			}

			service := application.NewAnalysisService(nil, heuristics.NewEngine(cfg.Lists()))

			records, err := service.AnalyzeBatch(cmd.Context(), urls, concurrency)
			if err != nil {
				return err
			}

			// The exit code reflects the worst verdict in the batch
			worst := domain.VerdictSafe
			counts := make(map[domain.Verdict]int)
			for i := range records {
				if records[i].Verdict.Severity() > worst.Severity() {
					worst = records[i].Verdict
				}
				counts[records[i].Verdict]++
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(records); err != nil {
					return err
				}
			} else {
				for i := range records {
					fmt.Fprintf(cmd.OutOrStdout(), "%-10s %3d  %s\n",
						records[i].Verdict, records[i].Score, records[i].URL)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\n%d analyzed from %s: %d safe, %d suspicious, %d fraudulent\n",
					len(records), source.Name(),
					counts[domain.VerdictSafe], counts[domain.VerdictSuspicious], counts[domain.VerdictFraudulent])
			}

			return verdictExit(worst)
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 8, "Number of URLs scored in parallel")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	return cmd
}
