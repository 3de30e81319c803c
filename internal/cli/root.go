package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vetsec/url-security/internal/config"
)

// NewRoot builds the urlvet command tree
func NewRoot(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "urlvet",
		Short:         "urlvet: lexical URL fraud scoring",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Version = version
	cmd.SetVersionTemplate("urlvet {{.Version}}\n")

	cmd.PersistentFlags().String("config", getenvDefault("URLVET_CONFIG", ""),
		"Path to YAML config with server settings and reference lists")

	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newBatchCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// loadConfig resolves the --config flag: an explicit file must load, no flag
// means built-in defaults plus environment overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
