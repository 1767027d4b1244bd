package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/court-orders/internal/app"
	"github.com/joseph-ayodele/court-orders/internal/common"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	v          = common.NewViper()
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "courtorder",
	Short: "Process court-order PDFs against the customer register",
	Long: "courtorder extracts the national ID and requested action from a court-order PDF,\n" +
		"resolves the customer and executes the action.",
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "optional config file (yaml, json, toml)")
	common.BindFlags(v, pf)

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(extractTextCmd)
	rootCmd.AddCommand(inferCmd)
	rootCmd.AddCommand(customersCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.Version = version
}

// loadConfig reads and validates configuration. Logs go to stderr so stdout
// carries only command output.
func loadConfig(cmd *cobra.Command) (*common.Config, *slog.Logger, error) {
	cfg, err := common.LoadConfig(v, configFile)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	logger := app.NewLogger(cfg.Log, logOutput(cmd))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func logOutput(cmd *cobra.Command) io.Writer {
	return cmd.ErrOrStderr()
}
