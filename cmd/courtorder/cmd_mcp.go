package main

import (
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/court-orders/internal/app"
	"github.com/joseph-ayodele/court-orders/internal/server"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the process_court_order tool over MCP stdio",
	Args:  cobra.NoArgs,
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	a, err := app.New(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return server.NewMCPServer(a.Processor, version, cfg.Server.MaxUploadBytes, logger).ServeStdio()
}
