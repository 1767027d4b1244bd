package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/court-orders/internal/common"
)

func withProcessTimeout(cmd *cobra.Command, cfg *common.Config) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Server.ProcessTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, cfg.Server.ProcessTimeout)
}
