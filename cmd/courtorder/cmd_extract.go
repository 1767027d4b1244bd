package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/court-orders/internal/app"
)

var extractTextCmd = &cobra.Command{
	Use:   "extract-text <file.pdf>",
	Short: "Classify a PDF and print its extracted text",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtractText,
}

func runExtractText(cmd *cobra.Command, args []string) error {
	doc, err := readPDF(args[0])
	if err != nil {
		return err
	}
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := withProcessTimeout(cmd, cfg)
	defer cancel()

	client := app.NewLLMClient(cfg.LLM, logger)
	res, err := app.NewTextExtractor(cfg.OCR, client, logger).Extract(ctx, doc)
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# kind=%s method=%s pages=%d duration=%s\n", res.Kind, res.Method, res.Pages, res.Duration.Round(time.Millisecond))
	for _, w := range res.Warnings {
		fmt.Fprintf(out, "# warning: %s\n", w)
	}
	_, err = fmt.Fprintln(out, res.Text)
	return err
}
