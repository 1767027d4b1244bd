package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/court-orders/constants"
	"github.com/joseph-ayodele/court-orders/internal/app"
	"github.com/joseph-ayodele/court-orders/internal/common"
)

var processFlags struct {
	json bool
}

var processCmd = &cobra.Command{
	Use:   "process <file.pdf>",
	Short: "Run the full pipeline on a PDF and print the result",
	Args:  cobra.ExactArgs(1),
	RunE:  runProcess,
}

func init() {
	processCmd.Flags().BoolVar(&processFlags.json, "json", false, "print the run summary as JSON")
}

func runProcess(cmd *cobra.Command, args []string) error {
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
	ctx, _ = common.EnsureRequestID(ctx)

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	run := a.Processor.ProcessDetailed(ctx, doc)
	out := cmd.OutOrStdout()
	if processFlags.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(run.Summary())
	}
	_, err = fmt.Fprintln(out, run.Result)
	return err
}

func readPDF(path string) ([]byte, error) {
	if constants.NormalizeExt(filepath.Ext(path)) != constants.PDFExtension {
		return nil, fmt.Errorf("%s: only PDF files are supported", path)
	}
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return doc, nil
}
