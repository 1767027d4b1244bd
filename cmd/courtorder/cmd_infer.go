package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/court-orders/internal/app"
	"github.com/joseph-ayodele/court-orders/internal/fields"
	"github.com/joseph-ayodele/court-orders/internal/llm"
)

var inferCmd = &cobra.Command{
	Use:   "infer <file.txt|->",
	Short: "Extract national ID and action from plain text",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfer,
}

func runInfer(cmd *cobra.Command, args []string) error {
	var text []byte
	var err error
	if args[0] == "-" {
		text, err = io.ReadAll(cmd.InOrStdin())
	} else {
		text, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	var inferencer llm.FieldInferencer
	if client := app.NewLLMClient(cfg.LLM, logger); client != nil {
		inferencer = client
	}

	got, source := fields.NewExtractor(inferencer, logger).Extract(cmd.Context(), string(text))
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		fields.Fields
		Source fields.Source `json:"source"`
	}{got, source})
}
