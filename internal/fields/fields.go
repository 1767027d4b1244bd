package fields

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/court-orders/internal/llm"
)

// Fields are the two values a court order must yield. Nil means not found.
type Fields struct {
	NationalID *string `json:"national_id"`
	Action     *string `json:"action"`
}

// Complete reports whether both fields are present.
func (f Fields) Complete() bool { return f.NationalID != nil && f.Action != nil }

// NationalIDOrNone renders the national ID for messages, "None" when absent.
func (f Fields) NationalIDOrNone() string { return orNone(f.NationalID) }

// ActionOrNone renders the action for messages, "None" when absent.
func (f Fields) ActionOrNone() string { return orNone(f.Action) }

func orNone(s *string) string {
	if s == nil {
		return "None"
	}
	return *s
}

// Source records which extractor produced the final Fields.
type Source string

const (
	SourceRegex    Source = "regex"
	SourceFallback Source = "fallback"
)

// Extractor tries the regex patterns first and falls back to inference when
// either field is missing.
type Extractor struct {
	fallback llm.FieldInferencer
	logger   *slog.Logger
}

// NewExtractor wires the fallback; a nil fallback behaves as an unavailable backend.
func NewExtractor(fallback llm.FieldInferencer, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{fallback: fallback, logger: logger}
}

// Extract returns the fields for text. A complete regex result is final. Otherwise
// the fallback result replaces it entirely, after validation, and backend failures
// yield empty Fields.
func (e *Extractor) Extract(ctx context.Context, text string) (Fields, Source) {
	regex := MatchRegex(text)
	if regex.Complete() {
		e.logger.Info("fields.regex.complete", "action", *regex.Action)
		return regex, SourceRegex
	}
	e.logger.Info("fields.regex.incomplete",
		"has_national_id", regex.NationalID != nil,
		"has_action", regex.Action != nil,
	)
	return e.infer(ctx, text), SourceFallback
}

func (e *Extractor) infer(ctx context.Context, text string) (out Fields) {
	if e.fallback == nil {
		e.logger.Warn("fields.fallback.unavailable")
		return Fields{}
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("fields.fallback.panic", "panic", r)
			out = Fields{}
		}
	}()

	inf, err := e.fallback.InferFields(ctx, text)
	if err != nil {
		e.logger.Warn("fields.fallback.error", "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return Fields{}
	}
	if inf.Status == llm.StatusError {
		e.logger.Warn("fields.fallback.status_error", "error_message", inf.ErrorMessage)
		return Fields{}
	}

	valid, rejected := llm.ValidateInference(inf)
	if len(rejected) > 0 {
		e.logger.Warn("fields.fallback.rejected", "fields", rejected)
	}
	e.logger.Info("fields.fallback.ok",
		"has_national_id", valid.NationalID != nil,
		"has_action", valid.Action != nil,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return Fields{NationalID: valid.NationalID, Action: valid.Action}
}
