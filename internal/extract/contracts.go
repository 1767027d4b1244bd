package extract

import (
	"context"
	"time"

	"github.com/joseph-ayodele/court-orders/constants"
)

// TextExtractor is Stage 1: document bytes -> text.
type TextExtractor interface {
	Extract(ctx context.Context, doc []byte) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text     string
	Pages    int
	Kind     constants.DocumentKind
	Method   string // "pdf-text" | "pdf-ocr"
	Duration time.Duration
	Warnings []string
}
