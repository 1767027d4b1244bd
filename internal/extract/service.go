package extract

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/court-orders/constants"
	"github.com/joseph-ayodele/court-orders/internal/common"
	"github.com/joseph-ayodele/court-orders/internal/ocr"
	"github.com/joseph-ayodele/court-orders/internal/pdfdoc"
)

// Classifier decides whether a document needs OCR.
type Classifier interface {
	Classify(ctx context.Context, doc []byte) constants.DocumentKind
}

// OCR extracts text from a scanned document.
type OCR interface {
	Extract(ctx context.Context, doc []byte) (ocr.Result, error)
}

// Service routes a document to direct text extraction or OCR.
type Service struct {
	router Classifier
	ocr    OCR
	direct func(doc []byte) (string, int, error)
	logger *slog.Logger
}

func NewService(router Classifier, ocrExtractor OCR, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{router: router, ocr: ocrExtractor, direct: pdfdoc.ExtractText, logger: logger}
}

// Extract classifies doc and runs the matching strategy. A nil OCR extractor
// yields empty text for scanned documents.
func (s *Service) Extract(ctx context.Context, doc []byte) (TextExtractionResult, error) {
	start := time.Now()
	kind := s.router.Classify(ctx, doc)
	res := TextExtractionResult{Kind: kind}
	rid := common.RequestIDFromContext(ctx)

	switch kind {
	case constants.TextNative:
		res.Method = constants.MethodPDFText
		text, pages, err := s.direct(doc)
		res.Pages = pages
		res.Duration = time.Since(start)
		if err != nil {
			s.logger.Error("extract.direct_failed", "request_id", rid, "error", err)
			return res, err
		}
		res.Text = text
	default:
		res.Method = constants.MethodPDFOCR
		if s.ocr == nil {
			s.logger.Warn("extract.ocr_unavailable", "request_id", rid)
			res.Warnings = []string{"ocr backend unavailable"}
			res.Duration = time.Since(start)
			return res, nil
		}
		r, err := s.ocr.Extract(ctx, doc)
		res.Text = r.Text
		res.Pages = r.Pages
		res.Warnings = r.Warnings
		res.Duration = time.Since(start)
		if err != nil {
			s.logger.Error("extract.ocr_failed", "request_id", rid, "error", err)
			return res, err
		}
	}

	s.logger.Info("extract.done",
		"request_id", rid,
		"kind", kind,
		"method", res.Method,
		"pages", res.Pages,
		"chars", len(res.Text),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
