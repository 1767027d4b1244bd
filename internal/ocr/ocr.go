// Package ocr renders PDF pages to images and recognizes their text.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/court-orders/constants"
)

type Config struct {
	Pdftoppm    string        // binary name or absolute path; if empty -> "pdftoppm"
	MaxPages    int           // 0 = no limit
	Concurrency int           // pages recognized in parallel, default 4
	PageTimeout time.Duration // 0 = no per-page deadline
}

type Result struct {
	Text     string
	Pages    int
	Method   string
	Duration time.Duration
	Warnings []string
}

type Extractor struct {
	cfg        Config
	recognizer PageRecognizer
	runner     Runner
	logger     *slog.Logger
}

// NewExtractor returns an extractor backed by recognizer. A nil recognizer is an
// unavailable backend: Extract yields empty text without rendering anything.
func NewExtractor(cfg Config, recognizer PageRecognizer, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	return &Extractor{cfg: cfg, recognizer: recognizer, runner: ExecRunner{Logger: logger}, logger: logger}
}

// WithRunner replaces the command runner used for rasterizing.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	e.runner = r
	return e
}

// Extract renders doc and recognizes every page, preserving page order in the
// concatenated text. Failed pages contribute empty text and a warning. Only a
// rendering failure is returned as an error.
func (e *Extractor) Extract(ctx context.Context, doc []byte) (Result, error) {
	start := time.Now()
	res := Result{Method: constants.MethodPDFOCR}
	if e.recognizer == nil {
		e.logger.Warn("ocr.unavailable")
		res.Warnings = append(res.Warnings, "ocr backend unavailable")
		return res, nil
	}

	pages, cleanup, err := e.rasterize(ctx, doc)
	defer cleanup()
	if err != nil {
		e.logger.Error("ocr.rasterize_failed", "error", err)
		res.Duration = time.Since(start)
		return res, err
	}
	res.Pages = len(pages)

	texts := make([]string, len(pages))
	warns := make([]string, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Concurrency)
	for i, page := range pages {
		g.Go(func() error {
			txt, err := e.recognize(gctx, page)
			if errors.Is(err, ErrUnavailable) {
				return err
			}
			if err != nil {
				e.logger.Warn("ocr.page.error", "page", page.Number, "error", err)
				warns[i] = fmt.Sprintf("page %d: %v", page.Number, err)
				return nil
			}
			texts[i] = Normalize(txt)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		e.logger.Warn("ocr.unavailable", "error", err)
		res.Warnings = append(res.Warnings, "ocr backend unavailable")
		res.Duration = time.Since(start)
		return res, nil
	}

	for _, w := range warns {
		if w != "" {
			res.Warnings = append(res.Warnings, w)
		}
	}
	res.Text = strings.TrimSpace(strings.Join(texts, "\n"))
	res.Duration = time.Since(start)
	e.logger.Info("ocr.done",
		"pages", res.Pages,
		"chars", len(res.Text),
		"warnings", len(res.Warnings),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

func (e *Extractor) recognize(ctx context.Context, page PageImage) (txt string, err error) {
	if e.cfg.PageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.PageTimeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recognizer panic: %v", r)
		}
	}()
	return e.recognizer.Recognize(ctx, page)
}
