package pdfdoc

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/joseph-ayodele/court-orders/constants"
	"github.com/joseph-ayodele/court-orders/internal/common"
)

var disableConfigDir sync.Once

// Router decides whether a document needs OCR.
type Router struct {
	logger *slog.Logger
}

func NewRouter(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	disableConfigDir.Do(api.DisableConfigDir)
	return &Router{logger: logger}
}

// Classify returns Scanned when any page has no text but carries a raster image.
// Documents that cannot be opened, have no pages, or have a page that fails to
// classify are also Scanned.
func (r *Router) Classify(ctx context.Context, doc []byte) constants.DocumentKind {
	start := time.Now()
	kind, reason := r.classify(doc)
	r.logger.Info("router.classified",
		"kind", kind,
		"reason", reason,
		"request_id", common.RequestIDFromContext(ctx),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return kind
}

func (r *Router) classify(doc []byte) (constants.DocumentKind, string) {
	reader, err := open(doc)
	if err != nil {
		r.logger.Warn("router.open_failed", "error", err)
		return constants.Scanned, "open_failed"
	}
	n := reader.NumPage()
	if n == 0 {
		return constants.Scanned, "no_pages"
	}

	// pdfcpu walks inherited resources and form XObjects; only consulted
	// for text-less pages the shallow resource scan found no image on.
	var imagePages map[int]bool
	var imageErr error
	var loaded bool

	for i := 1; i <= n; i++ {
		info := readPage(reader, i)
		if info.Err != nil {
			r.logger.Warn("router.page_failed", "page", i, "error", info.Err)
			return constants.Scanned, "page_failed"
		}
		if hasText(info.Text) {
			continue
		}
		if info.HasImage {
			return constants.Scanned, "image_only_page"
		}
		if !loaded {
			imagePages, imageErr = pagesWithImages(doc)
			loaded = true
		}
		if imageErr != nil {
			r.logger.Warn("router.image_scan_failed", "error", imageErr)
			return constants.Scanned, "image_scan_failed"
		}
		if imagePages[i] {
			return constants.Scanned, "image_only_page"
		}
	}
	return constants.TextNative, "text_layer"
}

func hasText(s string) bool { return strings.TrimSpace(s) != "" }

// pagesWithImages reports, per 1-based page number, whether pdfcpu found image
// objects on the page.
func pagesWithImages(doc []byte) (pages map[int]bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			pages, err = nil, common.PanicError(rec)
		}
	}()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(doc), conf)
	if err != nil {
		return nil, common.NewAppError("PDF_STRUCTURE", "read pdf structure", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, common.NewAppError("PDF_STRUCTURE", "page count", err)
	}

	pages = make(map[int]bool, ctx.PageCount)
	for p := 1; p <= ctx.PageCount; p++ {
		pages[p] = len(pdfcpu.ImageObjNrs(ctx, p)) > 0
	}
	return pages, nil
}
