package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// DPI is the rendering resolution for every OCR page.
const DPI = 300

// PageImage is one rendered page. Number is 1-based.
type PageImage struct {
	Number int
	Path   string
}

// rasterize writes doc to a temp dir and renders every page to PNG with pdftoppm.
// The returned cleanup removes the directory and must always be called.
func (e *Extractor) rasterize(ctx context.Context, doc []byte) ([]PageImage, func(), error) {
	tmpDir, err := os.MkdirTemp("", "courtorder-pp-*")
	if err != nil {
		return nil, func() {}, fmt.Errorf("create temp dir: %w", err)
	}
	cleanup := func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			e.logger.Warn("ocr.cleanup_failed", "dir", tmpDir, "error", err)
		}
	}

	in := filepath.Join(tmpDir, "document.pdf")
	if err := os.WriteFile(in, doc, 0o600); err != nil {
		return nil, cleanup, fmt.Errorf("write document: %w", err)
	}

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 300 -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", strconv.Itoa(DPI), "-png", in, prefix)
	if err != nil {
		return nil, cleanup, fmt.Errorf("pdftoppm: %w: %s", err, truncate(strings.TrimSpace(string(errb)), 512))
	}

	// prefix-1.png, prefix-2.png, ... zero-padded to the page count's width
	matches, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, cleanup, err
	}
	pages := make([]PageImage, 0, len(matches))
	for _, m := range matches {
		n, err := pageNumber(prefix, m)
		if err != nil {
			e.logger.Warn("ocr.unexpected_file", "path", m)
			continue
		}
		pages = append(pages, PageImage{Number: n, Path: m})
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Number < pages[j].Number })

	if len(pages) == 0 {
		return nil, cleanup, fmt.Errorf("pdftoppm produced no images")
	}
	if e.cfg.MaxPages > 0 && len(pages) > e.cfg.MaxPages {
		e.logger.Warn("ocr.pages_truncated", "pages", len(pages), "max_pages", e.cfg.MaxPages)
		pages = pages[:e.cfg.MaxPages]
	}
	return pages, cleanup, nil
}

func pageNumber(prefix, path string) (int, error) {
	s := strings.TrimSuffix(strings.TrimPrefix(path, prefix+"-"), ".png")
	return strconv.Atoi(s)
}
