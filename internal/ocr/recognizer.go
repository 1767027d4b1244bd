package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/joseph-ayodele/court-orders/internal/common"
)

// PageRecognizer turns one rendered page into text.
type PageRecognizer interface {
	Recognize(ctx context.Context, page PageImage) (string, error)
}

// ErrUnavailable marks a backend that cannot serve any page. The extractor
// stops early and returns empty text.
var ErrUnavailable = common.ErrUnavailable

// TesseractRecognizer shells out to the tesseract CLI.
type TesseractRecognizer struct {
	Binary      string // default "tesseract"
	Lang        string // default "eng"
	TessdataDir string
	Runner      Runner
}

func (t TesseractRecognizer) Recognize(ctx context.Context, page PageImage) (string, error) {
	bin := t.Binary
	if bin == "" {
		bin = "tesseract"
	}
	lang := t.Lang
	if lang == "" {
		lang = "eng"
	}
	runner := t.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	// tesseract <file> stdout -l <lang>
	args := []string{page.Path, "stdout", "-l", lang, "--dpi", fmt.Sprint(DPI)}
	if t.TessdataDir != "" {
		args = append(args, "--tessdata-dir", t.TessdataDir)
	}
	out, errb, err := runner.Run(ctx, bin, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract page %d: %w: %s", page.Number, err, truncate(strings.TrimSpace(string(errb)), 512))
	}
	return rePipeNoise.ReplaceAllString(string(out), ""), nil
}
