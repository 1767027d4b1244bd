package pdfdoc

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/joseph-ayodele/court-orders/internal/common"
)

// ErrNoPages is returned for documents that parse but contain no pages.
var ErrNoPages = errors.New("document has no pages")

// pageInfo is what the text layer reveals about one page.
type pageInfo struct {
	Number   int
	Text     string
	HasImage bool
	Err      error
}

// open parses doc with the text-layer reader. Panics raised by the parser on
// malformed input are returned as errors.
func open(doc []byte) (r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r, err = nil, common.PanicError(rec)
		}
	}()
	if len(doc) == 0 {
		return nil, common.NewAppError("PDF_OPEN", "empty document", common.ErrInvalidInput)
	}
	r, err = pdf.NewReader(bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		return nil, common.NewAppError("PDF_OPEN", "parse pdf", err)
	}
	return r, nil
}

// readPage extracts the text of page i and checks its resources for raster images.
func readPage(r *pdf.Reader, i int) (info pageInfo) {
	info.Number = i
	defer func() {
		if rec := recover(); rec != nil {
			info.Err = common.PanicError(rec)
		}
	}()

	p := r.Page(i)
	if p.V.IsNull() {
		info.Err = fmt.Errorf("page %d: missing page object", i)
		return info
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		info.Err = fmt.Errorf("page %d: %w", i, err)
		return info
	}
	info.Text = text
	info.HasImage = hasImageXObject(p)
	return info
}

func hasImageXObject(p pdf.Page) bool {
	xobjs := p.Resources().Key("XObject")
	if xobjs.IsNull() {
		return false
	}
	for _, name := range xobjs.Keys() {
		if xobjs.Key(name).Key("Subtype").Name() == "Image" {
			return true
		}
	}
	return false
}

// ExtractText concatenates the text layer of every page, in order, joined by
// newlines. It fails when the document cannot be parsed.
func ExtractText(doc []byte) (string, int, error) {
	r, err := open(doc)
	if err != nil {
		return "", 0, err
	}
	n := r.NumPage()
	if n == 0 {
		return "", 0, ErrNoPages
	}
	texts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		info := readPage(r, i)
		if info.Err != nil {
			return "", n, common.NewAppError("PDF_TEXT", "extract text", info.Err)
		}
		texts = append(texts, info.Text)
	}
	return strings.Join(texts, "\n"), n, nil
}
