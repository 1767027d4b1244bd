// Package pdftest builds small PDF documents for tests.
package pdftest

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
)

// TextPDF returns a document with one page per entry; each entry's lines are
// written as separate cells.
func TextPDF(t testing.TB, pages ...string) []byte {
	t.Helper()
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 12)
	for _, page := range pages {
		pdf.AddPage()
		for _, line := range strings.Split(page, "\n") {
			pdf.Cell(0, 10, line)
			pdf.Ln(10)
		}
	}
	return output(t, pdf)
}

// ScannedPDF returns a document whose pages hold only a raster image.
func ScannedPDF(t testing.TB, pages int) []byte {
	t.Helper()
	pdf := gofpdf.New("P", "mm", "A4", "")
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("scan", opts, bytes.NewReader(PNG(t)))
	for i := 0; i < pages; i++ {
		pdf.AddPage()
		pdf.ImageOptions("scan", 10, 10, 150, 150, false, opts, 0, "")
	}
	return output(t, pdf)
}

// MixedPDF returns a text page followed by an image-only page.
func MixedPDF(t testing.TB, text string) []byte {
	t.Helper()
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.AddPage()
	pdf.Cell(0, 10, text)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("scan", opts, bytes.NewReader(PNG(t)))
	pdf.AddPage()
	pdf.ImageOptions("scan", 10, 10, 150, 150, false, opts, 0, "")
	return output(t, pdf)
}

// PNG returns a small grayscale image.
func PNG(t testing.TB) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 32, 32))
	for x := 0; x < 32; x++ {
		for y := 0; y < 32; y++ {
			img.SetGray(x, y, color.Gray{Y: uint8((x * y) % 256)})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func output(t testing.TB, pdf *gofpdf.Fpdf) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("render pdf: %v", err)
	}
	return buf.Bytes()
}
