package constants

import "strings"

// DocumentKind is the router's verdict for a document.
type DocumentKind string

const (
	TextNative DocumentKind = "TEXT_NATIVE"
	Scanned    DocumentKind = "SCANNED"
)

// Extraction methods recorded on text extraction results.
const (
	MethodPDFText = "pdf-text"
	MethodPDFOCR  = "pdf-ocr"
)

// PDFExtension is the only upload extension accepted by the HTTP surface.
const PDFExtension = "pdf"

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
