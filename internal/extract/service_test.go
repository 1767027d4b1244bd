package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/court-orders/constants"
	"github.com/joseph-ayodele/court-orders/internal/ocr"
	"github.com/joseph-ayodele/court-orders/internal/pdfdoc"
	"github.com/joseph-ayodele/court-orders/internal/pdfdoc/pdftest"
)

type fixedRouter constants.DocumentKind

func (f fixedRouter) Classify(context.Context, []byte) constants.DocumentKind {
	return constants.DocumentKind(f)
}

type stubOCR struct {
	res   ocr.Result
	err   error
	calls int
}

func (s *stubOCR) Extract(context.Context, []byte) (ocr.Result, error) {
	s.calls++
	return s.res, s.err
}

func TestServiceTextNative(t *testing.T) {
	o := &stubOCR{}
	svc := NewService(pdfdoc.NewRouter(nil), o, nil)
	doc := pdftest.TextPDF(t, "National ID: 1234567890", "Action: freeze_account")

	res, err := svc.Extract(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, constants.TextNative, res.Kind)
	assert.Equal(t, constants.MethodPDFText, res.Method)
	assert.Equal(t, 2, res.Pages)
	assert.Contains(t, res.Text, "1234567890")
	assert.Zero(t, o.calls)
}

func TestServiceScannedUsesOCR(t *testing.T) {
	o := &stubOCR{res: ocr.Result{Text: "National ID: 1234567890", Pages: 1, Warnings: []string{"page 2: blurry"}}}
	svc := NewService(pdfdoc.NewRouter(nil), o, nil)

	res, err := svc.Extract(context.Background(), pdftest.ScannedPDF(t, 1))
	require.NoError(t, err)
	assert.Equal(t, constants.Scanned, res.Kind)
	assert.Equal(t, constants.MethodPDFOCR, res.Method)
	assert.Equal(t, "National ID: 1234567890", res.Text)
	assert.Equal(t, []string{"page 2: blurry"}, res.Warnings)
	assert.Equal(t, 1, o.calls)
}

func TestServiceErrors(t *testing.T) {
	t.Run("direct extraction fails", func(t *testing.T) {
		svc := NewService(fixedRouter(constants.TextNative), &stubOCR{}, nil)
		res, err := svc.Extract(context.Background(), []byte("not a pdf"))
		assert.Error(t, err)
		assert.Empty(t, res.Text)
	})

	t.Run("ocr fails", func(t *testing.T) {
		svc := NewService(fixedRouter(constants.Scanned), &stubOCR{err: errors.New("pdftoppm: exit status 1")}, nil)
		res, err := svc.Extract(context.Background(), []byte("%PDF"))
		assert.Error(t, err)
		assert.Empty(t, res.Text)
	})

	t.Run("no ocr backend", func(t *testing.T) {
		svc := NewService(fixedRouter(constants.Scanned), nil, nil)
		res, err := svc.Extract(context.Background(), []byte("%PDF"))
		require.NoError(t, err)
		assert.Empty(t, res.Text)
		assert.NotEmpty(t, res.Warnings)
	})
}
