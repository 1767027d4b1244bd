package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/court-orders/internal/common"
	"github.com/joseph-ayodele/court-orders/internal/llm/openai"
	"github.com/joseph-ayodele/court-orders/internal/ocr"
	"github.com/joseph-ayodele/court-orders/internal/pdfdoc/pdftest"
)

func testConfig(t *testing.T) *common.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "customers.csv")
	require.NoError(t, os.WriteFile(path, []byte("national_id,customer_id\n1234567890,C123\n"), 0o600))

	cfg, err := common.LoadConfig(common.NewViper(), "")
	require.NoError(t, err)
	cfg.CustomerStore.Driver = common.StoreDriverCSV
	cfg.CustomerStore.Path = path
	cfg.OCR.Provider = common.OCRProviderNone
	cfg.LLM.APIKey = ""
	return cfg
}

func TestNewProcessesTextPDF(t *testing.T) {
	var logs bytes.Buffer
	a, err := New(context.Background(), testConfig(t), NewLogger(common.LogConfig{Level: "debug"}, &logs))
	require.NoError(t, err)
	defer a.Close()

	doc := pdftest.TextPDF(t, "National ID: 1234567890", "Action: issue_notice")
	assert.Equal(t, "Issue notice for C123", a.Processor.Process(context.Background(), doc))
	assert.NoError(t, a.StoreCheck(context.Background()))
	assert.Contains(t, logs.String(), `"msg":"app.ready"`)
	assert.Contains(t, logs.String(), `"llm_available":false`)
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.CustomerStore.Driver = "mongo"
	_, err := New(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestStoreCheckFailsForMissingFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.CustomerStore.Path = filepath.Join(t.TempDir(), "missing.csv")
	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Error(t, a.StoreCheck(context.Background()))
}

func TestNewRecognizer(t *testing.T) {
	cfg := common.OCRConfig{Tesseract: "tesseract", TesseractLang: "eng"}
	client := openai.NewClientWithAPI(openai.Config{}, nil, nil)

	cfg.Provider = common.OCRProviderTesseract
	assert.IsType(t, ocr.TesseractRecognizer{}, NewRecognizer(cfg, nil, nil))

	cfg.Provider = common.OCRProviderOpenAI
	assert.IsType(t, ocr.VisionRecognizer{}, NewRecognizer(cfg, client, nil))
	assert.Nil(t, NewRecognizer(cfg, nil, slogDiscard()))

	cfg.Provider = common.OCRProviderNone
	assert.Nil(t, NewRecognizer(cfg, client, nil))
}

func TestNewLLMClientWithoutKey(t *testing.T) {
	assert.Nil(t, NewLLMClient(common.LLMConfig{}, slogDiscard()))
	assert.NotNil(t, NewLLMClient(common.LLMConfig{APIKey: "sk-test"}, slogDiscard()))
}
