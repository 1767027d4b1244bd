// Package app wires configuration into a ready Processor for the binaries.
package app

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/court-orders/internal/actions"
	"github.com/joseph-ayodele/court-orders/internal/common"
	"github.com/joseph-ayodele/court-orders/internal/customer"
	"github.com/joseph-ayodele/court-orders/internal/extract"
	"github.com/joseph-ayodele/court-orders/internal/fields"
	"github.com/joseph-ayodele/court-orders/internal/llm"
	"github.com/joseph-ayodele/court-orders/internal/llm/openai"
	"github.com/joseph-ayodele/court-orders/internal/ocr"
	"github.com/joseph-ayodele/court-orders/internal/pdfdoc"
	"github.com/joseph-ayodele/court-orders/internal/pipeline"
)

// NewLogger builds the JSON logger used by every binary.
func NewLogger(cfg common.LogConfig, w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

type App struct {
	Config    *common.Config
	Logger    *slog.Logger
	Store     customer.Store
	Text      *extract.Service
	Fields    *fields.Extractor
	Processor *pipeline.Processor
}

// New opens the customer store and builds the pipeline. The OpenAI client is
// optional: without an API key the fallback and vision OCR are unavailable.
func New(ctx context.Context, cfg *common.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	store, err := customer.Open(ctx, cfg.CustomerStore, logger)
	if err != nil {
		return nil, err
	}

	client := NewLLMClient(cfg.LLM, logger)
	var inferencer llm.FieldInferencer
	if client != nil {
		inferencer = client
	}

	text := NewTextExtractor(cfg.OCR, client, logger)
	fe := fields.NewExtractor(inferencer, logger)
	proc := pipeline.NewProcessor(pipeline.Deps{
		TextExtractor: text,
		Fields:        fe,
		Resolver:      store,
		Dispatcher:    actions.NewDispatcher(logger),
		Logger:        logger,
	})

	logger.Info("app.ready",
		"store", cfg.CustomerStore.Driver,
		"ocr", cfg.OCR.Provider,
		"llm_available", client != nil,
	)
	return &App{Config: cfg, Logger: logger, Store: store, Text: text, Fields: fe, Processor: proc}, nil
}

// Close releases the customer store.
func (a *App) Close() {
	if err := a.Store.Close(); err != nil {
		a.Logger.Error("app.close_store", "error", err)
	}
}

// NewLLMClient returns nil when no API key is configured.
func NewLLMClient(cfg common.LLMConfig, logger *slog.Logger) *openai.Client {
	if logger == nil {
		logger = slog.Default()
	}
	client, err := openai.NewClient(openai.Config{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		Timeout:     cfg.Timeout,
	}, logger)
	if err != nil {
		logger.Warn("llm.unavailable", "error", err)
		return nil
	}
	return client
}

// NewTextExtractor builds the routing extractor with the configured OCR backend.
func NewTextExtractor(cfg common.OCRConfig, client *openai.Client, logger *slog.Logger) *extract.Service {
	router := pdfdoc.NewRouter(logger)
	recognizer := NewRecognizer(cfg, client, logger)
	if recognizer == nil {
		return extract.NewService(router, nil, logger)
	}
	ocrExtractor := ocr.NewExtractor(ocr.Config{
		Pdftoppm:    cfg.Pdftoppm,
		MaxPages:    cfg.MaxPages,
		Concurrency: cfg.Concurrency,
		PageTimeout: cfg.PageTimeout,
	}, recognizer, logger)
	return extract.NewService(router, ocrExtractor, logger)
}

// NewRecognizer picks the OCR backend; nil means OCR is unavailable.
func NewRecognizer(cfg common.OCRConfig, client *openai.Client, logger *slog.Logger) ocr.PageRecognizer {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Provider {
	case common.OCRProviderTesseract:
		return ocr.TesseractRecognizer{
			Binary:      cfg.Tesseract,
			Lang:        cfg.TesseractLang,
			TessdataDir: cfg.TessdataDir,
			Runner:      ocr.ExecRunner{Logger: logger},
		}
	case common.OCRProviderOpenAI:
		if client == nil {
			logger.Warn("ocr.vision_unavailable", "reason", "no OpenAI client")
			return nil
		}
		return ocr.VisionRecognizer{API: client.API(), Model: cfg.VisionModel}
	default:
		return nil
	}
}

// StoreCheck pings the store under a short deadline, for health reporting.
func (a *App) StoreCheck(ctx context.Context) error {
	timeout := a.Config.CustomerStore.QueryTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return a.Store.Ping(ctx)
}
