// Package server exposes the pipeline over HTTP, gRPC health and MCP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/court-orders/constants"
	"github.com/joseph-ayodele/court-orders/internal/common"
)

const unsupportedFileDetail = "Only PDF files are supported."

// Processor is the pipeline entry point the surfaces call.
type Processor interface {
	Process(ctx context.Context, doc []byte) string
}

type HTTPHandler struct {
	proc   Processor
	cfg    common.ServerConfig
	logger *slog.Logger
	mux    *http.ServeMux
}

// NewHTTPHandler serves POST /process_doc and GET /healthz.
func NewHTTPHandler(proc Processor, cfg common.ServerConfig, logger *slog.Logger) *HTTPHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20 << 20
	}
	h := &HTTPHandler{proc: proc, cfg: cfg, logger: logger, mux: http.NewServeMux()}
	h.mux.HandleFunc("POST /process_doc", h.processDoc)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	return h
}

func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *HTTPHandler) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func (h *HTTPHandler) processDoc(w http.ResponseWriter, r *http.Request) {
	ctx, rid := common.EnsureRequestID(r.Context())
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Warn("http.process_doc.too_large", "request_id", rid, "limit", tooLarge.Limit)
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"detail": "File too large."})
			return
		}
		h.logger.Warn("http.process_doc.bad_form", "request_id", rid, "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Missing file upload."})
		return
	}
	defer file.Close()

	if constants.NormalizeExt(filepath.Ext(header.Filename)) != constants.PDFExtension {
		h.logger.Info("http.process_doc.rejected", "request_id", rid, "filename", header.Filename)
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": unsupportedFileDetail})
		return
	}

	doc, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("http.process_doc.read_failed", "request_id", rid, "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Could not read upload."})
		return
	}

	if h.cfg.ProcessTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.cfg.ProcessTimeout)
		defer cancel()
	}
	result := h.proc.Process(ctx, doc)

	h.logger.Info("http.process_doc.ok",
		"request_id", rid,
		"filename", header.Filename,
		"bytes", len(doc),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
