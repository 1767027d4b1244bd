package openai

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/joseph-ayodele/court-orders/internal/common"
)

// Config for the OpenAI client.
type Config struct {
	APIKey       string
	BaseURL      string        // default https://api.openai.com/v1
	Model        string        // default gpt-3.5-turbo
	Temperature  float32       // 0..2
	Timeout      time.Duration // per inference call
	MaxTextChars int           // document text sent to the model, default 12000
}

// ChatCompleter is the slice of the go-openai client the inferencer needs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error)
}

type Client struct {
	cfg    Config
	api    ChatCompleter
	logger *slog.Logger
}

func withDefaults(cfg Config) Config {
	if cfg.Model == "" {
		cfg.Model = "gpt-3.5-turbo"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if cfg.MaxTextChars <= 0 {
		cfg.MaxTextChars = 12000
	}
	return cfg
}

// NewClient builds an inferencer on top of the go-openai client. Without an API
// key the backend is unavailable and an error wrapping common.ErrUnavailable is
// returned.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, common.NewAppError("LLM_UNAVAILABLE", "OPENAI_API_KEY is not set", common.ErrUnavailable)
	}
	cfg = withDefaults(cfg)
	oc := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	return NewClientWithAPI(cfg, goopenai.NewClientWithConfig(oc), logger), nil
}

// NewClientWithAPI wires an existing ChatCompleter.
func NewClientWithAPI(cfg Config, api ChatCompleter, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{cfg: withDefaults(cfg), api: api, logger: logger}
}

// Model reports the configured model name.
func (c *Client) Model() string { return c.cfg.Model }

// API exposes the underlying completer so other backends (vision OCR) can share it.
func (c *Client) API() ChatCompleter { return c.api }
