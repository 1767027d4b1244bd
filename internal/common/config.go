package common

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	OCR           OCRConfig
	LLM           LLMConfig
	CustomerStore CustomerStoreConfig
	Log           LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr       string
	GRPCAddr       string
	MaxUploadBytes int64
	ProcessTimeout time.Duration
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Provider      string // tesseract | openai | none
	Pdftoppm      string
	Tesseract     string
	TesseractLang string
	TessdataDir   string
	MaxPages      int
	Concurrency   int
	PageTimeout   time.Duration
	VisionModel   string
}

// LLMConfig holds LLM-related configuration
type LLMConfig struct {
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
}

// CustomerStoreConfig selects and tunes the customer lookup backend.
type CustomerStoreConfig struct {
	Driver          string // csv | xlsx | sqlite | postgres
	Path            string // csv, xlsx and sqlite
	Sheet           string // xlsx only; empty means first sheet
	DSN             string // postgres only
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
	QueryTimeout    time.Duration
}

type LogConfig struct {
	Level string
}

const (
	OCRProviderTesseract = "tesseract"
	OCRProviderOpenAI    = "openai"
	OCRProviderNone      = "none"

	StoreDriverCSV      = "csv"
	StoreDriverXLSX     = "xlsx"
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
)

// setting ties a viper key to its environment variable, flag and default.
type setting struct {
	key   string
	env   string
	flag  string
	def   any
	usage string
}

var settings = []setting{
	{"server.http_addr", "HTTP_ADDR", "http-addr", ":8000", "HTTP listen address"},
	{"server.grpc_addr", "GRPC_ADDR", "grpc-addr", ":9090", "gRPC health listen address (empty disables)"},
	{"server.max_upload_bytes", "MAX_UPLOAD_BYTES", "max-upload-bytes", int64(20 << 20), "maximum accepted upload size"},
	{"server.process_timeout", "PROCESS_TIMEOUT", "process-timeout", 2 * time.Minute, "per-document processing deadline"},

	{"ocr.provider", "OCR_PROVIDER", "ocr-provider", OCRProviderTesseract, "OCR backend: tesseract | openai | none"},
	{"ocr.pdftoppm", "PDFTOPPM", "pdftoppm", "pdftoppm", "pdftoppm binary"},
	{"ocr.tesseract", "TESSERACT", "tesseract", "tesseract", "tesseract binary"},
	{"ocr.tesseract_lang", "TESSERACT_LANG", "tesseract-lang", "eng", "tesseract language"},
	{"ocr.tessdata_dir", "TESSDATA_PREFIX", "tessdata-dir", "", "tesseract data directory"},
	{"ocr.max_pages", "OCR_MAX_PAGES", "ocr-max-pages", 0, "maximum pages to OCR (0 = all)"},
	{"ocr.concurrency", "OCR_CONCURRENCY", "ocr-concurrency", 4, "pages recognised in parallel"},
	{"ocr.page_timeout", "OCR_PAGE_TIMEOUT", "ocr-page-timeout", 60 * time.Second, "per-page OCR deadline"},
	{"ocr.vision_model", "OCR_VISION_MODEL", "ocr-vision-model", "gpt-4o", "model used by the openai OCR provider"},

	{"llm.model", "OPENAI_MODEL", "llm-model", "gpt-3.5-turbo", "model used for field inference"},
	{"llm.api_key", "OPENAI_API_KEY", "", "", ""},
	{"llm.base_url", "OPENAI_BASE_URL", "llm-base-url", "", "OpenAI-compatible API base URL"},
	{"llm.temperature", "OPENAI_TEMPERATURE", "llm-temperature", 0.0, "sampling temperature"},
	{"llm.timeout", "OPENAI_TIMEOUT", "llm-timeout", 45 * time.Second, "inference request deadline"},

	{"customer_store.driver", "CUSTOMER_STORE_DRIVER", "store-driver", StoreDriverCSV, "customer store: csv | xlsx | sqlite | postgres"},
	{"customer_store.path", "CUSTOMER_STORE_PATH", "store-path", "data/customers.csv", "customer file or sqlite database path"},
	{"customer_store.sheet", "CUSTOMER_STORE_SHEET", "store-sheet", "", "xlsx sheet name"},
	{"customer_store.dsn", "DB_URL", "", "", ""},
	{"customer_store.max_conns", "DB_MAX_CONNS", "", int32(10), ""},
	{"customer_store.min_conns", "DB_MIN_CONNS", "", int32(1), ""},
	{"customer_store.max_conn_lifetime", "DB_MAX_CONN_LIFETIME", "", 30 * time.Minute, ""},
	{"customer_store.max_conn_idle_time", "DB_MAX_CONN_IDLE_TIME", "", 5 * time.Minute, ""},
	{"customer_store.dial_timeout", "DB_DIAL_TIMEOUT", "", 3 * time.Second, ""},
	{"customer_store.query_timeout", "CUSTOMER_QUERY_TIMEOUT", "store-query-timeout", 5 * time.Second, "customer lookup deadline"},

	{"log.level", "LOG_LEVEL", "log-level", "info", "log level: debug | info | warn | error"},
}

// NewViper returns a viper instance carrying defaults and environment bindings.
func NewViper() *viper.Viper {
	v := viper.New()
	for _, s := range settings {
		v.SetDefault(s.key, s.def)
		_ = v.BindEnv(s.key, s.env)
	}
	return v
}

// BindFlags registers the command-line flags on fs and binds them to v.
// Secrets and pool tuning are environment-only.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	for _, s := range settings {
		if s.flag == "" {
			continue
		}
		switch d := s.def.(type) {
		case string:
			fs.String(s.flag, d, s.usage)
		case int:
			fs.Int(s.flag, d, s.usage)
		case int32:
			fs.Int32(s.flag, d, s.usage)
		case int64:
			fs.Int64(s.flag, d, s.usage)
		case float64:
			fs.Float64(s.flag, d, s.usage)
		case time.Duration:
			fs.Duration(s.flag, d, s.usage)
		}
		_ = v.BindPFlag(s.key, fs.Lookup(s.flag))
	}
}

// LoadConfig reads the optional config file and decodes v into a Config.
func LoadConfig(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, NewAppError("CONFIG_ERROR", "read config file "+file, err)
		}
	}
	return &Config{
		Server: ServerConfig{
			HTTPAddr:       v.GetString("server.http_addr"),
			GRPCAddr:       v.GetString("server.grpc_addr"),
			MaxUploadBytes: v.GetInt64("server.max_upload_bytes"),
			ProcessTimeout: v.GetDuration("server.process_timeout"),
		},
		OCR: OCRConfig{
			Provider:      strings.ToLower(v.GetString("ocr.provider")),
			Pdftoppm:      v.GetString("ocr.pdftoppm"),
			Tesseract:     v.GetString("ocr.tesseract"),
			TesseractLang: v.GetString("ocr.tesseract_lang"),
			TessdataDir:   v.GetString("ocr.tessdata_dir"),
			MaxPages:      v.GetInt("ocr.max_pages"),
			Concurrency:   v.GetInt("ocr.concurrency"),
			PageTimeout:   v.GetDuration("ocr.page_timeout"),
			VisionModel:   v.GetString("ocr.vision_model"),
		},
		LLM: LLMConfig{
			Model:       v.GetString("llm.model"),
			APIKey:      v.GetString("llm.api_key"),
			BaseURL:     v.GetString("llm.base_url"),
			Temperature: float32(v.GetFloat64("llm.temperature")),
			Timeout:     v.GetDuration("llm.timeout"),
		},
		CustomerStore: CustomerStoreConfig{
			Driver:          strings.ToLower(v.GetString("customer_store.driver")),
			Path:            v.GetString("customer_store.path"),
			Sheet:           v.GetString("customer_store.sheet"),
			DSN:             v.GetString("customer_store.dsn"),
			MaxConns:        v.GetInt32("customer_store.max_conns"),
			MinConns:        v.GetInt32("customer_store.min_conns"),
			MaxConnLifetime: v.GetDuration("customer_store.max_conn_lifetime"),
			MaxConnIdleTime: v.GetDuration("customer_store.max_conn_idle_time"),
			DialTimeout:     v.GetDuration("customer_store.dial_timeout"),
			QueryTimeout:    v.GetDuration("customer_store.query_timeout"),
		},
		Log: LogConfig{
			Level: strings.ToLower(v.GetString("log.level")),
		},
	}, nil
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	validator := NewValidator().
		Field("server.http_addr", c.Server.HTTPAddr, Required).
		Field("ocr.provider", c.OCR.Provider, OneOf(OCRProviderTesseract, OCRProviderOpenAI, OCRProviderNone)).
		Field("customer_store.driver", c.CustomerStore.Driver, OneOf(StoreDriverCSV, StoreDriverXLSX, StoreDriverSQLite, StoreDriverPostgres)).
		Field("log.level", c.Log.Level, OneOf("debug", "info", "warn", "error"))

	switch c.CustomerStore.Driver {
	case StoreDriverPostgres:
		validator.Field("DB_URL", c.CustomerStore.DSN, Required)
	case StoreDriverCSV, StoreDriverXLSX, StoreDriverSQLite:
		validator.Field("customer_store.path", c.CustomerStore.Path, Required)
	}
	if c.OCR.Concurrency < 1 {
		validator.Field("ocr.concurrency", c.OCR.Concurrency, func(name string, value any) *ValidationError {
			return &ValidationError{Field: name, Value: value, Message: "must be at least 1"}
		})
	}

	if validator.HasErrors() {
		return NewAppError("CONFIG_ERROR", validator.ErrorMessage(), ErrInvalidInput)
	}
	return nil
}

// SlogLevel maps the configured level name to a slog.Level.
func (c LogConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// String renders the config without secrets, for startup logs.
func (c *Config) String() string {
	key := "unset"
	if c.LLM.APIKey != "" {
		key = "set"
	}
	return fmt.Sprintf("http=%s grpc=%s ocr=%s llm=%s(api_key=%s) store=%s log=%s",
		c.Server.HTTPAddr, c.Server.GRPCAddr, c.OCR.Provider, c.LLM.Model, key, c.CustomerStore.Driver, c.Log.Level)
}
