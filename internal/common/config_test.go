package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(NewViper(), "")
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Server.HTTPAddr)
	assert.Equal(t, OCRProviderTesseract, cfg.OCR.Provider)
	assert.Equal(t, 4, cfg.OCR.Concurrency)
	assert.Equal(t, "gpt-3.5-turbo", cfg.LLM.Model)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, StoreDriverCSV, cfg.CustomerStore.Driver)
	assert.Equal(t, "data/customers.csv", cfg.CustomerStore.Path)
	assert.Equal(t, int32(10), cfg.CustomerStore.MaxConns)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("OCR_PROVIDER", "OpenAI")
	t.Setenv("OCR_PAGE_TIMEOUT", "15s")
	t.Setenv("CUSTOMER_STORE_DRIVER", "postgres")
	t.Setenv("DB_URL", "postgres://localhost/courts")

	cfg, err := LoadConfig(NewViper(), "")
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, OCRProviderOpenAI, cfg.OCR.Provider)
	assert.Equal(t, 15*time.Second, cfg.OCR.PageTimeout)
	assert.Equal(t, "postgres://localhost/courts", cfg.CustomerStore.DSN)
	assert.NoError(t, cfg.Validate())
	assert.NotContains(t, cfg.String(), "sk-test")
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("OCR_PROVIDER", "openai")

	v := NewViper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(v, fs)
	require.NoError(t, fs.Parse([]string{"--ocr-provider=none", "--store-driver=sqlite", "--store-path=/tmp/c.db"}))

	cfg, err := LoadConfig(v, "")
	require.NoError(t, err)
	assert.Equal(t, OCRProviderNone, cfg.OCR.Provider)
	assert.Equal(t, StoreDriverSQLite, cfg.CustomerStore.Driver)
	assert.Equal(t, "/tmp/c.db", cfg.CustomerStore.Path)
	assert.Nil(t, fs.Lookup("api-key"), "secrets are environment-only")
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courtorder.yaml")
	require.NoError(t, os.WriteFile(path, []byte("customer_store:\n  driver: xlsx\n  path: customers.xlsx\n  sheet: Customers\n"), 0o600))

	cfg, err := LoadConfig(NewViper(), path)
	require.NoError(t, err)
	assert.Equal(t, StoreDriverXLSX, cfg.CustomerStore.Driver)
	assert.Equal(t, "Customers", cfg.CustomerStore.Sheet)

	_, err = LoadConfig(NewViper(), filepath.Join(t.TempDir(), "missing.yaml"))
	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFIG_ERROR", appErr.Code)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad provider", func(c *Config) { c.OCR.Provider = "abbyy" }, "ocr.provider"},
		{"bad driver", func(c *Config) { c.CustomerStore.Driver = "mongo" }, "customer_store.driver"},
		{"postgres without dsn", func(c *Config) { c.CustomerStore.Driver = StoreDriverPostgres }, "DB_URL"},
		{"csv without path", func(c *Config) { c.CustomerStore.Path = "" }, "customer_store.path"},
		{"zero concurrency", func(c *Config) { c.OCR.Concurrency = 0 }, "ocr.concurrency"},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(NewViper(), "")
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", LogConfig{Level: "debug"}.SlogLevel().String())
	assert.Equal(t, "INFO", LogConfig{Level: "bogus"}.SlogLevel().String())
}
