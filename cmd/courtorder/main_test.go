package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/court-orders/internal/pdfdoc/pdftest"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "")
	processFlags.json = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestProcessCommand(t *testing.T) {
	customers := writeTemp(t, "customers.csv", []byte("national_id,customer_id\n1234567890,C123\n"))
	pdf := writeTemp(t, "order.pdf", pdftest.TextPDF(t, "National ID: 1234567890", "Action: suspend_accounts"))

	out, err := execute(t, "", "process", pdf, "--store-driver", "csv", "--store-path", customers, "--ocr-provider", "none")
	require.NoError(t, err)
	assert.Equal(t, "Suspend accounts for C123\n", out)

	out, err = execute(t, "", "process", pdf, "--json", "--store-driver", "csv", "--store-path", customers, "--ocr-provider", "none")
	require.NoError(t, err)
	var summary map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, "DISPATCHED", summary["outcome"])
	assert.Equal(t, "C123", summary["customer_id"])
	assert.Equal(t, "TEXT_NATIVE", summary["document_kind"])
}

func TestProcessCommandRejectsNonPDF(t *testing.T) {
	txt := writeTemp(t, "order.txt", []byte("National ID: 1234567890"))
	_, err := execute(t, "", "process", txt)
	assert.ErrorContains(t, err, "only PDF files are supported")
}

func TestInferCommand(t *testing.T) {
	out, err := execute(t, "Identification number: 1234 5678 90\nAction: RELEASE_FUNDS\n", "infer", "-")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "1234567890", got["national_id"])
	assert.Equal(t, "release_funds", got["action"])
	assert.Equal(t, "regex", got["source"])
}

func TestExtractTextCommand(t *testing.T) {
	pdf := writeTemp(t, "order.pdf", pdftest.TextPDF(t, "National ID: 1234567890"))

	out, err := execute(t, "", "extract-text", pdf, "--ocr-provider", "none")
	require.NoError(t, err)
	assert.Contains(t, out, "# kind=TEXT_NATIVE method=pdf-text pages=1")
	assert.Contains(t, out, "1234567890")
}

func TestCustomersImportAndProcessWithSQLite(t *testing.T) {
	src := writeTemp(t, "customers.csv", []byte("customer_id,national_id\nC777,1234567890\n"))
	db := filepath.Join(t.TempDir(), "customers.db")

	out, err := execute(t, "", "customers", "import", src, "--store-driver", "sqlite", "--store-path", db)
	require.NoError(t, err)
	assert.Equal(t, "imported 1 customers\n", out)

	out, err = execute(t, "", "customers", "check", "--store-driver", "sqlite", "--store-path", db)
	require.NoError(t, err)
	assert.Equal(t, "customer store sqlite: ok\n", out)

	pdf := writeTemp(t, "order.pdf", pdftest.TextPDF(t, "National ID: 1234567890", "Action: issue_notice"))
	out, err = execute(t, "", "process", pdf, "--store-driver", "sqlite", "--store-path", db, "--ocr-provider", "none")
	require.NoError(t, err)
	assert.Equal(t, "Issue notice for C777\n", out)
}

func TestCustomersImportNeedsSQLStore(t *testing.T) {
	src := writeTemp(t, "customers.csv", []byte("national_id,customer_id\n1234567890,C1\n"))
	_, err := execute(t, "", "customers", "import", src, "--store-driver", "csv", "--store-path", src)
	assert.ErrorContains(t, err, "sqlite or postgres")
}
