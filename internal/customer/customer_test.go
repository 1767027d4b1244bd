package customer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/court-orders/internal/common"
)

const customersCSV = "national_id,customer_id\n1234567890,C123\n 0987654321 , C456 \n555555555555,\n"

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestCSVStoreResolve(t *testing.T) {
	s := NewCSVStore(writeFile(t, "customers.csv", customersCSV), nil)
	ctx := context.Background()

	tests := []struct {
		nid   string
		want  string
		found bool
	}{
		{"1234567890", "C123", true},
		{"0987654321", "C456", true},
		{" 1234567890 ", "C123", true},
		{"555555555555", "", false},
		{"1111111111", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.nid, func(t *testing.T) {
			id, found, err := s.Resolve(ctx, tt.nid)
			require.NoError(t, err)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, id)
		})
	}
	assert.NoError(t, s.Ping(ctx))
}

func TestCSVStoreColumnOrderAndBOM(t *testing.T) {
	s := NewCSVStore(writeFile(t, "c.csv", "\ufeffCustomer_ID,Name,National_ID\nC9,Jane,1234567890\n"), nil)
	id, found, err := s.Resolve(context.Background(), "1234567890")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "C9", id)
}

func TestCSVStoreFailures(t *testing.T) {
	ctx := context.Background()

	_, found, err := NewCSVStore(filepath.Join(t.TempDir(), "missing.csv"), nil).Resolve(ctx, "1234567890")
	assert.False(t, found)
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "STORE_UNAVAILABLE", appErr.Code)

	_, _, err = NewCSVStore(writeFile(t, "bad.csv", "id,customer\n1,2\n"), nil).Resolve(ctx, "1")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestReadCSV(t *testing.T) {
	records, err := ReadCSV(strings.NewReader(customersCSV))
	require.NoError(t, err)
	assert.Equal(t, []Record{
		{NationalID: "1234567890", CustomerID: "C123"},
		{NationalID: "0987654321", CustomerID: "C456"},
	}, records)
}

func TestXLSXStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customers.xlsx")
	require.NoError(t, WriteXLSX(path, []Record{
		{NationalID: "0123456789", CustomerID: "C001"},
		{NationalID: "123456789012", CustomerID: "C002"},
	}))

	s := NewXLSXStore(path, "", nil)
	ctx := context.Background()

	id, found, err := s.Resolve(ctx, "0123456789")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "C001", id)

	_, found, err = s.Resolve(ctx, "999")
	require.NoError(t, err)
	assert.False(t, found)

	_, _, err = NewXLSXStore(path, "NoSuchSheet", nil).Resolve(ctx, "0123456789")
	assert.Error(t, err)
	assert.NoError(t, s.Ping(ctx))
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "customers.db"), 0, nil)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	require.NoError(t, s.Ping(ctx))
	n, err := s.Import(ctx, []Record{
		{NationalID: "1234567890", CustomerID: "C123"},
		{NationalID: "0987654321", CustomerID: "C456"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	id, found, err := s.Resolve(ctx, "1234567890")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "C123", id)

	require.NoError(t, s.Upsert(ctx, Record{NationalID: "1234567890", CustomerID: "C999"}))
	id, _, err = s.Resolve(ctx, "1234567890")
	require.NoError(t, err)
	assert.Equal(t, "C999", id)

	_, found, err = s.Resolve(ctx, "5555555555")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.EnsureSchema(ctx), "schema creation is idempotent")
}

func TestSQLiteStoreReopenKeepsRows(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "customers.db")

	s, err := OpenSQLite(ctx, path, 0, nil)
	require.NoError(t, err)
	require.NoError(t, s.Upsert(ctx, Record{NationalID: "1234567890", CustomerID: "C123"}))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, path, 0, nil)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	id, found, err := s.Resolve(ctx, "1234567890")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "C123", id)
}

func TestSQLiteStoreClosedIsError(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "customers.db"), 0, nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, found, err := s.Resolve(ctx, "1234567890")
	assert.False(t, found)
	assert.ErrorIs(t, err, common.ErrDatabase)
}

func TestOpenSelectsDriver(t *testing.T) {
	ctx := context.Background()
	csvPath := writeFile(t, "c.csv", customersCSV)

	st, err := Open(ctx, common.CustomerStoreConfig{Driver: common.StoreDriverCSV, Path: csvPath}, nil)
	require.NoError(t, err)
	assert.IsType(t, &CSVStore{}, st)

	_, err = Open(ctx, common.CustomerStoreConfig{Driver: "mongo"}, nil)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}
