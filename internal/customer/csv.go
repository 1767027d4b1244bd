package customer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joseph-ayodele/court-orders/internal/common"
)

// CSVStore reads a national_id,customer_id file on every lookup, so edits to
// the file are picked up without a restart.
type CSVStore struct {
	path   string
	logger *slog.Logger
}

func NewCSVStore(path string, logger *slog.Logger) *CSVStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVStore{path: path, logger: logger}
}

func (s *CSVStore) Resolve(_ context.Context, nationalID string) (string, bool, error) {
	nationalID = strings.TrimSpace(nationalID)
	if nationalID == "" {
		return "", false, nil
	}
	records, err := s.load()
	if err != nil {
		return "", false, err
	}
	id, ok := findRecord(records, nationalID)
	s.logger.Debug("customer.csv.resolve", "found", ok, "records", len(records))
	return id, ok, nil
}

func (s *CSVStore) load() ([]Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, common.NewAppError("STORE_UNAVAILABLE", "open "+s.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.Warn("customer.csv.close_error", "path", s.path, "error", cerr)
		}
	}()
	return ReadCSV(f)
}

// Records returns every mapping in the file.
func (s *CSVStore) Records() ([]Record, error) { return s.load() }

// Ping checks that the file exists and has the expected header.
func (s *CSVStore) Ping(context.Context) error {
	_, err := s.load()
	return err
}

func (s *CSVStore) Close() error { return nil }

// ReadCSV parses customer records from r.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse customers csv: %w", err)
	}
	return recordsFromRows(rows)
}
