package customer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/court-orders/internal/common"
)

// XLSXStore looks customers up in a spreadsheet with a national_id/customer_id
// header row. The workbook is reopened on every lookup.
type XLSXStore struct {
	path   string
	sheet  string
	logger *slog.Logger
}

func NewXLSXStore(path, sheet string, logger *slog.Logger) *XLSXStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXStore{path: path, sheet: sheet, logger: logger}
}

func (s *XLSXStore) Resolve(_ context.Context, nationalID string) (string, bool, error) {
	nationalID = strings.TrimSpace(nationalID)
	if nationalID == "" {
		return "", false, nil
	}
	records, err := s.load()
	if err != nil {
		return "", false, err
	}
	id, ok := findRecord(records, nationalID)
	s.logger.Debug("customer.xlsx.resolve", "found", ok, "records", len(records))
	return id, ok, nil
}

func (s *XLSXStore) load() ([]Record, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, common.NewAppError("STORE_UNAVAILABLE", "open "+s.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.Warn("customer.xlsx.close_error", "path", s.path, "error", cerr)
		}
	}()

	sheet := s.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, common.NewAppError("STORE_UNAVAILABLE", "read sheet "+sheet, err)
	}
	return recordsFromRows(rows)
}

// Records returns every mapping in the sheet.
func (s *XLSXStore) Records() ([]Record, error) { return s.load() }

func (s *XLSXStore) Ping(context.Context) error {
	_, err := s.load()
	return err
}

func (s *XLSXStore) Close() error { return nil }

// WriteXLSX writes records to a new workbook at path, header first.
func WriteXLSX(path string, records []Record) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	header := []string{ColumnNationalID, ColumnCustomerID}
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, rec := range records {
		row := r + 2
		nidCell, _ := excelize.CoordinatesToCellName(1, row)
		custCell, _ := excelize.CoordinatesToCellName(2, row)
		// national IDs are stored as text so leading zeros survive
		if err := f.SetCellStr(sheet, nidCell, rec.NationalID); err != nil {
			return err
		}
		if err := f.SetCellStr(sheet, custCell, rec.CustomerID); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
