package customer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joseph-ayodele/court-orders/internal/common"
)

// Resolver maps a national ID to a customer ID. A missing customer is reported
// with found == false and a nil error; errors mean the store itself failed.
type Resolver interface {
	Resolve(ctx context.Context, nationalID string) (customerID string, found bool, err error)
}

// Store is a Resolver with a lifecycle.
type Store interface {
	Resolver
	Ping(ctx context.Context) error
	Close() error
}

const (
	ColumnNationalID = "national_id"
	ColumnCustomerID = "customer_id"
)

// Open builds the store selected by cfg.Driver.
func Open(ctx context.Context, cfg common.CustomerStoreConfig, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Driver {
	case common.StoreDriverCSV:
		return NewCSVStore(cfg.Path, logger), nil
	case common.StoreDriverXLSX:
		return NewXLSXStore(cfg.Path, cfg.Sheet, logger), nil
	case common.StoreDriverSQLite:
		return OpenSQLite(ctx, cfg.Path, cfg.QueryTimeout, logger)
	case common.StoreDriverPostgres:
		return OpenPostgres(ctx, cfg, logger)
	default:
		return nil, common.NewAppError("CONFIG_ERROR", fmt.Sprintf("unknown customer store driver %q", cfg.Driver), common.ErrInvalidInput)
	}
}

// Record is one national ID to customer ID mapping.
type Record struct {
	NationalID string
	CustomerID string
}

// recordsFromRows reads a header row naming national_id and customer_id (any
// order, case-insensitive) and returns the data rows below it.
func recordsFromRows(rows [][]string) ([]Record, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	nidCol, custCol := -1, -1
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case ColumnNationalID:
			nidCol = i
		case ColumnCustomerID:
			custCol = i
		}
	}
	if nidCol < 0 || custCol < 0 {
		return nil, common.NewAppError("STORE_FORMAT", "header must contain national_id and customer_id", common.ErrInvalidInput)
	}

	out := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if nidCol >= len(row) || custCol >= len(row) {
			continue
		}
		nid := strings.TrimSpace(row[nidCol])
		cust := strings.TrimSpace(row[custCol])
		if nid == "" || cust == "" {
			continue
		}
		out = append(out, Record{NationalID: nid, CustomerID: cust})
	}
	return out, nil
}

func findRecord(records []Record, nationalID string) (string, bool) {
	for _, r := range records {
		if r.NationalID == nationalID {
			return r.CustomerID, true
		}
	}
	return "", false
}
