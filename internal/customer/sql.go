package customer

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/court-orders/internal/common"
)

const customersTable = "customers"

// SQLStore resolves customers from a customers(national_id, customer_id) table.
// Statements are built with ent's SQL builder so the same code serves SQLite and
// Postgres placeholders and quoting.
type SQLStore struct {
	db      *sql.DB
	dialect string
	timeout time.Duration
	pool    *pgxpool.Pool // postgres only
	logger  *slog.Logger
}

// OpenSQLite opens (creating if needed) a SQLite customer database.
func OpenSQLite(ctx context.Context, path string, timeout time.Duration, logger *slog.Logger) (*SQLStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, common.NewAppError("STORE_UNAVAILABLE", "open sqlite "+path, err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, common.NewAppError("STORE_UNAVAILABLE", "enable WAL", err)
	}
	s := &SQLStore{db: db, dialect: dialect.SQLite, timeout: timeout, logger: logger}
	if err := s.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info("customer.sqlite.opened", "path", path)
	return s, nil
}

// OpenPostgres creates a pgx pool and wraps it as *sql.DB.
func OpenPostgres(ctx context.Context, cfg common.CustomerStoreConfig, logger *slog.Logger) (*SQLStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("connecting to database")
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Error("failed to parse database config", "error", err)
		return nil, common.NewAppError("CONFIG_ERROR", "parse DB_URL", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		pc.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		pc.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	pc.ConnConfig.RuntimeParams["application_name"] = "court-orders"

	dialCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, common.NewAppError("STORE_UNAVAILABLE", "connect postgres", errors.Join(common.ErrDatabase, err))
	}

	s := &SQLStore{
		db:      stdlib.OpenDBFromPool(pool),
		dialect: dialect.Postgres,
		timeout: cfg.QueryTimeout,
		pool:    pool,
		logger:  logger,
	}
	logger.Info("successfully connected to database")
	return s, nil
}

// NewSQLStore wraps an existing database handle. d is an ent dialect name.
func NewSQLStore(db *sql.DB, d string, timeout time.Duration, logger *slog.Logger) *SQLStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLStore{db: db, dialect: d, timeout: timeout, logger: logger}
}

func (s *SQLStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return context.WithCancel(ctx)
}

const createCustomersTable = `
CREATE TABLE IF NOT EXISTS customers (
	national_id VARCHAR(32) NOT NULL PRIMARY KEY,
	customer_id VARCHAR(64) NOT NULL
)`

// EnsureSchema creates the customers table when missing. The DDL is portable
// across SQLite and Postgres.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createCustomersTable); err != nil {
		return common.NewAppError("STORE_SCHEMA", "create customers table", errors.Join(common.ErrDatabase, err))
	}
	return nil
}

func (s *SQLStore) Resolve(ctx context.Context, nationalID string) (string, bool, error) {
	nationalID = strings.TrimSpace(nationalID)
	if nationalID == "" {
		return "", false, nil
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query, args := entsql.Dialect(s.dialect).
		Select(ColumnCustomerID).
		From(entsql.Table(customersTable)).
		Where(entsql.EQ(ColumnNationalID, nationalID)).
		Limit(1).
		Query()

	var customerID string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&customerID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		s.logger.Error("customer.sql.resolve_error", "dialect", s.dialect, "error", err)
		return "", false, common.NewAppError("STORE_UNAVAILABLE", "query customers", errors.Join(common.ErrDatabase, err))
	}
	return customerID, true, nil
}

// Upsert inserts or replaces the mapping for r.NationalID.
func (s *SQLStore) Upsert(ctx context.Context, r Record) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query, args := entsql.Dialect(s.dialect).
		Insert(customersTable).
		Columns(ColumnNationalID, ColumnCustomerID).
		Values(r.NationalID, r.CustomerID).
		OnConflict(
			entsql.ConflictColumns(ColumnNationalID),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return common.NewAppError("STORE_WRITE", "upsert customer", errors.Join(common.ErrDatabase, err))
	}
	return nil
}

// Import upserts every record and returns how many were written.
func (s *SQLStore) Import(ctx context.Context, records []Record) (int, error) {
	n := 0
	for _, r := range records {
		if err := s.Upsert(ctx, r); err != nil {
			return n, err
		}
		n++
	}
	s.logger.Info("customer.sql.imported", "rows", n)
	return n, nil
}

// Ping verifies connectivity.
func (s *SQLStore) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		return common.NewAppError("STORE_UNAVAILABLE", "ping", errors.Join(common.ErrDatabase, err))
	}
	return nil
}

// Close closes the database connections gracefully
func (s *SQLStore) Close() error {
	err := s.db.Close()
	if s.pool != nil {
		s.pool.Close()
	}
	return err
}
