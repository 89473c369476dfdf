// Package sqlstore reads the per-chain count tables from MySQL, PostgreSQL or
// SQLite mirrors through database/sql.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	statusmodels "github.com/canopy-network/chainstatus/pkg/db/models/status"
	"github.com/canopy-network/chainstatus/pkg/retry"
)

// Registered database/sql driver names.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// DriverName maps a backend name to its database/sql driver.
func DriverName(backend string) (string, error) {
	switch backend {
	case "mysql":
		return DriverMySQL, nil
	case "postgres", "postgresql":
		return DriverPostgres, nil
	case "sqlite", "sqlite3":
		return DriverSQLite, nil
	default:
		return "", fmt.Errorf("no sql driver for backend %q", backend)
	}
}

type Options struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	// Init runs once after connecting, e.g. ATTACH DATABASE for sqlite.
	Init []string
}

type Store struct {
	logger *zap.Logger
	db     *sql.DB
}

// Open connects, pings with backoff and runs the init statements.
func Open(ctx context.Context, logger *zap.Logger, opts Options) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.DSN == "" {
		return nil, errors.New("sql dsn is required")
	}

	db, err := sql.Open(opts.Driver, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", opts.Driver, err)
	}

	switch {
	case opts.Driver == DriverSQLite:
		// Attached databases live on the connection, so keep exactly one.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	default:
		if opts.MaxOpenConns > 0 {
			db.SetMaxOpenConns(opts.MaxOpenConns)
			db.SetMaxIdleConns(opts.MaxOpenConns)
		}
		if opts.ConnMaxLifetime > 0 {
			db.SetConnMaxLifetime(opts.ConnMaxLifetime)
		}
	}

	err = retry.WithBackoff(ctx, retry.ConnectConfig(), logger, opts.Driver+"_connection", func() error {
		return db.PingContext(ctx)
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", opts.Driver, err)
	}

	for _, stmt := range opts.Init {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init statement failed: %w", err)
		}
	}

	logger.Info("SQL store ready",
		zap.String("driver", opts.Driver),
		zap.Int("init_statements", len(opts.Init)))

	return &Store{logger: logger, db: db}, nil
}

// SelectChainCounts runs an aggregate statement and returns its rows. SUM()
// comes back as int64 from sqlite and as decimal text from mysql and postgres.
func (s *Store) SelectChainCounts(ctx context.Context, query, countColumn string) ([]statusmodels.ChainMetricRow, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", countColumn, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns %s: %w", countColumn, err)
	}

	out := make([]statusmodels.ChainMetricRow, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", countColumn, err)
		}

		row, err := statusmodels.RowFromValues(columns, values, countColumn)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", countColumn, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", countColumn, err)
	}

	return out, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
