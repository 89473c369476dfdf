package db

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/canopy-network/chainstatus/pkg/config"
	"github.com/canopy-network/chainstatus/pkg/db/clickhouse"
	"github.com/canopy-network/chainstatus/pkg/db/sqlstore"
)

var (
	_ CountStore = (*clickhouse.Client)(nil)
	_ CountStore = (*sqlstore.Store)(nil)
)

// NewCountStore connects to the backend selected by cfg.Backend.
func NewCountStore(ctx context.Context, logger *zap.Logger, cfg config.Config) (CountStore, error) {
	switch cfg.Backend {
	case config.BackendClickHouse:
		client, err := clickhouse.New(ctx, logger, clickhouse.Options{
			DSN:             cfg.ClickHouse.DSN,
			ConnStrategy:    cfg.ClickHouse.ConnStrategy,
			MaxOpenConns:    cfg.ClickHouse.MaxOpenConns,
			MaxIdleConns:    cfg.ClickHouse.MaxIdleConns,
			ConnMaxLifetime: cfg.ClickHouse.ConnMaxLifetime,
			Component:       cfg.ServiceName,
		})
		if err != nil {
			return nil, err
		}
		return client, nil

	case config.BackendMySQL, config.BackendPostgres, config.BackendSQLite:
		driver, err := sqlstore.DriverName(string(cfg.Backend))
		if err != nil {
			return nil, err
		}
		store, err := sqlstore.Open(ctx, logger, sqlstore.Options{
			Driver:       driver,
			DSN:          cfg.SQLDSN,
			MaxOpenConns: cfg.QueryParallelism,
			Init:         cfg.SQLInit,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	return nil, fmt.Errorf("unsupported backend %q", cfg.Backend)
}
