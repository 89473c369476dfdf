package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/canopy-network/chainstatus/pkg/status"
	"github.com/canopy-network/chainstatus/pkg/utils"
)

// Backend selects the store the status aggregator reads from.
type Backend string

const (
	BackendClickHouse Backend = "clickhouse"
	BackendMySQL      Backend = "mysql"
	BackendPostgres   Backend = "postgres"
	BackendSQLite     Backend = "sqlite"
)

// ClickHouse holds the native ClickHouse connection settings.
type ClickHouse struct {
	DSN             string
	ConnStrategy    string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type Config struct {
	Addr             string
	Backend          Backend
	ClickHouse       ClickHouse
	SQLDSN           string
	SQLInit          []string
	Namespace        string
	QueryParallelism int
	ServiceName      string
	OtelEndpoint     string
	LogLevel         string
	LogEncoding      string
}

// Load reads configuration from the environment. A .env file in the working
// directory, when present, fills in variables that are not already set.
func Load() (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Addr:    utils.Env("ADDR", ":3001"),
		Backend: Backend(strings.ToLower(utils.Env("STATUS_BACKEND", string(BackendClickHouse)))),
		ClickHouse: ClickHouse{
			DSN:             utils.Env("CLICKHOUSE_ADDR", "clickhouse://localhost:9000?sslmode=disable"),
			ConnStrategy:    utils.Env("CLICKHOUSE_CONN_STRATEGY", "round_robin"),
			MaxOpenConns:    utils.EnvInt("CLICKHOUSE_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    utils.EnvInt("CLICKHOUSE_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: utils.EnvDuration("CLICKHOUSE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		SQLDSN:           utils.Env("STATUS_SQL_DSN", ""),
		SQLInit:          splitStatements(utils.Env("STATUS_SQL_INIT", "")),
		Namespace:        utils.Env("STATUS_NAMESPACE", status.DefaultNamespace),
		QueryParallelism: utils.EnvInt("STATUS_QUERY_PARALLELISM", status.DefaultParallelism),
		ServiceName:      utils.Env("SERVICE_NAME", "status-query"),
		OtelEndpoint:     utils.Env("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		LogLevel:         utils.Env("LOG_LEVEL", "info"),
		LogEncoding:      utils.Env("LOG_ENCODING", "json"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendClickHouse:
		if strings.TrimSpace(c.ClickHouse.DSN) == "" {
			return errors.New("CLICKHOUSE_ADDR is required for the clickhouse backend")
		}
	case BackendMySQL, BackendPostgres, BackendSQLite:
		if strings.TrimSpace(c.SQLDSN) == "" {
			return fmt.Errorf("STATUS_SQL_DSN is required for the %s backend", c.Backend)
		}
	default:
		return fmt.Errorf("unknown STATUS_BACKEND %q", c.Backend)
	}

	if err := status.ValidateNamespace(c.Namespace); err != nil {
		return fmt.Errorf("STATUS_NAMESPACE: %w", err)
	}
	if c.QueryParallelism < 1 {
		return errors.New("STATUS_QUERY_PARALLELISM must be positive")
	}
	return nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// splitStatements splits a ';' separated list, dropping empty entries.
func splitStatements(raw string) []string {
	var out []string
	for _, stmt := range strings.Split(raw, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
