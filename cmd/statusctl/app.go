package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-jose/go-jose/v4/json"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/canopy-network/chainstatus/app/query/types"
	"github.com/canopy-network/chainstatus/pkg/config"
	"github.com/canopy-network/chainstatus/pkg/db"
	"github.com/canopy-network/chainstatus/pkg/logging"
	"github.com/canopy-network/chainstatus/pkg/status"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "statusctl",
		Usage: "Inspect per-chain indexing counts without running the HTTP service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "backend",
				Aliases: []string{"b"},
				Value:   string(config.BackendClickHouse),
				Usage:   "Store backend (clickhouse, mysql, postgres, sqlite)",
				EnvVars: []string{"STATUS_BACKEND"},
			},
			&cli.StringFlag{
				Name:    "clickhouse-addr",
				Value:   "clickhouse://localhost:9000?sslmode=disable",
				Usage:   "ClickHouse DSN, replicas comma-separated",
				EnvVars: []string{"CLICKHOUSE_ADDR"},
			},
			&cli.StringFlag{
				Name:    "sql-dsn",
				Usage:   "DSN for the mysql, postgres and sqlite backends",
				EnvVars: []string{"STATUS_SQL_DSN"},
			},
			&cli.StringSliceFlag{
				Name:    "sql-init",
				Usage:   "Statements to run after connecting, repeatable or ';' separated",
				EnvVars: []string{"STATUS_SQL_INIT"},
			},
			&cli.StringFlag{
				Name:    "namespace",
				Aliases: []string{"n"},
				Value:   status.DefaultNamespace,
				Usage:   "Database holding the *_count_by_chain tables",
				EnvVars: []string{"STATUS_NAMESPACE"},
			},
			&cli.IntFlag{
				Name:    "parallelism",
				Value:   status.DefaultParallelism,
				Usage:   "Maximum concurrent metric queries",
				EnvVars: []string{"STATUS_QUERY_PARALLELISM"},
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 30 * time.Second,
				Usage: "Overall deadline for store commands",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "error",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "summary",
				Usage:  "Run every metric query once and print the /status envelope",
				Action: runSummary,
			},
			{
				Name:   "queries",
				Usage:  "Print the SQL issued for each metric",
				Action: runQueries,
			},
			{
				Name:   "ping",
				Usage:  "Check connectivity to the configured store",
				Action: runPing,
			},
		},
	}
}

func configFromFlags(c *cli.Context) (config.Config, error) {
	var initStmts []string
	for _, entry := range c.StringSlice("sql-init") {
		for _, stmt := range strings.Split(entry, ";") {
			if stmt = strings.TrimSpace(stmt); stmt != "" {
				initStmts = append(initStmts, stmt)
			}
		}
	}

	cfg := config.Config{
		Backend: config.Backend(strings.ToLower(c.String("backend"))),
		ClickHouse: config.ClickHouse{
			DSN:          c.String("clickhouse-addr"),
			ConnStrategy: "round_robin",
		},
		SQLDSN:           c.String("sql-dsn"),
		SQLInit:          initStmts,
		Namespace:        c.String("namespace"),
		QueryParallelism: c.Int("parallelism"),
		ServiceName:      "statusctl",
		LogLevel:         c.String("log-level"),
		LogEncoding:      "console",
	}
	return cfg, cfg.Validate()
}

// openStore builds the logger and store shared by the store-backed commands.
func openStore(c *cli.Context, cfg config.Config) (context.Context, context.CancelFunc, *zap.Logger, db.CountStore, error) {
	// stdout carries the command output
	logger, err := logging.New(cfg.LogLevel, cfg.LogEncoding, "stderr")
	if err != nil {
		return nil, nil, nil, nil, err
	}

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	store, err := db.NewCountStore(ctx, logger, cfg)
	if err != nil {
		cancel()
		return nil, nil, nil, nil, err
	}
	return ctx, cancel, logger, store, nil
}

func runQueries(c *cli.Context) error {
	queries, err := status.BuildQueries(c.String("namespace"))
	if err != nil {
		return err
	}
	for _, q := range queries {
		if _, err := fmt.Fprintln(c.App.Writer, q.SQL); err != nil {
			return err
		}
	}
	return nil
}

func runSummary(c *cli.Context) error {
	cfg, err := configFromFlags(c)
	if err != nil {
		return err
	}

	ctx, cancel, logger, store, err := openStore(c, cfg)
	if err != nil {
		return err
	}
	defer cancel()
	defer func() { _ = store.Close() }()

	aggregator, err := status.NewAggregator(logger, store,
		status.WithNamespace(cfg.Namespace),
		status.WithParallelism(cfg.QueryParallelism),
	)
	if err != nil {
		return err
	}
	defer aggregator.Close()

	summaries, err := aggregator.Summaries(ctx)
	if err != nil {
		logger.Error("Status aggregation failed", zap.Error(err))
		if printErr := printJSON(c, types.Failure(types.InternalErrorMessage)); printErr != nil {
			return printErr
		}
		return cli.Exit("", 1)
	}

	return printJSON(c, types.Success(summaries))
}

func runPing(c *cli.Context) error {
	cfg, err := configFromFlags(c)
	if err != nil {
		return err
	}

	ctx, cancel, _, store, err := openStore(c, cfg)
	if err != nil {
		return err
	}
	defer cancel()
	defer func() { _ = store.Close() }()

	if err := store.Ping(ctx); err != nil {
		return fmt.Errorf("ping %s: %w", cfg.Backend, err)
	}
	_, err = fmt.Fprintf(c.App.Writer, "%s: ok\n", cfg.Backend)
	return err
}

func printJSON(c *cli.Context, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, string(raw))
	return err
}
