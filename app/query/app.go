package query

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/canopy-network/chainstatus/app/query/types"
	"github.com/canopy-network/chainstatus/pkg/config"
	"github.com/canopy-network/chainstatus/pkg/db"
	"github.com/canopy-network/chainstatus/pkg/logging"
	"github.com/canopy-network/chainstatus/pkg/status"
	"github.com/canopy-network/chainstatus/pkg/tracing"
)

// Initialize initializes the application.
func Initialize(ctx context.Context) *types.App {
	cfg, err := config.Load()
	if err != nil {
		// no logger yet, config drives it
		panic(err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		// nothing else to do here, we'll just log to stderr
		panic(err)
	}

	app, err := Build(ctx, logger, cfg)
	if err != nil {
		logger.Fatal("Unable to initialize status service", zap.Error(err))
	}

	return app
}

// Build wires tracing, the count store and the aggregator for cfg.
func Build(ctx context.Context, logger *zap.Logger, cfg config.Config) (*types.App, error) {
	shutdownTracing, err := tracing.Init(ctx, logger, cfg.ServiceName, cfg.OtelEndpoint)
	if err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}

	store, err := db.NewCountStore(ctx, logger, cfg)
	if err != nil {
		_ = shutdownTracing(ctx)
		return nil, fmt.Errorf("count store: %w", err)
	}

	aggregator, err := status.NewAggregator(logger, store,
		status.WithNamespace(cfg.Namespace),
		status.WithParallelism(cfg.QueryParallelism),
		status.WithTracer(otel.Tracer(cfg.ServiceName)),
	)
	if err != nil {
		_ = store.Close()
		_ = shutdownTracing(ctx)
		return nil, fmt.Errorf("aggregator: %w", err)
	}

	for _, q := range aggregator.Queries() {
		logger.Debug("Registered metric query", zap.String("metric", q.Metric.String()), zap.String("sql", q.SQL))
	}

	logger.Info("Status service initialized",
		zap.String("backend", string(cfg.Backend)),
		zap.String("namespace", cfg.Namespace))

	return &types.App{
		Config:          cfg,
		Store:           store,
		Aggregator:      aggregator,
		Logger:          logger,
		ShutdownTracing: shutdownTracing,
	}, nil
}
