package status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/puzpuzpuz/xsync/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	statusmodels "github.com/canopy-network/chainstatus/pkg/db/models/status"
)

// DefaultParallelism bounds how many metric queries run at once across all
// in-flight requests.
const DefaultParallelism = 32

// Store executes an aggregate statement and returns its (chain, count) rows.
// countColumn names the column holding the metric value.
type Store interface {
	SelectChainCounts(ctx context.Context, query, countColumn string) ([]statusmodels.ChainMetricRow, error)
}

// Aggregator fans the metric queries out over a shared worker pool and merges
// the results by chain.
type Aggregator struct {
	logger  *zap.Logger
	store   Store
	tracer  trace.Tracer
	pool    pond.Pool
	queries []Query

	namespace   string
	parallelism int
}

// Option customizes an Aggregator.
type Option func(*Aggregator)

// WithNamespace overrides DefaultNamespace.
func WithNamespace(namespace string) Option {
	return func(a *Aggregator) { a.namespace = namespace }
}

// WithParallelism sets the worker pool size. Values below one are ignored.
func WithParallelism(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.parallelism = n
		}
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(a *Aggregator) { a.tracer = tracer }
}

// NewAggregator returns an Aggregator reading from store.
func NewAggregator(logger *zap.Logger, store Store, opts ...Option) (*Aggregator, error) {
	if store == nil {
		return nil, errors.New("status aggregator requires a store")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &Aggregator{
		logger:      logger.Named("status"),
		store:       store,
		namespace:   DefaultNamespace,
		parallelism: DefaultParallelism,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.tracer == nil {
		a.tracer = otel.Tracer("github.com/canopy-network/chainstatus/pkg/status")
	}

	queries, err := BuildQueries(a.namespace)
	if err != nil {
		return nil, err
	}
	a.queries = queries
	a.pool = pond.NewPool(a.parallelism)

	a.logger.Info("Status aggregator ready",
		zap.String("namespace", a.namespace),
		zap.Int("metrics", len(a.queries)),
		zap.Int("parallelism", a.parallelism))

	return a, nil
}

// Queries returns the statements issued on every Summaries call.
func (a *Aggregator) Queries() []Query {
	out := make([]Query, len(a.queries))
	copy(out, a.queries)
	return out
}

// Summaries runs every metric query concurrently, waits for all of them and
// merges the results. The first failing query cancels the rest and nothing
// partial is returned. On success the slice is never nil.
func (a *Aggregator) Summaries(ctx context.Context) ([]statusmodels.ChainSummary, error) {
	ctx, span := a.tracer.Start(ctx, "status.Summaries",
		trace.WithAttributes(attribute.String("status.namespace", a.namespace)))
	defer span.End()

	start := time.Now()
	results := xsync.NewMap[Metric, []statusmodels.ChainMetricRow]()

	group := a.pool.NewGroupContext(ctx)
	groupCtx := group.Context()
	for _, q := range a.queries {
		group.SubmitErr(func() error {
			if err := groupCtx.Err(); err != nil {
				return &QueryError{Metric: q.Metric, Err: err}
			}
			rows, err := a.run(groupCtx, q)
			if err != nil {
				return err
			}
			results.Store(q.Metric, rows)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "aggregation failed")
		return nil, fmt.Errorf("%w: %w", ErrAggregation, err)
	}

	collected := make(map[Metric][]statusmodels.ChainMetricRow, len(a.queries))
	results.Range(func(m Metric, rows []statusmodels.ChainMetricRow) bool {
		collected[m] = rows
		return true
	})
	if _, ok := collected[MetricBlocks]; !ok {
		err := &QueryError{Metric: MetricBlocks, Err: errors.New("no result")}
		span.RecordError(err)
		span.SetStatus(codes.Error, "aggregation failed")
		return nil, fmt.Errorf("%w: %w", ErrAggregation, err)
	}

	summaries := Merge(collected)
	span.SetAttributes(attribute.Int("status.chains", len(summaries)))
	a.logger.Debug("Status aggregated",
		zap.Int("chains", len(summaries)),
		zap.Duration("took", time.Since(start)))

	return summaries, nil
}

func (a *Aggregator) run(ctx context.Context, q Query) ([]statusmodels.ChainMetricRow, error) {
	ctx, span := a.tracer.Start(ctx, "status.query",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("status.metric", q.Metric.String()),
			attribute.String("db.statement", q.SQL),
		))
	defer span.End()

	start := time.Now()
	rows, err := a.store.SelectChainCounts(ctx, q.SQL, q.Metric.String())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		a.logger.Debug("Metric query failed",
			zap.String("metric", q.Metric.String()),
			zap.Duration("took", time.Since(start)),
			zap.Error(err))
		return nil, &QueryError{Metric: q.Metric, Err: err}
	}

	span.SetAttributes(attribute.Int("status.rows", len(rows)))
	a.logger.Debug("Metric query finished",
		zap.String("metric", q.Metric.String()),
		zap.Int("rows", len(rows)),
		zap.Duration("took", time.Since(start)))
	return rows, nil
}

// Close stops the worker pool after in-flight queries finish.
func (a *Aggregator) Close() {
	a.pool.StopAndWait()
}
