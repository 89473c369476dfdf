package tracing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap/zaptest"
)

func TestInitWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), zaptest.NewLogger(t), "status-query", "  ")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	_, span := otel.Tracer("test").Start(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
}

func TestInitWithEndpointInstallsProvider(t *testing.T) {
	shutdown, err := Init(context.Background(), zaptest.NewLogger(t), "status-query", "http://127.0.0.1:4318")
	require.NoError(t, err)
	t.Cleanup(func() {
		// nothing listens on the endpoint; do not wait for the exporter's retries
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		_ = shutdown(ctx)
	})

	_, span := otel.Tracer("test").Start(context.Background(), "recorded")
	assert.True(t, span.SpanContext().IsValid())
	span.End()
}
