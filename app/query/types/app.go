package types

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/canopy-network/chainstatus/pkg/config"
	"github.com/canopy-network/chainstatus/pkg/db"
	statusmodels "github.com/canopy-network/chainstatus/pkg/db/models/status"
	"github.com/canopy-network/chainstatus/pkg/tracing"
)

// Aggregator produces the merged per-chain summaries served on /status.
type Aggregator interface {
	Summaries(ctx context.Context) ([]statusmodels.ChainSummary, error)
	Close()
}

type App struct {
	Config     config.Config
	Store      db.CountStore
	Aggregator Aggregator
	// Zap Logger
	Logger *zap.Logger
	// Server represents the HTTP server instance used to handle incoming client requests and manage HTTP routes.
	Server *http.Server
	// ShutdownTracing flushes pending spans. May be nil.
	ShutdownTracing tracing.ShutdownFunc
}

// Start serves until ctx is cancelled, then shuts the server down and releases
// the aggregator, store and tracer. A listener failure (e.g. the address is
// already in use) still releases everything and is returned.
func (a *App) Start(ctx context.Context) error {
	listenErr := make(chan error, 1)
	go func() {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
		close(listenErr)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case err, ok := <-listenErr:
		if ok {
			a.Logger.Error("Server stopped unexpectedly", zap.Error(err))
			serveErr = fmt.Errorf("listen on %s: %w", a.Server.Addr, err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error("Failed to shutdown server", zap.Error(err))
	}

	if a.Aggregator != nil {
		a.Aggregator.Close()
	}

	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if a.ShutdownTracing != nil {
		if err := a.ShutdownTracing(shutdownCtx); err != nil {
			a.Logger.Error("Failed to flush traces", zap.Error(err))
		}
	}

	if serveErr != nil {
		return serveErr
	}

	time.Sleep(200 * time.Millisecond)
	a.Logger.Info("さようなら!")
	_ = a.Logger.Sync()
	return nil
}
