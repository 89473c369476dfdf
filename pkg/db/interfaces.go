package db

import (
	"context"

	statusmodels "github.com/canopy-network/chainstatus/pkg/db/models/status"
)

// CountStore exposes the read-only operations the status endpoint needs from a
// backend holding the per-chain count tables.
type CountStore interface {
	SelectChainCounts(ctx context.Context, query, countColumn string) ([]statusmodels.ChainMetricRow, error)
	Ping(ctx context.Context) error
	Close() error
}
