package clickhouse

import (
	"context"
	"fmt"
	"reflect"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	statusmodels "github.com/canopy-network/chainstatus/pkg/db/models/status"
)

// querier is the part of driver.Conn the count reads use.
type querier interface {
	Query(ctx context.Context, query string, args ...any) (driver.Rows, error)
}

// SelectChainCounts runs an aggregate statement and returns its rows.
func (c *Client) SelectChainCounts(ctx context.Context, query, countColumn string) ([]statusmodels.ChainMetricRow, error) {
	return selectChainCounts(ctx, c.Db, query, countColumn)
}

// Column types vary per table (UInt16 chain ids, UInt64 or Nullable sums),
// so every row is scanned into freshly allocated values of the reported type.
func selectChainCounts(ctx context.Context, db querier, query, countColumn string) ([]statusmodels.ChainMetricRow, error) {
	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", countColumn, err)
	}
	defer func(rows driver.Rows) {
		_ = rows.Close()
	}(rows)

	columns := rows.Columns()
	columnTypes := rows.ColumnTypes()

	out := make([]statusmodels.ChainMetricRow, 0)
	for rows.Next() {
		values := make([]any, len(columnTypes))
		for i, ct := range columnTypes {
			values[i] = reflect.New(ct.ScanType()).Interface()
		}
		if err := rows.Scan(values...); err != nil {
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
