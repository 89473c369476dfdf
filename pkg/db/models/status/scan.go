package status

import (
	"fmt"

	"github.com/canopy-network/chainstatus/pkg/utils"
)

// ChainColumn is the grouping column every count_by_chain table exposes.
const ChainColumn = "chain"

// RowFromValues builds a ChainMetricRow out of one scanned row, locating the
// chain and count columns by name.
func RowFromValues(columns []string, values []any, countColumn string) (ChainMetricRow, error) {
	var row ChainMetricRow
	if len(columns) != len(values) {
		return row, fmt.Errorf("got %d values for %d columns", len(values), len(columns))
	}

	chainIdx, countIdx := -1, -1
	for i, name := range columns {
		switch name {
		case ChainColumn:
			chainIdx = i
		case countColumn:
			countIdx = i
		}
	}
	if chainIdx == -1 {
		return row, fmt.Errorf("column %q missing from result", ChainColumn)
	}
	if countIdx == -1 {
		return row, fmt.Errorf("column %q missing from result", countColumn)
	}

	chain, err := utils.ToUint64(values[chainIdx])
	if err != nil {
		return row, fmt.Errorf("column %q: %w", ChainColumn, err)
	}
	count, err := utils.ToUint64(values[countIdx])
	if err != nil {
		return row, fmt.Errorf("column %q: %w", countColumn, err)
	}

	row.Chain = chain
	row.Count = count
	return row, nil
}
