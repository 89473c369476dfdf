package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowFromValues(t *testing.T) {
	var nullCount *uint64
	cases := []struct {
		name    string
		columns []string
		values  []any
		want    ChainMetricRow
	}{
		{"clickhouse order", []string{"blocks", "chain"}, []any{uint64(100), uint16(1)}, ChainMetricRow{Chain: 1, Count: 100}},
		{"reversed order", []string{"chain", "blocks"}, []any{int64(56), int64(7)}, ChainMetricRow{Chain: 56, Count: 7}},
		{"decimal text", []string{"blocks", "chain"}, []any{[]byte("1234"), int64(10)}, ChainMetricRow{Chain: 10, Count: 1234}},
		{"null sum", []string{"blocks", "chain"}, []any{&nullCount, uint64(3)}, ChainMetricRow{Chain: 3}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := RowFromValues(tc.columns, tc.values, "blocks")
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRowFromValuesErrors(t *testing.T) {
	_, err := RowFromValues([]string{"blocks"}, []any{uint64(1)}, "blocks")
	require.ErrorContains(t, err, `"chain"`)

	_, err = RowFromValues([]string{"logs", "chain"}, []any{uint64(1), uint64(1)}, "blocks")
	require.ErrorContains(t, err, `"blocks"`)

	_, err = RowFromValues([]string{"blocks", "chain"}, []any{uint64(1)}, "blocks")
	require.Error(t, err)

	_, err = RowFromValues([]string{"blocks", "chain"}, []any{int64(-1), uint64(1)}, "blocks")
	require.Error(t, err)
}
