package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQueriesDefaultNamespace(t *testing.T) {
	queries, err := BuildQueries(DefaultNamespace)
	require.NoError(t, err)

	want := []string{
		"SELECT sum(blocks) AS blocks, chain FROM indexer.blocks_count_by_chain GROUP BY chain",
		"SELECT sum(transactions) AS transactions, chain FROM indexer.transactions_count_by_chain GROUP BY chain",
		"SELECT sum(contracts) AS contracts, chain FROM indexer.contracts_count_by_chain GROUP BY chain",
		"SELECT sum(receipts) AS receipts, chain FROM indexer.receipts_count_by_chain GROUP BY chain",
		"SELECT sum(logs) AS logs, chain FROM indexer.logs_count_by_chain GROUP BY chain",
		"SELECT sum(dex_trades) AS dex_trades, chain FROM indexer.dex_trades_count_by_chain GROUP BY chain",
		"SELECT sum(erc20_transfers) AS erc20_transfers, chain FROM indexer.erc20_transfers_count_by_chain GROUP BY chain",
		"SELECT sum(erc721_transfers) AS erc721_transfers, chain FROM indexer.erc721_transfers_count_by_chain GROUP BY chain",
		"SELECT sum(erc1155_transfers) AS erc1155_transfers, chain FROM indexer.erc1155_transfers_count_by_chain GROUP BY chain",
		"SELECT sum(traces) AS traces, chain FROM indexer.traces_count_by_chain GROUP BY chain",
		"SELECT sum(withdrawals) AS withdrawals, chain FROM indexer.withdrawals_count_by_chain GROUP BY chain",
	}

	require.Len(t, queries, len(want))
	for i, q := range queries {
		assert.Equal(t, want[i], q.SQL)
		assert.Equal(t, Metrics()[i], q.Metric)
	}
}

func TestValidateNamespace(t *testing.T) {
	tests := []struct {
		namespace string
		valid     bool
	}{
		{"indexer", true},
		{"_staging", true},
		{"indexer_v2", true},
		{"", false},
		{"2indexer", false},
		{"indexer.db", false},
		{"indexer; DROP TABLE blocks", false},
		{"idx-er", false},
	}

	for _, tt := range tests {
		t.Run(tt.namespace, func(t *testing.T) {
			err := ValidateNamespace(tt.namespace)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestMetricsReturnsCopy(t *testing.T) {
	m := Metrics()
	m[0] = "mutated"
	assert.Equal(t, MetricBlocks, Metrics()[0])
	assert.Equal(t, "withdrawals_count_by_chain", MetricWithdrawals.Table())
}
