package status

import (
	"github.com/samber/lo"

	statusmodels "github.com/canopy-network/chainstatus/pkg/db/models/status"
)

// Merge joins per-metric results into one summary per row of the blocks
// result, preserving its order. Chains that only appear in other metrics are
// dropped; metrics without a row for a chain report zero. When a metric
// carries the same chain twice the first row wins.
func Merge(results map[Metric][]statusmodels.ChainMetricRow) []statusmodels.ChainSummary {
	chainOf := func(r statusmodels.ChainMetricRow) uint64 { return r.Chain }

	indexes := make(map[Metric]map[uint64]uint64, len(results))
	for metric, rows := range results {
		if metric == MetricBlocks {
			continue
		}
		indexes[metric] = lo.SliceToMap(lo.UniqBy(rows, chainOf), func(r statusmodels.ChainMetricRow) (uint64, uint64) {
			return r.Chain, r.Count
		})
	}

	blocks := results[MetricBlocks]
	summaries := make([]statusmodels.ChainSummary, 0, len(blocks))
	for _, row := range blocks {
		summary := statusmodels.ChainSummary{Chain: row.Chain, Blocks: row.Count}
		for _, metric := range metrics[1:] {
			setCount(&summary, metric, indexes[metric][row.Chain])
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

func setCount(s *statusmodels.ChainSummary, m Metric, v uint64) {
	switch m {
	case MetricBlocks:
		s.Blocks = v
	case MetricTransactions:
		s.Transactions = v
	case MetricContracts:
		s.Contracts = v
	case MetricReceipts:
		s.Receipts = v
	case MetricLogs:
		s.Logs = v
	case MetricDexTrades:
		s.DexTrades = v
	case MetricErc20Transfers:
		s.Erc20Transfers = v
	case MetricErc721Transfers:
		s.Erc721Transfers = v
	case MetricErc1155Transfers:
		s.Erc1155Transfers = v
	case MetricTraces:
		s.Traces = v
	case MetricWithdrawals:
		s.Withdrawals = v
	}
}
