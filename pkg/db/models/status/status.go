package status

// ChainMetricRow is a single row of one metric's per-chain aggregate.
type ChainMetricRow struct {
	Chain uint64 `json:"chain" ch:"chain"`
	Count uint64 `json:"count"`
}

// ChainSummary is the merged view of every tracked metric for one chain.
// Field order matches the /status response schema.
type ChainSummary struct {
	Chain            uint64 `json:"chain"`
	Blocks           uint64 `json:"blocks"`
	Transactions     uint64 `json:"transactions"`
	Contracts        uint64 `json:"contracts"`
	Receipts         uint64 `json:"receipts"`
	Logs             uint64 `json:"logs"`
	DexTrades        uint64 `json:"dex_trades"`
	Erc20Transfers   uint64 `json:"erc20_transfers"`
	Erc721Transfers  uint64 `json:"erc721_transfers"`
	Erc1155Transfers uint64 `json:"erc1155_transfers"`
	Traces           uint64 `json:"traces"`
	Withdrawals      uint64 `json:"withdrawals"`
}
