package status

import (
	"fmt"
	"regexp"

	sq "github.com/Masterminds/squirrel"
)

// Metric names one tracked count category. The value doubles as the column
// alias in the aggregate query and the prefix of its count table.
type Metric string

const (
	MetricBlocks           Metric = "blocks"
	MetricTransactions     Metric = "transactions"
	MetricContracts        Metric = "contracts"
	MetricReceipts         Metric = "receipts"
	MetricLogs             Metric = "logs"
	MetricDexTrades        Metric = "dex_trades"
	MetricErc20Transfers   Metric = "erc20_transfers"
	MetricErc721Transfers  Metric = "erc721_transfers"
	MetricErc1155Transfers Metric = "erc1155_transfers"
	MetricTraces           Metric = "traces"
	MetricWithdrawals      Metric = "withdrawals"
)

// DefaultNamespace is the database holding the *_count_by_chain tables.
const DefaultNamespace = "indexer"

var metrics = []Metric{
	MetricBlocks,
	MetricTransactions,
	MetricContracts,
	MetricReceipts,
	MetricLogs,
	MetricDexTrades,
	MetricErc20Transfers,
	MetricErc721Transfers,
	MetricErc1155Transfers,
	MetricTraces,
	MetricWithdrawals,
}

// Metrics returns every tracked metric, blocks first.
func Metrics() []Metric {
	out := make([]Metric, len(metrics))
	copy(out, metrics)
	return out
}

// Table returns the unqualified count table for m.
func (m Metric) Table() string {
	return string(m) + "_count_by_chain"
}

func (m Metric) String() string { return string(m) }

// Query is one aggregate statement issued per request.
type Query struct {
	Metric Metric
	SQL    string
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateNamespace rejects anything that is not a bare identifier, since the
// namespace is interpolated into SQL text.
func ValidateNamespace(namespace string) error {
	if !identifier.MatchString(namespace) {
		return fmt.Errorf("invalid namespace %q: must match %s", namespace, identifier.String())
	}
	return nil
}

// BuildQueries renders the per-metric aggregate statements for namespace in
// the order returned by Metrics.
func BuildQueries(namespace string) ([]Query, error) {
	if err := ValidateNamespace(namespace); err != nil {
		return nil, err
	}

	queries := make([]Query, 0, len(metrics))
	for _, m := range metrics {
		stmt, _, err := sq.
			Select(fmt.Sprintf("sum(%s) AS %s", m, m), "chain").
			From(namespace + "." + m.Table()).
			GroupBy("chain").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("build %s query: %w", m, err)
		}
		queries = append(queries, Query{Metric: m, SQL: stmt})
	}
	return queries, nil
}
