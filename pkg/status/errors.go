package status

import (
	"errors"
	"fmt"
)

// ErrAggregation wraps every failure returned by Aggregator.Summaries.
var ErrAggregation = errors.New("status aggregation failed")

// QueryError reports which metric query failed.
type QueryError struct {
	Metric Metric
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %s: %v", e.Metric, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }
