// Package collector fetches daily price history from external market-data
// providers and runs the batched collection passes over the symbol universe.
package collector

import (
	"errors"

	"NiftyScreener/internal/model"
)

// Sentinel errors callers branch on. Anything else wrapping out of a
// fetcher is treated as unavailable data for that symbol.
var (
	// ErrNoData means the provider returned an empty or missing series.
	ErrNoData = errors.New("no data available")
	// ErrRateLimited means the provider signaled throttling; retried with
	// backoff before giving up.
	ErrRateLimited = errors.New("rate limited")
	// ErrMalformed means the provider response had an unexpected shape.
	ErrMalformed = errors.New("malformed response")
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchDailyBars(symbol string, lookbackDays int) ([]model.PriceBar, error)
	FetchDailyBarsBatch(symbols []string, lookbackDays int) (map[string][]model.PriceBar, error)
	FetchCurrentPrice(symbol string) (float64, error)
	Name() string
}

// Result is one symbol's outcome from a batched collection pass.
type Result struct {
	Symbol string
	Bars   []model.PriceBar
	Err    error
}

// OK reports whether the fetch produced usable bars.
func (r Result) OK() bool { return r.Err == nil && len(r.Bars) > 0 }
