// Package analyzer orchestrates the screening passes: the weekly full-universe
// scan, the daily position monitor, the Friday maintenance routine, and the
// historical backtest over reference Fridays.
package analyzer

import (
	"fmt"
	"time"

	"NiftyScreener/internal/collector"
	"NiftyScreener/internal/indicator"
	"NiftyScreener/internal/model"
	"NiftyScreener/internal/position"
	"NiftyScreener/internal/scoring"
	"NiftyScreener/internal/store"
	"NiftyScreener/internal/symbols"
)

// Options tunes an Analyzer. Zero values get sensible defaults.
type Options struct {
	MinScore     float64 // floor below which a scan result is not tracked
	LookbackDays int     // daily history window per symbol
	Universe     string  // "full", "curated", or "basic"
	Batch        collector.BatchConfig
}

func (o Options) withDefaults() Options {
	if o.MinScore == 0 {
		o.MinScore = 35
	}
	if o.LookbackDays == 0 {
		o.LookbackDays = 500
	}
	return o
}

// Analyzer wires the fetcher, symbol directory, store, and lifecycle
// manager together. All collaborators are injected; there is no hidden
// process-wide state.
type Analyzer struct {
	fetcher collector.Fetcher
	batcher *collector.Batcher
	store   *store.Store
	dir     *symbols.Directory
	manager *position.Manager
	opts    Options
	now     func() time.Time
}

func New(fetcher collector.Fetcher, st *store.Store, dir *symbols.Directory, opts Options) *Analyzer {
	opts = opts.withDefaults()
	return &Analyzer{
		fetcher: fetcher,
		batcher: collector.NewBatcher(fetcher, opts.Batch),
		store:   st,
		dir:     dir,
		manager: position.NewManager(st),
		opts:    opts,
		now:     time.Now,
	}
}

// WithClock pins the analyzer's clock, including the lifecycle manager's.
// Used by backtests.
func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	a.now = now
	a.manager.WithClock(now)
	return a
}

// Manager exposes the lifecycle manager for callers driving position
// operations directly.
func (a *Analyzer) Manager() *position.Manager { return a.manager }

// ScoreBars scores an explicit bar series. Pure; used for backtesting.
func (a *Analyzer) ScoreBars(bars []model.PriceBar) *model.ScoreBreakdown {
	return scoring.ScoreBars(bars)
}

// ScoreSymbol fetches history for one symbol and scores it. With a non-zero
// asOf the series is truncated so no bar after that date influences the
// result.
func (a *Analyzer) ScoreSymbol(symbol string, asOf time.Time) (*model.ScoreBreakdown, error) {
	bars, err := a.fetcher.FetchDailyBars(symbol, a.opts.LookbackDays)
	if err != nil {
		return nil, fmt.Errorf("score %s: %w", symbol, err)
	}
	if !asOf.IsZero() {
		bars = indicator.ClipToDate(bars, asOf)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("score %s: %w", symbol, collector.ErrNoData)
	}
	return scoring.ScoreBars(bars), nil
}

// Universe resolves the symbol list to scan. The curated and basic lists
// skip the exchange entirely, useful for quick or offline runs.
func (a *Analyzer) Universe() []string {
	switch a.opts.Universe {
	case "basic":
		return symbols.BasicList()
	case "curated":
		return symbols.CuratedList()
	default:
		return a.dir.ListTradable(false)
	}
}

// currentPrices batch-fetches the latest close for a set of symbols.
// Symbols that fail are absent from the result.
func (a *Analyzer) currentPrices(syms []string) map[string]float64 {
	results := a.batcher.CollectAll(syms, 5)
	prices := make(map[string]float64, len(results))
	for symbol, res := range results {
		if res.OK() {
			prices[symbol] = res.Bars[len(res.Bars)-1].Close
		}
	}
	return prices
}
