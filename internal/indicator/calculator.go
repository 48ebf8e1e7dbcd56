// Package indicator derives technical indicators from daily OHLCV bars.
// Every computation is a pure function of the bars it is given: the same
// window produces identical results whether it is live data or data
// truncated to a past date, which keeps backtests historically accurate.
package indicator

import (
	"time"

	"NiftyScreener/internal/model"
)

// Compute derives the full indicator snapshot from bars sorted ascending
// by date. Indicators whose minimum window exceeds the available history
// are left nil; one missing indicator never blocks the others.
func Compute(bars []model.PriceBar) *model.IndicatorSnapshot {
	if len(bars) == 0 {
		return &model.IndicatorSnapshot{}
	}
	return &model.IndicatorSnapshot{
		DMA50:        computeDMA(bars, 50),
		DMA200:       computeDMA(bars, 200),
		WeeklyRSI:    computeWeeklyRSI(bars),
		WeeklyMACD:   computeWeeklyMACD(bars),
		OBV:          computeOBV(bars),
		VPT:          computeVPT(bars),
		WeeklyPrices: computeWeeklyPrices(bars),
	}
}

// ClipToDate drops bars dated after asOf, preserving order. Used to score
// a symbol as of a historical reference date without look-ahead.
func ClipToDate(bars []model.PriceBar, asOf time.Time) []model.PriceBar {
	end := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 23, 59, 59, 0, asOf.Location())
	n := len(bars)
	for n > 0 && bars[n-1].Date.After(end) {
		n--
	}
	return bars[:n]
}
