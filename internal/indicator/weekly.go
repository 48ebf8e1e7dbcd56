package indicator

import (
	"time"

	"NiftyScreener/internal/model"
)

// computeWeeklyPrices aggregates daily bars into Friday-anchored weekly
// OHLCV statistics over the trailing 26 weeks. Volatility is the
// population stdev of the per-week percentage changes.
func computeWeeklyPrices(bars []model.PriceBar) *model.WeeklyPriceStats {
	weekly := weeklyBars(bars)
	if len(weekly) > 26 {
		weekly = weekly[len(weekly)-26:]
	}
	if len(weekly) < 2 {
		return nil
	}

	n := len(weekly)
	closes := make([]float64, n)
	highs := make([]float64, n)
	lows := make([]float64, n)
	volumes := make([]float64, n)
	dates := make([]time.Time, n)
	changes := make([]float64, n)
	for i, w := range weekly {
		closes[i] = w.Close
		highs[i] = w.High
		lows[i] = w.Low
		volumes[i] = w.Volume
		dates[i] = w.Date
		if i > 0 && weekly[i-1].Close != 0 {
			changes[i] = (w.Close - weekly[i-1].Close) / weekly[i-1].Close * 100
		}
	}

	return &model.WeeklyPriceStats{
		Closes:       closes,
		Highs:        highs,
		Lows:         lows,
		Volumes:      volumes,
		Changes:      changes,
		Dates:        dates,
		CurrentPrice: closes[n-1],
		Max6M:        seriesMax(highs),
		Min6M:        seriesMin(lows),
		Avg6M:        seriesAvg(closes),
		Volatility6M: populationStdev(changes),
	}
}
