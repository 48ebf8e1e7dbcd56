package indicator

import (
	"math"
	"time"

	"NiftyScreener/internal/model"
)

// computeOBV builds the on-balance-volume series: cumulative volume signed
// by the direction of the daily close-to-close change.
func computeOBV(bars []model.PriceBar) *model.VolumeFlowStats {
	values := make([]float64, len(bars))
	dates := make([]time.Time, len(bars))
	cum := 0.0
	for i, b := range bars {
		if i > 0 {
			switch {
			case b.Close > bars[i-1].Close:
				cum += b.Volume
			case b.Close < bars[i-1].Close:
				cum -= b.Volume
			}
		}
		values[i] = cum
		dates[i] = b.Date
	}
	return volumeFlowStats(series{dates: dates, values: values})
}

// computeVPT builds the volume-price-trend series: cumulative volume
// scaled by the daily percentage price change.
func computeVPT(bars []model.PriceBar) *model.VolumeFlowStats {
	values := make([]float64, len(bars))
	dates := make([]time.Time, len(bars))
	cum := 0.0
	for i, b := range bars {
		if i > 0 && bars[i-1].Close != 0 {
			cum += b.Volume * (b.Close - bars[i-1].Close) / bars[i-1].Close
		}
		values[i] = cum
		dates[i] = b.Date
	}
	return volumeFlowStats(series{dates: dates, values: values})
}

// volumeFlowStats resamples a cumulative flow series to Friday-anchored
// weeks over the trailing 26, and pairs it with the last weekly reading of
// its 120-day rolling mean (nil when under 120 daily bars).
func volumeFlowStats(daily series) *model.VolumeFlowStats {
	weekly := weeklyLast(daily).dropNaN().tail(26)
	if weekly.len() < 2 {
		return nil
	}

	current := weekly.last()
	oldest := weekly.values[0]
	change := current - oldest
	trendPct := 0.0
	if oldest != 0 {
		trendPct = change / math.Abs(oldest) * 100
	}

	stats := &model.VolumeFlowStats{
		Current:     current,
		TrendChange: change,
		TrendPct:    trendPct,
		Weekly:      weekly.values,
		WeeklyDates: weekly.dates,
	}

	ma := series{dates: daily.dates, values: rollingMean(daily.values, 120)}
	maWeekly := weeklyLast(ma).dropNaN()
	if maWeekly.len() > 0 {
		v := maWeekly.last()
		stats.MA120 = &v
	}
	return stats
}
