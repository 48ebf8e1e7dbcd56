package indicator

import (
	"NiftyScreener/internal/model"
)

// computeDMA computes an N-day simple moving average of closes on the
// shift-by-one series (today's average excludes today's close, so a window
// truncated to any past date reproduces what was knowable that day). The
// rolling series is resampled to Friday-anchored weeks and the trailing 26
// weeks are kept. Returns nil when fewer than days+1 bars exist.
func computeDMA(bars []model.PriceBar, days int) *model.DMAStats {
	if len(bars) < days+1 {
		return nil
	}

	closes := extractCloses(bars)
	dma := series{dates: closes.dates, values: rollingMean(shiftOne(closes.values), days)}

	valid := dma.dropNaN()
	if valid.len() == 0 {
		return nil
	}
	current := valid.last()

	weekly := weeklyLast(dma).dropNaN().tail(26)
	if weekly.len() < 2 {
		return &model.DMAStats{
			Current: current,
			Max6M:   current,
			Min6M:   current,
			Avg6M:   current,
			Trend:   model.TrendNeutral,
		}
	}

	weeklyPrices := weeklyLast(closes).dropNaN().tail(26)
	positions := make([]string, weekly.len())
	for i := range weekly.values {
		switch {
		case i >= weeklyPrices.len():
			positions[i] = "unknown"
		case weeklyPrices.values[i] > weekly.values[i]:
			positions[i] = "above"
		case weeklyPrices.values[i] < weekly.values[i]:
			positions[i] = "below"
		default:
			positions[i] = "at"
		}
	}

	trend := model.TrendDown
	if weekly.values[weekly.len()-1] > weekly.values[0] {
		trend = model.TrendUp
	}

	return &model.DMAStats{
		Current:     current,
		Weekly:      weekly.values,
		WeeklyDates: weekly.dates,
		Positions:   positions,
		Max6M:       seriesMax(weekly.values),
		Min6M:       seriesMin(weekly.values),
		Avg6M:       seriesAvg(weekly.values),
		Trend:       trend,
	}
}
