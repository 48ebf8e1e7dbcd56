package indicator

import (
	"math"

	"NiftyScreener/internal/model"
)

const (
	macdFast   = 12
	macdSlow   = 26
	macdSignal = 9
)

// emaSeries computes an exponential moving average with the standard
// 2/(span+1) smoothing, NaN during the warmup span.
func emaSeries(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}
	if len(values) < span {
		return out
	}

	// Seed with the simple mean of the first span values.
	sum := 0.0
	for i := 0; i < span; i++ {
		sum += values[i]
	}
	out[span-1] = sum / float64(span)

	alpha := 2.0 / (float64(span) + 1.0)
	for i := span; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// computeWeeklyMACD computes the 12/26/9 MACD on weekly-resampled closes.
// Crossover tags compare each consecutive (MACD, signal) pair in the
// trailing 26-week window. Returns nil when the weekly history cannot
// cover the slow EMA plus the signal warmup.
func computeWeeklyMACD(bars []model.PriceBar) *model.MACDStats {
	weekly := weeklyBars(bars)
	closes := make([]float64, len(weekly))
	for i, b := range weekly {
		closes[i] = b.Close
	}
	if len(closes) < macdSlow+macdSignal {
		return nil
	}

	fast := emaSeries(closes, macdFast)
	slow := emaSeries(closes, macdSlow)
	line := make([]float64, len(closes))
	for i := range line {
		line[i] = fast[i] - slow[i] // NaN until the slow EMA warms up
	}

	lineValid := series{}
	for i, v := range line {
		if !math.IsNaN(v) {
			lineValid.dates = append(lineValid.dates, weekly[i].Date)
			lineValid.values = append(lineValid.values, v)
		}
	}
	signal := emaSeries(lineValid.values, macdSignal)

	macdWin := lineValid.tail(26)
	sigWin := series{dates: lineValid.dates, values: signal}.dropNaN().tail(26)
	if sigWin.len() == 0 {
		return nil
	}

	n := macdWin.len()
	if sigWin.len() < n {
		n = sigWin.len()
	}
	macdVals := macdWin.values[macdWin.len()-n:]
	sigVals := sigWin.values[sigWin.len()-n:]

	crossovers := make([]model.Crossover, 0, n-1)
	for i := 1; i < n; i++ {
		prevDiff := macdVals[i-1] - sigVals[i-1]
		curDiff := macdVals[i] - sigVals[i]
		switch {
		case prevDiff <= 0 && curDiff > 0:
			crossovers = append(crossovers, model.CrossoverBullish)
		case prevDiff >= 0 && curDiff < 0:
			crossovers = append(crossovers, model.CrossoverBearish)
		default:
			crossovers = append(crossovers, model.CrossoverNone)
		}
	}

	lastLine := macdVals[n-1]
	lastSignal := sigVals[n-1]
	return &model.MACDStats{
		Line:         lastLine,
		Signal:       lastSignal,
		Histogram:    lastLine - lastSignal,
		WeeklyLine:   macdVals,
		WeeklySignal: sigVals,
		Crossovers:   crossovers,
	}
}
