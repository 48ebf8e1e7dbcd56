package indicator

import (
	"math"

	"NiftyScreener/internal/model"
)

// rsiSeries computes the Wilder-smoothed RSI over the given period,
// returning a value per input position (NaN during warmup).
func rsiSeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}
	if len(values) < period+1 {
		return out
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := values[i] - values[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiFrom(avgGain, avgLoss)

	for i := period + 1; i < len(values); i++ {
		change := values[i] - values[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiFrom(avgGain, avgLoss)
	}
	return out
}

func rsiFrom(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}

// computeWeeklyRSI computes the 14-period RSI on weekly-resampled closes
// with the trailing 26 weekly readings and their condition tags.
func computeWeeklyRSI(bars []model.PriceBar) *model.RSIStats {
	weeklyCloses := weeklyLast(extractCloses(bars)).dropNaN()
	rsi := series{dates: weeklyCloses.dates, values: rsiSeries(weeklyCloses.values, 14)}

	valid := rsi.dropNaN()
	if valid.len() == 0 {
		return nil
	}

	window := valid.tail(26)
	conditions := make([]model.RSICondition, window.len())
	for i, v := range window.values {
		conditions[i] = rsiCondition(v)
	}

	return &model.RSIStats{
		Current:     valid.last(),
		Weekly:      window.values,
		WeeklyDates: window.dates,
		Conditions:  conditions,
		Max6M:       seriesMax(window.values),
		Min6M:       seriesMin(window.values),
		Avg6M:       seriesAvg(window.values),
	}
}

func rsiCondition(v float64) model.RSICondition {
	switch {
	case v >= 70:
		return model.RSIOverbought
	case v <= 30:
		return model.RSIOversold
	case v >= 50:
		return model.RSIBullish
	default:
		return model.RSIBearish
	}
}
