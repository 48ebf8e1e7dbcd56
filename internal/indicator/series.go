package indicator

import (
	"math"
	"time"

	"NiftyScreener/internal/model"
)

// series pairs a value sequence with its dates. Gaps produced by warmup
// windows are NaN until dropped, mirroring how rolling indicators leave
// their first window undefined.
type series struct {
	dates  []time.Time
	values []float64
}

func (s series) len() int { return len(s.values) }

func (s series) last() float64 {
	return s.values[len(s.values)-1]
}

// tail keeps the trailing n points.
func (s series) tail(n int) series {
	if s.len() <= n {
		return s
	}
	return series{dates: s.dates[s.len()-n:], values: s.values[s.len()-n:]}
}

// dropNaN removes undefined points.
func (s series) dropNaN() series {
	out := series{}
	for i, v := range s.values {
		if !math.IsNaN(v) {
			out.dates = append(out.dates, s.dates[i])
			out.values = append(out.values, v)
		}
	}
	return out
}

func extractCloses(bars []model.PriceBar) series {
	s := series{dates: make([]time.Time, len(bars)), values: make([]float64, len(bars))}
	for i, b := range bars {
		s.dates[i] = b.Date
		s.values[i] = b.Close
	}
	return s
}

// fridayOf returns the Friday that closes the week containing d
// (weeks run Saturday through Friday).
func fridayOf(d time.Time) time.Time {
	offset := (int(time.Friday) - int(d.Weekday()) + 7) % 7
	f := d.AddDate(0, 0, offset)
	return time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, f.Location())
}

// weeklyLast resamples a daily series to Friday-anchored weeks, keeping the
// last value of each week and labelling it with the week's Friday.
func weeklyLast(s series) series {
	out := series{}
	var cur time.Time
	started := false
	for i := range s.values {
		f := fridayOf(s.dates[i])
		if !started {
			cur = f
			started = true
		} else if !f.Equal(cur) {
			out.dates = append(out.dates, cur)
			out.values = append(out.values, s.values[prevIdx(s, i)])
			cur = f
		}
		if i == len(s.values)-1 {
			out.dates = append(out.dates, cur)
			out.values = append(out.values, s.values[i])
		}
	}
	return out
}

func prevIdx(s series, i int) int {
	if i > 0 {
		return i - 1
	}
	return 0
}

// weeklyBars aggregates daily bars into Friday-anchored weekly OHLCV bars.
func weeklyBars(bars []model.PriceBar) []model.PriceBar {
	var out []model.PriceBar
	var week model.PriceBar
	started := false
	for _, b := range bars {
		f := fridayOf(b.Date)
		if !started {
			week = model.PriceBar{Date: f, Open: b.Open, High: b.High, Low: b.Low, Close: b.Close, Volume: b.Volume}
			started = true
			continue
		}
		if !f.Equal(week.Date) {
			out = append(out, week)
			week = model.PriceBar{Date: f, Open: b.Open, High: b.High, Low: b.Low, Close: b.Close, Volume: b.Volume}
			continue
		}
		if b.High > week.High {
			week.High = b.High
		}
		if b.Low < week.Low {
			week.Low = b.Low
		}
		week.Close = b.Close
		week.Volume += b.Volume
	}
	if started {
		out = append(out, week)
	}
	return out
}

// rollingMean computes a simple rolling mean; positions without a full
// window (or with NaN inside it) are NaN.
func rollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		sum := 0.0
		valid := true
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(values[j]) {
				valid = false
				break
			}
			sum += values[j]
		}
		if !valid {
			out[i] = math.NaN()
		} else {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// shiftOne shifts a series forward by one position so that index i holds
// the previous value; index 0 becomes NaN. Used to exclude the current bar
// from same-day averages.
func shiftOne(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(out) == 0 {
		return out
	}
	out[0] = math.NaN()
	copy(out[1:], values[:len(values)-1])
	return out
}

func seriesMax(values []float64) float64 {
	m := math.Inf(-1)
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}

func seriesMin(values []float64) float64 {
	m := math.Inf(1)
	for _, v := range values {
		if v < m {
			m = v
		}
	}
	return m
}

func seriesAvg(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// populationStdev is the N-denominator standard deviation.
func populationStdev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := seriesAvg(values)
	ss := 0.0
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)))
}
