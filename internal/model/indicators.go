package model

import "time"

// Trend tags the direction of a trailing 26-week indicator window.
type Trend string

const (
	TrendUp      Trend = "uptrend"
	TrendDown    Trend = "downtrend"
	TrendNeutral Trend = "neutral"
)

// Crossover tags a weekly MACD/signal relationship change.
type Crossover string

const (
	CrossoverBullish Crossover = "bullish_crossover"
	CrossoverBearish Crossover = "bearish_crossover"
	CrossoverNone    Crossover = "no_crossover"
)

// RSICondition tags a weekly RSI reading.
type RSICondition string

const (
	RSIOverbought RSICondition = "overbought"
	RSIOversold   RSICondition = "oversold"
	RSIBullish    RSICondition = "bullish"
	RSIBearish    RSICondition = "bearish"
)

// DMAStats holds a moving average computed on shift-by-one closes,
// resampled to Friday-anchored weeks over the trailing 26 weeks.
type DMAStats struct {
	Current     float64
	Weekly      []float64
	WeeklyDates []time.Time
	// Positions records, per week, whether the weekly close sat above,
	// below, or at the average ("above"/"below"/"at").
	Positions []string
	Max6M     float64
	Min6M     float64
	Avg6M     float64
	Trend     Trend
}

// RSIStats holds the weekly RSI(14) with its trailing 26-week history.
type RSIStats struct {
	Current     float64
	Weekly      []float64
	WeeklyDates []time.Time
	Conditions  []RSICondition
	Max6M       float64
	Min6M       float64
	Avg6M       float64
}

// MACDStats holds the weekly MACD(12,26,9) with per-week crossover tags.
type MACDStats struct {
	Line         float64
	Signal       float64
	Histogram    float64
	WeeklyLine   []float64
	WeeklySignal []float64
	Crossovers   []Crossover
}

// VolumeFlowStats holds a cumulative volume indicator (OBV or VPT),
// weekly-resampled over 26 weeks, paired with its daily 120-bar mean.
type VolumeFlowStats struct {
	Current     float64
	TrendChange float64
	TrendPct    float64
	Weekly      []float64
	WeeklyDates []time.Time
	// MA120 is nil when fewer than 120 daily bars exist.
	MA120 *float64
}

// WeeklyPriceStats aggregates OHLCV into Friday-anchored weeks over
// the trailing 26 weeks.
type WeeklyPriceStats struct {
	Closes       []float64
	Highs        []float64
	Lows         []float64
	Volumes      []float64
	Changes      []float64 // per-week close-to-close % change, first entry 0
	Dates        []time.Time
	CurrentPrice float64
	Max6M        float64
	Min6M        float64
	Avg6M        float64
	Volatility6M float64 // population stdev of Changes
}

// IndicatorSnapshot is the full derived view of a symbol as of the last
// bar in the input window. An indicator with insufficient history is nil,
// never zero-valued: callers must treat absence as "cannot score".
type IndicatorSnapshot struct {
	DMA50        *DMAStats
	DMA200       *DMAStats
	WeeklyRSI    *RSIStats
	WeeklyMACD   *MACDStats
	OBV          *VolumeFlowStats
	VPT          *VolumeFlowStats
	WeeklyPrices *WeeklyPriceStats
}
