package indicator

import (
	"math"
	"reflect"
	"testing"
	"time"

	"NiftyScreener/internal/model"
)

// makeBars generates n daily bars on consecutive weekdays starting
// Monday 2024-01-01, with close and volume supplied per index.
func makeBars(n int, value func(i int) (close, volume float64)) []model.PriceBar {
	bars := make([]model.PriceBar, 0, n)
	d := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for len(bars) < n {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			c, v := value(len(bars))
			bars = append(bars, model.PriceBar{
				Date:   d,
				Open:   c * 0.999,
				High:   c * 1.005,
				Low:    c * 0.995,
				Close:  c,
				Volume: v,
			})
		}
		d = d.AddDate(0, 0, 1)
	}
	return bars
}

func rising(i int) (float64, float64) {
	return 100 + float64(i)*0.5, 1000000
}

func TestCompute_Deterministic(t *testing.T) {
	bars := makeBars(300, rising)
	a := Compute(bars)
	b := Compute(bars)
	if !reflect.DeepEqual(a, b) {
		t.Error("repeated Compute calls on the same bars differ")
	}
}

func TestCompute_InsufficientHistory(t *testing.T) {
	snap := Compute(makeBars(60, rising))
	if snap.DMA50 == nil {
		t.Error("expected 50-DMA with 60 bars")
	}
	if snap.DMA200 != nil {
		t.Error("expected nil 200-DMA with only 60 bars")
	}
	if snap.WeeklyMACD != nil {
		t.Error("expected nil weekly MACD with only ~12 weeks of bars")
	}

	empty := Compute(nil)
	if empty.DMA50 != nil || empty.OBV != nil || empty.WeeklyPrices != nil {
		t.Error("expected all-nil snapshot for empty input")
	}
}

func TestComputeDMA_ExcludesCurrentBar(t *testing.T) {
	bars := makeBars(120, rising)
	base := computeDMA(bars, 50)
	if base == nil {
		t.Fatal("expected DMA stats")
	}

	// Perturbing only the newest close must not move the same-day average.
	bumped := make([]model.PriceBar, len(bars))
	copy(bumped, bars)
	bumped[len(bumped)-1].Close *= 2
	after := computeDMA(bumped, 50)
	if after.Current != base.Current {
		t.Errorf("current DMA moved with same-day close: %v -> %v", base.Current, after.Current)
	}

	// The previous close does feed the newest window.
	shifted := make([]model.PriceBar, len(bars))
	copy(shifted, bars)
	shifted[len(shifted)-2].Close += 50
	if computeDMA(shifted, 50).Current == base.Current {
		t.Error("previous close should move the newest DMA window")
	}
}

func TestComputeDMA_Trend(t *testing.T) {
	up := computeDMA(makeBars(250, rising), 50)
	if up.Trend != model.TrendUp {
		t.Errorf("rising closes: trend = %s, want uptrend", up.Trend)
	}
	down := computeDMA(makeBars(250, func(i int) (float64, float64) {
		return 300 - float64(i)*0.5, 1000000
	}), 50)
	if down.Trend != model.TrendDown {
		t.Errorf("falling closes: trend = %s, want downtrend", down.Trend)
	}
	if len(up.Weekly) == 0 || len(up.Weekly) > 26 {
		t.Errorf("weekly window length %d, want 1..26", len(up.Weekly))
	}
}

func TestWeeklyBars_FridayAnchored(t *testing.T) {
	bars := makeBars(10, func(i int) (float64, float64) {
		return 100 + float64(i), 10
	})
	weekly := weeklyBars(bars)
	if len(weekly) != 2 {
		t.Fatalf("10 weekdays should form 2 weeks, got %d", len(weekly))
	}
	for _, w := range weekly {
		if w.Date.Weekday() != time.Friday {
			t.Errorf("weekly bar labelled %s, want Friday", w.Date.Weekday())
		}
	}
	if weekly[0].Volume != 50 {
		t.Errorf("first week volume = %v, want 50", weekly[0].Volume)
	}
	if weekly[0].Open != bars[0].Open || weekly[0].Close != bars[4].Close {
		t.Error("weekly open/close should be first/last of the week")
	}
	if weekly[1].Close != bars[9].Close {
		t.Error("second week close should be the last bar's close")
	}
}

func TestRSISeries(t *testing.T) {
	allGains := make([]float64, 30)
	for i := range allGains {
		allGains[i] = 100 + float64(i)
	}
	rsi := rsiSeries(allGains, 14)
	if got := rsi[len(rsi)-1]; got != 100.0 {
		t.Errorf("RSI of monotone gains = %v, want 100", got)
	}
	for i := 0; i < 14; i++ {
		if !math.IsNaN(rsi[i]) {
			t.Fatalf("rsi[%d] should be NaN during warmup", i)
		}
	}

	short := rsiSeries([]float64{1, 2, 3}, 14)
	for _, v := range short {
		if !math.IsNaN(v) {
			t.Error("insufficient input should yield all-NaN RSI")
		}
	}
}

func TestComputeOBV(t *testing.T) {
	// Up, up, down, then flat closes across two weeks.
	closes := []float64{100, 101, 102, 101, 101, 101, 101, 101, 101, 101}
	bars := makeBars(10, func(i int) (float64, float64) {
		return closes[i], 10
	})
	stats := computeOBV(bars)
	if stats == nil {
		t.Fatal("expected OBV stats")
	}
	// +10 +10 -10 +0 = 10 by the last bar.
	if stats.Current != 10 {
		t.Errorf("OBV current = %v, want 10", stats.Current)
	}
	if stats.MA120 != nil {
		t.Error("MA120 should be nil with under 120 bars")
	}
}

func TestComputeVPT(t *testing.T) {
	bars := makeBars(10, func(i int) (float64, float64) {
		return 100 * math.Pow(1.01, float64(i)), 1000
	})
	stats := computeVPT(bars)
	if stats == nil {
		t.Fatal("expected VPT stats")
	}
	// Every day adds volume * +1%, so the cumulative sum is positive and growing.
	if stats.Current <= 0 || stats.TrendPct <= 0 {
		t.Errorf("rising closes should give positive VPT trend, got current=%v trend=%v%%", stats.Current, stats.TrendPct)
	}
}

func TestComputeWeeklyPrices(t *testing.T) {
	bars := makeBars(15, func(i int) (float64, float64) {
		return 100 + float64(i), 1000
	})
	stats := computeWeeklyPrices(bars)
	if stats == nil {
		t.Fatal("expected weekly price stats")
	}
	if len(stats.Closes) != 3 {
		t.Fatalf("15 weekdays should form 3 weeks, got %d", len(stats.Closes))
	}
	if stats.Changes[0] != 0 {
		t.Errorf("first week change = %v, want 0", stats.Changes[0])
	}
	if stats.CurrentPrice != bars[14].Close {
		t.Errorf("current price = %v, want last close %v", stats.CurrentPrice, bars[14].Close)
	}
	if stats.Volatility6M < 0 {
		t.Errorf("volatility = %v, want >= 0", stats.Volatility6M)
	}

	if computeWeeklyPrices(bars[:3]) != nil {
		t.Error("a single week should not produce stats")
	}
}

func TestComputeWeeklyMACD(t *testing.T) {
	bars := makeBars(300, rising)
	stats := computeWeeklyMACD(bars)
	if stats == nil {
		t.Fatal("expected MACD stats with 60 weeks of bars")
	}
	if stats.Histogram != stats.Line-stats.Signal {
		t.Error("histogram must equal line - signal")
	}
	if len(stats.Crossovers) != len(stats.WeeklyLine)-1 {
		t.Errorf("crossovers length %d, want window length minus one (%d)",
			len(stats.Crossovers), len(stats.WeeklyLine)-1)
	}
	// A consistent uptrend keeps MACD above its signal line.
	if stats.Histogram <= 0 {
		t.Errorf("uptrend histogram = %v, want > 0", stats.Histogram)
	}
}

func TestClipToDate(t *testing.T) {
	bars := makeBars(20, rising)
	cut := bars[9].Date
	clipped := ClipToDate(bars, cut)
	if len(clipped) != 10 {
		t.Fatalf("clipped length = %d, want 10", len(clipped))
	}
	if clipped[len(clipped)-1].Date.After(cut.AddDate(0, 0, 1)) {
		t.Error("clipped window extends past the cutoff")
	}

	snapFull := Compute(bars)
	snapClipped := Compute(clipped)
	if snapFull.OBV != nil && snapClipped.OBV != nil && snapFull.OBV.Current == snapClipped.OBV.Current {
		t.Log("OBV coincidentally equal; acceptable but unexpected for rising volume data")
	}
}
