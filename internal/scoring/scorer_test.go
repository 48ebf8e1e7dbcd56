package scoring

import (
	"math"
	"testing"

	"NiftyScreener/internal/model"
)

func fptr(v float64) *float64 { return &v }

// A bullish mid-strength setup with hand-computed expected arithmetic:
// trend 8+5+5=18, momentum 12+5=17, rsi 5, volume (5+4)+(0+5)=14,
// price action 4+3=7.
func bullishSnapshot() *model.IndicatorSnapshot {
	return &model.IndicatorSnapshot{
		DMA50:  &model.DMAStats{Current: 100, Trend: model.TrendUp},
		DMA200: &model.DMAStats{Current: 90, Trend: model.TrendNeutral},
		WeeklyRSI: &model.RSIStats{
			Current: 55,
			Weekly:  []float64{55, 55, 55, 55},
		},
		WeeklyMACD: &model.MACDStats{
			Line:       7,
			Signal:     1,
			Histogram:  6,
			Crossovers: []model.Crossover{model.CrossoverBullish},
		},
		OBV: &model.VolumeFlowStats{Current: 100, TrendPct: 10, MA120: fptr(50)},
		VPT: &model.VolumeFlowStats{Current: 100, TrendPct: 3, MA120: fptr(50)},
		WeeklyPrices: &model.WeeklyPriceStats{
			CurrentPrice: 110,
			Changes:      []float64{1.5, 1.5, 1.5, 1.5},
			Volumes:      []float64{1000, 1000, 1000, 1000},
			Volatility6M: 2,
		},
	}
}

func TestScore_HandComputedExample(t *testing.T) {
	b := Score(bullishSnapshot())

	checks := []struct {
		name          string
		got           model.SubScore
		raw, weighted float64
	}{
		{"trend", b.Trend, 18, 18.0},
		{"momentum", b.Momentum, 17, 17.0},
		{"rsi", b.RSI, 5, 5.0},
		{"volume", b.Volume, 14, 14.0},
		{"price action", b.PriceAction, 7, 7.0},
	}
	for _, c := range checks {
		if c.got.Raw != c.raw {
			t.Errorf("%s raw = %v, want %v", c.name, c.got.Raw, c.raw)
		}
		if math.Abs(c.got.Weighted-c.weighted) > 1e-9 {
			t.Errorf("%s weighted = %v, want %v", c.name, c.got.Weighted, c.weighted)
		}
	}

	if math.Abs(b.TotalScore-61.0) > 1e-9 {
		t.Errorf("total = %v, want 61.0", b.TotalScore)
	}
	if b.Recommendation != "BUY" || b.RiskLevel != "Low-Medium" {
		t.Errorf("recommendation = %q / %q, want BUY / Low-Medium", b.Recommendation, b.RiskLevel)
	}
}

func TestScore_Deterministic(t *testing.T) {
	a := Score(bullishSnapshot())
	b := Score(bullishSnapshot())
	if a.TotalScore != b.TotalScore {
		t.Errorf("repeated scores differ: %v vs %v", a.TotalScore, b.TotalScore)
	}
}

func TestScore_MissingIndicatorsContributeZero(t *testing.T) {
	b := Score(&model.IndicatorSnapshot{})
	if b.TotalScore != 0 {
		t.Errorf("empty snapshot total = %v, want 0", b.TotalScore)
	}
	for _, s := range []model.SubScore{b.Trend, b.Momentum, b.RSI, b.Volume, b.PriceAction} {
		if s.Raw != 0 || len(s.Signals) != 0 {
			t.Errorf("missing indicator produced raw=%v signals=%v", s.Raw, s.Signals)
		}
	}

	// One present family still scores while the rest stay silent.
	partial := Score(&model.IndicatorSnapshot{
		WeeklyRSI: &model.RSIStats{Current: 35, Weekly: []float64{35}},
	})
	if partial.RSI.Raw != 10 {
		t.Errorf("rsi raw = %v, want 10", partial.RSI.Raw)
	}
	if partial.Trend.Raw != 0 {
		t.Errorf("trend raw = %v, want 0 with no DMAs", partial.Trend.Raw)
	}
}

func TestScore_Boundedness(t *testing.T) {
	extreme := &model.IndicatorSnapshot{
		DMA50:  &model.DMAStats{Current: 200, Trend: model.TrendUp},
		DMA200: &model.DMAStats{Current: 100, Trend: model.TrendUp},
		WeeklyRSI: &model.RSIStats{
			Current: 40,
			Weekly:  []float64{30, 33, 38, 40},
		},
		WeeklyMACD: &model.MACDStats{
			Histogram: 9,
			Crossovers: []model.Crossover{
				model.CrossoverBullish, model.CrossoverBullish,
				model.CrossoverBullish, model.CrossoverBullish,
			},
		},
		OBV: &model.VolumeFlowStats{Current: 200, TrendPct: 30, MA120: fptr(50)},
		VPT: &model.VolumeFlowStats{Current: 200, TrendPct: 30, MA120: fptr(50)},
		WeeklyPrices: &model.WeeklyPriceStats{
			CurrentPrice: 500,
			Changes:      []float64{3, 3, 3, 3},
			Volumes:      []float64{100, 110, 120, 150},
			Volatility6M: 1,
		},
	}
	b := Score(extreme)

	bounds := []struct {
		name string
		got  model.SubScore
		max  float64
	}{
		{"trend", b.Trend, maxTrend},
		{"momentum", b.Momentum, maxMomentum},
		{"rsi", b.RSI, maxRSI},
		{"volume", b.Volume, maxVolume},
		{"price action", b.PriceAction, maxPriceAction},
	}
	for _, c := range bounds {
		if c.got.Raw > c.max || c.got.Raw < -c.max {
			t.Errorf("%s raw %v outside ±%v", c.name, c.got.Raw, c.max)
		}
	}

	// OBV 8+4 plus VPT 8+5 exceeds 25 before clamping.
	if b.Volume.Raw != maxVolume {
		t.Errorf("volume raw = %v, want clamped to %v", b.Volume.Raw, maxVolume)
	}

	// Total reconstructs exactly from the weighted parts.
	sum := b.Trend.Weighted + b.Momentum.Weighted + b.RSI.Weighted +
		b.Volume.Weighted + b.PriceAction.Weighted
	if b.TotalScore != sum {
		t.Errorf("total %v != sum of weighted %v", b.TotalScore, sum)
	}
}

func TestClassifyTier(t *testing.T) {
	tests := []struct {
		score float64
		want  model.Tier
	}{
		{95, model.TierStrong},
		{70, model.TierStrong},
		{69.99, model.TierWeak},
		{50, model.TierWeak},
		{49.99, model.TierHold},
		{0, model.TierHold},
		{-40, model.TierHold},
	}
	for _, tt := range tests {
		if got := ClassifyTier(tt.score); got != tt.want {
			t.Errorf("ClassifyTier(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestRecommendationTables(t *testing.T) {
	coarse := []struct {
		score float64
		label string
		risk  string
	}{
		{80, "STRONG BUY", "Low"},
		{75, "STRONG BUY", "Low"},
		{60, "BUY", "Low-Medium"},
		{40, "WEAK BUY", "Medium"},
		{20, "HOLD", "Medium-High"},
		{19.9, "SELL", "High"},
		{-50, "SELL", "High"},
	}
	for _, tt := range coarse {
		label, risk := Recommendation(tt.score)
		if label != tt.label || risk != tt.risk {
			t.Errorf("Recommendation(%v) = %q/%q, want %q/%q", tt.score, label, risk, tt.label, tt.risk)
		}
	}

	fine := []struct {
		score float64
		label string
	}{
		{80, "STRONG BUY"},
		{65, "BUY"},
		{45, "WEAK BUY / HOLD"},
		{25, "HOLD"},
		{5, "WEAK SELL / HOLD"},
		{-10, "SELL"},
		{-25, "STRONG SELL"},
	}
	for _, tt := range fine {
		if label, _ := DetailedRecommendation(tt.score); label != tt.label {
			t.Errorf("DetailedRecommendation(%v) = %q, want %q", tt.score, label, tt.label)
		}
	}
}

func TestIsBuy(t *testing.T) {
	for _, label := range []string{"STRONG BUY", "BUY", "WEAK BUY", "WEAK BUY / HOLD"} {
		if !IsBuy(label) {
			t.Errorf("IsBuy(%q) = false, want true", label)
		}
	}
	for _, label := range []string{"HOLD", "SELL", "STRONG SELL", "WEAK SELL / HOLD"} {
		if IsBuy(label) {
			t.Errorf("IsBuy(%q) = true, want false", label)
		}
	}
}
