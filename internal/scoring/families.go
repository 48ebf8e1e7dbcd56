package scoring

import (
	"fmt"

	"NiftyScreener/internal/model"
)

// Clamp bounds per scoring family. Raw sub-scores are clamped to these
// before weighting.
const (
	maxTrend       = 25.0
	maxMomentum    = 20.0
	maxRSI         = 15.0
	maxVolume      = 25.0
	maxPriceAction = 15.0
)

// Fixed family weights, summing to 100.
const (
	weightTrend       = 25.0
	weightMomentum    = 20.0
	weightRSI         = 15.0
	weightVolume      = 25.0
	weightPriceAction = 15.0
)

func clamp(score, bound float64) float64 {
	if score > bound {
		return bound
	}
	if score < -bound {
		return -bound
	}
	return score
}

// scoreTrend scores moving-average alignment. A missing DMA contributes
// nothing rather than counting against the symbol.
func scoreTrend(snap *model.IndicatorSnapshot) (float64, []string) {
	score := 0.0
	var signals []string

	// A neutral trend (under two weekly samples) contributes nothing.
	if snap.DMA50 != nil && snap.DMA50.Trend != model.TrendNeutral {
		if snap.DMA50.Trend == model.TrendUp {
			score += 8
			signals = append(signals, "50-DMA uptrend (+8)")
		} else {
			score -= 5
			signals = append(signals, "50-DMA downtrend (-5)")
		}
	}

	if snap.DMA200 != nil && snap.DMA200.Trend != model.TrendNeutral {
		if snap.DMA200.Trend == model.TrendUp {
			score += 7
			signals = append(signals, "200-DMA uptrend (+7)")
		} else {
			score -= 3
			signals = append(signals, "200-DMA downtrend (-3)")
		}
	}

	if snap.WeeklyPrices != nil && snap.DMA50 != nil {
		if snap.WeeklyPrices.CurrentPrice > snap.DMA50.Current {
			score += 5
			signals = append(signals, "price above 50-DMA (+5)")
		} else {
			score -= 3
			signals = append(signals, "price below 50-DMA (-3)")
		}
	}

	if snap.DMA50 != nil && snap.DMA200 != nil {
		if snap.DMA50.Current > snap.DMA200.Current {
			score += 5
			signals = append(signals, "golden cross: 50-DMA above 200-DMA (+5)")
		} else {
			score -= 5
			signals = append(signals, "death cross: 50-DMA below 200-DMA (-5)")
		}
	}

	return clamp(score, maxTrend), signals
}

// scoreMomentum scores weekly MACD crossovers and histogram strength.
func scoreMomentum(snap *model.IndicatorSnapshot) (float64, []string) {
	score := 0.0
	var signals []string

	macd := snap.WeeklyMACD
	if macd == nil {
		return 0, nil
	}

	if len(macd.Crossovers) > 0 {
		switch macd.Crossovers[len(macd.Crossovers)-1] {
		case model.CrossoverBullish:
			score += 12
			signals = append(signals, "MACD bullish crossover (+12)")
		case model.CrossoverBearish:
			score -= 12
			signals = append(signals, "MACD bearish crossover (-12)")
		}
	}

	switch hist := macd.Histogram; {
	case hist > 5:
		score += 5
		signals = append(signals, "strong MACD momentum (+5)")
	case hist > 0:
		score += 3
		signals = append(signals, "positive MACD momentum (+3)")
	case hist < -5:
		score -= 5
		signals = append(signals, "weak MACD momentum (-5)")
	default:
		score -= 3
		signals = append(signals, "negative MACD momentum (-3)")
	}

	if len(macd.Crossovers) >= 4 {
		recent := macd.Crossovers[len(macd.Crossovers)-4:]
		bullish, bearish := 0, 0
		for _, c := range recent {
			switch c {
			case model.CrossoverBullish:
				bullish++
			case model.CrossoverBearish:
				bearish++
			}
		}
		if bullish > bearish {
			score += 3
			signals = append(signals, "recent bullish MACD trend (+3)")
		} else if bearish > bullish {
			score -= 3
			signals = append(signals, "recent bearish MACD trend (-3)")
		}
	}

	return clamp(score, maxMomentum), signals
}

// scoreRSI scores the weekly RSI level and its 4-week drift.
func scoreRSI(snap *model.IndicatorSnapshot) (float64, []string) {
	score := 0.0
	var signals []string

	rsi := snap.WeeklyRSI
	if rsi == nil {
		return 0, nil
	}

	switch v := rsi.Current; {
	case v >= 30 && v <= 45:
		score += 10
		signals = append(signals, "RSI oversold recovery (+10)")
	case v > 45 && v <= 65:
		score += 5
		signals = append(signals, "RSI healthy bullish (+5)")
	case v > 65 && v <= 75:
		score -= 3
		signals = append(signals, "RSI getting overbought (-3)")
	case v > 75:
		score -= 8
		signals = append(signals, "RSI severely overbought (-8)")
	case v < 30:
		score += 8
		signals = append(signals, "RSI oversold, bounce expected (+8)")
	}

	if len(rsi.Weekly) >= 4 {
		recent := rsi.Weekly[len(rsi.Weekly)-4:]
		if recent[0] != 0 {
			trend := (recent[3] - recent[0]) / recent[0] * 100
			if trend > 5 {
				score += 2
				signals = append(signals, "RSI rising trend (+2)")
			} else if trend < -5 {
				score -= 2
				signals = append(signals, "RSI falling trend (-2)")
			}
		}
	}

	return clamp(score, maxRSI), signals
}

// scoreVolume scores OBV and VPT independently and sums them.
func scoreVolume(snap *model.IndicatorSnapshot) (float64, []string) {
	score := 0.0
	var signals []string

	score += scoreVolumeFlow(snap.OBV, "OBV", 4, &signals)
	score += scoreVolumeFlow(snap.VPT, "VPT", 5, &signals)

	return clamp(score, maxVolume), signals
}

// scoreVolumeFlow applies the shared trend-percentage ladder plus the
// above/below-MA120 check; maPoints differs between OBV (4) and VPT (5).
func scoreVolumeFlow(flow *model.VolumeFlowStats, name string, maPoints float64, signals *[]string) float64 {
	if flow == nil {
		return 0
	}
	score := 0.0

	switch pct := flow.TrendPct; {
	case pct > 15:
		score += 8
		*signals = append(*signals, fmt.Sprintf("%s strong uptrend (+8)", name))
	case pct > 5:
		score += 5
		*signals = append(*signals, fmt.Sprintf("%s uptrend (+5)", name))
	case pct < -15:
		score -= 8
		*signals = append(*signals, fmt.Sprintf("%s strong downtrend (-8)", name))
	case pct < -5:
		score -= 5
		*signals = append(*signals, fmt.Sprintf("%s downtrend (-5)", name))
	}

	if flow.MA120 != nil {
		if flow.Current > *flow.MA120 {
			score += maPoints
			*signals = append(*signals, fmt.Sprintf("%s above MA120 (+%.0f)", name, maPoints))
		} else if flow.Current < *flow.MA120 {
			score -= maPoints
			*signals = append(*signals, fmt.Sprintf("%s below MA120 (-%.0f)", name, maPoints))
		}
	}

	return score
}

// scorePriceAction scores recent weekly momentum, volatility, and the
// 4-week volume drift.
func scorePriceAction(snap *model.IndicatorSnapshot) (float64, []string) {
	score := 0.0
	var signals []string

	prices := snap.WeeklyPrices
	if prices == nil {
		return 0, nil
	}

	recent := prices.Changes
	if len(recent) > 4 {
		recent = recent[len(recent)-4:]
	}
	avg := 0.0
	for _, c := range recent {
		avg += c
	}
	if len(recent) > 0 {
		avg /= float64(len(recent))
	}
	switch {
	case avg > 2:
		score += 8
		signals = append(signals, "strong recent price momentum (+8)")
	case avg > 0:
		score += 4
		signals = append(signals, "positive recent price trend (+4)")
	case avg < -2:
		score -= 8
		signals = append(signals, "weak recent price performance (-8)")
	case avg < 0:
		score -= 4
		signals = append(signals, "negative recent price trend (-4)")
	}

	if prices.Volatility6M < 3 {
		score += 3
		signals = append(signals, "low volatility (+3)")
	} else if prices.Volatility6M > 8 {
		score -= 3
		signals = append(signals, "high volatility (-3)")
	}

	if len(prices.Volumes) >= 4 {
		vols := prices.Volumes[len(prices.Volumes)-4:]
		if vols[0] != 0 {
			trend := (vols[3] - vols[0]) / vols[0] * 100
			if trend > 20 {
				score += 4
				signals = append(signals, "increasing volume (+4)")
			} else if trend < -20 {
				score -= 4
				signals = append(signals, "declining volume (-4)")
			}
		}
	}

	return clamp(score, maxPriceAction), signals
}
