// Package scoring turns an indicator snapshot into a bounded composite
// score with a categorical recommendation and risk label. The five family
// sub-scorers are independent: a missing indicator contributes zero to its
// own family and never blocks the others.
package scoring

import (
	"NiftyScreener/internal/indicator"
	"NiftyScreener/internal/model"
)

// Score computes the weighted composite breakdown from a snapshot.
// total = Σ (raw_i / max_abs_i) × weight_i over the five families.
func Score(snap *model.IndicatorSnapshot) *model.ScoreBreakdown {
	trendRaw, trendSignals := scoreTrend(snap)
	momentumRaw, momentumSignals := scoreMomentum(snap)
	rsiRaw, rsiSignals := scoreRSI(snap)
	volumeRaw, volumeSignals := scoreVolume(snap)
	priceRaw, priceSignals := scorePriceAction(snap)

	b := &model.ScoreBreakdown{
		Trend:       subScore(trendRaw, maxTrend, weightTrend, trendSignals),
		Momentum:    subScore(momentumRaw, maxMomentum, weightMomentum, momentumSignals),
		RSI:         subScore(rsiRaw, maxRSI, weightRSI, rsiSignals),
		Volume:      subScore(volumeRaw, maxVolume, weightVolume, volumeSignals),
		PriceAction: subScore(priceRaw, maxPriceAction, weightPriceAction, priceSignals),
	}
	b.TotalScore = b.Trend.Weighted + b.Momentum.Weighted + b.RSI.Weighted +
		b.Volume.Weighted + b.PriceAction.Weighted
	b.Recommendation, b.RiskLevel = Recommendation(b.TotalScore)
	return b
}

// ScoreBars is the one-call pipeline for an explicit bar window, used by
// backtests that clip history to a past date.
func ScoreBars(bars []model.PriceBar) *model.ScoreBreakdown {
	return Score(indicator.Compute(bars))
}

func subScore(raw, maxAbs, weight float64, signals []string) model.SubScore {
	return model.SubScore{
		Raw:      raw,
		Weighted: raw / maxAbs * weight,
		Signals:  signals,
	}
}

// ClassifyTier maps a total score to a position tier. Exhaustive and
// non-overlapping: ≥70 STRONG, ≥50 WEAK, below HOLD. Independent of the
// recommendation label thresholds.
func ClassifyTier(totalScore float64) model.Tier {
	switch {
	case totalScore >= 70:
		return model.TierStrong
	case totalScore >= 50:
		return model.TierWeak
	default:
		return model.TierHold
	}
}
