package scoring

import "strings"

// Recommendation maps a total score to the coarse 5-band label and risk
// level used when saving recommendations.
func Recommendation(score float64) (label, risk string) {
	switch {
	case score >= 75:
		return "STRONG BUY", "Low"
	case score >= 60:
		return "BUY", "Low-Medium"
	case score >= 40:
		return "WEAK BUY", "Medium"
	case score >= 20:
		return "HOLD", "Medium-High"
	default:
		return "SELL", "High"
	}
}

// DetailedRecommendation maps a total score to the finer 7-band label
// used by report views, extending down to STRONG SELL.
func DetailedRecommendation(score float64) (label, risk string) {
	switch {
	case score >= 75:
		return "STRONG BUY", "LOW"
	case score >= 60:
		return "BUY", "LOW-MEDIUM"
	case score >= 40:
		return "WEAK BUY / HOLD", "MEDIUM"
	case score >= 20:
		return "HOLD", "MEDIUM"
	case score >= 0:
		return "WEAK SELL / HOLD", "MEDIUM"
	case score >= -20:
		return "SELL", "MEDIUM-HIGH"
	default:
		return "STRONG SELL", "HIGH"
	}
}

// IsBuy reports whether a recommendation label is buy-sided, which flips
// the direction of target/stop level computation.
func IsBuy(label string) bool {
	return strings.Contains(label, "BUY")
}
