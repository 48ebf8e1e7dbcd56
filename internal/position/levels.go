package position

import "NiftyScreener/internal/scoring"

// Levels derives target and stop-loss prices from an entry price. Buy
// recommendations ride upward with a 10% stop; non-buy labels invert the
// levels for a short-side view. High-conviction scores stretch the target.
func Levels(entry float64, recommendation string, score float64) (target, stop float64) {
	if scoring.IsBuy(recommendation) {
		if score >= 70 {
			return entry * 1.15, entry * 0.90
		}
		return entry * 1.10, entry * 0.90
	}
	if score >= 70 {
		return entry * 0.85, entry * 1.10
	}
	return entry * 0.90, entry * 1.10
}
