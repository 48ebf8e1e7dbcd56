package analyzer

import (
	"log"
	"time"

	"NiftyScreener/internal/model"
	"NiftyScreener/internal/position"
	"NiftyScreener/internal/scoring"
)

// RunDaily is the trading-day monitoring pass: check STRONG positions for
// sell triggers, check WEAK positions for promotion, then record
// performance snapshots. Weekends are a no-op.
func (a *Analyzer) RunDaily() error {
	switch a.now().Weekday() {
	case time.Saturday, time.Sunday:
		log.Println("[INFO] weekend, skipping daily monitoring")
		return nil
	}

	log.Println("[INFO] daily monitoring: checking STRONG sell triggers")
	if err := a.monitorStrong(); err != nil {
		log.Printf("[WARN] monitor strong: %v", err)
	}

	log.Println("[INFO] daily monitoring: checking WEAK promotions")
	if err := a.checkPromotions(); err != nil {
		log.Printf("[WARN] check promotions: %v", err)
	}

	log.Println("[INFO] daily monitoring: updating performance")
	if err := a.updatePerformance(); err != nil {
		log.Printf("[WARN] update performance: %v", err)
	}
	return nil
}

// monitorStrong applies the daily sell rule to every live STRONG position.
// The re-score is only computed when the price sits in the soft-stop range,
// saving a fetch per healthy position.
func (a *Analyzer) monitorStrong() error {
	strong, err := a.store.ListByTier(model.TierStrong)
	if err != nil {
		return err
	}
	if len(strong) == 0 {
		return nil
	}

	prices := a.currentPrices(symbolsOf(strong))
	for _, rec := range strong {
		price, ok := prices[rec.Symbol]
		if !ok || rec.EntryPrice <= 0 {
			continue
		}

		changePct := (price - rec.EntryPrice) / rec.EntryPrice * 100
		var rescore *float64
		if changePct <= -5 && changePct > -7 {
			if breakdown, err := a.ScoreSymbol(rec.Symbol, time.Time{}); err == nil {
				rescore = &breakdown.TotalScore
			} else {
				log.Printf("[WARN] re-score %s: %v", rec.Symbol, err)
			}
		}

		if sell, reason := position.ShouldSell(rec.EntryPrice, price, rescore); sell {
			if _, err := a.manager.Sell(rec.Symbol, price, reason); err != nil {
				log.Printf("[WARN] sell %s: %v", rec.Symbol, err)
			}
		}
	}
	return nil
}

// checkPromotions re-scores WEAK positions whose price has drifted up from
// the Friday baseline and promotes the ones that confirm.
func (a *Analyzer) checkPromotions() error {
	weak, err := a.store.ListByTier(model.TierWeak)
	if err != nil {
		return err
	}
	if len(weak) == 0 {
		return nil
	}

	prices := a.currentPrices(symbolsOf(weak))
	for _, rec := range weak {
		price, ok := prices[rec.Symbol]
		if !ok || rec.LastFridayPrice <= 0 {
			continue
		}
		drift := (price - rec.LastFridayPrice) / rec.LastFridayPrice * 100
		if drift < 2 {
			continue
		}

		breakdown, err := a.ScoreSymbol(rec.Symbol, time.Time{})
		if err != nil {
			log.Printf("[WARN] re-score %s: %v", rec.Symbol, err)
			continue
		}
		if _, err := a.manager.Promote(rec.Symbol, price, breakdown); err != nil {
			log.Printf("[WARN] promote %s: %v", rec.Symbol, err)
		}
	}
	return nil
}

// updatePerformance records a mark-to-market snapshot for every live
// position and closes the ones that crossed their target or stop.
func (a *Analyzer) updatePerformance() error {
	active, err := a.store.ListActive()
	if err != nil {
		return err
	}
	if len(active) == 0 {
		return nil
	}

	prices := a.currentPrices(symbolsOf(active))
	for i := range active {
		price, ok := prices[active[i].Symbol]
		if !ok {
			continue
		}
		if err := a.manager.UpdatePerformance(&active[i], price); err != nil {
			log.Printf("[WARN] performance %s: %v", active[i].Symbol, err)
		}
	}
	return nil
}

// Rescore fetches fresh data and returns the current score for a symbol.
func (a *Analyzer) Rescore(symbol string) (float64, error) {
	breakdown, err := a.ScoreSymbol(symbol, time.Time{})
	if err != nil {
		return 0, err
	}
	return breakdown.TotalScore, nil
}

// Recommendation labels both presentation views for a score.
func Recommendation(score float64, detailed bool) (label, risk string) {
	if detailed {
		return scoring.DetailedRecommendation(score)
	}
	return scoring.Recommendation(score)
}

func symbolsOf(recs []model.Recommendation) []string {
	out := make([]string, len(recs))
	for i, rec := range recs {
		out[i] = rec.Symbol
	}
	return out
}
