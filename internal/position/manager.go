// Package position owns the lifecycle of tracked recommendations: tier
// classification, dedup-on-upsert, WEAK to STRONG promotion, sell rules,
// and the weekly cleanup sweep. Transitions are one-directional; a failing
// STRONG position is sold, never demoted back to WEAK.
package position

import (
	"fmt"
	"log"
	"time"

	"NiftyScreener/internal/model"
	"NiftyScreener/internal/scoring"
	"NiftyScreener/internal/store"
)

const (
	promotionDriftPct = 2.0
	sellHardPct       = -7.0
	sellSoftPct       = -5.0
	sellSoftScore     = 40.0
)

// Manager applies the lifecycle rules on top of the store. The clock is
// injectable for backtests.
type Manager struct {
	store *store.Store
	now   func() time.Time
}

func NewManager(st *store.Store) *Manager {
	return &Manager{store: st, now: time.Now}
}

// WithClock replaces the manager's clock. Used by backtests to pin "today".
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Upsert records a fresh scoring result for a symbol. If a live row already
// exists for the (symbol, tier) key, the new data wins only when its score
// is strictly higher; otherwise it is discarded. Returns the stored row and
// whether anything was written.
func (m *Manager) Upsert(info model.StockInfo, breakdown *model.ScoreBreakdown) (*model.Recommendation, bool, error) {
	tier := scoring.ClassifyTier(breakdown.TotalScore)
	target, stop := Levels(info.CurrentPrice, breakdown.Recommendation, breakdown.TotalScore)

	rec := &model.Recommendation{
		Symbol:           info.Symbol,
		CompanyName:      info.CompanyName,
		Sector:           info.Sector,
		MarketCap:        info.MarketCap,
		Date:             m.now(),
		Recommendation:   breakdown.Recommendation,
		Score:            breakdown.TotalScore,
		RiskLevel:        breakdown.RiskLevel,
		EntryPrice:       info.CurrentPrice,
		TargetPrice:      target,
		StopLoss:         stop,
		Reason:           reasonFromSignals(breakdown),
		TrendScore:       breakdown.Trend.Raw,
		MomentumScore:    breakdown.Momentum.Raw,
		RSIScore:         breakdown.RSI.Raw,
		VolumeScore:      breakdown.Volume.Raw,
		PriceActionScore: breakdown.PriceAction.Raw,
		Tier:             tier,
		Status:           model.StatusActive,
		LastFridayPrice:  info.CurrentPrice,
	}

	existing, err := m.store.GetActive(info.Symbol, tier)
	if err != nil {
		return nil, false, fmt.Errorf("lookup %s/%s: %w", info.Symbol, tier, err)
	}
	if existing == nil {
		id, err := m.store.Insert(rec)
		if err != nil {
			return nil, false, fmt.Errorf("insert %s/%s: %w", info.Symbol, tier, err)
		}
		rec.ID = id
		return rec, true, nil
	}

	if rec.Score <= existing.Score {
		return existing, false, nil
	}
	if err := m.store.OverwriteScores(existing.ID, rec); err != nil {
		return nil, false, err
	}
	log.Printf("[INFO] %s %s updated: score %.1f -> %.1f", info.Symbol, tier, existing.Score, rec.Score)
	rec.ID = existing.ID
	rec.LastFridayPrice = existing.LastFridayPrice
	return rec, true, nil
}

// Promote upgrades a live WEAK position to STRONG when its price has
// drifted at least 2% above the Friday baseline and a fresh re-score is in
// STRONG territory. The position is re-entered at the current price.
func (m *Manager) Promote(symbol string, currentPrice float64, rescore *model.ScoreBreakdown) (bool, error) {
	weak, err := m.store.GetActive(symbol, model.TierWeak)
	if err != nil || weak == nil {
		return false, err
	}
	if weak.LastFridayPrice <= 0 {
		return false, nil
	}
	drift := (currentPrice - weak.LastFridayPrice) / weak.LastFridayPrice * 100
	if drift < promotionDriftPct || rescore.TotalScore < 70 {
		return false, nil
	}

	target, stop := Levels(currentPrice, rescore.Recommendation, rescore.TotalScore)
	ok, err := m.store.PromoteWeak(symbol, m.now(), rescore.TotalScore, rescore.Recommendation,
		currentPrice, target, stop)
	if err != nil {
		return false, err
	}
	if ok {
		log.Printf("[INFO] %s promoted WEAK -> STRONG at %.2f (drift %.1f%%, score %.1f)",
			symbol, currentPrice, drift, rescore.TotalScore)
	}
	return ok, nil
}

// ShouldSell applies the daily sell rule to a STRONG position. A drop of
// 7% or more from entry sells immediately; a drop of 5% or more sells only
// when the re-score confirms deterioration. rescore may be nil when no
// fresh score is available, which disables the soft branch.
func ShouldSell(entry, currentPrice float64, rescore *float64) (bool, string) {
	if entry <= 0 {
		return false, ""
	}
	changePct := (currentPrice - entry) / entry * 100
	if changePct <= sellHardPct {
		return true, fmt.Sprintf("price down %.1f%% from entry", -changePct)
	}
	if changePct <= sellSoftPct && rescore != nil && *rescore < sellSoftScore {
		return true, fmt.Sprintf("price down %.1f%% with score %.1f", -changePct, *rescore)
	}
	return false, ""
}

// Sell closes the live STRONG position for symbol at currentPrice. A miss
// (no live STRONG row) returns false without error.
func (m *Manager) Sell(symbol string, currentPrice float64, reason string) (bool, error) {
	rec, err := m.store.GetActive(symbol, model.TierStrong)
	if err != nil {
		return false, err
	}
	if rec == nil {
		return false, nil
	}

	returnPct := 0.0
	if rec.EntryPrice > 0 {
		returnPct = (currentPrice - rec.EntryPrice) / rec.EntryPrice * 100
	}
	moneyMade := currentPrice - rec.EntryPrice
	ok, err := m.store.MarkSold(symbol, m.now(), currentPrice, returnPct, moneyMade, reason)
	if err != nil {
		return false, err
	}
	if ok {
		log.Printf("[INFO] %s sold at %.2f (%.1f%%): %s", symbol, currentPrice, returnPct, reason)
	}
	return ok, nil
}

// Cleanup is the weekly sweep over STRONG positions. It force-sells laggards
// on a time-aware schedule: -5% after a week held, -3% after two weeks, or
// under +2% after a month. Symbols missing from prices are skipped. Returns
// the symbols sold.
func (m *Manager) Cleanup(prices map[string]float64) ([]string, error) {
	strong, err := m.store.ListByTier(model.TierStrong)
	if err != nil {
		return nil, err
	}

	var sold []string
	for _, rec := range strong {
		price, ok := prices[rec.Symbol]
		if !ok || rec.EntryPrice <= 0 {
			continue
		}
		returnPct := (price - rec.EntryPrice) / rec.EntryPrice * 100
		days := m.daysHeld(&rec)

		reason := ""
		switch {
		case returnPct <= -5 && days >= 7:
			reason = fmt.Sprintf("down %.1f%% after %d days", -returnPct, days)
		case returnPct <= -3 && days >= 14:
			reason = fmt.Sprintf("down %.1f%% after %d days", -returnPct, days)
		case returnPct < 2 && days >= 30:
			reason = fmt.Sprintf("stagnant at %.1f%% after %d days", returnPct, days)
		}
		if reason == "" {
			continue
		}
		if ok, err := m.Sell(rec.Symbol, price, "weekly cleanup: "+reason); err != nil {
			log.Printf("[WARN] cleanup sell %s: %v", rec.Symbol, err)
		} else if ok {
			sold = append(sold, rec.Symbol)
		}
	}
	return sold, nil
}

// UpdatePerformance records a mark-to-market snapshot for a live position
// and closes it when the target or stop level has been crossed.
func (m *Manager) UpdatePerformance(rec *model.Recommendation, currentPrice float64) error {
	returnPct := 0.0
	if rec.EntryPrice > 0 {
		returnPct = (currentPrice - rec.EntryPrice) / rec.EntryPrice * 100
	}

	status := "ACTIVE"
	if scoring.IsBuy(rec.Recommendation) {
		switch {
		case rec.TargetPrice > 0 && currentPrice >= rec.TargetPrice:
			status = "TARGET_HIT"
		case rec.StopLoss > 0 && currentPrice <= rec.StopLoss:
			status = "STOP_HIT"
		}
	}

	err := m.store.UpsertPerformance(&model.PerformanceSnapshot{
		RecommendationID: rec.ID,
		CheckDate:        m.now(),
		CurrentPrice:     currentPrice,
		ReturnPct:        returnPct,
		DaysHeld:         m.daysHeld(rec),
		Status:           status,
	})
	if err != nil {
		return err
	}

	if status != "ACTIVE" {
		log.Printf("[INFO] %s %s at %.2f (target %.2f, stop %.2f)",
			rec.Symbol, status, currentPrice, rec.TargetPrice, rec.StopLoss)
		return m.store.CloseRecommendation(rec.ID)
	}
	return nil
}

// RefreshFridayBaselines stamps the current price as the new Friday
// reference on every live position present in prices.
func (m *Manager) RefreshFridayBaselines(prices map[string]float64) error {
	active, err := m.store.ListActive()
	if err != nil {
		return err
	}
	for _, rec := range active {
		price, ok := prices[rec.Symbol]
		if !ok {
			continue
		}
		if err := m.store.UpdateFridayPrice(rec.ID, price); err != nil {
			log.Printf("[WARN] friday price %s: %v", rec.Symbol, err)
		}
	}
	return nil
}

// daysHeld counts from the promotion date when the position was re-entered,
// else from the recommendation date.
func (m *Manager) daysHeld(rec *model.Recommendation) int {
	start := rec.Date
	if rec.PromotionDate != nil {
		start = *rec.PromotionDate
	}
	return int(m.now().Sub(start).Hours() / 24)
}

func reasonFromSignals(breakdown *model.ScoreBreakdown) string {
	for _, signals := range [][]string{
		breakdown.Trend.Signals,
		breakdown.Momentum.Signals,
		breakdown.Volume.Signals,
	} {
		if len(signals) > 0 {
			return signals[0]
		}
	}
	return fmt.Sprintf("composite score %.1f", breakdown.TotalScore)
}
