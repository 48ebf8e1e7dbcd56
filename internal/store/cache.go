package store

import (
	"fmt"
	"time"

	"NiftyScreener/internal/model"
)

// HasFridayAnalysis reports whether a cached scoring row exists for the
// symbol on the given reference Friday.
func (s *Store) HasFridayAnalysis(symbol string, friday time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	err := s.db.QueryRow(`SELECT COUNT(1) FROM friday_analysis
		WHERE symbol = ? AND friday_date = ?`,
		symbol, friday.Format(dateLayout)).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check friday cache %s: %w", symbol, err)
	}
	return n > 0, nil
}

// SaveFridayAnalysis caches one scoring row. With force set an existing
// (symbol, friday) row is replaced; otherwise it is left untouched.
func (s *Store) SaveFridayAnalysis(fa *model.FridayAnalysis, force bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	verb := "INSERT OR IGNORE"
	if force {
		verb = "INSERT OR REPLACE"
	}
	_, err := s.db.Exec(verb+` INTO friday_analysis
		(symbol, friday_date, price, total_score, recommendation, risk_level, tier,
		 trend_score, momentum_score, rsi_score, volume_score, price_action_score)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		fa.Symbol, fa.FridayDate.Format(dateLayout), fa.Price, fa.TotalScore,
		fa.Recommendation, fa.RiskLevel, string(fa.Tier),
		fa.TrendScore, fa.MomentumScore, fa.RSIScore, fa.VolumeScore, fa.PriceActionScore,
	)
	if err != nil {
		return fmt.Errorf("save friday analysis %s: %w", fa.Symbol, err)
	}
	return nil
}

// FridayAnalyses returns the cached rows for a reference Friday scoring at
// least minScore, best first.
func (s *Store) FridayAnalyses(friday time.Time, minScore float64) ([]model.FridayAnalysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT symbol, friday_date, price, total_score,
		recommendation, risk_level, tier,
		trend_score, momentum_score, rsi_score, volume_score, price_action_score
		FROM friday_analysis
		WHERE friday_date = ? AND total_score >= ?
		ORDER BY total_score DESC`,
		friday.Format(dateLayout), minScore)
	if err != nil {
		return nil, fmt.Errorf("list friday analyses: %w", err)
	}
	defer rows.Close()

	var out []model.FridayAnalysis
	for rows.Next() {
		var (
			fa      model.FridayAnalysis
			dateStr string
			tier    string
		)
		if err := rows.Scan(&fa.Symbol, &dateStr, &fa.Price, &fa.TotalScore,
			&fa.Recommendation, &fa.RiskLevel, &tier,
			&fa.TrendScore, &fa.MomentumScore, &fa.RSIScore,
			&fa.VolumeScore, &fa.PriceActionScore); err != nil {
			return nil, err
		}
		d, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("parse friday date %q: %w", dateStr, err)
		}
		fa.FridayDate = d
		fa.Tier = model.Tier(tier)
		out = append(out, fa)
	}
	return out, rows.Err()
}
