package store

import (
	"fmt"
	"time"

	"NiftyScreener/internal/model"
)

// UpsertPerformance records a mark-to-market observation. Re-checking the
// same recommendation on the same date replaces the earlier row.
func (s *Store) UpsertPerformance(p *model.PerformanceSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT OR REPLACE INTO recommendation_performance
		(recommendation_id, check_date, current_price, return_pct, days_held, status)
		VALUES (?,?,?,?,?,?)`,
		p.RecommendationID, p.CheckDate.Format(dateLayout),
		p.CurrentPrice, p.ReturnPct, p.DaysHeld, p.Status,
	)
	if err != nil {
		return fmt.Errorf("upsert performance for %d: %w", p.RecommendationID, err)
	}
	return nil
}

// LatestPerformance returns the most recent snapshot for a recommendation,
// or nil when none has been recorded.
func (s *Store) LatestPerformance(recommendationID int64) (*model.PerformanceSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT recommendation_id, check_date, current_price,
		return_pct, days_held, status
		FROM recommendation_performance
		WHERE recommendation_id = ?
		ORDER BY check_date DESC LIMIT 1`, recommendationID)
	if err != nil {
		return nil, fmt.Errorf("latest performance for %d: %w", recommendationID, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	p, err := scanPerformance(rows)
	if err != nil {
		return nil, err
	}
	return p, rows.Err()
}

// PerformanceHistory returns all snapshots for a recommendation, oldest first.
func (s *Store) PerformanceHistory(recommendationID int64) ([]model.PerformanceSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT recommendation_id, check_date, current_price,
		return_pct, days_held, status
		FROM recommendation_performance
		WHERE recommendation_id = ?
		ORDER BY check_date ASC`, recommendationID)
	if err != nil {
		return nil, fmt.Errorf("performance history for %d: %w", recommendationID, err)
	}
	defer rows.Close()

	var out []model.PerformanceSnapshot
	for rows.Next() {
		p, err := scanPerformance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

type perfScanner interface {
	Scan(dest ...any) error
}

func scanPerformance(row perfScanner) (*model.PerformanceSnapshot, error) {
	var (
		p       model.PerformanceSnapshot
		dateStr string
	)
	if err := row.Scan(&p.RecommendationID, &dateStr, &p.CurrentPrice,
		&p.ReturnPct, &p.DaysHeld, &p.Status); err != nil {
		return nil, err
	}
	d, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("parse check date %q: %w", dateStr, err)
	}
	p.CheckDate = d
	return &p, nil
}
