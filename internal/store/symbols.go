package store

import (
	"database/sql"
	"fmt"

	"NiftyScreener/internal/model"
)

// SaveSymbols replaces the cached symbol directory.
func (s *Store) SaveSymbols(infos []model.StockInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin symbols tx: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM symbols`); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear symbols: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO symbols (symbol, company_name, sector, market_cap)
		VALUES (?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare symbols insert: %w", err)
	}
	defer stmt.Close()

	for _, info := range infos {
		if _, err := stmt.Exec(info.Symbol, info.CompanyName, info.Sector, info.MarketCap); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert symbol %s: %w", info.Symbol, err)
		}
	}
	return tx.Commit()
}

// LoadSymbols returns the cached symbol directory, empty when never saved.
func (s *Store) LoadSymbols() ([]model.StockInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT symbol, company_name, sector, market_cap
		FROM symbols ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("load symbols: %w", err)
	}
	defer rows.Close()

	var out []model.StockInfo
	for rows.Next() {
		var (
			info      model.StockInfo
			name      sql.NullString
			sector    sql.NullString
			marketCap sql.NullInt64
		)
		if err := rows.Scan(&info.Symbol, &name, &sector, &marketCap); err != nil {
			return nil, err
		}
		info.CompanyName = name.String
		info.Sector = sector.String
		info.MarketCap = marketCap.Int64
		out = append(out, info)
	}
	return out, rows.Err()
}

// RunSummary captures the tallies of one full analysis pass.
type RunSummary struct {
	RunDate     string
	Analyzed    int
	Succeeded   int
	Failed      int
	StrongCount int
	WeakCount   int
	HoldCount   int
	AvgScore    float64
	Duration    float64
}

// SaveAnalysisRun records the tallies of a completed analysis pass.
func (s *Store) SaveAnalysisRun(r *RunSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO analysis_runs
		(run_date, analyzed, succeeded, failed, strong_count, weak_count, hold_count, avg_score, duration_secs)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		r.RunDate, r.Analyzed, r.Succeeded, r.Failed,
		r.StrongCount, r.WeakCount, r.HoldCount, r.AvgScore, r.Duration,
	)
	if err != nil {
		return fmt.Errorf("save analysis run: %w", err)
	}
	return nil
}
