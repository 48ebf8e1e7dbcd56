package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"NiftyScreener/internal/model"
)

const recColumns = `id, symbol, company_name, sector, market_cap, recommendation_date,
	recommendation, score, risk_level, entry_price, target_price, stop_loss, reason,
	trend_score, momentum_score, rsi_score, volume_score, price_action_score,
	tier, status, is_sold, last_friday_price, promotion_date, sell_date,
	sell_price, realized_return_pct, money_made`

// GetActive returns the live recommendation for (symbol, tier), or nil.
func (s *Store) GetActive(symbol string, tier model.Tier) (*model.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(`SELECT `+recColumns+` FROM recommendations
		WHERE symbol = ? AND tier = ? AND status = 'ACTIVE' AND is_sold = 0`,
		symbol, string(tier))
	rec, err := scanRecommendation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

// Insert stores a new recommendation row and returns its id.
func (s *Store) Insert(rec *model.Recommendation) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`INSERT INTO recommendations
		(symbol, company_name, sector, market_cap, recommendation_date,
		 recommendation, score, risk_level, entry_price, target_price, stop_loss, reason,
		 trend_score, momentum_score, rsi_score, volume_score, price_action_score,
		 tier, status, is_sold, last_friday_price)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		rec.Symbol, rec.CompanyName, rec.Sector, rec.MarketCap,
		rec.Date.Format(dateLayout),
		rec.Recommendation, rec.Score, rec.RiskLevel,
		rec.EntryPrice, rec.TargetPrice, rec.StopLoss, rec.Reason,
		rec.TrendScore, rec.MomentumScore, rec.RSIScore, rec.VolumeScore, rec.PriceActionScore,
		string(rec.Tier), string(model.StatusActive), 0, rec.LastFridayPrice,
	)
	if err != nil {
		return 0, fmt.Errorf("insert recommendation: %w", err)
	}
	return res.LastInsertId()
}

// OverwriteScores updates a live row in place with fresher, better data:
// price, levels, score fields, reason, and the recommendation date. The
// row keeps its identity and Friday baseline.
func (s *Store) OverwriteScores(id int64, rec *model.Recommendation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`UPDATE recommendations SET
		recommendation = ?, score = ?, risk_level = ?, entry_price = ?,
		target_price = ?, stop_loss = ?, reason = ?,
		trend_score = ?, momentum_score = ?, rsi_score = ?, volume_score = ?,
		price_action_score = ?, recommendation_date = ?
		WHERE id = ?`,
		rec.Recommendation, rec.Score, rec.RiskLevel, rec.EntryPrice,
		rec.TargetPrice, rec.StopLoss, rec.Reason,
		rec.TrendScore, rec.MomentumScore, rec.RSIScore, rec.VolumeScore,
		rec.PriceActionScore, rec.Date.Format(dateLayout),
		id,
	)
	if err != nil {
		return fmt.Errorf("overwrite recommendation %d: %w", id, err)
	}
	return nil
}

// PromoteWeak flips the live WEAK row for symbol to STRONG with
// re-entered levels. Returns false when no such row exists.
func (s *Store) PromoteWeak(symbol string, promotionDate time.Time, score float64, recommendation string, entry, target, stop float64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE recommendations SET
		tier = 'STRONG', promotion_date = ?, score = ?, recommendation = ?,
		entry_price = ?, target_price = ?, stop_loss = ?
		WHERE symbol = ? AND tier = 'WEAK' AND status = 'ACTIVE' AND is_sold = 0`,
		promotionDate.Format(dateLayout), score, recommendation,
		entry, target, stop, symbol,
	)
	if err != nil {
		return false, fmt.Errorf("promote %s: %w", symbol, err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// MarkSold freezes the live STRONG row for symbol as SOLD. Returns false
// when no such row exists; a miss is not an error.
func (s *Store) MarkSold(symbol string, sellDate time.Time, sellPrice, returnPct, moneyMade float64, reason string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE recommendations SET
		is_sold = 1, status = 'SOLD', sell_date = ?, sell_price = ?,
		realized_return_pct = ?, money_made = ?, reason = ?
		WHERE symbol = ? AND tier = 'STRONG' AND status = 'ACTIVE' AND is_sold = 0`,
		sellDate.Format(dateLayout), sellPrice, returnPct, moneyMade, reason, symbol,
	)
	if err != nil {
		return false, fmt.Errorf("mark sold %s: %w", symbol, err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// CloseRecommendation marks a row CLOSED (target hit or stop loss hit
// detected by the performance updater).
func (s *Store) CloseRecommendation(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`UPDATE recommendations SET status = 'CLOSED' WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("close recommendation %d: %w", id, err)
	}
	return nil
}

// UpdateFridayPrice refreshes the weekly reference price used for
// promotion drift checks.
func (s *Store) UpdateFridayPrice(id int64, price float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`UPDATE recommendations SET last_friday_price = ? WHERE id = ?`, price, id)
	if err != nil {
		return fmt.Errorf("update friday price %d: %w", id, err)
	}
	return nil
}

// ListByTier returns the live recommendations for a tier.
func (s *Store) ListByTier(tier model.Tier) ([]model.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT `+recColumns+` FROM recommendations
		WHERE tier = ? AND status = 'ACTIVE' AND is_sold = 0
		ORDER BY score DESC`, string(tier))
	if err != nil {
		return nil, fmt.Errorf("list tier %s: %w", tier, err)
	}
	defer rows.Close()
	return scanRecommendations(rows)
}

// ListActive returns every live recommendation across tiers.
func (s *Store) ListActive() ([]model.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT ` + recColumns + ` FROM recommendations
		WHERE status = 'ACTIVE' AND is_sold = 0 ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("list active: %w", err)
	}
	defer rows.Close()
	return scanRecommendations(rows)
}

// GetByID fetches one recommendation regardless of status.
func (s *Store) GetByID(id int64) (*model.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(`SELECT `+recColumns+` FROM recommendations WHERE id = ?`, id)
	rec, err := scanRecommendation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecommendation(row rowScanner) (*model.Recommendation, error) {
	var (
		rec             model.Recommendation
		dateStr         string
		tier, status    string
		isSold          int
		fridayPrice     sql.NullFloat64
		promotionDate   sql.NullString
		sellDate        sql.NullString
		sellPrice       sql.NullFloat64
		realizedReturn  sql.NullFloat64
		moneyMade       sql.NullFloat64
		companyName     sql.NullString
		sector          sql.NullString
		marketCap       sql.NullInt64
		reason          sql.NullString
		targetPrice     sql.NullFloat64
		stopLoss        sql.NullFloat64
	)
	err := row.Scan(&rec.ID, &rec.Symbol, &companyName, &sector, &marketCap, &dateStr,
		&rec.Recommendation, &rec.Score, &rec.RiskLevel, &rec.EntryPrice,
		&targetPrice, &stopLoss, &reason,
		&rec.TrendScore, &rec.MomentumScore, &rec.RSIScore, &rec.VolumeScore, &rec.PriceActionScore,
		&tier, &status, &isSold, &fridayPrice, &promotionDate, &sellDate,
		&sellPrice, &realizedReturn, &moneyMade)
	if err != nil {
		return nil, err
	}

	rec.CompanyName = companyName.String
	rec.Sector = sector.String
	rec.MarketCap = marketCap.Int64
	rec.Reason = reason.String
	rec.TargetPrice = targetPrice.Float64
	rec.StopLoss = stopLoss.Float64
	rec.Tier = model.Tier(tier)
	rec.Status = model.Status(status)
	rec.IsSold = isSold != 0
	rec.LastFridayPrice = fridayPrice.Float64

	if rec.Date, err = time.Parse(dateLayout, dateStr); err != nil {
		return nil, fmt.Errorf("parse recommendation date %q: %w", dateStr, err)
	}
	if promotionDate.Valid {
		if d, err := time.Parse(dateLayout, promotionDate.String); err == nil {
			rec.PromotionDate = &d
		}
	}
	if sellDate.Valid {
		if d, err := time.Parse(dateLayout, sellDate.String); err == nil {
			rec.SellDate = &d
		}
	}
	if sellPrice.Valid {
		rec.SellPrice = &sellPrice.Float64
	}
	if realizedReturn.Valid {
		rec.RealizedReturn = &realizedReturn.Float64
	}
	if moneyMade.Valid {
		rec.MoneyMade = &moneyMade.Float64
	}
	return &rec, nil
}

func scanRecommendations(rows *sql.Rows) ([]model.Recommendation, error) {
	var out []model.Recommendation
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}
