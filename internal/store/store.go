// Package store persists recommendations, performance snapshots, the
// per-Friday analysis cache, and the cached symbol directory in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

// Store wraps the SQLite database. Connect-per-operation semantics are
// not needed with database/sql pooling; a single handle with a mutex
// keeps writes serialized the same way.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (or creates) the SQLite database and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so report queries can read while an analysis run writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] store opened: %s", dbPath)
	return s, nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS recommendations (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol              TEXT NOT NULL,
			company_name        TEXT,
			sector              TEXT,
			market_cap          INTEGER,
			recommendation_date TEXT NOT NULL,
			recommendation      TEXT NOT NULL,
			score               REAL NOT NULL,
			risk_level          TEXT NOT NULL,
			entry_price         REAL NOT NULL,
			target_price        REAL,
			stop_loss           REAL,
			reason              TEXT,
			trend_score         REAL,
			momentum_score      REAL,
			rsi_score           REAL,
			volume_score        REAL,
			price_action_score  REAL,
			tier                TEXT NOT NULL,
			status              TEXT NOT NULL DEFAULT 'ACTIVE',
			is_sold             INTEGER NOT NULL DEFAULT 0,
			last_friday_price   REAL,
			promotion_date      TEXT,
			sell_date           TEXT,
			sell_price          REAL,
			realized_return_pct REAL,
			money_made          REAL,
			created_at          TEXT DEFAULT CURRENT_TIMESTAMP
		)`,
		// At most one live row per (symbol, tier).
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_rec_active
			ON recommendations(symbol, tier) WHERE status = 'ACTIVE' AND is_sold = 0`,
		`CREATE INDEX IF NOT EXISTS idx_rec_tier ON recommendations(tier, status)`,

		`CREATE TABLE IF NOT EXISTS recommendation_performance (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			recommendation_id INTEGER NOT NULL,
			check_date        TEXT NOT NULL,
			current_price     REAL NOT NULL,
			return_pct        REAL NOT NULL,
			days_held         INTEGER NOT NULL,
			status            TEXT NOT NULL,
			UNIQUE(recommendation_id, check_date),
			FOREIGN KEY (recommendation_id) REFERENCES recommendations (id)
		)`,

		`CREATE TABLE IF NOT EXISTS friday_analysis (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol             TEXT NOT NULL,
			friday_date        TEXT NOT NULL,
			price              REAL,
			total_score        REAL NOT NULL,
			recommendation     TEXT,
			risk_level         TEXT,
			tier               TEXT,
			trend_score        REAL,
			momentum_score     REAL,
			rsi_score          REAL,
			volume_score       REAL,
			price_action_score REAL,
			created_at         TEXT DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(symbol, friday_date)
		)`,

		`CREATE TABLE IF NOT EXISTS symbols (
			symbol       TEXT PRIMARY KEY,
			company_name TEXT,
			sector       TEXT,
			market_cap   INTEGER,
			updated_at   TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			run_date      TEXT NOT NULL,
			analyzed      INTEGER,
			succeeded     INTEGER,
			failed        INTEGER,
			strong_count  INTEGER,
			weak_count    INTEGER,
			hold_count    INTEGER,
			avg_score     REAL,
			duration_secs REAL,
			created_at    TEXT DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	log.Println("[INFO] closing store")
	return s.db.Close()
}
