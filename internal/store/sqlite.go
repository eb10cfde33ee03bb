package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-backed journal at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Strategy analyses; the full result is stored as JSON
	CREATE TABLE IF NOT EXISTS analyses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		symbol TEXT NOT NULL,
		strategy TEXT NOT NULL,
		underlying REAL NOT NULL,
		max_profit REAL NOT NULL,
		max_loss REAL NOT NULL,
		probability_profit REAL NOT NULL,
		result TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_analyses_symbol ON analyses(symbol, timestamp);

	-- Position-sizing decisions
	CREATE TABLE IF NOT EXISTS sizings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		symbol TEXT NOT NULL,
		entry_price REAL NOT NULL,
		stop_price REAL NOT NULL,
		target_price REAL,
		shares INTEGER NOT NULL,
		dollar_risk REAL NOT NULL,
		risk_reward REAL,
		kelly_fraction REAL,
		result TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_sizings_symbol ON sizings(symbol, timestamp);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveAnalysis records a strategy analysis.
func (s *SQLiteStore) SaveAnalysis(ctx context.Context, rec *AnalysisRecord) error {
	payload, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO analyses (timestamp, symbol, strategy, underlying, max_profit, max_loss, probability_profit, result)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Timestamp, rec.Symbol, rec.Strategy, rec.Underlying,
		rec.Result.MaxProfit, rec.Result.MaxLoss, rec.Result.ProbProfit, string(payload))
	if err != nil {
		return fmt.Errorf("inserting analysis: %w", err)
	}
	rec.ID, _ = res.LastInsertId()
	return nil
}

// GetAnalyses returns recorded analyses matching the filter, newest first.
func (s *SQLiteStore) GetAnalyses(ctx context.Context, filter AnalysisFilter) ([]AnalysisRecord, error) {
	query := `SELECT id, timestamp, symbol, strategy, underlying, result FROM analyses`
	var conds []string
	var args []interface{}
	if filter.Symbol != "" {
		conds = append(conds, "symbol = ?")
		args = append(args, filter.Symbol)
	}
	if filter.Strategy != "" {
		conds = append(conds, "strategy = ?")
		args = append(args, filter.Strategy)
	}
	if !filter.Since.IsZero() {
		conds = append(conds, "timestamp >= ?")
		args = append(args, filter.Since)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY timestamp DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying analyses: %w", err)
	}
	defer rows.Close()

	var records []AnalysisRecord
	for rows.Next() {
		var rec AnalysisRecord
		var payload string
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &rec.Symbol, &rec.Strategy, &rec.Underlying, &payload); err != nil {
			return nil, fmt.Errorf("scanning analysis: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &rec.Result); err != nil {
			return nil, fmt.Errorf("unmarshaling result: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// SaveSizing records a position-sizing decision.
func (s *SQLiteStore) SaveSizing(ctx context.Context, rec *SizingRecord) error {
	payload, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sizings (timestamp, symbol, entry_price, stop_price, target_price, shares, dollar_risk, risk_reward, kelly_fraction, result)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Timestamp, rec.Symbol,
		rec.Result.EntryPrice, rec.Result.StopPrice, rec.Result.TargetPrice,
		rec.Result.Shares, rec.Result.DollarRisk, rec.Result.RiskReward, rec.Result.KellyFrac,
		string(payload))
	if err != nil {
		return fmt.Errorf("inserting sizing: %w", err)
	}
	rec.ID, _ = res.LastInsertId()
	return nil
}

// GetSizings returns recorded sizing decisions matching the filter,
// newest first.
func (s *SQLiteStore) GetSizings(ctx context.Context, filter SizingFilter) ([]SizingRecord, error) {
	query := `SELECT id, timestamp, symbol, result FROM sizings`
	var conds []string
	var args []interface{}
	if filter.Symbol != "" {
		conds = append(conds, "symbol = ?")
		args = append(args, filter.Symbol)
	}
	if !filter.Since.IsZero() {
		conds = append(conds, "timestamp >= ?")
		args = append(args, filter.Since)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY timestamp DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sizings: %w", err)
	}
	defer rows.Close()

	var records []SizingRecord
	for rows.Next() {
		var rec SizingRecord
		var payload string
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &rec.Symbol, &payload); err != nil {
			return nil, fmt.Errorf("scanning sizing: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &rec.Result); err != nil {
			return nil, fmt.Errorf("unmarshaling result: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
