package store

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/Rbh2733/Dashboard/internal/model"
)

// SQLiteRecorder persists scan and portfolio history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs
// migrations.
func NewSQLiteRecorder(dbPath string, log zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scan_runs (
			id          TEXT PRIMARY KEY,
			scan_type   TEXT NOT NULL,
			universe    INTEGER NOT NULL,
			scanned     INTEGER NOT NULL,
			skipped     INTEGER NOT NULL,
			started_at  INTEGER NOT NULL,
			finished_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_runs_started ON scan_runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS scan_results (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id     TEXT NOT NULL,
			rank       INTEGER NOT NULL,
			ticker     TEXT NOT NULL,
			score      REAL NOT NULL,
			signals    TEXT,
			rel_volume REAL,
			price      REAL,
			change_5d  REAL,
			change_20d REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_results_run ON scan_results(run_id)`,

		`CREATE TABLE IF NOT EXISTS portfolio_snapshots (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			total_value   REAL,
			total_cost    REAL,
			total_pl      REAL,
			total_pl_pct  REAL,
			positions     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_portfolio_ts ON portfolio_snapshots(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordScan writes the run header and every ranked result in one
// transaction.
func (r *SQLiteRecorder) RecordScan(run *model.ScanRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	_, err = tx.Exec(`INSERT INTO scan_runs
		(id, scan_type, universe, scanned, skipped, started_at, finished_at)
		VALUES (?,?,?,?,?,?,?)`,
		run.ID.String(), string(run.Type), run.Universe, run.Scanned, run.Skipped,
		run.StartedAt.Unix(), run.FinishedAt.Unix(),
	)
	if err != nil {
		tx.Rollback()
		return err
	}

	for _, res := range run.Results {
		_, err = tx.Exec(`INSERT INTO scan_results
			(run_id, rank, ticker, score, signals, rel_volume, price, change_5d, change_20d)
			VALUES (?,?,?,?,?,?,?,?,?)`,
			run.ID.String(), res.Rank, res.Ticker, res.Score,
			strings.Join(res.Signals, "|"),
			nullable(res.RelativeVolume), res.Price,
			nullable(res.PriceChange5d), nullable(res.PriceChange20d),
		)
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// RecordPortfolioSnapshot writes one row of portfolio totals.
func (r *SQLiteRecorder) RecordPortfolioSnapshot(summary *model.PortfolioSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO portfolio_snapshots
		(timestamp, total_value, total_cost, total_pl, total_pl_pct, positions)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(),
		summary.TotalValue.InexactFloat64(),
		summary.TotalCost.InexactFloat64(),
		summary.TotalPL.InexactFloat64(),
		nullable(summary.TotalPLPct),
		len(summary.Positions),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}

// nullable maps an undefined ratio to SQL NULL.
func nullable(r model.Ratio) interface{} {
	if !r.Defined {
		return nil
	}
	return r.Value
}
