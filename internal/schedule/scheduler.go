// Package schedule runs the recurring jobs: the watchlist scan and the
// portfolio snapshot.
package schedule

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/Rbh2733/Dashboard/internal/model"
	"github.com/Rbh2733/Dashboard/internal/portfolio"
	"github.com/Rbh2733/Dashboard/internal/scanner"
	"github.com/Rbh2733/Dashboard/internal/store"
)

// Scheduler manages the cron tasks.
type Scheduler struct {
	Cron     *cron.Cron
	Scanner  *scanner.Scanner
	Book     *portfolio.Book
	Analyzer *portfolio.Analyzer
	Recorder store.Recorder
	Ctx      context.Context
	Log      zerolog.Logger

	// Tickers and ScanType select what the scheduled scan covers.
	Tickers  []string
	ScanType model.ScanType
}

// NewScheduler creates a new Scheduler with a seconds-aware cron.
func NewScheduler(ctx context.Context, sc *scanner.Scanner, book *portfolio.Book, analyzer *portfolio.Analyzer, rec store.Recorder, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Scanner:  sc,
		Book:     book,
		Analyzer: analyzer,
		Recorder: rec,
		Ctx:      ctx,
		Log:      log,
		ScanType: model.ScanBreakout,
	}
}

// Register wires the scan and snapshot tasks to their cron specs.
func (s *Scheduler) Register(scanCron, snapshotCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	if _, err := s.Cron.AddFunc(snapshotCron, s.snapshotTask); err != nil {
		return fmt.Errorf("register snapshot task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info().Msg("scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Log.Info().Msg("scheduler stopped")
}

// RunScanNow executes the scan task immediately (manual trigger).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

// RunSnapshotNow executes the snapshot task immediately.
func (s *Scheduler) RunSnapshotNow() {
	s.snapshotTask()
}

func (s *Scheduler) scanTask() {
	s.Log.Info().
		Str("type", string(s.ScanType)).
		Int("universe", len(s.Tickers)).
		Msg("running scheduled scan")

	run, err := s.Scanner.Scan(s.Ctx, s.Tickers, scanner.Options{Type: s.ScanType})
	if err != nil {
		s.Log.Error().Err(err).Msg("scheduled scan failed")
		return
	}
	if err := s.Recorder.RecordScan(run); err != nil {
		s.Log.Error().Err(err).Msg("record scan failed")
	}
	s.Log.Info().
		Int("scanned", run.Scanned).
		Int("skipped", run.Skipped).
		Int("matched", len(run.Results)).
		Msg("scan recorded")
}

func (s *Scheduler) snapshotTask() {
	holdings := s.Book.Holdings()
	if len(holdings) == 0 {
		s.Log.Info().Msg("no holdings, snapshot skipped")
		return
	}

	summary, err := s.Analyzer.Summary(holdings, "")
	if err != nil {
		s.Log.Error().Err(err).Msg("portfolio snapshot failed")
		return
	}
	if err := s.Recorder.RecordPortfolioSnapshot(summary); err != nil {
		s.Log.Error().Err(err).Msg("record snapshot failed")
		return
	}
	s.Log.Info().
		Int("positions", len(summary.Positions)).
		Str("total_value", summary.TotalValue.String()).
		Msg("portfolio snapshot recorded")
}
