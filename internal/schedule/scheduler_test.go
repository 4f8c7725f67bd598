package schedule

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Rbh2733/Dashboard/internal/market"
	"github.com/Rbh2733/Dashboard/internal/model"
	"github.com/Rbh2733/Dashboard/internal/portfolio"
	"github.com/Rbh2733/Dashboard/internal/scanner"
)

type captureRecorder struct {
	mu        sync.Mutex
	scans     []*model.ScanRun
	snapshots []*model.PortfolioSummary
}

func (r *captureRecorder) RecordScan(run *model.ScanRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scans = append(r.scans, run)
	return nil
}

func (r *captureRecorder) RecordPortfolioSnapshot(s *model.PortfolioSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, s)
	return nil
}

func (r *captureRecorder) Close() error { return nil }

func newTestScheduler(t *testing.T, fetcher market.Fetcher) (*Scheduler, *captureRecorder) {
	t.Helper()
	book, err := portfolio.OpenBook(t.TempDir() + "/holdings.csv")
	if err != nil {
		t.Fatalf("OpenBook: %v", err)
	}
	rec := &captureRecorder{}
	sc := scanner.New(fetcher, zerolog.Nop())
	analyzer := portfolio.NewAnalyzer(fetcher, 0.02, zerolog.Nop())
	s := NewScheduler(context.Background(), sc, book, analyzer, rec, zerolog.Nop())
	return s, rec
}

func TestRegister(t *testing.T) {
	s, _ := newTestScheduler(t, &market.MockFetcher{})
	if err := s.Register("0 30 17 * * 1-5", "0 0 18 * * *"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if got := len(s.Cron.Entries()); got != 2 {
		t.Errorf("entries = %d, want 2", got)
	}
}

func TestRegisterBadSpec(t *testing.T) {
	s, _ := newTestScheduler(t, &market.MockFetcher{})
	if err := s.Register("every day at noon", "0 0 18 * * *"); err == nil {
		t.Fatal("expected error for malformed cron spec")
	}
}

func TestRunScanNow(t *testing.T) {
	s, rec := newTestScheduler(t, &market.MockFetcher{})
	s.Tickers = []string{"AAPL", "MSFT"}

	s.RunScanNow()

	if len(rec.scans) != 1 {
		t.Fatalf("recorded scans = %d, want 1", len(rec.scans))
	}
	run := rec.scans[0]
	if run.Type != model.ScanBreakout {
		t.Errorf("Type = %s, want %s", run.Type, model.ScanBreakout)
	}
	if run.Universe != 2 || run.Scanned != 2 || run.Skipped != 0 {
		t.Errorf("universe/scanned/skipped = %d/%d/%d, want 2/2/0", run.Universe, run.Scanned, run.Skipped)
	}
}

func TestRunSnapshotNow(t *testing.T) {
	fetcher := &market.MockFetcher{Quotes: map[string]float64{"AAPL": 180}}
	s, rec := newTestScheduler(t, fetcher)
	err := s.Book.Add(model.Holding{
		Ticker:        "AAPL",
		Shares:        decimal.NewFromInt(10),
		PurchasePrice: decimal.NewFromInt(150),
		PurchaseDate:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	s.RunSnapshotNow()

	if len(rec.snapshots) != 1 {
		t.Fatalf("recorded snapshots = %d, want 1", len(rec.snapshots))
	}
	snap := rec.snapshots[0]
	if len(snap.Positions) != 1 {
		t.Fatalf("positions = %d, want 1", len(snap.Positions))
	}
	if !snap.TotalValue.Equal(decimal.NewFromInt(1800)) {
		t.Errorf("TotalValue = %s, want 1800", snap.TotalValue)
	}
	if !snap.TotalPL.Equal(decimal.NewFromInt(300)) {
		t.Errorf("TotalPL = %s, want 300", snap.TotalPL)
	}
}

func TestRunSnapshotNowEmptyBook(t *testing.T) {
	s, rec := newTestScheduler(t, &market.MockFetcher{})
	s.RunSnapshotNow()
	if len(rec.snapshots) != 0 {
		t.Errorf("recorded snapshots = %d, want 0 for empty book", len(rec.snapshots))
	}
}
