package scanner

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Rbh2733/Dashboard/internal/model"
)

const (
	// DefaultHistoryDays is how much history a scan requests per ticker.
	DefaultHistoryDays = 365

	defaultWorkers = 8

	// crossVolumeFloor is the relative volume a golden cross needs to count
	// toward breakout eligibility.
	crossVolumeFloor = 1.5
)

// Predicate is a caller-supplied filter over one ticker's snapshot, used by
// custom scans.
type Predicate func(*model.Snapshot) bool

// Options select the scan type and its thresholds.
type Options struct {
	Type model.ScanType
	// MinRelativeVolume is the high-volume scan threshold. Zero means the
	// surge default.
	MinRelativeVolume float64
	// Limit caps the ranked result list. Zero means no cap.
	Limit int
	// Predicate is required for custom scans and ignored otherwise.
	Predicate Predicate
}

// HistoryProvider supplies daily bars for one ticker. Fetchers and the
// market cache satisfy it.
type HistoryProvider interface {
	DailyBars(ticker string, days int) ([]model.Bar, error)
}

// Scanner fans a scan out over a universe of tickers.
type Scanner struct {
	provider HistoryProvider
	days     int
	workers  int
	log      zerolog.Logger
}

// New creates a Scanner backed by the given history provider.
func New(provider HistoryProvider, log zerolog.Logger) *Scanner {
	return &Scanner{
		provider: provider,
		days:     DefaultHistoryDays,
		workers:  defaultWorkers,
		log:      log,
	}
}

// SetHistoryDays overrides how much history each ticker is fetched with.
func (s *Scanner) SetHistoryDays(days int) {
	if days > 0 {
		s.days = days
	}
}

// SetWorkers overrides the fan-out width.
func (s *Scanner) SetWorkers(n int) {
	if n > 0 {
		s.workers = n
	}
}

// Scan fetches history for every ticker, builds snapshots concurrently and
// returns the ranked run. One ticker's failure is logged and skipped, never
// fatal for the batch.
func (s *Scanner) Scan(ctx context.Context, tickers []string, opts Options) (*model.ScanRun, error) {
	run := &model.ScanRun{
		ID:        uuid.New(),
		Type:      opts.Type,
		Universe:  len(tickers),
		StartedAt: time.Now(),
	}

	var (
		mu      sync.Mutex
		snaps   []*model.Snapshot
		skipped int
	)

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ticker := range jobs {
				snap, err := s.scanOne(ticker)
				if err != nil {
					s.log.Warn().Err(err).Str("ticker", ticker).Msg("ticker skipped")
					mu.Lock()
					skipped++
					mu.Unlock()
					continue
				}
				mu.Lock()
				snaps = append(snaps, snap)
				mu.Unlock()
			}
		}()
	}

	cancelled := false
	for _, t := range tickers {
		select {
		case <-ctx.Done():
			cancelled = true
		case jobs <- t:
		}
		if cancelled {
			break
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled {
		return nil, ctx.Err()
	}

	results, err := Evaluate(snaps, opts)
	if err != nil {
		return nil, err
	}

	run.Scanned = len(snaps)
	run.Skipped = skipped
	run.FinishedAt = time.Now()
	run.Results = results
	return run, nil
}

func (s *Scanner) scanOne(ticker string) (*model.Snapshot, error) {
	bars, err := s.provider.DailyBars(ticker, s.days)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ticker, err)
	}
	return BuildSnapshot(ticker, bars)
}

// Evaluate applies one scan type's filter and weighting to a set of
// snapshots and returns results ranked descending by score, ties broken by
// higher relative volume then ticker.
func Evaluate(snaps []*model.Snapshot, opts Options) ([]model.ScanResult, error) {
	if opts.Type == model.ScanCustom && opts.Predicate == nil {
		return nil, fmt.Errorf("%w: custom scan requires a predicate", model.ErrInvalidParameter)
	}

	results := make([]model.ScanResult, 0, len(snaps))
	for _, snap := range snaps {
		score, ok, err := scoreSnapshot(snap, opts)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		results = append(results, model.ScanResult{
			Ticker:         snap.Ticker,
			Score:          score,
			Signals:        activeSignals(snap),
			RelativeVolume: model.RatioFromFloat(snap.RelativeVolume),
			Price:          snap.Price,
			PriceChange5d:  model.RatioFromFloat(snap.PriceChange5d),
			PriceChange20d: model.RatioFromFloat(snap.PriceChange20d),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if c := compareRelVolume(results[i].RelativeVolume, results[j].RelativeVolume); c != 0 {
			return c > 0
		}
		return results[i].Ticker < results[j].Ticker
	})
	for i := range results {
		results[i].Rank = i + 1
	}
	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results, nil
}

// scoreSnapshot decides whether the snapshot passes the scan's filter and
// what score it carries.
func scoreSnapshot(snap *model.Snapshot, opts Options) (float64, bool, error) {
	switch opts.Type {
	case model.ScanBreakout:
		if !breakoutEligible(snap) {
			return 0, false, nil
		}
		return compositeScore(snap), true, nil
	case model.ScanHighVolume:
		threshold := opts.MinRelativeVolume
		if threshold <= 0 {
			threshold = SurgeThreshold
		}
		if math.IsNaN(snap.RelativeVolume) || snap.RelativeVolume < threshold {
			return 0, false, nil
		}
		return snap.RelativeVolume, true, nil
	case model.ScanOversold:
		if snap.RSISignal != model.RSIOversold {
			return 0, false, nil
		}
		return oversoldRSI - snap.RSI, true, nil
	case model.ScanGoldenCross:
		if snap.Cross != model.CrossGolden {
			return 0, false, nil
		}
		return 2, true, nil
	case model.ScanCustom:
		if !opts.Predicate(snap) {
			return 0, false, nil
		}
		return compositeScore(snap), true, nil
	default:
		return 0, false, fmt.Errorf("%w: unknown scan type %q", model.ErrInvalidParameter, opts.Type)
	}
}

// breakoutEligible applies the candidate filter: a consolidation breakout,
// or a 52-week high approach on surging volume, or a golden cross on
// elevated volume.
func breakoutEligible(snap *model.Snapshot) bool {
	if snap.BreakingOut {
		return true
	}
	if snap.Near52wHigh && snap.VolumeSurge {
		return true
	}
	return snap.Cross == model.CrossGolden &&
		!math.IsNaN(snap.RelativeVolume) && snap.RelativeVolume > crossVolumeFloor
}

// compositeScore weights the breakout signals: 3 for the breakout itself,
// 2 each for 52-week-high proximity, volume surge and golden cross.
func compositeScore(snap *model.Snapshot) float64 {
	var score float64
	if snap.BreakingOut {
		score += 3
	}
	if snap.Near52wHigh {
		score += 2
	}
	if snap.VolumeSurge {
		score += 2
	}
	if snap.Cross == model.CrossGolden {
		score += 2
	}
	return score
}

// activeSignals names every signal set on the snapshot, in a fixed order.
func activeSignals(snap *model.Snapshot) []string {
	var names []string
	if snap.BreakingOut {
		names = append(names, "breaking_out")
	}
	if snap.InConsolidation {
		names = append(names, "consolidation")
	}
	if snap.Near52wHigh {
		names = append(names, "near_52w_high")
	}
	if snap.VolumeSurge {
		names = append(names, "volume_surge")
	}
	switch snap.Cross {
	case model.CrossGolden:
		names = append(names, "golden_cross")
	case model.CrossDeath:
		names = append(names, "death_cross")
	}
	switch snap.RSISignal {
	case model.RSIOversold:
		names = append(names, "oversold")
	case model.RSIOverbought:
		names = append(names, "overbought")
	}
	return names
}

// compareRelVolume orders defined ratios by value, defined above undefined.
func compareRelVolume(a, b model.Ratio) int {
	switch {
	case a.Defined && b.Defined:
		switch {
		case a.Value > b.Value:
			return 1
		case a.Value < b.Value:
			return -1
		}
		return 0
	case a.Defined:
		return 1
	case b.Defined:
		return -1
	}
	return 0
}
