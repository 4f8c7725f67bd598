// Package store persists scan runs and portfolio snapshots for later
// analysis. A Noop implementation stands in when persistence is disabled.
package store

import (
	"github.com/Rbh2733/Dashboard/internal/model"
)

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordScan(run *model.ScanRun) error
	RecordPortfolioSnapshot(summary *model.PortfolioSummary) error
	Close() error
}

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordScan(_ *model.ScanRun) error                       { return nil }
func (n *NoopRecorder) RecordPortfolioSnapshot(_ *model.PortfolioSummary) error { return nil }
func (n *NoopRecorder) Close() error                                            { return nil }
