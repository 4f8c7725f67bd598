package model

import (
	"time"

	"github.com/google/uuid"
)

// ScanType selects the predicate and weighting a scan applies.
type ScanType string

const (
	ScanBreakout    ScanType = "breakout"
	ScanHighVolume  ScanType = "high_volume"
	ScanOversold    ScanType = "oversold"
	ScanGoldenCross ScanType = "golden_cross"
	ScanCustom      ScanType = "custom"
)

// CrossSignal describes a recent moving-average crossover.
type CrossSignal string

const (
	CrossGolden CrossSignal = "golden_cross"
	CrossDeath  CrossSignal = "death_cross"
	CrossNone   CrossSignal = "none"
)

// RSISignal classifies the latest RSI reading.
type RSISignal string

const (
	RSIOversold   RSISignal = "oversold"
	RSIOverbought RSISignal = "overbought"
	RSINeutral    RSISignal = "neutral"
)

// Snapshot holds the per-ticker signal inputs for one scan pass. All scan
// types evaluate the same snapshot; undefined numeric fields are NaN.
type Snapshot struct {
	Ticker          string
	Price           float64
	RSI             float64
	RSISignal       RSISignal
	RelativeVolume  float64
	VolumeSurge     bool
	Cross           CrossSignal
	InConsolidation bool
	BreakingOut     bool
	Near52wHigh     bool
	PctFrom52wHigh  float64
	PriceChange5d   float64
	PriceChange20d  float64
	Bars            int
}

// ScanResult is one ranked row of a scan.
type ScanResult struct {
	Ticker         string   `json:"ticker"`
	Score          float64  `json:"score"`
	Signals        []string `json:"signals"`
	RelativeVolume Ratio    `json:"relative_volume"`
	Price          float64  `json:"price"`
	PriceChange5d  Ratio    `json:"price_change_5d"`
	PriceChange20d Ratio    `json:"price_change_20d"`
	Rank           int      `json:"rank"`
}

// ScanRun records one scan invocation over a universe.
type ScanRun struct {
	ID         uuid.UUID    `json:"id"`
	Type       ScanType     `json:"type"`
	Universe   int          `json:"universe"`
	Scanned    int          `json:"scanned"`
	Skipped    int          `json:"skipped"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Results    []ScanResult `json:"results"`
}
