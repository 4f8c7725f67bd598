package backtest

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Rbh2733/Dashboard/internal/model"
)

var testBase = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func barsFromCloses(closes []float64) []model.Bar {
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{
			Date:   testBase.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1e6,
		}
	}
	return bars
}

func TestRun_RoundTripLoss(t *testing.T) {
	// SMA(2) crosses above SMA(3) at index 3 and back below at index 7.
	bars := barsFromCloses([]float64{10, 10, 10, 13, 16, 16, 16, 10, 7, 7})
	cfg := Config{StartingCash: 1000, FastPeriod: 2, SlowPeriod: 3}

	res, err := Run("TEST", bars, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Trades) != 1 {
		t.Fatalf("got %d trades, want 1", len(res.Trades))
	}
	tr := res.Trades[0]
	if !tr.EntryDate.Equal(bars[3].Date) || tr.EntryPrice != 13 {
		t.Errorf("entry = %v @ %v, want %v @ 13", tr.EntryDate, tr.EntryPrice, bars[3].Date)
	}
	if !tr.ExitDate.Equal(bars[7].Date) || tr.ExitPrice != 10 {
		t.Errorf("exit = %v @ %v, want %v @ 10", tr.ExitDate, tr.ExitPrice, bars[7].Date)
	}
	if math.Abs(tr.ReturnPct-(-300.0/13)) > 1e-9 {
		t.Errorf("ReturnPct = %v, want %v", tr.ReturnPct, -300.0/13)
	}
	if tr.HoldDays != 4 {
		t.Errorf("HoldDays = %d, want 4", tr.HoldDays)
	}
	if math.Abs(res.FinalEquity-10000.0/13) > 1e-9 {
		t.Errorf("FinalEquity = %v, want %v", res.FinalEquity, 10000.0/13)
	}
	if math.Abs(res.TotalReturnPct-(-300.0/13)) > 1e-9 {
		t.Errorf("TotalReturnPct = %v, want %v", res.TotalReturnPct, -300.0/13)
	}
	if res.WinRate != 0 || res.ProfitFactor != 0 {
		t.Errorf("WinRate/ProfitFactor = %v/%v, want 0/0 on a single loss", res.WinRate, res.ProfitFactor)
	}
	if !res.BuyHoldReturnPct.Defined || math.Abs(res.BuyHoldReturnPct.Value-(-30)) > 1e-9 {
		t.Errorf("BuyHoldReturnPct = %+v, want -30", res.BuyHoldReturnPct)
	}
}

func TestRun_OpenPositionLiquidated(t *testing.T) {
	bars := barsFromCloses([]float64{10, 10, 10, 13, 16, 16, 16, 16, 16, 16})
	cfg := Config{StartingCash: 1000, FastPeriod: 2, SlowPeriod: 3}

	res, err := Run("TEST", bars, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Trades) != 1 {
		t.Fatalf("got %d trades, want the liquidated position recorded", len(res.Trades))
	}
	tr := res.Trades[0]
	if !tr.ExitDate.Equal(bars[9].Date) || tr.ExitPrice != 16 {
		t.Errorf("exit = %v @ %v, want last bar @ 16", tr.ExitDate, tr.ExitPrice)
	}
	if math.Abs(res.FinalEquity-16000.0/13) > 1e-9 {
		t.Errorf("FinalEquity = %v, want %v", res.FinalEquity, 16000.0/13)
	}
	if res.WinRate != 1 {
		t.Errorf("WinRate = %v, want 1", res.WinRate)
	}
	if res.ProfitFactor != 999.99 {
		t.Errorf("ProfitFactor = %v, want the no-loss cap", res.ProfitFactor)
	}
	if !res.BuyHoldReturnPct.Defined || math.Abs(res.BuyHoldReturnPct.Value-60) > 1e-9 {
		t.Errorf("BuyHoldReturnPct = %+v, want 60", res.BuyHoldReturnPct)
	}
}

func TestRun_NoSignals(t *testing.T) {
	bars := barsFromCloses([]float64{10, 10, 10, 10, 10, 10})
	cfg := Config{StartingCash: 1000, FastPeriod: 2, SlowPeriod: 3}

	res, err := Run("FLAT", bars, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Trades) != 0 {
		t.Errorf("flat series produced %d trades", len(res.Trades))
	}
	if res.FinalEquity != 1000 || res.TotalReturnPct != 0 {
		t.Errorf("equity = %v (%v%%), want untouched cash", res.FinalEquity, res.TotalReturnPct)
	}
}

func TestRun_Defaults(t *testing.T) {
	closes := make([]float64, DefaultSlowPeriod)
	for i := range closes {
		closes[i] = 100
	}
	res, err := Run("FLAT", barsFromCloses(closes), Config{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.StartingCash != DefaultStartingCash {
		t.Errorf("StartingCash = %v, want default", res.StartingCash)
	}
	if !res.Start.Equal(testBase) || !res.End.Equal(testBase.AddDate(0, 0, DefaultSlowPeriod-1)) {
		t.Errorf("window = %v..%v", res.Start, res.End)
	}
}

func TestRun_Errors(t *testing.T) {
	bars := barsFromCloses([]float64{10, 11, 12, 13, 14})

	_, err := Run("X", bars, Config{})
	if !errors.Is(err, model.ErrInsufficientData) {
		t.Errorf("short history: err = %v, want ErrInsufficientData", err)
	}

	_, err = Run("X", bars, Config{FastPeriod: 3, SlowPeriod: 3})
	if !errors.Is(err, model.ErrInvalidParameter) {
		t.Errorf("fast >= slow: err = %v, want ErrInvalidParameter", err)
	}

	_, err = Run("X", bars, Config{StartingCash: -5, FastPeriod: 2, SlowPeriod: 3})
	if !errors.Is(err, model.ErrInvalidParameter) {
		t.Errorf("negative cash: err = %v, want ErrInvalidParameter", err)
	}
}
