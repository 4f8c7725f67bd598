package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rbh2733/Dashboard/internal/backtest"
	"github.com/Rbh2733/Dashboard/internal/export"
)

var (
	btTicker string
	btDays   int
	btFast   int
	btSlow   int
	btCash   float64
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Replay an SMA crossover strategy over history",
	Long: `Backtests a moving-average crossover: buy the full stake when the fast
SMA crosses above the slow SMA, sell when it crosses back below.

Example:
  dashboard backtest --ticker AAPL --days 730 --fast 50 --slow 200`,
	RunE: runBacktest,
}

func init() {
	backtestCmd.Flags().StringVar(&btTicker, "ticker", "", "ticker to replay (required)")
	backtestCmd.Flags().IntVar(&btDays, "days", 730, "calendar days of history")
	backtestCmd.Flags().IntVar(&btFast, "fast", backtest.DefaultFastPeriod, "fast SMA period")
	backtestCmd.Flags().IntVar(&btSlow, "slow", backtest.DefaultSlowPeriod, "slow SMA period")
	backtestCmd.Flags().Float64Var(&btCash, "cash", backtest.DefaultStartingCash, "starting cash")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	if btTicker == "" {
		return fmt.Errorf("--ticker is required")
	}
	ticker := strings.ToUpper(strings.TrimSpace(btTicker))

	bars, err := newFetcher().DailyBars(ticker, btDays)
	if err != nil {
		return err
	}
	result, err := backtest.Run(ticker, bars, backtest.Config{
		StartingCash: btCash,
		FastPeriod:   btFast,
		SlowPeriod:   btSlow,
	})
	if err != nil {
		return err
	}
	fmt.Print(export.BacktestReport(result))
	return nil
}
