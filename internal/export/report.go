package export

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Rbh2733/Dashboard/internal/backtest"
	"github.com/Rbh2733/Dashboard/internal/model"
)

// ScanReport renders a scan run as a plain text table for the CLI.
func ScanReport(run *model.ScanRun) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s scan | %s\n", run.Type, run.FinishedAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("universe %d, scanned %d, skipped %d, matched %d\n\n",
		run.Universe, run.Scanned, run.Skipped, len(run.Results)))

	if len(run.Results) == 0 {
		b.WriteString("no matches\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("%4s  %-6s %7s %10s %8s %8s %8s  %s\n",
		"rank", "ticker", "score", "price", "relvol", "5d", "20d", "signals"))
	for _, r := range run.Results {
		b.WriteString(fmt.Sprintf("%4d  %-6s %7.2f %10s %8s %8s %8s  %s\n",
			r.Rank, r.Ticker, r.Score,
			humanize.CommafWithDigits(r.Price, 2),
			ratioSuffix(r.RelativeVolume, "x"),
			pctString(r.PriceChange5d),
			pctString(r.PriceChange20d),
			strings.Join(r.Signals, ", "),
		))
	}
	return b.String()
}

// PortfolioReport renders the portfolio summary block.
func PortfolioReport(s *model.PortfolioSummary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("portfolio | %s\n\n", s.AsOf.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("%-6s %12s %12s %12s %12s %8s %7s\n",
		"ticker", "shares", "price", "value", "p/l", "p/l%", "weight"))
	for _, p := range s.Positions {
		b.WriteString(fmt.Sprintf("%-6s %12s %12s %12s %12s %8s %6.1f%%\n",
			p.Ticker,
			p.Shares.String(),
			humanize.CommafWithDigits(p.CurrentPrice.InexactFloat64(), 2),
			humanize.CommafWithDigits(p.MarketValue.InexactFloat64(), 2),
			humanize.CommafWithDigits(p.UnrealizedPL.InexactFloat64(), 2),
			pctString(p.UnrealizedPLPct),
			p.Weight*100,
		))
	}

	b.WriteString(fmt.Sprintf("\ntotal value: %s\n", humanize.CommafWithDigits(s.TotalValue.InexactFloat64(), 2)))
	b.WriteString(fmt.Sprintf("total cost:  %s\n", humanize.CommafWithDigits(s.TotalCost.InexactFloat64(), 2)))
	b.WriteString(fmt.Sprintf("unrealized:  %s (%s)\n",
		humanize.CommafWithDigits(s.TotalPL.InexactFloat64(), 2), pctString(s.TotalPLPct)))

	if s.Beta.Defined || s.Sharpe.Defined || s.MaxDrawdown != nil {
		b.WriteString("\n")
	}
	if s.Beta.Defined {
		b.WriteString(fmt.Sprintf("beta vs %s: %.2f\n", s.Benchmark, s.Beta.Value))
	}
	if s.Sharpe.Defined {
		b.WriteString(fmt.Sprintf("sharpe: %.2f\n", s.Sharpe.Value))
	}
	if s.MaxDrawdown != nil {
		b.WriteString(fmt.Sprintf("max drawdown: %.1f%% (%s to %s)\n",
			s.MaxDrawdown.Pct,
			s.MaxDrawdown.Peak.Format("2006-01-02"),
			s.MaxDrawdown.Trough.Format("2006-01-02")))
	}
	return b.String()
}

func ratioSuffix(r model.Ratio, suffix string) string {
	if !r.Defined {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%s", r.Value, suffix)
}

func pctString(r model.Ratio) string {
	if !r.Defined {
		return "n/a"
	}
	return fmt.Sprintf("%+.1f%%", r.Value)
}

// BacktestReport renders a backtest result for the CLI.
func BacktestReport(r *backtest.Result) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s sma crossover backtest | %s to %s\n",
		r.Ticker, r.Start.Format("2006-01-02"), r.End.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("starting cash %s, final equity %s\n",
		humanize.CommafWithDigits(r.StartingCash, 2),
		humanize.CommafWithDigits(r.FinalEquity, 2)))
	b.WriteString(fmt.Sprintf("total return %+.1f%%, buy & hold %s\n",
		r.TotalReturnPct, pctString(r.BuyHoldReturnPct)))
	b.WriteString(fmt.Sprintf("trades %d, win rate %.0f%%, profit factor %.2f\n",
		len(r.Trades), r.WinRate*100, r.ProfitFactor))

	if len(r.Trades) == 0 {
		return b.String()
	}

	b.WriteString(fmt.Sprintf("\n%3s  %-10s  %-10s %10s %10s %12s %8s %6s\n",
		"#", "entry", "exit", "entry px", "exit px", "p/l", "return", "days"))
	for i, tr := range r.Trades {
		b.WriteString(fmt.Sprintf("%3d  %-10s  %-10s %10.2f %10.2f %12s %+7.1f%% %6d\n",
			i+1,
			tr.EntryDate.Format("2006-01-02"),
			tr.ExitDate.Format("2006-01-02"),
			tr.EntryPrice, tr.ExitPrice,
			humanize.CommafWithDigits(tr.PnL, 2),
			tr.ReturnPct, tr.HoldDays))
	}
	return b.String()
}
