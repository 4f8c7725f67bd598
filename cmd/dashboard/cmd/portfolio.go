package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Rbh2733/Dashboard/internal/export"
	"github.com/Rbh2733/Dashboard/internal/model"
	"github.com/Rbh2733/Dashboard/internal/portfolio"
)

var (
	portfolioCSV       string
	portfolioBenchmark string
)

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Inspect and edit the holdings book",
	Long: `Values the holdings book at market and reports totals, beta against
the benchmark, Sharpe ratio and max drawdown.

Examples:
  dashboard portfolio
  dashboard portfolio --benchmark QQQ
  dashboard portfolio add AAPL 10 150.25 2024-03-01
  dashboard portfolio remove AAPL`,
	RunE: runPortfolioShow,
}

var portfolioShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Value the book and print the summary",
	RunE:  runPortfolioShow,
}

var portfolioAddCmd = &cobra.Command{
	Use:   "add TICKER SHARES PRICE [DATE]",
	Short: "Add a lot to the book",
	Args:  cobra.RangeArgs(3, 4),
	RunE:  runPortfolioAdd,
}

var portfolioRemoveCmd = &cobra.Command{
	Use:   "remove TICKER",
	Short: "Drop every lot of a ticker",
	Args:  cobra.ExactArgs(1),
	RunE:  runPortfolioRemove,
}

func init() {
	portfolioCmd.PersistentFlags().StringVar(&portfolioCSV, "csv", "", "holdings file (default from config)")
	portfolioCmd.Flags().StringVar(&portfolioBenchmark, "benchmark", "", "beta benchmark ticker (default from config)")
	portfolioShowCmd.Flags().StringVar(&portfolioBenchmark, "benchmark", "", "beta benchmark ticker (default from config)")

	portfolioCmd.AddCommand(portfolioShowCmd)
	portfolioCmd.AddCommand(portfolioAddCmd)
	portfolioCmd.AddCommand(portfolioRemoveCmd)
}

func holdingsPath() string {
	if portfolioCSV != "" {
		return portfolioCSV
	}
	return cfg.Portfolio.HoldingsFile
}

func runPortfolioShow(cmd *cobra.Command, args []string) error {
	book, err := portfolio.OpenBook(holdingsPath())
	if err != nil {
		return fmt.Errorf("open holdings book: %w", err)
	}
	holdings := book.Holdings()
	if len(holdings) == 0 {
		fmt.Printf("no holdings in %s\n", holdingsPath())
		return nil
	}

	benchmark := portfolioBenchmark
	if benchmark == "" {
		benchmark = cfg.Portfolio.Benchmark
	}

	analyzer := newAnalyzer(newFetcher())
	summary, err := analyzer.Summary(holdings, benchmark)
	if err != nil {
		return err
	}
	fmt.Print(export.PortfolioReport(summary))
	return nil
}

func runPortfolioAdd(cmd *cobra.Command, args []string) error {
	shares, err := decimal.NewFromString(args[1])
	if err != nil {
		return fmt.Errorf("shares %q: %w", args[1], err)
	}
	price, err := decimal.NewFromString(args[2])
	if err != nil {
		return fmt.Errorf("price %q: %w", args[2], err)
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if len(args) == 4 {
		date, err = time.Parse("2006-01-02", args[3])
		if err != nil {
			return fmt.Errorf("date %q: want YYYY-MM-DD", args[3])
		}
	}

	book, err := portfolio.OpenBook(holdingsPath())
	if err != nil {
		return fmt.Errorf("open holdings book: %w", err)
	}
	ticker := strings.ToUpper(strings.TrimSpace(args[0]))
	h := model.Holding{Ticker: ticker, Shares: shares, PurchasePrice: price, PurchaseDate: date}
	if err := book.Add(h); err != nil {
		return err
	}
	fmt.Printf("added %s %s @ %s\n", shares, ticker, price)
	return nil
}

func runPortfolioRemove(cmd *cobra.Command, args []string) error {
	book, err := portfolio.OpenBook(holdingsPath())
	if err != nil {
		return fmt.Errorf("open holdings book: %w", err)
	}
	removed, err := book.Remove(args[0])
	if err != nil {
		return err
	}
	if !removed {
		fmt.Printf("no holdings for %s\n", args[0])
		return nil
	}
	fmt.Printf("removed %s\n", args[0])
	return nil
}
