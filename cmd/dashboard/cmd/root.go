// Package cmd implements the dashboard CLI.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Rbh2733/Dashboard/internal/config"
	"github.com/Rbh2733/Dashboard/internal/logger"
	"github.com/Rbh2733/Dashboard/internal/market"
	"github.com/Rbh2733/Dashboard/internal/portfolio"
	"github.com/Rbh2733/Dashboard/internal/scanner"
	"github.com/Rbh2733/Dashboard/internal/store"
)

const defaultConfigPath = "configs/dashboard.yaml"

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Market analytics dashboard",
	Long: `Market analytics dashboard: technical indicators, pattern detection,
breakout scanning, options greeks, DCF valuation, portfolio tracking and
SMA-crossover backtests, over Yahoo Finance daily data.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default "+defaultConfigPath+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(greeksCmd)
	rootCmd.AddCommand(portfolioCmd)
	rootCmd.AddCommand(backtestCmd)
	rootCmd.AddCommand(watchCmd)
}

// initConfig loads .env, the YAML config and sets up logging.
func initConfig() error {
	if err := godotenv.Load(); err != nil && verbose {
		fmt.Println("no .env file, using environment variables")
	}

	path := cfgFile
	if path == "" {
		path = os.Getenv("DASHBOARD_CONFIG")
	}
	if path == "" {
		path = defaultConfigPath
	}

	var err error
	cfg, err = config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	if err := logger.Init(level, cfg.Log.File, cfg.Log.Console); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	return nil
}

// newFetcher builds the configured market data source behind the TTL cache.
func newFetcher() market.Fetcher {
	var fetcher market.Fetcher
	if cfg.Market.Source == "mock" {
		fetcher = &market.MockFetcher{}
	} else {
		fetcher = market.NewYahooFetcher(cfg.Market.Proxy)
	}
	log.Debug().Str("source", fetcher.Name()).Msg("market data source")
	return market.NewCache(fetcher, cfg.CacheTTL())
}

func newScanner(fetcher market.Fetcher) *scanner.Scanner {
	sc := scanner.New(fetcher, log.Logger)
	sc.SetWorkers(cfg.Scan.Workers)
	sc.SetHistoryDays(cfg.Scan.HistoryDays)
	return sc
}

func newAnalyzer(fetcher market.Fetcher) *portfolio.Analyzer {
	return portfolio.NewAnalyzer(fetcher, cfg.Portfolio.RiskFreeRate, log.Logger)
}

// newRecorder returns the sqlite recorder when the database is enabled,
// falling back to a noop on open failure.
func newRecorder() store.Recorder {
	if !cfg.Database.Enabled {
		return store.NewNoopRecorder()
	}
	rec, err := store.NewSQLiteRecorder(cfg.Database.SQLitePath, log.Logger)
	if err != nil {
		log.Warn().Err(err).Msg("sqlite recorder unavailable, using noop")
		return store.NewNoopRecorder()
	}
	return rec
}

// configuredTickers resolves the scan universe from config: an explicit
// watchlist wins over a named universe.
func configuredTickers() []string {
	if len(cfg.Scan.Watchlist) > 0 {
		return cfg.Scan.Watchlist
	}
	tickers, ok := scanner.Universe(cfg.Scan.Universe)
	if !ok {
		return nil
	}
	return tickers
}
