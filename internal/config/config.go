// Package config loads the application configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Market struct {
		Source          string `yaml:"source"` // "yahoo" or "mock"
		Proxy           string `yaml:"proxy"`
		CacheTTLMinutes int    `yaml:"cache_ttl_minutes"`
	} `yaml:"market"`
	Scan struct {
		Universe    string   `yaml:"universe"`
		Watchlist   []string `yaml:"watchlist"`
		Workers     int      `yaml:"workers"`
		HistoryDays int      `yaml:"history_days"`
	} `yaml:"scan"`
	Portfolio struct {
		HoldingsFile string  `yaml:"holdings_file"`
		Benchmark    string  `yaml:"benchmark"`
		RiskFreeRate float64 `yaml:"risk_free_rate"`
	} `yaml:"portfolio"`
	Schedule struct {
		ScanCron     string `yaml:"scan_cron"`
		SnapshotCron string `yaml:"snapshot_cron"`
	} `yaml:"schedule"`
	Database struct {
		Enabled    bool   `yaml:"enabled"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Level   string `yaml:"level"`
		File    string `yaml:"file"`
		Console bool   `yaml:"console"`
	} `yaml:"log"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DASHBOARD_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("DASHBOARD_MARKET_SOURCE"); v != "" {
		cfg.Market.Source = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Market.Proxy = v
	}
	if v := os.Getenv("DASHBOARD_UNIVERSE"); v != "" {
		cfg.Scan.Universe = v
	}
	if v := os.Getenv("DASHBOARD_WORKERS"); v != "" {
		var workers int
		if _, err := fmt.Sscanf(v, "%d", &workers); err == nil {
			cfg.Scan.Workers = workers
		}
	}
	if v := os.Getenv("DASHBOARD_HOLDINGS_FILE"); v != "" {
		cfg.Portfolio.HoldingsFile = v
	}
	if v := os.Getenv("DASHBOARD_SCAN_CRON"); v != "" {
		cfg.Schedule.ScanCron = v
	}
	if v := os.Getenv("DASHBOARD_SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
		cfg.Database.Enabled = true
	}
	if v := os.Getenv("DASHBOARD_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Market.Source == "" {
		cfg.Market.Source = "yahoo"
	}
	if cfg.Market.CacheTTLMinutes == 0 {
		cfg.Market.CacheTTLMinutes = 5
	}
	if cfg.Scan.Universe == "" && len(cfg.Scan.Watchlist) == 0 {
		cfg.Scan.Universe = "sp500"
	}
	if cfg.Scan.Workers == 0 {
		cfg.Scan.Workers = 8
	}
	if cfg.Scan.HistoryDays == 0 {
		cfg.Scan.HistoryDays = 365
	}
	if cfg.Portfolio.HoldingsFile == "" {
		cfg.Portfolio.HoldingsFile = "data/holdings.csv"
	}
	if cfg.Portfolio.Benchmark == "" {
		cfg.Portfolio.Benchmark = "SPY"
	}
	if cfg.Portfolio.RiskFreeRate == 0 {
		cfg.Portfolio.RiskFreeRate = 0.02
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 30 17 * * 1-5"
	}
	if cfg.Schedule.SnapshotCron == "" {
		cfg.Schedule.SnapshotCron = "0 0 18 * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/dashboard.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// CacheTTL is the market cache freshness window.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Market.CacheTTLMinutes) * time.Minute
}

// Validate checks that the loaded values are usable.
func (c *Config) Validate() error {
	if c.Market.Source != "yahoo" && c.Market.Source != "mock" {
		return fmt.Errorf("market.source must be yahoo or mock, got %q", c.Market.Source)
	}
	if c.Scan.Workers < 1 {
		return fmt.Errorf("scan.workers must be positive")
	}
	if c.Scan.HistoryDays < 1 {
		return fmt.Errorf("scan.history_days must be positive")
	}
	if c.Portfolio.RiskFreeRate < 0 || c.Portfolio.RiskFreeRate >= 1 {
		return fmt.Errorf("portfolio.risk_free_rate must be in [0, 1)")
	}
	return nil
}
