package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Rbh2733/Dashboard/internal/portfolio"
	"github.com/Rbh2733/Dashboard/internal/schedule"
)

var watchNow bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the scan and snapshot scheduler as a daemon",
	Long: `Runs the cron scheduler: the watchlist scan on the scan schedule and a
portfolio snapshot on the snapshot schedule, recording both to the database
when it is enabled.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchNow, "now", false, "run the scan immediately on startup")
}

func runWatch(cmd *cobra.Command, args []string) error {
	fetcher := newFetcher()
	book, err := portfolio.OpenBook(cfg.Portfolio.HoldingsFile)
	if err != nil {
		return fmt.Errorf("open holdings book: %w", err)
	}
	rec := newRecorder()
	defer rec.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := schedule.NewScheduler(ctx, newScanner(fetcher), book, newAnalyzer(fetcher), rec, log.Logger)
	sched.Tickers = configuredTickers()
	if err := sched.Register(cfg.Schedule.ScanCron, cfg.Schedule.SnapshotCron); err != nil {
		return err
	}

	sched.Start()
	defer sched.Stop()

	if watchNow {
		go sched.RunScanNow()
	}

	log.Info().
		Str("scan_cron", cfg.Schedule.ScanCron).
		Str("snapshot_cron", cfg.Schedule.SnapshotCron).
		Msg("watch daemon running, press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received")
	cancel()
	return nil
}
