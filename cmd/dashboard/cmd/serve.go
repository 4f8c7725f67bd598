package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Rbh2733/Dashboard/internal/api"
	"github.com/Rbh2733/Dashboard/internal/logger"
	"github.com/Rbh2733/Dashboard/internal/portfolio"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Serves the analytics API on the configured address until SIGINT or SIGTERM.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	fetcher := newFetcher()
	book, err := portfolio.OpenBook(cfg.Portfolio.HoldingsFile)
	if err != nil {
		return fmt.Errorf("open holdings book: %w", err)
	}

	srv := api.NewServer(fetcher, newScanner(fetcher), newAnalyzer(fetcher), book, log.Logger)
	srv.Access = logger.NewAccessLogger("")
	srv.Universe = configuredTickers()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info().Msg("shutdown signal received")
		cancel()
	}()

	return srv.Run(ctx, cfg.Server.Addr)
}
