package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Rbh2733/Dashboard/internal/export"
	"github.com/Rbh2733/Dashboard/internal/model"
	"github.com/Rbh2733/Dashboard/internal/scanner"
)

var (
	scanType      string
	scanTickers   []string
	scanUniverse  string
	scanMinRelVol float64
	scanLimit     int
	scanCSVPath   string
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a scan over a ticker universe",
	Long: `Scans tickers for the chosen signal setup and prints a ranked table.

Examples:
  dashboard scan --type breakout
  dashboard scan --type high_volume --min-rel-vol 2.5 --universe etf
  dashboard scan --type oversold --tickers AAPL,MSFT,NVDA --csv out.csv`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanType, "type", string(model.ScanBreakout),
		"scan type: breakout, high_volume, oversold, golden_cross")
	scanCmd.Flags().StringSliceVar(&scanTickers, "tickers", nil, "explicit ticker list")
	scanCmd.Flags().StringVar(&scanUniverse, "universe", "", "named universe (sp500, etf)")
	scanCmd.Flags().Float64Var(&scanMinRelVol, "min-rel-vol", 0, "relative volume threshold for high_volume")
	scanCmd.Flags().IntVar(&scanLimit, "limit", 0, "cap the number of results")
	scanCmd.Flags().StringVar(&scanCSVPath, "csv", "", "also write results to this CSV file")
}

func runScan(cmd *cobra.Command, args []string) error {
	tickers, err := resolveScanTickers()
	if err != nil {
		return err
	}

	fetcher := newFetcher()
	sc := newScanner(fetcher)
	rec := newRecorder()
	defer rec.Close()

	run, err := sc.Scan(context.Background(), tickers, scanner.Options{
		Type:              model.ScanType(scanType),
		MinRelativeVolume: scanMinRelVol,
		Limit:             scanLimit,
	})
	if err != nil {
		return err
	}
	if err := rec.RecordScan(run); err != nil {
		log.Warn().Err(err).Msg("record scan failed")
	}

	fmt.Print(export.ScanReport(run))

	if scanCSVPath != "" {
		if err := writeScanCSVFile(scanCSVPath, run); err != nil {
			return err
		}
		fmt.Printf("\nresults written to %s\n", scanCSVPath)
	}
	return nil
}

func resolveScanTickers() ([]string, error) {
	if len(scanTickers) > 0 {
		tickers := make([]string, len(scanTickers))
		for i, t := range scanTickers {
			tickers[i] = strings.ToUpper(strings.TrimSpace(t))
		}
		return tickers, nil
	}
	if scanUniverse != "" {
		tickers, ok := scanner.Universe(scanUniverse)
		if !ok {
			return nil, fmt.Errorf("unknown universe %q", scanUniverse)
		}
		return tickers, nil
	}
	tickers := configuredTickers()
	if len(tickers) == 0 {
		return nil, fmt.Errorf("no tickers: set --tickers, --universe or the config watchlist")
	}
	return tickers, nil
}

func writeScanCSVFile(path string, run *model.ScanRun) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return export.WriteScanCSV(f, run.Results)
}
