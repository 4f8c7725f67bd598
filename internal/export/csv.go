// Package export renders scan and portfolio output as CSV and plain text.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/Rbh2733/Dashboard/internal/model"
)

var scanHeader = []string{
	"rank", "ticker", "score", "signals",
	"relative_volume", "price", "change_5d", "change_20d",
}

// WriteScanCSV writes the ranked results with one row per ticker. Undefined
// ratios become empty cells.
func WriteScanCSV(w io.Writer, results []model.ScanResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(scanHeader); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			strconv.Itoa(r.Rank),
			r.Ticker,
			formatFloat(r.Score),
			strings.Join(r.Signals, "|"),
			ratioCell(r.RelativeVolume),
			formatFloat(r.Price),
			ratioCell(r.PriceChange5d),
			ratioCell(r.PriceChange20d),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func ratioCell(r model.Ratio) string {
	if !r.Defined {
		return ""
	}
	return formatFloat(r.Value)
}
