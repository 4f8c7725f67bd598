package portfolio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Rbh2733/Dashboard/internal/model"
)

// dateLayout is the purchase-date format in holdings files.
const dateLayout = "2006-01-02"

var csvHeader = []string{"ticker", "shares", "purchase_price", "purchase_date"}

// ReadHoldings parses holdings rows from r. A leading header row is
// accepted and skipped. Rows must carry ticker, shares, purchase price and
// purchase date; negative quantities are rejected.
func ReadHoldings(r io.Reader) ([]model.Holding, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse holdings csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	start := 0
	if strings.EqualFold(strings.TrimSpace(records[0][0]), csvHeader[0]) {
		start = 1
	}

	var holdings []model.Holding
	for i, rec := range records[start:] {
		line := start + i + 1
		if len(rec) != len(csvHeader) {
			return nil, fmt.Errorf("%w: line %d has %d columns, want %d",
				model.ErrInvalidParameter, line, len(rec), len(csvHeader))
		}

		ticker := strings.ToUpper(strings.TrimSpace(rec[0]))
		if ticker == "" {
			return nil, fmt.Errorf("%w: line %d has an empty ticker", model.ErrInvalidParameter, line)
		}
		shares, err := decimal.NewFromString(strings.TrimSpace(rec[1]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d shares: %v", model.ErrInvalidParameter, line, err)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(rec[2]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d purchase price: %v", model.ErrInvalidParameter, line, err)
		}
		if shares.IsNegative() || price.IsNegative() {
			return nil, fmt.Errorf("%w: line %d has negative shares or price", model.ErrInvalidParameter, line)
		}
		date, err := time.Parse(dateLayout, strings.TrimSpace(rec[3]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d purchase date: %v", model.ErrInvalidParameter, line, err)
		}

		holdings = append(holdings, model.Holding{
			Ticker:        ticker,
			Shares:        shares,
			PurchasePrice: price,
			PurchaseDate:  date,
		})
	}
	return holdings, nil
}

// WriteHoldings writes holdings to w with a header row.
func WriteHoldings(w io.Writer, holdings []model.Holding) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, h := range holdings {
		rec := []string{
			h.Ticker,
			h.Shares.String(),
			h.PurchasePrice.String(),
			h.PurchaseDate.Format(dateLayout),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// LoadHoldings reads the holdings CSV at path.
func LoadHoldings(path string) ([]model.Holding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadHoldings(f)
}

// SaveHoldings writes the holdings CSV at path.
func SaveHoldings(path string, holdings []model.Holding) error {
	var buf bytes.Buffer
	if err := WriteHoldings(&buf, holdings); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
