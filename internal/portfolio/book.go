package portfolio

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/Rbh2733/Dashboard/internal/model"
)

// Book is a mutable holdings book backed by a CSV file, safe for concurrent
// use. Every mutation persists before returning.
type Book struct {
	mu       sync.Mutex
	path     string
	holdings []model.Holding
}

// OpenBook loads the holdings book at path, starting empty when no file
// exists yet.
func OpenBook(path string) (*Book, error) {
	holdings, err := LoadHoldings(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Book{path: path}, nil
		}
		return nil, err
	}
	return &Book{path: path, holdings: holdings}, nil
}

// Holdings returns a copy of the current entries.
func (b *Book) Holdings() []model.Holding {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Holding, len(b.holdings))
	copy(out, b.holdings)
	return out
}

// Add appends a lot and persists the book. Shares must be positive and the
// purchase price non-negative; the ticker is normalized to upper case.
func (b *Book) Add(h model.Holding) error {
	h.Ticker = strings.ToUpper(strings.TrimSpace(h.Ticker))
	if h.Ticker == "" {
		return fmt.Errorf("%w: empty ticker", model.ErrInvalidParameter)
	}
	if !h.Shares.IsPositive() {
		return fmt.Errorf("%w: shares must be positive, got %s", model.ErrInvalidParameter, h.Shares)
	}
	if h.PurchasePrice.IsNegative() {
		return fmt.Errorf("%w: purchase price must not be negative, got %s", model.ErrInvalidParameter, h.PurchasePrice)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.holdings = append(b.holdings, h)
	return b.save()
}

// Remove drops every lot of ticker, reporting whether any existed.
func (b *Book) Remove(ticker string) (bool, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	b.mu.Lock()
	defer b.mu.Unlock()
	kept := b.holdings[:0]
	removed := false
	for _, h := range b.holdings {
		if h.Ticker == ticker {
			removed = true
			continue
		}
		kept = append(kept, h)
	}
	if !removed {
		return false, nil
	}
	b.holdings = kept
	return true, b.save()
}

func (b *Book) save() error {
	return SaveHoldings(b.path, b.holdings)
}
