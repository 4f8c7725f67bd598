package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rbh2733/Dashboard/internal/backtest"
	"github.com/Rbh2733/Dashboard/internal/market"
	"github.com/Rbh2733/Dashboard/internal/model"
	"github.com/Rbh2733/Dashboard/internal/pattern"
	"github.com/Rbh2733/Dashboard/internal/portfolio"
	"github.com/Rbh2733/Dashboard/internal/scanner"
)

type failFetcher struct{}

func (f *failFetcher) DailyBars(ticker string, days int) ([]model.Bar, error) {
	return nil, fmt.Errorf("%w: upstream down", model.ErrFetchFailed)
}

func (f *failFetcher) Quote(ticker string) (*model.Quote, error) {
	return nil, fmt.Errorf("%w: upstream down", model.ErrFetchFailed)
}

func (f *failFetcher) Name() string { return "fail" }

func newTestServer(t *testing.T, fetcher market.Fetcher) *Server {
	t.Helper()
	book, err := portfolio.OpenBook(filepath.Join(t.TempDir(), "holdings.csv"))
	require.NoError(t, err)

	sc := scanner.New(fetcher, zerolog.Nop())
	analyzer := portfolio.NewAnalyzer(fetcher, 0.02, zerolog.Nop())
	s := NewServer(fetcher, sc, analyzer, book, zerolog.Nop())
	s.Universe = []string{"AAPL", "MSFT"}
	return s
}

func do(t *testing.T, h http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) responseMeta {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
		Meta responseMeta    `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, data))
	return envelope.Meta
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorDetail {
	t.Helper()
	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Error
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, &market.MockFetcher{}).Handler()
	rec := do(t, h, "GET", "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp healthResponse
	meta := decodeData(t, rec, &resp)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "mock", resp.Source)
	assert.NotEmpty(t, meta.RequestID)
	assert.Equal(t, meta.RequestID, rec.Header().Get(RequestIDHeader))
}

func TestRequestIDEcho(t *testing.T) {
	h := newTestServer(t, &market.MockFetcher{}).Handler()
	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp healthResponse
	meta := decodeData(t, rec, &resp)
	assert.Equal(t, "fixed-id", meta.RequestID)
	assert.Equal(t, "fixed-id", rec.Header().Get(RequestIDHeader))
}

func TestHistory(t *testing.T) {
	h := newTestServer(t, &market.MockFetcher{}).Handler()
	rec := do(t, h, "GET", "/api/v1/history/aapl?days=120&indicators=rsi,sma_20", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp historyResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, "AAPL", resp.Ticker)
	assert.Len(t, resp.Bars, 120)

	rsi, ok := resp.Indicators["RSI"]
	require.True(t, ok)
	require.Len(t, rsi, 120)
	assert.Nil(t, rsi[0])
	assert.NotNil(t, rsi[119])
	assert.Contains(t, resp.Indicators, "SMA_20")
	assert.NotContains(t, resp.Indicators, "OBV")
}

func TestHistoryUnknownIndicator(t *testing.T) {
	h := newTestServer(t, &market.MockFetcher{}).Handler()
	rec := do(t, h, "GET", "/api/v1/history/AAPL?indicators=magic", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, codeInvalidParameter, decodeError(t, rec).Code)
}

func TestHistoryBadDays(t *testing.T) {
	h := newTestServer(t, &market.MockFetcher{}).Handler()
	rec := do(t, h, "GET", "/api/v1/history/AAPL?days=soon", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryUpstreamFailure(t *testing.T) {
	h := newTestServer(t, &failFetcher{}).Handler()
	rec := do(t, h, "GET", "/api/v1/history/AAPL", nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, codeUpstreamError, decodeError(t, rec).Code)
}

func TestPatterns(t *testing.T) {
	h := newTestServer(t, &market.MockFetcher{}).Handler()
	rec := do(t, h, "GET", "/api/v1/patterns/MSFT?days=90", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Ticker  string          `json:"ticker"`
		Days    int             `json:"days"`
		Summary pattern.Summary `json:"summary"`
	}
	decodeData(t, rec, &resp)
	assert.Equal(t, "MSFT", resp.Ticker)
	assert.Equal(t, 90, resp.Days)
	assert.NotEmpty(t, resp.Summary.Support)
}

func TestScan(t *testing.T) {
	h := newTestServer(t, &market.MockFetcher{}).Handler()
	rec := do(t, h, "POST", "/api/v1/scan", map[string]interface{}{
		"type":                "high_volume",
		"tickers":             []string{"aapl", "msft"},
		"min_relative_volume": 0.1,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var run model.ScanRun
	decodeData(t, rec, &run)
	assert.Equal(t, model.ScanHighVolume, run.Type)
	assert.Equal(t, 2, run.Universe)
	assert.Equal(t, 2, run.Scanned)
	require.Len(t, run.Results, 2)
	assert.Equal(t, 1, run.Results[0].Rank)
}

func TestScanDefaultUniverse(t *testing.T) {
	h := newTestServer(t, &market.MockFetcher{}).Handler()
	rec := do(t, h, "POST", "/api/v1/scan", map[string]interface{}{
		"type":                "high_volume",
		"min_relative_volume": 0.1,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var run model.ScanRun
	decodeData(t, rec, &run)
	assert.Equal(t, 2, run.Universe)
}

func TestScanUnknownType(t *testing.T) {
	h := newTestServer(t, &market.MockFetcher{}).Handler()
	rec := do(t, h, "POST", "/api/v1/scan", map[string]interface{}{
		"type":    "sideways",
		"tickers": []string{"AAPL"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, codeInvalidParameter, decodeError(t, rec).Code)
}

func TestScanUnknownUniverse(t *testing.T) {
	h := newTestServer(t, &market.MockFetcher{}).Handler()
	rec := do(t, h, "POST", "/api/v1/scan", map[string]interface{}{
		"type":     "breakout",
		"universe": "crypto",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGreeks(t *testing.T) {
	h := newTestServer(t, &market.MockFetcher{}).Handler()
	rec := do(t, h, "POST", "/api/v1/greeks", map[string]interface{}{
		"spot":           100,
		"strike":         100,
		"rate":           0.05,
		"volatility":     0.2,
		"time_to_expiry": 1,
		"type":           "call",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var greeks model.Greeks
	decodeData(t, rec, &greeks)
	assert.InDelta(t, 10.4506, greeks.Price, 1e-3)
	assert.InDelta(t, 0.6368, greeks.Delta, 1e-3)
}

func TestGreeksInvalid(t *testing.T) {
	h := newTestServer(t, &market.MockFetcher{}).Handler()
	rec := do(t, h, "POST", "/api/v1/greeks", map[string]interface{}{
		"spot":           100,
		"strike":         100,
		"rate":           0.05,
		"volatility":     -0.2,
		"time_to_expiry": 1,
		"type":           "call",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, codeInvalidParameter, decodeError(t, rec).Code)
}

func TestOptionsChain(t *testing.T) {
	h := newTestServer(t, &market.MockFetcher{}).Handler()
	expiry := time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC)
	contracts := []model.OptionContract{
		{ContractSymbol: "AAPL260918C00100000", Type: model.Call, Strike: 100, Expiry: expiry, Bid: 5.0, Ask: 5.4, Volume: 800, OpenInterest: 2000},
		{ContractSymbol: "AAPL260918P00095000", Type: model.Put, Strike: 95, Expiry: expiry, Bid: 2.0, Ask: 2.2, Volume: 400, OpenInterest: 1500},
		{ContractSymbol: "AAPL260918C00125000", Type: model.Call, Strike: 125, Expiry: expiry, Volume: 1000, OpenInterest: 5000},
		{ContractSymbol: "AAPL260918C00105000", Type: model.Call, Strike: 105, Expiry: expiry, Volume: 50, OpenInterest: 2000},
		{ContractSymbol: "AAPL260918P00090000", Type: model.Put, Strike: 90, Expiry: expiry, Volume: 200, OpenInterest: 100},
	}

	rec := do(t, h, "POST", "/api/v1/options/chain", map[string]interface{}{
		"spot":      100,
		"contracts": contracts,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Contracts []struct {
			ContractSymbol string      `json:"contract_symbol"`
			Strike         float64     `json:"strike"`
			Spread         float64     `json:"spread"`
			SpreadPct      model.Ratio `json:"spread_pct"`
		} `json:"contracts"`
		Summary model.ChainSummary `json:"summary"`
	}
	decodeData(t, rec, &resp)

	require.Len(t, resp.Contracts, 2)
	assert.Equal(t, "AAPL260918C00100000", resp.Contracts[0].ContractSymbol)
	assert.InDelta(t, 0.4, resp.Contracts[0].Spread, 1e-9)
	require.True(t, resp.Contracts[0].SpreadPct.Defined)
	assert.InDelta(t, 8.0, resp.Contracts[0].SpreadPct.Value, 1e-9)

	assert.Equal(t, 1, resp.Summary.TotalCalls)
	assert.Equal(t, 1, resp.Summary.TotalPuts)
	require.True(t, resp.Summary.PutCallRatio.Defined)
	assert.InDelta(t, 0.5, resp.Summary.PutCallRatio.Value, 1e-9)
	require.NotNil(t, resp.Summary.MaxCallOIStrike)
	assert.Equal(t, 100.0, *resp.Summary.MaxCallOIStrike)
}

func TestOptionsChainEmpty(t *testing.T) {
	h := newTestServer(t, &market.MockFetcher{}).Handler()
	rec := do(t, h, "POST", "/api/v1/options/chain", map[string]interface{}{
		"spot": 100,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, codeInvalidParameter, decodeError(t, rec).Code)
}

func TestDCF(t *testing.T) {
	h := newTestServer(t, &market.MockFetcher{}).Handler()
	rec := do(t, h, "POST", "/api/v1/fundamental/dcf", map[string]interface{}{
		"free_cash_flow":       100,
		"growth_rate":          0.1,
		"terminal_growth_rate": 0.02,
		"discount_rate":        0.09,
		"years":                5,
		"shares_outstanding":   50,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result model.DCFResult
	decodeData(t, rec, &result)
	assert.Greater(t, result.IntrinsicPerShare, 0.0)
	assert.Len(t, result.ProjectedFCF, 5)
}

func TestDCFInvalid(t *testing.T) {
	h := newTestServer(t, &market.MockFetcher{}).Handler()
	rec := do(t, h, "POST", "/api/v1/fundamental/dcf", map[string]interface{}{
		"free_cash_flow":       100,
		"terminal_growth_rate": 0.05,
		"discount_rate":        0.03,
		"years":                5,
		"shares_outstanding":   50,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPortfolioSummary(t *testing.T) {
	h := newTestServer(t, &market.MockFetcher{Quotes: map[string]float64{"AAPL": 180}}).Handler()
	rec := do(t, h, "POST", "/api/v1/portfolio/summary", map[string]interface{}{
		"holdings": []map[string]interface{}{
			{"ticker": "aapl", "shares": 10, "purchase_price": 150, "purchase_date": "2024-03-01"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var summary model.PortfolioSummary
	decodeData(t, rec, &summary)
	require.Len(t, summary.Positions, 1)
	assert.Equal(t, "AAPL", summary.Positions[0].Ticker)
	assert.True(t, summary.TotalValue.IsPositive())
}

func TestPortfolioSummaryBadHolding(t *testing.T) {
	h := newTestServer(t, &market.MockFetcher{}).Handler()
	rec := do(t, h, "POST", "/api/v1/portfolio/summary", map[string]interface{}{
		"holdings": []map[string]interface{}{
			{"ticker": "AAPL", "shares": 0, "purchase_price": 150},
		},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, codeInvalidParameter, decodeError(t, rec).Code)
}

func TestBacktest(t *testing.T) {
	h := newTestServer(t, &market.MockFetcher{}).Handler()
	rec := do(t, h, "POST", "/api/v1/backtest", map[string]interface{}{
		"ticker":      "AAPL",
		"days":        400,
		"fast_period": 10,
		"slow_period": 30,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result backtest.Result
	decodeData(t, rec, &result)
	assert.Equal(t, "AAPL", result.Ticker)
	assert.Greater(t, result.FinalEquity, 0.0)
	assert.Equal(t, backtest.DefaultStartingCash, result.StartingCash)
}

func TestBacktestShortHistory(t *testing.T) {
	h := newTestServer(t, &market.MockFetcher{}).Handler()
	rec := do(t, h, "POST", "/api/v1/backtest", map[string]interface{}{
		"ticker": "AAPL",
		"days":   60,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, codeInsufficientData, decodeError(t, rec).Code)
}

func TestNotFound(t *testing.T) {
	h := newTestServer(t, &market.MockFetcher{}).Handler()
	rec := do(t, h, "GET", "/api/v1/nope", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, codeNotFound, decodeError(t, rec).Code)
}

func TestRecovery(t *testing.T) {
	s := newTestServer(t, &market.MockFetcher{})
	h := s.recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/health", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, codeInternalServer, decodeError(t, rec).Code)
}
