package api

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/Rbh2733/Dashboard/internal/backtest"
	"github.com/Rbh2733/Dashboard/internal/fundamental"
	"github.com/Rbh2733/Dashboard/internal/indicator"
	"github.com/Rbh2733/Dashboard/internal/model"
	"github.com/Rbh2733/Dashboard/internal/options"
	"github.com/Rbh2733/Dashboard/internal/pattern"
	"github.com/Rbh2733/Dashboard/internal/scanner"
)

const (
	defaultHistoryDays  = 180
	defaultBacktestDays = 365
	maxHistoryDays      = 1825
)

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", model.ErrInvalidParameter, err)
	}
	return nil
}

func queryDays(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return defaultHistoryDays, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 || days > maxHistoryDays {
		return 0, fmt.Errorf("%w: days must be an integer between 1 and %d", model.ErrInvalidParameter, maxHistoryDays)
	}
	return days, nil
}

type healthResponse struct {
	Status        string `json:"status"`
	Source        string `json:"source"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, healthResponse{
		Status:        "ok",
		Source:        s.Fetcher.Name(),
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
	})
}

type historyResponse struct {
	Ticker     string                `json:"ticker"`
	Bars       []model.Bar           `json:"bars"`
	Indicators map[string][]*float64 `json:"indicators,omitempty"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(mux.Vars(r)["ticker"])
	days, err := queryDays(r)
	if err != nil {
		s.respondFromErr(w, r, err)
		return
	}

	bars, err := s.Fetcher.DailyBars(ticker, days)
	if err != nil {
		s.respondFromErr(w, r, err)
		return
	}

	resp := historyResponse{Ticker: ticker, Bars: bars}
	if names := r.URL.Query().Get("indicators"); names != "" {
		cols, err := selectIndicators(bars, names)
		if err != nil {
			s.respondFromErr(w, r, err)
			return
		}
		resp.Indicators = cols
	}
	s.respond(w, r, resp)
}

// selectIndicators computes the requested indicator columns. Names match
// the ComputeAll column names case-insensitively; "all" selects every
// column.
func selectIndicators(bars []model.Bar, names string) (map[string][]*float64, error) {
	all := indicator.ComputeAll(bars)

	canonical := make(map[string]string, len(all))
	for name := range all {
		canonical[strings.ToLower(name)] = name
	}

	out := make(map[string][]*float64)
	for _, raw := range strings.Split(names, ",") {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		if name == "all" {
			for col, vals := range all {
				out[col] = jsonColumn(vals)
			}
			continue
		}
		col, ok := canonical[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown indicator %q", model.ErrInvalidParameter, raw)
		}
		out[col] = jsonColumn(all[col])
	}
	return out, nil
}

// jsonColumn maps NaN warmup values to null so the column marshals.
func jsonColumn(vals []float64) []*float64 {
	out := make([]*float64, len(vals))
	for i := range vals {
		if math.IsNaN(vals[i]) {
			continue
		}
		v := vals[i]
		out[i] = &v
	}
	return out
}

type patternsResponse struct {
	Ticker  string          `json:"ticker"`
	Days    int             `json:"days"`
	Summary pattern.Summary `json:"summary"`
}

func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(mux.Vars(r)["ticker"])
	days, err := queryDays(r)
	if err != nil {
		s.respondFromErr(w, r, err)
		return
	}

	bars, err := s.Fetcher.DailyBars(ticker, days)
	if err != nil {
		s.respondFromErr(w, r, err)
		return
	}
	s.respond(w, r, patternsResponse{Ticker: ticker, Days: days, Summary: pattern.Summarize(bars)})
}

type scanRequest struct {
	Type              string   `json:"type"`
	Tickers           []string `json:"tickers"`
	Universe          string   `json:"universe"`
	MinRelativeVolume float64  `json:"min_relative_volume"`
	Limit             int      `json:"limit"`
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondFromErr(w, r, err)
		return
	}

	tickers, err := s.resolveTickers(req)
	if err != nil {
		s.respondFromErr(w, r, err)
		return
	}

	run, err := s.Scanner.Scan(r.Context(), tickers, scanner.Options{
		Type:              model.ScanType(req.Type),
		MinRelativeVolume: req.MinRelativeVolume,
		Limit:             req.Limit,
	})
	if err != nil {
		s.respondFromErr(w, r, err)
		return
	}
	s.respond(w, r, run)
}

func (s *Server) resolveTickers(req scanRequest) ([]string, error) {
	if len(req.Tickers) > 0 {
		tickers := make([]string, len(req.Tickers))
		for i, t := range req.Tickers {
			tickers[i] = strings.ToUpper(strings.TrimSpace(t))
		}
		return tickers, nil
	}
	if req.Universe != "" {
		tickers, ok := scanner.Universe(req.Universe)
		if !ok {
			return nil, fmt.Errorf("%w: unknown universe %q", model.ErrInvalidParameter, req.Universe)
		}
		return tickers, nil
	}
	if len(s.Universe) > 0 {
		return s.Universe, nil
	}
	return nil, fmt.Errorf("%w: no tickers or universe given", model.ErrInvalidParameter)
}

func (s *Server) handleGreeks(w http.ResponseWriter, r *http.Request) {
	var q model.OptionQuote
	if err := decodeJSON(r, &q); err != nil {
		s.respondFromErr(w, r, err)
		return
	}
	greeks, err := options.CalculateGreeks(q)
	if err != nil {
		s.respondFromErr(w, r, err)
		return
	}
	s.respond(w, r, greeks)
}

type chainRequest struct {
	Spot            float64                `json:"spot"`
	Expiry          time.Time              `json:"expiry"`
	Contracts       []model.OptionContract `json:"contracts"`
	MoneynessWindow float64                `json:"moneyness_window"`
	MinVolume       int64                  `json:"min_volume"`
	MinOpenInterest int64                  `json:"min_open_interest"`
}

// chainRow is a filtered contract with its spread measures flattened in.
type chainRow struct {
	model.OptionContract
	options.Spread
}

type chainResponse struct {
	Spot      float64            `json:"spot"`
	Contracts []chainRow         `json:"contracts"`
	Summary   model.ChainSummary `json:"summary"`
}

func (s *Server) handleChain(w http.ResponseWriter, r *http.Request) {
	var req chainRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondFromErr(w, r, err)
		return
	}
	if req.Spot <= 0 {
		s.respondFromErr(w, r, fmt.Errorf("%w: spot must be positive", model.ErrInvalidParameter))
		return
	}
	if len(req.Contracts) == 0 {
		s.respondFromErr(w, r, fmt.Errorf("%w: no contracts given", model.ErrInvalidParameter))
		return
	}
	window := req.MoneynessWindow
	if window < 0 {
		s.respondFromErr(w, r, fmt.Errorf("%w: moneyness window must not be negative", model.ErrInvalidParameter))
		return
	}
	if window == 0 {
		window = options.DefaultMoneynessWindow
	}
	minVolume := req.MinVolume
	if minVolume == 0 {
		minVolume = options.DefaultMinVolume
	}
	minOI := req.MinOpenInterest
	if minOI == 0 {
		minOI = options.DefaultMinOpenInterest
	}

	kept := options.FilterLiquid(options.FilterByMoneyness(req.Contracts, req.Spot, window), minVolume, minOI)

	rows := make([]chainRow, len(kept))
	for i, c := range kept {
		rows[i] = chainRow{OptionContract: c, Spread: options.ContractSpread(c)}
	}

	expiry := req.Expiry
	if expiry.IsZero() && len(kept) > 0 {
		expiry = kept[0].Expiry
	}
	s.respond(w, r, chainResponse{
		Spot:      req.Spot,
		Contracts: rows,
		Summary:   options.Summarize(expiry, kept),
	})
}

func (s *Server) handleDCF(w http.ResponseWriter, r *http.Request) {
	var in model.DCFInput
	if err := decodeJSON(r, &in); err != nil {
		s.respondFromErr(w, r, err)
		return
	}
	result, err := fundamental.Valuate(in)
	if err != nil {
		s.respondFromErr(w, r, err)
		return
	}
	s.respond(w, r, result)
}

type holdingRequest struct {
	Ticker        string          `json:"ticker"`
	Shares        decimal.Decimal `json:"shares"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	PurchaseDate  string          `json:"purchase_date"`
}

type portfolioRequest struct {
	Holdings  []holdingRequest `json:"holdings"`
	Benchmark string           `json:"benchmark"`
}

func (s *Server) handlePortfolioSummary(w http.ResponseWriter, r *http.Request) {
	var req portfolioRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondFromErr(w, r, err)
		return
	}

	holdings, err := s.resolveHoldings(req.Holdings)
	if err != nil {
		s.respondFromErr(w, r, err)
		return
	}

	summary, err := s.Analyzer.Summary(holdings, req.Benchmark)
	if err != nil {
		s.respondFromErr(w, r, err)
		return
	}
	s.respond(w, r, summary)
}

func (s *Server) resolveHoldings(reqs []holdingRequest) ([]model.Holding, error) {
	if len(reqs) == 0 {
		return s.Book.Holdings(), nil
	}
	holdings := make([]model.Holding, 0, len(reqs))
	for _, hr := range reqs {
		h, err := hr.toHolding()
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, nil
}

func (hr holdingRequest) toHolding() (model.Holding, error) {
	ticker := strings.ToUpper(strings.TrimSpace(hr.Ticker))
	if ticker == "" {
		return model.Holding{}, fmt.Errorf("%w: holding with empty ticker", model.ErrInvalidParameter)
	}
	if !hr.Shares.IsPositive() {
		return model.Holding{}, fmt.Errorf("%w: %s shares must be a positive number", model.ErrInvalidParameter, ticker)
	}
	if hr.PurchasePrice.IsNegative() {
		return model.Holding{}, fmt.Errorf("%w: %s purchase price must not be negative", model.ErrInvalidParameter, ticker)
	}

	var date time.Time
	if hr.PurchaseDate != "" {
		var err error
		date, err = parseDate(hr.PurchaseDate)
		if err != nil {
			return model.Holding{}, fmt.Errorf("%w: %s purchase date %q", model.ErrInvalidParameter, ticker, hr.PurchaseDate)
		}
	}
	return model.Holding{
		Ticker:        ticker,
		Shares:        hr.Shares,
		PurchasePrice: hr.PurchasePrice,
		PurchaseDate:  date,
	}, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

type backtestRequest struct {
	Ticker       string  `json:"ticker"`
	Days         int     `json:"days"`
	StartingCash float64 `json:"starting_cash"`
	FastPeriod   int     `json:"fast_period"`
	SlowPeriod   int     `json:"slow_period"`
}

func (s *Server) handleBacktest(w http.ResponseWriter, r *http.Request) {
	var req backtestRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondFromErr(w, r, err)
		return
	}
	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	if ticker == "" {
		s.respondFromErr(w, r, fmt.Errorf("%w: ticker is required", model.ErrInvalidParameter))
		return
	}
	days := req.Days
	if days == 0 {
		days = defaultBacktestDays
	}
	if days < 1 || days > maxHistoryDays {
		s.respondFromErr(w, r, fmt.Errorf("%w: days must be between 1 and %d", model.ErrInvalidParameter, maxHistoryDays))
		return
	}

	bars, err := s.Fetcher.DailyBars(ticker, days)
	if err != nil {
		s.respondFromErr(w, r, err)
		return
	}
	result, err := backtest.Run(ticker, bars, backtest.Config{
		StartingCash: req.StartingCash,
		FastPeriod:   req.FastPeriod,
		SlowPeriod:   req.SlowPeriod,
	})
	if err != nil {
		s.respondFromErr(w, r, err)
		return
	}
	s.respond(w, r, result)
}
