package portfolio

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Rbh2733/Dashboard/internal/model"
)

const (
	// tradingDays is the annualization base for daily return statistics.
	tradingDays = 252
	// minAlignedReturns is the smallest overlap that still yields a
	// meaningful beta.
	minAlignedReturns = 20
)

// ValuePoint is the portfolio's total market value on one date.
type ValuePoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// ValueSeries builds the portfolio's daily value series from per-ticker
// history, restricted to dates every priced holding shares. Zero-share
// holdings and holdings without history are left out.
func ValueSeries(holdings []model.Holding, history map[string][]model.Bar) []ValuePoint {
	type priced struct {
		shares float64
		closes map[time.Time]float64
	}

	var active []priced
	var common map[time.Time]bool
	for _, h := range holdings {
		if h.Shares.IsZero() {
			continue
		}
		bars, ok := history[h.Ticker]
		if !ok || len(bars) == 0 {
			continue
		}
		closes := make(map[time.Time]float64, len(bars))
		for _, b := range bars {
			closes[dateKey(b.Date)] = b.Close
		}
		active = append(active, priced{shares: h.Shares.InexactFloat64(), closes: closes})

		if common == nil {
			common = make(map[time.Time]bool, len(closes))
			for d := range closes {
				common[d] = true
			}
			continue
		}
		for d := range common {
			if _, ok := closes[d]; !ok {
				delete(common, d)
			}
		}
	}
	if len(common) == 0 {
		return nil
	}

	dates := make([]time.Time, 0, len(common))
	for d := range common {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	series := make([]ValuePoint, len(dates))
	for i, d := range dates {
		var total float64
		for _, p := range active {
			total += p.shares * p.closes[d]
		}
		series[i] = ValuePoint{Date: d, Value: total}
	}
	return series
}

// Returns converts a value series into simple daily returns.
func Returns(values []ValuePoint) []float64 {
	if len(values) < 2 {
		return nil
	}
	out := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		prev := values[i-1].Value
		if prev == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, values[i].Value/prev-1)
	}
	return out
}

// Beta regresses the portfolio's daily returns against a benchmark price
// series: covariance over benchmark variance, on dates both sides share.
func Beta(portfolio []ValuePoint, benchmark []model.Bar) (float64, error) {
	bench := make(map[time.Time]float64, len(benchmark))
	for _, b := range benchmark {
		bench[dateKey(b.Date)] = b.Close
	}

	var port, mark []ValuePoint
	for _, p := range portfolio {
		if c, ok := bench[p.Date]; ok {
			port = append(port, p)
			mark = append(mark, ValuePoint{Date: p.Date, Value: c})
		}
	}

	pr := Returns(port)
	br := Returns(mark)
	if len(pr) <= minAlignedReturns {
		return 0, fmt.Errorf("%w: %d aligned returns, need more than %d",
			model.ErrInsufficientData, len(pr), minAlignedReturns)
	}

	variance := sampleVariance(br)
	if variance <= 0 {
		return 0, fmt.Errorf("%w: benchmark variance is zero", model.ErrInsufficientData)
	}
	return sampleCovariance(pr, br) / variance, nil
}

// Sharpe annualizes the mean daily excess return over its standard
// deviation. The risk-free rate is annual and gets scaled to a trading day.
func Sharpe(returns []float64, riskFreeRate float64) (float64, error) {
	if len(returns) < 2 {
		return 0, fmt.Errorf("%w: %d returns, need at least 2", model.ErrInsufficientData, len(returns))
	}

	daily := riskFreeRate / tradingDays
	excess := make([]float64, len(returns))
	for i, r := range returns {
		excess[i] = r - daily
	}

	std := math.Sqrt(sampleVariance(excess))
	if std == 0 {
		return 0, fmt.Errorf("%w: returns have zero variance", model.ErrInsufficientData)
	}
	return mean(excess) / std * math.Sqrt(tradingDays), nil
}

// MaxDrawdown finds the largest peak-to-trough decline of the value series.
// Pct is negative; a series that never declines reports zero.
func MaxDrawdown(values []ValuePoint) (*model.Drawdown, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: empty value series", model.ErrInsufficientData)
	}
	if values[0].Value == 0 {
		return nil, fmt.Errorf("%w: first value is zero", model.ErrInvalidParameter)
	}

	cumulative := make([]float64, len(values))
	for i, v := range values {
		cumulative[i] = v.Value / values[0].Value
	}

	runningMax := cumulative[0]
	minDD := 0.0
	trough := 0
	for i, c := range cumulative {
		if c > runningMax {
			runningMax = c
		}
		dd := (c - runningMax) / runningMax
		if dd < minDD {
			minDD = dd
			trough = i
		}
	}

	peak := 0
	for i := 1; i <= trough; i++ {
		if cumulative[i] > cumulative[peak] {
			peak = i
		}
	}

	return &model.Drawdown{
		Pct:    minDD * 100,
		Peak:   values[peak].Date,
		Trough: values[trough].Date,
	}, nil
}

func dateKey(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func sampleVariance(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	m := mean(vals)
	var sum float64
	for _, v := range vals {
		sum += (v - m) * (v - m)
	}
	return sum / float64(len(vals)-1)
}

func sampleCovariance(xs, ys []float64) float64 {
	if len(xs) < 2 || len(xs) != len(ys) {
		return 0
	}
	mx, my := mean(xs), mean(ys)
	var sum float64
	for i := range xs {
		sum += (xs[i] - mx) * (ys[i] - my)
	}
	return sum / float64(len(xs)-1)
}
