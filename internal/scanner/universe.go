package scanner

import "strings"

// SP500Sample is a liquid large-cap slice of the S&P 500 used as the
// default scan universe.
var SP500Sample = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "META", "TSLA", "NVDA", "JPM",
	"V", "JNJ", "WMT", "PG", "MA", "UNH", "HD", "DIS", "BAC", "XOM",
}

// ETFList covers the major index and sector ETFs.
var ETFList = []string{
	"SPY", "QQQ", "IWM", "DIA", "VTI", "VOO", "ARKK", "XLF",
	"XLE", "XLK", "XLV", "XLP", "XLI", "XLY", "XLC", "XLRE",
}

// Universe resolves a named ticker universe.
func Universe(name string) ([]string, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sp500", "sp500_sample", "stocks":
		return SP500Sample, true
	case "etf", "etfs":
		return ETFList, true
	default:
		return nil, false
	}
}
