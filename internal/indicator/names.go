package indicator

import "github.com/Rbh2733/Dashboard/internal/model"

// Column names produced by ComputeAll.
const (
	NameSMA20         = "SMA_20"
	NameSMA50         = "SMA_50"
	NameSMA200        = "SMA_200"
	NameEMA12         = "EMA_12"
	NameEMA26         = "EMA_26"
	NameRSI           = "RSI"
	NameMACD          = "MACD"
	NameMACDSignal    = "MACD_Signal"
	NameMACDHistogram = "MACD_Histogram"
	NameBBUpper       = "BB_Upper"
	NameBBMiddle      = "BB_Middle"
	NameBBLower       = "BB_Lower"
	NameVWAP          = "VWAP"
	NameOBV           = "OBV"
)

// Default parameters for the standard indicator set.
const (
	DefaultRSIPeriod       = 14
	DefaultMACDFast        = 12
	DefaultMACDSlow        = 26
	DefaultMACDSignal      = 9
	DefaultBollingerPeriod = 20
	DefaultBollingerWidth  = 2.0
)

// ComputeAll runs the standard indicator set over a series and returns the
// aligned columns keyed by name.
func ComputeAll(bars []model.Bar) map[string][]float64 {
	closes := model.Closes(bars)
	out := make(map[string][]float64, 14)

	sma20, _ := SMA(closes, 20)
	sma50, _ := SMA(closes, 50)
	sma200, _ := SMA(closes, 200)
	ema12, _ := EMA(closes, 12)
	ema26, _ := EMA(closes, 26)
	rsi, _ := RSI(closes, DefaultRSIPeriod)
	out[NameSMA20] = sma20
	out[NameSMA50] = sma50
	out[NameSMA200] = sma200
	out[NameEMA12] = ema12
	out[NameEMA26] = ema26
	out[NameRSI] = rsi

	macd, signal, histogram, _ := MACD(closes, DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal)
	out[NameMACD] = macd
	out[NameMACDSignal] = signal
	out[NameMACDHistogram] = histogram

	upper, middle, lower, _ := Bollinger(closes, DefaultBollingerPeriod, DefaultBollingerWidth)
	out[NameBBUpper] = upper
	out[NameBBMiddle] = middle
	out[NameBBLower] = lower

	out[NameVWAP] = VWAP(bars)
	out[NameOBV] = OBV(bars)
	return out
}
