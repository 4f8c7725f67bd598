package indicator

// MACD computes the MACD line (fast EMA minus slow EMA), its EMA signal
// line, and the histogram, all aligned to the input. Positions where either
// EMA is still warming up stay undefined.
func MACD(closes []float64, fast, slow, signal int) (macd, signalLine, histogram []float64, err error) {
	emaFast, err := EMA(closes, fast)
	if err != nil {
		return nil, nil, nil, err
	}
	emaSlow, err := EMA(closes, slow)
	if err != nil {
		return nil, nil, nil, err
	}

	macd = make([]float64, len(closes))
	for i := range closes {
		macd[i] = emaFast[i] - emaSlow[i]
	}

	signalLine, err = EMA(macd, signal)
	if err != nil {
		return nil, nil, nil, err
	}

	histogram = make([]float64, len(closes))
	for i := range closes {
		histogram[i] = macd[i] - signalLine[i]
	}
	return macd, signalLine, histogram, nil
}
