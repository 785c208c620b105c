package indicator

import (
	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
)

const (
	rsiNeutral = 50.0
	rsiMax     = 100.0
)

// RSI represents the Relative Strength Index indicator computed from simple
// rolling means of gains and losses.
type RSI struct {
	period int
}

// NewRSI creates a new RSI indicator. The output key is "rsi".
func NewRSI(period int) Indicator {
	return &RSI{period: period}
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Lookback needs one extra bar for the first price change.
func (r *RSI) Lookback() int {
	return r.period + 1
}

// Calculate returns the RSI at the latest bar. A window without any price
// change is neutral (50); a window without losses is 100.
func (r *RSI) Calculate(series types.MarketSeries) (types.Indicators, error) {
	if err := checkPeriod(r.Name(), r.period); err != nil {
		return nil, err
	}

	if err := requireBars(series, r.Lookback(), r.Name()); err != nil {
		return nil, err
	}

	closes := series.Tail(r.Lookback()).Closes()

	var gains, losses float64

	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains += delta
		} else {
			losses -= delta
		}
	}

	avgGain := gains / float64(r.period)
	avgLoss := losses / float64(r.period)

	var rsi float64

	switch {
	case avgGain == 0 && avgLoss == 0:
		rsi = rsiNeutral
	case avgLoss == 0:
		rsi = rsiMax
	default:
		rs := avgGain / avgLoss
		rsi = 100 - (100 / (1 + rs))
	}

	return checkFinite(r.Name(), types.Indicators{"rsi": rsi})
}
