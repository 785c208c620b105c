package indicator

import (
	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
)

// MACD represents the Moving Average Convergence Divergence indicator.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a MACD with the given EMA spans.
func NewMACD(fast, slow, signal int) Indicator {
	return &MACD{fastPeriod: fast, slowPeriod: slow, signalPeriod: signal}
}

// Name returns the name of the indicator.
func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Lookback covers the slow EMA plus the signal span, and one more bar for the
// previous values.
func (m *MACD) Lookback() int {
	return m.slowPeriod + m.signalPeriod
}

// Calculate returns macd, macd_signal, macd_hist and the previous bar's
// macd_prev and macd_signal_prev used for cross detection.
func (m *MACD) Calculate(series types.MarketSeries) (types.Indicators, error) {
	for _, p := range []int{m.fastPeriod, m.slowPeriod, m.signalPeriod} {
		if err := checkPeriod(m.Name(), p); err != nil {
			return nil, err
		}
	}

	if m.fastPeriod >= m.slowPeriod {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod,
			"macd fast period %d must be shorter than slow period %d", m.fastPeriod, m.slowPeriod)
	}

	if err := requireBars(series, m.Lookback(), m.Name()); err != nil {
		return nil, err
	}

	closes := series.Closes()
	fast := ewm(closes, m.fastPeriod)
	slow := ewm(closes, m.slowPeriod)

	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fast[i] - slow[i]
	}

	signal := ewm(line, m.signalPeriod)
	n := len(line)

	return checkFinite(m.Name(), types.Indicators{
		"macd":             line[n-1],
		"macd_signal":      signal[n-1],
		"macd_hist":        line[n-1] - signal[n-1],
		"macd_prev":        line[n-2],
		"macd_signal_prev": signal[n-2],
	})
}
