package indicator

import (
	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
)

// EMA is the exponential moving average of closes with span period.
// It uses adjusted weights, so early values are not biased toward the seed.
type EMA struct {
	key    string
	period int
}

// NewEMA creates an EMA that writes its value under key.
func NewEMA(key string, period int) Indicator {
	return &EMA{key: key, period: period}
}

// Name returns the name of the indicator.
func (e *EMA) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

// Lookback returns the span.
func (e *EMA) Lookback() int {
	return e.period
}

// Calculate returns the EMA at the latest bar over the full series.
func (e *EMA) Calculate(series types.MarketSeries) (types.Indicators, error) {
	if err := checkPeriod(e.Name(), e.period); err != nil {
		return nil, err
	}

	if err := requireBars(series, e.period, e.Name()); err != nil {
		return nil, err
	}

	return checkFinite(e.Name(), types.Indicators{e.key: last(ewm(series.Closes(), e.period))})
}
