package indicator

import (
	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
)

// SMA is the simple moving average of closes over period bars.
type SMA struct {
	key    string
	period int
}

// NewSMA creates an SMA that writes its value under key.
func NewSMA(key string, period int) Indicator {
	return &SMA{key: key, period: period}
}

// Name returns the name of the indicator.
func (m *SMA) Name() types.IndicatorType {
	return types.IndicatorTypeSMA
}

// Lookback returns the period.
func (m *SMA) Lookback() int {
	return m.period
}

// Calculate returns the SMA of the last period closes.
func (m *SMA) Calculate(series types.MarketSeries) (types.Indicators, error) {
	if err := checkPeriod(m.Name(), m.period); err != nil {
		return nil, err
	}

	if err := requireBars(series, m.period, m.Name()); err != nil {
		return nil, err
	}

	closes := series.Tail(m.period).Closes()

	return checkFinite(m.Name(), types.Indicators{m.key: mean(closes)})
}
