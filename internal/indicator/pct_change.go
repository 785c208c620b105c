package indicator

import (
	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
)

// PctChange is the fractional close-to-close change over period bars.
type PctChange struct {
	key    string
	period int
}

// NewPctChange creates a PctChange writing under key.
func NewPctChange(key string, period int) Indicator {
	return &PctChange{key: key, period: period}
}

// Name returns the name of the indicator.
func (p *PctChange) Name() types.IndicatorType {
	return types.IndicatorTypePctChange
}

// Lookback needs period bars before the latest one.
func (p *PctChange) Lookback() int {
	return p.period + 1
}

// Calculate returns close[t]/close[t-period] - 1.
func (p *PctChange) Calculate(series types.MarketSeries) (types.Indicators, error) {
	if err := checkPeriod(p.Name(), p.period); err != nil {
		return nil, err
	}

	if err := requireBars(series, p.Lookback(), p.Name()); err != nil {
		return nil, err
	}

	closes := series.Tail(p.Lookback()).Closes()
	base := closes[0]

	if base == 0 {
		return nil, errors.Newf(errors.ErrCodeIndicatorCalculation, "pct change base close %d bars ago is zero", p.period)
	}

	return checkFinite(p.Name(), types.Indicators{p.key: last(closes)/base - 1})
}
