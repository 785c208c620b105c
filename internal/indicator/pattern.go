package indicator

import (
	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
)

// Engulfing detects a two-bar engulfing candle on the latest bar.
type Engulfing struct{}

// NewEngulfing creates a new Engulfing pattern detector.
func NewEngulfing() Indicator {
	return &Engulfing{}
}

// Name returns the name of the indicator.
func (e *Engulfing) Name() types.IndicatorType {
	return types.IndicatorTypeEngulfing
}

// Lookback returns 2.
func (e *Engulfing) Lookback() int {
	return 2
}

// Calculate returns pattern: +1 bullish engulfing, -1 bearish, 0 none.
func (e *Engulfing) Calculate(series types.MarketSeries) (types.Indicators, error) {
	if err := requireBars(series, e.Lookback(), e.Name()); err != nil {
		return nil, err
	}

	p := series.At(series.Len() - 2)
	c := series.At(series.Len() - 1)
	pattern := 0.0

	switch {
	case p.Close < p.Open && c.Close > c.Open && c.Close >= p.Open && c.Open <= p.Close:
		pattern = 1
	case p.Close > p.Open && c.Close < c.Open && c.Close <= p.Open && c.Open >= p.Close:
		pattern = -1
	}

	return types.Indicators{"pattern": pattern}, nil
}

// IntrabarSpread is the latest bar's high-low range relative to its close.
type IntrabarSpread struct{}

// NewIntrabarSpread creates a new IntrabarSpread indicator.
func NewIntrabarSpread() Indicator {
	return &IntrabarSpread{}
}

// Name returns the name of the indicator.
func (s *IntrabarSpread) Name() types.IndicatorType {
	return types.IndicatorTypeIntrabarSpread
}

// Lookback returns 1.
func (s *IntrabarSpread) Lookback() int {
	return 1
}

// Calculate returns spread = (high - low) / close.
func (s *IntrabarSpread) Calculate(series types.MarketSeries) (types.Indicators, error) {
	if err := requireBars(series, 1, s.Name()); err != nil {
		return nil, err
	}

	latest, _ := series.Latest()
	if latest.Close <= 0 {
		return nil, errors.Newf(errors.ErrCodeIndicatorCalculation, "spread needs a positive close, got %f", latest.Close)
	}

	return checkFinite(s.Name(), types.Indicators{"spread": (latest.High - latest.Low) / latest.Close})
}

// Price exposes the latest close as "price".
type Price struct{}

// NewPrice creates a new Price indicator.
func NewPrice() Indicator {
	return &Price{}
}

// Name returns the name of the indicator.
func (p *Price) Name() types.IndicatorType {
	return types.IndicatorTypePrice
}

// Lookback returns 1.
func (p *Price) Lookback() int {
	return 1
}

// Calculate returns the latest close.
func (p *Price) Calculate(series types.MarketSeries) (types.Indicators, error) {
	if err := requireBars(series, 1, p.Name()); err != nil {
		return nil, err
	}

	latest, _ := series.Latest()

	return checkFinite(p.Name(), types.Indicators{"price": latest.Close})
}
