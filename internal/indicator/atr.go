package indicator

import (
	"math"

	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
)

// ATR represents the Average True Range indicator as a simple mean of
// true ranges.
type ATR struct {
	period int
}

// NewATR creates a new ATR indicator.
func NewATR(period int) Indicator {
	return &ATR{period: period}
}

// Name returns the name of the indicator.
func (a *ATR) Name() types.IndicatorType {
	return types.IndicatorTypeATR
}

// Lookback needs one extra bar for the first previous close.
func (a *ATR) Lookback() int {
	return a.period + 1
}

// Calculate returns atr and atr_pct (atr relative to the latest close, in percent).
func (a *ATR) Calculate(series types.MarketSeries) (types.Indicators, error) {
	if err := checkPeriod(a.Name(), a.period); err != nil {
		return nil, err
	}

	if err := requireBars(series, a.Lookback(), a.Name()); err != nil {
		return nil, err
	}

	window := series.Tail(a.Lookback())
	sum := 0.0

	for i := 1; i < window.Len(); i++ {
		cur := window.At(i)
		prevClose := window.At(i - 1).Close
		tr := math.Max(cur.High-cur.Low, math.Max(math.Abs(cur.High-prevClose), math.Abs(cur.Low-prevClose)))
		sum += tr
	}

	atr := sum / float64(a.period)

	latest, _ := window.Latest()
	if latest.Close <= 0 {
		return nil, errors.Newf(errors.ErrCodeIndicatorCalculation, "atr needs a positive close, got %f", latest.Close)
	}

	return checkFinite(a.Name(), types.Indicators{
		"atr":     atr,
		"atr_pct": atr / latest.Close * 100,
	})
}
