package indicator

import (
	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
)

// RollingRange reports the highest high and lowest low over period bars,
// ending lag bars before the latest one. A lag of 1 yields the levels the
// latest bar is measured against for breakouts.
type RollingRange struct {
	period  int
	lag     int
	highKey string
	lowKey  string
}

// NewRollingRange creates a rolling range writing under highKey and lowKey.
func NewRollingRange(period, lag int, highKey, lowKey string) Indicator {
	return &RollingRange{period: period, lag: lag, highKey: highKey, lowKey: lowKey}
}

// Name returns the name of the indicator.
func (r *RollingRange) Name() types.IndicatorType {
	return types.IndicatorTypeRollingRange
}

// Lookback returns period plus lag.
func (r *RollingRange) Lookback() int {
	return r.period + r.lag
}

// Calculate returns the high and low of the window.
func (r *RollingRange) Calculate(series types.MarketSeries) (types.Indicators, error) {
	if err := checkPeriod(r.Name(), r.period); err != nil {
		return nil, err
	}

	if r.lag < 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "rolling range lag must not be negative, got %d", r.lag)
	}

	if err := requireBars(series, r.Lookback(), r.Name()); err != nil {
		return nil, err
	}

	window := series.Prefix(series.Len() - r.lag).Tail(r.period)

	return checkFinite(r.Name(), types.Indicators{
		r.highKey: maxOf(window.Highs()),
		r.lowKey:  minOf(window.Lows()),
	})
}

// RangePosition locates the latest close inside the high/low range of the
// last period bars: 0 at the low, 1 at the high.
type RangePosition struct {
	period int
}

// NewRangePosition creates a new RangePosition indicator.
func NewRangePosition(period int) Indicator {
	return &RangePosition{period: period}
}

// Name returns the name of the indicator.
func (r *RangePosition) Name() types.IndicatorType {
	return types.IndicatorTypeRangePosition
}

// Lookback returns the period.
func (r *RangePosition) Lookback() int {
	return r.period
}

// Calculate returns range_high, range_low, range_middle and range_position.
// A zero-width range cannot locate the price and is reported as a fault.
func (r *RangePosition) Calculate(series types.MarketSeries) (types.Indicators, error) {
	if err := checkPeriod(r.Name(), r.period); err != nil {
		return nil, err
	}

	if err := requireBars(series, r.period, r.Name()); err != nil {
		return nil, err
	}

	window := series.Tail(r.period)
	high := maxOf(window.Highs())
	low := minOf(window.Lows())
	width := high - low

	if width <= 0 {
		return nil, errors.Newf(errors.ErrCodeIndicatorCalculation,
			"range over %d bars has zero width at %f", r.period, high)
	}

	latest, _ := window.Latest()

	return checkFinite(r.Name(), types.Indicators{
		"range_high":     high,
		"range_low":      low,
		"range_middle":   (high + low) / 2,
		"range_position": (latest.Close - low) / width,
	})
}
