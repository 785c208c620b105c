package indicator

import (
	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
)

// BollingerBands represents the Bollinger Bands indicator.
type BollingerBands struct {
	period int
	stdDev float64
}

// NewBollingerBands creates bands of stdDev sample deviations around the SMA.
func NewBollingerBands(period int, stdDev float64) Indicator {
	return &BollingerBands{period: period, stdDev: stdDev}
}

// Name returns the name of the indicator.
func (bb *BollingerBands) Name() types.IndicatorType {
	return types.IndicatorTypeBollingerBands
}

// Lookback returns the period.
func (bb *BollingerBands) Lookback() int {
	return bb.period
}

// Calculate returns bb_upper, bb_middle, bb_lower and bb_width (upper - lower).
// On a flat window all three bands coincide.
func (bb *BollingerBands) Calculate(series types.MarketSeries) (types.Indicators, error) {
	if err := checkPeriod(bb.Name(), bb.period); err != nil {
		return nil, err
	}

	if bb.period < 2 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "bollinger bands need a period of at least 2, got %d", bb.period)
	}

	if err := requireBars(series, bb.period, bb.Name()); err != nil {
		return nil, err
	}

	closes := series.Tail(bb.period).Closes()
	middle := mean(closes)
	std := sampleStd(closes)
	upper := middle + bb.stdDev*std
	lower := middle - bb.stdDev*std

	return checkFinite(bb.Name(), types.Indicators{
		"bb_upper":  upper,
		"bb_middle": middle,
		"bb_lower":  lower,
		"bb_width":  upper - lower,
	})
}
