package indicator

import (
	"math"

	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
)

// Indicator interface defines methods that any technical indicator must implement.
//
// Calculate only reads bars inside the series it is given, so callers control
// look-ahead by passing a prefix view. When the series is too short it returns
// an *errors.InsufficientDataError; any other error is a genuine fault.
type Indicator interface {
	// Name returns the name of the indicator
	Name() types.IndicatorType
	// Lookback returns the minimum number of bars Calculate needs
	Lookback() int
	// Calculate returns the latest values keyed by output name
	Calculate(series types.MarketSeries) (types.Indicators, error)
}

func requireBars(series types.MarketSeries, required int, name types.IndicatorType) error {
	if series.Len() < required {
		return errors.NewInsufficientDataErrorf(required, series.Len(), series.Symbol(),
			"insufficient data points for %s: required %d, got %d", name, required, series.Len())
	}

	return nil
}

func checkPeriod(name types.IndicatorType, period int) error {
	if period <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "%s period must be a positive integer, got %d", name, period)
	}

	return nil
}

// checkFinite rejects NaN and infinite outputs.
func checkFinite(name types.IndicatorType, values types.Indicators) (types.Indicators, error) {
	for key, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.Newf(errors.ErrCodeIndicatorCalculation, "%s produced non-finite %s", name, key)
		}
	}

	return values, nil
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}

	sum := 0.0
	for _, x := range xs {
		sum += x
	}

	return sum / float64(len(xs))
}

// sampleStd is the standard deviation with one degree of freedom removed.
func sampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}

	m := mean(xs)
	sq := 0.0

	for _, x := range xs {
		d := x - m
		sq += d * d
	}

	return math.Sqrt(sq / float64(len(xs)-1))
}

// ewm returns the adjusted exponentially weighted mean of xs at every index,
// with alpha = 2/(span+1). Weights are renormalized over the observed history.
func ewm(xs []float64, span int) []float64 {
	out := make([]float64, len(xs))
	decay := 1 - 2.0/float64(span+1)
	num, den := 0.0, 0.0

	for i, x := range xs {
		num = x + decay*num
		den = 1 + decay*den
		out[i] = num / den
	}

	return out
}

func maxOf(xs []float64) float64 {
	m := math.Inf(-1)
	for _, x := range xs {
		if x > m {
			m = x
		}
	}

	return m
}

func minOf(xs []float64) float64 {
	m := math.Inf(1)
	for _, x := range xs {
		if x < m {
			m = x
		}
	}

	return m
}

func last(xs []float64) float64 {
	return xs[len(xs)-1]
}
