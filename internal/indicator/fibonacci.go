package indicator

import (
	"math"
	"strconv"

	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
)

// DefaultFibonacciLevels returns the retracement ratios checked, in order.
func DefaultFibonacciLevels() []float64 {
	return []float64{0.236, 0.382, 0.5, 0.618, 0.786}
}

// Fibonacci computes retracement levels between the high and low of the last
// lookback bars and reports whether the latest close sits on one of them.
type Fibonacci struct {
	lookback    int
	levels      []float64
	tolerance   float64
	trendPeriod int
}

// NewFibonacci creates a Fibonacci retracement indicator. The trend is the
// sign of the latest close against the SMA of trendPeriod closes.
func NewFibonacci(lookback int, levels []float64, tolerance float64, trendPeriod int) Indicator {
	copied := make([]float64, len(levels))
	copy(copied, levels)

	return &Fibonacci{lookback: lookback, levels: copied, tolerance: tolerance, trendPeriod: trendPeriod}
}

// FibonacciLevelKey returns the output key of a level, e.g. "fib_0.382".
func FibonacciLevelKey(level float64) string {
	return "fib_" + strconv.FormatFloat(level, 'f', -1, 64)
}

// Name returns the name of the indicator.
func (f *Fibonacci) Name() types.IndicatorType {
	return types.IndicatorTypeFibonacci
}

// Lookback only depends on the trend SMA; the retracement window uses
// whatever is available up to lookback bars.
func (f *Fibonacci) Lookback() int {
	return f.trendPeriod
}

// Calculate returns fib_<level> for every level plus fib_high, fib_low,
// at_fib_level (0/1), fib_level (the first matched level or -1) and trend
// (+1 above the SMA, -1 otherwise).
func (f *Fibonacci) Calculate(series types.MarketSeries) (types.Indicators, error) {
	if err := checkPeriod(f.Name(), f.lookback); err != nil {
		return nil, err
	}

	if err := checkPeriod(f.Name(), f.trendPeriod); err != nil {
		return nil, err
	}

	if err := requireBars(series, f.Lookback(), f.Name()); err != nil {
		return nil, err
	}

	latest, _ := series.Latest()
	price := latest.Close

	if price <= 0 {
		return nil, errors.Newf(errors.ErrCodeIndicatorCalculation, "fibonacci needs a positive close, got %f", price)
	}

	window := series.Tail(f.lookback)
	high := maxOf(window.Highs())
	low := minOf(window.Lows())
	diff := high - low

	out := types.Indicators{
		"fib_high":     high,
		"fib_low":      low,
		"at_fib_level": 0,
		"fib_level":    -1,
	}

	for _, level := range f.levels {
		levelPrice := high - diff*level
		out[FibonacciLevelKey(level)] = levelPrice

		if out["at_fib_level"] == 0 && math.Abs(price-levelPrice)/price < f.tolerance {
			out["at_fib_level"] = 1
			out["fib_level"] = level
		}
	}

	sma := mean(series.Tail(f.trendPeriod).Closes())
	if price > sma {
		out["trend"] = 1
	} else {
		out["trend"] = -1
	}

	return checkFinite(f.Name(), out)
}
