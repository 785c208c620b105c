package types

import (
	"math"
	"time"

	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
)

// MarketData is a single OHLCV bar.
type MarketData struct {
	Symbol string    `csv:"symbol" yaml:"symbol" json:"symbol"`
	Time   time.Time `csv:"time" yaml:"time" json:"time"`
	Open   float64   `csv:"open" yaml:"open" json:"open"`
	High   float64   `csv:"high" yaml:"high" json:"high"`
	Low    float64   `csv:"low" yaml:"low" json:"low"`
	Close  float64   `csv:"close" yaml:"close" json:"close"`
	Volume float64   `csv:"volume" yaml:"volume" json:"volume"`
}

// MarketSeries is an immutable, time-ordered window of bars, oldest first.
// Views returned by Prefix and Tail share the underlying storage; nothing
// in this package ever writes to it after construction.
type MarketSeries struct {
	symbol string
	bars   []MarketData
}

// NewMarketSeries copies bars into a new series. Bars must be in
// non-decreasing time order and carry finite, non-negative OHLCV values.
func NewMarketSeries(symbol string, bars []MarketData) (MarketSeries, error) {
	for i := range bars {
		if field, ok := bars[i].invalidField(); ok {
			return MarketSeries{}, errors.Newf(errors.ErrCodeInvalidSeries,
				"bar %d at %s has invalid %s", i, bars[i].Time.Format(time.RFC3339), field)
		}

		if i > 0 && bars[i].Time.Before(bars[i-1].Time) {
			return MarketSeries{}, errors.Newf(errors.ErrCodeInvalidSeries,
				"bar %d at %s is older than bar %d at %s",
				i, bars[i].Time.Format(time.RFC3339), i-1, bars[i-1].Time.Format(time.RFC3339))
		}
	}

	copied := make([]MarketData, len(bars))
	copy(copied, bars)

	for i := range copied {
		if copied[i].Symbol == "" {
			copied[i].Symbol = symbol
		}
	}

	return MarketSeries{symbol: symbol, bars: copied}, nil
}

// invalidField names the first OHLCV value that is NaN, infinite or negative.
func (m MarketData) invalidField() (string, bool) {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"open", m.Open},
		{"high", m.High},
		{"low", m.Low},
		{"close", m.Close},
		{"volume", m.Volume},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			return f.name, true
		}
	}

	return "", false
}

// Symbol returns the instrument the series belongs to.
func (s MarketSeries) Symbol() string {
	return s.symbol
}

// Len returns the number of bars.
func (s MarketSeries) Len() int {
	return len(s.bars)
}

// IsEmpty reports whether the series holds no bars.
func (s MarketSeries) IsEmpty() bool {
	return len(s.bars) == 0
}

// At returns the bar at index i. It panics when i is out of range, like a slice.
func (s MarketSeries) At(i int) MarketData {
	return s.bars[i]
}

// Latest returns the newest bar and false when the series is empty.
func (s MarketSeries) Latest() (MarketData, bool) {
	if len(s.bars) == 0 {
		return MarketData{}, false
	}

	return s.bars[len(s.bars)-1], true
}

// Bars returns a copy of every bar.
func (s MarketSeries) Bars() []MarketData {
	out := make([]MarketData, len(s.bars))
	copy(out, s.bars)

	return out
}

// Prefix returns the view of bars [0, n). n is clamped to [0, Len()].
func (s MarketSeries) Prefix(n int) MarketSeries {
	n = clamp(n, len(s.bars))

	return MarketSeries{symbol: s.symbol, bars: s.bars[:n:n]}
}

// Tail returns the view of the last n bars, or all bars when fewer exist.
func (s MarketSeries) Tail(n int) MarketSeries {
	n = clamp(n, len(s.bars))

	return MarketSeries{symbol: s.symbol, bars: s.bars[len(s.bars)-n:]}
}

// Opens returns the open prices.
func (s MarketSeries) Opens() []float64 {
	return s.column(func(b MarketData) float64 { return b.Open })
}

// Highs returns the high prices.
func (s MarketSeries) Highs() []float64 {
	return s.column(func(b MarketData) float64 { return b.High })
}

// Lows returns the low prices.
func (s MarketSeries) Lows() []float64 {
	return s.column(func(b MarketData) float64 { return b.Low })
}

// Closes returns the close prices.
func (s MarketSeries) Closes() []float64 {
	return s.column(func(b MarketData) float64 { return b.Close })
}

// Volumes returns the traded volumes.
func (s MarketSeries) Volumes() []float64 {
	return s.column(func(b MarketData) float64 { return b.Volume })
}

func (s MarketSeries) column(pick func(MarketData) float64) []float64 {
	out := make([]float64, len(s.bars))
	for i, b := range s.bars {
		out[i] = pick(b)
	}

	return out
}

func clamp(n, upper int) int {
	if n < 0 {
		return 0
	}

	if n > upper {
		return upper
	}

	return n
}
