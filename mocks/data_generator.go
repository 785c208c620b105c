package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
)

// DataGenerator generates reproducible market data for tests.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how market data is generated.
type GeneratorConfig struct {
	// Symbol is the trading symbol (e.g., "BTCUSDT")
	Symbol string
	// StartTime is the beginning of the data series
	StartTime time.Time
	// Interval is the duration between each bar
	Interval time.Duration
	// Count is the number of data points to generate
	Count int
	// InitialPrice is the starting price
	InitialPrice float64
	// Volatility controls price movement (0.01 = 1% per bar)
	Volatility float64
	// Trend is the total drift spread across the series (-0.1 to 0.1)
	Trend float64
	// VolumeBase is the average volume per bar
	VolumeBase float64
	// VolumeVariance is the variance in volume (0.0 to 1.0)
	VolumeVariance float64
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Symbol:         "TEST",
		StartTime:      time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		Interval:       time.Minute,
		Count:          500,
		InitialPrice:   100.0,
		Volatility:     0.01,
		Trend:          0.0,
		VolumeBase:     10000,
		VolumeVariance: 0.3,
	}
}

// Generate creates bars following a geometric Brownian motion.
func (g *DataGenerator) Generate(config GeneratorConfig) []types.MarketData {
	data := make([]types.MarketData, config.Count)
	currentPrice := config.InitialPrice
	currentTime := config.StartTime

	for i := 0; i < config.Count; i++ {
		open := currentPrice

		// Box-Muller
		u1 := 1 - g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		drift := config.Trend / float64(config.Count)

		close := open * (1 + config.Volatility*z + drift)
		if close <= 0 {
			close = open * 0.99
		}

		high := math.Max(open, close) + math.Abs(g.rng.Float64()*config.Volatility*open*0.5)
		low := math.Min(open, close) - math.Abs(g.rng.Float64()*config.Volatility*open*0.5)

		if low <= 0 {
			low = math.Min(open, close) * 0.99
		}

		volume := config.VolumeBase * (1.0 + (g.rng.Float64()*2-1)*config.VolumeVariance)
		if volume < 0 {
			volume = config.VolumeBase * 0.1
		}

		data[i] = types.MarketData{
			Symbol: config.Symbol,
			Time:   currentTime,
			Open:   roundToDecimals(open, 4),
			High:   roundToDecimals(high, 4),
			Low:    roundToDecimals(low, 4),
			Close:  roundToDecimals(close, 4),
			Volume: roundToDecimals(volume, 2),
		}

		currentPrice = close
		currentTime = currentTime.Add(config.Interval)
	}

	return data
}

// GenerateSeries is Generate wrapped in a MarketSeries.
func (g *DataGenerator) GenerateSeries(config GeneratorConfig) types.MarketSeries {
	return mustSeries(config.Symbol, g.Generate(config))
}

// GeometricSeries returns count bars whose close grows by rate per bar
// starting at start: close[n] = start * rate^n. Each bar opens at the
// previous close, its high is its close and its low is its open, so every bar
// breaks the previous highs. Every spikeEvery-th bar carries spikeFactor
// times the base volume; a spikeEvery of 0 disables spikes.
func GeometricSeries(symbol string, count int, start, rate float64, spikeEvery int, spikeFactor float64) types.MarketSeries {
	bars := make([]types.MarketData, count)
	t := DefaultConfig().StartTime

	for i := 0; i < count; i++ {
		c := start * math.Pow(rate, float64(i))
		volume := 1000.0

		if spikeEvery > 0 && i > 0 && i%spikeEvery == 0 {
			volume *= spikeFactor
		}

		bars[i] = types.MarketData{
			Symbol: symbol,
			Time:   t.Add(time.Duration(i) * time.Minute),
			Open:   c / rate,
			High:   c,
			Low:    c / rate,
			Close:  c,
			Volume: volume,
		}
	}

	return mustSeries(symbol, bars)
}

// FlatSeries returns count identical bars at price with constant volume.
func FlatSeries(symbol string, count int, price float64) types.MarketSeries {
	bars := make([]types.MarketData, count)
	t := DefaultConfig().StartTime

	for i := range bars {
		bars[i] = types.MarketData{
			Symbol: symbol,
			Time:   t.Add(time.Duration(i) * time.Minute),
			Open:   price,
			High:   price,
			Low:    price,
			Close:  price,
			Volume: 1000,
		}
	}

	return mustSeries(symbol, bars)
}

// SeriesFromCloses builds bars around the given closes: open equals the
// previous close, high and low sit 1% outside the body.
func SeriesFromCloses(symbol string, closes ...float64) types.MarketSeries {
	bars := make([]types.MarketData, len(closes))
	t := DefaultConfig().StartTime

	for i, c := range closes {
		open := c
		if i > 0 {
			open = closes[i-1]
		}

		bars[i] = types.MarketData{
			Symbol: symbol,
			Time:   t.Add(time.Duration(i) * time.Minute),
			Open:   open,
			High:   math.Max(open, c) * 1.01,
			Low:    math.Min(open, c) * 0.99,
			Close:  c,
			Volume: 1000,
		}
	}

	return mustSeries(symbol, bars)
}

func mustSeries(symbol string, bars []types.MarketData) types.MarketSeries {
	series, err := types.NewMarketSeries(symbol, bars)
	if err != nil {
		panic(err)
	}

	return series
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))

	return math.Round(val*pow) / pow
}
