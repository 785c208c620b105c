package types

import (
	"sort"

	"github.com/moznion/go-optional"
)

// Keys the engine understands in a MarketContext.
const (
	ContextNewsSentiment   = "news_sentiment"
	ContextPriceChangePct  = "price_change_pct"
	ContextVolumeChangePct = "volume_change_pct"
	ContextExchangeSpread  = "exchange_spread"
)

// MarketContext carries externally computed scalars for one evaluation.
// The zero value is an empty context.
type MarketContext struct {
	values map[string]float64
}

// NewMarketContext copies values into a new context.
func NewMarketContext(values map[string]float64) MarketContext {
	copied := make(map[string]float64, len(values))
	for k, v := range values {
		copied[k] = v
	}

	return MarketContext{values: copied}
}

// Value returns the scalar stored under key.
func (m MarketContext) Value(key string) optional.Option[float64] {
	v, ok := m.values[key]
	if !ok {
		return optional.None[float64]()
	}

	return optional.Some(v)
}

// Keys returns the stored keys in sorted order.
func (m MarketContext) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Len returns the number of stored scalars.
func (m MarketContext) Len() int {
	return len(m.values)
}
