package types

import (
	"sort"

	"github.com/moznion/go-optional"
)

// StrategyConfig is an immutable set of named strategy parameters.
// Supported value kinds are float64, int, string and []float64.
type StrategyConfig struct {
	values map[string]any
}

// NewStrategyConfig deep-copies values into a new config.
func NewStrategyConfig(values map[string]any) StrategyConfig {
	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[k] = copyValue(v)
	}

	return StrategyConfig{values: copied}
}

// With returns a new config with overrides applied on top of c.
func (c StrategyConfig) With(overrides map[string]any) StrategyConfig {
	merged := make(map[string]any, len(c.values)+len(overrides))
	for k, v := range c.values {
		merged[k] = v
	}

	for k, v := range overrides {
		merged[k] = v
	}

	return NewStrategyConfig(merged)
}

// Get returns the raw value stored under key.
func (c StrategyConfig) Get(key string) optional.Option[any] {
	v, ok := c.values[key]
	if !ok {
		return optional.None[any]()
	}

	return optional.Some(copyValue(v))
}

// Float returns key as a float64, converting ints. fallback is returned when
// the key is missing or not numeric.
func (c StrategyConfig) Float(key string, fallback float64) float64 {
	switch v := c.values[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return fallback
	}
}

// Int returns key as an int, truncating floats.
func (c StrategyConfig) Int(key string, fallback int) int {
	switch v := c.values[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case float32:
		return int(v)
	default:
		return fallback
	}
}

// String returns key as a string.
func (c StrategyConfig) String(key string, fallback string) string {
	if v, ok := c.values[key].(string); ok {
		return v
	}

	return fallback
}

// Floats returns key as a copy of a float slice. Slices decoded from YAML
// arrive as []any and are converted element by element.
func (c StrategyConfig) Floats(key string, fallback []float64) []float64 {
	switch v := c.values[key].(type) {
	case []float64:
		out := make([]float64, len(v))
		copy(out, v)

		return out
	case []any:
		out := make([]float64, 0, len(v))
		for _, item := range v {
			switch n := item.(type) {
			case float64:
				out = append(out, n)
			case int:
				out = append(out, float64(n))
			default:
				return fallback
			}
		}

		return out
	default:
		return fallback
	}
}

// Keys returns the parameter names in sorted order.
func (c StrategyConfig) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Map returns a copy of every parameter.
func (c StrategyConfig) Map() map[string]any {
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = copyValue(v)
	}

	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case []float64:
		out := make([]float64, len(t))
		copy(out, t)

		return out
	case []any:
		out := make([]any, len(t))
		copy(out, t)

		return out
	default:
		return v
	}
}
