package indicator

import (
	"sort"
	"sync"

	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
)

// IndicatorRegistry manages all available indicators.
type IndicatorRegistry interface {
	RegisterIndicator(indicator Indicator) error
	GetIndicator(name types.IndicatorType) (Indicator, error)
	ListIndicators() []types.IndicatorType
	RemoveIndicator(name types.IndicatorType) error
}

// IndicatorRegistryV1 manages all available indicators.
type IndicatorRegistryV1 struct {
	indicators map[types.IndicatorType]Indicator
	mu         sync.RWMutex
}

// NewIndicatorRegistry creates a new, empty indicator registry.
func NewIndicatorRegistry() IndicatorRegistry {
	return &IndicatorRegistryV1{
		indicators: make(map[types.IndicatorType]Indicator),
		mu:         sync.RWMutex{},
	}
}

// NewDefaultIndicatorRegistry registers one instance of every indicator with
// its conventional parameters.
func NewDefaultIndicatorRegistry() IndicatorRegistry {
	registry := NewIndicatorRegistry()

	for _, ind := range []Indicator{
		NewSMA("sma_20", 20),
		NewEMA("ema_20", 20),
		NewRSI(14),
		NewBollingerBands(20, 2),
		NewMACD(12, 26, 9),
		NewATR(14),
		NewRollingRange(20, 1, "resistance", "support"),
		NewRangePosition(50),
		NewVolumeRatio(20),
		NewPctChange("price_change", 5),
		NewFibonacci(50, DefaultFibonacciLevels(), 0.005, 20),
		NewIntrabarSpread(),
		NewVWAP(20),
		NewEngulfing(),
		NewPrice(),
	} {
		// names are unique by construction
		_ = registry.RegisterIndicator(ind)
	}

	return registry
}

// RegisterIndicator adds an indicator to the registry.
func (r *IndicatorRegistryV1) RegisterIndicator(indicator Indicator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := indicator.Name()
	if _, exists := r.indicators[name]; exists {
		return errors.Newf(errors.ErrCodeIndicatorAlreadyExists, "indicator with name %s already registered", name)
	}

	r.indicators[name] = indicator

	return nil
}

// GetIndicator retrieves an indicator by name.
func (r *IndicatorRegistryV1) GetIndicator(name types.IndicatorType) (Indicator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	indicator, exists := r.indicators[name]
	if !exists {
		return nil, errors.Newf(errors.ErrCodeIndicatorNotFound, "indicator with name %s not found", name)
	}

	return indicator, nil
}

// ListIndicators returns all registered indicator names in sorted order.
func (r *IndicatorRegistryV1) ListIndicators() []types.IndicatorType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]types.IndicatorType, 0, len(r.indicators))
	for name := range r.indicators {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	return names
}

// RemoveIndicator removes an indicator from the registry.
func (r *IndicatorRegistryV1) RemoveIndicator(name types.IndicatorType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.indicators[name]; !exists {
		return errors.Newf(errors.ErrCodeIndicatorNotFound, "indicator with name %s not found", name)
	}

	delete(r.indicators, name)

	return nil
}

// CalculateAll evaluates every registered indicator over series. Indicators
// lacking data are left out; the first genuine fault is returned.
func CalculateAll(registry IndicatorRegistry, series types.MarketSeries) (types.Indicators, error) {
	out := types.Indicators{}

	for _, name := range registry.ListIndicators() {
		ind, err := registry.GetIndicator(name)
		if err != nil {
			return nil, err
		}

		values, err := ind.Calculate(series)
		if err != nil {
			if errors.IsInsufficientDataError(err) {
				continue
			}

			return nil, errors.Wrapf(errors.ErrCodeIndicatorCalculation, err, "indicator %s failed", name)
		}

		for k, v := range values {
			out[k] = v
		}
	}

	return out, nil
}
