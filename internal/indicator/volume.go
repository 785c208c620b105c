package indicator

import (
	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
)

// VolumeRatio compares the latest volume to the mean volume of the last
// period bars, the latest included.
type VolumeRatio struct {
	period int
}

// NewVolumeRatio creates a new VolumeRatio indicator.
func NewVolumeRatio(period int) Indicator {
	return &VolumeRatio{period: period}
}

// Name returns the name of the indicator.
func (v *VolumeRatio) Name() types.IndicatorType {
	return types.IndicatorTypeVolumeRatio
}

// Lookback returns the period.
func (v *VolumeRatio) Lookback() int {
	return v.period
}

// Calculate returns volume_ratio, which is 1 when the mean volume is zero.
func (v *VolumeRatio) Calculate(series types.MarketSeries) (types.Indicators, error) {
	if err := checkPeriod(v.Name(), v.period); err != nil {
		return nil, err
	}

	if err := requireBars(series, v.period, v.Name()); err != nil {
		return nil, err
	}

	volumes := series.Tail(v.period).Volumes()
	avg := mean(volumes)
	ratio := 1.0

	if avg > 0 {
		ratio = last(volumes) / avg
	}

	return checkFinite(v.Name(), types.Indicators{"volume_ratio": ratio})
}

// VWAP is the volume weighted average of the typical price (H+L+C)/3 over
// the last period bars.
type VWAP struct {
	period int
}

// NewVWAP creates a new rolling VWAP indicator.
func NewVWAP(period int) Indicator {
	return &VWAP{period: period}
}

// Name returns the name of the indicator.
func (v *VWAP) Name() types.IndicatorType {
	return types.IndicatorTypeVWAP
}

// Lookback returns the period.
func (v *VWAP) Lookback() int {
	return v.period
}

// Calculate returns vwap. A window without volume has no VWAP and is a fault.
func (v *VWAP) Calculate(series types.MarketSeries) (types.Indicators, error) {
	if err := checkPeriod(v.Name(), v.period); err != nil {
		return nil, err
	}

	if err := requireBars(series, v.period, v.Name()); err != nil {
		return nil, err
	}

	var sumPV, sumV float64

	for _, bar := range series.Tail(v.period).Bars() {
		tp := (bar.High + bar.Low + bar.Close) / 3.0
		sumPV += tp * bar.Volume
		sumV += bar.Volume
	}

	if sumV <= 0 {
		return nil, errors.Newf(errors.ErrCodeIndicatorCalculation, "vwap window of %d bars has no volume", v.period)
	}

	return checkFinite(v.Name(), types.Indicators{"vwap": sumPV / sumV})
}
