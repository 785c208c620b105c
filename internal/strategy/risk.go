package strategy

import (
	"math"

	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
)

// Config keys read by the risk and sizing models.
const (
	KeyStopPct        = "stop_pct"
	KeyTargetPct      = "target_pct"
	KeyGridSpacing    = "grid_spacing"
	KeyMaxPositionPct = "max_position_pct"
	KeyBaseSize       = "base_size"
)

// RiskModel places stop loss and take profit around an entry.
type RiskModel interface {
	Levels(entry float64, direction types.Direction, cfg types.StrategyConfig) (stopLoss, takeProfit float64)
}

// SizingModel turns a signal into a position notional.
type SizingModel interface {
	Size(signal types.Signal, portfolioValue, riskFraction float64, cfg types.StrategyConfig) float64
}

// PercentStops puts the stop stop_pct and the target target_pct away from entry.
type PercentStops struct{}

// Levels implements RiskModel.
func (PercentStops) Levels(entry float64, direction types.Direction, cfg types.StrategyConfig) (float64, float64) {
	stopPct := cfg.Float(KeyStopPct, 0)
	targetPct := cfg.Float(KeyTargetPct, 0)

	switch direction {
	case types.DirectionBuy:
		return entry * (1 - stopPct), entry * (1 + targetPct)
	case types.DirectionSell:
		return entry * (1 + stopPct), entry * (1 - targetPct)
	default:
		return 0, 0
	}
}

// GridSpacing puts the stop two grid steps and the target one grid step away.
type GridSpacing struct{}

// Levels implements RiskModel.
func (GridSpacing) Levels(entry float64, direction types.Direction, cfg types.StrategyConfig) (float64, float64) {
	spacing := cfg.Float(KeyGridSpacing, 0)

	switch direction {
	case types.DirectionBuy:
		return entry * (1 - 2*spacing), entry * (1 + spacing)
	case types.DirectionSell:
		return entry * (1 + 2*spacing), entry * (1 - spacing)
	default:
		return 0, 0
	}
}

// RiskBudget sizes so that hitting the stop loses portfolioValue·riskFraction,
// capped at max_position_pct of the portfolio.
type RiskBudget struct{}

// Size implements SizingModel.
func (RiskBudget) Size(signal types.Signal, portfolioValue, riskFraction float64, cfg types.StrategyConfig) float64 {
	if !sizable(signal, portfolioValue) || riskFraction <= 0 {
		return 0
	}

	priceRisk := math.Abs(signal.EntryPrice - signal.StopLoss)
	shares := portfolioValue * riskFraction / priceRisk

	return math.Max(0, math.Min(shares*signal.EntryPrice, portfolioValue*cfg.Float(KeyMaxPositionPct, 0)))
}

// FixedNotional always trades base_size, capped at max_position_pct of the
// portfolio.
type FixedNotional struct{}

// Size implements SizingModel.
func (FixedNotional) Size(signal types.Signal, portfolioValue, _ float64, cfg types.StrategyConfig) float64 {
	if !sizable(signal, portfolioValue) {
		return 0
	}

	return math.Max(0, math.Min(cfg.Float(KeyBaseSize, 0), portfolioValue*cfg.Float(KeyMaxPositionPct, 0)))
}

// sizable rules out the cases where every model returns 0.
func sizable(signal types.Signal, portfolioValue float64) bool {
	if !signal.IsActionable() || portfolioValue <= 0 || signal.EntryPrice <= 0 {
		return false
	}

	return signal.EntryPrice != signal.StopLoss
}
