package types

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// ExitReason explains how a simulated position was closed.
type ExitReason string

const (
	ExitReasonStopLoss   ExitReason = "stop_loss"
	ExitReasonTakeProfit ExitReason = "take_profit"
	ExitReasonTimeout    ExitReason = "timeout"
	ExitReasonNextClose  ExitReason = "next_close"
	ExitReasonRandom     ExitReason = "random"
	ExitReasonEndOfData  ExitReason = "end_of_data"
)

// MinPnLPercent bounds a single trade's loss so compounded equity stays positive.
const MinPnLPercent = -99.9

// Trade is a closed simulated position.
type Trade struct {
	ID          string     `yaml:"id" json:"id" csv:"id"`
	Strategy    string     `yaml:"strategy" json:"strategy" csv:"strategy"`
	Symbol      string     `yaml:"symbol" json:"symbol" csv:"symbol"`
	EntryTime   time.Time  `yaml:"entry_time" json:"entry_time" csv:"entry_time"`
	ExitTime    time.Time  `yaml:"exit_time" json:"exit_time" csv:"exit_time"`
	Direction   Direction  `yaml:"direction" json:"direction" csv:"direction"`
	EntryPrice  float64    `yaml:"entry_price" json:"entry_price" csv:"entry_price"`
	ExitPrice   float64    `yaml:"exit_price" json:"exit_price" csv:"exit_price"`
	StopLoss    float64    `yaml:"stop_loss" json:"stop_loss" csv:"stop_loss"`
	TakeProfit  float64    `yaml:"take_profit" json:"take_profit" csv:"take_profit"`
	PnLPercent  float64    `yaml:"pnl_percent" json:"pnl_percent" csv:"pnl_percent"`
	ExitReason  ExitReason `yaml:"exit_reason" json:"exit_reason" csv:"exit_reason"`
	HoldingBars int        `yaml:"holding_bars" json:"holding_bars" csv:"holding_bars"`
}

// IsWin reports whether the trade made money.
func (t Trade) IsWin() bool {
	return t.PnLPercent > 0
}

// PnLPercent returns the direction-aware percentage return of a round trip,
// floored at MinPnLPercent. Non-finite prices yield 0.
func PnLPercent(direction Direction, entry, exit float64) float64 {
	if entry <= 0 || !isFinite(entry) || !isFinite(exit) {
		return 0
	}

	e := decimal.NewFromFloat(entry)
	x := decimal.NewFromFloat(exit)

	var diff decimal.Decimal

	switch direction {
	case DirectionBuy:
		diff = x.Sub(e)
	case DirectionSell:
		diff = e.Sub(x)
	default:
		return 0
	}

	pnl := diff.Div(e).Mul(decimal.NewFromInt(100)).InexactFloat64()
	if pnl < MinPnLPercent {
		return MinPnLPercent
	}

	return pnl
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
