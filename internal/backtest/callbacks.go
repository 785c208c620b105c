package backtest

import "github.com/Protrader1988/protrader-terminal-backend/internal/types"

// Lifecycle callback types for a simulation run.
// Callbacks with an error return abort the run when they fail.

// OnStepCallback is called after each evaluated bar.
type OnStepCallback func(current int, total int) error

// OnTradeCallback is called for every closed trade.
type OnTradeCallback func(trade types.Trade) error

// Callbacks holds the run callbacks. Nil fields are skipped.
type Callbacks struct {
	OnStep  *OnStepCallback
	OnTrade *OnTradeCallback
}
