// Package strategy defines the trading bot contract and the table-driven
// bots that implement it.
//
// Every bot is a Definition (indicator set, decision rule, risk model and
// sizing model) interpreted by the single Bot type. Evaluations never fail:
// anything that goes wrong while analyzing a series becomes a Hold signal
// whose Fault records what happened.
package strategy

import (
	"fmt"

	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
)

// Strategy is the capability set shared by every bot.
type Strategy interface {
	// ID returns the registry identifier, e.g. "momentum"
	ID() string
	// Name returns the human readable name
	Name() string
	// Description returns a one line summary of the approach
	Description() string
	// Version returns the semantic version of the definition
	Version() string
	// MinLookback returns the number of bars needed before a signal can fire
	MinLookback() int
	// Config returns the immutable parameters of this instance
	Config() types.StrategyConfig

	// CalculateIndicators returns every indicator that has enough data.
	// Only genuine computation faults are returned as errors.
	CalculateIndicators(series types.MarketSeries) (types.Indicators, error)
	// Analyze evaluates the latest bar of series. It never panics and never
	// fails; faults are reported through a Hold signal.
	Analyze(symbol string, series types.MarketSeries, mctx types.MarketContext) types.Signal
	// GetRiskParameters returns stop loss and take profit for an entry.
	// Hold yields (0, 0).
	GetRiskParameters(symbol string, entryPrice float64, direction types.Direction) (stopLoss, takeProfit float64)
	// ValidateSignal applies the confidence floor.
	ValidateSignal(signal types.Signal, mctx types.MarketContext) bool
	// CalculatePositionSize converts a risk budget into a position notional.
	CalculatePositionSize(signal types.Signal, portfolioValue, riskFraction float64) float64
	// BestMarketConditions lists the regimes the bot is designed for.
	BestMarketConditions() []string
}

// SafeAnalyze calls s.Analyze and converts a panic into a panic fault Hold.
// Callers that accept strategies from a Registry use it instead of calling
// Analyze directly.
func SafeAnalyze(s Strategy, symbol string, series types.MarketSeries, mctx types.MarketContext) (signal types.Signal) {
	defer func() {
		if r := recover(); r != nil {
			latest, _ := series.Latest()
			signal = types.NewFaultSignal(types.FaultPanic, fmt.Sprint(r), symbol, s.ID(), latest.Close, latest.Time, nil)
		}
	}()

	return s.Analyze(symbol, series, mctx)
}
