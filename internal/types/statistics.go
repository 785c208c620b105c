package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type TradeResult struct {
	// Count of all trades.
	NumberOfTrades int `yaml:"number_of_trades" json:"number_of_trades"`
	// Count of winning trades that has positive pnl.
	NumberOfWinningTrades int `yaml:"number_of_winning_trades" json:"number_of_winning_trades"`
	// Count of trades with zero or negative pnl.
	NumberOfLosingTrades int `yaml:"number_of_losing_trades" json:"number_of_losing_trades"`
	// Win rate as a fraction in [0, 1]. Zero when there are no trades.
	WinRate float64 `yaml:"win_rate" json:"win_rate"`
	// Maximum drawdown of the equity curve in percent.
	MaxDrawdownPct float64 `yaml:"max_drawdown_pct" json:"max_drawdown_pct"`
	// Gross profit over gross loss. Zero when there are no losing trades.
	ProfitFactor float64 `yaml:"profit_factor" json:"profit_factor"`
	// Mean pnl per trade in percent.
	AverageTradePct float64 `yaml:"average_trade_pct" json:"average_trade_pct"`
}

// StrategyInfo contains metadata about the strategy that generated stats.
type StrategyInfo struct {
	// ID is the registry identifier, e.g. "momentum"
	ID string `yaml:"id" json:"id"`
	// Version is the semantic version of the strategy definition
	Version string `yaml:"version" json:"version"`
	// Name is the human-readable name of the strategy
	Name string `yaml:"name" json:"name"`
}

// BacktestReport is the transport view of a backtest run.
type BacktestReport struct {
	// ID is the unique identifier for this backtest run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when this backtest run was executed.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	// Symbol of the trading pair.
	Symbol string `yaml:"symbol" json:"symbol"`
	// Strategy contains metadata about the strategy that generated these stats.
	Strategy StrategyInfo `yaml:"strategy" json:"strategy"`
	// Result of all trades, computed over the full history.
	TradeResult TradeResult `yaml:"trade_result" json:"trade_result"`
	// Starting capital.
	InitialCapital float64 `yaml:"initial_capital" json:"initial_capital"`
	// Equity after the last trade.
	FinalEquity float64 `yaml:"final_equity" json:"final_equity"`
	// (final - initial) / initial.
	TotalReturn float64 `yaml:"total_return" json:"total_return"`
	// TotalReturn in percent.
	TotalReturnPct float64 `yaml:"total_return_pct" json:"total_return_pct"`
	// Buy and hold return over the replayed bars in percent.
	BuyAndHoldPct float64 `yaml:"buy_and_hold_pct" json:"buy_and_hold_pct"`
	// Bars replayed.
	Bars int `yaml:"bars" json:"bars"`
	// Steps where the strategy faulted and was treated as Hold.
	FaultedSteps int `yaml:"faulted_steps" json:"faulted_steps"`
	// Actionable signals ignored because a position was open.
	SkippedSignals int `yaml:"skipped_signals" json:"skipped_signals"`
	// Most recent trades, oldest first.
	Trades []Trade `yaml:"trades" json:"trades"`
	// Most recent equity samples, oldest first.
	EquityCurve []float64 `yaml:"equity_curve" json:"equity_curve"`
}

// WriteBacktestReports marshals reports to YAML and writes them to path.
func WriteBacktestReports(path string, reports []BacktestReport) error {
	data, err := yaml.Marshal(reports)
	if err != nil {
		return fmt.Errorf("failed to marshal backtest reports to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write backtest reports to file: %w", err)
	}

	return nil
}
