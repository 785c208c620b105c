// Package backtest replays a strategy over historical bars one step at a
// time and reports the resulting trades and equity.
package backtest

import (
	"context"
	"fmt"

	"github.com/Protrader1988/protrader-terminal-backend/internal/logger"
	"github.com/Protrader1988/protrader-terminal-backend/internal/strategy"
	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// tradeNamespace scopes the deterministic trade ids.
var tradeNamespace = uuid.MustParse("6f1c8d52-3b1e-4c52-9f7d-2a4d8c0e5b11")

// Simulator runs backtests with a fixed configuration. It holds no run state
// and may be shared between goroutines.
type Simulator struct {
	config Config
	log    *logger.Logger
}

// NewSimulator validates cfg and creates a simulator.
func NewSimulator(cfg Config, log *logger.Logger) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Simulator{config: cfg, log: log.Named("backtest")}, nil
}

// Config returns the simulation settings.
func (s *Simulator) Config() Config {
	return s.config
}

// Run steps strat over series. At step i the strategy sees bars [0, i) and
// the bar at i is the first one it has not seen. At most one position is open
// at a time; its exit is realized immediately by replaying the following
// bars, and signals raised before that exit bar has passed are skipped.
func (s *Simulator) Run(
	ctx context.Context,
	strat strategy.Strategy,
	symbol string,
	series types.MarketSeries,
	mctx types.MarketContext,
	callbacks Callbacks,
) (*Result, error) {
	if strat == nil {
		return nil, errors.New(errors.ErrCodeBacktestNoStrategy, "no strategy to backtest")
	}

	if series.IsEmpty() {
		return nil, errors.Newf(errors.ErrCodeBacktestNoData, "no market data for %s", symbol)
	}

	result := newResult(strat, symbol, series, s.config)
	policy := newExitPolicy(s.config.Exit)
	total := max(series.Len()-s.config.MinLookback, 0)
	openUntil := -1

	s.log.Debug("Backtest started",
		zap.String("strategy", strat.ID()),
		zap.String("symbol", symbol),
		zap.Int("bars", series.Len()),
		zap.String("exit_model", string(s.config.Exit.Model)),
	)

	for i := s.config.MinLookback; i < series.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeCanceled, "backtest canceled", err)
		}

		signal := strategy.SafeAnalyze(strat, symbol, series.Prefix(i), mctx)
		result.Steps++

		switch {
		case signal.Fault.IsFault():
			result.FaultedSteps++

			s.log.Debug("Strategy fault treated as hold",
				zap.String("strategy", strat.ID()),
				zap.Int("step", i),
				zap.String("fault", string(signal.Fault.Code)),
				zap.String("message", signal.Fault.Message),
			)
		case !signal.IsActionable():
		case i <= openUntil:
			result.SkippedSignals++
		default:
			trade, exitIndex := s.trade(policy, strat.ID(), symbol, signal, series, i)
			openUntil = exitIndex
			result.record(trade)

			if callbacks.OnTrade != nil {
				if err := (*callbacks.OnTrade)(trade); err != nil {
					return nil, errors.Wrap(errors.ErrCodeCallbackFailed, "trade callback failed", err)
				}
			}
		}

		if callbacks.OnStep != nil {
			if err := (*callbacks.OnStep)(i-s.config.MinLookback+1, total); err != nil {
				return nil, errors.Wrap(errors.ErrCodeCallbackFailed, "step callback failed", err)
			}
		}
	}

	result.finish()

	s.log.Debug("Backtest finished",
		zap.String("strategy", strat.ID()),
		zap.String("symbol", symbol),
		zap.Int("trades", result.Metrics.NumberOfTrades),
		zap.Float64("final_equity", result.FinalEquity),
	)

	return result, nil
}

func (s *Simulator) trade(
	policy exitPolicy,
	strategyID, symbol string,
	signal types.Signal,
	series types.MarketSeries,
	start int,
) (types.Trade, int) {
	out := policy.exit(signal, series, start)
	entryTime := series.At(start - 1).Time

	return types.Trade{
		ID:          uuid.NewSHA1(tradeNamespace, []byte(fmt.Sprintf("%s|%s|%d|%d", strategyID, symbol, entryTime.UnixNano(), start))).String(),
		Strategy:    strategyID,
		Symbol:      symbol,
		EntryTime:   entryTime,
		ExitTime:    series.At(out.index).Time,
		Direction:   signal.Direction,
		EntryPrice:  signal.EntryPrice,
		ExitPrice:   out.price,
		StopLoss:    signal.StopLoss,
		TakeProfit:  signal.TakeProfit,
		PnLPercent:  types.PnLPercent(signal.Direction, signal.EntryPrice, out.price),
		ExitReason:  out.reason,
		HoldingBars: out.index - start + 1,
	}, out.index
}
