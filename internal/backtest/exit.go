package backtest

import (
	"math/rand"

	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
)

// exit is where and why a position closed.
type exit struct {
	price  float64
	index  int
	reason types.ExitReason
}

// exitPolicy realizes the exit of a position opened from signal before bar
// start, replaying bars from start onwards.
type exitPolicy interface {
	exit(signal types.Signal, series types.MarketSeries, start int) exit
}

func newExitPolicy(cfg ExitConfig) exitPolicy {
	switch cfg.Model {
	case ExitModelNextClose:
		return nextClose{}
	case ExitModelRandom:
		return &randomExit{rng: rand.New(rand.NewSource(cfg.Seed.TakeOr(0)))}
	default:
		return stopTarget{maxBars: cfg.MaxHoldingBars}
	}
}

type stopTarget struct {
	maxBars int
}

// exit checks the stop before the target on every bar, so a bar that spans
// both is a loss.
func (p stopTarget) exit(signal types.Signal, series types.MarketSeries, start int) exit {
	end := start + p.maxBars
	reason := types.ExitReasonTimeout

	if end > series.Len() {
		end = series.Len()
		reason = types.ExitReasonEndOfData
	}

	for i := start; i < end; i++ {
		bar := series.At(i)

		switch signal.Direction {
		case types.DirectionBuy:
			if bar.Low <= signal.StopLoss {
				return exit{price: signal.StopLoss, index: i, reason: types.ExitReasonStopLoss}
			}

			if bar.High >= signal.TakeProfit {
				return exit{price: signal.TakeProfit, index: i, reason: types.ExitReasonTakeProfit}
			}
		case types.DirectionSell:
			if bar.High >= signal.StopLoss {
				return exit{price: signal.StopLoss, index: i, reason: types.ExitReasonStopLoss}
			}

			if bar.Low <= signal.TakeProfit {
				return exit{price: signal.TakeProfit, index: i, reason: types.ExitReasonTakeProfit}
			}
		}
	}

	last := end - 1

	return exit{price: series.At(last).Close, index: last, reason: reason}
}

type nextClose struct{}

func (nextClose) exit(_ types.Signal, series types.MarketSeries, start int) exit {
	return exit{price: series.At(start).Close, index: start, reason: types.ExitReasonNextClose}
}

// randomExit is not safe for concurrent use; every run owns one.
type randomExit struct {
	rng *rand.Rand
}

func (p *randomExit) exit(signal types.Signal, _ types.MarketSeries, start int) exit {
	factor := 0.98 + 0.07*p.rng.Float64()

	return exit{price: signal.EntryPrice * factor, index: start, reason: types.ExitReasonRandom}
}
