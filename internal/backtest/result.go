package backtest

import (
	"math"
	"time"

	"github.com/Protrader1988/protrader-terminal-backend/internal/strategy"
	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Result is the full outcome of one run.
type Result struct {
	Strategy types.StrategyInfo
	Symbol   string
	Config   Config

	Trades  []types.Trade
	Equity  *types.EquityCurve
	Metrics types.TradeResult

	InitialCapital float64
	FinalEquity    float64
	TotalReturn    float64
	TotalReturnPct float64
	BuyAndHoldPct  float64

	Bars           int
	Steps          int
	FaultedSteps   int
	SkippedSignals int
}

func newResult(strat strategy.Strategy, symbol string, series types.MarketSeries, cfg Config) *Result {
	return &Result{
		Strategy: types.StrategyInfo{
			ID:      strat.ID(),
			Version: strat.Version(),
			Name:    strat.Name(),
		},
		Symbol:         symbol,
		Config:         cfg,
		Trades:         []types.Trade{},
		Equity:         types.NewEquityCurve(cfg.InitialCapital),
		InitialCapital: cfg.InitialCapital,
		FinalEquity:    cfg.InitialCapital,
		Bars:           series.Len(),
		BuyAndHoldPct:  buyAndHold(series.At(0).Close, series.At(series.Len()-1).Close),
	}
}

func buyAndHold(first, last float64) float64 {
	if first <= 0 || math.IsNaN(first) || math.IsInf(first, 0) || math.IsNaN(last) || math.IsInf(last, 0) {
		return 0
	}

	return decimal.NewFromFloat(last).Sub(decimal.NewFromFloat(first)).
		Div(decimal.NewFromFloat(first)).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

func (r *Result) record(trade types.Trade) {
	r.Trades = append(r.Trades, trade)
	r.FinalEquity = r.Equity.Compound(trade.PnLPercent)
}

func (r *Result) finish() {
	grossProfit := decimal.Zero
	grossLoss := decimal.Zero
	sum := decimal.Zero
	wins := 0

	for _, t := range r.Trades {
		pnl := decimal.NewFromFloat(t.PnLPercent)
		sum = sum.Add(pnl)

		if t.IsWin() {
			wins++
			grossProfit = grossProfit.Add(pnl)
		} else {
			grossLoss = grossLoss.Add(pnl.Abs())
		}
	}

	metrics := types.TradeResult{
		NumberOfTrades:        len(r.Trades),
		NumberOfWinningTrades: wins,
		NumberOfLosingTrades:  len(r.Trades) - wins,
		MaxDrawdownPct:        r.Equity.MaxDrawdownPct(),
	}

	if len(r.Trades) > 0 {
		n := decimal.NewFromInt(int64(len(r.Trades)))
		metrics.WinRate = decimal.NewFromInt(int64(wins)).Div(n).InexactFloat64()
		metrics.AverageTradePct = sum.Div(n).InexactFloat64()
	}

	if grossLoss.IsPositive() {
		metrics.ProfitFactor = grossProfit.Div(grossLoss).InexactFloat64()
	}

	r.Metrics = metrics
	r.FinalEquity = r.Equity.Final()

	initial := decimal.NewFromFloat(r.InitialCapital)
	ret := decimal.NewFromFloat(r.FinalEquity).Sub(initial).Div(initial)
	r.TotalReturn = ret.InexactFloat64()
	r.TotalReturnPct = ret.Mul(decimal.NewFromInt(100)).InexactFloat64()
}

// Report returns the transport view: the last TradeWindow trades and the
// last EquityWindow equity samples, stamped with a new run id.
func (r *Result) Report() types.BacktestReport {
	return types.BacktestReport{
		ID:             uuid.New().String(),
		Timestamp:      time.Now().UTC(),
		Symbol:         r.Symbol,
		Strategy:       r.Strategy,
		TradeResult:    r.Metrics,
		InitialCapital: r.InitialCapital,
		FinalEquity:    r.FinalEquity,
		TotalReturn:    r.TotalReturn,
		TotalReturnPct: r.TotalReturnPct,
		BuyAndHoldPct:  r.BuyAndHoldPct,
		Bars:           r.Bars,
		FaultedSteps:   r.FaultedSteps,
		SkippedSignals: r.SkippedSignals,
		Trades:         lastN(r.Trades, r.Config.TradeWindow),
		EquityCurve:    lastN(r.Equity.Values(), r.Config.EquityWindow),
	}
}

func lastN[T any](xs []T, n int) []T {
	if n > len(xs) {
		n = len(xs)
	}

	out := make([]T, n)
	copy(out, xs[len(xs)-n:])

	return out
}

// WriteReport writes reports as YAML to path.
func WriteReport(path string, reports ...types.BacktestReport) error {
	if err := types.WriteBacktestReports(path, reports); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to write backtest report", err)
	}

	return nil
}
