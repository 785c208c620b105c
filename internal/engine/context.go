// Package engine wires strategies, signal ranking and backtesting into one
// explicitly constructed context.
package engine

import (
	"context"
	"sort"
	"time"

	"github.com/Protrader1988/protrader-terminal-backend/internal/backtest"
	"github.com/Protrader1988/protrader-terminal-backend/internal/logger"
	"github.com/Protrader1988/protrader-terminal-backend/internal/metrics"
	"github.com/Protrader1988/protrader-terminal-backend/internal/signal"
	"github.com/Protrader1988/protrader-terminal-backend/internal/strategy"
	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Context owns everything an evaluation needs. It is safe for concurrent use.
type Context struct {
	config    Config
	registry  *strategy.Registry
	simulator *backtest.Simulator
	log       *logger.Logger
	recorder  *metrics.Recorder
}

// Option customizes a Context.
type Option func(*Context)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *logger.Logger) Option {
	return func(c *Context) { c.log = log }
}

// WithRecorder sets the metrics recorder. The default has a private registry.
func WithRecorder(recorder *metrics.Recorder) Option {
	return func(c *Context) { c.recorder = recorder }
}

// WithRegistry replaces the built-in strategies.
func WithRegistry(registry *strategy.Registry) Option {
	return func(c *Context) { c.registry = registry }
}

// New validates cfg and builds a context.
func New(cfg Config, opts ...Option) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Context{config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.log == nil {
		c.log = logger.NewNopLogger()
	}

	if c.recorder == nil {
		c.recorder = metrics.NewRecorder()
	}

	if c.registry == nil {
		registry, err := strategy.NewDefaultRegistry(cfg.Strategies)
		if err != nil {
			return nil, err
		}

		c.registry = registry
	}

	simulator, err := backtest.NewSimulator(cfg.Config, c.log)
	if err != nil {
		return nil, err
	}

	c.simulator = simulator

	c.log.Debug("Engine context created",
		zap.Strings("strategies", c.registry.List()),
		zap.Int("workers", cfg.Workers),
	)

	return c, nil
}

// Config returns the engine configuration.
func (c *Context) Config() Config {
	return c.config
}

// Recorder returns the metrics recorder.
func (c *Context) Recorder() *metrics.Recorder {
	return c.recorder
}

// Strategy returns the strategy registered under id.
func (c *Context) Strategy(id string) (strategy.Strategy, error) {
	return c.registry.Get(id)
}

// Strategies returns every strategy ordered by id.
func (c *Context) Strategies() []strategy.Strategy {
	return c.registry.All()
}

// Analyze evaluates one strategy on the latest bar of series. Only an unknown
// id is reported as an error; evaluation faults come back as Hold signals.
func (c *Context) Analyze(id, symbol string, series types.MarketSeries, mctx types.MarketContext) (types.Signal, error) {
	s, err := c.registry.Get(id)
	if err != nil {
		return types.Signal{}, err
	}

	return c.evaluate(s, symbol, series, mctx), nil
}

func (c *Context) evaluate(s strategy.Strategy, symbol string, series types.MarketSeries, mctx types.MarketContext) types.Signal {
	start := time.Now()
	sig := strategy.SafeAnalyze(s, symbol, series, mctx)
	c.recorder.ObserveSignal(sig, time.Since(start))

	if sig.Fault.IsFault() {
		c.log.Warn("Strategy evaluation faulted",
			zap.String("strategy", s.ID()),
			zap.String("symbol", symbol),
			zap.String("fault", string(sig.Fault.Code)),
			zap.String("message", sig.Fault.Message),
		)
	}

	return sig
}

// GenerateSignals evaluates every strategy on series concurrently and returns
// the accepted signals, sized and ranked.
func (c *Context) GenerateSignals(ctx context.Context, symbol string, series types.MarketSeries, mctx types.MarketContext) (*signal.Catalog, error) {
	if series.IsEmpty() {
		return nil, errors.Newf(errors.ErrCodeInvalidSeries, "no bars for %s", symbol)
	}

	strategies := c.registry.All()
	candidates := make([]signal.Candidate, len(strategies))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.config.Workers)

	for i, s := range strategies {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Wrap(errors.ErrCodeCanceled, "signal generation canceled", err)
			}

			candidates[i] = signal.Candidate{Strategy: s, Signal: c.evaluate(s, symbol, series, mctx)}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	catalog := signal.NewCatalog(candidates, mctx, signal.Sizing{
		PortfolioValue: c.config.PortfolioValue,
		RiskFraction:   c.config.RiskFraction,
	})

	c.log.Debug("Signals generated",
		zap.String("symbol", symbol),
		zap.Int("accepted", catalog.Len()),
		zap.Int("rejected", catalog.Rejected),
	)

	return catalog, nil
}

// Backtest runs one strategy over series.
func (c *Context) Backtest(ctx context.Context, id, symbol string, series types.MarketSeries, mctx types.MarketContext) (*backtest.Result, error) {
	s, err := c.registry.Get(id)
	if err != nil {
		return nil, err
	}

	return c.backtest(ctx, s, symbol, series, mctx, backtest.Callbacks{})
}

func (c *Context) backtest(
	ctx context.Context,
	s strategy.Strategy,
	symbol string,
	series types.MarketSeries,
	mctx types.MarketContext,
	callbacks backtest.Callbacks,
) (*backtest.Result, error) {
	result, err := c.simulator.Run(ctx, s, symbol, series, mctx, callbacks)
	if err != nil {
		return nil, err
	}

	c.recorder.ObserveBacktest(s.ID(), symbol, result.Trades)

	if result.FaultedSteps > 0 {
		c.log.Warn("Backtest steps faulted",
			zap.String("strategy", s.ID()),
			zap.String("symbol", symbol),
			zap.Int("faulted_steps", result.FaultedSteps),
			zap.Int("steps", result.Steps),
		)
	}

	return result, nil
}

// OnRunStartCallback is called before a (strategy, symbol) run begins.
type OnRunStartCallback func(runID string, strategyID string, symbol string, totalBars int) error

// OnRunEndCallback is called after a run ends, successfully or not.
type OnRunEndCallback func(runID string, strategyID string, symbol string, result *backtest.Result, err error)

// BatchCallbacks holds the batch lifecycle callbacks. Nil fields are skipped.
type BatchCallbacks struct {
	OnRunStart *OnRunStartCallback
	OnRunEnd   *OnRunEndCallback
	OnStep     *backtest.OnStepCallback
}

// Run is one finished (strategy, symbol) backtest.
type Run struct {
	ID         string
	StrategyID string
	Symbol     string
	Result     *backtest.Result
}

// BacktestBatch backtests every (strategy, symbol) pair concurrently. An empty
// ids slice selects every strategy. Runs are returned ordered by strategy id
// then symbol. The first failure cancels the remaining runs.
func (c *Context) BacktestBatch(
	ctx context.Context,
	ids []string,
	seriesBySymbol map[string]types.MarketSeries,
	mctx types.MarketContext,
	callbacks BatchCallbacks,
) ([]Run, error) {
	if len(seriesBySymbol) == 0 {
		return nil, errors.New(errors.ErrCodeBacktestNoData, "no market data to backtest")
	}

	strategies, err := c.selectStrategies(ids)
	if err != nil {
		return nil, err
	}

	symbols := make([]string, 0, len(seriesBySymbol))
	for symbol := range seriesBySymbol {
		symbols = append(symbols, symbol)
	}

	sort.Strings(symbols)

	runs := make([]Run, 0, len(strategies)*len(symbols))
	for _, s := range strategies {
		for _, symbol := range symbols {
			runs = append(runs, Run{ID: uuid.New().String(), StrategyID: s.ID(), Symbol: symbol})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.config.Workers)

	for i := range runs {
		s := strategies[i/len(symbols)]
		run := &runs[i]

		g.Go(func() error {
			series := seriesBySymbol[run.Symbol]

			if callbacks.OnRunStart != nil {
				if err := (*callbacks.OnRunStart)(run.ID, run.StrategyID, run.Symbol, series.Len()); err != nil {
					return errors.Wrap(errors.ErrCodeCallbackFailed, "run start callback failed", err)
				}
			}

			result, err := c.backtest(gctx, s, run.Symbol, series, mctx, backtest.Callbacks{OnStep: callbacks.OnStep})

			if callbacks.OnRunEnd != nil {
				(*callbacks.OnRunEnd)(run.ID, run.StrategyID, run.Symbol, result, err)
			}

			if err != nil {
				return err
			}

			run.Result = result

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.log.Error("Backtest batch failed", zap.Error(err))

		return nil, err
	}

	return runs, nil
}

func (c *Context) selectStrategies(ids []string) ([]strategy.Strategy, error) {
	if len(ids) == 0 {
		return c.registry.All(), nil
	}

	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)

	out := make([]strategy.Strategy, 0, len(sorted))

	for i, id := range sorted {
		if i > 0 && sorted[i-1] == id {
			continue
		}

		s, err := c.registry.Get(id)
		if err != nil {
			return nil, err
		}

		out = append(out, s)
	}

	return out, nil
}
