package backtest

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Protrader1988/protrader-terminal-backend/internal/logger"
	"github.com/Protrader1988/protrader-terminal-backend/internal/strategy"
	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
	"github.com/Protrader1988/protrader-terminal-backend/mocks"
	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gopkg.in/yaml.v3"
)

type SimulatorTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller
}

func TestSimulatorSuite(t *testing.T) {
	suite.Run(t, new(SimulatorTestSuite))
}

func (suite *SimulatorTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
}

func (suite *SimulatorTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *SimulatorTestSuite) simulator(mutate func(*Config)) *Simulator {
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}

	sim, err := NewSimulator(cfg, logger.NewNopLogger())
	suite.Require().NoError(err)

	return sim
}

// scripted returns a strategy that buys when the visible prefix length is in
// buyAt and holds otherwise. Stops sit 3% and targets 5% away from entry.
func (suite *SimulatorTestSuite) scripted(direction types.Direction, buyAt ...int) *mocks.MockStrategy {
	s := mocks.NewMockStrategy(suite.ctrl)
	s.EXPECT().ID().Return("scripted").AnyTimes()
	s.EXPECT().Name().Return("Scripted").AnyTimes()
	s.EXPECT().Version().Return("1.0.0").AnyTimes()

	fire := map[int]bool{}
	for _, n := range buyAt {
		fire[n] = true
	}

	s.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(symbol string, series types.MarketSeries, _ types.MarketContext) types.Signal {
			latest, _ := series.Latest()
			if !fire[series.Len()] {
				return types.NewHoldSignal(symbol, "scripted", latest.Close, latest.Time, "", nil)
			}

			entry := latest.Close
			if direction == types.DirectionSell {
				return types.NewSignal(symbol, "scripted", direction, 0.8, entry, entry*1.03, entry*0.95, latest.Time, "", nil)
			}

			return types.NewSignal(symbol, "scripted", direction, 0.8, entry, entry*0.97, entry*1.05, latest.Time, "", nil)
		},
	).AnyTimes()

	return s
}

func (suite *SimulatorTestSuite) TestStopTargetExits() {
	sim := suite.simulator(func(c *Config) { c.MinLookback = 2 })
	series := mocks.SeriesFromCloses("T", 100, 100, 101, 106, 90)

	result, err := sim.Run(context.Background(), suite.scripted(types.DirectionBuy, 2, 3, 4), "T", series, types.MarketContext{}, Callbacks{})
	suite.Require().NoError(err)

	suite.Require().Len(result.Trades, 2)
	suite.Equal(1, result.SkippedSignals)
	suite.Equal(3, result.Steps)

	first := result.Trades[0]
	suite.Equal(types.ExitReasonTakeProfit, first.ExitReason)
	suite.InDelta(105.0, first.ExitPrice, 1e-9)
	suite.InDelta(5.0, first.PnLPercent, 1e-9)
	suite.Equal(2, first.HoldingBars)
	suite.Equal(series.At(1).Time, first.EntryTime)
	suite.Equal(series.At(3).Time, first.ExitTime)

	second := result.Trades[1]
	suite.Equal(types.ExitReasonStopLoss, second.ExitReason)
	suite.InDelta(106*0.97, second.ExitPrice, 1e-9)
	suite.InDelta(-3.0, second.PnLPercent, 1e-9)

	suite.InDelta(10000*1.05*0.97, result.FinalEquity, 1e-6)
	suite.InDelta(0.5, result.Metrics.WinRate, 1e-12)
	suite.Equal(1, result.Metrics.NumberOfWinningTrades)
	suite.Equal(1, result.Metrics.NumberOfLosingTrades)
	suite.InDelta(5.0/3.0, result.Metrics.ProfitFactor, 1e-9)
	suite.InDelta(1.0, result.Metrics.AverageTradePct, 1e-9)
	suite.InDelta(3.0, result.Metrics.MaxDrawdownPct, 1e-9)
	suite.InDelta(-10.0, result.BuyAndHoldPct, 1e-9)
	suite.InDelta(result.TotalReturn*100, result.TotalReturnPct, 1e-9)
}

func (suite *SimulatorTestSuite) TestSellIsMirrored() {
	sim := suite.simulator(func(c *Config) { c.MinLookback = 2 })
	series := mocks.SeriesFromCloses("T", 100, 100, 94)

	result, err := sim.Run(context.Background(), suite.scripted(types.DirectionSell, 2), "T", series, types.MarketContext{}, Callbacks{})
	suite.Require().NoError(err)
	suite.Require().Len(result.Trades, 1)

	trade := result.Trades[0]
	suite.Equal(types.ExitReasonTakeProfit, trade.ExitReason)
	suite.InDelta(95.0, trade.ExitPrice, 1e-9)
	suite.InDelta(5.0, trade.PnLPercent, 1e-9)
}

func (suite *SimulatorTestSuite) TestNextCloseExits() {
	sim := suite.simulator(func(c *Config) {
		c.MinLookback = 2
		c.Exit.Model = ExitModelNextClose
	})
	series := mocks.SeriesFromCloses("T", 100, 100, 101, 106, 90)

	result, err := sim.Run(context.Background(), suite.scripted(types.DirectionBuy, 2, 3, 4), "T", series, types.MarketContext{}, Callbacks{})
	suite.Require().NoError(err)
	suite.Require().Len(result.Trades, 3)
	suite.Zero(result.SkippedSignals)

	suite.InDelta(1.0, result.Trades[0].PnLPercent, 1e-9)
	suite.InDelta((106.0-101.0)/101.0*100, result.Trades[1].PnLPercent, 1e-9)
	suite.InDelta((90.0-106.0)/106.0*100, result.Trades[2].PnLPercent, 1e-9)

	for _, trade := range result.Trades {
		suite.Equal(types.ExitReasonNextClose, trade.ExitReason)
		suite.Equal(1, trade.HoldingBars)
	}
}

func (suite *SimulatorTestSuite) TestTimeoutAndEndOfData() {
	sim := suite.simulator(func(c *Config) {
		c.MinLookback = 2
		c.Exit.MaxHoldingBars = 3
	})
	series := mocks.FlatSeries("T", 10, 100)

	result, err := sim.Run(context.Background(), suite.scripted(types.DirectionBuy, 2, 9), "T", series, types.MarketContext{}, Callbacks{})
	suite.Require().NoError(err)
	suite.Require().Len(result.Trades, 2)

	suite.Equal(types.ExitReasonTimeout, result.Trades[0].ExitReason)
	suite.Equal(3, result.Trades[0].HoldingBars)
	suite.Equal(types.ExitReasonEndOfData, result.Trades[1].ExitReason)
	suite.Equal(1, result.Trades[1].HoldingBars)

	suite.Zero(result.Metrics.NumberOfWinningTrades)
	suite.Equal(2, result.Metrics.NumberOfLosingTrades)
	suite.Zero(result.Metrics.ProfitFactor)
}

func (suite *SimulatorTestSuite) TestNoTrades() {
	sim := suite.simulator(nil)
	series := mocks.FlatSeries("T", 40, 100)

	result, err := sim.Run(context.Background(), suite.scripted(types.DirectionBuy), "T", series, types.MarketContext{}, Callbacks{})
	suite.Require().NoError(err)

	suite.Empty(result.Trades)
	suite.Zero(result.Metrics.WinRate)
	suite.Zero(result.TotalReturn)
	suite.InDelta(10000.0, result.FinalEquity, 1e-9)
	suite.Equal(1, result.Equity.Len())
	suite.Equal(20, result.Steps)
}

func (suite *SimulatorTestSuite) TestSeriesShorterThanLookback() {
	sim := suite.simulator(nil)

	result, err := sim.Run(context.Background(), suite.scripted(types.DirectionBuy, 3), "T", mocks.FlatSeries("T", 5, 100), types.MarketContext{}, Callbacks{})
	suite.Require().NoError(err)
	suite.Zero(result.Steps)
	suite.Empty(result.Trades)
}

func (suite *SimulatorTestSuite) TestRejectsMissingInputs() {
	sim := suite.simulator(nil)

	_, err := sim.Run(context.Background(), nil, "T", mocks.FlatSeries("T", 5, 100), types.MarketContext{}, Callbacks{})
	suite.True(errors.HasCode(err, errors.ErrCodeBacktestNoStrategy))

	_, err = sim.Run(context.Background(), suite.scripted(types.DirectionBuy), "T", types.MarketSeries{}, types.MarketContext{}, Callbacks{})
	suite.True(errors.HasCode(err, errors.ErrCodeBacktestNoData))
}

func (suite *SimulatorTestSuite) TestCancellation() {
	sim := suite.simulator(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.Run(ctx, suite.scripted(types.DirectionBuy), "T", mocks.FlatSeries("T", 40, 100), types.MarketContext{}, Callbacks{})
	suite.True(errors.HasCode(err, errors.ErrCodeCanceled))
}

func (suite *SimulatorTestSuite) TestCallbacks() {
	sim := suite.simulator(func(c *Config) { c.MinLookback = 2 })
	series := mocks.SeriesFromCloses("T", 100, 100, 101, 106, 90)

	steps := []int{}
	onStep := OnStepCallback(func(current, total int) error {
		suite.Equal(3, total)
		steps = append(steps, current)

		return nil
	})

	trades := 0
	onTrade := OnTradeCallback(func(types.Trade) error {
		trades++

		return nil
	})

	_, err := sim.Run(context.Background(), suite.scripted(types.DirectionBuy, 2, 4), "T", series, types.MarketContext{},
		Callbacks{OnStep: &onStep, OnTrade: &onTrade})
	suite.Require().NoError(err)
	suite.Equal([]int{1, 2, 3}, steps)
	suite.Equal(2, trades)

	failing := OnTradeCallback(func(types.Trade) error { return fmt.Errorf("stop") })
	_, err = sim.Run(context.Background(), suite.scripted(types.DirectionBuy, 2), "T", series, types.MarketContext{},
		Callbacks{OnTrade: &failing})
	suite.True(errors.HasCode(err, errors.ErrCodeCallbackFailed))
}

func (suite *SimulatorTestSuite) TestRandomExitNeedsSeed() {
	cfg := DefaultConfig()
	cfg.Exit.Model = ExitModelRandom

	_, err := NewSimulator(cfg, nil)
	suite.True(errors.HasCode(err, errors.ErrCodeBacktestConfigError))

	cfg.Exit.Seed = optional.Some(int64(42))
	_, err = NewSimulator(cfg, nil)
	suite.NoError(err)
}

func (suite *SimulatorTestSuite) TestInvalidConfig() {
	cfg := DefaultConfig()
	cfg.InitialCapital = 0

	_, err := NewSimulator(cfg, nil)
	suite.True(errors.HasCode(err, errors.ErrCodeBacktestConfigError))

	cfg = DefaultConfig()
	cfg.Exit.Model = "teleport"

	_, err = NewSimulator(cfg, nil)
	suite.True(errors.HasCode(err, errors.ErrCodeBacktestConfigError))
}

func (suite *SimulatorTestSuite) TestDeterminism() {
	registry, err := strategy.NewDefaultRegistry(nil)
	suite.Require().NoError(err)

	config := mocks.DefaultConfig()
	config.Count = 300
	series := mocks.NewDataGenerator(11).GenerateSeries(config)

	for _, model := range []ExitModel{ExitModelStopTarget, ExitModelNextClose, ExitModelRandom} {
		sim := suite.simulator(func(c *Config) {
			c.Exit.Model = model
			c.Exit.Seed = optional.Some(int64(42))
		})

		for _, s := range registry.All() {
			first, err := sim.Run(context.Background(), s, "TEST", series, types.MarketContext{}, Callbacks{})
			suite.Require().NoError(err)

			second, err := sim.Run(context.Background(), s, "TEST", series, types.MarketContext{}, Callbacks{})
			suite.Require().NoError(err)

			suite.Equal(first.Trades, second.Trades, "%s/%s", model, s.ID())
			suite.Equal(first.Equity.Values(), second.Equity.Values(), "%s/%s", model, s.ID())

			suite.Equal(len(first.Trades)+1, first.Equity.Len())

			for _, v := range first.Equity.Values() {
				suite.Positive(v)
			}

			if len(first.Trades) == 0 {
				suite.Zero(first.Metrics.WinRate)
			}
		}
	}
}

func (suite *SimulatorTestSuite) TestMomentumOnRisingSeries() {
	bot := suite.momentum()
	series := mocks.GeometricSeries("UP", 100, 100, 1.005, 10, 5)

	result, err := suite.simulator(nil).Run(context.Background(), bot, "UP", series, types.MarketContext{}, Callbacks{})
	suite.Require().NoError(err)

	suite.NotEmpty(result.Trades)

	for _, trade := range result.Trades {
		suite.Equal(types.DirectionBuy, trade.Direction)
		suite.Positive(trade.PnLPercent)
	}

	suite.InDelta(1.0, result.Metrics.WinRate, 1e-12)
	suite.Greater(result.FinalEquity, result.InitialCapital)
}

func (suite *SimulatorTestSuite) momentum() strategy.Strategy {
	for _, def := range strategy.Definitions() {
		if def.ID == strategy.IDMomentum {
			bot, err := strategy.NewBot(def, map[string]any{"rsi_overbought": 101.0})
			suite.Require().NoError(err)

			return bot
		}
	}

	suite.FailNow("momentum definition missing")

	return nil
}

func (suite *SimulatorTestSuite) TestReportWindows() {
	sim := suite.simulator(func(c *Config) {
		c.MinLookback = 2
		c.Exit.Model = ExitModelNextClose
		c.TradeWindow = 1
		c.EquityWindow = 2
	})
	series := mocks.SeriesFromCloses("T", 100, 100, 101, 106, 90)

	result, err := sim.Run(context.Background(), suite.scripted(types.DirectionBuy, 2, 3, 4), "T", series, types.MarketContext{}, Callbacks{})
	suite.Require().NoError(err)

	report := result.Report()
	suite.NotEmpty(report.ID)
	suite.Equal("scripted", report.Strategy.ID)
	suite.Require().Len(report.Trades, 1)
	suite.Equal(result.Trades[2], report.Trades[0])
	suite.Equal(result.Equity.Values()[2:], report.EquityCurve)
	suite.Equal(3, report.TradeResult.NumberOfTrades)

	path := filepath.Join(suite.T().TempDir(), "report.yaml")
	suite.Require().NoError(WriteReport(path, report))

	data, err := os.ReadFile(path)
	suite.Require().NoError(err)

	var decoded []types.BacktestReport
	suite.Require().NoError(yaml.Unmarshal(data, &decoded))
	suite.Require().Len(decoded, 1)
	suite.Equal(report.ID, decoded[0].ID)
	suite.Equal(report.Trades[0].ExitReason, decoded[0].Trades[0].ExitReason)

	err = WriteReport(filepath.Join(suite.T().TempDir(), "missing", "report.yaml"), report)
	suite.True(errors.HasCode(err, errors.ErrCodeBacktestWriteFailed))
}

func (suite *SimulatorTestSuite) TestBuyAndHoldIgnoresNonFinitePrices() {
	suite.InDelta(10.0, buyAndHold(100, 110), 1e-9)
	suite.Zero(buyAndHold(100, math.NaN()))
	suite.Zero(buyAndHold(math.NaN(), 100))
	suite.Zero(buyAndHold(100, math.Inf(1)))
	suite.Zero(buyAndHold(0, 100))
}

func (suite *SimulatorTestSuite) TestPanickingStrategyIsFaultedStep() {
	strat := mocks.NewMockStrategy(suite.ctrl)
	strat.EXPECT().ID().Return("broken").AnyTimes()
	strat.EXPECT().Name().Return("Broken").AnyTimes()
	strat.EXPECT().Version().Return("1.0.0").AnyTimes()
	strat.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(string, types.MarketSeries, types.MarketContext) types.Signal { panic("boom") },
	).AnyTimes()

	result, err := suite.simulator(nil).Run(context.Background(), strat, "T", mocks.FlatSeries("T", 30, 100),
		types.MarketContext{}, Callbacks{})
	suite.Require().NoError(err)

	suite.Equal(10, result.Steps)
	suite.Equal(10, result.FaultedSteps)
	suite.Empty(result.Trades)
}
