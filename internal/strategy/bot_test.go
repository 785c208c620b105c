package strategy

import (
	"math"
	"testing"

	"github.com/Protrader1988/protrader-terminal-backend/internal/indicator"
	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
	"github.com/Protrader1988/protrader-terminal-backend/mocks"
	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type BotTestSuite struct {
	suite.Suite
	registry *Registry
}

func TestBotSuite(t *testing.T) {
	suite.Run(t, new(BotTestSuite))
}

func (suite *BotTestSuite) SetupTest() {
	registry, err := NewDefaultRegistry(nil)
	suite.Require().NoError(err)
	suite.registry = registry
}

func (suite *BotTestSuite) bot(id string, overrides map[string]any) *Bot {
	for _, def := range Definitions() {
		if def.ID == id {
			bot, err := NewBot(def, overrides)
			suite.Require().NoError(err)

			return bot
		}
	}

	suite.FailNow("unknown definition " + id)

	return nil
}

func (suite *BotTestSuite) TestShortSeriesHolds() {
	series := mocks.FlatSeries("T", 3, 100)

	for _, s := range suite.registry.All() {
		sig := s.Analyze("T", series, types.MarketContext{})
		suite.Equal(types.DirectionHold, sig.Direction, s.ID())
		suite.Zero(sig.Confidence, s.ID())
		suite.Equal(types.FaultInsufficientData, sig.Fault.Code, s.ID())
		suite.Equal("T", sig.Symbol)
		suite.Equal(s.ID(), sig.Strategy)
	}
}

func (suite *BotTestSuite) TestEmptySeriesHolds() {
	for _, s := range suite.registry.All() {
		sig := s.Analyze("T", types.MarketSeries{}, types.MarketContext{})
		suite.Equal(types.DirectionHold, sig.Direction, s.ID())
		suite.True(sig.Fault.IsFault())
	}
}

func (suite *BotTestSuite) TestSignalInvariantsOnGeneratedData() {
	config := mocks.DefaultConfig()
	config.Count = 160
	series := mocks.NewDataGenerator(7).GenerateSeries(config)
	mctx := types.NewMarketContext(map[string]float64{types.ContextNewsSentiment: 0.9})

	for _, s := range suite.registry.All() {
		for n := 1; n <= series.Len(); n += 3 {
			prefix := series.Prefix(n)
			sig := s.Analyze("TEST", prefix, mctx)

			suite.NoError(sig.Validate(), "%s at %d", s.ID(), n)
			suite.GreaterOrEqual(sig.Confidence, 0.0)
			suite.LessOrEqual(sig.Confidence, 1.0)

			latest, _ := prefix.Latest()
			suite.Equal(latest.Time, sig.Timestamp)

			if sig.Fault.IsFault() {
				suite.Equal(types.DirectionHold, sig.Direction)
			}

			if sig.IsActionable() {
				suite.InDelta(latest.Close, sig.EntryPrice, 1e-12)
				suite.Positive(s.CalculatePositionSize(sig, 100000, 0.02))
			}
		}
	}
}

func (suite *BotTestSuite) TestFlatSeriesHoldsWithoutFault() {
	series := mocks.FlatSeries("FLAT", 120, 50)

	for _, id := range []string{IDMeanReversion, IDMomentum, IDSupportResistance, IDSwingTrader} {
		s, err := suite.registry.Get(id)
		suite.Require().NoError(err)

		sig := s.Analyze("FLAT", series, types.MarketContext{})
		suite.Equal(types.DirectionHold, sig.Direction, id)
		suite.False(sig.Fault.IsFault(), "%s: %s", id, sig.Reason)
		suite.InDelta(50.0, sig.EntryPrice, 1e-12)
	}
}

func (suite *BotTestSuite) TestGridOnFlatSeriesIsComputationFault() {
	s, err := suite.registry.Get(IDGrid)
	suite.Require().NoError(err)

	sig := s.Analyze("FLAT", mocks.FlatSeries("FLAT", 60, 50), types.MarketContext{})
	suite.Equal(types.DirectionHold, sig.Direction)
	suite.Equal(types.FaultComputation, sig.Fault.Code)
}

func (suite *BotTestSuite) TestMomentumBreakoutOnRisingSeries() {
	bot := suite.bot(IDMomentum, map[string]any{"rsi_overbought": 101.0})
	series := mocks.GeometricSeries("UP", 100, 100, 1.005, 10, 5)

	buys := 0

	for n := bot.MinLookback(); n <= series.Len(); n++ {
		sig := bot.Analyze("UP", series.Prefix(n), types.MarketContext{})
		suite.NotEqual(types.DirectionSell, sig.Direction)
		suite.False(sig.Fault.IsFault(), sig.Reason)

		if sig.Direction == types.DirectionBuy {
			buys++

			suite.InDelta(0.75, sig.Confidence, 1e-12)
			suite.InDelta(sig.EntryPrice*0.975, sig.StopLoss, 1e-9)
			suite.InDelta(sig.EntryPrice*1.05, sig.TakeProfit, 1e-9)
			suite.True(bot.ValidateSignal(sig, types.MarketContext{}))
		}
	}

	suite.Positive(buys)

	// the bar at index 90 carries a volume spike
	sig := bot.Analyze("UP", series.Prefix(91), types.MarketContext{})
	suite.Equal(types.DirectionBuy, sig.Direction)
}

func (suite *BotTestSuite) TestMomentumDefaultsBlockOverboughtBreakout() {
	bot := suite.bot(IDMomentum, nil)
	series := mocks.GeometricSeries("UP", 100, 100, 1.005, 10, 5)

	sig := bot.Analyze("UP", series.Prefix(91), types.MarketContext{})
	suite.Equal(types.DirectionHold, sig.Direction)
	suite.False(sig.Fault.IsFault())
}

func (suite *BotTestSuite) TestNewsSentinelReadsContext() {
	s, err := suite.registry.Get(IDNewsSentinel)
	suite.Require().NoError(err)

	series := mocks.GeometricSeries("NEWS", 100, 100, 1.001, 10, 5).Prefix(91)

	tests := []struct {
		name      string
		sentiment map[string]float64
		expected  types.Direction
	}{
		{"positive", map[string]float64{types.ContextNewsSentiment: 0.8}, types.DirectionBuy},
		{"negative", map[string]float64{types.ContextNewsSentiment: -0.8}, types.DirectionSell},
		{"weak", map[string]float64{types.ContextNewsSentiment: 0.3}, types.DirectionHold},
		{"absent", nil, types.DirectionHold},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			sig := s.Analyze("NEWS", series, types.NewMarketContext(tt.sentiment))
			suite.Equal(tt.expected, sig.Direction, sig.Reason)
			suite.NoError(sig.Validate())
		})
	}
}

func (suite *BotTestSuite) TestCryptoArbitrageSpread() {
	s, err := suite.registry.Get(IDCryptoArbitrage)
	suite.Require().NoError(err)

	flat := mocks.FlatSeries("BTC", 5, 30000)

	sig := s.Analyze("BTC", flat, types.NewMarketContext(map[string]float64{types.ContextExchangeSpread: 0.02}))
	suite.Equal(types.DirectionBuy, sig.Direction)
	suite.InDelta(0.85, sig.Confidence, 1e-12)
	suite.True(s.ValidateSignal(sig, types.MarketContext{}))
	suite.InDelta(15000.0, s.CalculatePositionSize(sig, 100000, 0.02), 1e-9)

	sig = s.Analyze("BTC", flat, types.NewMarketContext(map[string]float64{types.ContextExchangeSpread: 0.005}))
	suite.Equal(types.DirectionHold, sig.Direction)

	// without context the intrabar spread of a flat bar is zero
	sig = s.Analyze("BTC", flat, types.MarketContext{})
	suite.Equal(types.DirectionHold, sig.Direction)
	suite.False(sig.Fault.IsFault())
}

func (suite *BotTestSuite) TestConfidenceFloor() {
	mean := suite.bot(IDMeanReversion, nil)
	fib := suite.bot(IDFibonacci, nil)

	at := types.Signal{Direction: types.DirectionBuy, Confidence: 0.70}
	suite.True(mean.ValidateSignal(at, types.MarketContext{}))
	suite.False(fib.ValidateSignal(at, types.MarketContext{}))

	above := types.Signal{Direction: types.DirectionBuy, Confidence: 0.71}
	suite.True(fib.ValidateSignal(above, types.MarketContext{}))

	below := types.Signal{Direction: types.DirectionBuy, Confidence: 0.69}
	suite.False(mean.ValidateSignal(below, types.MarketContext{}))
}

func (suite *BotTestSuite) TestRiskParametersForHold() {
	for _, s := range suite.registry.All() {
		stop, target := s.GetRiskParameters("T", 100, types.DirectionHold)
		suite.Zero(stop)
		suite.Zero(target)
	}
}

func (suite *BotTestSuite) TestPanicBecomesFault() {
	def := Definition{
		ID:      "panicky",
		Name:    "Panicky",
		Version: "1.0.0",
		Defaults: map[string]any{
			KeyConfidence:    0.5,
			KeyMinConfidence: 0.5,
		},
		Indicators: func(types.StrategyConfig) []indicator.Indicator { return nil },
		Rule: func(RuleInput) (Decision, error) {
			panic("boom")
		},
		Risk:   PercentStops{},
		Sizing: RiskBudget{},
	}

	bot, err := NewBot(def, nil)
	suite.Require().NoError(err)

	sig := bot.Analyze("T", mocks.FlatSeries("T", 5, 10), types.MarketContext{})
	suite.Equal(types.DirectionHold, sig.Direction)
	suite.Equal(types.FaultPanic, sig.Fault.Code)
	suite.Contains(sig.Fault.Message, "boom")
	suite.NoError(sig.Validate())
}

func (suite *BotTestSuite) TestInvalidPriceIsFault() {
	bot := suite.bot(IDCryptoArbitrage, nil)

	sig := bot.Analyze("T", mocks.SeriesFromCloses("T", 10, 11, 0), types.MarketContext{})
	suite.Equal(types.DirectionHold, sig.Direction)
	suite.Equal(types.FaultInvalidPrice, sig.Fault.Code)
	suite.Zero(sig.EntryPrice)
}

func (suite *BotTestSuite) TestMissingIndicatorIsInsufficientData() {
	def := Definition{
		ID:      "needy",
		Version: "1.0.0",
		Defaults: map[string]any{
			KeyConfidence:    0.5,
			KeyMinConfidence: 0.5,
		},
		Indicators: func(types.StrategyConfig) []indicator.Indicator { return nil },
		Rule: func(in RuleInput) (Decision, error) {
			if _, err := need(in.Indicators, "rsi"); err != nil {
				return Decision{}, err
			}

			return hold("unreachable")
		},
		Risk:   PercentStops{},
		Sizing: RiskBudget{},
	}

	bot, err := NewBot(def, nil)
	suite.Require().NoError(err)

	sig := bot.Analyze("T", mocks.FlatSeries("T", 5, 10), types.MarketContext{})
	suite.Equal(types.FaultInsufficientData, sig.Fault.Code)
}

func (suite *BotTestSuite) TestNewBotRejectsInvalidDefinitions() {
	valid := Definitions()[0]

	noRule := valid
	noRule.Rule = nil
	_, err := NewBot(noRule, nil)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyConfigError))

	badVersion := valid
	badVersion.Version = "one"
	_, err = NewBot(badVersion, nil)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyConfigError))

	_, err = NewBot(valid, map[string]any{KeyConfidence: 1.5})
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyConfigError))

	_, err = NewBot(valid, map[string]any{KeyConfidence: math.NaN()})
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyConfigError))

	_, err = NewBot(valid, map[string]any{KeyMinConfidence: math.NaN()})
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyConfigError))
}

func (suite *BotTestSuite) TestOverridesDoNotLeakBetweenBots() {
	tuned := suite.bot(IDMomentum, map[string]any{"volume_threshold": 3.0})
	plain := suite.bot(IDMomentum, nil)

	suite.InDelta(3.0, tuned.Config().Float("volume_threshold", 0), 1e-12)
	suite.InDelta(1.5, plain.Config().Float("volume_threshold", 0), 1e-12)
}

func (suite *BotTestSuite) TestMinLookback() {
	suite.Equal(21, suite.bot(IDMomentum, nil).MinLookback())
	suite.Equal(50, suite.bot(IDSwingTrader, nil).MinLookback())
	suite.Equal(1, suite.bot(IDCryptoArbitrage, nil).MinLookback())
}

func (suite *BotTestSuite) TestBestMarketConditionsIsCopy() {
	bot := suite.bot(IDMomentum, nil)
	conditions := bot.BestMarketConditions()
	suite.Equal([]string{"Trending markets", "High volume", "Clear breakouts"}, conditions)

	conditions[0] = "changed"
	suite.Equal("Trending markets", bot.BestMarketConditions()[0])
}
