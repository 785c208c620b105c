package strategy

import (
	"fmt"
	"math"

	"github.com/Protrader1988/protrader-terminal-backend/internal/indicator"
	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
	"github.com/Protrader1988/protrader-terminal-backend/internal/version"
	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
)

// Bot interprets a Definition. It is immutable and safe for concurrent use.
type Bot struct {
	def         Definition
	config      types.StrategyConfig
	indicators  []indicator.Indicator
	minLookback int
}

// NewBot builds a bot from def with overrides applied on top of its defaults.
func NewBot(def Definition, overrides map[string]any) (*Bot, error) {
	if err := def.validate(); err != nil {
		return nil, err
	}

	if _, err := version.Parse(def.Version); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeStrategyConfigError, err, "strategy %s", def.ID)
	}

	cfg := types.NewStrategyConfig(def.Defaults).With(overrides)

	for _, key := range []string{KeyConfidence, KeyMinConfidence} {
		v := cfg.Float(key, -1)
		if math.IsNaN(v) || v < 0 || v > 1 {
			return nil, errors.Newf(errors.ErrCodeStrategyConfigError,
				"strategy %s: %s must be within [0, 1], got %v", def.ID, key, v)
		}
	}

	inds := append(def.Indicators(cfg), indicator.NewPrice())
	lookback := 1

	for _, ind := range inds {
		if ind.Lookback() > lookback {
			lookback = ind.Lookback()
		}
	}

	conditions := make([]string, len(def.Conditions))
	copy(conditions, def.Conditions)
	def.Conditions = conditions

	return &Bot{
		def:         def,
		config:      cfg,
		indicators:  inds,
		minLookback: lookback,
	}, nil
}

// ID returns the registry identifier.
func (b *Bot) ID() string { return b.def.ID }

// Name returns the human readable name.
func (b *Bot) Name() string { return b.def.Name }

// Description returns the summary.
func (b *Bot) Description() string { return b.def.Description }

// Version returns the definition version.
func (b *Bot) Version() string { return b.def.Version }

// MinLookback returns the longest indicator lookback.
func (b *Bot) MinLookback() int { return b.minLookback }

// Config returns the bot parameters.
func (b *Bot) Config() types.StrategyConfig { return b.config }

// BestMarketConditions returns a copy of the preferred regimes.
func (b *Bot) BestMarketConditions() []string {
	out := make([]string, len(b.def.Conditions))
	copy(out, b.def.Conditions)

	return out
}

// ConfidenceFloor returns the acceptance floor and whether it is exclusive.
func (b *Bot) ConfidenceFloor() (float64, bool) {
	return b.config.Float(KeyMinConfidence, 0), b.def.StrictFloor
}

// CalculateIndicators merges the output of every indicator with enough data.
func (b *Bot) CalculateIndicators(series types.MarketSeries) (types.Indicators, error) {
	out := types.Indicators{}

	for _, ind := range b.indicators {
		values, err := ind.Calculate(series)
		if err != nil {
			if errors.IsInsufficientDataError(err) {
				continue
			}

			return nil, err
		}

		for k, v := range values {
			out[k] = v
		}
	}

	return out, nil
}

// Analyze evaluates the latest bar of series.
func (b *Bot) Analyze(symbol string, series types.MarketSeries, mctx types.MarketContext) (signal types.Signal) {
	latest, ok := series.Latest()

	defer func() {
		if r := recover(); r != nil {
			signal = types.NewFaultSignal(types.FaultPanic, fmt.Sprint(r), symbol, b.ID(), latest.Close, latest.Time, nil)
		}
	}()

	if !ok || series.Len() < b.minLookback {
		return types.NewFaultSignal(types.FaultInsufficientData,
			fmt.Sprintf("need %d bars, got %d", b.minLookback, series.Len()),
			symbol, b.ID(), latest.Close, latest.Time, nil)
	}

	if latest.Close <= 0 || math.IsNaN(latest.Close) || math.IsInf(latest.Close, 0) {
		return types.NewFaultSignal(types.FaultInvalidPrice,
			fmt.Sprintf("latest close %v is not a positive price", latest.Close),
			symbol, b.ID(), 0, latest.Time, nil)
	}

	values, err := b.CalculateIndicators(series)
	if err != nil {
		return types.NewFaultSignal(types.FaultComputation, err.Error(), symbol, b.ID(), latest.Close, latest.Time, nil)
	}

	decision, err := b.def.Rule(RuleInput{
		Indicators: values,
		Latest:     latest,
		Config:     b.config,
		Context:    mctx,
	})
	if err != nil {
		code := types.FaultComputation
		if errors.HasCode(err, errors.ErrCodeIndicatorNotFound) {
			code = types.FaultInsufficientData
		}

		return types.NewFaultSignal(code, err.Error(), symbol, b.ID(), latest.Close, latest.Time, values)
	}

	if decision.Direction != types.DirectionBuy && decision.Direction != types.DirectionSell {
		return types.NewHoldSignal(symbol, b.ID(), latest.Close, latest.Time, decision.Reason, values)
	}

	entry := latest.Close
	stopLoss, takeProfit := b.GetRiskParameters(symbol, entry, decision.Direction)

	signal = types.NewSignal(symbol, b.ID(), decision.Direction, b.config.Float(KeyConfidence, 0),
		entry, stopLoss, takeProfit, latest.Time, decision.Reason, values)

	if err := signal.Validate(); err != nil {
		return types.NewFaultSignal(types.FaultComputation, err.Error(), symbol, b.ID(), entry, latest.Time, values)
	}

	return signal
}

// GetRiskParameters delegates to the definition's risk model.
func (b *Bot) GetRiskParameters(_ string, entryPrice float64, direction types.Direction) (float64, float64) {
	if direction != types.DirectionBuy && direction != types.DirectionSell {
		return 0, 0
	}

	return b.def.Risk.Levels(entryPrice, direction, b.config)
}

// ValidateSignal accepts signals at or above the confidence floor, or
// strictly above it for definitions with an exclusive floor.
func (b *Bot) ValidateSignal(signal types.Signal, _ types.MarketContext) bool {
	floor, strict := b.ConfidenceFloor()
	if strict {
		return signal.Confidence > floor
	}

	return signal.Confidence >= floor
}

// CalculatePositionSize delegates to the definition's sizing model.
func (b *Bot) CalculatePositionSize(signal types.Signal, portfolioValue, riskFraction float64) float64 {
	if !signal.IsActionable() {
		return 0
	}

	return b.def.Sizing.Size(signal, portfolioValue, riskFraction, b.config)
}
