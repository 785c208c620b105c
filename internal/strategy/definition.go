package strategy

import (
	"github.com/Protrader1988/protrader-terminal-backend/internal/indicator"
	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
)

// Config keys shared by every definition.
const (
	KeyConfidence    = "confidence"
	KeyMinConfidence = "min_confidence"
)

// RuleInput is everything a decision rule may read.
type RuleInput struct {
	Indicators types.Indicators
	Latest     types.MarketData
	Config     types.StrategyConfig
	Context    types.MarketContext
}

// Decision is the direction a rule chose and why.
type Decision struct {
	Direction types.Direction
	Reason    string
}

// Rule decides a direction from one evaluation's inputs. A rule returns an
// ErrCodeIndicatorNotFound error when a required indicator is absent.
type Rule func(in RuleInput) (Decision, error)

// IndicatorSet builds the indicators a definition needs from its config.
type IndicatorSet func(cfg types.StrategyConfig) []indicator.Indicator

// Definition describes one bot declaratively.
type Definition struct {
	ID          string
	Name        string
	Description string
	Version     string
	// Defaults holds the parameters; overrides are layered on top.
	Defaults map[string]any
	// Indicators builds the indicator set. A Price indicator is always added.
	Indicators IndicatorSet
	Rule       Rule
	Risk       RiskModel
	Sizing     SizingModel
	// StrictFloor makes the confidence floor exclusive.
	StrictFloor bool
	Conditions  []string
}

func (d Definition) validate() error {
	switch {
	case d.ID == "":
		return errors.New(errors.ErrCodeStrategyConfigError, "definition has no id")
	case d.Rule == nil:
		return errors.Newf(errors.ErrCodeStrategyConfigError, "definition %s has no rule", d.ID)
	case d.Risk == nil:
		return errors.Newf(errors.ErrCodeStrategyConfigError, "definition %s has no risk model", d.ID)
	case d.Sizing == nil:
		return errors.Newf(errors.ErrCodeStrategyConfigError, "definition %s has no sizing model", d.ID)
	case d.Indicators == nil:
		return errors.Newf(errors.ErrCodeStrategyConfigError, "definition %s has no indicators", d.ID)
	}

	return nil
}
