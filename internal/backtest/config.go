package backtest

import (
	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"gopkg.in/yaml.v3"
)

// ExitModel selects how a simulated position is closed.
type ExitModel string

const (
	// ExitModelStopTarget walks forward bars until the stop or target is hit.
	ExitModelStopTarget ExitModel = "stop_target"
	// ExitModelNextClose exits at the close of the first unseen bar.
	ExitModelNextClose ExitModel = "next_close"
	// ExitModelRandom exits at entry · U(0.98, 1.05) drawn from a seeded source.
	ExitModelRandom ExitModel = "random"
)

// AllExitModels lists every supported exit model.
var AllExitModels = []any{ExitModelStopTarget, ExitModelNextClose, ExitModelRandom}

// ExitConfig configures position exits.
type ExitConfig struct {
	Model          ExitModel              `yaml:"model" json:"model" validate:"oneof=stop_target next_close random" jsonschema:"title=Exit Model,description=How simulated positions are closed,default=stop_target"`
	MaxHoldingBars int                    `yaml:"max_holding_bars" json:"max_holding_bars" validate:"gte=1" jsonschema:"title=Max Holding Bars,description=Bars a stop_target position may stay open,minimum=1,default=5"`
	Seed           optional.Option[int64] `yaml:"seed" json:"seed" jsonschema:"title=Seed,description=Random source seed; required for the random exit model"`
}

// UnmarshalYAML keeps defaults for omitted fields and maps seed to an option.
func (c *ExitConfig) UnmarshalYAML(value *yaml.Node) error {
	type raw struct {
		Model          *ExitModel `yaml:"model"`
		MaxHoldingBars *int       `yaml:"max_holding_bars"`
		Seed           *int64     `yaml:"seed"`
	}

	var r raw
	if err := value.Decode(&r); err != nil {
		return err
	}

	if r.Model != nil {
		c.Model = *r.Model
	}

	if r.MaxHoldingBars != nil {
		c.MaxHoldingBars = *r.MaxHoldingBars
	}

	if r.Seed != nil {
		c.Seed = optional.Some(*r.Seed)
	}

	return nil
}

// MarshalYAML writes seed as a plain integer.
func (c ExitConfig) MarshalYAML() (any, error) {
	out := map[string]any{
		"model":            c.Model,
		"max_holding_bars": c.MaxHoldingBars,
	}

	if c.Seed.IsSome() {
		out["seed"] = c.Seed.Unwrap()
	}

	return out, nil
}

// Config configures a simulation run.
type Config struct {
	InitialCapital float64    `yaml:"initial_capital" json:"initial_capital" validate:"gt=0" jsonschema:"title=Initial Capital,description=Starting equity of every run,minimum=0,default=10000"`
	MinLookback    int        `yaml:"min_lookback" json:"min_lookback" validate:"gte=1" jsonschema:"title=Min Lookback,description=Index of the first evaluated bar,minimum=1,default=20"`
	Exit           ExitConfig `yaml:"exit" json:"exit" jsonschema:"title=Exit,description=Position exit model"`
	TradeWindow    int        `yaml:"trade_window" json:"trade_window" validate:"gte=0" jsonschema:"title=Trade Window,description=Trades kept in a report,minimum=0,default=10"`
	EquityWindow   int        `yaml:"equity_window" json:"equity_window" validate:"gte=0" jsonschema:"title=Equity Window,description=Equity samples kept in a report,minimum=0,default=50"`
}

// DefaultConfig returns the standard simulation settings.
func DefaultConfig() Config {
	return Config{
		InitialCapital: 10000,
		MinLookback:    20,
		Exit: ExitConfig{
			Model:          ExitModelStopTarget,
			MaxHoldingBars: 5,
			Seed:           optional.None[int64](),
		},
		TradeWindow:  10,
		EquityWindow: 50,
	}
}

var configValidate = validator.New()

// Validate checks field bounds and model requirements.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestConfigError, "invalid backtest config", err)
	}

	if c.Exit.Model == ExitModelRandom && c.Exit.Seed.IsNone() {
		return errors.New(errors.ErrCodeBacktestConfigError, "the random exit model requires a seed")
	}

	return nil
}
