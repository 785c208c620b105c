package engine

import (
	"encoding/json"
	"os"
	"reflect"

	"github.com/Protrader1988/protrader-terminal-backend/internal/backtest"
	"github.com/Protrader1988/protrader-terminal-backend/internal/version"
	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// Config is the engine configuration file.
type Config struct {
	Version         string  `yaml:"version,omitempty" json:"version,omitempty" jsonschema:"title=Version,description=Engine version the file was written for"`
	backtest.Config `yaml:",inline"`
	PortfolioValue  float64 `yaml:"portfolio_value" json:"portfolio_value" validate:"gt=0" jsonschema:"title=Portfolio Value,description=Portfolio used to size accepted signals,minimum=0,default=100000"`
	RiskFraction    float64 `yaml:"risk_fraction" json:"risk_fraction" validate:"gt=0,lte=1" jsonschema:"title=Risk Fraction,description=Fraction of the portfolio risked per trade,minimum=0,maximum=1,default=0.02"`
	Workers         int     `yaml:"workers" json:"workers" validate:"gte=1" jsonschema:"title=Workers,description=Concurrent evaluations,minimum=1,default=4"`
	LogLevel        string  `yaml:"log_level,omitempty" json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error" jsonschema:"title=Log Level,enum=debug,enum=info,enum=warn,enum=error"`
	// Strategies maps a strategy id to parameter overrides.
	Strategies map[string]map[string]any `yaml:"strategies,omitempty" json:"strategies,omitempty" jsonschema:"title=Strategies,description=Per-strategy parameter overrides"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Version:        version.Version,
		Config:         backtest.DefaultConfig(),
		PortfolioValue: 100000,
		RiskFraction:   0.02,
		Workers:        4,
		LogLevel:       "info",
	}
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	return ParseConfig(data)
}

// ParseConfig parses YAML on top of DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	cfg.Version = ""

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

var engineValidate = validator.New()

// Validate checks bounds, the embedded backtest settings and the version.
func (c Config) Validate() error {
	if err := engineValidate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid engine config", err)
	}

	if err := c.Config.Validate(); err != nil {
		return err
	}

	if err := version.CheckVersionCompatibility(version.Version, c.Version); err != nil {
		return err
	}

	return nil
}

// GenerateSchema generates a JSON schema for Config.
func (c *Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			switch t.String() {
			case "optional.Option[int64]":
				return &jsonschema.Schema{Type: "integer"}
			case "backtest.ExitModel":
				return &jsonschema.Schema{Type: "string", Enum: backtest.AllExitModels}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)

	schema.Title = "protrader-engine-config"
	schema.Description = "Configuration schema for the ProTrader engine"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates the JSON schema as an indented string.
func (c *Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
