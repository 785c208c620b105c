package main

import (
	"context"
	"log"
	"os"

	"github.com/Protrader1988/protrader-terminal-backend/internal/version"
	"github.com/urfave/cli/v3"
)

// Flags carry parse state, so every command gets its own instance.
func dataFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "data",
		Aliases:  []string{"d"},
		Usage:    "Path to a `FILE` of bars (.csv or .parquet)",
		Required: true,
	}
}

func contextFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:  "context",
		Usage: "Market context value as `KEY=VALUE`, e.g. sentiment=0.4",
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "protrader",
		Usage:   "Evaluate and backtest trading strategies",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the engine config `FILE`",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Overrides the config log level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "Serve Prometheus metrics on `ADDR` while the command runs",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "bots",
				Usage:  "List the available strategies",
				Action: botsAction,
			},
			{
				Name:  "analyze",
				Usage: "Evaluate strategies on the latest bar of a symbol",
				Flags: []cli.Flag{
					dataFlag(),
					&cli.StringFlag{Name: "symbol", Aliases: []string{"s"}, Usage: "Symbol to evaluate", Required: true},
					&cli.StringSliceFlag{Name: "bot", Aliases: []string{"b"}, Usage: "Strategy `ID` to run; all when omitted"},
					contextFlag(),
				},
				Action: analyzeAction,
			},
			{
				Name:  "indicators",
				Usage: "Print every built-in indicator on the latest bar of a symbol",
				Flags: []cli.Flag{
					dataFlag(),
					&cli.StringFlag{Name: "symbol", Aliases: []string{"s"}, Usage: "Symbol to evaluate", Required: true},
				},
				Action: indicatorsAction,
			},
			{
				Name:  "signals",
				Usage: "Print the ranked catalog of actionable signals for a symbol",
				Flags: []cli.Flag{
					dataFlag(),
					&cli.StringFlag{Name: "symbol", Aliases: []string{"s"}, Usage: "Symbol to evaluate", Required: true},
					contextFlag(),
				},
				Action: signalsAction,
			},
			{
				Name:  "backtest",
				Usage: "Replay strategies over historical bars",
				Flags: []cli.Flag{
					dataFlag(),
					&cli.StringSliceFlag{Name: "symbol", Aliases: []string{"s"}, Usage: "Symbols to replay; all when omitted"},
					&cli.StringSliceFlag{Name: "bot", Aliases: []string{"b"}, Usage: "Strategy `ID` to run; all when omitted"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Write one YAML report per run into `DIR`"},
					contextFlag(),
				},
				Action: backtestAction,
			},
			{
				Name:  "schema",
				Usage: "Print the engine config JSON schema",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Write the schema and a sample config into `DIR`"},
				},
				Action: schemaAction,
			},
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
