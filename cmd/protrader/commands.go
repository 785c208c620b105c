package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Protrader1988/protrader-terminal-backend/internal/backtest"
	"github.com/Protrader1988/protrader-terminal-backend/internal/datasource"
	"github.com/Protrader1988/protrader-terminal-backend/internal/engine"
	"github.com/Protrader1988/protrader-terminal-backend/internal/indicator"
	"github.com/Protrader1988/protrader-terminal-backend/internal/signal"
	"github.com/Protrader1988/protrader-terminal-backend/internal/strategy"
	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type botInfo struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Version       string   `yaml:"version"`
	Description   string   `yaml:"description"`
	MinConfidence float64  `yaml:"min_confidence"`
	MinLookback   int      `yaml:"min_lookback"`
	Conditions    []string `yaml:"best_market_conditions"`
}

func botsAction(_ context.Context, cmd *cli.Command) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	strategies := s.engine.Strategies()
	bots := make([]botInfo, 0, len(strategies))

	for _, st := range strategies {
		bots = append(bots, botInfo{
			ID:            st.ID(),
			Name:          st.Name(),
			Version:       st.Version(),
			Description:   st.Description(),
			MinConfidence: st.Config().Float(strategy.KeyMinConfidence, 0),
			MinLookback:   st.MinLookback(),
			Conditions:    st.BestMarketConditions(),
		})
	}

	return printYAML(cmd, bots)
}

func analyzeAction(_ context.Context, cmd *cli.Command) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	mctx, err := parseMarketContext(cmd.StringSlice("context"))
	if err != nil {
		return err
	}

	series, err := s.readSeries(cmd.String("data"), cmd.String("symbol"))
	if err != nil {
		return err
	}

	ids := cmd.StringSlice("bot")
	if len(ids) == 0 {
		for _, st := range s.engine.Strategies() {
			ids = append(ids, st.ID())
		}
	}

	entries := make([]signal.Entry, 0, len(ids))

	for _, id := range ids {
		st, err := s.engine.Strategy(id)
		if err != nil {
			return err
		}

		sig, err := s.engine.Analyze(id, series.Symbol(), series, mctx)
		if err != nil {
			return err
		}

		entries = append(entries, signal.Entry{StrategyID: st.ID(), StrategyName: st.Name(), Signal: sig})
	}

	return printYAML(cmd, entries)
}

func indicatorsAction(_ context.Context, cmd *cli.Command) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	series, err := s.readSeries(cmd.String("data"), cmd.String("symbol"))
	if err != nil {
		return err
	}

	values, err := indicator.CalculateAll(indicator.NewDefaultIndicatorRegistry(), series)
	if err != nil {
		return err
	}

	return printYAML(cmd, values)
}

func signalsAction(ctx context.Context, cmd *cli.Command) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	mctx, err := parseMarketContext(cmd.StringSlice("context"))
	if err != nil {
		return err
	}

	series, err := s.readSeries(cmd.String("data"), cmd.String("symbol"))
	if err != nil {
		return err
	}

	catalog, err := s.engine.GenerateSignals(ctx, series.Symbol(), series, mctx)
	if err != nil {
		return err
	}

	return printYAML(cmd, catalog)
}

func backtestAction(ctx context.Context, cmd *cli.Command) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	mctx, err := parseMarketContext(cmd.StringSlice("context"))
	if err != nil {
		return err
	}

	ds, err := s.openData(cmd.String("data"))
	if err != nil {
		return err
	}
	defer ds.Close()

	seriesBySymbol, err := datasource.LoadAll(ds, cmd.StringSlice("symbol")...)
	if err != nil {
		return err
	}

	ids := cmd.StringSlice("bot")

	runs := len(ids)
	if runs == 0 {
		runs = len(s.engine.Strategies())
	}

	bar := progressbar.NewOptions(runs*len(seriesBySymbol),
		progressbar.OptionSetWriter(stderr(cmd)),
		progressbar.OptionSetDescription("Backtesting"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	onRunEnd := engine.OnRunEndCallback(func(_ string, strategyID string, symbol string, _ *backtest.Result, err error) {
		if err != nil {
			s.log.Error("Backtest run failed", zap.String("strategy", strategyID), zap.String("symbol", symbol), zap.Error(err))
		}

		_ = bar.Add(1)
	})

	results, err := s.engine.BacktestBatch(ctx, ids, seriesBySymbol, mctx, engine.BatchCallbacks{OnRunEnd: &onRunEnd})
	if err != nil {
		return err
	}

	_ = bar.Finish()

	out := cmd.String("out")
	if out == "" {
		reports := make([]types.BacktestReport, 0, len(results))
		for _, r := range results {
			reports = append(reports, r.Result.Report())
		}

		return printYAML(cmd, reports)
	}

	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, r := range results {
		path := filepath.Join(out, fmt.Sprintf("%s_%s.yaml", r.StrategyID, r.Symbol))
		if err := backtest.WriteReport(path, r.Result.Report()); err != nil {
			return err
		}

		s.log.Info("Report written", zap.String("path", path))
	}

	return nil
}

const schemaName = "protrader-engine-config.json"

func schemaAction(_ context.Context, cmd *cli.Command) error {
	cfg := engine.DefaultConfig()

	schemaJSON, err := cfg.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	out := cmd.String("out")
	if out == "" {
		_, err := fmt.Fprintln(stdout(cmd), schemaJSON)

		return err
	}

	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(out, schemaName), []byte(schemaJSON), 0o644); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}

	samplePath := filepath.Join(out, "protrader-engine-config.yaml")
	if _, err := os.Stat(samplePath); os.IsNotExist(err) {
		yamlBytes, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal sample config: %w", err)
		}

		yamlBytes = append([]byte("# yaml-language-server: $schema="+schemaName+"\n"), yamlBytes...)

		if err := os.WriteFile(samplePath, yamlBytes, 0o644); err != nil {
			return fmt.Errorf("failed to write sample config: %w", err)
		}
	}

	return nil
}

func (s *session) readSeries(path, symbol string) (types.MarketSeries, error) {
	ds, err := s.openData(path)
	if err != nil {
		return types.MarketSeries{}, err
	}
	defer ds.Close()

	return ds.ReadSeries(datasource.Query{Symbol: symbol})
}
