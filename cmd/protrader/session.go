package main

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Protrader1988/protrader-terminal-backend/internal/datasource"
	"github.com/Protrader1988/protrader-terminal-backend/internal/engine"
	"github.com/Protrader1988/protrader-terminal-backend/internal/logger"
	"github.com/Protrader1988/protrader-terminal-backend/internal/metrics"
	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// session is the state shared by every command that touches the engine.
type session struct {
	engine *engine.Context
	log    *logger.Logger
	close  func()
}

func newSession(cmd *cli.Command) (*session, error) {
	cfg := engine.DefaultConfig()

	if path := cmd.String("config"); path != "" {
		loaded, err := engine.LoadConfig(path)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	if level := cmd.String("log-level"); level != "" {
		cfg.LogLevel = level
	}

	log, err := logger.NewLoggerWithLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to create logger", err)
	}

	recorder := metrics.NewRecorder()
	closers := []func(){func() { _ = log.Sync() }}
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if addr := cmd.String("metrics-addr"); addr != "" {
		srv, err := recorder.Serve(addr, log)
		if err != nil {
			closeAll()

			return nil, err
		}

		log.Info("Serving metrics", zap.String("addr", srv.Addr))

		closers = append(closers, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			_ = srv.Shutdown(ctx)
		})
	}

	eng, err := engine.New(cfg, engine.WithLogger(log), engine.WithRecorder(recorder))
	if err != nil {
		closeAll()

		return nil, err
	}

	return &session{engine: eng, log: log, close: closeAll}, nil
}

func (s *session) openData(path string) (*datasource.DuckDBDataSource, error) {
	ds, err := datasource.NewDataSource("", s.log)
	if err != nil {
		return nil, err
	}

	if err := ds.Initialize(path); err != nil {
		_ = ds.Close()

		return nil, err
	}

	return ds, nil
}

// parseMarketContext turns KEY=VALUE pairs into a market context.
func parseMarketContext(pairs []string) (types.MarketContext, error) {
	values := make(map[string]float64, len(pairs))

	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return types.MarketContext{}, errors.Newf(errors.ErrCodeInvalidParameter, "context %q is not KEY=VALUE", pair)
		}

		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return types.MarketContext{}, errors.Wrapf(errors.ErrCodeInvalidParameter, err, "context %s", key)
		}

		values[key] = v
	}

	return types.NewMarketContext(values), nil
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}

	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}

	return os.Stderr
}

func printYAML(cmd *cli.Command, v any) error {
	enc := yaml.NewEncoder(stdout(cmd))
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return err
	}

	return enc.Close()
}
