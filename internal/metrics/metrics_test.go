package metrics

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/Protrader1988/protrader-terminal-backend/internal/logger"
	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveSignal(t *testing.T) {
	r := NewRecorder()

	buy := types.NewSignal("BTC", "momentum", types.DirectionBuy, 0.75, 100, 97, 105, time.Time{}, "", nil)
	fault := types.NewFaultSignal(types.FaultInsufficientData, "need 21 bars", "BTC", "momentum", 100, time.Time{}, nil)

	r.ObserveSignal(buy, time.Millisecond)
	r.ObserveSignal(fault, time.Millisecond)
	r.ObserveSignal(fault, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.SignalsTotal.WithLabelValues("momentum", "buy")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.SignalsTotal.WithLabelValues("momentum", "hold")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.FaultsTotal.WithLabelValues("momentum", "insufficient_data")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.EvaluationDuration))
}

func TestObserveBacktest(t *testing.T) {
	r := NewRecorder()

	r.ObserveBacktest("grid", "ETH", []types.Trade{{PnLPercent: 2}, {PnLPercent: -1}, {PnLPercent: 0}})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.BacktestsTotal.WithLabelValues("grid", "ETH")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.TradesTotal.WithLabelValues("grid", "win")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.TradesTotal.WithLabelValues("grid", "loss")))
}

func TestRecordersAreIndependent(t *testing.T) {
	a := NewRecorder()
	b := NewRecorder()

	a.ObserveBacktest("grid", "ETH", nil)

	families, err := b.Registry().Gather()
	require.NoError(t, err)

	for _, mf := range families {
		assert.NotEqual(t, "protrader_backtests_total", mf.GetName())
	}
}

func TestServe(t *testing.T) {
	r := NewRecorder()
	r.ObserveBacktest("grid", "ETH", nil)

	srv, err := r.Serve("127.0.0.1:0", logger.NewNopLogger())
	require.NoError(t, err)

	defer func() { _ = srv.Shutdown(context.Background()) }()

	resp, err := http.Get("http://" + srv.Addr + "/metrics")
	require.NoError(t, err)

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "protrader_backtests_total")

	_, err = NewRecorder().Serve(srv.Addr, logger.NewNopLogger())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidParameter))
}
