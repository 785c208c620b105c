package types

import (
	"math"
	"testing"
	"time"

	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type SignalTestSuite struct {
	suite.Suite
	now time.Time
}

func TestSignalSuite(t *testing.T) {
	suite.Run(t, new(SignalTestSuite))
}

func (suite *SignalTestSuite) SetupTest() {
	suite.now = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
}

func (suite *SignalTestSuite) TestValidate() {
	tests := []struct {
		name    string
		signal  Signal
		wantErr bool
	}{
		{
			name:   "valid buy",
			signal: NewSignal("BTC", "momentum", DirectionBuy, 0.75, 100, 97.5, 105, suite.now, "breakout", nil),
		},
		{
			name:   "valid sell",
			signal: NewSignal("BTC", "momentum", DirectionSell, 0.75, 100, 102.5, 95, suite.now, "breakdown", nil),
		},
		{
			name:   "valid hold",
			signal: NewHoldSignal("BTC", "momentum", 100, suite.now, "nothing", nil),
		},
		{
			name:    "buy with inverted stop",
			signal:  NewSignal("BTC", "momentum", DirectionBuy, 0.75, 100, 102.5, 95, suite.now, "", nil),
			wantErr: true,
		},
		{
			name:    "sell with inverted target",
			signal:  NewSignal("BTC", "momentum", DirectionSell, 0.75, 100, 97.5, 105, suite.now, "", nil),
			wantErr: true,
		},
		{
			name:    "buy without confidence",
			signal:  NewSignal("BTC", "momentum", DirectionBuy, 0, 100, 97.5, 105, suite.now, "", nil),
			wantErr: true,
		},
		{
			name:    "confidence above one",
			signal:  NewSignal("BTC", "momentum", DirectionBuy, 1.2, 100, 97.5, 105, suite.now, "", nil),
			wantErr: true,
		},
		{
			name: "hold with stop",
			signal: Signal{
				Direction: DirectionHold, EntryPrice: 100, StopLoss: 95,
			},
			wantErr: true,
		},
		{
			name:    "unknown direction",
			signal:  Signal{Direction: "sideways"},
			wantErr: true,
		},
		{
			name:    "NaN entry",
			signal:  NewSignal("BTC", "momentum", DirectionBuy, 0.5, math.NaN(), 97.5, 105, suite.now, "", nil),
			wantErr: true,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			err := tc.signal.Validate()
			if tc.wantErr {
				suite.Error(err)
				suite.True(errors.HasCode(err, errors.ErrCodeInvalidSignal))
			} else {
				suite.NoError(err)
			}
		})
	}
}

func (suite *SignalTestSuite) TestFaultSignalHasHoldShape() {
	sig := NewFaultSignal(FaultComputation, "division by zero", "ETH", "grid", 50, suite.now, nil)

	suite.Equal(DirectionHold, sig.Direction)
	suite.Zero(sig.Confidence)
	suite.Zero(sig.StopLoss)
	suite.Zero(sig.TakeProfit)
	suite.True(sig.Fault.IsFault())
	suite.Equal(FaultComputation, sig.Fault.Code)
	suite.Contains(sig.Reason, "division by zero")
	suite.NoError(sig.Validate())
	suite.False(sig.IsActionable())
}

func (suite *SignalTestSuite) TestHoldSignalSanitizesPrice() {
	sig := NewHoldSignal("ETH", "grid", math.Inf(1), suite.now, "", nil)
	suite.Zero(sig.EntryPrice)
	suite.False(sig.Fault.IsFault())
	suite.NoError(sig.Validate())
}

func (suite *SignalTestSuite) TestIndicatorsClone() {
	in := Indicators{"rsi": 40}
	out := in.Clone()
	out["rsi"] = 80

	suite.Equal(40.0, in["rsi"])
}
