package types

import (
	"math"
	"time"

	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// Direction is the trade direction recommended by a signal.
type Direction string

const (
	// DirectionBuy opens a long position
	DirectionBuy Direction = "buy"
	// DirectionSell opens a short position
	DirectionSell Direction = "sell"
	// DirectionHold means no action
	DirectionHold Direction = "hold"
)

// FaultCode classifies why an evaluation produced a Hold it did not choose.
type FaultCode string

const (
	FaultNone             FaultCode = "none"
	FaultInsufficientData FaultCode = "insufficient_data"
	FaultComputation      FaultCode = "computation"
	FaultInvalidPrice     FaultCode = "invalid_price"
	FaultPanic            FaultCode = "panic"
)

// Fault records an evaluation fault carried by a Hold signal.
type Fault struct {
	Code    FaultCode `yaml:"code" json:"code"`
	Message string    `yaml:"message,omitempty" json:"message,omitempty"`
}

// IsFault reports whether the fault represents an actual failure.
func (f Fault) IsFault() bool {
	return f.Code != "" && f.Code != FaultNone
}

// Indicators maps indicator names to their latest values.
type Indicators map[string]float64

// Clone returns an independent copy.
func (in Indicators) Clone() Indicators {
	out := make(Indicators, len(in))
	for k, v := range in {
		out[k] = v
	}

	return out
}

// Signal is the outcome of one strategy evaluation.
type Signal struct {
	Symbol       string     `yaml:"symbol" json:"symbol"`
	Strategy     string     `yaml:"strategy" json:"strategy"`
	Direction    Direction  `yaml:"direction" json:"direction" validate:"required,oneof=buy sell hold"`
	Confidence   float64    `yaml:"confidence" json:"confidence" validate:"gte=0,lte=1"`
	EntryPrice   float64    `yaml:"entry_price" json:"entry_price" validate:"gte=0"`
	StopLoss     float64    `yaml:"stop_loss" json:"stop_loss" validate:"gte=0"`
	TakeProfit   float64    `yaml:"take_profit" json:"take_profit" validate:"gte=0"`
	PositionSize float64    `yaml:"position_size" json:"position_size" validate:"gte=0"`
	Timestamp    time.Time  `yaml:"timestamp" json:"timestamp"`
	Reason       string     `yaml:"reason" json:"reason"`
	Indicators   Indicators `yaml:"indicators,omitempty" json:"indicators,omitempty"`
	Fault        Fault      `yaml:"fault" json:"fault"`
}

// validator caches struct metadata, so one instance serves every signal.
var signalValidate = validator.New()

// NewSignal builds an actionable signal. Callers are expected to pass levels
// on the correct side of entry; Validate reports when they are not.
func NewSignal(symbol, strategy string, direction Direction, confidence, entry, stopLoss, takeProfit float64,
	timestamp time.Time, reason string, indicators Indicators) Signal {
	return Signal{
		Symbol:     symbol,
		Strategy:   strategy,
		Direction:  direction,
		Confidence: confidence,
		EntryPrice: entry,
		StopLoss:   stopLoss,
		TakeProfit: takeProfit,
		Timestamp:  timestamp,
		Reason:     reason,
		Indicators: indicators,
		Fault:      Fault{Code: FaultNone},
	}
}

// NewHoldSignal builds the "no opportunity" signal.
func NewHoldSignal(symbol, strategy string, price float64, timestamp time.Time, reason string, indicators Indicators) Signal {
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		price = 0
	}

	return Signal{
		Symbol:     symbol,
		Strategy:   strategy,
		Direction:  DirectionHold,
		EntryPrice: price,
		Timestamp:  timestamp,
		Reason:     reason,
		Indicators: indicators,
		Fault:      Fault{Code: FaultNone},
	}
}

// NewFaultSignal builds a Hold signal that records why evaluation failed.
// It has the same shape as a plain Hold; only Fault and Reason differ.
func NewFaultSignal(code FaultCode, message, symbol, strategy string, price float64, timestamp time.Time,
	indicators Indicators) Signal {
	sig := NewHoldSignal(symbol, strategy, price, timestamp, string(code)+": "+message, indicators)
	sig.Fault = Fault{Code: code, Message: message}

	return sig
}

// IsActionable reports whether the signal asks for a trade.
func (s Signal) IsActionable() bool {
	return s.Direction == DirectionBuy || s.Direction == DirectionSell
}

// Validate checks field bounds and the ordering of stop, entry and target.
func (s Signal) Validate() error {
	if err := signalValidate.Struct(s); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSignal, "signal fields out of range", err)
	}

	for name, v := range map[string]float64{
		"confidence": s.Confidence, "entry_price": s.EntryPrice,
		"stop_loss": s.StopLoss, "take_profit": s.TakeProfit, "position_size": s.PositionSize,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Newf(errors.ErrCodeInvalidSignal, "%s is not finite", name)
		}
	}

	switch s.Direction {
	case DirectionHold:
		if s.Confidence != 0 || s.StopLoss != 0 || s.TakeProfit != 0 {
			return errors.New(errors.ErrCodeInvalidSignal, "hold signal must have zero confidence, stop loss and take profit")
		}
	case DirectionBuy:
		if s.Confidence <= 0 {
			return errors.New(errors.ErrCodeInvalidSignal, "buy signal must have positive confidence")
		}

		if !(s.StopLoss < s.EntryPrice && s.EntryPrice < s.TakeProfit) {
			return errors.Newf(errors.ErrCodeInvalidSignal,
				"buy signal requires stop_loss < entry_price < take_profit, got %.6f / %.6f / %.6f",
				s.StopLoss, s.EntryPrice, s.TakeProfit)
		}
	case DirectionSell:
		if s.Confidence <= 0 {
			return errors.New(errors.ErrCodeInvalidSignal, "sell signal must have positive confidence")
		}

		if !(s.TakeProfit < s.EntryPrice && s.EntryPrice < s.StopLoss) {
			return errors.Newf(errors.ErrCodeInvalidSignal,
				"sell signal requires take_profit < entry_price < stop_loss, got %.6f / %.6f / %.6f",
				s.TakeProfit, s.EntryPrice, s.StopLoss)
		}
	}

	return nil
}
