package strategy

import (
	"fmt"
	"math"

	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
	"github.com/moznion/go-optional"
)

// need returns the values of keys in order. A missing key yields
// ErrCodeIndicatorNotFound and a non-finite one ErrCodeIndicatorCalculation.
func need(values types.Indicators, keys ...string) ([]float64, error) {
	out := make([]float64, len(keys))

	for i, key := range keys {
		v, ok := values[key]
		if !ok {
			return nil, errors.Newf(errors.ErrCodeIndicatorNotFound, "indicator %s is not available", key)
		}

		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.Newf(errors.ErrCodeIndicatorCalculation, "indicator %s is not finite", key)
		}

		out[i] = v
	}

	return out, nil
}

func hold(reason string) (Decision, error) {
	return Decision{Direction: types.DirectionHold, Reason: reason}, nil
}

func buy(format string, args ...any) (Decision, error) {
	return Decision{Direction: types.DirectionBuy, Reason: fmt.Sprintf(format, args...)}, nil
}

func sell(format string, args ...any) (Decision, error) {
	return Decision{Direction: types.DirectionSell, Reason: fmt.Sprintf(format, args...)}, nil
}

func meanReversionRule(in RuleInput) (Decision, error) {
	v, err := need(in.Indicators, "price", "bb_lower", "bb_upper", "rsi")
	if err != nil {
		return Decision{}, err
	}

	price, lower, upper, rsi := v[0], v[1], v[2], v[3]

	switch {
	case price < lower && rsi < in.Config.Float("rsi_oversold", 30):
		return buy("Oversold - RSI: %.1f, below BB lower band", rsi)
	case price > upper && rsi > in.Config.Float("rsi_overbought", 70):
		return sell("Overbought - RSI: %.1f, above BB upper band", rsi)
	}

	return hold("No mean reversion signal")
}

func momentumRule(in RuleInput) (Decision, error) {
	v, err := need(in.Indicators, "price", "resistance", "support", "rsi", "volume_ratio")
	if err != nil {
		return Decision{}, err
	}

	price, resistance, support, rsi, volume := v[0], v[1], v[2], v[3], v[4]
	surge := volume > in.Config.Float("volume_threshold", 1.5)

	switch {
	case price > resistance && rsi < in.Config.Float("rsi_overbought", 70) && surge:
		return buy("Bullish breakout above $%.2f", resistance)
	case price < support && rsi > in.Config.Float("rsi_oversold", 30) && surge:
		return sell("Bearish breakdown below $%.2f", support)
	}

	return hold("No momentum signal")
}

func fibonacciRule(in RuleInput) (Decision, error) {
	v, err := need(in.Indicators, "at_fib_level", "fib_level", "trend")
	if err != nil {
		return Decision{}, err
	}

	atLevel, level, trend := v[0], v[1], v[2]
	if atLevel == 0 || !containsLevel(in.Config.Floats("trade_levels", nil), level) {
		return hold("No Fibonacci signal")
	}

	if trend > 0 {
		return buy("Fib %.3f retracement in uptrend", level)
	}

	return sell("Fib %.3f retracement in downtrend", level)
}

func containsLevel(levels []float64, level float64) bool {
	for _, l := range levels {
		if math.Abs(l-level) < 1e-9 {
			return true
		}
	}

	return false
}

func gridRule(in RuleInput) (Decision, error) {
	v, err := need(in.Indicators, "price", "range_position")
	if err != nil {
		return Decision{}, err
	}

	price, position := v[0], v[1]

	switch {
	case position < in.Config.Float("buy_zone", 0.3):
		return buy("Price in lower zone of range ($%.2f)", price)
	case position > in.Config.Float("sell_zone", 0.7):
		return sell("Price in upper zone of range ($%.2f)", price)
	}

	return hold("Grid levels maintained")
}

// arbitrageRule prefers the cross-exchange spread from the context and falls
// back to the intrabar spread.
func arbitrageRule(in RuleInput) (Decision, error) {
	spread := in.Context.Value(types.ContextExchangeSpread)
	if spread.IsNone() {
		v, err := need(in.Indicators, "spread")
		if err != nil {
			return Decision{}, err
		}

		spread = optional.Some(v[0])
	}

	value := spread.Unwrap()
	if value > in.Config.Float("min_spread", 0.01) {
		return buy("Arbitrage opportunity detected - %.2f%% spread", value*100)
	}

	return hold("No arbitrage opportunity")
}

func newsRule(in RuleInput) (Decision, error) {
	sentiment := in.Context.Value(types.ContextNewsSentiment).TakeOr(0)

	volume := 1.0
	if v, ok := in.Indicators["volume_ratio"]; ok {
		volume = v
	}

	threshold := in.Config.Float("sentiment_threshold", 0.6)
	spike := volume > in.Config.Float("volume_spike_threshold", 2.0)

	switch {
	case sentiment > threshold && spike:
		return buy("Positive news sentiment (%.2f) with %.1fx volume", sentiment, volume)
	case sentiment < -threshold && spike:
		return sell("Negative news sentiment (%.2f) with %.1fx volume", sentiment, volume)
	}

	return hold("No news catalyst")
}

func scalpingRule(in RuleInput) (Decision, error) {
	v, err := need(in.Indicators, "ema_fast", "ema_slow", "momentum")
	if err != nil {
		return Decision{}, err
	}

	fast, slow, momentum := v[0], v[1], v[2]

	switch {
	case fast > slow && momentum > 0:
		return buy("Fast EMA above slow EMA with positive momentum")
	case fast < slow && momentum < 0:
		return sell("Fast EMA below slow EMA with negative momentum")
	}

	return hold("No scalp setup")
}

func patternRule(in RuleInput) (Decision, error) {
	v, err := need(in.Indicators, "price", "pattern", "sma")
	if err != nil {
		return Decision{}, err
	}

	price, pattern, sma := v[0], v[1], v[2]

	switch {
	case pattern > 0 && price > sma:
		return buy("Bullish engulfing above SMA %.2f", sma)
	case pattern < 0 && price < sma:
		return sell("Bearish engulfing below SMA %.2f", sma)
	}

	return hold("No confirmed pattern")
}

func trendRule(in RuleInput) (Decision, error) {
	v, err := need(in.Indicators, "price", "sma_fast", "sma_slow", "macd_hist")
	if err != nil {
		return Decision{}, err
	}

	price, fast, slow, hist := v[0], v[1], v[2], v[3]

	switch {
	case price > fast && fast > slow && hist > 0:
		return buy("Uptrend aligned with positive MACD histogram")
	case price < fast && fast < slow && hist < 0:
		return sell("Downtrend aligned with negative MACD histogram")
	}

	return hold("No aligned trend")
}

func macdRule(in RuleInput) (Decision, error) {
	v, err := need(in.Indicators, "macd", "macd_signal", "macd_prev", "macd_signal_prev")
	if err != nil {
		return Decision{}, err
	}

	line, signal, prevLine, prevSignal := v[0], v[1], v[2], v[3]

	switch {
	case prevLine <= prevSignal && line > signal:
		return buy("MACD crossed above signal line")
	case prevLine >= prevSignal && line < signal:
		return sell("MACD crossed below signal line")
	}

	return hold("No MACD cross")
}

func supportResistanceRule(in RuleInput) (Decision, error) {
	v, err := need(in.Indicators, "price", "support", "resistance", "rsi")
	if err != nil {
		return Decision{}, err
	}

	price, support, resistance, rsi := v[0], v[1], v[2], v[3]
	proximity := in.Config.Float("proximity", 0.01)

	switch {
	case math.Abs(price-support)/price <= proximity && rsi < 50:
		return buy("Bounce off support $%.2f", support)
	case math.Abs(price-resistance)/price <= proximity && rsi > 50:
		return sell("Rejection at resistance $%.2f", resistance)
	}

	return hold("Price between levels")
}

func swingRule(in RuleInput) (Decision, error) {
	v, err := need(in.Indicators, "price", "sma", "rsi")
	if err != nil {
		return Decision{}, err
	}

	price, sma, rsi := v[0], v[1], v[2]

	switch {
	case price > sma && rsi < in.Config.Float("rsi_pullback", 40):
		return buy("Pullback in uptrend, RSI %.1f", rsi)
	case price < sma && rsi > in.Config.Float("rsi_rally", 60):
		return sell("Rally in downtrend, RSI %.1f", rsi)
	}

	return hold("No swing setup")
}

func volumeProfileRule(in RuleInput) (Decision, error) {
	v, err := need(in.Indicators, "price", "volume_ratio", "vwap", "price_change")
	if err != nil {
		return Decision{}, err
	}

	price, volume, vwap, change := v[0], v[1], v[2], v[3]
	if volume <= in.Config.Float("volume_threshold", 2.0) {
		return hold("No volume surge")
	}

	switch {
	case price > vwap && change > 0:
		return buy("%.1fx volume above VWAP $%.2f", volume, vwap)
	case price < vwap && change < 0:
		return sell("%.1fx volume below VWAP $%.2f", volume, vwap)
	}

	return hold("Volume surge without direction")
}
