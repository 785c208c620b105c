package strategy

import (
	"github.com/Protrader1988/protrader-terminal-backend/internal/indicator"
	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
)

// Strategy identifiers.
const (
	IDMeanReversion      = "mean_reversion"
	IDMomentum           = "momentum"
	IDFibonacci          = "fibonacci"
	IDGrid               = "grid"
	IDCryptoArbitrage    = "crypto_arbitrage"
	IDNewsSentinel       = "news_sentinel"
	IDScalping           = "scalping"
	IDPatternRecognition = "pattern_recognition"
	IDTrendFollower      = "trend_follower"
	IDMACDMaster         = "macd_master"
	IDSupportResistance  = "support_resistance"
	IDSwingTrader        = "swing_trader"
	IDVolumeProfile      = "volume_profile"
)

const definitionVersion = "1.0.0"

// Definitions returns the built-in bot catalog. Each call returns fresh
// values that the caller may modify.
func Definitions() []Definition {
	return []Definition{
		{
			ID:          IDMeanReversion,
			Name:        "Mean Reversion Bot",
			Description: "Mean reversion and oversold/overbought trading",
			Version:     definitionVersion,
			Defaults: map[string]any{
				"bb_period":       20,
				"bb_std":          2.0,
				"rsi_period":      14,
				"rsi_oversold":    30.0,
				"rsi_overbought":  70.0,
				KeyConfidence:     0.80,
				KeyMinConfidence:  0.70,
				KeyStopPct:        0.03,
				KeyTargetPct:      0.045,
				KeyMaxPositionPct: 0.20,
			},
			Indicators: func(cfg types.StrategyConfig) []indicator.Indicator {
				return []indicator.Indicator{
					indicator.NewBollingerBands(cfg.Int("bb_period", 20), cfg.Float("bb_std", 2)),
					indicator.NewRSI(cfg.Int("rsi_period", 14)),
				}
			},
			Rule:       meanReversionRule,
			Risk:       PercentStops{},
			Sizing:     RiskBudget{},
			Conditions: []string{"Range-bound markets", "Low volatility", "Established support/resistance"},
		},
		{
			ID:          IDMomentum,
			Name:        "Momentum Bot",
			Description: "Breakout and momentum trading strategy",
			Version:     definitionVersion,
			Defaults: map[string]any{
				"range_period":     20,
				"rsi_period":       14,
				"rsi_oversold":     30.0,
				"rsi_overbought":   70.0,
				"volume_period":    20,
				"volume_threshold": 1.5,
				KeyConfidence:      0.75,
				KeyMinConfidence:   0.65,
				KeyStopPct:         0.025,
				KeyTargetPct:       0.05,
				KeyMaxPositionPct:  0.25,
			},
			Indicators: func(cfg types.StrategyConfig) []indicator.Indicator {
				return []indicator.Indicator{
					indicator.NewRollingRange(cfg.Int("range_period", 20), 1, "resistance", "support"),
					indicator.NewRSI(cfg.Int("rsi_period", 14)),
					indicator.NewVolumeRatio(cfg.Int("volume_period", 20)),
				}
			},
			Rule:       momentumRule,
			Risk:       PercentStops{},
			Sizing:     RiskBudget{},
			Conditions: []string{"Trending markets", "High volume", "Clear breakouts"},
		},
		{
			ID:          IDFibonacci,
			Name:        "Fibonacci Trader",
			Description: "Fibonacci retracement level trading",
			Version:     definitionVersion,
			Defaults: map[string]any{
				"lookback":        50,
				"fib_tolerance":   0.005,
				"key_levels":      indicator.DefaultFibonacciLevels(),
				"trade_levels":    []float64{0.382, 0.5, 0.618},
				"trend_period":    20,
				KeyConfidence:     0.77,
				KeyMinConfidence:  0.70,
				KeyStopPct:        0.025,
				KeyTargetPct:      0.07,
				KeyMaxPositionPct: 0.20,
			},
			Indicators: func(cfg types.StrategyConfig) []indicator.Indicator {
				return []indicator.Indicator{
					indicator.NewFibonacci(
						cfg.Int("lookback", 50),
						cfg.Floats("key_levels", indicator.DefaultFibonacciLevels()),
						cfg.Float("fib_tolerance", 0.005),
						cfg.Int("trend_period", 20),
					),
				}
			},
			Rule:        fibonacciRule,
			Risk:        PercentStops{},
			Sizing:      RiskBudget{},
			StrictFloor: true,
			Conditions:  []string{"Trending markets with pullbacks", "Clear swing highs and lows", "Moderate volatility"},
		},
		{
			ID:          IDGrid,
			Name:        "Grid Trading Bot",
			Description: "Automated grid trading with multiple levels",
			Version:     definitionVersion,
			Defaults: map[string]any{
				"range_detection_period": 50,
				"buy_zone":               0.3,
				"sell_zone":              0.7,
				KeyGridSpacing:           0.02,
				KeyBaseSize:              1000.0,
				KeyConfidence:            0.70,
				KeyMinConfidence:         0.65,
				KeyMaxPositionPct:        0.10,
			},
			Indicators: func(cfg types.StrategyConfig) []indicator.Indicator {
				return []indicator.Indicator{
					indicator.NewRangePosition(cfg.Int("range_detection_period", 50)),
				}
			},
			Rule:       gridRule,
			Risk:       GridSpacing{},
			Sizing:     FixedNotional{},
			Conditions: []string{"Range-bound markets", "Low volatility", "Sideways trends"},
		},
		{
			ID:          IDCryptoArbitrage,
			Name:        "Crypto Arbitrage Bot",
			Description: "Cross-exchange cryptocurrency arbitrage",
			Version:     definitionVersion,
			Defaults: map[string]any{
				"min_spread":      0.01,
				KeyBaseSize:       50000.0,
				KeyConfidence:     0.85,
				KeyMinConfidence:  0.80,
				KeyStopPct:        0.002,
				KeyTargetPct:      0.01,
				KeyMaxPositionPct: 0.15,
			},
			Indicators: func(types.StrategyConfig) []indicator.Indicator {
				return []indicator.Indicator{indicator.NewIntrabarSpread()}
			},
			Rule:       arbitrageRule,
			Risk:       PercentStops{},
			Sizing:     FixedNotional{},
			Conditions: []string{"Crypto markets", "High volatility", "Multiple exchanges"},
		},
		{
			ID:          IDNewsSentinel,
			Name:        "News Sentinel Bot",
			Description: "News sentiment and event-driven trading",
			Version:     definitionVersion,
			Defaults: map[string]any{
				"sentiment_threshold":    0.6,
				"volume_spike_threshold": 2.0,
				"volume_period":          20,
				"change_period":          5,
				KeyConfidence:            0.75,
				KeyMinConfidence:         0.70,
				KeyStopPct:               0.03,
				KeyTargetPct:             0.06,
				KeyMaxPositionPct:        0.20,
			},
			Indicators: func(cfg types.StrategyConfig) []indicator.Indicator {
				return []indicator.Indicator{
					indicator.NewVolumeRatio(cfg.Int("volume_period", 20)),
					indicator.NewPctChange("price_change", cfg.Int("change_period", 5)),
				}
			},
			Rule:       newsRule,
			Risk:       PercentStops{},
			Sizing:     RiskBudget{},
			Conditions: []string{"Earnings season", "Major news events", "High volatility"},
		},
		{
			ID:          IDScalping,
			Name:        "Scalping Bot",
			Description: "High-frequency scalping strategy",
			Version:     definitionVersion,
			Defaults: map[string]any{
				"ema_fast":        5,
				"ema_slow":        15,
				"momentum_period": 5,
				KeyBaseSize:       10000.0,
				KeyConfidence:     0.70,
				KeyMinConfidence:  0.65,
				KeyStopPct:        0.005,
				KeyTargetPct:      0.01,
				KeyMaxPositionPct: 0.10,
			},
			Indicators: func(cfg types.StrategyConfig) []indicator.Indicator {
				return []indicator.Indicator{
					indicator.NewEMA("ema_fast", cfg.Int("ema_fast", 5)),
					indicator.NewEMA("ema_slow", cfg.Int("ema_slow", 15)),
					indicator.NewPctChange("momentum", cfg.Int("momentum_period", 5)),
				}
			},
			Rule:       scalpingRule,
			Risk:       PercentStops{},
			Sizing:     FixedNotional{},
			Conditions: []string{"High liquidity", "Tight spreads", "Active trading hours"},
		},
		{
			ID:          IDPatternRecognition,
			Name:        "Pattern Recognition Bot",
			Description: "Candlestick pattern trading confirmed by trend",
			Version:     definitionVersion,
			Defaults: map[string]any{
				"sma_period":      20,
				KeyConfidence:     0.72,
				KeyMinConfidence:  0.70,
				KeyStopPct:        0.02,
				KeyTargetPct:      0.05,
				KeyMaxPositionPct: 0.20,
			},
			Indicators: func(cfg types.StrategyConfig) []indicator.Indicator {
				return []indicator.Indicator{
					indicator.NewEngulfing(),
					indicator.NewSMA("sma", cfg.Int("sma_period", 20)),
				}
			},
			Rule:        patternRule,
			Risk:        PercentStops{},
			Sizing:      RiskBudget{},
			StrictFloor: true,
			Conditions:  []string{"Trending markets", "Clear candlestick formations", "Normal volume"},
		},
		{
			ID:          IDTrendFollower,
			Name:        "Trend Follower Bot",
			Description: "Moving average alignment confirmed by MACD",
			Version:     definitionVersion,
			Defaults: map[string]any{
				"sma_fast":        20,
				"sma_slow":        50,
				"macd_fast":       12,
				"macd_slow":       26,
				"macd_signal":     9,
				KeyConfidence:     0.72,
				KeyMinConfidence:  0.70,
				KeyStopPct:        0.04,
				KeyTargetPct:      0.10,
				KeyMaxPositionPct: 0.20,
			},
			Indicators: func(cfg types.StrategyConfig) []indicator.Indicator {
				return []indicator.Indicator{
					indicator.NewSMA("sma_fast", cfg.Int("sma_fast", 20)),
					indicator.NewSMA("sma_slow", cfg.Int("sma_slow", 50)),
					indicator.NewMACD(cfg.Int("macd_fast", 12), cfg.Int("macd_slow", 26), cfg.Int("macd_signal", 9)),
				}
			},
			Rule:       trendRule,
			Risk:       PercentStops{},
			Sizing:     RiskBudget{},
			Conditions: []string{"Strong trends", "Low noise", "Sustained moves"},
		},
		{
			ID:          IDMACDMaster,
			Name:        "MACD Master Bot",
			Description: "MACD and signal line crossover trading",
			Version:     definitionVersion,
			Defaults: map[string]any{
				"macd_fast":       12,
				"macd_slow":       26,
				"macd_signal":     9,
				KeyConfidence:     0.73,
				KeyMinConfidence:  0.70,
				KeyStopPct:        0.03,
				KeyTargetPct:      0.06,
				KeyMaxPositionPct: 0.20,
			},
			Indicators: func(cfg types.StrategyConfig) []indicator.Indicator {
				return []indicator.Indicator{
					indicator.NewMACD(cfg.Int("macd_fast", 12), cfg.Int("macd_slow", 26), cfg.Int("macd_signal", 9)),
				}
			},
			Rule:       macdRule,
			Risk:       PercentStops{},
			Sizing:     RiskBudget{},
			Conditions: []string{"Trending markets", "Momentum shifts", "Medium volatility"},
		},
		{
			ID:          IDSupportResistance,
			Name:        "Support Resistance Bot",
			Description: "Bounces and rejections at horizontal levels",
			Version:     definitionVersion,
			Defaults: map[string]any{
				"level_period":    30,
				"proximity":       0.01,
				"rsi_period":      14,
				KeyConfidence:     0.74,
				KeyMinConfidence:  0.70,
				KeyStopPct:        0.02,
				KeyTargetPct:      0.05,
				KeyMaxPositionPct: 0.20,
			},
			Indicators: func(cfg types.StrategyConfig) []indicator.Indicator {
				return []indicator.Indicator{
					indicator.NewRollingRange(cfg.Int("level_period", 30), 1, "resistance", "support"),
					indicator.NewRSI(cfg.Int("rsi_period", 14)),
				}
			},
			Rule:       supportResistanceRule,
			Risk:       PercentStops{},
			Sizing:     RiskBudget{},
			Conditions: []string{"Range-bound markets", "Established support/resistance", "Low volatility"},
		},
		{
			ID:          IDSwingTrader,
			Name:        "Swing Trader Bot",
			Description: "Multi-day pullback trading in the direction of the trend",
			Version:     definitionVersion,
			Defaults: map[string]any{
				"sma_period":      50,
				"rsi_period":      14,
				"rsi_pullback":    40.0,
				"rsi_rally":       60.0,
				KeyConfidence:     0.71,
				KeyMinConfidence:  0.70,
				KeyStopPct:        0.05,
				KeyTargetPct:      0.12,
				KeyMaxPositionPct: 0.15,
			},
			Indicators: func(cfg types.StrategyConfig) []indicator.Indicator {
				return []indicator.Indicator{
					indicator.NewSMA("sma", cfg.Int("sma_period", 50)),
					indicator.NewRSI(cfg.Int("rsi_period", 14)),
				}
			},
			Rule:       swingRule,
			Risk:       PercentStops{},
			Sizing:     RiskBudget{},
			Conditions: []string{"Trending markets with pullbacks", "Daily timeframes", "Moderate volatility"},
		},
		{
			ID:          IDVolumeProfile,
			Name:        "Volume Profile Bot",
			Description: "Volume surges confirmed by price against VWAP",
			Version:     definitionVersion,
			Defaults: map[string]any{
				"volume_period":    20,
				"volume_threshold": 2.0,
				"vwap_period":      20,
				"change_period":    5,
				KeyConfidence:      0.70,
				KeyMinConfidence:   0.65,
				KeyStopPct:         0.025,
				KeyTargetPct:       0.05,
				KeyMaxPositionPct:  0.20,
			},
			Indicators: func(cfg types.StrategyConfig) []indicator.Indicator {
				return []indicator.Indicator{
					indicator.NewVolumeRatio(cfg.Int("volume_period", 20)),
					indicator.NewVWAP(cfg.Int("vwap_period", 20)),
					indicator.NewPctChange("price_change", cfg.Int("change_period", 5)),
				}
			},
			Rule:       volumeProfileRule,
			Risk:       PercentStops{},
			Sizing:     RiskBudget{},
			Conditions: []string{"High volume sessions", "Institutional activity", "Breakouts"},
		},
	}
}
