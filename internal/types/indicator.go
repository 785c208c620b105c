package types

type IndicatorType string

const (
	IndicatorTypeSMA            IndicatorType = "sma"
	IndicatorTypeEMA            IndicatorType = "ema"
	IndicatorTypeRSI            IndicatorType = "rsi"
	IndicatorTypeBollingerBands IndicatorType = "bollinger_bands"
	IndicatorTypeMACD           IndicatorType = "macd"
	IndicatorTypeATR            IndicatorType = "atr"
	IndicatorTypeRollingRange   IndicatorType = "rolling_range"
	IndicatorTypeRangePosition  IndicatorType = "range_position"
	IndicatorTypeVolumeRatio    IndicatorType = "volume_ratio"
	IndicatorTypePctChange      IndicatorType = "pct_change"
	IndicatorTypeFibonacci      IndicatorType = "fibonacci"
	IndicatorTypeIntrabarSpread IndicatorType = "intrabar_spread"
	IndicatorTypeVWAP           IndicatorType = "vwap"
	IndicatorTypeEngulfing      IndicatorType = "engulfing"
	IndicatorTypePrice          IndicatorType = "price"
)
