package errors

import "fmt"

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown  ErrorCode = 1
	ErrCodeCanceled ErrorCode = 2

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidSignal        ErrorCode = 102
	ErrCodeInvalidTakeProfit    ErrorCode = 103
	ErrCodeInvalidStopLoss      ErrorCode = 104
	ErrCodeInvalidSeries        ErrorCode = 105
	ErrCodeInsufficientData     ErrorCode = 106
	ErrCodeInvalidType          ErrorCode = 107
	ErrCodeInvalidPeriod        ErrorCode = 108
	ErrCodeMissingParameter     ErrorCode = 109
	ErrCodeInvalidVersion       ErrorCode = 110
	ErrCodeInvalidThreshold     ErrorCode = 112

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeNoDataFound           ErrorCode = 204

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeIndicatorCalculation   ErrorCode = 302

	// Strategy errors (400-499)
	ErrCodeStrategyNotFound      ErrorCode = 400
	ErrCodeStrategyConfigError   ErrorCode = 401
	ErrCodeStrategyRuntimeError  ErrorCode = 402
	ErrCodeStrategyAlreadyExists ErrorCode = 403
	ErrCodeVersionMismatch       ErrorCode = 404

	// Backtest errors (600-699)
	ErrCodeBacktestConfigError ErrorCode = 602
	ErrCodeBacktestNoStrategy  ErrorCode = 604
	ErrCodeBacktestNoData      ErrorCode = 606
	ErrCodeBacktestWriteFailed ErrorCode = 609

	// Callback errors (800-899)
	ErrCodeCallbackFailed ErrorCode = 800
)

var codeNames = map[ErrorCode]string{
	ErrCodeUnknown:                "unknown",
	ErrCodeCanceled:               "canceled",
	ErrCodeInvalidParameter:       "invalid_parameter",
	ErrCodeInvalidConfiguration:   "invalid_configuration",
	ErrCodeInvalidSignal:          "invalid_signal",
	ErrCodeInvalidTakeProfit:      "invalid_take_profit",
	ErrCodeInvalidStopLoss:        "invalid_stop_loss",
	ErrCodeInvalidSeries:          "invalid_series",
	ErrCodeInsufficientData:       "insufficient_data",
	ErrCodeInvalidType:            "invalid_type",
	ErrCodeInvalidPeriod:          "invalid_period",
	ErrCodeMissingParameter:       "missing_parameter",
	ErrCodeInvalidVersion:         "invalid_version",
	ErrCodeInvalidThreshold:       "invalid_threshold",
	ErrCodeDataNotFound:           "data_not_found",
	ErrCodeDataSourceUnavailable:  "data_source_unavailable",
	ErrCodeQueryFailed:            "query_failed",
	ErrCodeNoDataFound:            "no_data_found",
	ErrCodeIndicatorNotFound:      "indicator_not_found",
	ErrCodeIndicatorAlreadyExists: "indicator_already_exists",
	ErrCodeIndicatorCalculation:   "indicator_calculation",
	ErrCodeStrategyNotFound:       "strategy_not_found",
	ErrCodeStrategyConfigError:    "strategy_config_error",
	ErrCodeStrategyRuntimeError:   "strategy_runtime_error",
	ErrCodeStrategyAlreadyExists:  "strategy_already_exists",
	ErrCodeVersionMismatch:        "version_mismatch",
	ErrCodeBacktestConfigError:    "backtest_config_error",
	ErrCodeBacktestNoStrategy:     "backtest_no_strategy",
	ErrCodeBacktestNoData:         "backtest_no_data",
	ErrCodeBacktestWriteFailed:    "backtest_write_failed",
	ErrCodeCallbackFailed:         "callback_failed",
}

// String returns the snake_case name of the code, or its number when unnamed.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}

	return fmt.Sprintf("code_%d", int(c))
}
