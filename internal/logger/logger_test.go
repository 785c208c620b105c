package logger

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type LoggerTestSuite struct {
	suite.Suite
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (suite *LoggerTestSuite) TestNewLogger() {
	logger, err := NewLogger()
	suite.NoError(err)
	suite.NotNil(logger)
	suite.NotNil(logger.Logger)
}

func (suite *LoggerTestSuite) TestNewLoggerWithLevel() {
	logger, err := NewLoggerWithLevel("debug")
	suite.NoError(err)
	suite.True(logger.Core().Enabled(zapcore.DebugLevel))

	_, err = NewLoggerWithLevel("loud")
	suite.Error(err)
}

func (suite *LoggerTestSuite) TestLoggerSyncNilLogger() {
	logger := &Logger{Logger: nil}

	err := logger.Sync()
	suite.NoError(err)
}

func (suite *LoggerTestSuite) TestNopLogger() {
	logger := NewNopLogger()
	suite.NotNil(logger.Logger)
	logger.Warn("discarded", zap.String("strategy", "momentum"))
}

func (suite *LoggerTestSuite) TestNamedAndFromZap() {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core)).Named("engine")

	logger.Info("signal generated", zap.String("strategy", "grid"))

	suite.Equal(1, logs.Len())
	entry := logs.All()[0]
	suite.Equal("engine", entry.LoggerName)
	suite.Equal("grid", entry.ContextMap()["strategy"])
}

func (suite *LoggerTestSuite) TestFromZapNil() {
	logger := FromZap(nil)
	suite.NotNil(logger.Logger)

	var empty *Logger
	suite.NotNil(empty.Named("x").Logger)
}
