package mocks

//go:generate mockgen -destination=./mock_indicator.go -package=mocks github.com/Protrader1988/protrader-terminal-backend/internal/indicator Indicator
//go:generate mockgen -destination=./mock_strategy.go -package=mocks github.com/Protrader1988/protrader-terminal-backend/internal/strategy Strategy
