// Package datasource loads historical bars from CSV or Parquet files into
// market series.
package datasource

import (
	"time"

	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
	"github.com/moznion/go-optional"
)

// Query selects bars of one symbol. Start and End are inclusive. Limit keeps
// only the latest bars of the selection.
type Query struct {
	Symbol string
	Start  optional.Option[time.Time]
	End    optional.Option[time.Time]
	Limit  optional.Option[int]
}

type DataSource interface {
	// Initialize exposes the file at path as the market_data view. The file
	// format is picked from the extension.
	Initialize(path string) error
	// Symbols returns the distinct symbols, sorted
	Symbols() ([]string, error)
	// Count returns the number of bars for symbol
	Count(symbol string) (int, error)
	// ReadSeries returns the bars matching q, oldest first
	ReadSeries(q Query) (types.MarketSeries, error)
	// ReadLastData returns the newest bar for symbol
	ReadLastData(symbol string) (types.MarketData, error)
	// Close releases the database
	Close() error
}
