package datasource

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Protrader1988/protrader-terminal-backend/internal/logger"
	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"
)

var readers = map[string]string{
	".csv":     "read_csv_auto",
	".parquet": "read_parquet",
}

type DuckDBDataSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDataSource opens a DuckDB database at path. An empty path opens an
// in-memory database.
func NewDataSource(path string, log *logger.Logger) (*DuckDBDataSource, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}

	if _, err := db.Exec(`SET threads=4;`); err != nil {
		_ = db.Close()

		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to configure duckdb", err)
	}

	return &DuckDBDataSource{
		db:     db,
		logger: log.Named("datasource"),
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Initialize implements DataSource.
func (d *DuckDBDataSource) Initialize(path string) error {
	reader, ok := readers[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return errors.Newf(errors.ErrCodeInvalidParameter, "unsupported data file %s, want .csv or .parquet", path)
	}

	d.logger.Debug("Initializing DuckDB data source", zap.String("path", path), zap.String("reader", reader))

	if _, err := d.db.Exec(`DROP VIEW IF EXISTS market_data;`); err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to drop existing view", err)
	}

	// CREATE VIEW is not expressible in squirrel. Columns are cast so CSV
	// type inference cannot leak integer prices or string times.
	query := fmt.Sprintf(`
		CREATE VIEW market_data AS
		SELECT
			CAST(time AS TIMESTAMP) AS time,
			CAST(symbol AS VARCHAR) AS symbol,
			CAST(open AS DOUBLE) AS open,
			CAST(high AS DOUBLE) AS high,
			CAST(low AS DOUBLE) AS low,
			CAST(close AS DOUBLE) AS close,
			CAST(volume AS DOUBLE) AS volume
		FROM %s('%s');
	`, reader, strings.ReplaceAll(path, "'", "''"))

	if _, err := d.db.Exec(query); err != nil {
		return errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to load %s", path)
	}

	return nil
}

// Symbols implements DataSource.
func (d *DuckDBDataSource) Symbols() ([]string, error) {
	query, args, err := d.sq.Select("DISTINCT symbol").From("market_data").OrderBy("symbol ASC").ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query symbols", err)
	}
	defer rows.Close()

	var symbols []string

	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan symbol", err)
		}

		symbols = append(symbols, symbol)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating rows", err)
	}

	return symbols, nil
}

// Count implements DataSource.
func (d *DuckDBDataSource) Count(symbol string) (int, error) {
	query, args, err := d.sq.Select("COUNT(*)").From("market_data").Where(squirrel.Eq{"symbol": symbol}).ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	var count int
	if err := d.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count bars", err)
	}

	return count, nil
}

// ReadSeries implements DataSource.
func (d *DuckDBDataSource) ReadSeries(q Query) (types.MarketSeries, error) {
	builder := d.sq.Select("time", "symbol", "open", "high", "low", "close", "volume").
		From("market_data").
		Where(squirrel.Eq{"symbol": q.Symbol})

	if q.Start.IsSome() {
		builder = builder.Where(squirrel.GtOrEq{"time": q.Start.Unwrap()})
	}

	if q.End.IsSome() {
		builder = builder.Where(squirrel.LtOrEq{"time": q.End.Unwrap()})
	}

	// The latest bars are read newest first and reversed below.
	latest := q.Limit.IsSome()
	if latest {
		builder = builder.OrderBy("time DESC").Limit(uint64(max(q.Limit.Unwrap(), 0)))
	} else {
		builder = builder.OrderBy("time ASC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return types.MarketSeries{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	bars, err := d.query(query, args...)
	if err != nil {
		return types.MarketSeries{}, err
	}

	if len(bars) == 0 {
		return types.MarketSeries{}, errors.Newf(errors.ErrCodeNoDataFound, "no bars for %s", q.Symbol)
	}

	if latest {
		for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
			bars[i], bars[j] = bars[j], bars[i]
		}
	}

	d.logger.Debug("Read series", zap.String("symbol", q.Symbol), zap.Int("bars", len(bars)))

	return types.NewMarketSeries(q.Symbol, bars)
}

// ReadLastData implements DataSource.
func (d *DuckDBDataSource) ReadLastData(symbol string) (types.MarketData, error) {
	query, args, err := d.sq.Select("time", "symbol", "open", "high", "low", "close", "volume").
		From("market_data").
		Where(squirrel.Eq{"symbol": symbol}).
		OrderBy("time DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return types.MarketData{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	bars, err := d.query(query, args...)
	if err != nil {
		return types.MarketData{}, err
	}

	if len(bars) == 0 {
		return types.MarketData{}, errors.Newf(errors.ErrCodeNoDataFound, "no bars for %s", symbol)
	}

	return bars[0], nil
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	return d.db.Close()
}

func (d *DuckDBDataSource) query(query string, args ...any) ([]types.MarketData, error) {
	stmt, err := d.db.Prepare(query)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to prepare query", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query market data", err)
	}
	defer rows.Close()

	result := make([]types.MarketData, 0, 1000)

	for rows.Next() {
		var (
			timestamp                      time.Time
			open, high, low, close, volume float64
			symbol                         string
		)

		if err := rows.Scan(&timestamp, &symbol, &open, &high, &low, &close, &volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan row", err)
		}

		result = append(result, types.MarketData{
			Symbol: symbol,
			Time:   timestamp,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: volume,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating rows", err)
	}

	return result, nil
}

// LoadAll reads the full series of every symbol, or of the given symbols
// when any are named.
func LoadAll(ds DataSource, symbols ...string) (map[string]types.MarketSeries, error) {
	if len(symbols) == 0 {
		all, err := ds.Symbols()
		if err != nil {
			return nil, err
		}

		symbols = all
	}

	out := make(map[string]types.MarketSeries, len(symbols))

	for _, symbol := range symbols {
		series, err := ds.ReadSeries(Query{Symbol: symbol})
		if err != nil {
			return nil, err
		}

		out[symbol] = series
	}

	return out, nil
}
