package datasource

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Protrader1988/protrader-terminal-backend/internal/logger"
	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"
)

type DuckDBDataSourceTestSuite struct {
	suite.Suite
	ds *DuckDBDataSource
}

func TestDuckDBDataSourceSuite(t *testing.T) {
	suite.Run(t, new(DuckDBDataSourceTestSuite))
}

// Rows are deliberately out of time order.
var fixtureRows = []string{
	"time,symbol,open,high,low,close,volume",
	"2024-01-01 09:32:00,BTC,102,103,101,103,12",
	"2024-01-01 09:30:00,BTC,100,101,99,101,10",
	"2024-01-01 09:31:00,BTC,101,102,100,102,11",
	"2024-01-01 09:30:00,ETH,50,51,49,50.5,5",
	"2024-01-01 09:33:00,BTC,103,105,102,104,13",
}

func (suite *DuckDBDataSourceTestSuite) SetupTest() {
	ds, err := NewDataSource(":memory:", logger.NewNopLogger())
	suite.Require().NoError(err)

	suite.ds = ds

	path := filepath.Join(suite.T().TempDir(), "bars.csv")
	suite.Require().NoError(os.WriteFile(path, []byte(strings.Join(fixtureRows, "\n")+"\n"), 0o600))
	suite.Require().NoError(suite.ds.Initialize(path))
}

func (suite *DuckDBDataSourceTestSuite) TearDownTest() {
	suite.Require().NoError(suite.ds.Close())
}

func at(minute int) time.Time {
	return time.Date(2024, 1, 1, 9, minute, 0, 0, time.UTC)
}

func (suite *DuckDBDataSourceTestSuite) TestSymbols() {
	symbols, err := suite.ds.Symbols()
	suite.Require().NoError(err)
	suite.Equal([]string{"BTC", "ETH"}, symbols)
}

func (suite *DuckDBDataSourceTestSuite) TestCount() {
	count, err := suite.ds.Count("BTC")
	suite.Require().NoError(err)
	suite.Equal(4, count)

	count, err = suite.ds.Count("DOGE")
	suite.Require().NoError(err)
	suite.Equal(0, count)
}

func (suite *DuckDBDataSourceTestSuite) TestReadSeriesIsOrdered() {
	series, err := suite.ds.ReadSeries(Query{Symbol: "BTC"})
	suite.Require().NoError(err)

	suite.Equal("BTC", series.Symbol())
	suite.Equal([]float64{101, 102, 103, 104}, series.Closes())
	suite.True(series.At(0).Time.Equal(at(30)))

	latest, ok := series.Latest()
	suite.True(ok)
	suite.InDelta(105.0, latest.High, 1e-9)
	suite.InDelta(13.0, latest.Volume, 1e-9)
}

func (suite *DuckDBDataSourceTestSuite) TestReadSeriesFilters() {
	series, err := suite.ds.ReadSeries(Query{
		Symbol: "BTC",
		Start:  optional.Some(at(31)),
		End:    optional.Some(at(32)),
	})
	suite.Require().NoError(err)
	suite.Equal([]float64{102, 103}, series.Closes())

	series, err = suite.ds.ReadSeries(Query{Symbol: "BTC", Limit: optional.Some(2)})
	suite.Require().NoError(err)
	suite.Equal([]float64{103, 104}, series.Closes())
}

func (suite *DuckDBDataSourceTestSuite) TestReadSeriesUnknownSymbol() {
	_, err := suite.ds.ReadSeries(Query{Symbol: "DOGE"})
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeNoDataFound))
}

func (suite *DuckDBDataSourceTestSuite) TestReadLastData() {
	bar, err := suite.ds.ReadLastData("ETH")
	suite.Require().NoError(err)
	suite.InDelta(50.5, bar.Close, 1e-9)
	suite.Equal("ETH", bar.Symbol)

	_, err = suite.ds.ReadLastData("DOGE")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeNoDataFound))
}

func (suite *DuckDBDataSourceTestSuite) TestLoadAll() {
	all, err := LoadAll(suite.ds)
	suite.Require().NoError(err)
	suite.Len(all, 2)
	suite.Equal(4, all["BTC"].Len())
	suite.Equal(1, all["ETH"].Len())

	some, err := LoadAll(suite.ds, "ETH")
	suite.Require().NoError(err)
	suite.Len(some, 1)
}

func (suite *DuckDBDataSourceTestSuite) TestInitializeRejectsUnknownFormat() {
	err := suite.ds.Initialize("bars.json")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *DuckDBDataSourceTestSuite) TestInitializeMissingFile() {
	err := suite.ds.Initialize(filepath.Join(suite.T().TempDir(), "missing.csv"))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeQueryFailed))
}

func (suite *DuckDBDataSourceTestSuite) TestReadSeriesRejectsNonFiniteBars() {
	rows := append([]string{}, fixtureRows...)
	rows = append(rows, "2024-01-01 09:34:00,BTC,104,106,103,nan,14")

	path := filepath.Join(suite.T().TempDir(), "nan.csv")
	suite.Require().NoError(os.WriteFile(path, []byte(strings.Join(rows, "\n")+"\n"), 0o600))
	suite.Require().NoError(suite.ds.Initialize(path))

	_, err := suite.ds.ReadSeries(Query{Symbol: "BTC"})
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidSeries))

	_, err = LoadAll(suite.ds)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidSeries))

	eth, err := suite.ds.ReadSeries(Query{Symbol: "ETH"})
	suite.Require().NoError(err)
	suite.Equal(1, eth.Len())
}
