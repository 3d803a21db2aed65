package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/shopspring/decimal"

	"FXArchive/internal/model"
)

const secondsPerDay = 86400

// parquetRow is the on-disk row shape: Date as a parquet DATE (days since
// the Unix epoch) and prices as DOUBLE columns.
type parquetRow struct {
	Date   int32   `parquet:"Date,date"`
	Open   float64 `parquet:"Open"`
	High   float64 `parquet:"High"`
	Low    float64 `parquet:"Low"`
	Close  float64 `parquet:"Close"`
	Volume float64 `parquet:"Volume"`
}

// ParquetStore persists the series as a snappy-compressed parquet file.
// Prices are stored as float64, so values read back are float-accurate
// rather than digit-exact.
type ParquetStore struct {
	path string
}

func NewParquetStore(path string) *ParquetStore {
	return &ParquetStore{path: path}
}

func (s *ParquetStore) Path() string { return s.path }

func (s *ParquetStore) Format() string { return "parquet" }

func (s *ParquetStore) Write(series model.Series) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create directory for %s: %w", s.path, err)
	}
	rows := make([]parquetRow, len(series))
	for i, c := range series {
		rows[i] = parquetRow{
			Date:   int32(c.Date.Unix() / secondsPerDay),
			Open:   c.Open.InexactFloat64(),
			High:   c.High.InexactFloat64(),
			Low:    c.Low.InexactFloat64(),
			Close:  c.Close.InexactFloat64(),
			Volume: c.Volume.InexactFloat64(),
		}
	}
	if err := parquet.WriteFile(s.path, rows, parquet.Compression(&parquet.Snappy)); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

func (s *ParquetStore) Read() (model.Series, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("stat %s: %w", s.path, err)
	}
	rows, err := parquet.ReadFile[parquetRow](s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFile, err)
	}
	series := make(model.Series, len(rows))
	for i, r := range rows {
		series[i] = model.Candle{
			Date:   time.Unix(int64(r.Date)*secondsPerDay, 0).UTC(),
			Open:   decimal.NewFromFloat(r.Open),
			High:   decimal.NewFromFloat(r.High),
			Low:    decimal.NewFromFloat(r.Low),
			Close:  decimal.NewFromFloat(r.Close),
			Volume: decimal.NewFromFloat(r.Volume),
		}
	}
	if err := validateAscending(series); err != nil {
		return nil, err
	}
	return series, nil
}
