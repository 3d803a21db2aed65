package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"FXArchive/internal/model"
)

// CSVStore persists the series as a plain-text CSV file with a header row.
// Prices are written as decimal strings, so a written file reads back with
// exactly the same values.
type CSVStore struct {
	path string
}

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

func (s *CSVStore) Path() string { return s.path }

func (s *CSVStore) Format() string { return "csv" }

func (s *CSVStore) Write(series model.Series) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create directory for %s: %w", s.path, err)
	}
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", s.path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		f.Close()
		return fmt.Errorf("write header to %s: %w", s.path, err)
	}
	for _, c := range series {
		record := []string{
			c.Date.Format(model.DateLayout),
			c.Open.String(),
			c.High.String(),
			c.Low.String(),
			c.Close.String(),
			c.Volume.String(),
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("write row to %s: %w", s.path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", s.path, err)
	}
	return f.Close()
}

func (s *CSVStore) Read() (model.Series, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s is empty", ErrMalformedFile, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFile, err)
	}
	if !sameColumns(header) {
		return nil, fmt.Errorf("%w: unexpected header %v", ErrMalformedFile, header)
	}

	var series model.Series
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Includes rows with the wrong number of fields.
			return nil, fmt.Errorf("%w: %v", ErrMalformedFile, err)
		}
		candle, err := parseRecord(record)
		if err != nil {
			return nil, err
		}
		series = append(series, candle)
	}
	if err := validateAscending(series); err != nil {
		return nil, err
	}
	return series, nil
}

func sameColumns(header []string) bool {
	if len(header) != len(Columns) {
		return false
	}
	for i, name := range Columns {
		if header[i] != name {
			return false
		}
	}
	return true
}

func parseRecord(record []string) (model.Candle, error) {
	date, err := time.Parse(model.DateLayout, record[0])
	if err != nil {
		return model.Candle{}, fmt.Errorf("%w: invalid date %q", ErrMalformedFile, record[0])
	}
	var c model.Candle
	c.Date = date.UTC()
	for i, dst := range []*decimal.Decimal{&c.Open, &c.High, &c.Low, &c.Close, &c.Volume} {
		v, err := decimal.NewFromString(record[i+1])
		if err != nil {
			return model.Candle{}, fmt.Errorf("%w: invalid %s %q on %s",
				ErrMalformedFile, Columns[i+1], record[i+1], record[0])
		}
		*dst = v
	}
	return c, nil
}
