// Package normalize turns the upstream's date-keyed raw payload into the
// canonical ordered candle series.
package normalize

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"FXArchive/internal/model"

	"github.com/shopspring/decimal"
)

var (
	// ErrMalformedDate marks a date key that does not parse as YYYY-MM-DD.
	ErrMalformedDate = errors.New("malformed date")
	// ErrMalformedNumber marks a price field that does not parse as a decimal.
	ErrMalformedNumber = errors.New("malformed number")
)

// Series converts a RawQuote into a Series sorted ascending by date.
// The first unparsable date or price aborts the whole conversion. An empty
// RawQuote yields an empty Series. Volume is always zero.
//
// Duplicate date keys cannot reach this function: RawQuote is a map, and JSON
// decoding collapses repeated keys before we ever see them.
func Series(raw model.RawQuote) (model.Series, error) {
	out := make(model.Series, 0, len(raw))
	for day, rc := range raw {
		c, err := candle(day, rc)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func candle(day string, rc model.RawCandle) (model.Candle, error) {
	date, err := time.Parse(model.DateLayout, day)
	if err != nil {
		return model.Candle{}, fmt.Errorf("%w: %q", ErrMalformedDate, day)
	}

	open, err := price("open", day, rc.Open)
	if err != nil {
		return model.Candle{}, err
	}
	high, err := price("high", day, rc.High)
	if err != nil {
		return model.Candle{}, err
	}
	low, err := price("low", day, rc.Low)
	if err != nil {
		return model.Candle{}, err
	}
	cls, err := price("close", day, rc.Close)
	if err != nil {
		return model.Candle{}, err
	}

	return model.Candle{
		Date:   date.UTC(),
		Open:   open,
		High:   high,
		Low:    low,
		Close:  cls,
		Volume: decimal.Zero,
	}, nil
}

func price(field, day, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s %q on %s", ErrMalformedNumber, field, s, day)
	}
	return d, nil
}
