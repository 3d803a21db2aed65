package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used by the upstream API and by
// every persisted artifact.
const DateLayout = "2006-01-02"

// RawCandle holds the four string-encoded prices of one trading day exactly
// as delivered by the upstream API. Field tags follow the Alpha Vantage
// FX_DAILY wire format.
type RawCandle struct {
	Open  string `json:"1. open"`
	High  string `json:"2. high"`
	Low   string `json:"3. low"`
	Close string `json:"4. close"`
}

// RawQuote is the unnormalized daily series: a date-keyed map of raw candles,
// in no particular order. Duplicate dates cannot occur; JSON decoding keeps
// the last value for a repeated key.
type RawQuote map[string]RawCandle

// Candle is one canonical daily OHLCV bar. Volume is always zero: the
// upstream source carries no true FX volume.
type Candle struct {
	Date   time.Time // UTC midnight
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume decimal.Decimal
}

// Equal reports whether two candles carry the same date and prices.
// Decimals compare by value, not scale, so 148.3 equals 148.30.
func (c Candle) Equal(o Candle) bool {
	return c.Date.Equal(o.Date) &&
		c.Open.Equal(o.Open) &&
		c.High.Equal(o.High) &&
		c.Low.Equal(o.Low) &&
		c.Close.Equal(o.Close) &&
		c.Volume.Equal(o.Volume)
}

// Series is a date-ordered run of candles for one currency pair: strictly
// increasing by date, no duplicates. It is built once per fetch and never
// mutated afterwards.
type Series []Candle

// Equal reports whether two series hold the same candles in the same order.
func (s Series) Equal(o Series) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if !s[i].Equal(o[i]) {
			return false
		}
	}
	return true
}
