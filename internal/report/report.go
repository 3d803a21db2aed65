// Package report derives summary statistics from an archived series.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"FXArchive/internal/model"
)

const daysPerYear = 365.25

// Summary describes the outcome of one archive run.
type Summary struct {
	Pair         string
	Source       string
	Rows         int
	FirstDate    time.Time
	LastDate     time.Time
	MinClose     decimal.Decimal
	MaxClose     decimal.Decimal
	Years        float64
	Destinations []string
	Duration     time.Duration
}

// Build computes the statistics for a series sorted by ascending date.
// Destinations and Duration are filled in by the caller.
func Build(pair, source string, series model.Series) *Summary {
	s := &Summary{Pair: pair, Source: source, Rows: len(series)}
	if len(series) == 0 {
		return s
	}

	s.FirstDate = series[0].Date
	s.LastDate = series[len(series)-1].Date
	s.MinClose = series[0].Close
	s.MaxClose = series[0].Close
	for _, c := range series[1:] {
		if c.Close.LessThan(s.MinClose) {
			s.MinClose = c.Close
		}
		if c.Close.GreaterThan(s.MaxClose) {
			s.MaxClose = c.Close
		}
	}
	s.Years = s.LastDate.Sub(s.FirstDate).Hours() / 24 / daysPerYear
	return s
}

// Format renders the summary as a plain-text report.
func (s *Summary) Format() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("FX archive run | %s via %s\n", s.Pair, s.Source))
	b.WriteString(fmt.Sprintf("Rows: %d\n", s.Rows))
	if s.Rows > 0 {
		b.WriteString(fmt.Sprintf("Range: %s to %s (%.1f years)\n",
			s.FirstDate.Format(model.DateLayout),
			s.LastDate.Format(model.DateLayout), s.Years))
		b.WriteString(fmt.Sprintf("Close: min %s, max %s\n",
			s.MinClose.String(), s.MaxClose.String()))
	}
	for _, dst := range s.Destinations {
		b.WriteString(fmt.Sprintf("Wrote %s\n", dst))
	}
	b.WriteString(fmt.Sprintf("Took %s", s.Duration.Round(time.Millisecond)))
	return b.String()
}
