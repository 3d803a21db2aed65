// Package archive orchestrates one fetch, normalize, persist cycle.
package archive

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"FXArchive/internal/fetcher"
	"FXArchive/internal/journal"
	"FXArchive/internal/model"
	"FXArchive/internal/normalize"
	"FXArchive/internal/report"
	"FXArchive/internal/store"
)

// Archiver wires a fetcher to one or more stores and journals each run.
type Archiver struct {
	Fetcher    fetcher.Fetcher
	Stores     []store.Store
	Journal    journal.Journal
	FromSymbol string
	ToSymbol   string
}

// NewArchiver creates a new Archiver.
func NewArchiver(f fetcher.Fetcher, stores []store.Store, j journal.Journal, fromSymbol, toSymbol string) *Archiver {
	return &Archiver{
		Fetcher:    f,
		Stores:     stores,
		Journal:    j,
		FromSymbol: fromSymbol,
		ToSymbol:   toSymbol,
	}
}

// Pair returns the slash-joined pair label, e.g. "USD/JPY".
func (a *Archiver) Pair() string {
	return a.FromSymbol + "/" + a.ToSymbol
}

// Run fetches the full daily history, normalizes it, and writes every
// configured destination. The outcome is journaled either way; journal
// failures are logged but never fail the run.
func (a *Archiver) Run(ctx context.Context) (*report.Summary, error) {
	start := time.Now()

	raw, err := a.Fetcher.FetchDaily(ctx, a.FromSymbol, a.ToSymbol)
	if err != nil {
		return nil, a.fail(start, fmt.Errorf("fetch %s: %w", a.Pair(), err))
	}
	series, err := normalize.Series(raw)
	if err != nil {
		return nil, a.fail(start, fmt.Errorf("normalize %s: %w", a.Pair(), err))
	}
	log.Printf("[INFO] fetched %d daily candles for %s via %s", len(series), a.Pair(), a.Fetcher.Name())

	summary := report.Build(a.Pair(), a.Fetcher.Name(), series)
	for _, st := range a.Stores {
		if err := st.Write(series); err != nil {
			return nil, a.fail(start, fmt.Errorf("write %s: %w", st.Path(), err))
		}
		log.Printf("[INFO] wrote %d rows to %s (%s)", len(series), st.Path(), st.Format())
		summary.Destinations = append(summary.Destinations, st.Path())
	}
	summary.Duration = time.Since(start)

	a.journalSuccess(start, summary)
	return summary, nil
}

func (a *Archiver) journalSuccess(start time.Time, s *report.Summary) {
	rec := &journal.RunRecord{
		Timestamp:    start,
		Pair:         s.Pair,
		Source:       s.Source,
		Status:       journal.StatusOK,
		Rows:         s.Rows,
		Destinations: strings.Join(s.Destinations, ","),
		Duration:     s.Duration,
	}
	if s.Rows > 0 {
		rec.FirstDate = s.FirstDate.Format(model.DateLayout)
		rec.LastDate = s.LastDate.Format(model.DateLayout)
		rec.MinClose = s.MinClose.String()
		rec.MaxClose = s.MaxClose.String()
	}
	if err := a.Journal.RecordRun(rec); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
}

func (a *Archiver) fail(start time.Time, err error) error {
	rec := &journal.RunRecord{
		Timestamp: start,
		Pair:      a.Pair(),
		Source:    a.Fetcher.Name(),
		Status:    journal.StatusError,
		ErrText:   err.Error(),
		Duration:  time.Since(start),
	}
	if jerr := a.Journal.RecordRun(rec); jerr != nil {
		log.Printf("[ERROR] record failed run: %v", jerr)
	}
	return err
}
