// Package store persists the canonical candle series to local files and
// reads them back.
package store

import (
	"errors"
	"fmt"

	"FXArchive/internal/model"
)

// Columns is the fixed column order shared by every persisted format.
var Columns = []string{"Date", "Open", "High", "Low", "Close", "Volume"}

var (
	// ErrNotFound marks a read of a destination that was never written.
	ErrNotFound = errors.New("archive file not found")
	// ErrMalformedFile marks a file whose schema or content does not match
	// what this tool writes.
	ErrMalformedFile = errors.New("malformed archive file")
)

// Store binds one archive destination. Write creates missing parent
// directories and replaces any previous file; Read returns the persisted
// series or fails with ErrNotFound / ErrMalformedFile.
type Store interface {
	Write(series model.Series) error
	Read() (model.Series, error)
	Path() string
	Format() string
}

// validateAscending rejects series whose dates are not strictly increasing.
// Writers always produce such files, so a violation (including a duplicate
// date) means the artifact was not written by this tool or was corrupted.
func validateAscending(series model.Series) error {
	for i := 1; i < len(series); i++ {
		if !series[i-1].Date.Before(series[i].Date) {
			return fmt.Errorf("%w: date %s after %s", ErrMalformedFile,
				series[i].Date.Format(model.DateLayout),
				series[i-1].Date.Format(model.DateLayout))
		}
	}
	return nil
}
