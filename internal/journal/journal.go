// Package journal keeps a local history of archive runs.
package journal

import "time"

// Run outcome labels.
const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// RunRecord holds everything worth keeping about one archive run.
// Price bounds are stored as decimal strings so nothing is lost between
// runs. ErrText is empty for successful runs.
type RunRecord struct {
	Timestamp    time.Time
	Pair         string
	Source       string
	Status       string
	Rows         int
	FirstDate    string
	LastDate     string
	MinClose     string
	MaxClose     string
	Destinations string
	ErrText      string
	Duration     time.Duration
}

// Journal persists run history for later inspection.
type Journal interface {
	RecordRun(rec *RunRecord) error
	RecentRuns(limit int) ([]RunRecord, error)
	Close() error
}
