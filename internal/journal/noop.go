package journal

// NoopJournal is a no-op implementation used when SQLite is not configured.
type NoopJournal struct{}

func NewNoopJournal() *NoopJournal { return &NoopJournal{} }

func (n *NoopJournal) RecordRun(_ *RunRecord) error            { return nil }
func (n *NoopJournal) RecentRuns(_ int) ([]RunRecord, error)   { return nil, nil }
func (n *NoopJournal) Close() error                            { return nil }
