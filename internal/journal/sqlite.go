package journal

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteJournal persists run history to a SQLite database.
type SQLiteJournal struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteJournal opens (or creates) the SQLite database and runs migrations.
func NewSQLiteJournal(dbPath string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so ad-hoc readers do not block the archiver's writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	j := &SQLiteJournal{db: db}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite journal opened: %s", dbPath)
	return j, nil
}

func (j *SQLiteJournal) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS fetch_runs (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			pair         TEXT,
			source       TEXT,
			status       TEXT,
			row_count    INTEGER,
			first_date   TEXT,
			last_date    TEXT,
			min_close    TEXT,
			max_close    TEXT,
			destinations TEXT,
			error        TEXT,
			duration_ms  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetch_runs_ts ON fetch_runs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := j.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (j *SQLiteJournal) RecordRun(rec *RunRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := j.db.Exec(`INSERT INTO fetch_runs
		(timestamp, pair, source, status, row_count, first_date, last_date,
		 min_close, max_close, destinations, error, duration_ms)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		ts.Unix(), rec.Pair, rec.Source, rec.Status, rec.Rows,
		rec.FirstDate, rec.LastDate, rec.MinClose, rec.MaxClose,
		rec.Destinations, rec.ErrText, rec.Duration.Milliseconds(),
	)
	return err
}

func (j *SQLiteJournal) RecentRuns(limit int) ([]RunRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	rows, err := j.db.Query(`SELECT timestamp, pair, source, status, row_count,
		first_date, last_date, min_close, max_close, destinations, error, duration_ms
		FROM fetch_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query fetch_runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var ts, durMs int64
		if err := rows.Scan(&ts, &rec.Pair, &rec.Source, &rec.Status, &rec.Rows,
			&rec.FirstDate, &rec.LastDate, &rec.MinClose, &rec.MaxClose,
			&rec.Destinations, &rec.ErrText, &durMs); err != nil {
			return nil, fmt.Errorf("scan fetch_runs: %w", err)
		}
		rec.Timestamp = time.Unix(ts, 0)
		rec.Duration = time.Duration(durMs) * time.Millisecond
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	log.Println("[INFO] closing sqlite journal")
	return j.db.Close()
}
