package runlog

// Package runlog keeps a local sqlite ledger of completed runs so batch
// results can be compared across input revisions. One row per run.

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at TEXT NOT NULL,
	finished_at TEXT NOT NULL,
	species INTEGER NOT NULL,
	threshold INTEGER NOT NULL,
	orthogroups INTEGER NOT NULL,
	retained INTEGER NOT NULL,
	proteins INTEGER NOT NULL,
	report_path TEXT NOT NULL,
	fasta_path TEXT NOT NULL
)`

// Entry is one recorded run.
type Entry struct {
	Started     time.Time
	Finished    time.Time
	Species     int
	Threshold   int
	Orthogroups int
	Retained    int
	Proteins    int
	ReportPath  string
	FastaPath   string
}

func open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create runs schema: %w", err)
	}
	return db, nil
}

// Append records e into the history database at path, creating the
// database and schema on first use.
func Append(path string, e Entry) error {
	db, err := open(path)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.Exec(`INSERT INTO runs
		(started_at, finished_at, species, threshold, orthogroups, retained, proteins, report_path, fasta_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Started.UTC().Format(time.RFC3339),
		e.Finished.UTC().Format(time.RFC3339),
		e.Species, e.Threshold, e.Orthogroups, e.Retained, e.Proteins,
		e.ReportPath, e.FastaPath)
	return err
}

// List returns all recorded runs, oldest first.
func List(path string) ([]Entry, error) {
	db, err := open(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	rows, err := db.Query(`SELECT started_at, finished_at, species, threshold, orthogroups, retained, proteins, report_path, fasta_path
		FROM runs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var started, finished string
		if err := rows.Scan(&started, &finished, &e.Species, &e.Threshold, &e.Orthogroups,
			&e.Retained, &e.Proteins, &e.ReportPath, &e.FastaPath); err != nil {
			return nil, err
		}
		if e.Started, err = time.Parse(time.RFC3339, started); err != nil {
			return nil, fmt.Errorf("bad started_at %q: %w", started, err)
		}
		if e.Finished, err = time.Parse(time.RFC3339, finished); err != nil {
			return nil, fmt.Errorf("bad finished_at %q: %w", finished, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
