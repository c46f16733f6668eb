package runlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/KARIMDAVI/savipets-ios/internal/paths"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) a SQLite database at path and
// creates tables and indexes.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), paths.DirPerm); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Set PRAGMAs before any DDL.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite pragma: %w", err)
		}
	}

	ddl := `
CREATE TABLE IF NOT EXISTS runs (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp TEXT    NOT NULL,
    root      TEXT    NOT NULL DEFAULT '',
    force     INTEGER NOT NULL DEFAULT 0,
    dry_run   INTEGER NOT NULL DEFAULT 0,
    fixed     INTEGER NOT NULL DEFAULT 0,
    skipped   INTEGER NOT NULL DEFAULT 0,
    failed    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS file_outcomes (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id   INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    file_num INTEGER NOT NULL,
    name     TEXT    NOT NULL,
    status   TEXT    NOT NULL,
    detail   TEXT    NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_outcomes_run   ON file_outcomes(run_id, file_num);
`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Log(e Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (timestamp, root, force, dry_run, fixed, skipped, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Time.Format(time.RFC3339), e.Root, boolInt(e.Force), boolInt(e.DryRun),
		e.Fixed, e.Skipped, e.Failed,
	)
	if err != nil {
		return err
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for i, f := range e.Files {
		if _, err := tx.Exec(
			`INSERT INTO file_outcomes (run_id, file_num, name, status, detail)
			 VALUES (?, ?, ?, ?, ?)`,
			runID, i+1, f.Name, f.Status, f.Detail,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Entries(days int) ([]Entry, error) {
	query := `SELECT id, timestamp, root, force, dry_run, fixed, skipped, failed FROM runs`
	var args []any
	if days > 0 {
		query += ` WHERE timestamp >= ?`
		args = append(args, DayCutoff(days).Format(time.RFC3339))
	}
	query += ` ORDER BY id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	ids := map[int64]int{} // run id → index in entries
	for rows.Next() {
		var id int64
		var tsStr string
		var force, dryRun int
		var e Entry
		if err := rows.Scan(&id, &tsStr, &e.Root, &force, &dryRun, &e.Fixed, &e.Skipped, &e.Failed); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339, tsStr)
		if err != nil {
			continue
		}
		e.Time = ts
		e.Force = force != 0
		e.DryRun = dryRun != 0
		ids[id] = len(entries)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	foRows, err := s.db.Query(
		`SELECT run_id, name, status, detail FROM file_outcomes ORDER BY run_id, file_num`)
	if err != nil {
		return nil, err
	}
	defer foRows.Close()

	for foRows.Next() {
		var runID int64
		var fo FileOutcome
		if err := foRows.Scan(&runID, &fo.Name, &fo.Status, &fo.Detail); err != nil {
			return nil, err
		}
		if idx, ok := ids[runID]; ok {
			entries[idx].Files = append(entries[idx].Files, fo)
		}
	}
	return entries, foRows.Err()
}

func (s *SQLiteStore) Clean(days int) (int, error) {
	cutoff := DayCutoff(days).Format(time.RFC3339)
	res, err := s.db.Exec(`DELETE FROM runs WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM runs`)
	return err
}

func (s *SQLiteStore) Path() string {
	return s.path
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
