// Package runlog persists one entry per flattening run so earlier fixes
// can be reviewed after the fact (`fixicons history`). Two backends
// exist: a flat log file and a SQLite database. Logging is best-effort;
// a runlog failure must never fail a run.
package runlog

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/KARIMDAVI/savipets-ios/internal/config"
	"github.com/KARIMDAVI/savipets-ios/internal/paths"
	"github.com/KARIMDAVI/savipets-ios/internal/runner"
)

// FileOutcome is the persisted per-file result of a run.
type FileOutcome struct {
	Name   string
	Status string // fixed | skipped | failed
	Detail string // skip reason or error text, empty for fixed
}

// Entry is one recorded run.
type Entry struct {
	Time    time.Time
	Root    string
	Force   bool
	DryRun  bool
	Fixed   int
	Skipped int
	Failed  int
	Files   []FileOutcome
}

// NewEntry converts a runner summary into a log entry.
func NewEntry(sum runner.Summary, force bool) Entry {
	e := Entry{
		Time:   time.Now(),
		Root:   sum.Root,
		Force:  force,
		DryRun: sum.DryRun,
	}
	e.Fixed, e.Skipped, e.Failed = sum.Counts()
	for _, o := range sum.Outcomes {
		f := FileOutcome{Name: o.Name, Status: string(o.Status), Detail: o.Reason}
		if o.Err != nil {
			f.Detail = o.Err.Error()
		}
		e.Files = append(e.Files, f)
	}
	return e
}

// Format renders an entry the way the flat log file stores it.
func (e Entry) Format() string {
	ts := e.Time.Format(time.RFC3339)
	var b strings.Builder
	fmt.Fprintf(&b, "%s  root=%s  force=%t  dry_run=%t  fixed=%d  skipped=%d  failed=%d\n",
		ts, e.Root, e.Force, e.DryRun, e.Fixed, e.Skipped, e.Failed)
	for i, f := range e.Files {
		fmt.Fprintf(&b, "%s    file[%d] %s %s", ts, i+1, f.Status, f.Name)
		if f.Detail != "" {
			fmt.Fprintf(&b, " (%s)", f.Detail)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Store abstracts run-log storage.
type Store interface {
	Log(e Entry) error
	Entries(days int) ([]Entry, error) // 0 = all, oldest first
	Clean(days int) (int, error)       // remove entries older than the cutoff, return removed count
	Clear() error                      // delete all data
	Path() string
	Close() error
}

// Open returns the store selected by cfg, located in the user data dir.
func Open(cfg config.Config) (Store, error) {
	switch cfg.LogBackend {
	case config.BackendSQLite:
		return NewSQLiteStore(filepath.Join(paths.DataDir(), paths.DBFileName))
	default:
		return NewFileStore(filepath.Join(paths.DataDir(), paths.LogFileName)), nil
	}
}

// DayCutoff returns midnight N days ago (inclusive) in the local timezone.
// For days=1 it returns today at midnight, for days=7 it returns 6 days ago, etc.
func DayCutoff(days int) time.Time {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -(days - 1))
}

// SplitBlocks splits flat-file log content into blank-line-separated
// entry blocks, dropping empty ones.
func SplitBlocks(content string) []string {
	var blocks []string
	for _, b := range strings.Split(content, "\n\n") {
		b = strings.TrimSpace(b)
		if b != "" {
			blocks = append(blocks, b)
		}
	}
	return blocks
}
