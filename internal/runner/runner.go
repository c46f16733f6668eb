// Package runner walks the configured icon list and ensures each file
// is re-saved without an alpha channel, keeping a backup of the
// pre-fix bytes. Failures never cross the per-file boundary: every
// file gets exactly one Outcome and the run always reaches the end of
// the list.
package runner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KARIMDAVI/savipets-ios/internal/config"
	"github.com/KARIMDAVI/savipets-ios/internal/flatten"
	"github.com/KARIMDAVI/savipets-ios/internal/paths"
)

// Status classifies what happened to a single icon file.
type Status string

const (
	StatusFixed   Status = "fixed"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Skip reasons surfaced in Outcome.Reason.
const (
	ReasonNotFound     = "not found"
	ReasonBackupExists = "backup exists"
	ReasonDryRun       = "dry run"
)

// Outcome records the result for one icon file.
type Outcome struct {
	Name   string // filename relative to the root
	Path   string // full icon path
	Backup string // sibling .backup path, set once the backup exists
	Status Status
	Reason string // set for skips
	Err    error  // set for failures
}

// Summary is the structured report for one run.
type Summary struct {
	Root        string
	RootMissing bool
	DryRun      bool
	Outcomes    []Outcome
}

// Counts returns the number of fixed, skipped and failed files.
func (s Summary) Counts() (fixed, skipped, failed int) {
	for _, o := range s.Outcomes {
		switch o.Status {
		case StatusFixed:
			fixed++
		case StatusSkipped:
			skipped++
		case StatusFailed:
			failed++
		}
	}
	return
}

// OK reports whether the run completed with nothing to worry about:
// the root existed and no file failed. Skips are fine.
func (s Summary) OK() bool {
	if s.RootMissing {
		return false
	}
	_, _, failed := s.Counts()
	return failed == 0
}

// Options tweak a run without touching the config.
type Options struct {
	// Force lets an existing .backup file be overwritten by the rename.
	// Without it a file whose backup already exists is skipped, so a
	// re-run cannot clobber the only transparent copy of an icon.
	Force bool
	// DryRun reports what would happen without touching any file.
	DryRun bool
}

// Run processes each configured icon in order: rename the original to
// its .backup sibling, then flatten the backup into an opaque PNG at
// the original path. If the root directory is missing nothing at all
// is touched. A failed flatten leaves that file at its backup path
// with nothing at the icon path; the Outcome records where the bytes
// went.
func Run(cfg config.Config, opts Options) Summary {
	sum := Summary{Root: cfg.Root, DryRun: opts.DryRun}

	if info, err := os.Stat(cfg.Root); err != nil || !info.IsDir() {
		sum.RootMissing = true
		return sum
	}

	for _, name := range cfg.Icons {
		sum.Outcomes = append(sum.Outcomes, processIcon(cfg.Root, name, opts))
	}
	return sum
}

func processIcon(root, name string, opts Options) Outcome {
	out := Outcome{
		Name: name,
		Path: filepath.Join(root, name),
	}
	backup := paths.BackupPath(out.Path)

	if _, err := os.Stat(out.Path); err != nil {
		out.Status = StatusSkipped
		out.Reason = ReasonNotFound
		return out
	}

	if !opts.Force {
		if _, err := os.Stat(backup); err == nil {
			out.Status = StatusSkipped
			out.Reason = ReasonBackupExists
			return out
		}
	}

	if opts.DryRun {
		out.Status = StatusSkipped
		out.Reason = ReasonDryRun
		return out
	}

	if err := os.Rename(out.Path, backup); err != nil {
		// The original never moved; Backup stays empty.
		out.Status = StatusFailed
		out.Err = fmt.Errorf("backing up %s: %w", out.Path, err)
		return out
	}
	out.Backup = backup

	if err := flatten.Flatten(out.Backup, out.Path); err != nil {
		out.Status = StatusFailed
		out.Err = err
		return out
	}

	out.Status = StatusFixed
	return out
}
