package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/KARIMDAVI/savipets-ios/internal/runner"
)

var plain = glyphs{ok: "[ok]", warn: "[warn]", fail: "[fail]", done: "[done]", note: "[note]"}

func TestOutcomeLineFixed(t *testing.T) {
	o := runner.Outcome{
		Name:   "a.png",
		Path:   "Icons/a.png",
		Backup: "Icons/a.png.backup",
		Status: runner.StatusFixed,
	}
	got := outcomeLine(plain, o)
	want := "[ok] Fixed: Icons/a.png.backup -> Icons/a.png"
	if got != want {
		t.Errorf("outcomeLine = %q, want %q", got, want)
	}
}

func TestOutcomeLineNotFound(t *testing.T) {
	o := runner.Outcome{Name: "a.png", Status: runner.StatusSkipped, Reason: runner.ReasonNotFound}
	got := outcomeLine(plain, o)
	if got != "[warn] Icon file not found: a.png" {
		t.Errorf("outcomeLine = %q", got)
	}
}

func TestOutcomeLineBackupExists(t *testing.T) {
	o := runner.Outcome{Name: "a.png", Status: runner.StatusSkipped, Reason: runner.ReasonBackupExists}
	got := outcomeLine(plain, o)
	if !strings.Contains(got, "Backup already exists") || !strings.Contains(got, "--force") {
		t.Errorf("outcomeLine = %q", got)
	}
}

func TestOutcomeLineFailedWithBackup(t *testing.T) {
	o := runner.Outcome{
		Name:   "a.png",
		Path:   "Icons/a.png",
		Backup: "Icons/a.png.backup",
		Status: runner.StatusFailed,
		Err:    errors.New("decoding Icons/a.png.backup: bad magic"),
	}
	got := outcomeLine(plain, o)
	if !strings.HasPrefix(got, "[fail] Error processing Icons/a.png:") {
		t.Errorf("outcomeLine = %q", got)
	}
	if !strings.Contains(got, "original kept at Icons/a.png.backup") {
		t.Errorf("outcomeLine missing backup note: %q", got)
	}
}

func TestOutcomeLineFailedBeforeBackup(t *testing.T) {
	// Rename failure: the original never moved, so no backup note.
	o := runner.Outcome{
		Name:   "a.png",
		Path:   "Icons/a.png",
		Status: runner.StatusFailed,
		Err:    errors.New("backing up Icons/a.png: permission denied"),
	}
	got := outcomeLine(plain, o)
	if strings.Contains(got, "original kept at") {
		t.Errorf("outcomeLine should not mention a backup that was never made: %q", got)
	}
}

func TestCountDryRuns(t *testing.T) {
	sum := runner.Summary{
		Outcomes: []runner.Outcome{
			{Status: runner.StatusSkipped, Reason: runner.ReasonDryRun},
			{Status: runner.StatusSkipped, Reason: runner.ReasonNotFound},
			{Status: runner.StatusSkipped, Reason: runner.ReasonDryRun},
		},
	}
	if got := countDryRuns(sum); got != 2 {
		t.Errorf("countDryRuns = %d, want 2", got)
	}
}
