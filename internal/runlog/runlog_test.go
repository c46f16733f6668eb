package runlog

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/KARIMDAVI/savipets-ios/internal/runner"
)

func sampleEntry(t time.Time) Entry {
	return Entry{
		Time:    t,
		Root:    "SaviPets/Assets.xcassets/AppIcon.appiconset",
		Fixed:   2,
		Skipped: 1,
		Files: []FileOutcome{
			{Name: "a.png", Status: "fixed"},
			{Name: "b.png", Status: "fixed"},
			{Name: "c.png", Status: "skipped", Detail: "not found"},
		},
	}
}

func TestNewEntryFromSummary(t *testing.T) {
	sum := runner.Summary{
		Root: "Icons",
		Outcomes: []runner.Outcome{
			{Name: "a.png", Status: runner.StatusFixed},
			{Name: "b.png", Status: runner.StatusSkipped, Reason: runner.ReasonNotFound},
			{Name: "c.png", Status: runner.StatusFailed, Err: errors.New("decode failed")},
		},
	}

	e := NewEntry(sum, true)

	if e.Root != "Icons" || !e.Force || e.DryRun {
		t.Errorf("entry header = %+v", e)
	}
	if e.Fixed != 1 || e.Skipped != 1 || e.Failed != 1 {
		t.Errorf("counts = %d,%d,%d, want 1,1,1", e.Fixed, e.Skipped, e.Failed)
	}
	if len(e.Files) != 3 {
		t.Fatalf("len(Files) = %d, want 3", len(e.Files))
	}
	if e.Files[1].Detail != runner.ReasonNotFound {
		t.Errorf("skip detail = %q", e.Files[1].Detail)
	}
	if e.Files[2].Detail != "decode failed" {
		t.Errorf("fail detail = %q", e.Files[2].Detail)
	}
	if e.Time.IsZero() {
		t.Error("entry time not set")
	}
}

func TestEntryFormat(t *testing.T) {
	ts := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
	got := sampleEntry(ts).Format()

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("len(lines) = %d, want 4:\n%s", len(lines), got)
	}
	if !strings.Contains(lines[0], "fixed=2") || !strings.Contains(lines[0], "skipped=1") {
		t.Errorf("summary line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "file[1] fixed a.png") {
		t.Errorf("file line = %q", lines[1])
	}
	if !strings.Contains(lines[3], "(not found)") {
		t.Errorf("skip line = %q", lines[3])
	}
}

func TestDayCutoff(t *testing.T) {
	c := DayCutoff(1)
	now := time.Now()
	if c.Hour() != 0 || c.Minute() != 0 {
		t.Errorf("cutoff not at midnight: %v", c)
	}
	if c.Day() != now.Day() || c.Month() != now.Month() {
		t.Errorf("DayCutoff(1) = %v, want today's midnight", c)
	}
	if got := DayCutoff(7); now.Sub(got) > 7*24*time.Hour {
		t.Errorf("DayCutoff(7) = %v, too far back", got)
	}
}

func TestSplitBlocks(t *testing.T) {
	content := "a\nb\n\nc\n\n\n\nd\n"
	got := SplitBlocks(content)
	want := []string{"a\nb", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d: %q", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("block[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
