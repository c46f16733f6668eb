package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/KARIMDAVI/savipets-ios/internal/paths"
)

// FileStore implements Store using a flat log file.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore that reads and writes the given log file.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Log(e Entry) error {
	if err := os.MkdirAll(filepath.Dir(f.path), paths.DirPerm); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, paths.FilePerm)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = fmt.Fprintf(file, "%s\n", e.Format())
	return err
}

func (f *FileStore) Entries(days int) ([]Entry, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	entries := parseEntries(string(data))
	if days <= 0 {
		return entries, nil
	}

	cutoff := DayCutoff(days)
	var filtered []Entry
	for _, e := range entries {
		if !e.Time.Before(cutoff) {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

func (f *FileStore) Clean(days int) (int, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := DayCutoff(days)
	var kept []string
	removed := 0
	for _, block := range SplitBlocks(string(data)) {
		ts := blockTime(block)
		if !ts.IsZero() && ts.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, block)
	}
	if removed == 0 {
		return 0, nil
	}

	content := ""
	if len(kept) > 0 {
		content = strings.Join(kept, "\n\n") + "\n"
	}
	if err := paths.AtomicWrite(f.path, []byte(content)); err != nil {
		return 0, err
	}
	return removed, nil
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Close() error {
	return nil
}

// blockTime extracts the timestamp from a block's first line.
func blockTime(block string) time.Time {
	fields := strings.Fields(block)
	if len(fields) == 0 {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, fields[0])
	if err != nil {
		return time.Time{}
	}
	return ts
}

// parseEntries parses flat-file log content back into entries. Lines
// that don't parse are dropped rather than failing the whole read; the
// log is append-only and a torn tail must not break history.
func parseEntries(content string) []Entry {
	var entries []Entry
	for _, block := range SplitBlocks(content) {
		if e, ok := parseBlock(block); ok {
			entries = append(entries, e)
		}
	}
	return entries
}

func parseBlock(block string) (Entry, bool) {
	lines := strings.Split(block, "\n")
	fields := strings.Fields(lines[0])
	if len(fields) < 2 {
		return Entry{}, false
	}
	ts, err := time.Parse(time.RFC3339, fields[0])
	if err != nil {
		return Entry{}, false
	}

	e := Entry{Time: ts}
	for _, kv := range fields[1:] {
		key, val, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		switch key {
		case "root":
			e.Root = val
		case "force":
			e.Force = val == "true"
		case "dry_run":
			e.DryRun = val == "true"
		case "fixed":
			e.Fixed, _ = strconv.Atoi(val)
		case "skipped":
			e.Skipped, _ = strconv.Atoi(val)
		case "failed":
			e.Failed, _ = strconv.Atoi(val)
		}
	}

	for _, line := range lines[1:] {
		f := strings.Fields(line)
		// ts, file[n], status, name, optional (detail...)
		if len(f) < 4 || !strings.HasPrefix(f[1], "file[") {
			continue
		}
		fo := FileOutcome{Status: f[2], Name: f[3]}
		if len(f) > 4 {
			fo.Detail = strings.Trim(strings.Join(f[4:], " "), "()")
		}
		e.Files = append(e.Files, fo)
	}
	return e, true
}
