// Package persist serializes store state to a project-scoped directory and
// loads it back. Each collection lives in its own JSONL file, one
// self-describing record per line, so partially missing optional fields or a
// single damaged line never break a load.
package persist

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/raphaelgruber/ctxkeep-go/internal/models"
)

const (
	entriesFile   = "entries.jsonl"
	summariesFile = "summaries.jsonl"
)

// ErrPersistence indicates an unrecoverable I/O failure writing store state.
// It is always propagated: silent data loss is worse than a visible failure.
// Check with errors.Is().
var ErrPersistence = errors.New("persistence failure")

// Save writes all entries and summaries under dir. Each file is written to a
// temp file in the same directory, synced, and renamed over the target, so a
// crash mid-write cannot corrupt previously saved state.
func Save(dir string, entries []models.Entry, summaries []models.Summary) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create storage dir: %v", ErrPersistence, err)
	}

	entryRecords := make([]any, len(entries))
	for i, e := range entries {
		entryRecords[i] = e
	}
	if err := writeRecords(filepath.Join(dir, entriesFile), entryRecords); err != nil {
		return err
	}

	summaryRecords := make([]any, len(summaries))
	for i, s := range summaries {
		summaryRecords[i] = s
	}
	return writeRecords(filepath.Join(dir, summariesFile), summaryRecords)
}

func writeRecords(path string, records []any) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrPersistence, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after successful rename

	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			tmp.Close()
			return fmt.Errorf("%w: encode record: %v", ErrPersistence, err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: flush %s: %v", ErrPersistence, filepath.Base(path), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: sync %s: %v", ErrPersistence, filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close temp file: %v", ErrPersistence, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: rename %s into place: %v", ErrPersistence, filepath.Base(path), err)
	}
	return nil
}

// Load reads store state from dir. A missing directory or file yields an
// empty result, not an error. Corrupt or partially unreadable records are
// logged and skipped individually; skipped reports how many. The logger may
// be nil.
func Load(dir string, log *slog.Logger) (entries []models.Entry, summaries []models.Summary, skipped int, err error) {
	if log == nil {
		log = slog.Default()
	}

	entries, n, err := loadEntries(filepath.Join(dir, entriesFile), log)
	if err != nil {
		return nil, nil, 0, err
	}
	skipped += n

	summaries, n, err = loadSummaries(filepath.Join(dir, summariesFile), log)
	if err != nil {
		return nil, nil, 0, err
	}
	skipped += n

	return entries, summaries, skipped, nil
}

func loadEntries(path string, log *slog.Logger) ([]models.Entry, int, error) {
	var out []models.Entry
	skipped, err := scanRecords(path, log, func(line []byte) bool {
		var e models.Entry
		if err := json.Unmarshal(line, &e); err != nil || e.ID == "" || e.Content == "" {
			return false
		}
		out = append(out, e)
		return true
	})
	return out, skipped, err
}

func loadSummaries(path string, log *slog.Logger) ([]models.Summary, int, error) {
	var out []models.Summary
	skipped, err := scanRecords(path, log, func(line []byte) bool {
		var s models.Summary
		if err := json.Unmarshal(line, &s); err != nil || s.ID == "" || len(s.SourceEntryIDs) == 0 {
			return false
		}
		out = append(out, s)
		return true
	})
	return out, skipped, err
}

// scanRecords feeds each non-empty line to decode and counts the ones it
// rejects. Lines are read through a plain reader with no length cap, so a
// single oversized record costs only itself and never the records after it.
// An I/O failure mid-file keeps what loaded so far and counts one skip.
func scanRecords(path string, log *slog.Logger, decode func([]byte) bool) (int, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: open %s: %v", ErrPersistence, filepath.Base(path), err)
	}
	defer f.Close()

	r := bufio.NewReaderSize(f, 64*1024)
	skipped := 0
	lineNo := 0
	for {
		line, readErr := r.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			skipped++
			log.Warn("unreadable tail, keeping records loaded so far",
				"file", filepath.Base(path),
				"after_line", lineNo,
				"error", readErr)
			return skipped, nil
		}

		if len(line) > 0 {
			lineNo++
		}
		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
			if !decode(trimmed) {
				skipped++
				log.Warn("skipping corrupt record",
					"file", filepath.Base(path),
					"line", lineNo)
			}
		}

		if readErr != nil {
			return skipped, nil
		}
	}
}

// SizeOnDisk reports the combined size in bytes of the persisted files.
// Missing files count as zero.
func SizeOnDisk(dir string) int64 {
	var total int64
	for _, name := range []string{entriesFile, summariesFile} {
		if info, err := os.Stat(filepath.Join(dir, name)); err == nil {
			total += info.Size()
		}
	}
	return total
}
