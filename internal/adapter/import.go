package adapter

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/raphaelgruber/ctxkeep-go/internal/models"
	"github.com/raphaelgruber/ctxkeep-go/internal/store"
)

// ImportOptions configures directory import.
type ImportOptions struct {
	// Topics are added to every imported entry on top of the file's own.
	Topics []string
	// Recursive descends into subdirectories.
	Recursive bool
	// Concurrency sets the number of parallel workers (default 4).
	Concurrency int
	// Progress, when set, is called after each file finishes. It may be
	// called from multiple goroutines.
	Progress func(done, total int, file string)
}

// FileResult is the outcome of importing one file.
type FileResult struct {
	Path    string
	Entries int
	Err     error
}

// ImportResult summarizes a directory import. One bad file never aborts the
// rest; its error is collected here instead.
type ImportResult struct {
	FilesProcessed int
	EntriesAdded   int
	Files          []FileResult
	Errors         []string
}

// ImportFile parses one context file and adds each section (and a non-empty
// preamble) to the store. Returns the number of entries written, counting
// dedup no-ops.
func ImportFile(st *store.Store, path string, extraTopics []string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	doc, err := Parse(string(raw))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}

	added := 0
	write := func(content string, topics []string, kind models.Kind) error {
		meta := models.Meta{
			models.MetaKeyKind: string(kind),
			"source_file":      filepath.Base(path),
		}
		if _, _, err := st.AddEntry(content, doc.Agent, mergeTopics(topics, extraTopics), meta, nil); err != nil {
			return err
		}
		added++
		return nil
	}

	if doc.Preamble != "" {
		if err := write(doc.Preamble, doc.Topics, doc.Kind); err != nil {
			return added, err
		}
	}
	for _, sec := range doc.Sections {
		if sec.Content == "" {
			continue
		}
		if err := write(sec.Content, doc.sectionTopics(sec.Heading), doc.sectionKind(sec.Heading)); err != nil {
			return added, err
		}
	}
	return added, nil
}

// ImportDir imports every markdown file under dir through a worker pool.
// Per-file failures are collected, never fatal.
func ImportDir(st *store.Store, dir string, opts ImportOptions) (*ImportResult, error) {
	files, err := CollectFiles(dir, opts.Recursive)
	if err != nil {
		return nil, err
	}
	return ImportFiles(st, files, opts)
}

// ImportFiles imports an explicit file list through a worker pool.
func ImportFiles(st *store.Store, files []string, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{Files: make([]FileResult, len(files))}
	if len(files) == 0 {
		return result, nil
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	if concurrency > len(files) {
		concurrency = len(files)
	}

	var done atomic.Int32

	type workItem struct {
		idx  int
		path string
	}
	workChan := make(chan workItem, len(files))
	var wg sync.WaitGroup

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range workChan {
				entries, err := ImportFile(st, item.path, opts.Topics)
				result.Files[item.idx] = FileResult{Path: item.path, Entries: entries, Err: err}

				finished := int(done.Add(1))
				if opts.Progress != nil {
					opts.Progress(finished, len(files), item.path)
				}
			}
		}()
	}

	for i, f := range files {
		workChan <- workItem{idx: i, path: f}
	}
	close(workChan)
	wg.Wait()

	for _, fr := range result.Files {
		result.FilesProcessed++
		if fr.Err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", fr.Path, fr.Err))
			continue
		}
		result.EntriesAdded += fr.Entries
	}
	return result, nil
}

// CollectFiles walks a directory and returns all markdown files.
func CollectFiles(dir string, recursive bool) ([]string, error) {
	var files []string
	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && !recursive && path != dir {
			return filepath.SkipDir
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !d.IsDir() && (ext == ".md" || ext == ".markdown") {
			files = append(files, path)
		}
		return nil
	}

	if err := filepath.WalkDir(dir, walkFn); err != nil {
		return nil, fmt.Errorf("scan directory: %w", err)
	}
	return files, nil
}

func mergeTopics(base, extra []string) []string {
	out := make([]string, 0, len(base)+len(extra))
	out = append(out, base...)
	for _, t := range extra {
		if !contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}
