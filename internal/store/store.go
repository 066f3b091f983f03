// Package store owns the in-memory context entry and summary collections for
// a single storage path. All mutations serialize through one exclusive lock
// around the map update and the persistence write, so concurrent writers can
// never both win a dedup race; reads copy out under a shared lock.
package store

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/raphaelgruber/ctxkeep-go/internal/metrics"
	"github.com/raphaelgruber/ctxkeep-go/internal/models"
	"github.com/raphaelgruber/ctxkeep-go/internal/persist"
	"github.com/raphaelgruber/ctxkeep-go/internal/quality"
	"github.com/raphaelgruber/ctxkeep-go/internal/token"
)

// Store is the exclusive owner of all entries and summaries under one
// storage directory. Entries are immutable once added; the store never
// deletes them.
type Store struct {
	mu        sync.RWMutex
	dir       string
	entries   map[string]models.Entry
	order     []string // entry ids in insertion order
	summaries []models.Summary
	logger    *slog.Logger
	metrics   *metrics.Collector
}

// Open loads any persisted state from dir and returns a ready store. A
// missing directory starts empty. Corrupt records on disk are skipped with a
// warning, never fatal. Logger and collector may be nil.
func Open(dir string, log *slog.Logger, mc *metrics.Collector) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}

	entries, summaries, skipped, err := persist.Load(dir, log)
	if err != nil {
		return nil, fmt.Errorf("open store at %s: %w", dir, err)
	}
	if skipped > 0 {
		log.Warn("store loaded with corrupt records skipped", "dir", dir, "skipped", skipped)
	}

	s := &Store{
		dir:       dir,
		entries:   make(map[string]models.Entry, len(entries)),
		order:     make([]string, 0, len(entries)),
		summaries: summaries,
		logger:    log,
		metrics:   mc,
	}
	for _, e := range entries {
		if _, ok := s.entries[e.ID]; ok {
			continue // defend against duplicated lines on disk
		}
		s.entries[e.ID] = e
		s.order = append(s.order, e.ID)
	}

	log.Debug("store opened", "dir", dir, "entries", len(s.order), "summaries", len(summaries))
	return s, nil
}

// Dir returns the storage directory backing this store.
func (s *Store) Dir() string {
	return s.dir
}

// AddEntry deduplicates, scores, estimates, stores, and persists a new
// context entry, returning its content-addressed id. Writing content
// identical (after whitespace normalization) to an existing entry is a no-op
// that returns the existing id without touching the stored entry; existed
// reports that case. The dedup check and the insert happen under the same
// lock, so of any number of concurrent identical writes exactly one sees
// existed == false.
func (s *Store) AddEntry(content, agent string, topics []string, metadata models.Meta, references []string) (id string, existed bool, err error) {
	start := time.Now()

	if strings.TrimSpace(content) == "" {
		return "", false, fmt.Errorf("%w: content must not be empty", ErrValidation)
	}
	meta, err := models.NormalizeMeta(metadata)
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	id = models.EntryID(content)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; ok {
		s.logger.Debug("duplicate content, returning existing entry", "id", shortID(id), "agent", agent)
		return id, true, nil
	}

	entry := models.Entry{
		ID:            id,
		Content:       content,
		Agent:         agent,
		Topics:        cloneNonEmpty(topics),
		Quality:       quality.Score(content),
		TokenEstimate: token.Estimate(content),
		Timestamp:     time.Now().UTC(),
		Metadata:      meta,
		References:    cloneNonEmpty(references),
	}

	s.entries[id] = entry
	s.order = append(s.order, id)

	if err := s.persistLocked(); err != nil {
		delete(s.entries, id)
		s.order = s.order[:len(s.order)-1]
		return "", false, err
	}

	s.logger.Debug("entry added",
		"id", shortID(id),
		"agent", agent,
		"tokens", entry.TokenEstimate,
		"quality", entry.Quality)
	s.record(metrics.OpAddEntry, start)
	return id, false, nil
}

// Get returns the entry with the given id.
func (s *Store) Get(id string) (models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return models.Entry{}, fmt.Errorf("%w: %s", ErrNotFound, shortID(id))
	}
	return cloneEntry(e), nil
}

// ListEntries returns entries filtered conjunctively: by agent when agent is
// non-empty, and by any-of topic overlap when topics is non-empty. Results
// come back in insertion order.
func (s *Store) ListEntries(agent string, topics []string) []models.Entry {
	start := time.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Entry, 0, len(s.order))
	for _, id := range s.order {
		e := s.entries[id]
		if agent != "" && e.Agent != agent {
			continue
		}
		if len(topics) > 0 && !e.MatchesAnyTopic(topics) {
			continue
		}
		out = append(out, cloneEntry(e))
	}

	s.record(metrics.OpListEntries, start)
	return out
}

// CreateSummary compacts the given entries into a new summary node. The
// source entries are left untouched. Token savings are the summed source
// estimates minus the summary's own estimate, clamped at zero.
func (s *Store) CreateSummary(entryIDs []string, content string) (models.Summary, error) {
	start := time.Now()

	if len(entryIDs) == 0 {
		return models.Summary{}, fmt.Errorf("%w: summary needs at least one source entry", ErrValidation)
	}
	if strings.TrimSpace(content) == "" {
		return models.Summary{}, fmt.Errorf("%w: summary content must not be empty", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sourceTokens := 0
	for _, id := range entryIDs {
		e, ok := s.entries[id]
		if !ok {
			return models.Summary{}, fmt.Errorf("%w: %s", ErrNotFound, shortID(id))
		}
		sourceTokens += e.TokenEstimate
	}

	saved := sourceTokens - token.Estimate(content)
	if saved < 0 {
		saved = 0
	}

	summary := models.Summary{
		ID:             uuid.New().String(),
		SourceEntryIDs: slices.Clone(entryIDs),
		Content:        content,
		TokensSaved:    saved,
		Timestamp:      time.Now().UTC(),
	}

	s.summaries = append(s.summaries, summary)
	if err := s.persistLocked(); err != nil {
		s.summaries = s.summaries[:len(s.summaries)-1]
		return models.Summary{}, err
	}

	s.logger.Debug("summary created",
		"id", summary.ID,
		"sources", len(entryIDs),
		"tokens_saved", saved)
	s.record(metrics.OpCreateSummary, start)
	return summary, nil
}

// Stats computes aggregate counters over the current state. An empty store
// yields zero counts and an average quality of zero.
func (s *Store) Stats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.Stats{
		EntryCount:   len(s.order),
		SummaryCount: len(s.summaries),
		StorageSize:  persist.SizeOnDisk(s.dir),
	}

	qualitySum := 0.0
	for _, e := range s.entries {
		stats.TotalTokens += e.TokenEstimate
		qualitySum += e.Quality
		switch {
		case e.Quality >= 0.8:
			stats.HighQualityCount++
		case e.Quality < 0.5:
			stats.LowQualityCount++
		}
	}
	if stats.EntryCount > 0 {
		stats.AvgQuality = qualitySum / float64(stats.EntryCount)
	}

	for _, sum := range s.summaries {
		stats.TokensSaved += sum.TokensSaved
	}

	return stats
}

// Snapshot returns a consistent copy of all entries in insertion order, for
// read-only consumers like the compressor and the graph projector.
func (s *Store) Snapshot() []models.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Entry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneEntry(s.entries[id]))
	}
	return out
}

// Summaries returns a consistent copy of all summaries in creation order.
func (s *Store) Summaries() []models.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Summary, len(s.summaries))
	for i, sum := range s.summaries {
		out[i] = sum
		out[i].SourceEntryIDs = slices.Clone(sum.SourceEntryIDs)
	}
	return out
}

// persistLocked writes the full state to disk. Caller must hold the write
// lock.
func (s *Store) persistLocked() error {
	start := time.Now()

	entries := make([]models.Entry, 0, len(s.order))
	for _, id := range s.order {
		entries = append(entries, s.entries[id])
	}
	if err := persist.Save(s.dir, entries, s.summaries); err != nil {
		s.logger.Error("persist failed", "dir", s.dir, "error", err)
		return err
	}

	s.record(metrics.OpPersist, start)
	return nil
}

func (s *Store) record(op string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordTiming(op, time.Since(start))
	}
}

func cloneEntry(e models.Entry) models.Entry {
	e.Topics = slices.Clone(e.Topics)
	e.References = slices.Clone(e.References)
	e.Metadata = maps.Clone(e.Metadata)
	return e
}

func cloneNonEmpty(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	return slices.Clone(in)
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
