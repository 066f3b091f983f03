// Package metrics aggregates in-process timing and token counters for store
// and drafting operations. Counters live in memory only; they reset with the
// process.
package metrics

import (
	"sync"
	"time"
)

// Operation names recorded by the collector.
const (
	OpAddEntry      = "add_entry"
	OpCreateSummary = "create_summary"
	OpListEntries   = "list_entries"
	OpCompress      = "compress"
	OpPersist       = "persist"
	OpLLMDraft      = "llm_draft"
)

// timing accumulates durations for one operation.
type timing struct {
	count int64
	total time.Duration
	min   time.Duration
	max   time.Duration
}

func (t *timing) observe(d time.Duration) {
	if t.count == 0 || d < t.min {
		t.min = d
	}
	if d > t.max {
		t.max = d
	}
	t.count++
	t.total += d
}

// tokens accumulates prompt and completion sizes for drafting operations.
type tokens struct {
	seen     bool
	totalIn  int64
	totalOut int64
	minIn    int64
	maxIn    int64
	minOut   int64
	maxOut   int64
}

func (tk *tokens) observe(in, out int64) {
	if !tk.seen {
		tk.minIn, tk.minOut = in, out
		tk.seen = true
	}
	tk.totalIn += in
	tk.totalOut += out
	if in < tk.minIn {
		tk.minIn = in
	}
	if in > tk.maxIn {
		tk.maxIn = in
	}
	if out < tk.minOut {
		tk.minOut = out
	}
	if out > tk.maxOut {
		tk.maxOut = out
	}
}

// OperationMetrics holds the raw counters for a single operation.
type OperationMetrics struct {
	timing timing
	tokens tokens
}

// OperationSnapshot is the JSON view of one operation's counters. Token
// fields are present only for operations that recorded usage.
type OperationSnapshot struct {
	Count       int64   `json:"count"`
	TotalTimeMs int64   `json:"total_time_ms"`
	AvgTimeMs   float64 `json:"avg_time_ms"`
	MinTimeMs   int64   `json:"min_time_ms"`
	MaxTimeMs   int64   `json:"max_time_ms"`

	TotalInputTokens  *int64   `json:"total_input_tokens,omitempty"`
	TotalOutputTokens *int64   `json:"total_output_tokens,omitempty"`
	AvgInputTokens    *float64 `json:"avg_input_tokens,omitempty"`
	AvgOutputTokens   *float64 `json:"avg_output_tokens,omitempty"`
	MinInputTokens    *int64   `json:"min_input_tokens,omitempty"`
	MaxInputTokens    *int64   `json:"max_input_tokens,omitempty"`
	MinOutputTokens   *int64   `json:"min_output_tokens,omitempty"`
	MaxOutputTokens   *int64   `json:"max_output_tokens,omitempty"`
}

// Snapshot is the full collector state at one point in time.
type Snapshot struct {
	UptimeSeconds float64            `json:"uptime_seconds"`
	AddEntry      *OperationSnapshot `json:"add_entry,omitempty"`
	CreateSummary *OperationSnapshot `json:"create_summary,omitempty"`
	ListEntries   *OperationSnapshot `json:"list_entries,omitempty"`
	Compress      *OperationSnapshot `json:"compress,omitempty"`
	Persist       *OperationSnapshot `json:"persist,omitempty"`
	LLMDraft      *OperationSnapshot `json:"llm_draft,omitempty"`
}

// Collector records operation counters. Safe for concurrent use.
type Collector struct {
	mu      sync.RWMutex
	started time.Time
	ops     map[string]*OperationMetrics
}

func NewCollector() *Collector {
	return &Collector{
		started: time.Now(),
		ops:     make(map[string]*OperationMetrics),
	}
}

func (c *Collector) op(name string) *OperationMetrics {
	m, ok := c.ops[name]
	if !ok {
		m = &OperationMetrics{}
		c.ops[name] = m
	}
	return m
}

// RecordTiming records one completed operation.
func (c *Collector) RecordTiming(name string, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.op(name).timing.observe(d)
}

// RecordLLMUsage records one completed draft with estimated prompt and
// completion token counts.
func (c *Collector) RecordLLMUsage(name string, d time.Duration, inTokens, outTokens int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := c.op(name)
	m.timing.observe(d)
	m.tokens.observe(inTokens, outTokens)
}

func (m *OperationMetrics) snapshot() *OperationSnapshot {
	if m == nil || m.timing.count == 0 {
		return nil
	}

	s := &OperationSnapshot{
		Count:       m.timing.count,
		TotalTimeMs: m.timing.total.Milliseconds(),
		AvgTimeMs:   float64(m.timing.total.Milliseconds()) / float64(m.timing.count),
		MinTimeMs:   m.timing.min.Milliseconds(),
		MaxTimeMs:   m.timing.max.Milliseconds(),
	}

	if m.tokens.seen {
		tk := m.tokens
		avgIn := float64(tk.totalIn) / float64(m.timing.count)
		avgOut := float64(tk.totalOut) / float64(m.timing.count)
		s.TotalInputTokens = &tk.totalIn
		s.TotalOutputTokens = &tk.totalOut
		s.AvgInputTokens = &avgIn
		s.AvgOutputTokens = &avgOut
		s.MinInputTokens = &tk.minIn
		s.MaxInputTokens = &tk.maxIn
		s.MinOutputTokens = &tk.minOut
		s.MaxOutputTokens = &tk.maxOut
	}
	return s
}

// Snapshot returns the current counters in JSON-ready form.
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Snapshot{
		UptimeSeconds: time.Since(c.started).Seconds(),
		AddEntry:      c.ops[OpAddEntry].snapshot(),
		CreateSummary: c.ops[OpCreateSummary].snapshot(),
		ListEntries:   c.ops[OpListEntries].snapshot(),
		Compress:      c.ops[OpCompress].snapshot(),
		Persist:       c.ops[OpPersist].snapshot(),
		LLMDraft:      c.ops[OpLLMDraft].snapshot(),
	}
}
