package metrics

import (
	"testing"
	"time"
)

func TestRecordTiming(t *testing.T) {
	c := NewCollector()
	c.RecordTiming(OpAddEntry, 10*time.Millisecond)
	c.RecordTiming(OpAddEntry, 30*time.Millisecond)

	snap := c.Snapshot()
	if snap.AddEntry == nil {
		t.Fatal("Snapshot().AddEntry = nil, want data")
	}
	if snap.AddEntry.Count != 2 {
		t.Errorf("Count = %d, want 2", snap.AddEntry.Count)
	}
	if snap.AddEntry.MinTimeMs != 10 {
		t.Errorf("MinTimeMs = %d, want 10", snap.AddEntry.MinTimeMs)
	}
	if snap.AddEntry.MaxTimeMs != 30 {
		t.Errorf("MaxTimeMs = %d, want 30", snap.AddEntry.MaxTimeMs)
	}
	if snap.AddEntry.TotalTimeMs != 40 {
		t.Errorf("TotalTimeMs = %d, want 40", snap.AddEntry.TotalTimeMs)
	}
}

func TestSnapshotEmptyOps(t *testing.T) {
	c := NewCollector()
	snap := c.Snapshot()
	if snap.AddEntry != nil || snap.Compress != nil || snap.LLMDraft != nil {
		t.Error("Snapshot() of fresh collector should have nil operation snapshots")
	}
	if snap.UptimeSeconds < 0 {
		t.Errorf("UptimeSeconds = %v, want >= 0", snap.UptimeSeconds)
	}
}

func TestRecordLLMUsage(t *testing.T) {
	c := NewCollector()
	c.RecordLLMUsage(OpLLMDraft, 100*time.Millisecond, 500, 80)
	c.RecordLLMUsage(OpLLMDraft, 200*time.Millisecond, 700, 120)

	snap := c.Snapshot()
	if snap.LLMDraft == nil {
		t.Fatal("Snapshot().LLMDraft = nil, want data")
	}
	if snap.LLMDraft.TotalInputTokens == nil || *snap.LLMDraft.TotalInputTokens != 1200 {
		t.Errorf("TotalInputTokens = %v, want 1200", snap.LLMDraft.TotalInputTokens)
	}
	if snap.LLMDraft.MinOutputTokens == nil || *snap.LLMDraft.MinOutputTokens != 80 {
		t.Errorf("MinOutputTokens = %v, want 80", snap.LLMDraft.MinOutputTokens)
	}
}

func TestConcurrentRecording(t *testing.T) {
	c := NewCollector()
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				c.RecordTiming(OpListEntries, time.Millisecond)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	snap := c.Snapshot()
	if snap.ListEntries == nil || snap.ListEntries.Count != 800 {
		t.Errorf("Count after concurrent recording = %v, want 800", snap.ListEntries)
	}
}
