package graph

import (
	"strings"
	"testing"
	"time"

	"github.com/raphaelgruber/ctxkeep-go/internal/models"
)

func TestProject(t *testing.T) {
	ts := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	e1 := models.Entry{ID: "e1", Content: "first entry", Agent: "a", Topics: []string{"auth"}, Quality: 0.6, TokenEstimate: 3, Timestamp: ts}
	e2 := models.Entry{ID: "e2", Content: "second entry", Agent: "b", Quality: 0.5, TokenEstimate: 3, Timestamp: ts, References: []string{"e1"}}
	s1 := models.Summary{ID: "s1", SourceEntryIDs: []string{"e1", "e2"}, Content: "both entries", TokensSaved: 4, Timestamp: ts}

	g := Project([]models.Entry{e1, e2}, []models.Summary{s1})

	if len(g.Nodes) != 3 {
		t.Fatalf("Nodes = %d, want 3", len(g.Nodes))
	}
	if len(g.Edges) != 3 {
		t.Fatalf("Edges = %d, want 3 (one reference, two summarizes)", len(g.Edges))
	}

	nodes := make(map[string]Node, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes[n.ID] = n
	}

	if nodes["e1"].Type != NodeEntry || nodes["e2"].Type != NodeEntry {
		t.Error("entry nodes missing or mistyped")
	}
	if nodes["s1"].Type != NodeSummary {
		t.Errorf("summary node Type = %q, want %q", nodes["s1"].Type, NodeSummary)
	}
	if nodes["s1"].SourceCount != 2 {
		t.Errorf("summary SourceCount = %d, want 2", nodes["s1"].SourceCount)
	}
	if nodes["s1"].TokensSaved != 4 {
		t.Errorf("summary TokensSaved = %d, want 4", nodes["s1"].TokensSaved)
	}

	var refs, sums int
	for _, edge := range g.Edges {
		switch edge.Type {
		case EdgeReference:
			refs++
			if edge.Source != "e2" || edge.Target != "e1" {
				t.Errorf("reference edge = %+v, want e2 -> e1", edge)
			}
		case EdgeSummarizes:
			sums++
			if edge.Source != "s1" {
				t.Errorf("summarizes edge source = %q, want s1", edge.Source)
			}
			if nodes[edge.Target].Type != NodeEntry {
				t.Errorf("summarizes edge target %q is not an entry node", edge.Target)
			}
		default:
			t.Errorf("unexpected edge type %q", edge.Type)
		}
	}
	if refs != 1 || sums != 2 {
		t.Errorf("edges by type = %d references, %d summarizes; want 1 and 2", refs, sums)
	}
}

func TestProjectEdgeEndpointsExist(t *testing.T) {
	ts := time.Now().UTC()
	entries := []models.Entry{
		{ID: "a", Content: "alpha", Quality: 0.5, Timestamp: ts},
		{ID: "b", Content: "beta", Quality: 0.5, Timestamp: ts, References: []string{"a"}},
		{ID: "c", Content: "gamma", Quality: 0.5, Timestamp: ts, References: []string{"a", "b"}},
	}
	summaries := []models.Summary{
		{ID: "s", SourceEntryIDs: []string{"b", "c"}, Content: "bc", Timestamp: ts},
	}

	g := Project(entries, summaries)

	ids := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = true
	}
	for _, e := range g.Edges {
		if !ids[e.Source] {
			t.Errorf("edge source %q has no node", e.Source)
		}
		if !ids[e.Target] {
			t.Errorf("edge target %q has no node", e.Target)
		}
	}
}

func TestProjectEmpty(t *testing.T) {
	g := Project(nil, nil)
	if len(g.Nodes) != 0 || len(g.Edges) != 0 {
		t.Errorf("Project(nil, nil) = %d nodes, %d edges; want empty", len(g.Nodes), len(g.Edges))
	}
}

func TestPreviewTruncates(t *testing.T) {
	long := strings.Repeat("véry long content ", 20)
	g := Project([]models.Entry{{ID: "x", Content: long, Timestamp: time.Now()}}, nil)
	label := g.Nodes[0].Label
	if len([]rune(label)) > labelLen+1 {
		t.Errorf("Label rune length = %d, want <= %d plus ellipsis", len([]rune(label)), labelLen)
	}
	if !strings.HasSuffix(label, "…") {
		t.Errorf("Label = %q, want ellipsis suffix", label)
	}
}
