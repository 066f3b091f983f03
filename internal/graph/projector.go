// Package graph derives a node/edge view over store state for visualization
// and analytics. Projection is read-only: it never mutates entries or
// summaries.
package graph

import (
	"time"

	"github.com/raphaelgruber/ctxkeep-go/internal/models"
)

// Node and edge type discriminants.
const (
	NodeEntry   = "entry"
	NodeSummary = "summary"

	EdgeReference  = "reference"
	EdgeSummarizes = "summarizes"
)

// labelLen caps the content preview carried on a node.
const labelLen = 80

// Node is one vertex in the projected graph.
type Node struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Label         string    `json:"label"`
	Agent         string    `json:"agent,omitempty"`
	Topics        []string  `json:"topics,omitempty"`
	Quality       float64   `json:"quality,omitempty"`
	TokenEstimate int       `json:"token_estimate,omitempty"`
	TokensSaved   int       `json:"tokens_saved,omitempty"`
	SourceCount   int       `json:"source_count,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Edge is one directed relation in the projected graph.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// Graph is the full projected view.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Project builds the graph: one node per entry and per summary, one
// "reference" edge per entry reference, one "summarizes" edge per
// summary→source relation.
func Project(entries []models.Entry, summaries []models.Summary) Graph {
	g := Graph{
		Nodes: make([]Node, 0, len(entries)+len(summaries)),
		Edges: make([]Edge, 0),
	}

	for _, e := range entries {
		g.Nodes = append(g.Nodes, Node{
			ID:            e.ID,
			Type:          NodeEntry,
			Label:         preview(e.Content),
			Agent:         e.Agent,
			Topics:        e.Topics,
			Quality:       e.Quality,
			TokenEstimate: e.TokenEstimate,
			Timestamp:     e.Timestamp,
		})
		for _, ref := range e.References {
			g.Edges = append(g.Edges, Edge{Source: e.ID, Target: ref, Type: EdgeReference})
		}
	}

	for _, s := range summaries {
		g.Nodes = append(g.Nodes, Node{
			ID:          s.ID,
			Type:        NodeSummary,
			Label:       preview(s.Content),
			TokensSaved: s.TokensSaved,
			SourceCount: len(s.SourceEntryIDs),
			Timestamp:   s.Timestamp,
		})
		for _, src := range s.SourceEntryIDs {
			g.Edges = append(g.Edges, Edge{Source: s.ID, Target: src, Type: EdgeSummarizes})
		}
	}

	return g
}

// preview shortens content to a label-sized excerpt on a rune boundary.
func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= labelLen {
		return content
	}
	return string(runes[:labelLen]) + "…"
}
