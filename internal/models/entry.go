// Package models defines the data shapes for the ctxkeep context store.
package models

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Entry is an atomic unit of captured context. Entries are immutable after
// creation and content-addressed: the same normalized content always maps to
// the same ID, regardless of agent, topics, or time.
type Entry struct {
	ID            string    `json:"id"`
	Content       string    `json:"content"`
	Agent         string    `json:"agent"`
	Topics        []string  `json:"topics,omitempty"`
	Quality       float64   `json:"quality"`
	TokenEstimate int       `json:"token_estimate"`
	Timestamp     time.Time `json:"timestamp"`
	Metadata      Meta      `json:"metadata,omitempty"`
	References    []string  `json:"references,omitempty"`
}

// NormalizeContent canonicalizes text for identity purposes: leading and
// trailing whitespace is trimmed and internal whitespace runs (including
// newlines) collapse to single spaces. Stored content is never modified;
// normalization only feeds EntryID.
func NormalizeContent(content string) string {
	return strings.Join(strings.Fields(content), " ")
}

// EntryID derives the content-addressed identifier for a piece of content.
// The digest is treated as an opaque fixed-length ID, not a cryptographic
// primitive.
func EntryID(content string) string {
	sum := sha256.Sum256([]byte(NormalizeContent(content)))
	return hex.EncodeToString(sum[:])
}

// HasTopic reports whether the entry carries the given topic.
func (e Entry) HasTopic(topic string) bool {
	for _, t := range e.Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// MatchesAnyTopic reports whether the entry shares at least one topic with
// the given set. An empty set matches nothing.
func (e Entry) MatchesAnyTopic(topics []string) bool {
	for _, t := range topics {
		if e.HasTopic(t) {
			return true
		}
	}
	return false
}
