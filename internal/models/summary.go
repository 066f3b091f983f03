package models

import "time"

// Summary is a derived node compacting multiple entries into one shorter
// text. Summaries persist independently of their sources and never delete or
// mutate them.
type Summary struct {
	ID             string    `json:"id"`
	SourceEntryIDs []string  `json:"source_entry_ids"`
	Content        string    `json:"content"`
	TokensSaved    int       `json:"tokens_saved"`
	Timestamp      time.Time `json:"timestamp"`
}
