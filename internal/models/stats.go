package models

// Stats summarizes the state of a store. Quality buckets: high is ≥ 0.8,
// low is < 0.5, the remainder is medium.
type Stats struct {
	EntryCount       int     `json:"entry_count"`
	SummaryCount     int     `json:"summary_count"`
	TotalTokens      int     `json:"total_tokens"`
	TokensSaved      int     `json:"tokens_saved"`
	AvgQuality       float64 `json:"avg_quality"`
	HighQualityCount int     `json:"high_quality_count"`
	LowQualityCount  int     `json:"low_quality_count"`
	StorageSize      int64   `json:"storage_size"`
}
