// Package token provides a stable, locally reproducible token estimate for
// context text. The estimate is a proxy for LLM context-window cost, not an
// exact count for any specific tokenizer.
package token

// Estimate returns the approximate token count for text. It is deterministic
// and monotonic non-decreasing under appended characters, which the budget
// loop in the compressor relies on. Roughly four characters per token, which
// tracks English prose and code closely enough for budgeting.
func Estimate(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + 3) / 4
}

// EstimateAll returns the summed estimate of several texts.
func EstimateAll(texts ...string) int {
	total := 0
	for _, t := range texts {
		total += Estimate(t)
	}
	return total
}
