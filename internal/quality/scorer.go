// Package quality scores context text for long-term usefulness. Scores are
// heuristic, deterministic, and always in [0,1]; the compressor ranks on them
// so "most useful first" only has to hold approximately.
package quality

import "strings"

const (
	// Length term: content below lengthFloor characters scores low; the
	// term grows until lengthSaturation and is flat beyond it.
	lengthFloor      = 20
	lengthSaturation = 300
	baseAtFloor      = 0.5
	baseRange        = 0.2

	codeBonus    = 0.3
	errorPenalty = 0.3

	codeFence = "```"
)

// errorVocab marks content that is likely a raw failure dump rather than an
// explanation. Matched case-insensitively as substrings.
var errorVocab = []string{
	"error",
	"failed",
	"failure",
	"exception",
	"traceback",
	"panic:",
}

// Score rates text in [0,1]. Substantial content scores higher, fenced code
// blocks earn a bonus, failure vocabulary is penalized. Empty text scores 0.
func Score(text string) float64 {
	if text == "" {
		return 0
	}

	score := lengthTerm(len(text))

	if strings.Count(text, codeFence) >= 2 {
		score += codeBonus
	}

	lower := strings.ToLower(text)
	for _, w := range errorVocab {
		if strings.Contains(lower, w) {
			score -= errorPenalty
			break
		}
	}

	return clamp(score)
}

// lengthTerm rises linearly to baseAtFloor at lengthFloor characters, then
// more slowly to baseAtFloor+baseRange at lengthSaturation, flat after.
func lengthTerm(n int) float64 {
	if n < lengthFloor {
		return baseAtFloor * float64(n) / lengthFloor
	}
	progress := float64(n-lengthFloor) / float64(lengthSaturation-lengthFloor)
	if progress > 1 {
		progress = 1
	}
	return baseAtFloor + baseRange*progress
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
