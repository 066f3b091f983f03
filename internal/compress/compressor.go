// Package compress turns a snapshot of store entries into budget-constrained
// context text. It is stateless: callers pass the snapshot in, ranking and
// the greedy budget loop happen here, nothing is mutated.
package compress

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/raphaelgruber/ctxkeep-go/internal/models"
	"github.com/raphaelgruber/ctxkeep-go/internal/token"
)

// separator joins formatted lines in the output. Its token cost is the
// bounded formatting allowance by which a result may exceed the budget.
const separator = "\n\n"

// Options configures standard compression.
type Options struct {
	// Agent restricts candidates to one producer when non-empty.
	Agent string
	// MaxTokens is the soft output ceiling. The running per-line estimate
	// never exceeds it; the joined text may exceed it only by separator
	// cost and per-line rounding.
	MaxTokens int
	// MinQuality drops candidates scoring below it.
	MinQuality float64
}

// FocusOptions configures topic-focused compression.
type FocusOptions struct {
	// Topics to prefer, any-of semantics. Empty means no focus: the result
	// is identical to standard compression with the same remaining options.
	Topics     []string
	Agent      string
	MaxTokens  int
	MinQuality float64
}

// Result carries the compressed text and what went into it.
type Result struct {
	Text          string `json:"text"`
	Included      int    `json:"included"`
	TokenEstimate int    `json:"token_estimate"`
}

// Compress filters by agent and quality, ranks quality-then-recency, and
// greedily accumulates formatted lines under the token budget.
func Compress(entries []models.Entry, opts Options) Result {
	candidates := filter(entries, opts.Agent, opts.MinQuality)
	rank(candidates)
	return accumulate(candidates, opts.MaxTokens)
}

// Focus prefers topic-matching entries before spending leftover budget on
// the rest. With no topics it behaves exactly like Compress.
func Focus(entries []models.Entry, opts FocusOptions) Result {
	if len(opts.Topics) == 0 {
		return Compress(entries, Options{
			Agent:      opts.Agent,
			MaxTokens:  opts.MaxTokens,
			MinQuality: opts.MinQuality,
		})
	}

	candidates := filter(entries, opts.Agent, opts.MinQuality)

	matching := make([]models.Entry, 0, len(candidates))
	fallback := make([]models.Entry, 0, len(candidates))
	for _, e := range candidates {
		if e.MatchesAnyTopic(opts.Topics) {
			matching = append(matching, e)
		} else {
			fallback = append(fallback, e)
		}
	}
	rank(matching)
	rank(fallback)

	return accumulate(append(matching, fallback...), opts.MaxTokens)
}

// FormatLine renders one entry the way it appears in compressed output. The
// topics annotation shows a consumer why an entry was included.
func FormatLine(e models.Entry) string {
	if len(e.Topics) > 0 {
		return fmt.Sprintf("%s: %s [topics: %s]", e.Agent, e.Content, strings.Join(e.Topics, ","))
	}
	return fmt.Sprintf("%s: %s", e.Agent, e.Content)
}

func filter(entries []models.Entry, agent string, minQuality float64) []models.Entry {
	out := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if agent != "" && e.Agent != agent {
			continue
		}
		if e.Quality < minQuality {
			continue
		}
		out = append(out, e)
	}
	return out
}

// rank orders best-first: quality descending, then recency descending, with
// the id as a final tiebreak so output is fully deterministic.
func rank(entries []models.Entry) {
	slices.SortStableFunc(entries, func(a, b models.Entry) int {
		if c := cmp.Compare(b.Quality, a.Quality); c != 0 {
			return c
		}
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// accumulate runs the greedy budget loop: each candidate line's estimate is
// added to a running total, and the loop stops before the first line that
// would push the total over maxTokens.
func accumulate(ordered []models.Entry, maxTokens int) Result {
	var lines []string
	running := 0
	for _, e := range ordered {
		line := FormatLine(e)
		cost := token.Estimate(line)
		if running+cost > maxTokens {
			break
		}
		lines = append(lines, line)
		running += cost
	}

	text := strings.Join(lines, separator)
	return Result{
		Text:          text,
		Included:      len(lines),
		TokenEstimate: token.Estimate(text),
	}
}
