package quality

import (
	"strings"
	"testing"
)

func TestScoreBounds(t *testing.T) {
	inputs := []string{
		"",
		"x",
		"Short",
		strings.Repeat("a", 50),
		strings.Repeat("substantial content ", 100),
		"```go\npanic(\"error failed failure\")\n```",
		"ERROR: everything failed with an exception, traceback follows",
	}

	for _, in := range inputs {
		got := Score(in)
		if got < 0 || got > 1 {
			t.Errorf("Score(%.30q...) = %v, want within [0,1]", in, got)
		}
	}
}

func TestScoreEmpty(t *testing.T) {
	if got := Score(""); got != 0 {
		t.Errorf("Score(\"\") = %v, want 0", got)
	}
}

func TestScoreDeterministic(t *testing.T) {
	in := "deterministic scoring input with some length to it"
	if Score(in) != Score(in) {
		t.Error("Score() is not deterministic")
	}
}

func TestScoreShortContentPenalized(t *testing.T) {
	got := Score("Short")
	if got >= 1.0 {
		t.Errorf("Score(\"Short\") = %v, want < 1.0", got)
	}
	if got >= 0.5 {
		t.Errorf("Score(\"Short\") = %v, want below the substantial-content floor", got)
	}
}

func TestScoreCodeBlockBonus(t *testing.T) {
	got := Score("A substantial example with ```python\nprint(1)\n```")
	if got <= 0.7 {
		t.Errorf("Score(code block content) = %v, want > 0.7", got)
	}

	plain := Score("A substantial example without any code in it")
	if got <= plain {
		t.Errorf("code block score %v not above plain score %v", got, plain)
	}
}

func TestScoreErrorVocabularyPenalty(t *testing.T) {
	clean := "The deploy pipeline now publishes artifacts to the registry on merge."
	dump := "The deploy pipeline FAILED with an error, traceback in the logs below."

	cleanScore := Score(clean)
	dumpScore := Score(dump)
	if dumpScore >= cleanScore {
		t.Errorf("Score(error dump) = %v, want below Score(clean) = %v", dumpScore, cleanScore)
	}
}

func TestScoreLengthSaturates(t *testing.T) {
	mid := Score(strings.Repeat("a", 400))
	long := Score(strings.Repeat("a", 4000))
	if mid != long {
		t.Errorf("length term should saturate: Score(400 chars) = %v, Score(4000 chars) = %v", mid, long)
	}
}

func TestScoreMonotonicWithLength(t *testing.T) {
	prev := 0.0
	for n := 1; n <= 350; n += 7 {
		got := Score(strings.Repeat("a", n))
		if got < prev {
			t.Fatalf("Score() decreased from %v to %v at length %d", prev, got, n)
		}
		prev = got
	}
}
