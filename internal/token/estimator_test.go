package token

import (
	"strings"
	"testing"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"single char", "a", 1},
		{"four chars", "abcd", 1},
		{"five chars", "abcde", 2},
		{"short sentence", "hello world!", 3},
		{"hundred chars", strings.Repeat("x", 100), 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Estimate(tt.in); got != tt.want {
				t.Errorf("Estimate(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestEstimateMonotonic(t *testing.T) {
	// Appending characters never decreases the estimate.
	text := ""
	prev := 0
	for i := 0; i < 500; i++ {
		text += "a"
		got := Estimate(text)
		if got < prev {
			t.Fatalf("Estimate() decreased from %d to %d at length %d", prev, got, len(text))
		}
		prev = got
	}
}

func TestEstimateDeterministic(t *testing.T) {
	in := "the same input, estimated twice"
	if Estimate(in) != Estimate(in) {
		t.Error("Estimate() is not deterministic")
	}
}

func TestEstimateAll(t *testing.T) {
	got := EstimateAll("abcd", "efgh", "")
	if got != 2 {
		t.Errorf("EstimateAll() = %d, want 2", got)
	}
}
