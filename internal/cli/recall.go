package cli

import (
	"fmt"

	"github.com/raphaelgruber/ctxkeep-go/internal/compress"
	"github.com/spf13/cobra"
)

var (
	recallAgent      string
	recallMaxTokens  int
	recallMinQuality float64
	focusTopics      []string
)

var recallCmd = &cobra.Command{
	Use:   "recall",
	Short: "Retrieve quality-ranked context under a token budget",
	Long: `Retrieve compressed context: entries ranked by quality then recency,
greedily packed under the token budget.

Examples:
  ctxkeep recall --max-tokens 2000
  ctxkeep recall --agent assistant --min-quality 0.5`,
	RunE: runRecall,
}

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Retrieve context preferring the given topics",
	Long: `Retrieve compressed context with topic preference: entries matching any of
the requested topics are packed first, leftover budget goes to the rest.
Without --topics this is identical to recall.

Example:
  ctxkeep focus --topics "auth" --max-tokens 2000`,
	RunE: runFocus,
}

func init() {
	for _, c := range []*cobra.Command{recallCmd, focusCmd} {
		c.Flags().StringVarP(&recallAgent, "agent", "a", "", "restrict to one producer")
		c.Flags().IntVarP(&recallMaxTokens, "max-tokens", "m", 2000, "token budget")
		c.Flags().Float64VarP(&recallMinQuality, "min-quality", "q", 0, "drop entries scoring below this")
	}
	focusCmd.Flags().StringSliceVarP(&focusTopics, "topics", "t", nil, "topics to prefer (any-of)")
}

func runRecall(cmd *cobra.Command, args []string) error {
	if err := validateQuality(recallMinQuality); err != nil {
		return err
	}

	result := compress.Compress(st.Snapshot(), compress.Options{
		Agent:      recallAgent,
		MaxTokens:  recallMaxTokens,
		MinQuality: recallMinQuality,
	})
	printCompressed(result)
	return nil
}

func runFocus(cmd *cobra.Command, args []string) error {
	if err := validateQuality(recallMinQuality); err != nil {
		return err
	}

	result := compress.Focus(st.Snapshot(), compress.FocusOptions{
		Topics:     focusTopics,
		Agent:      recallAgent,
		MaxTokens:  recallMaxTokens,
		MinQuality: recallMinQuality,
	})
	printCompressed(result)
	return nil
}

func validateQuality(q float64) error {
	if q < 0 || q > 1 {
		return fmt.Errorf("min-quality must be between 0 and 1, got %v", q)
	}
	return nil
}

func printCompressed(result compress.Result) {
	if result.Text == "" {
		fmt.Println("No entries fit the budget.")
		return
	}
	fmt.Println(result.Text)
	if verbose {
		fmt.Printf("\n-- %d entries, ~%d tokens\n", result.Included, result.TokenEstimate)
	}
}
