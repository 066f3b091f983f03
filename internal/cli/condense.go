package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/raphaelgruber/ctxkeep-go/internal/metrics"
	"github.com/raphaelgruber/ctxkeep-go/internal/models"
	"github.com/raphaelgruber/ctxkeep-go/internal/token"
	"github.com/spf13/cobra"
)

var condenseContent string

// condenseDraftTimeout bounds one provider round trip.
const condenseDraftTimeout = 60 * time.Second

var condenseCmd = &cobra.Command{
	Use:   "condense <entry-id>...",
	Short: "Compact entries into a summary node",
	Long: `Compact the given entries into one summary node. Source entries stay in
the store untouched; the summary tracks how many tokens it saves.

With --content the summary text is yours. Without it, a configured LLM
provider (CTXKEEP_LLM_PROVIDER) drafts the text.

Examples:
  ctxkeep condense a1b2c3 d4e5f6 --content "Retry policy discussion"
  ctxkeep condense a1b2c3 d4e5f6`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCondense,
}

func init() {
	condenseCmd.Flags().StringVarP(&condenseContent, "content", "c", "", "summary text (drafted by the LLM when omitted)")
}

func runCondense(cmd *cobra.Command, args []string) error {
	content := condenseContent
	if content == "" {
		summarizer, err := getSummarizer()
		if err != nil {
			return err
		}
		if summarizer == nil {
			return fmt.Errorf("no summary content given and no LLM provider configured (set CTXKEEP_LLM_PROVIDER or pass --content)")
		}

		entries := make([]models.Entry, 0, len(args))
		for _, id := range args {
			entry, err := st.Get(id)
			if err != nil {
				return fmt.Errorf("load source entry: %w", err)
			}
			entries = append(entries, entry)
		}

		fmt.Printf("Drafting summary with %s...\n", summarizer.Model())
		ctx, cancel := context.WithTimeout(context.Background(), condenseDraftTimeout)
		defer cancel()

		start := time.Now()
		content, err = summarizer.Draft(ctx, entries)
		if err != nil {
			return fmt.Errorf("draft summary: %w", err)
		}
		promptTokens := 0
		for _, e := range entries {
			promptTokens += token.Estimate(e.Content)
		}
		collector.RecordLLMUsage(metrics.OpLLMDraft, time.Since(start),
			int64(promptTokens), int64(token.Estimate(content)))
	}

	summary, err := st.CreateSummary(args, content)
	if err != nil {
		return fmt.Errorf("create summary: %w", err)
	}

	fmt.Printf("Created summary %s\n", summary.ID)
	fmt.Printf("  Sources:      %d\n", len(summary.SourceEntryIDs))
	fmt.Printf("  Tokens saved: %d\n", summary.TokensSaved)
	if verbose {
		fmt.Printf("\n%s\n", summary.Content)
	}
	return nil
}
