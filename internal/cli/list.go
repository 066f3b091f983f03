package cli

import (
	"fmt"
	"strings"

	"github.com/raphaelgruber/ctxkeep-go/internal/models"
	"github.com/spf13/cobra"
)

var (
	listAgent  string
	listTopics []string
	listLimit  int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored entries",
	Long: `List entries with optional filtering.

Filters combine conjunctively: --agent restricts to one producer, --topics
keeps entries sharing at least one of the given topics.

Examples:
  ctxkeep list
  ctxkeep list --agent user
  ctxkeep list --topics "auth,security"`,
	RunE: runList,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one entry in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	listCmd.Flags().StringVarP(&listAgent, "agent", "a", "", "filter by producer tag")
	listCmd.Flags().StringSliceVarP(&listTopics, "topics", "t", nil, "filter by topic overlap")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 50, "max results")
}

func runList(cmd *cobra.Command, args []string) error {
	entries := st.ListEntries(listAgent, listTopics)
	if len(entries) == 0 {
		fmt.Println("No entries found.")
		return nil
	}

	total := len(entries)
	if listLimit > 0 && len(entries) > listLimit {
		entries = entries[:listLimit]
	}

	fmt.Printf("Entries (%d", len(entries))
	if total > len(entries) {
		fmt.Printf(" of %d", total)
	}
	fmt.Printf("):\n\n")

	for _, entry := range entries {
		fmt.Printf("- %s [%s] q=%.2f %s\n", shortID(entry.ID), entry.Agent, entry.Quality, previewLine(entry.Content))
		if verbose {
			if len(entry.Topics) > 0 {
				fmt.Printf("  Topics: %s\n", strings.Join(entry.Topics, ", "))
			}
			fmt.Printf("  Tokens: %d  Added: %s\n", entry.TokenEstimate, entry.Timestamp.Format("2006-01-02 15:04:05"))
		}
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	entry, err := st.Get(args[0])
	if err != nil {
		return fmt.Errorf("show entry: %w", err)
	}

	fmt.Printf("ID:        %s\n", entry.ID)
	fmt.Printf("Agent:     %s\n", entry.Agent)
	fmt.Printf("Quality:   %.2f\n", entry.Quality)
	fmt.Printf("Tokens:    %d\n", entry.TokenEstimate)
	fmt.Printf("Added:     %s\n", entry.Timestamp.Format("2006-01-02 15:04:05"))
	if len(entry.Topics) > 0 {
		fmt.Printf("Topics:    %s\n", strings.Join(entry.Topics, ", "))
	}
	if len(entry.References) > 0 {
		fmt.Printf("Refs:      %s\n", strings.Join(entry.References, ", "))
	}
	if kind, ok := entry.Metadata[models.MetaKeyKind]; ok {
		fmt.Printf("Kind:      %v\n", kind)
	}
	fmt.Printf("\n%s\n", entry.Content)
	return nil
}

// previewLine flattens content to one short line for list output.
func previewLine(content string) string {
	flat := strings.Join(strings.Fields(content), " ")
	if len(flat) > 70 {
		return flat[:70] + "..."
	}
	return flat
}
