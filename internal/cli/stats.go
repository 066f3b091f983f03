package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/raphaelgruber/ctxkeep-go/internal/graph"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show store statistics",
	RunE:  runStats,
}

var graphJSON bool

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the node/edge projection of the store",
	Long: `Print the graph projection: one node per entry and summary, one edge per
reference and per summary-to-source relation. With --json the full
projection is emitted for external tooling.`,
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().BoolVar(&graphJSON, "json", false, "emit the full projection as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	stats := st.Stats()

	fmt.Printf("Store: %s\n\n", st.Dir())
	fmt.Printf("  Entries:       %d\n", stats.EntryCount)
	fmt.Printf("  Summaries:     %d\n", stats.SummaryCount)
	fmt.Printf("  Total tokens:  %d\n", stats.TotalTokens)
	fmt.Printf("  Tokens saved:  %d\n", stats.TokensSaved)
	fmt.Printf("  Avg quality:   %.2f\n", stats.AvgQuality)
	fmt.Printf("  High quality:  %d (>= 0.8)\n", stats.HighQualityCount)
	fmt.Printf("  Low quality:   %d (< 0.5)\n", stats.LowQualityCount)
	fmt.Printf("  On disk:       %d bytes\n", stats.StorageSize)
	return nil
}

func runGraph(cmd *cobra.Command, args []string) error {
	g := graph.Project(st.Snapshot(), st.Summaries())

	if graphJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(g)
	}

	fmt.Printf("Graph: %d nodes, %d edges\n\n", len(g.Nodes), len(g.Edges))
	for _, n := range g.Nodes {
		fmt.Printf("- [%s] %s  %s\n", n.Type, shortID(n.ID), n.Label)
	}
	if len(g.Edges) > 0 {
		fmt.Println()
		for _, e := range g.Edges {
			fmt.Printf("  %s -%s-> %s\n", shortID(e.Source), e.Type, shortID(e.Target))
		}
	}
	return nil
}
