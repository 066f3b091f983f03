package cli

import (
	"fmt"
	"os"

	"github.com/raphaelgruber/ctxkeep-go/internal/adapter"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the store as one markdown context file",
	Long: `Render all entries into a markdown context file grouped by agent.
Re-importing the result is a no-op.

Examples:
  ctxkeep export
  ctxkeep export --output context.md`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to a file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	out := adapter.Export(st.ListEntries("", nil))

	if exportOutput == "" {
		fmt.Print(string(out))
		return nil
	}

	if err := os.WriteFile(exportOutput, out, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Printf("Exported %d entries to %s\n", st.Stats().EntryCount, exportOutput)
	return nil
}
