package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/raphaelgruber/ctxkeep-go/internal/adapter"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	importTopics      []string
	importRecursive   bool
	importConcurrency int
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import markdown context files",
	Long: `Import a markdown context file or a directory of them. Each "##" section
becomes one entry; YAML frontmatter sets the agent, topics, and kind.
Importing the same files again is a no-op thanks to content dedup.

Examples:
  ctxkeep import ./docs/context.md
  ctxkeep import ./docs --recursive --topics "project-x"`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringSliceVarP(&importTopics, "topics", "t", nil, "extra topics for every imported entry")
	importCmd.Flags().BoolVarP(&importRecursive, "recursive", "r", false, "descend into subdirectories")
	importCmd.Flags().IntVar(&importConcurrency, "concurrency", 4, "parallel workers for directory import")
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	if !info.IsDir() {
		added, err := adapter.ImportFile(st, path, importTopics)
		if err != nil {
			return fmt.Errorf("import %s: %w", filepath.Base(path), err)
		}
		fmt.Printf("Imported %s: %d entries\n", filepath.Base(path), added)
		return nil
	}

	opts := adapter.ImportOptions{
		Topics:      importTopics,
		Recursive:   importRecursive,
		Concurrency: importConcurrency,
	}

	// Interactive progress only when stdout is a terminal.
	if term.IsTerminal(int(os.Stdout.Fd())) {
		result, err := RunImportProgress(func(report func(done, total int, file string)) (*adapter.ImportResult, error) {
			opts.Progress = report
			return adapter.ImportDir(st, path, opts)
		})
		if err != nil {
			return err
		}
		_ = result // the final view already rendered the outcome
		return nil
	}

	result, err := adapter.ImportDir(st, path, opts)
	if err != nil {
		return err
	}
	printImportResult(result)
	return nil
}

func printImportResult(result *adapter.ImportResult) {
	fmt.Printf("Files processed: %d\n", result.FilesProcessed)
	fmt.Printf("Entries added:   %d\n", result.EntriesAdded)
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", e)
	}
}
