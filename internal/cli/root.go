// Package cli provides the command-line interface for ctxkeep.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/raphaelgruber/ctxkeep-go/internal/config"
	"github.com/raphaelgruber/ctxkeep-go/internal/llm"
	"github.com/raphaelgruber/ctxkeep-go/internal/metrics"
	"github.com/raphaelgruber/ctxkeep-go/internal/store"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool
	dirFlag string

	// Global config, logger, and store, wired in PersistentPreRunE
	cfg       config.Config
	logger    *slog.Logger
	logCloser func() error
	st        *store.Store
	collector *metrics.Collector
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ctxkeep",
	Short: "Token-budgeted context store for AI coding assistants",
	Long: `Ctxkeep keeps a project-scoped store of short context entries (user turns,
assistant turns, tool invocations), deduplicated by content and scored for
quality, and serves token-budgeted subsets back on demand.

The store lives in a per-project directory (.ctxkeep by default) and is
shared by the CLI, the MCP server, and the analytics dashboard.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip store setup for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()
		if dirFlag != "" {
			cfg.Dir = dirFlag
		}

		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}
		logger, logCloser = config.SetupLogger(cfg.LogFile, level)

		dir := config.ResolveDir(cfg.Dir)
		collector = metrics.NewCollector()

		var err error
		st, err = store.Open(dir, logger, collector)
		if err != nil {
			// The hook command must never break the host session, not
			// even when the store cannot be opened.
			if cmd.Name() == "hook" {
				fmt.Fprintf(os.Stderr, "ctxkeep hook: open store: %v\n", err)
				logger.Warn("hook store open failed", "dir", dir, "error", err)
				st = nil
				return nil
			}
			return fmt.Errorf("open store: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			if err := logCloser(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	},
}

// getSummarizer lazily builds the configured LLM summarizer. Commands that
// can draft summary text call this; everything else never touches a
// provider.
func getSummarizer() (llm.Summarizer, error) {
	s, err := llm.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init summarizer: %w", err)
	}
	return s, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&dirFlag, "dir", "", "storage directory (default: CTXKEEP_DIR, git toplevel, or cwd)")

	// Add subcommands
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(assistantCmd)
	rootCmd.AddCommand(toolCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(recallCmd)
	rootCmd.AddCommand(focusCmd)
	rootCmd.AddCommand(condenseCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(hookCmd)
}
