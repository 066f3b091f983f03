package cli

import (
	"fmt"
	"os"

	"github.com/raphaelgruber/ctxkeep-go/internal/config"
	"github.com/raphaelgruber/ctxkeep-go/internal/hooks"
	"github.com/spf13/cobra"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Process one host-runtime hook event from stdin",
	Long: `Read one JSON hook event from stdin and capture it into the store.
Meant to be wired into an assistant runtime's hook configuration; it always
exits zero so a capture failure can never break the host session.

Topics come from CTXKEEP_TOPICS plus the project label.`,
	Run: runHook,
}

// runHook never fails the process: errors go to stderr and the exit code
// stays zero. A nil store means the pre-run already reported an open
// failure; the event is dropped.
func runHook(cmd *cobra.Command, args []string) {
	if st == nil {
		return
	}

	topics := cfg.DefaultTopics
	if project := config.ProjectLabel(st.Dir()); project != "" {
		topics = append(append([]string{}, topics...), project)
	}

	runner := hooks.NewRunner(st, topics, logger)
	if err := runner.Run(cmd.InOrStdin()); err != nil {
		fmt.Fprintf(os.Stderr, "ctxkeep hook: %v\n", err)
		logger.Warn("hook event dropped", "error", err)
	}
}
