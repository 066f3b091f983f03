package cli

import (
	"fmt"

	"github.com/raphaelgruber/ctxkeep-go/internal/models"
	"github.com/spf13/cobra"
)

var (
	addAgent      string
	addTopics     []string
	addReferences []string
)

var addCmd = &cobra.Command{
	Use:   "add <content>",
	Short: "Add a context entry to the store",
	Long: `Add a context entry to the store.

Identical content (after whitespace normalization) is stored once; adding it
again returns the existing id unchanged.

Examples:
  ctxkeep add "The payment client retries with exponential backoff"
  ctxkeep add "JWT expiry is 15 minutes" --agent architect --topics "auth,security"
  ctxkeep add "See the rollout decision" --references a1b2c3...`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var userCmd = &cobra.Command{
	Use:   "user <text>",
	Short: "Capture a user message",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := st.AddUserMessage(args[0], addTopics...)
		if err != nil {
			return fmt.Errorf("capture user message: %w", err)
		}
		printEntry(id)
		return nil
	},
}

var assistantCmd = &cobra.Command{
	Use:   "assistant <text>",
	Short: "Capture an assistant message",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := st.AddAssistantMessage(args[0], addTopics...)
		if err != nil {
			return fmt.Errorf("capture assistant message: %w", err)
		}
		printEntry(id)
		return nil
	},
}

var (
	toolInput  string
	toolOutput string
)

var toolCmd = &cobra.Command{
	Use:   "tool <name>",
	Short: "Capture a tool invocation",
	Long: `Capture a tool invocation as one canonical entry. The output is truncated
when stored so a single verbose dump cannot dominate later retrieval.

Example:
  ctxkeep tool grep --input "login" --output "auth/login.go:42"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := st.AddToolUse(args[0], toolInput, toolOutput, addTopics...)
		if err != nil {
			return fmt.Errorf("capture tool use: %w", err)
		}
		printEntry(id)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addAgent, "agent", "a", "assistant", "producer tag (role or tool name)")
	addCmd.Flags().StringSliceVarP(&addTopics, "topics", "t", nil, "topic tags for focused retrieval")
	addCmd.Flags().StringSliceVar(&addReferences, "references", nil, "ids of entries this one points to")

	userCmd.Flags().StringSliceVarP(&addTopics, "topics", "t", nil, "topic tags")
	assistantCmd.Flags().StringSliceVarP(&addTopics, "topics", "t", nil, "topic tags")

	toolCmd.Flags().StringVar(&toolInput, "input", "", "tool input text")
	toolCmd.Flags().StringVar(&toolOutput, "output", "", "tool output text")
	toolCmd.Flags().StringSliceVarP(&addTopics, "topics", "t", nil, "topic tags")
}

func runAdd(cmd *cobra.Command, args []string) error {
	id, _, err := st.AddEntry(args[0], addAgent, addTopics, nil, addReferences)
	if err != nil {
		return fmt.Errorf("add entry: %w", err)
	}
	printEntry(id)
	return nil
}

// printEntry reports a stored id, with detail in verbose mode.
func printEntry(id string) {
	fmt.Printf("Stored entry: %s\n", shortID(id))
	if verbose {
		if entry, err := st.Get(id); err == nil {
			fmt.Printf("  Agent:   %s\n", entry.Agent)
			fmt.Printf("  Quality: %.2f\n", entry.Quality)
			fmt.Printf("  Tokens:  %d\n", entry.TokenEstimate)
			if len(entry.Topics) > 0 {
				fmt.Printf("  Topics:  %v\n", entry.Topics)
			}
			if kind, ok := entry.Metadata[models.MetaKeyKind]; ok {
				fmt.Printf("  Kind:    %v\n", kind)
			}
		}
	}
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
