package adapter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/raphaelgruber/ctxkeep-go/internal/models"
)

// Export renders entries back into one context file, grouped by agent.
// Re-importing the result is a no-op thanks to content-addressed dedup.
func Export(entries []models.Entry) []byte {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("agent: exported\n")
	b.WriteString("---\n\n")
	b.WriteString("# Context export\n")

	byAgent := make(map[string][]models.Entry)
	for _, e := range entries {
		byAgent[e.Agent] = append(byAgent[e.Agent], e)
	}

	agents := make([]string, 0, len(byAgent))
	for agent := range byAgent {
		agents = append(agents, agent)
	}
	sort.Strings(agents)

	for _, agent := range agents {
		fmt.Fprintf(&b, "\n## %s\n\n", agent)
		for _, e := range byAgent[agent] {
			b.WriteString(e.Content)
			if len(e.Topics) > 0 {
				fmt.Fprintf(&b, "\n\n_topics: %s_", strings.Join(e.Topics, ", "))
			}
			b.WriteString("\n\n---\n\n")
		}
	}

	return []byte(b.String())
}
