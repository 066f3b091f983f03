package cli

import (
	"fmt"
	"os"

	"github.com/raphaelgruber/ctxkeep-go/internal/adapter"
	"github.com/raphaelgruber/ctxkeep-go/internal/pack"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	installBranch string
	installTopics []string
)

var installCmd = &cobra.Command{
	Use:   "install <source>",
	Short: "Install a context pack from git or a local directory",
	Long: `Install a context pack: a directory with a ctxpack.yaml manifest and the
markdown context files it lists. Git sources are cloned shallowly.

Examples:
  ctxkeep install https://github.com/org/go-conventions
  ctxkeep install git@github.com:org/go-conventions.git --branch v2
  ctxkeep install ./packs/local-conventions`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVarP(&installBranch, "branch", "b", "", "branch for git sources")
	installCmd.Flags().StringSliceVarP(&installTopics, "topics", "t", nil, "extra topics for every installed entry")
}

func runInstall(cmd *cobra.Command, args []string) error {
	source := args[0]
	opts := pack.InstallOptions{
		Branch: installBranch,
		Topics: installTopics,
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		var manifest pack.Manifest
		result, err := RunImportProgress(func(report func(done, total int, file string)) (*adapter.ImportResult, error) {
			opts.Progress = report
			installed, err := pack.Install(st, source, opts, logger)
			if err != nil {
				return nil, err
			}
			manifest = installed.Manifest
			return installed.Import, nil
		})
		if err != nil {
			return fmt.Errorf("install pack: %w", err)
		}
		if result != nil {
			fmt.Printf("Installed pack %s %s\n", manifest.Name, manifest.Version)
		}
		return nil
	}

	result, err := pack.Install(st, source, opts, logger)
	if err != nil {
		return fmt.Errorf("install pack: %w", err)
	}
	fmt.Printf("Installed pack %s %s\n", result.Manifest.Name, result.Manifest.Version)
	printImportResult(result.Import)
	return nil
}
