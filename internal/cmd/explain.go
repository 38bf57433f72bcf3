package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewExplainCmd creates the explain command.
func NewExplainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain [ref]",
		Short: "Explain changes in plain English",
		Long: `Explain what a commit (or the current working tree changes) does.

Examples:
  gitbro explain          # Explain uncommitted changes
  gitbro explain HEAD     # Explain the last commit
  gitbro explain abc1234  # Explain a specific commit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAppContext(cmd)
			if err != nil {
				return err
			}
			if err := a.requireRepo(cmd); err != nil {
				return err
			}

			ref := ""
			if len(args) > 0 {
				ref = args[0]
			}

			spin := a.ui.ShowSpinner("Analyzing changes...")
			spin.Start()
			out, err := a.service.ExplainChanges(cmd.Context(), ref)
			spin.Stop()
			if err != nil {
				return err
			}

			fmt.Println()
			fmt.Println(out)
			fmt.Println()
			return nil
		},
	}

	return cmd
}
