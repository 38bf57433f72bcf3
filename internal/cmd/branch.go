package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewBranchCmd creates the branch command.
func NewBranchCmd() *cobra.Command {
	var checkout bool

	cmd := &cobra.Command{
		Use:   "branch",
		Short: "Suggest a branch name from current changes",
		Long: `Suggest a kebab-case branch name (type/short-description) from your
staged or unstaged changes.

Examples:
  gitbro branch              # Print a suggestion
  gitbro branch --checkout   # Create and switch to the suggested branch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAppContext(cmd)
			if err != nil {
				return err
			}
			if err := a.requireRepo(cmd); err != nil {
				return err
			}
			ctx := cmd.Context()

			spin := a.ui.ShowSpinner("Suggesting branch name...")
			spin.Start()
			name, err := a.service.SuggestBranchName(ctx)
			spin.Stop()
			if err != nil {
				return err
			}

			if !checkout {
				fmt.Println(name)
				return nil
			}

			confirmed, err := a.ui.PromptConfirm(fmt.Sprintf("Create and switch to '%s'?", name))
			if err != nil {
				return err
			}
			if !confirmed {
				a.ui.ShowInfo("Cancelled.")
				return nil
			}
			if err := a.runner.CheckoutNewBranch(ctx, name); err != nil {
				return err
			}
			a.ui.ShowSuccess(fmt.Sprintf("Switched to new branch %s", name))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&checkout, "checkout", "b", false, "Create and switch to the suggested branch")

	return cmd
}
