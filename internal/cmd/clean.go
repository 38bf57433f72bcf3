package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// protectedBranches are never offered for deletion.
var protectedBranches = map[string]bool{
	"main":    true,
	"master":  true,
	"develop": true,
}

// NewCleanCmd creates the clean command.
func NewCleanCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete local branches already merged",
		Long: `Delete local branches that are merged into the current branch.
The current branch and main/master/develop are never touched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAppContext(cmd)
			if err != nil {
				return err
			}
			if err := a.requireRepo(cmd); err != nil {
				return err
			}
			return runClean(cmd, a, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without confirmation")

	return cmd
}

func runClean(cmd *cobra.Command, a *appContext, yes bool) error {
	ctx := cmd.Context()

	current, err := a.runner.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	merged, err := a.runner.MergedBranches(ctx)
	if err != nil {
		return err
	}

	var candidates []string
	for _, b := range merged {
		if b == current || protectedBranches[b] {
			continue
		}
		candidates = append(candidates, b)
	}

	if len(candidates) == 0 {
		a.ui.ShowInfo("No merged branches to clean.")
		return nil
	}

	deleted := 0
	for _, b := range candidates {
		if !yes {
			confirmed, err := a.ui.PromptConfirm(fmt.Sprintf("Delete merged branch %s?", b))
			if err != nil {
				return err
			}
			if !confirmed {
				continue
			}
		}
		if err := a.runner.DeleteBranch(ctx, b, false); err != nil {
			a.ui.ShowError(err)
			continue
		}
		deleted++
	}

	a.ui.ShowSuccess(fmt.Sprintf("Deleted %d branch(es).", deleted))
	return nil
}
