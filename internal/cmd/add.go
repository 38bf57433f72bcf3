package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewAddCmd creates the add command, an AI-assisted staging walk.
func NewAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Interactively stage files with AI analysis",
		Long: `Walk through each modified file, show a short AI analysis of its
changes, and decide whether to stage it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAppContext(cmd)
			if err != nil {
				return err
			}
			if err := a.requireRepo(cmd); err != nil {
				return err
			}
			return runAdd(cmd, a)
		},
	}

	return cmd
}

func runAdd(cmd *cobra.Command, a *appContext) error {
	ctx := cmd.Context()

	modified, err := a.runner.ModifiedFiles(ctx)
	if err != nil {
		return err
	}
	untracked, err := a.runner.UntrackedFiles(ctx)
	if err != nil {
		return err
	}

	if len(modified) == 0 && len(untracked) == 0 {
		a.ui.ShowInfo("Working tree is clean.")
		return nil
	}

	staged := 0
	for _, path := range modified {
		spin := a.ui.ShowSpinner(fmt.Sprintf("Analyzing %s...", path))
		spin.Start()
		analysis, err := a.service.AnalyzeFileChange(ctx, path)
		spin.Stop()
		if err != nil {
			a.ui.ShowError(err)
			analysis = "(analysis unavailable)"
		}

		fmt.Printf("\n  %s\n  %s\n", path, analysis)
		confirmed, err := a.ui.PromptConfirm(fmt.Sprintf("Stage %s?", path))
		if err != nil {
			return err
		}
		if confirmed {
			if err := a.runner.Add(ctx, path); err != nil {
				return err
			}
			staged++
		}
	}

	for _, path := range untracked {
		confirmed, err := a.ui.PromptConfirm(fmt.Sprintf("Stage untracked file %s?", path))
		if err != nil {
			return err
		}
		if confirmed {
			if err := a.runner.Add(ctx, path); err != nil {
				return err
			}
			staged++
		}
	}

	a.ui.ShowSuccess(fmt.Sprintf("Staged %d file(s).", staged))
	return nil
}
