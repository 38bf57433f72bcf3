package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/gitbro/gitbro/internal/pkg/errors"
	"github.com/gitbro/gitbro/internal/pkg/ui"
)

// CommitFlags holds the flags for the commit command.
type CommitFlags struct {
	Temperature  float64
	Auto         bool
	Conventional bool
}

// NewCommitCmd creates the commit command.
func NewCommitCmd() *cobra.Command {
	flags := &CommitFlags{Temperature: -1}

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Generate a commit message from staged changes",
		Long: `Generate a commit message from your staged diff, then review it
interactively before committing.

Examples:
  gitbro commit                  # Interactive review
  gitbro commit --auto           # Commit immediately with the generated message
  gitbro commit --conventional   # Conventional Commits format
  gitbro commit -t 1.2           # Override temperature for this run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommit(cmd, flags)
		},
	}

	cmd.Flags().Float64VarP(&flags.Temperature, "temperature", "t", -1, "Temperature for this run (0.0-2.0)")
	cmd.Flags().BoolVarP(&flags.Auto, "auto", "a", false, "Commit immediately without review")
	cmd.Flags().BoolVarP(&flags.Conventional, "conventional", "c", false, "Use Conventional Commits format")

	return cmd
}

func runCommit(cmd *cobra.Command, flags *CommitFlags) error {
	a, err := newAppContext(cmd)
	if err != nil {
		return err
	}
	if err := a.requireRepo(cmd); err != nil {
		return err
	}
	ctx := cmd.Context()

	if flags.Temperature >= 0 {
		if err := a.store.SetTemperature(flags.Temperature); err != nil {
			return err
		}
	}

	for {
		spin := a.ui.ShowSpinner("Generating commit message...")
		spin.Start()
		msg, err := a.service.GenerateCommitMessage(ctx, flags.Conventional)
		spin.Stop()
		if err != nil {
			return err
		}

		if flags.Auto {
			if err := a.runner.Commit(ctx, msg); err != nil {
				return err
			}
			a.service.MarkLastCommitted()
			a.ui.ShowSuccess(fmt.Sprintf("Committed: %s", firstLine(msg)))
			return nil
		}

		if err := a.ui.DisplayResult("Generated Commit Message", msg); err != nil {
			return err
		}

		action, err := a.ui.PromptAction()
		if err != nil {
			return err
		}

		switch action {
		case ui.ActionAccept:
			if err := a.runner.Commit(ctx, msg); err != nil {
				return err
			}
			a.service.MarkLastCommitted()
			a.ui.ShowSuccess(fmt.Sprintf("Committed: %s", firstLine(msg)))
			return nil
		case ui.ActionEdit:
			edited, err := a.ui.EditText(msg)
			if err != nil {
				return err
			}
			if edited == "" {
				return apperrors.NewInvalidArgumentError("edited message is empty")
			}
			if err := a.runner.Commit(ctx, edited); err != nil {
				return err
			}
			a.service.MarkLastCommitted()
			a.ui.ShowSuccess(fmt.Sprintf("Committed: %s", firstLine(edited)))
			return nil
		case ui.ActionRegenerate:
			continue
		case ui.ActionCancel:
			a.ui.ShowInfo("Cancelled.")
			return nil
		}
	}
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
