package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/gitbro/gitbro/internal/pkg/errors"
)

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	var (
		conventional bool
		revRange     string
		fix          bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate commit messages in a range",
		Long: `Check commit messages for hygiene problems, optionally enforcing the
Conventional Commits format. Exits non-zero when any message fails.

Examples:
  gitbro validate --range HEAD~5..HEAD
  gitbro validate --conventional --range HEAD~1..HEAD
  gitbro validate --conventional --fix --range HEAD~1..HEAD`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAppContext(cmd)
			if err != nil {
				return err
			}
			if err := a.requireRepo(cmd); err != nil {
				return err
			}
			ctx := cmd.Context()

			report, err := a.service.ValidateCommits(ctx, revRange, conventional)
			if err != nil {
				return err
			}

			if report.Passed() {
				a.ui.ShowSuccess(fmt.Sprintf("All %d commit message(s) pass.", report.Checked))
				return nil
			}

			for subject, issues := range report.Issues {
				fmt.Printf("  %s\n", subject)
				for _, issue := range issues {
					fmt.Printf("    - %s\n", issue)
				}
				if fix {
					fixed, fixErr := a.service.FixCommitMessage(ctx, subject)
					if fixErr != nil {
						return fixErr
					}
					fmt.Printf("    suggested: %s\n", fixed)
				}
			}

			return apperrors.NewInvalidArgumentError(
				fmt.Sprintf("%d of %d commit message(s) failed validation", len(report.Issues), report.Checked))
		},
	}

	cmd.Flags().BoolVarP(&conventional, "conventional", "c", false, "Require Conventional Commits format")
	cmd.Flags().StringVarP(&revRange, "range", "r", "", "Revision range to check (default: all history)")
	cmd.Flags().BoolVar(&fix, "fix", false, "Suggest fixed messages for failures")

	return cmd
}
