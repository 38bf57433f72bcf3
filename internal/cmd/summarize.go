package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitbro/gitbro/internal/app"
	apperrors "github.com/gitbro/gitbro/internal/pkg/errors"
)

// NewSummarizeCmd creates the summarize command.
func NewSummarizeCmd() *cobra.Command {
	var style string

	cmd := &cobra.Command{
		Use:   "summarize [range]",
		Short: "Summarize commit history",
		Long: `Summarize a revision range as prose, a changelog, or release notes.

Examples:
  gitbro summarize                        # Summarize all history
  gitbro summarize v1.0.0..HEAD           # Summarize since a tag
  gitbro summarize --style changelog      # Markdown changelog
  gitbro summarize --style release        # Release notes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAppContext(cmd)
			if err != nil {
				return err
			}
			if err := a.requireRepo(cmd); err != nil {
				return err
			}

			revRange := ""
			if len(args) > 0 {
				revRange = args[0]
			}

			var summaryStyle app.SummaryStyle
			switch style {
			case "summary":
				summaryStyle = app.SummaryStyleSummary
			case "changelog":
				summaryStyle = app.SummaryStyleChangelog
			case "release":
				summaryStyle = app.SummaryStyleRelease
			default:
				return apperrors.NewInvalidArgumentError(
					fmt.Sprintf("unknown style %q (valid: summary, changelog, release)", style))
			}

			spin := a.ui.ShowSpinner("Summarizing history...")
			spin.Start()
			out, err := a.service.Summarize(cmd.Context(), revRange, summaryStyle)
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

	cmd.Flags().StringVarP(&style, "style", "s", "summary", "Output style (summary, changelog, release)")

	return cmd
}
