package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	var (
		limit int
		clear bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past generation results",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAppContext(cmd)
			if err != nil {
				return err
			}

			if clear {
				if err := a.history.Clear(); err != nil {
					return err
				}
				a.ui.ShowSuccess("History cleared.")
				return nil
			}

			entries, err := a.history.List(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				a.ui.ShowInfo("No history yet.")
				return nil
			}

			for i := len(entries) - 1; i >= 0; i-- {
				e := entries[i]
				fmt.Printf("%s  %s/%s  [%s]\n", e.Timestamp.Format("2006-01-02 15:04"), e.Provider, e.Model, e.PromptKey)
				fmt.Printf("  %s\n\n", firstLine(e.Result))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show")
	cmd.Flags().BoolVar(&clear, "clear", false, "Delete all history entries")

	return cmd
}
