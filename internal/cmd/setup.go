package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitbro/gitbro/internal/pkg/config"
	apperrors "github.com/gitbro/gitbro/internal/pkg/errors"
	"github.com/gitbro/gitbro/internal/pkg/ui"
)

// NewSetupCmd creates the setup command.
func NewSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup [provider]",
		Short: "Configure an AI provider",
		Long: `Run the interactive setup wizard. Naming a provider skips the
selection step and configures that provider directly.

Examples:
  gitbro setup          # Full wizard
  gitbro setup claude   # Configure Claude directly`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAppContext(cmd)
			if err != nil {
				return err
			}

			preselected := ""
			if len(args) > 0 {
				preselected = args[0]
				if !config.IsKnownProvider(preselected) {
					return apperrors.NewInvalidArgumentError(
						fmt.Sprintf("unknown provider %q (valid: %v)", preselected, config.KnownProviders))
				}
			}

			return ui.RunInteractiveSetup(a.store, preselected)
		},
	}

	return cmd
}

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show provider configuration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAppContext(cmd)
			if err != nil {
				return err
			}

			selected := a.store.Provider()
			fmt.Printf("Settings file: %s\n", a.store.Path())
			if selected == "" {
				fmt.Println("Selected provider: (none)")
			} else {
				fmt.Printf("Selected provider: %s (model %s)\n", selected, a.store.Model(selected))
			}
			fmt.Printf("Temperature: %.1f\n\n", a.store.Temperature())

			statuses := a.store.ListProviders()
			for _, id := range config.KnownProviders {
				state := "not configured"
				if statuses[id] {
					state = "ready"
				}
				mark := " "
				if id == selected {
					mark = "*"
				}
				fmt.Printf("  %s %-8s %-14s model: %s\n", mark, id, state, a.store.Model(id))
			}
			return nil
		},
	}

	return cmd
}
