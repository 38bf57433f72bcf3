package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gitbro/gitbro/internal/pkg/hook"
)

// NewHookCmd creates the install-hook command.
func NewHookCmd() *cobra.Command {
	var uninstall bool

	cmd := &cobra.Command{
		Use:   "install-hook",
		Short: "Install or remove the pre-commit validation hook",
		Long: `Install a pre-commit hook that validates the previous commit message
against the Conventional Commits format. Foreign hooks are never
overwritten or removed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAppContext(cmd)
			if err != nil {
				return err
			}
			if err := a.requireRepo(cmd); err != nil {
				return err
			}

			installer := hook.NewInstaller(a.runner)

			if uninstall {
				installed := installer.IsInstalled(cmd.Context())
				if err := installer.Uninstall(cmd.Context()); err != nil {
					return err
				}
				if installed {
					a.ui.ShowSuccess("Pre-commit hook removed.")
				} else {
					a.ui.ShowInfo("No pre-commit hook found.")
				}
				return nil
			}

			if err := installer.Install(cmd.Context()); err != nil {
				return err
			}
			a.ui.ShowSuccess("Pre-commit hook installed.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&uninstall, "uninstall", false, "Remove the pre-commit hook")

	return cmd
}
