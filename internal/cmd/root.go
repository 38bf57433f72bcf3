// Package cmd contains the CLI command definitions for gitbro.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gitbro/gitbro/internal/app"
	"github.com/gitbro/gitbro/internal/pkg/config"
	apperrors "github.com/gitbro/gitbro/internal/pkg/errors"
	"github.com/gitbro/gitbro/internal/pkg/git"
	"github.com/gitbro/gitbro/internal/pkg/history"
	"github.com/gitbro/gitbro/internal/pkg/ui"
)

// NewRootCmd creates the root command for the gitbro CLI.
func NewRootCmd(version, commitHash, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gitbro",
		Short: "AI-assisted git workflows",
		Long: `gitbro generates commit messages, branch names, change explanations,
and history summaries from your repository using a configurable AI
provider (OpenAI, Gemini, Claude, or a local Ollama server).

Run without arguments to open the interactive menu.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			apperrors.SetVerbose(verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd)
		},
	}

	rootCmd.SetVersionTemplate(`gitbro {{.Version}}
Commit: ` + commitHash + `
Built:  ` + date + "\n")

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().String("config", "", "Settings file path (default: ~/.gitbro/config.json)")
	rootCmd.PersistentFlags().StringP("provider", "p", "", "AI provider to use for this invocation (openai, gemini, claude, ollama)")

	rootCmd.AddCommand(NewCommitCmd())
	rootCmd.AddCommand(NewBranchCmd())
	rootCmd.AddCommand(NewExplainCmd())
	rootCmd.AddCommand(NewSummarizeCmd())
	rootCmd.AddCommand(NewValidateCmd())
	rootCmd.AddCommand(NewAddCmd())
	rootCmd.AddCommand(NewSetupCmd())
	rootCmd.AddCommand(NewStatusCmd())
	rootCmd.AddCommand(NewHistoryCmd())
	rootCmd.AddCommand(NewCleanCmd())
	rootCmd.AddCommand(NewGraphCmd())
	rootCmd.AddCommand(NewHookCmd())

	return rootCmd
}

// appContext bundles the dependencies the commands operate on.
type appContext struct {
	store   *config.Store
	runner  *git.Runner
	history history.Manager
	service *app.Service
	ui      ui.Manager
}

// newAppContext wires the application from the command's global flags.
func newAppContext(cmd *cobra.Command) (*appContext, error) {
	configPath, _ := cmd.Flags().GetString("config")
	providerOverride, _ := cmd.Flags().GetString("provider")

	store, err := config.NewStore(configPath)
	if err != nil {
		return nil, err
	}

	historyPath, err := history.DefaultHistoryPath()
	if err != nil {
		return nil, apperrors.NewConfigIOError(err, "failed to resolve history path")
	}
	historyMgr := history.NewFileManager(historyPath, 0)

	runner := git.NewRunner()
	service := app.NewService(runner, store, historyMgr)
	if providerOverride != "" {
		service.SetExplicitProvider(providerOverride)
		apperrors.Debug("provider overridden via flag: %s", providerOverride)
	}

	return &appContext{
		store:   store,
		runner:  runner,
		history: historyMgr,
		service: service,
		ui:      ui.NewDefaultManager(true, ""),
	}, nil
}

// requireRepo fails early when the working directory is not a repository.
func (a *appContext) requireRepo(cmd *cobra.Command) error {
	if !a.runner.IsRepo(cmd.Context()) {
		return apperrors.NewInvalidArgumentError("not in a git repository")
	}
	return nil
}
