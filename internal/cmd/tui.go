package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitbro/gitbro/internal/app"
	"github.com/gitbro/gitbro/internal/pkg/graph"
	"github.com/gitbro/gitbro/internal/pkg/hook"
	"github.com/gitbro/gitbro/internal/pkg/ui"
)

// runMenu drives the interactive menu loop shown when gitbro is invoked
// without a subcommand.
func runMenu(cmd *cobra.Command) error {
	a, err := newAppContext(cmd)
	if err != nil {
		return err
	}
	if err := a.requireRepo(cmd); err != nil {
		return err
	}

	if a.store.Provider() == "" {
		a.ui.ShowInfo("No AI provider configured yet.")
		if err := ui.RunInteractiveSetup(a.store, ""); err != nil {
			return err
		}
	}

	for {
		action, err := ui.RunMainMenu()
		if err != nil {
			return err
		}
		if action == ui.MenuQuit {
			return nil
		}

		if err := dispatchMenuAction(cmd, a, action); err != nil {
			a.ui.ShowError(err)
		}
	}
}

// dispatchMenuAction executes one menu entry. Errors are shown, not fatal:
// the loop continues afterwards.
func dispatchMenuAction(cmd *cobra.Command, a *appContext, action ui.MenuAction) error {
	ctx := cmd.Context()

	switch action {
	case ui.MenuStatus:
		out, err := a.runner.Run(ctx, "status", "--short", "--branch")
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil

	case ui.MenuDiff:
		diff, err := a.runner.WorkingDiff(ctx)
		if err != nil {
			return err
		}
		if diff == "" {
			diff, err = a.runner.StagedDiff(ctx)
			if err != nil {
				return err
			}
		}
		if diff == "" {
			a.ui.ShowInfo("No changes.")
			return nil
		}
		fmt.Println(diff)
		return nil

	case ui.MenuAdd, ui.MenuAIStage:
		return runAdd(cmd, a)

	case ui.MenuCommit:
		return runCommit(cmd, &CommitFlags{Temperature: -1})

	case ui.MenuBranch:
		spin := a.ui.ShowSpinner("Suggesting branch name...")
		spin.Start()
		name, err := a.service.SuggestBranchName(ctx)
		spin.Stop()
		if err != nil {
			return err
		}
		confirmed, err := a.ui.PromptConfirm(fmt.Sprintf("Create and switch to '%s'?", name))
		if err != nil {
			return err
		}
		if confirmed {
			if err := a.runner.CheckoutNewBranch(ctx, name); err != nil {
				return err
			}
			a.ui.ShowSuccess(fmt.Sprintf("Switched to new branch %s", name))
		}
		return nil

	case ui.MenuExplain:
		spin := a.ui.ShowSpinner("Analyzing changes...")
		spin.Start()
		out, err := a.service.ExplainChanges(ctx, "")
		spin.Stop()
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(out)
		return nil

	case ui.MenuSummarize:
		spin := a.ui.ShowSpinner("Summarizing history...")
		spin.Start()
		out, err := a.service.Summarize(ctx, "", app.SummaryStyleSummary)
		spin.Stop()
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(out)
		return nil

	case ui.MenuValidate:
		report, err := a.service.ValidateCommits(ctx, "", true)
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
		}
		return nil

	case ui.MenuHistory:
		entries, err := a.history.List(20)
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

	case ui.MenuGraph:
		collector := graph.NewCollector(a.runner)
		commits, err := collector.Commits(ctx, graph.DefaultCommitLimit)
		if err != nil {
			return err
		}
		branches, err := collector.Branches(ctx)
		if err != nil {
			return err
		}
		page, err := graph.RenderPage(commits, branches)
		if err != nil {
			return err
		}
		server := graph.NewServer(page, 0)
		fmt.Printf("Git graph running at %s (Ctrl+C to stop)\n", server.URL())
		return server.Start(ctx)

	case ui.MenuClean:
		return runClean(cmd, a, false)

	case ui.MenuHook:
		installer := hook.NewInstaller(a.runner)
		if installer.IsInstalled(ctx) {
			confirmed, err := a.ui.PromptConfirm("Hook already installed. Remove it?")
			if err != nil {
				return err
			}
			if confirmed {
				if err := installer.Uninstall(ctx); err != nil {
					return err
				}
				a.ui.ShowSuccess("Pre-commit hook removed.")
			}
			return nil
		}
		if err := installer.Install(ctx); err != nil {
			return err
		}
		a.ui.ShowSuccess("Pre-commit hook installed.")
		return nil

	case ui.MenuSettings:
		return ui.RunInteractiveSetup(a.store, "")

	default:
		return nil
	}
}
