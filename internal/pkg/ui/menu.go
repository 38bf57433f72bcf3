package ui

import (
	"github.com/charmbracelet/huh"
)

// MenuAction identifies one entry of the main menu.
type MenuAction string

const (
	MenuStatus    MenuAction = "status"
	MenuDiff      MenuAction = "diff"
	MenuAdd       MenuAction = "add"
	MenuCommit    MenuAction = "commit"
	MenuBranch    MenuAction = "branch"
	MenuExplain   MenuAction = "explain"
	MenuSummarize MenuAction = "summarize"
	MenuValidate  MenuAction = "validate"
	MenuAIStage   MenuAction = "ai-stage"
	MenuHistory   MenuAction = "history"
	MenuGraph     MenuAction = "graph"
	MenuClean     MenuAction = "clean"
	MenuHook      MenuAction = "hook"
	MenuSettings  MenuAction = "settings"
	MenuQuit      MenuAction = "quit"
)

// menuSection groups related entries under a heading.
type menuSection struct {
	name  string
	items []menuItem
}

type menuItem struct {
	label  string
	action MenuAction
}

// menuSections is the menu layout, grouped by workflow phase.
var menuSections = []menuSection{
	{"workflow", []menuItem{
		{"status", MenuStatus},
		{"diff", MenuDiff},
		{"add", MenuAdd},
		{"commit", MenuCommit},
	}},
	{"ai", []menuItem{
		{"branch name", MenuBranch},
		{"explain", MenuExplain},
		{"summarize", MenuSummarize},
		{"validate", MenuValidate},
		{"ai stage", MenuAIStage},
	}},
	{"tools", []menuItem{
		{"history", MenuHistory},
		{"graph", MenuGraph},
		{"clean branches", MenuClean},
		{"hook", MenuHook},
		{"settings", MenuSettings},
	}},
}

// RunMainMenu shows the grouped main menu and returns the chosen action.
// Cancelling the prompt yields MenuQuit.
func RunMainMenu() (MenuAction, error) {
	options := []huh.Option[MenuAction]{}
	for _, section := range menuSections {
		for _, item := range section.items {
			options = append(options, huh.NewOption("["+section.name+"] "+item.label, item.action))
		}
	}
	options = append(options, huh.NewOption("quit", MenuQuit))

	var choice MenuAction
	err := huh.NewSelect[MenuAction]().
		Title("gitbro").
		Description("AI-assisted git workflows").
		Options(options...).
		Value(&choice).
		Run()
	if err != nil {
		if err == huh.ErrUserAborted {
			return MenuQuit, nil
		}
		return MenuQuit, err
	}
	return choice, nil
}
