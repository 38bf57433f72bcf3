// Package main is the entry point for the gitbro CLI application.
// gitbro is an AI-assisted git tool that generates commit messages,
// branch names, change explanations, and history summaries.
package main

import (
	"fmt"
	"os"

	"github.com/gitbro/gitbro/internal/cmd"
	apperrors "github.com/gitbro/gitbro/internal/pkg/errors"
)

// Version information - set via ldflags during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cmd.NewRootCmd(version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, apperrors.FormatError(err))
		os.Exit(apperrors.GetExitCode(err))
	}
}
