// Package hook installs the repository pre-commit hook.
package hook

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/gitbro/gitbro/internal/pkg/errors"
	"github.com/gitbro/gitbro/internal/pkg/git"
)

// HookName is the git hook the installer manages.
const HookName = "pre-commit"

// hookScript validates the last commit message before each new commit. The
// marker line lets Uninstall refuse to delete hooks gitbro did not write.
const hookScript = `#!/bin/bash
# gitbro pre-commit hook

if git diff --cached --quiet; then
    exit 0
fi

echo "Running gitbro validation..."
gitbro validate --conventional --range HEAD~1..HEAD

if [ $? -ne 0 ]; then
    echo "Previous commit message does not follow Conventional Commits."
    echo "Run 'gitbro commit --conventional' to generate a compliant message."
fi

exit 0
`

// marker identifies hooks written by this installer.
const marker = "# gitbro pre-commit hook"

// Installer manages the pre-commit hook of one repository.
type Installer struct {
	runner *git.Runner
}

// NewInstaller creates an Installer over the given runner.
func NewInstaller(runner *git.Runner) *Installer {
	return &Installer{runner: runner}
}

// hookPath resolves the hook file inside the repository's .git directory.
func (i *Installer) hookPath(ctx context.Context) (string, error) {
	gitDir, err := i.runner.GitDir(ctx)
	if err != nil {
		return "", err
	}
	return filepath.Join(gitDir, "hooks", HookName), nil
}

// Install writes the hook script, replacing any existing gitbro hook.
// A foreign pre-commit hook is never overwritten.
func (i *Installer) Install(ctx context.Context) error {
	path, err := i.hookPath(ctx)
	if err != nil {
		return err
	}

	if existing, err := os.ReadFile(path); err == nil {
		if !isOurs(existing) {
			return apperrors.NewInvalidArgumentError(
				fmt.Sprintf("a pre-commit hook already exists at %s; remove it first", path))
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewConfigIOError(err, "failed to create hooks directory")
	}
	if err := os.WriteFile(path, []byte(hookScript), 0755); err != nil {
		return apperrors.NewConfigIOError(err, "failed to write pre-commit hook")
	}
	return nil
}

// Uninstall removes the hook if it was written by gitbro. Removing a
// missing hook is not an error; IsInstalled distinguishes the cases.
func (i *Installer) Uninstall(ctx context.Context) error {
	path, err := i.hookPath(ctx)
	if err != nil {
		return err
	}

	existing, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return apperrors.NewConfigIOError(err, "failed to read pre-commit hook")
	}
	if !isOurs(existing) {
		return apperrors.NewInvalidArgumentError(
			fmt.Sprintf("the pre-commit hook at %s was not installed by gitbro", path))
	}

	if err := os.Remove(path); err != nil {
		return apperrors.NewConfigIOError(err, "failed to remove pre-commit hook")
	}
	return nil
}

// IsInstalled reports whether a gitbro hook is present.
func (i *Installer) IsInstalled(ctx context.Context) bool {
	path, err := i.hookPath(ctx)
	if err != nil {
		return false
	}
	content, err := os.ReadFile(path)
	return err == nil && isOurs(content)
}

func isOurs(content []byte) bool {
	return strings.Contains(string(content), marker)
}
