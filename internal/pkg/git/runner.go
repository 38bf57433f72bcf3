// Package git provides Git operations for gitbro.
package git

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/gitbro/gitbro/internal/pkg/errors"
)

const (
	// GitCommandTimeout is the default timeout for git commands.
	GitCommandTimeout = 10 * time.Second
)

// Runner executes git commands in a repository.
type Runner struct {
	// workDir is the working directory for git commands.
	// If empty, uses the current directory.
	workDir string
}

// NewRunner creates a Runner operating in the current directory.
func NewRunner() *Runner {
	return &Runner{}
}

// NewRunnerWithWorkDir creates a Runner operating in workDir.
func NewRunnerWithWorkDir(workDir string) *Runner {
	return &Runner{workDir: workDir}
}

// Run executes a git command and returns its stdout. Stderr from failed
// commands is carried into the returned error.
func (r *Runner) Run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, GitCommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	if r.workDir != "" {
		cmd.Dir = r.workDir
	}

	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", apperrors.NewGitError(ctx.Err(), "command timed out")
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", apperrors.NewGitError(err, string(exitErr.Stderr))
		}
		return "", apperrors.NewGitError(err, "")
	}
	return string(out), nil
}

// IsRepo reports whether the working directory is inside a git work tree.
func (r *Runner) IsRepo(ctx context.Context) bool {
	out, err := r.Run(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}

// GitDir returns the absolute path of the repository's .git directory.
func (r *Runner) GitDir(ctx context.Context) (string, error) {
	out, err := r.Run(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// StagedDiff returns the diff of staged changes.
func (r *Runner) StagedDiff(ctx context.Context) (string, error) {
	return r.Run(ctx, "diff", "--cached")
}

// WorkingDiff returns the diff of unstaged changes.
func (r *Runner) WorkingDiff(ctx context.Context) (string, error) {
	return r.Run(ctx, "diff")
}

// FileDiff returns the unstaged diff for a single file.
func (r *Runner) FileDiff(ctx context.Context, path string) (string, error) {
	return r.Run(ctx, "diff", "--", path)
}

// HasStagedChanges reports whether any changes are staged.
func (r *Runner) HasStagedChanges(ctx context.Context) (bool, error) {
	out, err := r.Run(ctx, "diff", "--cached", "--name-only")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// ShowCommit returns the full patch of a single commit.
func (r *Runner) ShowCommit(ctx context.Context, ref string) (string, error) {
	return r.Run(ctx, "show", ref)
}

// Log returns commit subjects and bodies for a revision range.
func (r *Runner) Log(ctx context.Context, revRange string) (string, error) {
	args := []string{"log", "--pretty=format:%h %s%n%b"}
	if revRange != "" {
		args = append(args, revRange)
	}
	return r.Run(ctx, args...)
}

// LogOneline returns one subject line per commit for a revision range.
func (r *Runner) LogOneline(ctx context.Context, revRange string, limit int) ([]string, error) {
	args := []string{"log", "--pretty=format:%s"}
	if limit > 0 {
		args = append(args, "-n", strconv.Itoa(limit))
	}
	if revRange != "" {
		args = append(args, revRange)
	}
	out, err := r.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// CurrentBranch returns the name of the checked-out branch.
func (r *Runner) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.Run(ctx, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// LocalBranches lists local branch names.
func (r *Runner) LocalBranches(ctx context.Context) ([]string, error) {
	out, err := r.Run(ctx, "branch", "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// MergedBranches lists local branches already merged into the current one.
func (r *Runner) MergedBranches(ctx context.Context) ([]string, error) {
	out, err := r.Run(ctx, "branch", "--merged", "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// UntrackedFiles lists files not yet known to git.
func (r *Runner) UntrackedFiles(ctx context.Context) ([]string, error) {
	out, err := r.Run(ctx, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// ModifiedFiles lists tracked files with unstaged modifications.
func (r *Runner) ModifiedFiles(ctx context.Context) ([]string, error) {
	out, err := r.Run(ctx, "diff", "--name-only")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// Commit creates a commit with the given message.
func (r *Runner) Commit(ctx context.Context, message string) error {
	_, err := r.Run(ctx, "commit", "-m", message)
	return err
}

// Add stages a single path.
func (r *Runner) Add(ctx context.Context, path string) error {
	_, err := r.Run(ctx, "add", "--", path)
	return err
}

// AddAll stages all changes in the work tree.
func (r *Runner) AddAll(ctx context.Context) error {
	_, err := r.Run(ctx, "add", "-A")
	return err
}

// CheckoutNewBranch creates and checks out a new branch.
func (r *Runner) CheckoutNewBranch(ctx context.Context, name string) error {
	_, err := r.Run(ctx, "checkout", "-b", name)
	return err
}

// Checkout switches to an existing branch.
func (r *Runner) Checkout(ctx context.Context, name string) error {
	_, err := r.Run(ctx, "checkout", name)
	return err
}

// DeleteBranch deletes a local branch. Force skips the merged check.
func (r *Runner) DeleteBranch(ctx context.Context, name string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	_, err := r.Run(ctx, "branch", flag, name)
	return err
}

// splitLines splits command output into non-empty trimmed lines.
func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
