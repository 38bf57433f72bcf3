package app

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitbro/gitbro/internal/pkg/ai"
	"github.com/gitbro/gitbro/internal/pkg/config"
	apperrors "github.com/gitbro/gitbro/internal/pkg/errors"
	"github.com/gitbro/gitbro/internal/pkg/git"
	"github.com/gitbro/gitbro/internal/pkg/history"
)

// stubProvider returns a fixed result for every generation.
type stubProvider struct {
	name        string
	result      string
	err         error
	gotContent  string
	gotInstruct string
}

func (s *stubProvider) Generate(_ context.Context, content, instruction string) (string, error) {
	s.gotContent = content
	s.gotInstruct = instruction
	if s.err != nil {
		return "", s.err
	}
	return s.result, nil
}

func (s *stubProvider) Name() string { return s.name }

func newTestRepo(t *testing.T) *git.Runner {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
		)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}

	run("init", "-b", "main")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "test")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello\n"), 0644))
	run("add", "-A")
	run("commit", "-m", "feat: initial commit")

	return git.NewRunnerWithWorkDir(dir)
}

func newTestService(t *testing.T, provider *stubProvider) (*Service, *git.Runner, *history.FileManager) {
	t.Helper()
	runner := newTestRepo(t)
	store, err := config.NewStore(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	historyMgr := history.NewFileManager(filepath.Join(t.TempDir(), "history.json"), 0)

	svc := NewService(runner, store, historyMgr)
	svc.SetResolver(func(_ *config.Store, _ string) (ai.Provider, error) {
		return provider, nil
	})
	return svc, runner, historyMgr
}

func stageChange(t *testing.T, runner *git.Runner, name, content string) {
	t.Helper()
	dir := runnerDir(t, runner)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	require.NoError(t, runner.AddAll(context.Background()))
}

func runnerDir(t *testing.T, runner *git.Runner) string {
	t.Helper()
	gitDir, err := runner.GitDir(context.Background())
	require.NoError(t, err)
	return filepath.Dir(gitDir)
}

func TestGenerateCommitMessage(t *testing.T) {
	t.Run("requires staged changes", func(t *testing.T) {
		svc, _, _ := newTestService(t, &stubProvider{name: "ollama", result: "msg"})

		_, err := svc.GenerateCommitMessage(context.Background(), false)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrInvalidArgument))
	})

	t.Run("generates from staged diff", func(t *testing.T) {
		provider := &stubProvider{name: "ollama", result: "feat: add feature"}
		svc, runner, historyMgr := newTestService(t, provider)
		stageChange(t, runner, "feature.go", "package x\n")

		msg, err := svc.GenerateCommitMessage(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, "feat: add feature", msg)
		assert.Contains(t, provider.gotContent, "feature.go")
		assert.Equal(t, ai.Instruction(ai.PromptCommit), provider.gotInstruct)

		entries, err := historyMgr.List(0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "feat: add feature", entries[0].Result)
		assert.Equal(t, "ollama", entries[0].Provider)
		assert.NotEmpty(t, entries[0].ID)
	})

	t.Run("conventional flag switches prompt", func(t *testing.T) {
		provider := &stubProvider{name: "ollama", result: "feat(x): add"}
		svc, runner, _ := newTestService(t, provider)
		stageChange(t, runner, "feature.go", "package x\n")

		_, err := svc.GenerateCommitMessage(context.Background(), true)
		require.NoError(t, err)
		assert.Equal(t, ai.Instruction(ai.PromptCommitConventional), provider.gotInstruct)
	})

	t.Run("cleans fenced output", func(t *testing.T) {
		provider := &stubProvider{name: "ollama", result: "```\nfix: bug\n```"}
		svc, runner, _ := newTestService(t, provider)
		stageChange(t, runner, "a.txt", "x\n")

		msg, err := svc.GenerateCommitMessage(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, "fix: bug", msg)
	})

	t.Run("accepted message is marked committed in history", func(t *testing.T) {
		provider := &stubProvider{name: "ollama", result: "feat: add feature"}
		svc, runner, historyMgr := newTestService(t, provider)
		stageChange(t, runner, "feature.go", "package x\n")

		msg, err := svc.GenerateCommitMessage(context.Background(), false)
		require.NoError(t, err)
		require.NoError(t, runner.Commit(context.Background(), msg))
		svc.MarkLastCommitted()

		entries, err := historyMgr.List(0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].Committed)
	})

	t.Run("mark without a generation is a no-op", func(t *testing.T) {
		svc, _, historyMgr := newTestService(t, &stubProvider{name: "ollama", result: "x"})

		svc.MarkLastCommitted()

		entries, err := historyMgr.List(0)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("provider failure propagates", func(t *testing.T) {
		provider := &stubProvider{name: "openai", err: apperrors.NewProviderError("openai", errors.New("boom"))}
		svc, runner, _ := newTestService(t, provider)
		stageChange(t, runner, "a.txt", "x\n")

		_, err := svc.GenerateCommitMessage(context.Background(), false)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrProviderFailed))
	})
}

func TestSuggestBranchName(t *testing.T) {
	t.Run("sanitizes generated name", func(t *testing.T) {
		provider := &stubProvider{name: "ollama", result: "Feat/Add Login Flow"}
		svc, runner, _ := newTestService(t, provider)
		stageChange(t, runner, "login.go", "package x\n")

		name, err := svc.SuggestBranchName(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "feat/add-login-flow", name)
	})

	t.Run("falls back to unstaged changes", func(t *testing.T) {
		provider := &stubProvider{name: "ollama", result: "fix/readme-typo"}
		svc, runner, _ := newTestService(t, provider)
		dir := runnerDir(t, runner)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("changed\n"), 0644))

		name, err := svc.SuggestBranchName(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "fix/readme-typo", name)
	})

	t.Run("no changes at all", func(t *testing.T) {
		svc, _, _ := newTestService(t, &stubProvider{name: "ollama", result: "x"})

		_, err := svc.SuggestBranchName(context.Background())
		assert.True(t, apperrors.IsCode(err, apperrors.ErrInvalidArgument))
	})
}

func TestExplainChanges(t *testing.T) {
	t.Run("explains a commit by ref", func(t *testing.T) {
		provider := &stubProvider{name: "ollama", result: "Adds a readme."}
		svc, _, _ := newTestService(t, provider)

		out, err := svc.ExplainChanges(context.Background(), "HEAD")
		require.NoError(t, err)
		assert.Equal(t, "Adds a readme.", out)
		assert.Contains(t, provider.gotContent, "initial commit")
	})

	t.Run("no working changes without ref", func(t *testing.T) {
		svc, _, _ := newTestService(t, &stubProvider{name: "ollama", result: "x"})

		_, err := svc.ExplainChanges(context.Background(), "")
		assert.True(t, apperrors.IsCode(err, apperrors.ErrInvalidArgument))
	})
}

func TestSummarize(t *testing.T) {
	provider := &stubProvider{name: "ollama", result: "A short summary."}
	svc, _, _ := newTestService(t, provider)

	out, err := svc.Summarize(context.Background(), "", SummaryStyleChangelog)
	require.NoError(t, err)
	assert.Equal(t, "A short summary.", out)
	assert.Equal(t, ai.Instruction(ai.PromptChangelog), provider.gotInstruct)
}

func TestFixCommitMessage(t *testing.T) {
	provider := &stubProvider{name: "ollama", result: "fix: correct typo"}
	svc, _, _ := newTestService(t, provider)

	out, err := svc.FixCommitMessage(context.Background(), "fixed typo")
	require.NoError(t, err)
	assert.Equal(t, "fix: correct typo", out)

	_, err = svc.FixCommitMessage(context.Background(), "  ")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrInvalidArgument))
}

func TestValidateCommits(t *testing.T) {
	t.Run("valid history passes", func(t *testing.T) {
		svc, _, _ := newTestService(t, &stubProvider{name: "ollama"})

		report, err := svc.ValidateCommits(context.Background(), "", true)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Checked)
		assert.True(t, report.Passed())
	})

	t.Run("non-conventional message flagged", func(t *testing.T) {
		svc, runner, _ := newTestService(t, &stubProvider{name: "ollama"})
		stageChange(t, runner, "b.txt", "x\n")
		require.NoError(t, runner.Commit(context.Background(), "updated stuff"))

		report, err := svc.ValidateCommits(context.Background(), "", true)
		require.NoError(t, err)
		assert.Equal(t, 2, report.Checked)
		assert.False(t, report.Passed())
		assert.Contains(t, report.Issues, "updated stuff")
	})
}

func TestSanitizeBranchName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"feat/add-login", "feat/add-login"},
		{"Feat/Add Login", "feat/add-login"},
		{"`fix/typo`", "fix/typo"},
		{"feat/add--login", "feat/add-login"},
		{"  chore/cleanup.  ", "chore/cleanup"},
		{"-feat/x-", "feat/x"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeBranchName(tt.in), "input %q", tt.in)
	}
}
