// Package app contains the application layer with workflow orchestration.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/gitbro/gitbro/internal/pkg/ai"
	"github.com/gitbro/gitbro/internal/pkg/config"
	apperrors "github.com/gitbro/gitbro/internal/pkg/errors"
	"github.com/gitbro/gitbro/internal/pkg/git"
	"github.com/gitbro/gitbro/internal/pkg/history"
	"github.com/gitbro/gitbro/internal/pkg/message"
)

// ProviderResolver builds a provider from current settings. It is a
// function so tests can substitute a stub backend.
type ProviderResolver func(store *config.Store, explicit string) (ai.Provider, error)

// Service orchestrates generation workflows: gather content from git,
// resolve a provider, generate, record history.
type Service struct {
	runner   *git.Runner
	store    *config.Store
	history  history.Manager
	resolver ProviderResolver

	// explicitProvider overrides the stored selection for this invocation.
	explicitProvider string

	// lastEntryID is the history entry of the most recent generation.
	lastEntryID string
}

// NewService creates a Service with the given dependencies.
func NewService(runner *git.Runner, store *config.Store, historyMgr history.Manager) *Service {
	return &Service{
		runner:   runner,
		store:    store,
		history:  historyMgr,
		resolver: ai.Resolve,
	}
}

// SetExplicitProvider pins the provider for this invocation, overriding the
// stored selection.
func (s *Service) SetExplicitProvider(id string) {
	s.explicitProvider = id
}

// SetResolver substitutes the provider resolver, used by tests.
func (s *Service) SetResolver(r ProviderResolver) {
	s.resolver = r
}

// Store returns the settings store the service operates on.
func (s *Service) Store() *config.Store {
	return s.store
}

// Runner returns the git runner the service operates on.
func (s *Service) Runner() *git.Runner {
	return s.runner
}

// generate resolves a provider and runs one generation, recording the
// result in history. The provider instance is discarded afterwards.
func (s *Service) generate(ctx context.Context, content, promptKey string) (string, error) {
	provider, err := s.resolver(s.store, s.explicitProvider)
	if err != nil {
		return "", err
	}

	result, err := provider.Generate(ctx, content, ai.Instruction(promptKey))
	if err != nil {
		return "", err
	}
	result = message.Clean(result)

	if s.history != nil {
		entry := &history.Entry{
			PromptKey: promptKey,
			Provider:  provider.Name(),
			Model:     s.store.Model(provider.Name()),
			Result:    result,
		}
		if err := s.history.Save(entry); err != nil {
			apperrors.Warn("failed to record history: %v", err)
		} else {
			s.lastEntryID = entry.ID
		}
	}

	return result, nil
}

// MarkLastCommitted flags the most recent generation's history entry as
// committed. Callers invoke it after a successful git commit.
func (s *Service) MarkLastCommitted() {
	if s.history == nil || s.lastEntryID == "" {
		return
	}
	if err := s.history.MarkCommitted(s.lastEntryID); err != nil {
		apperrors.Warn("failed to update history: %v", err)
	}
}

// GenerateCommitMessage generates a commit message from staged changes.
func (s *Service) GenerateCommitMessage(ctx context.Context, conventional bool) (string, error) {
	diff, err := s.runner.StagedDiff(ctx)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(diff) == "" {
		return "", apperrors.NewInvalidArgumentError(
			"no staged changes found; use 'git add' to stage changes first")
	}

	key := ai.PromptCommit
	if conventional {
		key = ai.PromptCommitConventional
	}
	return s.generate(ctx, diff, key)
}

// SuggestBranchName suggests a branch name from current changes. Staged
// changes are preferred; unstaged changes are used as a fallback.
func (s *Service) SuggestBranchName(ctx context.Context) (string, error) {
	diff, err := s.runner.StagedDiff(ctx)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(diff) == "" {
		diff, err = s.runner.WorkingDiff(ctx)
		if err != nil {
			return "", err
		}
	}
	if strings.TrimSpace(diff) == "" {
		return "", apperrors.NewInvalidArgumentError("no changes found to base a branch name on")
	}

	name, err := s.generate(ctx, diff, ai.PromptBranch)
	if err != nil {
		return "", err
	}
	return sanitizeBranchName(name), nil
}

// ExplainChanges explains the given commit, or the working tree changes
// when ref is empty.
func (s *Service) ExplainChanges(ctx context.Context, ref string) (string, error) {
	var content string
	var err error
	if ref != "" {
		content, err = s.runner.ShowCommit(ctx, ref)
	} else {
		content, err = s.runner.WorkingDiff(ctx)
		if err == nil && strings.TrimSpace(content) == "" {
			content, err = s.runner.StagedDiff(ctx)
		}
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(content) == "" {
		return "", apperrors.NewInvalidArgumentError("no changes found to explain")
	}

	return s.generate(ctx, content, ai.PromptExplain)
}

// SummaryStyle selects the output format of Summarize.
type SummaryStyle string

const (
	SummaryStyleSummary   SummaryStyle = "summary"
	SummaryStyleChangelog SummaryStyle = "changelog"
	SummaryStyleRelease   SummaryStyle = "release"
)

// Summarize produces a summary, changelog, or release notes for a revision
// range.
func (s *Service) Summarize(ctx context.Context, revRange string, style SummaryStyle) (string, error) {
	log, err := s.runner.Log(ctx, revRange)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(log) == "" {
		return "", apperrors.NewInvalidArgumentError(
			fmt.Sprintf("no commits found in range %q", revRange))
	}

	key := ai.PromptSummary
	switch style {
	case SummaryStyleChangelog:
		key = ai.PromptChangelog
	case SummaryStyleRelease:
		key = ai.PromptRelease
	}
	return s.generate(ctx, log, key)
}

// FixCommitMessage rewrites a message into Conventional Commits format.
func (s *Service) FixCommitMessage(ctx context.Context, original string) (string, error) {
	if strings.TrimSpace(original) == "" {
		return "", apperrors.NewInvalidArgumentError("commit message is empty")
	}
	return s.generate(ctx, original, ai.PromptFixCommit)
}

// AnalyzeFileChange produces a short staging recommendation for one file's
// unstaged diff.
func (s *Service) AnalyzeFileChange(ctx context.Context, path string) (string, error) {
	diff, err := s.runner.FileDiff(ctx, path)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(diff) == "" {
		return "", apperrors.NewInvalidArgumentError(
			fmt.Sprintf("no unstaged changes in %s", path))
	}
	return s.generate(ctx, diff, ai.PromptAnalyzeChunk)
}

// ValidationReport is the result of validating a range of commit messages.
type ValidationReport struct {
	Checked int
	Issues  map[string][]message.Issue
}

// Passed reports whether every checked message was clean.
func (r *ValidationReport) Passed() bool {
	return len(r.Issues) == 0
}

// ValidateCommits validates the commit messages in a revision range.
func (s *Service) ValidateCommits(ctx context.Context, revRange string, conventional bool) (*ValidationReport, error) {
	subjects, err := s.runner.LogOneline(ctx, revRange, 0)
	if err != nil {
		return nil, err
	}
	if len(subjects) == 0 {
		return nil, apperrors.NewInvalidArgumentError(
			fmt.Sprintf("no commits found in range %q", revRange))
	}

	report := &ValidationReport{
		Checked: len(subjects),
		Issues:  map[string][]message.Issue{},
	}
	for _, subject := range subjects {
		if issues := message.Validate(subject, conventional); len(issues) > 0 {
			report.Issues[subject] = issues
		}
	}
	return report, nil
}

// sanitizeBranchName normalizes a generated branch name into something git
// accepts: lowercase, kebab-case, slash-separated segments.
func sanitizeBranchName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	name = strings.Trim(name, "`\"' ")

	var b strings.Builder
	lastDash := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '/':
			b.WriteRune(r)
			lastDash = false
		case r == '-' || r == '_' || r == ' ' || r == '.':
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-/")
}
