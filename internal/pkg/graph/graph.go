// Package graph renders repository history as a local web page.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gitbro/gitbro/internal/pkg/git"
)

// DefaultCommitLimit bounds how much history the page embeds.
const DefaultCommitLimit = 100

// logFormat produces one parseable line per commit:
// hash|parents|author|date|message|refs
const logFormat = "%H|%P|%an|%ar|%s|%D"

// Ref is a branch, tag, or HEAD decoration on a commit.
type Ref struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// Commit is one node of the history graph, shaped for the page's script.
type Commit struct {
	Hash    string   `json:"hash"`
	Parents []string `json:"parents"`
	Author  string   `json:"author"`
	Date    string   `json:"date"`
	Message string   `json:"message"`
	Refs    []Ref    `json:"refs"`
}

// Collector reads history from a repository.
type Collector struct {
	runner *git.Runner
}

// NewCollector creates a Collector over the given runner.
func NewCollector(runner *git.Runner) *Collector {
	return &Collector{runner: runner}
}

// Commits returns up to limit commits across all refs, newest first.
func (c *Collector) Commits(ctx context.Context, limit int) ([]Commit, error) {
	if limit <= 0 {
		limit = DefaultCommitLimit
	}

	out, err := c.runner.Run(ctx,
		"log", "-"+strconv.Itoa(limit), "--pretty=format:"+logFormat, "--all")
	if err != nil {
		return nil, err
	}

	var commits []Commit
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		commits = append(commits, parseLogLine(line))
	}
	return commits, nil
}

// Branches returns all local and remote branch names.
func (c *Collector) Branches(ctx context.Context) ([]string, error) {
	out, err := c.runner.Run(ctx, "branch", "-a", "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}

	var branches []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			branches = append(branches, line)
		}
	}
	return branches, nil
}

// parseLogLine splits one formatted log line into a Commit. Lines with
// missing trailing fields are padded so older git versions stay parseable.
func parseLogLine(line string) Commit {
	parts := strings.SplitN(line, "|", 6)
	for len(parts) < 6 {
		parts = append(parts, "")
	}

	commit := Commit{
		Hash:    parts[0],
		Author:  parts[2],
		Date:    parts[3],
		Message: parts[4],
		Parents: []string{},
		Refs:    []Ref{},
	}
	if parts[1] != "" {
		commit.Parents = strings.Fields(parts[1])
	}
	commit.Refs = parseRefs(parts[5])
	return commit
}

// parseRefs splits a %D decoration string into typed refs.
func parseRefs(decorations string) []Ref {
	refs := []Ref{}
	if decorations == "" {
		return refs
	}

	for _, raw := range strings.Split(decorations, ", ") {
		ref := strings.TrimSpace(raw)
		switch {
		case ref == "":
		case ref == "HEAD":
			refs = append(refs, Ref{Type: "HEAD", Name: "HEAD"})
		case strings.HasPrefix(ref, "HEAD -> "):
			refs = append(refs, Ref{Type: "HEAD", Name: "HEAD"})
			refs = append(refs, Ref{Type: "branch", Name: strings.TrimPrefix(ref, "HEAD -> ")})
		case strings.HasPrefix(ref, "tag: "):
			refs = append(refs, Ref{Type: "tag", Name: strings.TrimPrefix(ref, "tag: ")})
		default:
			refs = append(refs, Ref{Type: "branch", Name: ref})
		}
	}
	return refs
}

// RenderPage embeds commit and branch data into the page template.
func RenderPage(commits []Commit, branches []string) (string, error) {
	if commits == nil {
		commits = []Commit{}
	}
	if branches == nil {
		branches = []string{}
	}

	commitsJSON, err := json.Marshal(commits)
	if err != nil {
		return "", fmt.Errorf("failed to encode commits: %w", err)
	}
	branchesJSON, err := json.Marshal(branches)
	if err != nil {
		return "", fmt.Errorf("failed to encode branches: %w", err)
	}

	page := pageTemplate
	page = strings.Replace(page, "__COMMITS_DATA__", string(commitsJSON), 1)
	page = strings.Replace(page, "__BRANCHES_DATA__", string(branchesJSON), 1)
	return page, nil
}
