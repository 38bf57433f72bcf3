// Package message parses and validates commit messages.
package message

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidCommitTypes contains all valid Conventional Commits types.
var ValidCommitTypes = []string{
	"feat", "fix", "docs", "style", "refactor",
	"test", "chore", "perf", "ci", "build", "revert",
}

// MaxSubjectLength is the recommended subject line limit.
const MaxSubjectLength = 72

// conventionalRegex matches <type>(<scope>): <subject> or <type>: <subject>.
var conventionalRegex = regexp.MustCompile(`^(feat|fix|docs|style|refactor|test|chore|perf|ci|build|revert)(\([^)]+\))?(!)?:\s*(.+)$`)

// Parsed represents a parsed commit message.
type Parsed struct {
	Type     string
	Scope    string
	Subject  string
	Body     string
	Breaking bool
}

// Parse splits a raw commit message into its structured parts. Messages
// that do not follow the Conventional Commits format still yield a Parsed
// with the subject filled in and Type empty.
func Parse(raw string) *Parsed {
	result := &Parsed{}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return result
	}

	lines := strings.Split(raw, "\n")
	subject := strings.TrimSpace(lines[0])
	result.Subject = subject

	if matches := conventionalRegex.FindStringSubmatch(subject); matches != nil {
		result.Type = matches[1]
		result.Scope = strings.Trim(matches[2], "()")
		result.Breaking = matches[3] == "!"
		result.Subject = strings.TrimSpace(matches[4])
	}

	if len(lines) > 1 {
		result.Body = strings.TrimSpace(strings.Join(lines[1:], "\n"))
		if strings.Contains(result.Body, "BREAKING CHANGE:") {
			result.Breaking = true
		}
	}

	return result
}

// Issue describes one validation problem with a commit message.
type Issue struct {
	Message string
}

func (i Issue) String() string {
	return i.Message
}

// Validate checks a commit message. With conventional set, the subject must
// follow the Conventional Commits format; otherwise only basic hygiene is
// checked. An empty issue list means the message passed.
func Validate(raw string, conventional bool) []Issue {
	var issues []Issue

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []Issue{{Message: "commit message is empty"}}
	}

	lines := strings.Split(raw, "\n")
	subject := strings.TrimSpace(lines[0])

	if len(subject) > MaxSubjectLength {
		issues = append(issues, Issue{
			Message: fmt.Sprintf("subject exceeds %d characters (%d)", MaxSubjectLength, len(subject)),
		})
	}
	if strings.HasSuffix(subject, ".") {
		issues = append(issues, Issue{Message: "subject ends with a period"})
	}

	if conventional {
		if !conventionalRegex.MatchString(subject) {
			issues = append(issues, Issue{
				Message: fmt.Sprintf("subject does not follow type(scope): description (valid types: %s)",
					strings.Join(ValidCommitTypes, ", ")),
			})
		}
	}

	if len(lines) > 1 && strings.TrimSpace(lines[1]) != "" {
		issues = append(issues, Issue{Message: "missing blank line between subject and body"})
	}

	return issues
}

// IsValidType reports whether t is a recognized commit type.
func IsValidType(t string) bool {
	for _, v := range ValidCommitTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Clean strips markdown fences and surrounding quotes that generation
// backends sometimes wrap around a commit message.
func Clean(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if idx := strings.Index(s, "\n"); idx >= 0 && !strings.Contains(s[:idx], " ") {
			// Drop a language tag on the opening fence.
			s = s[idx+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}

	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}

	return s
}
