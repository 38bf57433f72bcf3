package ai

// Prompt keys selectable by the CLI and TUI layers. Each key resolves to a
// fixed instruction string passed verbatim to Provider.Generate.
const (
	PromptCommit             = "commit"
	PromptCommitConventional = "commit_conventional"
	PromptBranch             = "branch"
	PromptExplain            = "explain"
	PromptChangelog          = "changelog"
	PromptRelease            = "release"
	PromptSummary            = "summary"
	PromptFixCommit          = "fix_commit"
	PromptAnalyzeChunk       = "analyze_chunk"
)

// prompts is the fixed instruction table.
var prompts = map[string]string{
	PromptCommit: "Write a concise Git commit message. Use imperative mood, " +
		"≤50 chars. Output only the message.",
	PromptCommitConventional: "Write a Conventional Commits message: type(scope): description. " +
		"Types: feat, fix, docs, style, refactor, test, chore. Output only the message.",
	PromptBranch: "Suggest a branch name: type/short-description (e.g., feat/add-login). " +
		"Use kebab-case, 2-4 words. Output only the branch name.",
	PromptExplain: "Explain these code changes in plain English. " +
		"Be concise, use bullet points. Focus on what and why.",
	PromptChangelog: "Create a markdown changelog grouped by type (Features, Fixes, etc.).",
	PromptRelease:   "Create user-friendly release notes highlighting major changes.",
	PromptSummary:   "Summarize this commit history in 2-3 paragraphs.",
	PromptFixCommit: "Fix this commit message to follow Conventional Commits format. " +
		"Output only the improved message.",
	PromptAnalyzeChunk: "Briefly analyze this code change. Is it a fix, feature, or refactor? " +
		"Give one-sentence recommendation: Stage? (Yes/No)",
}

// Instruction resolves a prompt key to its instruction string. Unknown keys
// fall back to the default commit instruction.
func Instruction(key string) string {
	if p, ok := prompts[key]; ok {
		return p
	}
	return DefaultInstruction
}

// PromptKeys lists the available prompt keys.
func PromptKeys() []string {
	keys := make([]string, 0, len(prompts))
	for k := range prompts {
		keys = append(keys, k)
	}
	return keys
}
