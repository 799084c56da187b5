package summarizer

import "context"

// Summarizer turns a transcript into LLM-generated notes.
type Summarizer interface {
	// Summarize sends the prompt template plus the transcript in one call.
	// A nil error guarantees a non-empty result.
	Summarize(ctx context.Context, transcript string) (string, error)
	// ListModels lists the models visible to the configured API key.
	ListModels(ctx context.Context) ([]ModelInfo, error)
	// SetPrompt replaces the prompt template; an empty prompt restores the default.
	SetPrompt(prompt string)
	Prompt() string
}

// ModelInfo describes one model available to the account.
type ModelInfo struct {
	Name             string
	DisplayName      string
	SupportedActions []string
}
