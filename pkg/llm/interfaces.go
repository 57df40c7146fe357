// Package llm provides clients for the SQL-generating language model.
package llm

import "context"

// GenerateResponseResult holds a chat completion and its usage stats.
type GenerateResponseResult struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Client defines the interface for chat completion requests.
// Use this interface for dependency injection to enable mocking in tests.
type Client interface {
	// GenerateResponse sends systemMessage + prompt and returns the reply.
	GenerateResponse(ctx context.Context, prompt string, systemMessage string) (*GenerateResponseResult, error)

	// Model returns the configured model name.
	Model() string

	// Provider returns the provider name ("openai", "anthropic", "mock").
	Provider() string
}
