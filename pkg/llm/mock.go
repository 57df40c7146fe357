package llm

import "context"

// MockClient is a configurable mock for testing. Set the function field to
// control behavior in tests.
type MockClient struct {
	// GenerateResponseFunc is called when GenerateResponse is invoked.
	// If nil, returns an empty result and nil error.
	GenerateResponseFunc func(ctx context.Context, prompt string, systemMessage string) (*GenerateResponseResult, error)

	// ModelName is returned by Model. Defaults to "mock-model".
	ModelName string

	// Call tracking for verification.
	GenerateResponseCalls int
	LastPrompt            string
	LastSystemMessage     string
}

// NewMockClient creates a new mock with sensible defaults.
func NewMockClient() *MockClient {
	return &MockClient{ModelName: "mock-model"}
}

// GenerateResponse implements Client.
func (m *MockClient) GenerateResponse(ctx context.Context, prompt string, systemMessage string) (*GenerateResponseResult, error) {
	m.GenerateResponseCalls++
	m.LastPrompt = prompt
	m.LastSystemMessage = systemMessage
	if m.GenerateResponseFunc != nil {
		return m.GenerateResponseFunc(ctx, prompt, systemMessage)
	}
	return &GenerateResponseResult{}, nil
}

// Model implements Client.
func (m *MockClient) Model() string {
	if m.ModelName == "" {
		return "mock-model"
	}
	return m.ModelName
}

// Provider implements Client.
func (m *MockClient) Provider() string {
	return "mock"
}

var _ Client = (*MockClient)(nil)
