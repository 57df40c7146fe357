package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ekaya-inc/sqlassist/pkg/config"
)

func TestNewFromConfig_OpenAI(t *testing.T) {
	client, err := NewFromConfig(&config.LLMConfig{
		Provider:     "openai",
		Endpoint:     "https://api.openai.com/v1",
		Model:        "gpt-4o-mini",
		OpenAIAPIKey: "sk-test",
		Temperature:  0.1,
		MaxTokens:    1000,
	}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "openai", client.Provider())
	assert.Equal(t, "gpt-4o-mini", client.Model())
}

func TestNewFromConfig_DefaultProviderIsOpenAI(t *testing.T) {
	client, err := NewFromConfig(&config.LLMConfig{
		Model: "gpt-4o-mini",
	}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "openai", client.Provider())
}

func TestNewFromConfig_Anthropic(t *testing.T) {
	client, err := NewFromConfig(&config.LLMConfig{
		Provider:        "anthropic",
		Model:           "claude-sonnet-4-20250514",
		AnthropicAPIKey: "sk-ant-test",
		Temperature:     0.1,
		MaxTokens:       1000,
	}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "anthropic", client.Provider())
}

func TestNewFromConfig_UnknownProvider(t *testing.T) {
	_, err := NewFromConfig(&config.LLMConfig{
		Provider: "carrier-pigeon",
		Model:    "rock-dove",
	}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrier-pigeon")
}

func TestNewFromConfig_MissingModel(t *testing.T) {
	_, err := NewFromConfig(&config.LLMConfig{Provider: "openai"}, zap.NewNop())
	assert.Error(t, err)
}
