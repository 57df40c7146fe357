package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ekaya-inc/sqlassist/pkg/config"
)

// NewFromConfig builds the provider client selected by configuration.
// A missing API key is not an error here: the request itself will fail and
// be surfaced inline, matching how every other failure is presented.
func NewFromConfig(cfg *config.LLMConfig, logger *zap.Logger) (Client, error) {
	clientCfg := &Config{
		Endpoint:    cfg.Endpoint,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}

	switch cfg.Provider {
	case "openai", "":
		clientCfg.APIKey = cfg.OpenAIAPIKey
		return NewOpenAIClient(clientCfg, logger)
	case "anthropic":
		clientCfg.APIKey = cfg.AnthropicAPIKey
		return NewAnthropicClient(clientCfg, logger)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}
