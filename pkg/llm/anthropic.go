package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"
)

// AnthropicClient talks to the Anthropic Messages API.
type AnthropicClient struct {
	client      *anthropic.Client
	model       string
	temperature float32
	maxTokens   int
	logger      *zap.Logger
}

// NewAnthropicClient creates a client for the Anthropic Messages API.
func NewAnthropicClient(cfg *Config, logger *zap.Logger) (*AnthropicClient, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	return &AnthropicClient{
		client:      anthropic.NewClient(cfg.APIKey),
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
		maxTokens:   cfg.MaxTokens,
		logger:      logger.Named("llm"),
	}, nil
}

// GenerateResponse sends a messages request and returns the reply with
// usage stats.
func (c *AnthropicClient) GenerateResponse(ctx context.Context, prompt string, systemMessage string) (*GenerateResponseResult, error) {
	c.logger.Debug("LLM request",
		zap.String("model", c.model),
		zap.Int("prompt_len", len(prompt)),
		zap.Float32("temperature", c.temperature))

	start := time.Now()

	temperature := c.temperature
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       anthropic.Model(c.model),
		System:      systemMessage,
		Messages:    []anthropic.Message{anthropic.NewUserTextMessage(prompt)},
		MaxTokens:   c.maxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		c.logger.Error("LLM request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, ClassifyError(err)
	}

	content := resp.GetFirstContentText()
	if content == "" {
		return nil, fmt.Errorf("no content in response")
	}

	c.logger.Info("LLM request completed",
		zap.Int("prompt_tokens", resp.Usage.InputTokens),
		zap.Int("completion_tokens", resp.Usage.OutputTokens),
		zap.Duration("elapsed", time.Since(start)))

	return &GenerateResponseResult{
		Content:          content,
		PromptTokens:     resp.Usage.InputTokens,
		CompletionTokens: resp.Usage.OutputTokens,
		TotalTokens:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
	}, nil
}

// Model returns the configured model name.
func (c *AnthropicClient) Model() string {
	return c.model
}

// Provider returns "anthropic".
func (c *AnthropicClient) Provider() string {
	return "anthropic"
}

var _ Client = (*AnthropicClient)(nil)
