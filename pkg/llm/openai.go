package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClient talks to OpenAI or any OpenAI-compatible endpoint.
type OpenAIClient struct {
	client      *openai.Client
	endpoint    string
	model       string
	temperature float32
	maxTokens   int
	logger      *zap.Logger
}

// Config holds settings shared by the provider clients.
type Config struct {
	Endpoint    string // Base URL, e.g. "https://api.openai.com/v1"
	Model       string
	APIKey      string // Optional for local OpenAI-compatible endpoints
	Temperature float64
	MaxTokens   int
}

// NewOpenAIClient creates a client for an OpenAI-compatible endpoint.
func NewOpenAIClient(cfg *Config, logger *zap.Logger) (*OpenAIClient, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = strings.TrimSuffix(cfg.Endpoint, "/")
	}

	return &OpenAIClient{
		client:      openai.NewClientWithConfig(clientConfig),
		endpoint:    cfg.Endpoint,
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
		maxTokens:   cfg.MaxTokens,
		logger:      logger.Named("llm"),
	}, nil
}

// GenerateResponse sends a chat completion request and returns the reply
// with usage stats.
func (c *OpenAIClient) GenerateResponse(ctx context.Context, prompt string, systemMessage string) (*GenerateResponseResult, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}

	c.logger.Debug("LLM request",
		zap.String("model", c.model),
		zap.Int("prompt_len", len(prompt)),
		zap.Float32("temperature", c.temperature))

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		c.logger.Error("LLM request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, ClassifyError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	c.logger.Info("LLM request completed",
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("elapsed", time.Since(start)))

	return &GenerateResponseResult{
		Content:          resp.Choices[0].Message.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}, nil
}

// Model returns the configured model name.
func (c *OpenAIClient) Model() string {
	return c.model
}

// Provider returns "openai".
func (c *OpenAIClient) Provider() string {
	return "openai"
}

var _ Client = (*OpenAIClient)(nil)
