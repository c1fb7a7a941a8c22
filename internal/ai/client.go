package ai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	apperrors "github.com/KirillKCrypto/Trading-Journal-APP/internal/errors"
	"github.com/KirillKCrypto/Trading-Journal-APP/internal/resilience"
)

// LLMClient is the minimal chat-completion surface the engine needs.
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Model() string
}

// ClientOptions configures the OpenRouter chat client.
type ClientOptions struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
}

// OpenRouterClient implements LLMClient against an OpenAI-compatible
// chat-completions endpoint. A circuit breaker guards the upstream:
// after repeated failures requests are rejected locally until the
// cooldown passes, which callers surface as service unavailability.
type OpenRouterClient struct {
	client      *openai.Client
	breaker     *resilience.Breaker
	model       string
	maxTokens   int
	temperature float32
}

// NewOpenRouterClient creates a new chat client. Missing credentials are
// rejected here so callers can degrade before composing a request.
func NewOpenRouterClient(opts ClientOptions) (*OpenRouterClient, error) {
	if opts.APIKey == "" {
		return nil, apperrors.ErrMissingAPIKey
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	return &OpenRouterClient{
		client:      openai.NewClientWithConfig(cfg),
		breaker:     resilience.NewBreaker(resilience.DefaultBreakerConfig()),
		model:       opts.Model,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
	}, nil
}

// Complete sends a single user-role prompt and returns the response text.
func (c *OpenRouterClient) Complete(ctx context.Context, prompt string) (string, error) {
	if err := c.breaker.Allow(); err != nil {
		return "", apperrors.NewLLMError(c.model, "request rejected", err)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		c.breaker.Failure()
		return "", apperrors.NewLLMError(c.model, "completion failed", err)
	}
	if len(resp.Choices) == 0 {
		c.breaker.Failure()
		return "", apperrors.NewLLMError(c.model, "empty choices", apperrors.ErrNoResponse)
	}
	c.breaker.Success()
	return resp.Choices[0].Message.Content, nil
}

// Model returns the configured model identifier.
func (c *OpenRouterClient) Model() string {
	return c.model
}
