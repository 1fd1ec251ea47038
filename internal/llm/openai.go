package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Client talks to an OpenAI-compatible chat-completions endpoint via
// langchaingo. It works against both the OpenAI API and OpenRouter (the
// config layer selects the base URL from the key shape).
type Client struct {
	llm     *openai.LLM
	model   string
	timeout time.Duration
}

// ClientConfig configures a completion client.
type ClientConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	// Timeout bounds each completion call. Zero means no per-call timeout.
	Timeout time.Duration
}

// NewClient constructs a completion client. A missing API key is a
// configuration failure and is reported immediately.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("llm: api key is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm: model is required")
	}
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("llm: create client: %w", err)
	}
	return &Client{llm: client, model: cfg.Model, timeout: cfg.Timeout}, nil
}

// Complete sends a system+user message pair and returns the completion text.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, req.System),
		llms.TextParts(llms.ChatMessageTypeHuman, req.User),
	}
	resp, err := c.llm.GenerateContent(ctx, messages, llms.WithTemperature(req.Temperature))
	if err != nil {
		return "", fmt.Errorf("completion call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return resp.Choices[0].Content, nil
}
