package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openaiapi "github.com/sashabaranov/go-openai"

	"gemini-chatbot-backend/internal/domain"
)

// Client talks to Gemini's OpenAI-compatible chat completions endpoint.
// It is stateless; every call is one synchronous round trip.
type Client struct {
	api         *openaiapi.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewClient builds a client for the given endpoint. temperature and
// maxTokens are the defaults used when a request does not override them;
// maxTokens of zero leaves the limit unset.
func NewClient(apiKey, baseURL, model string, temperature float32, maxTokens int) *Client {
	cfg := openaiapi.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/")

	return &Client{
		api:         openaiapi.NewClientWithConfig(cfg),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

func (c *Client) Model() string { return c.model }

// Generate sends the transcript and returns the first completion's text.
// Every upstream failure, whatever its cause, surfaces as a single
// "completion failed" error carrying the original message.
func (c *Client) Generate(ctx context.Context, messages []domain.Message, cfg domain.RunConfig) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("completion failed: no messages to send")
	}

	temperature := c.temperature
	if cfg.Temperature > 0 {
		temperature = cfg.Temperature
	}
	maxTokens := c.maxTokens
	if cfg.MaxTokens > 0 {
		maxTokens = cfg.MaxTokens
	}

	resp, err := c.api.CreateChatCompletion(ctx, openaiapi.ChatCompletionRequest{
		Model:               c.model,
		Temperature:         temperature,
		MaxCompletionTokens: maxTokens,
		Stream:              false,
		Messages:            toAPIMessages(messages),
	})
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("completion failed: model returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

func toAPIMessages(msgs []domain.Message) []openaiapi.ChatCompletionMessage {
	res := make([]openaiapi.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		res = append(res, openaiapi.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return res
}
