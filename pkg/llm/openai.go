package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/mealpost/mealpost/pkg/config"
)

// OpenAIClient talks to one vendor through its OpenAI-compatible
// chat-completion endpoint.
type OpenAIClient struct {
	vendor string
	model  string
	client *openai.Client
}

// NewOpenAIClient creates a client for a configured vendor.
func NewOpenAIClient(vendor string, cfg config.Vendor) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("vendor %s: API key is required", vendor)
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIClient{
		vendor: vendor,
		model:  model,
		client: openai.NewClientWithConfig(clientCfg),
	}, nil
}

func (c *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	messages := []openai.ChatCompletionMessage{}
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.User,
	})

	chatReq := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
	}
	if req.JSONObject {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)

	apiErr := &openai.APIError{}
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case 401:
			return "", fmt.Errorf("vendor %s: unauthorized, check API key", c.vendor)
		case 429:
			return "", fmt.Errorf("vendor %s: rate limited", c.vendor)
		case 500:
			return "", fmt.Errorf("vendor %s: server error", c.vendor)
		default:
			return "", fmt.Errorf("vendor %s: API error: %v", c.vendor, apiErr)
		}
	}
	if err != nil {
		return "", fmt.Errorf("vendor %s: %w", c.vendor, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("vendor %s: no choices returned", c.vendor)
	}
	return resp.Choices[0].Message.Content, nil
}
