package inference

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"resty.dev/v3"

	"movision-server/internal/infrastructure/metrics"
	"movision-server/internal/utils/apperrors"
)

// ChatCompletionClient talks to an OpenAI-compatible chat completion
// endpoint over a shared resty client.
type ChatCompletionClient struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	name    string
}

func NewChatCompletionClient(name, baseURL, apiKey string, timeout time.Duration) *ChatCompletionClient {
	client := resty.New().SetTimeout(timeout)
	return &ChatCompletionClient{
		client:  client,
		baseURL: normalizeBaseURL(baseURL),
		apiKey:  apiKey,
		name:    name,
	}
}

// CreateChatCompletion performs a single non-streaming completion call.
func (c *ChatCompletionClient) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	var respBody openai.ChatCompletionResponse
	resp, err := c.prepareRequest(ctx).
		SetBody(request).
		SetResult(&respBody).
		Post(c.endpoint("/chat/completions"))
	if err != nil {
		metrics.RecordProviderError(c.name, "transport")
		return nil, apperrors.NewError(ctx, apperrors.LayerInfrastructure, apperrors.ErrorTypeUpstream, "chat completion request failed", err)
	}
	if resp.IsError() {
		metrics.RecordProviderError(c.name, "status")
		return nil, apperrors.NewError(ctx, apperrors.LayerInfrastructure, apperrors.ErrorTypeUpstream,
			fmt.Sprintf("chat completion request failed: status %d", resp.StatusCode()), nil)
	}
	return &respBody, nil
}

func (c *ChatCompletionClient) prepareRequest(ctx context.Context) *resty.Request {
	req := c.client.R().SetContext(ctx)
	req.SetHeader("Content-Type", "application/json")
	if strings.TrimSpace(c.apiKey) != "" {
		req.SetHeader("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	return req
}

func (c *ChatCompletionClient) endpoint(path string) string {
	if strings.HasPrefix(path, "/") {
		return c.baseURL + path
	}
	return c.baseURL + "/" + path
}

func (c *ChatCompletionClient) BaseURL() string {
	return c.baseURL
}

func normalizeBaseURL(base string) string {
	return strings.TrimRight(strings.TrimSpace(base), "/")
}
