package generative

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/bolumrehberi/backend/internal/domain/providers"
	"github.com/bolumrehberi/backend/pkg/config"
	"github.com/bolumrehberi/backend/pkg/retry"
)

// OpenAIClient implements the GenerativeProvider using the OpenAI chat
// completion API with JSON-object response format.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates a new OpenAI-backed generative client.
func NewOpenAIClient(cfg *config.GenerativeConfig) (*OpenAIClient, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.HTTPClient = &http.Client{Timeout: defaultHTTPTimeout}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}, nil
}

// GenerateAnalysis sends the rendered prompt and returns cleaned raw text.
func (c *OpenAIClient) GenerateAnalysis(ctx context.Context, prompt providers.Prompt) (string, error) {
	cfg := retry.ProviderConfig()
	cfg.RetryIf = func(err error) bool {
		return errors.Is(err, providers.ErrGenerativeUnavailable)
	}

	var text string
	err := retry.Do(ctx, cfg, func() error {
		result, callErr := c.generateOnce(ctx, prompt)
		if callErr != nil {
			return callErr
		}
		text = result
		return nil
	})
	if err != nil {
		return "", err
	}
	return CleanModelOutput(text), nil
}

func (c *OpenAIClient) generateOnce(ctx context.Context, prompt providers.Prompt) (string, error) {
	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.User},
		},
		Temperature: analysisTemperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		mapped := mapOpenAIError(err)
		recordRequestMetric(ctx, "openai", c.model, openAIStatus(err), time.Since(start), mapped)
		return "", mapped
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		recordRequestMetric(ctx, "openai", c.model, http.StatusOK, time.Since(start), providers.ErrGenerativeEmpty)
		return "", providers.ErrGenerativeEmpty
	}

	recordRequestMetric(ctx, "openai", c.model, http.StatusOK, time.Since(start), nil)
	return resp.Choices[0].Message.Content, nil
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusUnauthorized || apiErr.HTTPStatusCode == http.StatusForbidden:
			return fmt.Errorf("%w: openai request failed with status %d", providers.ErrGenerativeUnauthorized, apiErr.HTTPStatusCode)
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%w: openai request failed with status %d", providers.ErrGenerativeQuota, apiErr.HTTPStatusCode)
		case apiErr.HTTPStatusCode >= 500:
			return fmt.Errorf("%w: openai request failed with status %d", providers.ErrGenerativeUnavailable, apiErr.HTTPStatusCode)
		default:
			return fmt.Errorf("openai request failed with status %d", apiErr.HTTPStatusCode)
		}
	}
	// No structured API error means the request never completed.
	return fmt.Errorf("%w: %v", providers.ErrGenerativeUnavailable, err)
}

func openAIStatus(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	return 0
}
