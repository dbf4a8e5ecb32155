package generative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bolumrehberi/backend/internal/domain/providers"
	"github.com/bolumrehberi/backend/pkg/config"
	"github.com/bolumrehberi/backend/pkg/retry"
)

const (
	geminiBaseURL      = "https://generativelanguage.googleapis.com/v1beta"
	defaultHTTPTimeout = 12 * time.Second

	// Low temperature keeps the structured reply as stable as the provider
	// allows.
	analysisTemperature = 0.1
)

// GeminiClient implements the GenerativeProvider against the Google
// Generative Language API, requesting JSON-only output.
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiClient creates a new Gemini client. The key must be present;
// degraded-credential handling happens at wiring time, not here.
func NewGeminiClient(cfg *config.GenerativeConfig) (*GeminiClient, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}

	return &GeminiClient{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: geminiBaseURL,
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
	}, nil
}

// NewGeminiClientWithOptions allows overriding base URL and HTTP client (used for tests).
func NewGeminiClientWithOptions(cfg *config.GenerativeConfig, baseURL string, httpClient *http.Client) (*GeminiClient, error) {
	client, err := NewGeminiClient(cfg)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(baseURL) != "" {
		client.baseURL = strings.TrimSuffix(baseURL, "/")
	}
	if httpClient != nil {
		client.httpClient = httpClient
	}
	return client, nil
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"responseMimeType"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// GenerateAnalysis sends the rendered prompt and returns cleaned raw text.
// Transient network and 5xx failures get one bounded retry; auth and quota
// rejections fail immediately.
func (c *GeminiClient) GenerateAnalysis(ctx context.Context, prompt providers.Prompt) (string, error) {
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

func (c *GeminiClient) generateOnce(ctx context.Context, prompt providers.Prompt) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: prompt.System + "\n\n" + prompt.User}},
			},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:      analysisTemperature,
			ResponseMimeType: "application/json",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	reqURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordRequestMetric(ctx, "gemini", c.model, 0, time.Since(start), err)
		return "", fmt.Errorf("%w: %v", providers.ErrGenerativeUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := fmt.Errorf("status %d", resp.StatusCode)
		recordRequestMetric(ctx, "gemini", c.model, resp.StatusCode, time.Since(start), statusErr)
		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return "", fmt.Errorf("%w: gemini request failed with status %d", providers.ErrGenerativeUnauthorized, resp.StatusCode)
		case resp.StatusCode == http.StatusTooManyRequests:
			return "", fmt.Errorf("%w: gemini request failed with status %d", providers.ErrGenerativeQuota, resp.StatusCode)
		case resp.StatusCode >= 500:
			return "", fmt.Errorf("%w: gemini request failed with status %d", providers.ErrGenerativeUnavailable, resp.StatusCode)
		default:
			return "", fmt.Errorf("gemini request failed with status %d", resp.StatusCode)
		}
	}

	var envelope geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		recordRequestMetric(ctx, "gemini", c.model, resp.StatusCode, time.Since(start), err)
		return "", fmt.Errorf("failed to decode gemini response: %w", err)
	}

	var text string
	for _, candidate := range envelope.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				text = part.Text
				break
			}
		}
		if text != "" {
			break
		}
	}

	if text == "" {
		recordRequestMetric(ctx, "gemini", c.model, resp.StatusCode, time.Since(start), providers.ErrGenerativeEmpty)
		return "", providers.ErrGenerativeEmpty
	}

	recordRequestMetric(ctx, "gemini", c.model, resp.StatusCode, time.Since(start), nil)
	return text, nil
}
