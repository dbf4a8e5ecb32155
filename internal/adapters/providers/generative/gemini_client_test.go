package generative_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bolumrehberi/backend/internal/adapters/providers/generative"
	"github.com/bolumrehberi/backend/internal/domain/providers"
	"github.com/bolumrehberi/backend/pkg/config"
)

func newGeminiTestClient(t *testing.T, server *httptest.Server) *generative.GeminiClient {
	t.Helper()

	client, err := generative.NewGeminiClientWithOptions(
		&config.GenerativeConfig{Provider: "gemini", APIKey: "test-key", Model: "gemini-1.5-flash"},
		server.URL,
		server.Client(),
	)
	require.NoError(t, err)
	return client
}

func geminiReply(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"parts": []map[string]any{{"text": text}},
				},
			},
		},
	}
}

func TestNewGeminiClientRequiresAPIKey(t *testing.T) {
	_, err := generative.NewGeminiClient(&config.GenerativeConfig{})
	assert.Error(t, err)
}

func TestGeminiGenerateAnalysisStripsFences(t *testing.T) {
	payload := `{"department":"Nöroloji","explanation":"Kısa açıklama.","urgency":"medium"}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "gemini-1.5-flash")

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		cfg, ok := body["generationConfig"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "application/json", cfg["responseMimeType"])

		json.NewEncoder(w).Encode(geminiReply("```json\n" + payload + "\n```"))
	}))
	defer server.Close()

	client := newGeminiTestClient(t, server)

	result, err := client.GenerateAnalysis(context.Background(), generative.BuildAnalysisPrompt("başım ağrıyor"))
	require.NoError(t, err)
	assert.Equal(t, payload, result)
}

func TestGeminiGenerateAnalysisDoesNotRetryAuthFailure(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := newGeminiTestClient(t, server)

	_, err := client.GenerateAnalysis(context.Background(), generative.BuildAnalysisPrompt("başım ağrıyor"))
	require.Error(t, err)
	assert.ErrorIs(t, err, providers.ErrGenerativeUnauthorized)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGeminiGenerateAnalysisDoesNotRetryQuotaFailure(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newGeminiTestClient(t, server)

	_, err := client.GenerateAnalysis(context.Background(), generative.BuildAnalysisPrompt("başım ağrıyor"))
	require.Error(t, err)
	assert.ErrorIs(t, err, providers.ErrGenerativeQuota)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGeminiGenerateAnalysisRetriesServerError(t *testing.T) {
	payload := `{"department":"Dahiliye","explanation":"Kısa açıklama.","urgency":"low"}`

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(geminiReply(payload))
	}))
	defer server.Close()

	client := newGeminiTestClient(t, server)

	result, err := client.GenerateAnalysis(context.Background(), generative.BuildAnalysisPrompt("başım ağrıyor"))
	require.NoError(t, err)
	assert.Equal(t, payload, result)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGeminiGenerateAnalysisEmptyCandidates(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer server.Close()

	client := newGeminiTestClient(t, server)

	_, err := client.GenerateAnalysis(context.Background(), generative.BuildAnalysisPrompt("başım ağrıyor"))
	require.Error(t, err)
	assert.ErrorIs(t, err, providers.ErrGenerativeEmpty)
	assert.Equal(t, int32(1), calls.Load())
}
