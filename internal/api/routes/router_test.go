package routes_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bolumrehberi/backend/internal/adapters/providers/places"
	"github.com/bolumrehberi/backend/internal/api/handlers"
	"github.com/bolumrehberi/backend/internal/api/routes"
	"github.com/bolumrehberi/backend/internal/application/services"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	// Credential-free wiring: analysis degraded, hospital search on the
	// mock set, feedback logged only.
	analysisHandler := handlers.NewAnalysisHandler(services.NewAnalysisService(nil))
	hospitalHandler := handlers.NewHospitalHandler(
		services.NewHospitalService(nil, places.NewMockPlacesProvider()),
	)
	feedbackHandler := handlers.NewFeedbackHandler(services.NewFeedbackService(nil), nil)

	router := routes.NewRouter(analysisHandler, hospitalHandler, feedbackHandler, nil)
	return router.SetupRoutes()
}

func TestRouterHealthEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRouterMethodMatching(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/symptoms/analyze", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouterHospitalsServesMockSet(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals?lat=41.0082&lng=28.9784", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Merkez Devlet Hastanesi")
}

func TestRouterAnalyzeDegradedWithoutCredential(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/symptoms/analyze", strings.NewReader(`{"symptom":"başım ağrıyor"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouterCORSHeaders(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/hospitals", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}
