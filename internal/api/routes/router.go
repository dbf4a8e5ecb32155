package routes

import (
	"net/http"

	"github.com/bolumrehberi/backend/internal/api/handlers"
	"github.com/bolumrehberi/backend/internal/api/middleware"
	"github.com/bolumrehberi/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	analysisHandler *handlers.AnalysisHandler
	hospitalHandler *handlers.HospitalHandler
	feedbackHandler *handlers.FeedbackHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	analysisHandler *handlers.AnalysisHandler,
	hospitalHandler *handlers.HospitalHandler,
	feedbackHandler *handlers.FeedbackHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		analysisHandler: analysisHandler,
		hospitalHandler: hospitalHandler,
		feedbackHandler: feedbackHandler,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Symptom analysis endpoint
	r.mux.HandleFunc("POST /api/symptoms/analyze", r.analysisHandler.AnalyzeSymptom)

	// Hospital search endpoint
	r.mux.HandleFunc("GET /api/hospitals", r.hospitalHandler.ListHospitals)

	// Feedback endpoint
	r.mux.HandleFunc("POST /api/feedback", r.feedbackHandler.SubmitFeedback)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
