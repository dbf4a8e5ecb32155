package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bolumrehberi/backend/internal/application/services"
	"github.com/bolumrehberi/backend/internal/domain/entities"
	"github.com/bolumrehberi/backend/internal/infrastructure/observability"
	apperrors "github.com/bolumrehberi/backend/pkg/errors"
)

// AnalysisRunner defines the analysis operation used by the handler.
type AnalysisRunner interface {
	Analyze(ctx context.Context, req *entities.AnalysisRequest) (*entities.AnalysisResult, error)
}

// AnalysisHandler handles symptom analysis requests.
type AnalysisHandler struct {
	service AnalysisRunner
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(service AnalysisRunner) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// AnalyzeSymptom handles POST /api/symptoms/analyze
func (h *AnalysisHandler) AnalyzeSymptom(w http.ResponseWriter, r *http.Request) {
	var payload entities.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Geçersiz veri formatı.")
		return
	}

	result, err := h.service.Analyze(r.Context(), &payload)
	if err != nil {
		h.respondAnalysisError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// respondAnalysisError maps pipeline errors to localized client payloads.
// Raw provider output and internal error detail stay in the server log.
func (h *AnalysisHandler) respondAnalysisError(w http.ResponseWriter, r *http.Request, err error) {
	logger := observability.LoggerFromContext(r.Context())

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Type == apperrors.ErrorTypeValidation {
		respondWithError(w, http.StatusBadRequest, appErr.Message)
		return
	}

	if errors.Is(err, services.ErrAnalysisDegraded) {
		logger.Warn().Msg("analysis request refused: generative credential not configured")
		respondWithError(w, http.StatusServiceUnavailable, "Analiz servisi şu anda kullanılamıyor.")
		return
	}

	var analysisErr *entities.AnalysisError
	if errors.As(err, &analysisErr) {
		logger.Error().Err(err).Str("kind", string(analysisErr.Kind)).Msg("analysis failed: malformed provider output")
		respondWithError(w, http.StatusInternalServerError, "Analiz sırasında bir hata oluştu.")
		return
	}

	logger.Error().Err(err).Msg("analysis failed: provider unavailable")
	respondWithError(w, http.StatusInternalServerError, "Analiz sırasında bir hata oluştu.")
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
