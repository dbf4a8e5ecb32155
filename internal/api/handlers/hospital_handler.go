package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/bolumrehberi/backend/internal/domain/entities"
	"github.com/bolumrehberi/backend/internal/infrastructure/observability"
	apperrors "github.com/bolumrehberi/backend/pkg/errors"
)

// HospitalSearcher defines the hospital search operation used by the handler.
type HospitalSearcher interface {
	Search(ctx context.Context, req *entities.HospitalSearchRequest, diagnostic bool) ([]entities.Hospital, error)
}

// HospitalHandler handles nearby-hospital requests.
type HospitalHandler struct {
	service HospitalSearcher
}

// NewHospitalHandler creates a new hospital handler.
func NewHospitalHandler(service HospitalSearcher) *HospitalHandler {
	return &HospitalHandler{service: service}
}

// ListHospitals handles GET /api/hospitals?lat=...&lng=...&radius=...
// The debug flag unmasks provider failures that are otherwise resolved
// through the mock fallback.
func (h *HospitalHandler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req, err := entities.ParseHospitalSearchRequest(query.Get("lat"), query.Get("lng"), query.Get("radius"))
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			respondWithError(w, http.StatusBadRequest, appErr.Message)
			return
		}
		respondWithError(w, http.StatusBadRequest, "Hastane araması başarısız.")
		return
	}

	diagnostic := query.Get("debug") == "1"

	hospitals, err := h.service.Search(r.Context(), req, diagnostic)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("hospital search failed")
		respondWithError(w, http.StatusInternalServerError, "Hastane araması başarısız.")
		return
	}

	if hospitals == nil {
		hospitals = []entities.Hospital{}
	}
	respondWithJSON(w, http.StatusOK, hospitals)
}
