package services

import (
	"context"

	"github.com/bolumrehberi/backend/internal/domain/entities"
	"github.com/bolumrehberi/backend/internal/domain/providers"
	"github.com/bolumrehberi/backend/internal/infrastructure/observability"
	apperrors "github.com/bolumrehberi/backend/pkg/errors"
)

// SearchOutcome names the states of the hospital-search fallback policy.
type SearchOutcome string

const (
	OutcomeNoCredential  SearchOutcome = "NoCredential"
	OutcomeProviderError SearchOutcome = "ProviderError"
	OutcomeEmptyResult   SearchOutcome = "EmptyResult"
	OutcomeSuccess       SearchOutcome = "Success"
)

// ClassifySearch is the single decision function of the fallback state
// machine. hasLive is whether a live provider was configured at all.
func ClassifySearch(hasLive bool, resultCount int, err error) SearchOutcome {
	switch {
	case !hasLive:
		return OutcomeNoCredential
	case err != nil:
		return OutcomeProviderError
	case resultCount == 0:
		return OutcomeEmptyResult
	default:
		return OutcomeSuccess
	}
}

// HospitalService resolves nearby-hospital searches, masking live-provider
// failures with the static mock set so the map stays populated.
type HospitalService struct {
	live     providers.PlacesProvider
	fallback providers.PlacesProvider
	metrics  *observability.Metrics
}

// NewHospitalService creates a new hospital service. live may be nil when no
// places credential is configured; fallback must always be present.
func NewHospitalService(live, fallback providers.PlacesProvider) *HospitalService {
	return &HospitalService{live: live, fallback: fallback}
}

// SetMetrics attaches fallback metrics recording.
func (s *HospitalService) SetMetrics(metrics *observability.Metrics) {
	s.metrics = metrics
}

// Search returns hospitals around the request center. On anything but a live
// success the mock set is served; the diagnostic flag unmasks the raw error
// or empty result instead.
func (s *HospitalService) Search(ctx context.Context, req *entities.HospitalSearchRequest, diagnostic bool) ([]entities.Hospital, error) {
	center := providers.Coordinates{Latitude: req.Lat, Longitude: req.Lng}

	var hospitals []entities.Hospital
	var err error
	if s.live != nil {
		hospitals, err = s.live.NearbyHospitals(ctx, center, req.Radius)
	}

	outcome := ClassifySearch(s.live != nil, len(hospitals), err)
	switch outcome {
	case OutcomeSuccess:
		return hospitals, nil

	case OutcomeNoCredential:
		observability.RecordFallback(ctx, s.metrics, string(outcome))
		return s.fallback.NearbyHospitals(ctx, center, req.Radius)

	case OutcomeProviderError:
		if diagnostic {
			return nil, apperrors.NewUnavailableError("places provider call failed", err)
		}
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("outcome", string(outcome)).
			Msg("live hospital search failed, serving fallback records")
		observability.RecordFallback(ctx, s.metrics, string(outcome))
		return s.fallback.NearbyHospitals(ctx, center, req.Radius)

	default: // OutcomeEmptyResult
		if diagnostic {
			return []entities.Hospital{}, nil
		}
		observability.LoggerFromContext(ctx).Info().
			Str("outcome", string(outcome)).
			Msg("live hospital search matched nothing, serving fallback records")
		observability.RecordFallback(ctx, s.metrics, string(outcome))
		return s.fallback.NearbyHospitals(ctx, center, req.Radius)
	}
}
