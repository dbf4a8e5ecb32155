package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/bolumrehberi/backend/internal/adapters/providers/generative"
	"github.com/bolumrehberi/backend/internal/domain/entities"
	"github.com/bolumrehberi/backend/internal/domain/providers"
	"github.com/bolumrehberi/backend/internal/infrastructure/observability"
	apperrors "github.com/bolumrehberi/backend/pkg/errors"
)

// ErrAnalysisDegraded marks the no-credential state: the server is up but
// symptom analysis cannot be served until a generative credential is set.
var ErrAnalysisDegraded = errors.New("symptom analysis is degraded: no generative credential configured")

// AnalysisService runs the symptom analysis pipeline: validate, build the
// prompt, call the provider, parse and validate the reply.
type AnalysisService struct {
	provider providers.GenerativeProvider
}

// NewAnalysisService creates a new analysis service. A nil provider puts the
// service in a degraded state instead of failing construction.
func NewAnalysisService(provider providers.GenerativeProvider) *AnalysisService {
	return &AnalysisService{provider: provider}
}

// Degraded reports whether the service lacks a configured provider.
func (s *AnalysisService) Degraded() bool {
	return s.provider == nil
}

// Analyze validates the request, calls the provider once, and returns a
// fully validated result. Malformed or off-schema provider output is
// rejected, never patched up.
func (s *AnalysisService) Analyze(ctx context.Context, req *entities.AnalysisRequest) (*entities.AnalysisResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if s.provider == nil {
		return nil, ErrAnalysisDegraded
	}

	prompt := generative.BuildAnalysisPrompt(req.Symptom)

	raw, err := s.provider.GenerateAnalysis(ctx, prompt)
	if err != nil {
		switch {
		case errors.Is(err, providers.ErrGenerativeUnauthorized):
			return nil, apperrors.NewUnavailableError("generative provider rejected credentials", err)
		case errors.Is(err, providers.ErrGenerativeQuota):
			return nil, apperrors.NewUnavailableError("generative provider quota exceeded", err)
		default:
			return nil, apperrors.NewUnavailableError("generative provider call failed", err)
		}
	}

	result, err := parseAnalysisReply(raw)
	if err != nil {
		var analysisErr *entities.AnalysisError
		if errors.As(err, &analysisErr) {
			observability.LoggerFromContext(ctx).Error().
				Str("kind", string(analysisErr.Kind)).
				Str("raw", analysisErr.Raw).
				Msg("rejected provider reply")
		}
		return nil, err
	}

	return result, nil
}

// parseAnalysisReply parses cleaned provider text and enforces the response
// contract. Parse and schema failures are reported as distinct kinds with
// the raw text attached for server-side logging.
func parseAnalysisReply(raw string) (*entities.AnalysisResult, error) {
	var result entities.AnalysisResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		kind := entities.AnalysisErrorParse
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			kind = entities.AnalysisErrorSchema
		}
		return nil, &entities.AnalysisError{Kind: kind, Raw: raw, Err: err}
	}

	if err := result.Validate(); err != nil {
		return nil, &entities.AnalysisError{Kind: entities.AnalysisErrorSchema, Raw: raw, Err: err}
	}

	return &result, nil
}
