package entities

import (
	"fmt"
	"strings"
	"unicode/utf8"

	apperrors "github.com/bolumrehberi/backend/pkg/errors"
)

// Urgency classifies how quickly the user should seek care.
type Urgency string

const (
	UrgencyLow       Urgency = "low"
	UrgencyMedium    Urgency = "medium"
	UrgencyHigh      Urgency = "high"
	UrgencyEmergency Urgency = "emergency"
)

// Valid reports whether the urgency is one of the four recognised tiers.
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyEmergency:
		return true
	}
	return false
}

const minSymptomLength = 3

// AnalysisRequest is a single free-text symptom submission.
type AnalysisRequest struct {
	Symptom string `json:"symptom"`
}

// Validate rejects symptom text shorter than three characters after trimming.
// Nothing may be sent to a provider once validation has failed.
func (r *AnalysisRequest) Validate() error {
	trimmed := strings.TrimSpace(r.Symptom)
	if utf8.RuneCountInString(trimmed) < minSymptomLength {
		return apperrors.NewValidationError("symptom", "Lütfen en az 3 karakter giriniz")
	}
	r.Symptom = trimmed
	return nil
}

// AnalysisResult is the structured triage reply rendered to the user.
type AnalysisResult struct {
	Department      string   `json:"department"`
	Explanation     string   `json:"explanation"`
	Urgency         Urgency  `json:"urgency"`
	RelatedSymptoms []string `json:"relatedSymptoms,omitempty"`
}

// Validate enforces the response contract. Off-enum urgency values are a
// hard failure, never clamped to a nearby tier.
func (r *AnalysisResult) Validate() error {
	if strings.TrimSpace(r.Department) == "" {
		return apperrors.NewValidationError("department", "department must be a non-empty string")
	}
	if strings.TrimSpace(r.Explanation) == "" {
		return apperrors.NewValidationError("explanation", "explanation must be a non-empty string")
	}
	if !r.Urgency.Valid() {
		return apperrors.NewValidationError("urgency", fmt.Sprintf("urgency %q is not one of low, medium, high, emergency", r.Urgency))
	}
	return nil
}

// AnalysisErrorKind distinguishes why a provider reply was rejected.
type AnalysisErrorKind string

const (
	AnalysisErrorParse  AnalysisErrorKind = "ParseFailure"
	AnalysisErrorSchema AnalysisErrorKind = "SchemaMismatch"
)

// AnalysisError carries the rejected raw provider text for server-side
// logging. The raw text is never included in a client payload.
type AnalysisError struct {
	Kind AnalysisErrorKind
	Raw  string
	Err  error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis rejected (%s): %v", e.Kind, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}
