package entities_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bolumrehberi/backend/internal/domain/entities"
	apperrors "github.com/bolumrehberi/backend/pkg/errors"
)

func TestAnalysisRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		symptom string
		wantErr bool
	}{
		{name: "empty", symptom: "", wantErr: true},
		{name: "too short", symptom: "ab", wantErr: true},
		{name: "whitespace only", symptom: "   ", wantErr: true},
		{name: "short after trimming", symptom: "  a  ", wantErr: true},
		{name: "exactly three runes", symptom: "baş", wantErr: false},
		{name: "turkish symptom", symptom: "başım ağrıyor", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &entities.AnalysisRequest{Symptom: tt.symptom}
			err := req.Validate()

			if tt.wantErr {
				require.Error(t, err)

				var appErr *apperrors.AppError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
				assert.Equal(t, "symptom", appErr.Field)
				assert.Equal(t, "Lütfen en az 3 karakter giriniz", appErr.Message)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestAnalysisRequestValidateTrimsSymptom(t *testing.T) {
	req := &entities.AnalysisRequest{Symptom: "  başım ağrıyor  "}

	require.NoError(t, req.Validate())
	assert.Equal(t, "başım ağrıyor", req.Symptom)
}

func TestUrgencyValid(t *testing.T) {
	for _, u := range []entities.Urgency{
		entities.UrgencyLow,
		entities.UrgencyMedium,
		entities.UrgencyHigh,
		entities.UrgencyEmergency,
	} {
		assert.True(t, u.Valid(), "urgency %q should be valid", u)
	}

	for _, u := range []entities.Urgency{"", "critical", "LOW", "urgent"} {
		assert.False(t, u.Valid(), "urgency %q should be invalid", u)
	}
}

func TestAnalysisResultValidate(t *testing.T) {
	valid := entities.AnalysisResult{
		Department:  "Dahiliye",
		Explanation: "Belirtileriniz için dahiliye uygun olabilir.",
		Urgency:     entities.UrgencyLow,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*entities.AnalysisResult)
		field  string
	}{
		{
			name:   "empty department",
			mutate: func(r *entities.AnalysisResult) { r.Department = "  " },
			field:  "department",
		},
		{
			name:   "empty explanation",
			mutate: func(r *entities.AnalysisResult) { r.Explanation = "" },
			field:  "explanation",
		},
		{
			name:   "off-enum urgency",
			mutate: func(r *entities.AnalysisResult) { r.Urgency = "critical" },
			field:  "urgency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := valid
			tt.mutate(&result)

			err := result.Validate()
			require.Error(t, err)

			var appErr *apperrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.field, appErr.Field)
		})
	}
}

func TestAnalysisResultJSONRoundTrip(t *testing.T) {
	raw := `{"department":"Dahiliye","explanation":"Belirtileriniz için dahiliye uygun olabilir.","urgency":"low","relatedSymptoms":["ateş"]}`

	var result entities.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(raw), &result))
	require.NoError(t, result.Validate())

	assert.Equal(t, "Dahiliye", result.Department)
	assert.Equal(t, entities.UrgencyLow, result.Urgency)
	assert.Equal(t, []string{"ateş"}, result.RelatedSymptoms)

	encoded, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded entities.AnalysisResult
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, result, decoded)
}

func TestAnalysisResultOmitsEmptyRelatedSymptoms(t *testing.T) {
	result := entities.AnalysisResult{
		Department:  "Nöroloji",
		Explanation: "Baş ağrısı için nöroloji uygun olabilir.",
		Urgency:     entities.UrgencyMedium,
	}

	encoded, err := json.Marshal(result)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "relatedSymptoms")
}

func TestAnalysisErrorUnwrap(t *testing.T) {
	cause := errors.New("unexpected token")
	analysisErr := &entities.AnalysisError{
		Kind: entities.AnalysisErrorParse,
		Raw:  "not json",
		Err:  cause,
	}

	assert.ErrorIs(t, analysisErr, cause)
	assert.Contains(t, analysisErr.Error(), "ParseFailure")
}
