package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bolumrehberi/backend/internal/api/handlers"
	"github.com/bolumrehberi/backend/internal/domain/entities"
)

type stubFeedbackService struct {
	created []*entities.Feedback
	err     error
}

func (s *stubFeedbackService) Create(ctx context.Context, feedback *entities.Feedback) error {
	if s.err != nil {
		return s.err
	}
	feedback.ID = fmt.Sprintf("fb-%d", len(s.created)+1)
	s.created = append(s.created, feedback)
	return nil
}

func postFeedback(t *testing.T, handler *handlers.FeedbackHandler, body, ip string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/feedback", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = ip + ":54321"
	rec := httptest.NewRecorder()
	handler.SubmitFeedback(rec, req)
	return rec
}

func TestSubmitFeedbackSuccess(t *testing.T) {
	service := &stubFeedbackService{}
	handler := handlers.NewFeedbackHandler(service, nil)

	rec := postFeedback(t, handler, `{"message":"Çok faydalı oldu","isPositive":true}`, "10.0.0.1")

	assert.Equal(t, http.StatusCreated, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "received", payload["status"])
	assert.NotEmpty(t, payload["id"])

	require.Len(t, service.created, 1)
	assert.True(t, service.created[0].IsPositive)
}

func TestSubmitFeedbackRejectsMalformedBody(t *testing.T) {
	handler := handlers.NewFeedbackHandler(&stubFeedbackService{}, nil)

	rec := postFeedback(t, handler, `{"message":`, "10.0.0.1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitFeedbackRejectsEmptyMessage(t *testing.T) {
	handler := handlers.NewFeedbackHandler(&stubFeedbackService{}, nil)

	rec := postFeedback(t, handler, `{"message":"   ","isPositive":true}`, "10.0.0.1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitFeedbackRejectsOversizedMessage(t *testing.T) {
	handler := handlers.NewFeedbackHandler(&stubFeedbackService{}, nil)

	long := strings.Repeat("a", 1001)
	rec := postFeedback(t, handler, `{"message":"`+long+`","isPositive":false}`, "10.0.0.1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitFeedbackIgnoresDuplicates(t *testing.T) {
	service := &stubFeedbackService{}
	handler := handlers.NewFeedbackHandler(service, nil)
	body := `{"message":"Harita açılmıyor","isPositive":false}`

	first := postFeedback(t, handler, body, "10.0.0.2")
	assert.Equal(t, http.StatusCreated, first.Code)

	second := postFeedback(t, handler, body, "10.0.0.2")
	assert.Equal(t, http.StatusAccepted, second.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &payload))
	assert.Equal(t, "duplicate_ignored", payload["status"])
	assert.Len(t, service.created, 1)
}

func TestSubmitFeedbackDeduplicatesPerClient(t *testing.T) {
	service := &stubFeedbackService{}
	handler := handlers.NewFeedbackHandler(service, nil)
	body := `{"message":"Harita açılmıyor","isPositive":false}`

	first := postFeedback(t, handler, body, "10.0.0.3")
	assert.Equal(t, http.StatusCreated, first.Code)

	// Same message from a different client is not a duplicate.
	other := postFeedback(t, handler, body, "10.0.0.4")
	assert.Equal(t, http.StatusCreated, other.Code)
}

func TestSubmitFeedbackRateLimitsPerClient(t *testing.T) {
	handler := handlers.NewFeedbackHandler(&stubFeedbackService{}, nil)

	for i := 0; i < 5; i++ {
		body := fmt.Sprintf(`{"message":"mesaj %d","isPositive":true}`, i)
		rec := postFeedback(t, handler, body, "10.0.0.5")
		assert.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := postFeedback(t, handler, `{"message":"altıncı mesaj","isPositive":true}`, "10.0.0.5")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// A different client is unaffected.
	other := postFeedback(t, handler, `{"message":"farklı istemci","isPositive":true}`, "10.0.0.6")
	assert.Equal(t, http.StatusCreated, other.Code)
}

func TestSubmitFeedbackServiceFailure(t *testing.T) {
	handler := handlers.NewFeedbackHandler(&stubFeedbackService{err: fmt.Errorf("insert failed")}, nil)

	rec := postFeedback(t, handler, `{"message":"kayıt hatası","isPositive":true}`, "10.0.0.7")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
