package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bolumrehberi/backend/internal/domain/entities"
	"github.com/bolumrehberi/backend/internal/domain/repositories"
	"github.com/bolumrehberi/backend/internal/infrastructure/observability"
)

// FeedbackService handles feedback submissions. With no repository wired
// (no database configured) submissions are logged and acknowledged, never
// failed: feedback is not on the critical path.
type FeedbackService struct {
	repo repositories.FeedbackRepository
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(repo repositories.FeedbackRepository) *FeedbackService {
	return &FeedbackService{repo: repo}
}

// Create stores feedback.
func (s *FeedbackService) Create(ctx context.Context, feedback *entities.Feedback) error {
	if feedback.ID == "" {
		feedback.ID = uuid.New().String()
	}
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now().UTC()
	}

	if s.repo == nil {
		observability.LoggerFromContext(ctx).Info().
			Str("feedback_id", feedback.ID).
			Bool("is_positive", feedback.IsPositive).
			Msg("feedback received (no database configured, not persisted)")
		return nil
	}

	return s.repo.Create(ctx, feedback)
}
