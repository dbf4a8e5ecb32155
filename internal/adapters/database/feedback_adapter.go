package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/bolumrehberi/backend/internal/domain/entities"
	"github.com/bolumrehberi/backend/internal/domain/repositories"
	"github.com/bolumrehberi/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/bolumrehberi/backend/pkg/errors"
)

// FeedbackAdapter implements feedback persistence in Postgres.
type FeedbackAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewFeedbackAdapter creates a new feedback adapter.
func NewFeedbackAdapter(client *postgres.Client) repositories.FeedbackRepository {
	return &FeedbackAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a feedback record.
func (a *FeedbackAdapter) Create(ctx context.Context, feedback *entities.Feedback) error {
	if feedback == nil {
		return apperrors.NewInternalError("feedback is nil", fmt.Errorf("feedback is nil"))
	}

	record := goqu.Record{
		"id":          feedback.ID,
		"message":     feedback.Message,
		"is_positive": feedback.IsPositive,
		"user_agent":  sql.NullString{String: feedback.UserAgent, Valid: feedback.UserAgent != ""},
		"created_at":  feedback.CreatedAt,
	}

	query, args, err := a.db.Insert("feedback").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build feedback insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create feedback", err)
	}

	return nil
}
