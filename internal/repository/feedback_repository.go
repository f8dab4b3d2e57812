package repository

import (
	"context"
	"fmt"

	"agrivision-service/internal/models"

	"github.com/jmoiron/sqlx"
)

type FeedbackRepository struct {
	db *sqlx.DB
}

func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, record models.FeedbackRecord) error {
	query := `
		INSERT INTO feedback (id, submitted_at, name, user_type, rating, comments)
		VALUES (:id, :submitted_at, :name, :user_type, :rating, :comments)`

	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	return nil
}
