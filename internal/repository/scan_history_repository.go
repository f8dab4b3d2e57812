package repository

import (
	"context"
	"fmt"

	"agrivision-service/internal/models"

	"github.com/jmoiron/sqlx"
)

// ScanHistoryRepository mirrors scan records into Postgres.
type ScanHistoryRepository struct {
	db *sqlx.DB
}

func NewScanHistoryRepository(db *sqlx.DB) *ScanHistoryRepository {
	return &ScanHistoryRepository{db: db}
}

func (r *ScanHistoryRepository) Create(ctx context.Context, record models.ScanRecord) error {
	query := `
		INSERT INTO scan_history (id, scanned_at, disease_label, confidence, image_object)
		VALUES (:id, :scanned_at, :disease_label, :confidence, :image_object)
		ON CONFLICT (id) DO NOTHING`

	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("failed to insert scan history: %w", err)
	}
	return nil
}

func (r *ScanHistoryRepository) GetRecent(ctx context.Context, limit int) ([]models.ScanRecord, error) {
	var records []models.ScanRecord
	query := `
		SELECT id, scanned_at, disease_label, confidence, image_object
		FROM scan_history
		ORDER BY scanned_at DESC
		LIMIT $1`

	if err := r.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get recent scans: %w", err)
	}
	return records, nil
}
