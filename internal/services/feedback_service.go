package services

import (
	"context"
	"log/slog"
	"time"

	"agrivision-service/internal/metrics"
	"agrivision-service/internal/models"
	"agrivision-service/internal/worker"
)

type IFeedbackService interface {
	Submit(ctx context.Context, req models.FeedbackRequest) (*models.FeedbackRecord, error)
}

type FeedbackService struct {
	log    FeedbackLog
	mirror FeedbackMirror
	pool   JobSubmitter
	now    func() time.Time
}

// NewFeedbackService takes an optional Postgres mirror; pool may be nil when
// mirror is nil.
func NewFeedbackService(log FeedbackLog, mirror FeedbackMirror, pool JobSubmitter) *FeedbackService {
	return &FeedbackService{log: log, mirror: mirror, pool: pool, now: time.Now}
}

func (s *FeedbackService) Submit(ctx context.Context, req models.FeedbackRequest) (*models.FeedbackRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record := req.ToRecord(s.now())
	if err := s.log.Append(record); err != nil {
		return nil, err
	}
	metrics.FeedbackSubmitted.WithLabelValues(string(record.UserType)).Inc()

	if s.mirror != nil && s.pool != nil {
		err := s.pool.SubmitJob(worker.Job{Name: "feedback-mirror", Run: func(ctx context.Context) error {
			return s.mirror.Create(ctx, record)
		}})
		if err != nil {
			slog.Warn("feedback mirror skipped", "error", err)
		}
	}

	slog.Info("feedback recorded", "user_type", record.UserType, "rating", record.Rating)
	return &record, nil
}
