package services

import (
	"context"
	"time"

	"agrivision-service/internal/imaging"
	"agrivision-service/internal/models"
	"agrivision-service/internal/worker"
)

// ImageClassifier is satisfied by *classifier.Classifier.
type ImageClassifier interface {
	Classify(ctx context.Context, tensor *imaging.Tensor) (models.Prediction, error)
	Ready() error
}

// TextGenerator produces a completion for a single prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// VideoSearcher returns up to limit videos for a free text query.
type VideoSearcher interface {
	Search(ctx context.Context, query string, limit int64) ([]models.VideoResult, error)
}

// Cache is a JSON value cache with per-entry expiry. Any Get error is a miss.
type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// ObjectStore is the subset of the MinIO wrapper used for archival.
type ObjectStore interface {
	UploadBytes(ctx context.Context, bucketName, objectName string, data []byte, contentType string) error
	PresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error)
}

type JobSubmitter interface {
	SubmitJob(job worker.Job) error
}

type ScanLog interface {
	Append(record models.ScanRecord) error
	Tail(n int) ([]models.HistoryEntry, error)
}

type ScanMirror interface {
	Create(ctx context.Context, record models.ScanRecord) error
}

type ScanEventPublisher interface {
	PublishScan(ctx context.Context, event models.ScanEvent) error
}

type FeedbackLog interface {
	Append(record models.FeedbackRecord) error
}

type FeedbackMirror interface {
	Create(ctx context.Context, record models.FeedbackRecord) error
}
