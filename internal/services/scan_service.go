package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"agrivision-service/internal/database/minio"
	"agrivision-service/internal/imaging"
	"agrivision-service/internal/metrics"
	"agrivision-service/internal/models"
	"agrivision-service/internal/worker"
)

const HistoryViewSize = 10

type IScanService interface {
	Scan(ctx context.Context, image []byte) (*models.ScanResponse, error)
	History(limit int) ([]models.HistoryEntry, error)
}

type ScanService struct {
	classifier ImageClassifier
	scanLog    ScanLog
	pool       JobSubmitter
	mirror     ScanMirror
	archive    ObjectStore
	publisher  ScanEventPublisher
	now        func() time.Time
}

// ScanServiceOption wires an optional side effect into the scan pipeline.
type ScanServiceOption func(*ScanService)

func WithScanMirror(mirror ScanMirror) ScanServiceOption {
	return func(s *ScanService) { s.mirror = mirror }
}

func WithImageArchive(archive ObjectStore) ScanServiceOption {
	return func(s *ScanService) { s.archive = archive }
}

func WithScanPublisher(publisher ScanEventPublisher) ScanServiceOption {
	return func(s *ScanService) { s.publisher = publisher }
}

func WithClock(now func() time.Time) ScanServiceOption {
	return func(s *ScanService) { s.now = now }
}

func NewScanService(classifier ImageClassifier, scanLog ScanLog, pool JobSubmitter, opts ...ScanServiceOption) *ScanService {
	s := &ScanService{
		classifier: classifier,
		scanLog:    scanLog,
		pool:       pool,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan runs preprocess, classify and log. Logging failures are reported in
// the response but never fail the classification.
func (s *ScanService) Scan(ctx context.Context, image []byte) (*models.ScanResponse, error) {
	if err := s.classifier.Ready(); err != nil {
		return nil, err
	}

	start := time.Now()
	img, err := imaging.Decode(bytes.NewReader(image))
	if err != nil {
		return nil, err
	}

	prediction, err := s.classifier.Classify(ctx, imaging.Preprocess(img))
	if err != nil {
		metrics.ScansFailed.Inc()
		slog.Error("classification failed", "error", err)
		return nil, err
	}
	metrics.ClassificationDuration.Observe(time.Since(start).Seconds())
	metrics.ScansClassified.WithLabelValues(prediction.Label).Inc()

	record := models.NewScanRecord(prediction, s.now())
	resp := &models.ScanResponse{
		ScanID:            record.ID,
		Disease:           prediction.Label,
		ClassIndex:        prediction.Index,
		Confidence:        prediction.Confidence,
		ConfidencePercent: prediction.ConfidencePercent(),
		ScannedAt:         record.ScannedAt,
	}

	if err := s.scanLog.Append(record); err != nil {
		resp.LogError = "scan history could not be saved"
	}

	s.dispatchSideEffects(record, image)

	slog.Info("leaf scanned", "scan_id", record.ID, "disease", prediction.Label, "confidence", resp.ConfidencePercent)
	return resp, nil
}

func (s *ScanService) dispatchSideEffects(record models.ScanRecord, image []byte) {
	if s.pool == nil {
		return
	}

	if s.archive != nil || s.mirror != nil {
		job := worker.Job{Name: "scan-persist", Run: func(ctx context.Context) error {
			if s.archive != nil {
				objectName := fmt.Sprintf("%s/%s", record.ScannedAt.Format("2006/01/02"), record.ID)
				if err := s.archive.UploadBytes(ctx, minio.Storage.ScanImages, objectName, image, http.DetectContentType(image)); err != nil {
					slog.Warn("failed to archive scan image", "scan_id", record.ID, "error", err)
				} else {
					record.ImageObject = &objectName
				}
			}
			if s.mirror != nil {
				return s.mirror.Create(ctx, record)
			}
			return nil
		}}
		if err := s.pool.SubmitJob(job); err != nil {
			slog.Warn("scan persistence skipped", "scan_id", record.ID, "error", err)
		}
	}

	if s.publisher != nil {
		event := models.ScanEvent{
			ScanID:     record.ID.String(),
			Disease:    record.DiseaseLabel,
			Confidence: record.Confidence,
			ScannedAt:  record.ScannedAt,
		}
		err := s.pool.SubmitJob(worker.Job{Name: "scan-event", Run: func(ctx context.Context) error {
			return s.publisher.PublishScan(ctx, event)
		}})
		if err != nil {
			slog.Warn("scan event skipped", "scan_id", record.ID, "error", err)
		}
	}
}

func (s *ScanService) History(limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = HistoryViewSize
	}
	return s.scanLog.Tail(limit)
}
