package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// HistoryTimeLayout is the human readable timestamp stored in the CSV logs.
const HistoryTimeLayout = "2006-01-02 15:04:05"

// DiseaseLabel is one entry of the classifier's closed label vocabulary.
type DiseaseLabel struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// Prediction is the arg-max of the classifier's probability distribution.
type Prediction struct {
	Label      string  `json:"label"`
	Index      int     `json:"index"`
	Confidence float64 `json:"confidence"`
}

// ConfidencePercent renders the confidence with two decimals and a trailing %.
func (p Prediction) ConfidencePercent() string {
	return FormatConfidence(p.Confidence)
}

func FormatConfidence(confidence float64) string {
	return fmt.Sprintf("%.2f%%", confidence*100)
}

// ScanRecord is created on every successful classification and never updated.
type ScanRecord struct {
	ID           uuid.UUID `json:"id" db:"id"`
	ScannedAt    time.Time `json:"scanned_at" db:"scanned_at"`
	DiseaseLabel string    `json:"disease_label" db:"disease_label"`
	Confidence   float64   `json:"confidence" db:"confidence"`
	ImageObject  *string   `json:"image_object,omitempty" db:"image_object"`
}

func NewScanRecord(prediction Prediction, at time.Time) ScanRecord {
	return ScanRecord{
		ID:           uuid.New(),
		ScannedAt:    at,
		DiseaseLabel: prediction.Label,
		Confidence:   prediction.Confidence,
	}
}

// HistoryEntry is one row of the persisted scan log as it is displayed.
type HistoryEntry struct {
	Date       string `json:"date"`
	Disease    string `json:"disease"`
	Confidence string `json:"confidence"`
}

func (r ScanRecord) HistoryEntry() HistoryEntry {
	return HistoryEntry{
		Date:       r.ScannedAt.Format(HistoryTimeLayout),
		Disease:    r.DiseaseLabel,
		Confidence: FormatConfidence(r.Confidence),
	}
}

type ScanResponse struct {
	ScanID            uuid.UUID `json:"scan_id"`
	Disease           string    `json:"disease"`
	ClassIndex        int       `json:"class_index"`
	Confidence        float64   `json:"confidence"`
	ConfidencePercent string    `json:"confidence_percent"`
	ScannedAt         time.Time `json:"scanned_at"`
	LogError          string    `json:"log_error,omitempty"`
}

// ScanEvent is published to the message broker after each classification.
type ScanEvent struct {
	ScanID     string    `json:"scan_id"`
	Disease    string    `json:"disease"`
	Confidence float64   `json:"confidence"`
	ScannedAt  time.Time `json:"scanned_at"`
}
