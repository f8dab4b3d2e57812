package repository

import (
	"log/slog"

	"agrivision-service/internal/models"
)

var ScanLogHeader = []string{"Date", "Disease", "Confidence"}

// ScanLogRepository owns the scan history log. It is the only writer.
type ScanLogRepository struct {
	log *CSVLog
}

func NewScanLogRepository(path string) *ScanLogRepository {
	return &ScanLogRepository{log: NewCSVLog(path, ScanLogHeader)}
}

func (r *ScanLogRepository) Append(record models.ScanRecord) error {
	entry := record.HistoryEntry()
	if err := r.log.Append([]string{entry.Date, entry.Disease, entry.Confidence}); err != nil {
		slog.Error("failed to append scan history", "path", r.log.Path(), "error", err)
		return err
	}
	return nil
}

func (r *ScanLogRepository) ReadAll() ([]models.HistoryEntry, error) {
	rows, err := r.log.ReadAll()
	if err != nil {
		return nil, err
	}

	entries := make([]models.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		if len(row) < len(ScanLogHeader) {
			continue
		}
		entries = append(entries, models.HistoryEntry{Date: row[0], Disease: row[1], Confidence: row[2]})
	}
	return entries, nil
}

// Tail returns the last n entries, oldest first.
func (r *ScanLogRepository) Tail(n int) ([]models.HistoryEntry, error) {
	entries, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if n >= 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}
