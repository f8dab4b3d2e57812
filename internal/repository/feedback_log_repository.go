package repository

import (
	"log/slog"
	"strconv"

	"agrivision-service/internal/models"
)

var FeedbackLogHeader = []string{"Date", "Name", "Type", "Rating", "Comments"}

type FeedbackLogRepository struct {
	log *CSVLog
}

func NewFeedbackLogRepository(path string) *FeedbackLogRepository {
	return &FeedbackLogRepository{log: NewCSVLog(path, FeedbackLogHeader)}
}

func (r *FeedbackLogRepository) Append(record models.FeedbackRecord) error {
	row := []string{
		record.SubmittedAt.Format(models.HistoryTimeLayout),
		record.Name,
		string(record.UserType),
		strconv.Itoa(record.Rating),
		record.Comments,
	}
	if err := r.log.Append(row); err != nil {
		slog.Error("failed to append feedback", "path", r.log.Path(), "error", err)
		return err
	}
	return nil
}
