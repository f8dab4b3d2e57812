package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"agrivision-service/internal/metrics"
	"agrivision-service/internal/models"
	"agrivision-service/shared/utils"
)

const (
	videoServiceName = "video"
	VideoLimit       = 2
	videoTitleRunes  = 45
	videoCacheTTL    = 6 * time.Hour
)

type IVideoService interface {
	Recommend(ctx context.Context, disease, language string) ([]models.VideoResult, error)
}

type VideoService struct {
	searcher VideoSearcher
	cache    Cache
}

// NewVideoService accepts a nil searcher when no API key is configured and a
// nil cache when Redis is disabled.
func NewVideoService(searcher VideoSearcher, cache Cache) *VideoService {
	return &VideoService{searcher: searcher, cache: cache}
}

func VideoQuery(disease, language string) string {
	return fmt.Sprintf("%s treatment for farmers in %s", disease, language)
}

// Recommend returns at most two videos. An empty slice is a valid answer.
func (s *VideoService) Recommend(ctx context.Context, disease, language string) ([]models.VideoResult, error) {
	if s.searcher == nil {
		return nil, &models.ConfigurationError{Setting: "YOUTUBE_API_KEY", Message: "video search is not configured"}
	}

	query := VideoQuery(disease, language)
	cacheKey := strings.ToLower(query)

	if s.cache != nil {
		var cached []models.VideoResult
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			metrics.CacheHits.WithLabelValues(videoServiceName).Inc()
			return cached, nil
		}
	}

	raw, err := s.searcher.Search(ctx, query, VideoLimit)
	if err != nil {
		metrics.AdapterFailures.WithLabelValues(videoServiceName).Inc()
		slog.Error("video search failed", "query", query, "error", err)
		return nil, models.NewRemoteServiceError(videoServiceName, err)
	}

	if len(raw) > VideoLimit {
		raw = raw[:VideoLimit]
	}
	results := make([]models.VideoResult, 0, len(raw))
	for _, v := range raw {
		v.Title = utils.TruncateWithEllipsis(v.Title, videoTitleRunes)
		results = append(results, v)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, results, videoCacheTTL); err != nil {
			slog.Warn("failed to cache video results", "error", err)
		}
	}
	return results, nil
}
