package services

import (
	"context"
	"fmt"

	"agrivision-service/internal/models"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// YouTubeSearcher searches videos through the YouTube Data API v3.
type YouTubeSearcher struct {
	service *youtube.Service
}

func NewYouTubeSearcher(ctx context.Context, apiKey string, opts ...option.ClientOption) (*YouTubeSearcher, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("youtube client init failed: %w", err)
	}
	return &YouTubeSearcher{service: svc}, nil
}

func (y *YouTubeSearcher) Search(ctx context.Context, query string, limit int64) ([]models.VideoResult, error) {
	resp, err := y.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(limit).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search failed: %w", err)
	}

	results := make([]models.VideoResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		results = append(results, models.VideoResult{
			Title:     item.Snippet.Title,
			Thumbnail: thumbnailURL(item.Snippet.Thumbnails),
			Link:      "https://www.youtube.com/watch?v=" + item.Id.VideoId,
		})
	}
	return results, nil
}

func thumbnailURL(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, thumb := range []*youtube.Thumbnail{t.Default, t.Medium, t.High} {
		if thumb != nil && thumb.Url != "" {
			return thumb.Url
		}
	}
	return ""
}
