package services

import (
	"context"
	"fmt"
	"log/slog"

	"agrivision-service/internal/directory"
	"agrivision-service/internal/models"
)

type IConsultationService interface {
	Consult(ctx context.Context, req models.ConsultationRequest) (*models.ConsultationResponse, error)
}

// ConsultationService runs advice, speech, videos and the expert link in
// sequence. Each step is isolated: its failure lands in its own section.
type ConsultationService struct {
	advice    IAdviceService
	speech    ISpeechService
	videos    IVideoService
	directory IDirectoryService
}

func NewConsultationService(advice IAdviceService, speech ISpeechService, videos IVideoService, directory IDirectoryService) *ConsultationService {
	return &ConsultationService{
		advice:    advice,
		speech:    speech,
		videos:    videos,
		directory: directory,
	}
}

func (s *ConsultationService) Consult(ctx context.Context, req models.ConsultationRequest) (*models.ConsultationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !directory.IsSupportedLanguage(req.Language) {
		return nil, models.NewValidationError("language", "unsupported language: "+req.Language)
	}

	resp := &models.ConsultationResponse{
		Disease:  req.Disease,
		Language: req.Language,
	}

	text, err := s.advice.Advise(ctx, req.Disease, req.Language)
	if err != nil {
		slog.Warn("advice unavailable", "disease", req.Disease, "language", req.Language, "error", err)
		resp.Advice.Error = sectionError("AI advice", err)
		resp.Voice.Error = "Voice advice skipped: no advice text."
	} else {
		resp.Advice.Text = text
		code := directory.LanguageCode(req.Language)
		voice, err := s.speech.Render(ctx, text, code)
		if err != nil {
			slog.Warn("voice rendering failed", "language_code", code, "error", err)
			resp.Voice = models.VoiceSection{LanguageCode: code, Error: "Voice advice not available for this language right now."}
		} else {
			resp.Voice = *voice
		}
	}

	resp.Videos.Heading = fmt.Sprintf("%s Video Guides for %s", req.Language, req.Disease)
	videos, err := s.videos.Recommend(ctx, req.Disease, req.Language)
	switch {
	case err != nil:
		slog.Warn("video search failed", "error", err)
		resp.Videos.Items = []models.VideoResult{}
		resp.Videos.Error = "Video search is temporarily unavailable."
	case len(videos) == 0:
		resp.Videos.Items = []models.VideoResult{}
		resp.Videos.Info = fmt.Sprintf("No specific %s videos found.", req.Language)
	default:
		resp.Videos.Items = videos
	}

	resp.Expert = s.directory.ExpertContact(req.Disease)
	return resp, nil
}

func sectionError(section string, err error) string {
	switch {
	case models.IsConfigurationError(err):
		return section + " is not configured on this server."
	case models.IsRemoteServiceError(err):
		return section + " service is unreachable. Please try again."
	default:
		return fmt.Sprintf("%s failed: %v", section, err)
	}
}
