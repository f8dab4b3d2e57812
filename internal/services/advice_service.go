package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"agrivision-service/internal/ai/gemini"
	"agrivision-service/internal/directory"
	"agrivision-service/internal/metrics"
	"agrivision-service/internal/models"
)

const adviceServiceName = "advice"

type IAdviceService interface {
	Advise(ctx context.Context, disease, language string) (string, error)
}

type AdviceService struct {
	generator TextGenerator
}

// NewAdviceService accepts a nil generator when no credential is configured;
// every Advise call then fails with a ConfigurationError.
func NewAdviceService(generator TextGenerator) *AdviceService {
	return &AdviceService{generator: generator}
}

func (s *AdviceService) Advise(ctx context.Context, disease, language string) (string, error) {
	if strings.TrimSpace(disease) == "" {
		return "", models.NewValidationError("disease", "is required")
	}
	if !directory.IsSupportedLanguage(language) {
		return "", models.NewValidationError("language", "unsupported language: "+language)
	}
	if s.generator == nil {
		return "", &models.ConfigurationError{Setting: "GEMINI_KEY", Message: "chat completion credential is not configured"}
	}

	text, err := s.generator.GenerateText(ctx, gemini.BuildTreatmentPrompt(disease, language))
	if err != nil {
		metrics.AdapterFailures.WithLabelValues(adviceServiceName).Inc()
		if errors.Is(err, gemini.ErrNoClients) {
			return "", &models.ConfigurationError{Setting: "GEMINI_KEY", Message: "no usable chat completion client"}
		}
		return "", models.NewRemoteServiceError(adviceServiceName, err)
	}
	if strings.TrimSpace(text) == "" {
		metrics.AdapterFailures.WithLabelValues(adviceServiceName).Inc()
		return "", models.NewRemoteServiceError(adviceServiceName, errors.New("empty completion"))
	}

	slog.Info("advice generated", "disease", disease, "language", language, "length", len(text))
	return text, nil
}
