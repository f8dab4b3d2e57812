package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"agrivision-service/internal/database/minio"
	"agrivision-service/internal/metrics"
	"agrivision-service/internal/models"

	"github.com/google/uuid"
)

const (
	speechServiceName = "speech"
	// maxSpeechChunk is the longest text the translate TTS endpoint accepts per request.
	maxSpeechChunk     = 100
	audioPresignExpiry = 24 * time.Hour
)

type ISpeechService interface {
	Synthesize(ctx context.Context, text, languageCode string) ([]byte, error)
	Render(ctx context.Context, text, languageCode string) (*models.VoiceSection, error)
}

type SpeechService struct {
	baseURL string
	tempDir string
	client  *http.Client
	store   ObjectStore
}

// NewSpeechService takes an optional object store; when set, rendered audio is
// also uploaded and exposed through a presigned URL.
func NewSpeechService(baseURL, tempDir string, timeout time.Duration, store ObjectStore) *SpeechService {
	return &SpeechService{
		baseURL: strings.TrimRight(baseURL, "/"),
		tempDir: tempDir,
		client:  &http.Client{Timeout: timeout},
		store:   store,
	}
}

// Synthesize returns MP3 bytes for text spoken in the given language code.
func (s *SpeechService) Synthesize(ctx context.Context, text, languageCode string) ([]byte, error) {
	chunks := SplitSpeechText(text, maxSpeechChunk)
	if len(chunks) == 0 {
		return nil, models.NewValidationError("text", "nothing to speak")
	}

	var audio bytes.Buffer
	for i, chunk := range chunks {
		part, err := s.fetchChunk(ctx, chunk, languageCode, i, len(chunks))
		if err != nil {
			metrics.AdapterFailures.WithLabelValues(speechServiceName).Inc()
			return nil, models.NewRemoteServiceError(speechServiceName, err)
		}
		audio.Write(part)
	}
	return audio.Bytes(), nil
}

func (s *SpeechService) fetchChunk(ctx context.Context, chunk, languageCode string, idx, total int) ([]byte, error) {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("client", "tw-ob")
	params.Set("tl", languageCode)
	params.Set("q", chunk)
	params.Set("idx", strconv.Itoa(idx))
	params.Set("total", strconv.Itoa(total))
	params.Set("textlen", strconv.Itoa(utf8.RuneCountInString(chunk)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/translate_tts?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Error("error fetching speech audio", "error", err)
		return nil, fmt.Errorf("failed to call TTS API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read TTS response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		slog.Error("TTS API returned non-200 status", "status", resp.StatusCode, "chunk", idx)
		return nil, fmt.Errorf("TTS API returned status %d", resp.StatusCode)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("TTS API returned empty audio")
	}
	return body, nil
}

// Render synthesizes text, spools it through a temp file and returns an
// embeddable audio player.
func (s *SpeechService) Render(ctx context.Context, text, languageCode string) (*models.VoiceSection, error) {
	audio, err := s.Synthesize(ctx, text, languageCode)
	if err != nil {
		return nil, err
	}

	f, err := os.CreateTemp(s.tempDir, "advice-*.mp3")
	if err != nil {
		return nil, fmt.Errorf("failed to create audio file: %w", err)
	}
	defer os.Remove(f.Name())
	defer f.Close()

	if _, err := f.Write(audio); err != nil {
		return nil, fmt.Errorf("failed to write audio file: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	saved, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}

	section := &models.VoiceSection{
		LanguageCode: languageCode,
		AudioHTML:    AudioHTML(saved),
	}

	if s.store != nil {
		objectName := fmt.Sprintf("%s/%s.mp3", languageCode, uuid.NewString())
		if err := s.store.UploadBytes(ctx, minio.Storage.AdviceAudio, objectName, saved, "audio/mpeg"); err != nil {
			slog.Warn("failed to archive advice audio", "error", err)
		} else if link, err := s.store.PresignedURL(ctx, minio.Storage.AdviceAudio, objectName, audioPresignExpiry); err == nil {
			section.AudioURL = link
		}
	}

	return section, nil
}

// AudioHTML embeds MP3 bytes in an HTML audio element as a base64 data URI.
func AudioHTML(audio []byte) string {
	return fmt.Sprintf(`<audio controls src="data:audio/mp3;base64,%s">`, base64.StdEncoding.EncodeToString(audio))
}

// SplitSpeechText splits text on whitespace into chunks of at most max runes.
// A single word longer than max is cut.
func SplitSpeechText(text string, max int) []string {
	var chunks []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, string(current))
			current = current[:0]
		}
	}

	for _, word := range strings.Fields(text) {
		w := []rune(word)
		for len(w) > max {
			flush()
			chunks = append(chunks, string(w[:max]))
			w = w[max:]
		}
		if len(w) == 0 {
			continue
		}

		needed := len(w)
		if len(current) > 0 {
			needed++
		}
		if len(current)+needed > max {
			flush()
		}
		if len(current) > 0 {
			current = append(current, ' ')
		}
		current = append(current, w...)
	}
	flush()
	return chunks
}
