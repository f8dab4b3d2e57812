package gemini

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

var ErrNoClients = errors.New("no Gemini clients available")

// GeminiClientSelector spreads requests over several API keys in round-robin
// order. A failed request is not retried on the next key.
type GeminiClientSelector struct {
	clients      []GeminiClient
	currentIndex int
	mutex        sync.Mutex
}

func NewGeminiClientSelector(clients []GeminiClient) *GeminiClientSelector {
	return &GeminiClientSelector{
		clients:      clients,
		currentIndex: 0,
	}
}

// GetNextClient returns the next client in round-robin order
func (s *GeminiClientSelector) GetNextClient() (*GeminiClient, int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.clients) == 0 {
		return nil, -1
	}

	client := &s.clients[s.currentIndex]
	index := s.currentIndex
	s.currentIndex = (s.currentIndex + 1) % len(s.clients)

	return client, index
}

func (s *GeminiClientSelector) GetClientCount() int {
	return len(s.clients)
}

// GenerateText implements the advice service's text generator.
func (s *GeminiClientSelector) GenerateText(ctx context.Context, prompt string) (string, error) {
	client, idx := s.GetNextClient()
	if client == nil {
		return "", ErrNoClients
	}

	slog.Info("sending Gemini request", "client_index", idx, "prompt_length", len(prompt))
	text, err := client.GenerateText(ctx, prompt)
	if err != nil {
		slog.Error("Gemini request failed", "client_index", idx, "error", err)
		return "", err
	}
	return text, nil
}

func (s *GeminiClientSelector) Close() {
	for i := range s.clients {
		if err := s.clients[i].Close(); err != nil {
			slog.Error("failed to close Gemini client", "client_index", i, "error", err)
		}
	}
}
