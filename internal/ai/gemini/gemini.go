package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrTruncated is returned when the model stopped at its output token limit.
var ErrTruncated = errors.New("response truncated at token limit")

type GeminiClient struct {
	Client *genai.Client
	Model  *genai.GenerativeModel
}

func NewGenAIClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("genai client init failed: %w", err)
	}

	// No output cap: on thinking models the cap also counts thinking tokens.
	// Length is bounded by the prompt.
	return &GeminiClient{
		Client: client,
		Model:  client.GenerativeModel(modelName),
	}, nil
}

// NewGenAIClients builds one client per API key. Keys that fail to initialize
// are skipped and logged.
func NewGenAIClients(ctx context.Context, apiKeys []string, modelName string) []GeminiClient {
	clients := make([]GeminiClient, 0, len(apiKeys))
	for i, key := range apiKeys {
		client, err := NewGenAIClient(ctx, key, modelName)
		if err != nil {
			slog.Error("failed to initialize Gemini client", "key_index", i, "error", err)
			continue
		}
		clients = append(clients, *client)
	}
	return clients
}

// GenerateText sends a single user turn and returns the first candidate's
// text parts joined together, untouched.
func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.Model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return responseText(resp)
}

// responseText extracts the text of the first candidate. A candidate cut off
// by the token limit is rejected rather than returned truncated.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", errors.New("no content returned from AI")
	}
	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonMaxTokens {
		return "", ErrTruncated
	}
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("no content returned from AI")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("response part is not text, received %T", candidate.Content.Parts[0])
	}
	return sb.String(), nil
}

func (g *GeminiClient) Close() error {
	if g.Client == nil {
		return nil
	}
	return g.Client.Close()
}
