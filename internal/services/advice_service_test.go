package services

import (
	"context"
	"errors"
	"testing"

	"agrivision-service/internal/ai/gemini"
	"agrivision-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvise_SendsTreatmentPromptAndReturnsTextUnmodified(t *testing.T) {
	gen := &fakeGenerator{text: "  Spray copper fungicide.\n"}
	svc := NewAdviceService(gen)

	text, err := svc.Advise(context.Background(), "Leaf Blight", "Hindi")

	require.NoError(t, err)
	assert.Equal(t, "  Spray copper fungicide.\n", text)
	require.Len(t, gen.prompts, 1)
	assert.Equal(t, "Professional agricultural treatment for Leaf Blight in Hindi. Limit to 60 words.", gen.prompts[0])
}

func TestAdvise_MissingCredentialNeverCallsOut(t *testing.T) {
	svc := NewAdviceService(nil)

	_, err := svc.Advise(context.Background(), "Leaf Blight", "English")

	assert.True(t, models.IsConfigurationError(err))
}

func TestAdvise_NoUsableClientsIsConfigurationError(t *testing.T) {
	svc := NewAdviceService(&fakeGenerator{err: gemini.ErrNoClients})

	_, err := svc.Advise(context.Background(), "Rust", "English")

	assert.True(t, models.IsConfigurationError(err))
}

func TestAdvise_RemoteFailure(t *testing.T) {
	svc := NewAdviceService(&fakeGenerator{err: errors.New("quota exceeded")})

	_, err := svc.Advise(context.Background(), "Rust", "English")

	assert.True(t, models.IsRemoteServiceError(err))
}

func TestAdvise_TruncatedCompletionIsRemoteFailure(t *testing.T) {
	svc := NewAdviceService(&fakeGenerator{text: "Spray copper fung", err: gemini.ErrTruncated})

	text, err := svc.Advise(context.Background(), "Rust", "Tamil")

	assert.True(t, models.IsRemoteServiceError(err))
	assert.ErrorIs(t, err, gemini.ErrTruncated)
	assert.Empty(t, text)
}

func TestAdvise_EmptyCompletionIsRemoteFailure(t *testing.T) {
	svc := NewAdviceService(&fakeGenerator{text: "   "})

	_, err := svc.Advise(context.Background(), "Rust", "English")

	assert.True(t, models.IsRemoteServiceError(err))
}

func TestAdvise_RejectsUnknownLanguage(t *testing.T) {
	gen := &fakeGenerator{text: "x"}
	svc := NewAdviceService(gen)

	_, err := svc.Advise(context.Background(), "Rust", "Klingon")

	assert.True(t, models.IsValidationError(err))
	assert.Empty(t, gen.prompts)
}
