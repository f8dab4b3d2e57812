package classifier

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"agrivision-service/internal/imaging"
	"agrivision-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// HELPERS
// ============================================================================

type fakeBackend struct {
	logits []float64
	err    error
	calls  atomic.Int32
}

func (f *fakeBackend) Logits(ctx context.Context, tensor *imaging.Tensor) ([]float64, error) {
	f.calls.Add(1)
	return f.logits, f.err
}

func writeCheckpoint(t *testing.T, config string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(config), 0o644))
	return dir
}

const threeLabelConfig = `{
	"model_type": "vit",
	"id2label": {"0": "Healthy", "1": "Leaf Blight", "2": "Rust"}
}`

func blankTensor() *imaging.Tensor {
	return &imaging.Tensor{
		Shape: [3]int{imaging.Channels, imaging.InputSize, imaging.InputSize},
		Data:  make([]float32, imaging.Channels*imaging.InputSize*imaging.InputSize),
	}
}

// ============================================================================
// CHECKPOINT
// ============================================================================

func TestLoadCheckpoint_ReadsLabelsInIndexOrder(t *testing.T) {
	dir := writeCheckpoint(t, threeLabelConfig)

	cp, err := LoadCheckpoint(dir)
	require.NoError(t, err)

	assert.Equal(t, "vit", cp.ModelType)
	require.Len(t, cp.Labels, 3)
	assert.Equal(t, "Healthy", cp.Labels[0].Name)
	assert.Equal(t, "Leaf Blight", cp.Labels[1].Name)
	assert.Equal(t, 2, cp.Labels[2].Index)
}

func TestLoadCheckpoint_MissingDirectory(t *testing.T) {
	_, err := LoadCheckpoint(filepath.Join(t.TempDir(), "does-not-exist"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrModelNotFound))
	assert.True(t, models.IsModelUnavailable(err))
}

func TestLoadCheckpoint_MissingConfigFile(t *testing.T) {
	_, err := LoadCheckpoint(t.TempDir())

	assert.True(t, errors.Is(err, models.ErrModelNotFound))
}

func TestLoadCheckpoint_RejectsBadLabelMaps(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{"invalid json", `{"id2label":`},
		{"empty map", `{"id2label": {}}`},
		{"non numeric id", `{"id2label": {"zero": "Healthy"}}`},
		{"gap in ids", `{"id2label": {"0": "Healthy", "2": "Rust"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCheckpoint(writeCheckpoint(t, tt.config))
			require.Error(t, err)
			assert.True(t, models.IsModelUnavailable(err))
			assert.False(t, errors.Is(err, models.ErrModelNotFound))
		})
	}
}

// ============================================================================
// SOFTMAX
// ============================================================================

func TestSoftmax_SumsToOne(t *testing.T) {
	probs := Softmax([]float64{2.0, 1.0, 0.1, -3.5})

	sum := 0.0
	for _, p := range probs {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestSoftmax_LargeLogitsDoNotOverflow(t *testing.T) {
	probs := Softmax([]float64{1000, 1000})

	assert.InDelta(t, 0.5, probs[0], 1e-9)
	assert.InDelta(t, 0.5, probs[1], 1e-9)
}

func TestSoftmax_DoesNotMutateInput(t *testing.T) {
	logits := []float64{1, 2, 3}
	Softmax(logits)
	assert.Equal(t, []float64{1, 2, 3}, logits)
}

func TestSoftmax_Empty(t *testing.T) {
	assert.Nil(t, Softmax(nil))
}

// ============================================================================
// CLASSIFY
// ============================================================================

func TestClassify_ReturnsArgMax(t *testing.T) {
	backend := &fakeBackend{logits: []float64{0.1, 4.2, 1.3}}
	c := NewClassifier(writeCheckpoint(t, threeLabelConfig), backend)

	pred, err := c.Classify(context.Background(), blankTensor())
	require.NoError(t, err)

	assert.Equal(t, "Leaf Blight", pred.Label)
	assert.Equal(t, 1, pred.Index)
	assert.Greater(t, pred.Confidence, 0.9)
	assert.LessOrEqual(t, pred.Confidence, 1.0)
}

func TestClassify_DeterministicForSameInput(t *testing.T) {
	backend := &fakeBackend{logits: []float64{0.3, 0.2, 0.9}}
	c := NewClassifier(writeCheckpoint(t, threeLabelConfig), backend)

	first, err := c.Classify(context.Background(), blankTensor())
	require.NoError(t, err)
	second, err := c.Classify(context.Background(), blankTensor())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestClassify_ModelMissingNeverCallsBackend(t *testing.T) {
	backend := &fakeBackend{logits: []float64{1}}
	c := NewClassifier(filepath.Join(t.TempDir(), "missing"), backend)

	_, err := c.Classify(context.Background(), blankTensor())

	assert.True(t, models.IsModelUnavailable(err))
	assert.False(t, c.Available())
	assert.Equal(t, int32(0), backend.calls.Load())
}

func TestClassify_LoadsCheckpointOnce(t *testing.T) {
	dir := writeCheckpoint(t, threeLabelConfig)
	c := NewClassifier(dir, &fakeBackend{logits: []float64{1, 2, 3}})

	require.True(t, c.Available())
	require.NoError(t, os.RemoveAll(dir))

	_, err := c.Classify(context.Background(), blankTensor())
	assert.NoError(t, err)
}

func TestClassify_LogitCountMismatch(t *testing.T) {
	c := NewClassifier(writeCheckpoint(t, threeLabelConfig), &fakeBackend{logits: []float64{1, 2}})

	_, err := c.Classify(context.Background(), blankTensor())

	assert.True(t, models.IsRemoteServiceError(err))
}

func TestClassify_BackendFailure(t *testing.T) {
	c := NewClassifier(writeCheckpoint(t, threeLabelConfig), &fakeBackend{err: errors.New("connection refused")})

	_, err := c.Classify(context.Background(), blankTensor())

	assert.True(t, models.IsRemoteServiceError(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestLabels_ReturnsCopy(t *testing.T) {
	c := NewClassifier(writeCheckpoint(t, threeLabelConfig), &fakeBackend{})

	labels, err := c.Labels()
	require.NoError(t, err)
	labels[0].Name = "changed"

	again, _ := c.Labels()
	assert.Equal(t, "Healthy", again[0].Name)
}

// ============================================================================
// KSERVE BACKEND
// ============================================================================

func TestKServeBackend_PostsTensorAndReadsLogits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/models/crop-vit/infer", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model_name":"crop-vit","outputs":[{"name":"logits","shape":[1,3],"datatype":"FP32","data":[0.5,1.5,-2]}]}`))
	}))
	defer server.Close()

	backend := NewKServeBackend(server.URL+"/", "crop-vit", 5*time.Second)
	logits, err := backend.Logits(context.Background(), blankTensor())

	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1.5, -2}, logits)
}

func TestKServeBackend_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewKServeBackend(server.URL, "crop-vit", time.Second).Logits(context.Background(), blankTensor())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestKServeBackend_NoLogitsOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"outputs":[]}`))
	}))
	defer server.Close()

	_, err := NewKServeBackend(server.URL, "crop-vit", time.Second).Logits(context.Background(), blankTensor())

	assert.Error(t, err)
}
