// Package classifier adapts a pretrained leaf disease model to a single
// classify operation.
package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"agrivision-service/internal/imaging"
	"agrivision-service/internal/models"

	"gonum.org/v1/gonum/floats"
)

// Classifier loads its checkpoint lazily, exactly once per process, and is
// safe for concurrent use afterwards.
type Classifier struct {
	modelPath string
	backend   InferenceBackend

	once       sync.Once
	checkpoint *Checkpoint
	loadErr    error
}

func NewClassifier(modelPath string, backend InferenceBackend) *Classifier {
	return &Classifier{
		modelPath: modelPath,
		backend:   backend,
	}
}

// Load returns the memoized checkpoint. A failed load is remembered as well,
// so a missing model keeps reporting unavailability without retrying.
func (c *Classifier) Load() (*Checkpoint, error) {
	c.once.Do(func() {
		c.checkpoint, c.loadErr = LoadCheckpoint(c.modelPath)
		if c.loadErr != nil {
			slog.Error("model checkpoint unavailable, classification disabled", "path", c.modelPath, "error", c.loadErr)
			return
		}
		slog.Info("model checkpoint loaded", "path", c.modelPath, "model_type", c.checkpoint.ModelType, "labels", len(c.checkpoint.Labels))
	})
	return c.checkpoint, c.loadErr
}

// Ready returns the memoized load error, nil when classification is possible.
func (c *Classifier) Ready() error {
	_, err := c.Load()
	return err
}

func (c *Classifier) Available() bool {
	return c.Ready() == nil
}

func (c *Classifier) Labels() ([]models.DiseaseLabel, error) {
	cp, err := c.Load()
	if err != nil {
		return nil, err
	}
	out := make([]models.DiseaseLabel, len(cp.Labels))
	copy(out, cp.Labels)
	return out, nil
}

// Classify runs inference and returns the most probable label.
func (c *Classifier) Classify(ctx context.Context, tensor *imaging.Tensor) (models.Prediction, error) {
	cp, err := c.Load()
	if err != nil {
		return models.Prediction{}, err
	}

	logits, err := c.backend.Logits(ctx, tensor)
	if err != nil {
		return models.Prediction{}, models.NewRemoteServiceError("inference", err)
	}
	if len(logits) != len(cp.Labels) {
		return models.Prediction{}, models.NewRemoteServiceError("inference",
			fmt.Errorf("got %d logits for %d labels", len(logits), len(cp.Labels)))
	}

	probs := Softmax(logits)
	idx := floats.MaxIdx(probs)

	return models.Prediction{
		Label:      cp.Labels[idx].Name,
		Index:      idx,
		Confidence: probs[idx],
	}, nil
}

// Softmax turns logits into a probability distribution. The maximum logit is
// subtracted first so large scores do not overflow.
func Softmax(logits []float64) []float64 {
	if len(logits) == 0 {
		return nil
	}
	probs := make([]float64, len(logits))
	copy(probs, logits)

	floats.AddConst(-floats.Max(probs), probs)
	for i, v := range probs {
		probs[i] = math.Exp(v)
	}
	floats.Scale(1/floats.Sum(probs), probs)
	return probs
}
