package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"agrivision-service/internal/models"
)

const checkpointConfigFile = "config.json"

// Checkpoint is the metadata of a pretrained image classification model saved
// in the Hugging Face layout. Weights are served by the inference backend.
type Checkpoint struct {
	Path      string
	ModelType string
	Labels    []models.DiseaseLabel
}

type checkpointConfig struct {
	ModelType string            `json:"model_type"`
	ID2Label  map[string]string `json:"id2label"`
}

// LoadCheckpoint reads the label vocabulary from dir/config.json.
func LoadCheckpoint(dir string) (*Checkpoint, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, &models.ModelUnavailableError{Path: dir, Err: models.ErrModelNotFound}
	}

	raw, err := os.ReadFile(filepath.Join(dir, checkpointConfigFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &models.ModelUnavailableError{Path: dir, Err: models.ErrModelNotFound}
		}
		return nil, &models.ModelUnavailableError{Path: dir, Err: err}
	}

	var cfg checkpointConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, &models.ModelUnavailableError{Path: dir, Err: fmt.Errorf("invalid %s: %w", checkpointConfigFile, err)}
	}

	labels, err := parseLabels(cfg.ID2Label)
	if err != nil {
		return nil, &models.ModelUnavailableError{Path: dir, Err: err}
	}

	return &Checkpoint{Path: dir, ModelType: cfg.ModelType, Labels: labels}, nil
}

// parseLabels requires the ids to be exactly 0..n-1.
func parseLabels(id2label map[string]string) ([]models.DiseaseLabel, error) {
	if len(id2label) == 0 {
		return nil, errors.New("id2label is empty")
	}

	labels := make([]models.DiseaseLabel, 0, len(id2label))
	for key, name := range id2label {
		idx, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("invalid label id %q", key)
		}
		labels = append(labels, models.DiseaseLabel{Index: idx, Name: name})
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].Index < labels[j].Index })

	for i, l := range labels {
		if l.Index != i {
			return nil, fmt.Errorf("label ids are not contiguous: missing %d", i)
		}
	}
	return labels, nil
}
