package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"agrivision-service/internal/imaging"
)

// InferenceBackend runs the forward pass of the checkpoint's weights and
// returns one raw logit per label.
type InferenceBackend interface {
	Logits(ctx context.Context, tensor *imaging.Tensor) ([]float64, error)
}

// KServeBackend talks the KServe / Triton v2 REST inference protocol.
type KServeBackend struct {
	baseURL   string
	modelName string
	client    *http.Client
}

func NewKServeBackend(baseURL, modelName string, timeout time.Duration) *KServeBackend {
	return &KServeBackend{
		baseURL:   strings.TrimRight(baseURL, "/"),
		modelName: modelName,
		client:    &http.Client{Timeout: timeout},
	}
}

type inferTensor struct {
	Name     string    `json:"name"`
	Shape    []int     `json:"shape"`
	Datatype string    `json:"datatype"`
	Data     []float32 `json:"data"`
}

type inferRequest struct {
	Inputs []inferTensor `json:"inputs"`
}

type inferOutput struct {
	Name     string    `json:"name"`
	Shape    []int     `json:"shape"`
	Datatype string    `json:"datatype"`
	Data     []float64 `json:"data"`
}

type inferResponse struct {
	ModelName string        `json:"model_name"`
	Outputs   []inferOutput `json:"outputs"`
}

func (b *KServeBackend) Logits(ctx context.Context, tensor *imaging.Tensor) ([]float64, error) {
	body, err := json.Marshal(inferRequest{
		Inputs: []inferTensor{{
			Name:     "pixel_values",
			Shape:    []int{1, tensor.Shape[0], tensor.Shape[1], tensor.Shape[2]},
			Datatype: "FP32",
			Data:     tensor.Data,
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode inference request: %w", err)
	}

	url := fmt.Sprintf("%s/v2/models/%s/infer", b.baseURL, b.modelName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		slog.Error("inference request failed", "model", b.modelName, "error", err)
		return nil, fmt.Errorf("failed to call inference server: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read inference response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		slog.Error("inference server returned non-200 status", "status", resp.StatusCode, "body", string(respBody))
		return nil, fmt.Errorf("inference server returned status %d", resp.StatusCode)
	}

	var parsed inferResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse inference response: %w", err)
	}

	for _, out := range parsed.Outputs {
		if out.Name == "logits" {
			return out.Data, nil
		}
	}
	if len(parsed.Outputs) == 1 {
		return parsed.Outputs[0].Data, nil
	}
	return nil, fmt.Errorf("inference response has no logits output")
}
