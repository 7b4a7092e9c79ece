package model

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/chandlerpc/SignSpeak/internal/domain/entity"
)

// Metadata describes the exported model's tensor contract.
type Metadata struct {
	InputShape  []int64 `json:"input_shape"`
	OutputShape []int64 `json:"output_shape"`
	ImageSize   int     `json:"image_size"`
}

// ONNXModel is the loaded classifier backed by an onnxruntime
// session. The session reuses fixed input/output tensors, so Infer
// serializes access with a mutex; concurrent callers are safe but run
// one at a time.
type ONNXModel struct {
	mu           sync.Mutex
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
	inputShape   entity.Shape
}

// NewONNXModel loads the model artifact and its metadata. Any failure
// here is fatal to startup; the service must not come up half-loaded.
func NewONNXModel(modelPath, metadataPath string) (*ONNXModel, error) {
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}

	metaFile, err := os.ReadFile(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read model metadata: %w", err)
	}

	var metadata Metadata
	if err := json.Unmarshal(metaFile, &metadata); err != nil {
		return nil, fmt.Errorf("failed to parse model metadata: %w", err)
	}
	if len(metadata.InputShape) == 0 || len(metadata.OutputShape) == 0 {
		return nil, fmt.Errorf("model metadata missing input or output shape")
	}

	inputShape := ort.NewShape(metadata.InputShape...)
	outputShape := ort.NewShape(metadata.OutputShape...)

	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"input"}, []string{"output"},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &ONNXModel{
		session:      session,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
		inputShape:   shapeFromInt64(metadata.InputShape),
	}, nil
}

// InputShape returns the batch-inclusive input shape from metadata.
func (m *ONNXModel) InputShape() entity.Shape {
	return m.inputShape
}

// Infer runs the session on a normalized tensor and returns a copy of
// the per-class scores for the single batch element.
func (m *ONNXModel) Infer(ctx context.Context, t *entity.Tensor) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	input := m.inputTensor.GetData()
	if len(t.Data) != len(input) {
		return nil, fmt.Errorf("input has %d values, model expects %d", len(t.Data), len(input))
	}
	copy(input, t.Data)

	if err := m.session.Run(); err != nil {
		return nil, fmt.Errorf("session run failed: %w", err)
	}

	// Copy out under the lock; the output tensor is reused by the
	// next invocation.
	output := m.outputTensor.GetData()
	scores := make([]float32, len(output))
	copy(scores, output)
	return scores, nil
}

// Close releases the session and tensors.
func (m *ONNXModel) Close() {
	if m.inputTensor != nil {
		m.inputTensor.Destroy()
	}
	if m.outputTensor != nil {
		m.outputTensor.Destroy()
	}
	if m.session != nil {
		m.session.Destroy()
	}
	ort.DestroyEnvironment()
}

func shapeFromInt64(dims []int64) entity.Shape {
	shape := make(entity.Shape, len(dims))
	for i, d := range dims {
		shape[i] = int(d)
	}
	return shape
}
