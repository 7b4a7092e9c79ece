package service

import (
	"context"

	"github.com/chandlerpc/SignSpeak/internal/domain/entity"
)

// Model is the handle to a loaded classifier. Infer takes a
// batch-of-one input tensor and returns the per-class scores for that
// single batch element. Implementations must either be safe for
// concurrent use or serialize access internally.
type Model interface {
	// Infer runs the classifier on a normalized input tensor.
	Infer(ctx context.Context, t *entity.Tensor) ([]float32, error)

	// InputShape returns the exact input shape the model expects,
	// including the batch dimension.
	InputShape() entity.Shape
}
