package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chandlerpc/SignSpeak/internal/domain/entity"
	"github.com/chandlerpc/SignSpeak/internal/domain/service"
	"github.com/chandlerpc/SignSpeak/internal/infrastructure/metrics"
)

// Error definitions for the predict usecase
var (
	ErrMissingImage   = errors.New("request body missing image field")
	ErrMalformedImage = errors.New("image field is not a numeric array")
)

// InvalidShapeError reports a normalized tensor whose shape does not
// match the model's expected input shape.
type InvalidShapeError struct {
	Expected entity.Shape
	Actual   entity.Shape
}

func (e *InvalidShapeError) Error() string {
	return fmt.Sprintf("Invalid input shape. Expected %s, got %s", e.Expected, e.Actual)
}

// InferenceError reports a model invocation failure. The underlying
// cause is preserved for operator diagnosis.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed: %v", e.Err)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

// PredictOutput is the result of a successful prediction
type PredictOutput struct {
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
}

// PredictUsecase defines the interface for the inference pipeline
type PredictUsecase interface {
	// Predict validates and normalizes a raw JSON image payload,
	// runs inference and resolves the top prediction.
	Predict(ctx context.Context, rawImage json.RawMessage) (*PredictOutput, error)

	// PredictTensor runs the pipeline on an already-parsed tensor.
	PredictTensor(ctx context.Context, t *entity.Tensor) (*PredictOutput, error)
}

type predictUsecase struct {
	model        service.Model
	labels       *entity.LabelTable
	logger       *zap.Logger
	inferTimeout time.Duration
}

// NewPredictUsecase creates a new predict usecase. inferTimeout bounds
// a single model invocation; zero disables the deadline.
func NewPredictUsecase(model service.Model, labels *entity.LabelTable, logger *zap.Logger, inferTimeout time.Duration) PredictUsecase {
	return &predictUsecase{
		model:        model,
		labels:       labels,
		logger:       logger,
		inferTimeout: inferTimeout,
	}
}

func (u *predictUsecase) Predict(ctx context.Context, rawImage json.RawMessage) (*PredictOutput, error) {
	tensor, err := u.validate(rawImage)
	if err != nil {
		metrics.PredictionsTotal.WithLabelValues(metrics.OutcomeInvalidInput).Inc()
		return nil, err
	}
	return u.PredictTensor(ctx, tensor)
}

func (u *predictUsecase) PredictTensor(ctx context.Context, t *entity.Tensor) (*PredictOutput, error) {
	normalized, err := u.normalize(t)
	if err != nil {
		metrics.PredictionsTotal.WithLabelValues(metrics.OutcomeInvalidInput).Inc()
		return nil, err
	}

	output, err := u.resolve(ctx, normalized)
	if err != nil {
		metrics.PredictionsTotal.WithLabelValues(metrics.OutcomeInferenceError).Inc()
		return nil, err
	}

	metrics.PredictionsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return output, nil
}

// validate checks that the request carried an image field that parses
// as a nested numeric array. Shape correction happens later.
func (u *predictUsecase) validate(rawImage json.RawMessage) (*entity.Tensor, error) {
	if len(rawImage) == 0 {
		return nil, ErrMissingImage
	}

	tensor, err := entity.ParseTensor(rawImage)
	if err != nil {
		if errors.Is(err, entity.ErrNotNumeric) && string(rawImage) == "null" {
			return nil, ErrMissingImage
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedImage, err)
	}
	return tensor, nil
}

// normalize produces the exact batch-of-one tensor the model expects.
// A 3-D single frame gains a leading batch dimension; a 4-D tensor
// passes through unchanged. Anything else fails the shape check.
func (u *predictUsecase) normalize(t *entity.Tensor) (*entity.Tensor, error) {
	if t.Rank() == 3 {
		t = t.WithBatchDim()
	}

	expected := u.model.InputShape()
	if !t.Shape.Equal(expected) {
		return nil, &InvalidShapeError{Expected: expected, Actual: t.Shape}
	}
	return t, nil
}

// resolve invokes the model and maps the top score to a label.
func (u *predictUsecase) resolve(ctx context.Context, t *entity.Tensor) (*PredictOutput, error) {
	if u.inferTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.inferTimeout)
		defer cancel()
	}

	start := time.Now()
	scores, err := u.model.Infer(ctx, t)
	metrics.InferenceDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, &InferenceError{Err: err}
	}
	if len(scores) == 0 {
		return nil, &InferenceError{Err: errors.New("model returned empty output")}
	}

	// Argmax; ties resolve to the lowest index.
	maxIdx := 0
	maxVal := scores[0]
	for i, val := range scores {
		if val > maxVal {
			maxVal = val
			maxIdx = i
		}
	}

	label := u.labels.Resolve(maxIdx)
	confidence := float64(maxVal)

	u.logger.Info("prediction",
		zap.String("class", label),
		zap.Float64("confidence", confidence),
	)

	return &PredictOutput{
		Prediction: label,
		Confidence: confidence,
	}, nil
}
