package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chandlerpc/SignSpeak/internal/domain/entity"
)

// fakeModel returns canned scores without real inference
type fakeModel struct {
	inputShape entity.Shape
	scores     []float32
	err        error
	calls      int
}

func (m *fakeModel) Infer(_ context.Context, _ *entity.Tensor) ([]float32, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.scores, nil
}

func (m *fakeModel) InputShape() entity.Shape {
	return m.inputShape
}

func newTestUsecase(t *testing.T, model *fakeModel, labels []string) PredictUsecase {
	t.Helper()
	table, err := entity.NewLabelTable(labels)
	require.NoError(t, err)
	return NewPredictUsecase(model, table, zap.NewNop(), 5*time.Second)
}

// frame builds a JSON-encoded all-zero array of the given dimensions.
func frame(dims ...int) json.RawMessage {
	var build func(depth int) interface{}
	build = func(depth int) interface{} {
		if depth == len(dims) {
			return 0.0
		}
		arr := make([]interface{}, dims[depth])
		for i := range arr {
			arr[i] = build(depth + 1)
		}
		return arr
	}
	raw, _ := json.Marshal(build(0))
	return raw
}

func TestPredictUsecase_Predict(t *testing.T) {
	t.Run("predicts from 3D frame", func(t *testing.T) {
		model := &fakeModel{
			inputShape: entity.Shape{1, 4, 4, 3},
			scores:     []float32{0.1, 0.7, 0.2},
		}
		uc := newTestUsecase(t, model, []string{"A", "B", "C"})

		out, err := uc.Predict(context.Background(), frame(4, 4, 3))

		require.NoError(t, err)
		assert.Equal(t, "B", out.Prediction)
		assert.InDelta(t, 0.7, out.Confidence, 1e-6)
	})

	t.Run("predicts from pre-batched 4D frame", func(t *testing.T) {
		model := &fakeModel{
			inputShape: entity.Shape{1, 4, 4, 3},
			scores:     []float32{0.9, 0.1},
		}
		uc := newTestUsecase(t, model, []string{"A", "B"})

		out, err := uc.Predict(context.Background(), frame(1, 4, 4, 3))

		require.NoError(t, err)
		assert.Equal(t, "A", out.Prediction)
		assert.InDelta(t, 0.9, out.Confidence, 1e-6)
	})

	t.Run("confidence stays within probability bounds", func(t *testing.T) {
		model := &fakeModel{
			inputShape: entity.Shape{1, 4, 4, 3},
			scores:     []float32{0.25, 0.25, 0.5},
		}
		uc := newTestUsecase(t, model, []string{"A", "B", "C"})

		out, err := uc.Predict(context.Background(), frame(4, 4, 3))

		require.NoError(t, err)
		assert.GreaterOrEqual(t, out.Confidence, 0.0)
		assert.LessOrEqual(t, out.Confidence, 1.0)
		assert.NotEmpty(t, out.Prediction)
	})

	t.Run("argmax ties resolve to lowest index", func(t *testing.T) {
		model := &fakeModel{
			inputShape: entity.Shape{1, 4, 4, 3},
			scores:     []float32{0.5, 0.5},
		}
		uc := newTestUsecase(t, model, []string{"A", "B"})

		out, err := uc.Predict(context.Background(), frame(4, 4, 3))

		require.NoError(t, err)
		assert.Equal(t, "A", out.Prediction)
	})

	t.Run("is deterministic for identical input", func(t *testing.T) {
		model := &fakeModel{
			inputShape: entity.Shape{1, 4, 4, 3},
			scores:     []float32{0.2, 0.8},
		}
		uc := newTestUsecase(t, model, []string{"A", "B"})

		first, err := uc.Predict(context.Background(), frame(4, 4, 3))
		require.NoError(t, err)
		second, err := uc.Predict(context.Background(), frame(4, 4, 3))
		require.NoError(t, err)

		assert.Equal(t, first.Prediction, second.Prediction)
		assert.Equal(t, first.Confidence, second.Confidence)
		assert.Equal(t, 2, model.calls)
	})

	t.Run("synthesizes label for out-of-range index", func(t *testing.T) {
		model := &fakeModel{
			inputShape: entity.Shape{1, 4, 4, 3},
			// Index 3 wins but the table only has 2 labels
			scores: []float32{0.1, 0.1, 0.1, 0.7},
		}
		uc := newTestUsecase(t, model, []string{"A", "B"})

		out, err := uc.Predict(context.Background(), frame(4, 4, 3))

		require.NoError(t, err)
		assert.Equal(t, "UNKNOWN_CLASS_3", out.Prediction)
		assert.InDelta(t, 0.7, out.Confidence, 1e-6)
	})

	t.Run("rejects missing image", func(t *testing.T) {
		model := &fakeModel{inputShape: entity.Shape{1, 4, 4, 3}}
		uc := newTestUsecase(t, model, []string{"A"})

		_, err := uc.Predict(context.Background(), nil)

		assert.ErrorIs(t, err, ErrMissingImage)
		assert.Zero(t, model.calls)
	})

	t.Run("rejects null image", func(t *testing.T) {
		model := &fakeModel{inputShape: entity.Shape{1, 4, 4, 3}}
		uc := newTestUsecase(t, model, []string{"A"})

		_, err := uc.Predict(context.Background(), json.RawMessage(`null`))

		assert.ErrorIs(t, err, ErrMissingImage)
	})

	t.Run("rejects non-numeric image", func(t *testing.T) {
		model := &fakeModel{inputShape: entity.Shape{1, 4, 4, 3}}
		uc := newTestUsecase(t, model, []string{"A"})

		_, err := uc.Predict(context.Background(), json.RawMessage(`"hello"`))

		assert.ErrorIs(t, err, ErrMalformedImage)
	})

	t.Run("rejects wrong channel count with both shapes in message", func(t *testing.T) {
		model := &fakeModel{inputShape: entity.Shape{1, 160, 160, 3}}
		uc := newTestUsecase(t, model, []string{"A"})

		_, err := uc.Predict(context.Background(), frame(1, 160, 160, 4))

		var shapeErr *InvalidShapeError
		require.ErrorAs(t, err, &shapeErr)
		assert.Equal(t, "Invalid input shape. Expected (1, 160, 160, 3), got (1, 160, 160, 4)", err.Error())
		assert.Zero(t, model.calls)
	})

	t.Run("rejects 2D input", func(t *testing.T) {
		model := &fakeModel{inputShape: entity.Shape{1, 4, 4, 3}}
		uc := newTestUsecase(t, model, []string{"A"})

		_, err := uc.Predict(context.Background(), frame(4, 4))

		var shapeErr *InvalidShapeError
		assert.ErrorAs(t, err, &shapeErr)
	})

	t.Run("wraps model failure as inference error", func(t *testing.T) {
		cause := errors.New("tensor size mismatch")
		model := &fakeModel{
			inputShape: entity.Shape{1, 4, 4, 3},
			err:        cause,
		}
		uc := newTestUsecase(t, model, []string{"A"})

		_, err := uc.Predict(context.Background(), frame(4, 4, 3))

		var infErr *InferenceError
		require.ErrorAs(t, err, &infErr)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "tensor size mismatch")
	})

	t.Run("treats empty model output as inference error", func(t *testing.T) {
		model := &fakeModel{
			inputShape: entity.Shape{1, 4, 4, 3},
			scores:     []float32{},
		}
		uc := newTestUsecase(t, model, []string{"A"})

		_, err := uc.Predict(context.Background(), frame(4, 4, 3))

		var infErr *InferenceError
		assert.ErrorAs(t, err, &infErr)
	})
}
