package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Parse errors for client-supplied tensors
var (
	ErrEmptyTensor   = errors.New("tensor has no elements")
	ErrRaggedTensor  = errors.New("tensor dimensions are not rectangular")
	ErrNotNumeric    = errors.New("tensor contains non-numeric values")
	ErrInvalidTensor = errors.New("tensor is not a valid nested numeric array")
)

// Shape describes the dimensions of a tensor, outermost first.
type Shape []int

// String formats the shape as "(1, 160, 160, 3)".
func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = fmt.Sprintf("%d", d)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Equal reports whether two shapes have identical dimensions.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Elements returns the total element count implied by the shape.
func (s Shape) Elements() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// Tensor is a multi-dimensional numeric array stored as a flat
// float32 slice in row-major order. A Tensor is built once from a
// request payload and never mutated afterwards.
type Tensor struct {
	Shape Shape
	Data  []float32
}

// ParseTensor builds a Tensor from a JSON-encoded nested numeric array.
// The nesting depth determines the shape; every level must be
// rectangular and every leaf must be a number.
func ParseTensor(raw json.RawMessage) (*Tensor, error) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTensor, err)
	}

	shape, err := measure(v)
	if err != nil {
		return nil, err
	}
	if shape.Elements() == 0 {
		return nil, ErrEmptyTensor
	}

	t := &Tensor{
		Shape: shape,
		Data:  make([]float32, 0, shape.Elements()),
	}
	if err := t.flatten(v, shape, 0); err != nil {
		return nil, err
	}
	return t, nil
}

// measure walks the first element at each nesting level to determine
// the shape. Rectangularity is verified later during flattening.
func measure(v interface{}) (Shape, error) {
	var shape Shape
	for {
		switch node := v.(type) {
		case []interface{}:
			if len(node) == 0 {
				return append(shape, 0), nil
			}
			shape = append(shape, len(node))
			v = node[0]
		case float64:
			return shape, nil
		default:
			return nil, ErrNotNumeric
		}
	}
}

func (t *Tensor) flatten(v interface{}, shape Shape, depth int) error {
	if depth == len(shape) {
		f, ok := v.(float64)
		if !ok {
			return ErrNotNumeric
		}
		t.Data = append(t.Data, float32(f))
		return nil
	}

	node, ok := v.([]interface{})
	if !ok || len(node) != shape[depth] {
		return ErrRaggedTensor
	}
	for _, child := range node {
		if err := t.flatten(child, shape, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// WithBatchDim returns a tensor with a leading batch dimension of
// size 1 prepended. The flat data is shared, not copied.
func (t *Tensor) WithBatchDim() *Tensor {
	shape := make(Shape, 0, len(t.Shape)+1)
	shape = append(shape, 1)
	shape = append(shape, t.Shape...)
	return &Tensor{Shape: shape, Data: t.Data}
}

// Rank returns the number of dimensions.
func (t *Tensor) Rank() int {
	return len(t.Shape)
}
