package entity

import (
	"errors"
	"fmt"
)

// ErrNoLabels indicates an empty label set at startup.
var ErrNoLabels = errors.New("label table is empty")

// LabelTable is an ordered, immutable mapping from class index to
// human-readable class name. It is loaded once at startup and shared
// read-only across requests, so no synchronization is needed.
type LabelTable struct {
	labels []string
}

// NewLabelTable creates a LabelTable from an ordered list of class
// names. The slice is copied so later mutation by the caller cannot
// affect the table.
func NewLabelTable(labels []string) (*LabelTable, error) {
	if len(labels) == 0 {
		return nil, ErrNoLabels
	}
	copied := make([]string, len(labels))
	copy(copied, labels)
	return &LabelTable{labels: copied}, nil
}

// Len returns the number of known labels.
func (t *LabelTable) Len() int {
	return len(t.labels)
}

// Resolve maps a class index to its label. Indices outside the table
// resolve to a synthesized UNKNOWN_CLASS_<index> marker instead of
// failing, since the model's output dimensionality may exceed the
// label set.
func (t *LabelTable) Resolve(index int) string {
	if index < 0 || index >= len(t.labels) {
		return fmt.Sprintf("UNKNOWN_CLASS_%d", index)
	}
	return t.labels[index]
}
