package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/chandlerpc/SignSpeak/internal/domain/entity"
)

type labelsFile struct {
	Classes []string `json:"classes"`
}

// LoadLabelTable reads the ordered class labels from a JSON file of
// the form {"classes": ["A", "B", ...]}. Load failure is fatal to
// startup.
func LoadLabelTable(path string) (*entity.LabelTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read class labels: %w", err)
	}

	var f labelsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse class labels: %w", err)
	}

	table, err := entity.NewLabelTable(f.Classes)
	if err != nil {
		return nil, fmt.Errorf("invalid class labels in %s: %w", path, err)
	}
	return table, nil
}
