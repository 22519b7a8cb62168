// Package export writes completed run records to disk, either as plain
// JSON or as a snappy-compressed archive.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mfalcone/seizgraph/pkg/seiz"
)

// WriteJSON writes the run record to path as indented JSON, creating
// parent directories as needed. It returns the number of bytes written.
func WriteJSON(path string, record *seiz.RunRecord) (int, error) {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to encode run record: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write run record: %w", err)
	}
	return len(data), nil
}

// ReadJSON loads a run record previously written by WriteJSON.
func ReadJSON(path string) (*seiz.RunRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run record: %w", err)
	}

	record := &seiz.RunRecord{}
	if err := json.Unmarshal(data, record); err != nil {
		return nil, fmt.Errorf("failed to decode run record: %w", err)
	}
	return record, nil
}
