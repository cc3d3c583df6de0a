package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Marshal encodes idx the way it is stored on disk: two-space indentation,
// entries in insertion order.
func Marshal(idx *Index) ([]byte, error) {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("cannot marshal index: %w", err)
	}
	return data, nil
}

// Write serializes idx to path, replacing any previous document.
func Write(path string, idx *Index) error {
	data, err := Marshal(idx)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create index dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write index %s: %w", path, err)
	}
	return nil
}
