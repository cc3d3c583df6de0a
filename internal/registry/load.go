package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Load reads the index document at path.
//
// A missing file is reported as ErrIndexNotFound so callers can treat it as a
// precondition failure; a malformed document as ErrInvalidIndex.
func Load(path string) (*Index, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, path)
		}
		return nil, fmt.Errorf("cannot read index %s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes an index document.
func Parse(b []byte) (*Index, error) {
	var idx Index
	if err := json.Unmarshal(b, &idx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIndex, err)
	}
	for _, c := range Categories {
		es := idx.Entries(c)
		for name, e := range es.All() {
			if e.Dependencies == nil || e.InternalDependencies == nil {
				if e.Dependencies == nil {
					e.Dependencies = []string{}
				}
				if e.InternalDependencies == nil {
					e.InternalDependencies = []string{}
				}
				es.byName[name] = e
			}
		}
	}
	return &idx, nil
}
