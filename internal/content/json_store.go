package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JSONStore keeps one JSON snapshot file per collection under dir.
type JSONStore struct {
	dir string
	mu  sync.RWMutex
}

func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{dir: dir}
}

func (s *JSONStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

func (s *JSONStore) LoadCollection(ctx context.Context, name string) ([]Entry, error) {
	if err := validateCollection(name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, err := os.ReadFile(s.path(name))
	s.mu.RUnlock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
		}
		return nil, err
	}

	entries := []Entry{}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedEntry, name, err)
	}
	seen := make(map[string]struct{}, len(entries))
	for i := range entries {
		if err := entries[i].validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[entries[i].ID]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate id %q", ErrMalformedEntry, name, entries[i].ID)
		}
		seen[entries[i].ID] = struct{}{}
		entries[i].Collection = name
	}
	return entries, nil
}

// Save replaces the snapshot of collection with entries.
func (s *JSONStore) Save(collection string, entries []Entry) error {
	if err := validateCollection(collection); err != nil {
		return err
	}
	if entries == nil {
		entries = []Entry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	return atomicWriteFile(s.path(collection), data, 0o644)
}
