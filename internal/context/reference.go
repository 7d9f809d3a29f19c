// Package context owns the session-scoped assembly state: the user-curated
// reference files, the auto-collected source files, and the engine tying the
// pipeline together.
package context

import (
	"path/filepath"
	"sync"

	"ctxforge/internal/logging"
	"ctxforge/internal/types"
)

// ReadFunc loads one file's content.
type ReadFunc func(path string) ([]byte, error)

// ReferenceStore keeps the user-curated reference files in insertion order.
// Adding an existing path replaces the entry in place; the collection is
// never capped or summarized at this stage.
type ReferenceStore struct {
	mu    sync.RWMutex
	read  ReadFunc
	units []types.SourceUnit
}

func NewReferenceStore(read ReadFunc) *ReferenceStore {
	return &ReferenceStore{read: read}
}

// Add reads the file and inserts or replaces the unit keyed by path.
// Returns false when the file cannot be read; the store is left unchanged.
func (s *ReferenceStore) Add(path string) bool {
	data, err := s.read(path)
	if err != nil {
		logging.Get(logging.CategoryContext).Warn("reference file unreadable: %s: %v", path, err)
		return false
	}

	u := types.SourceUnit{
		Path:    path,
		Name:    filepath.Base(path),
		Content: string(data),
		Kind:    types.KindReference,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.units {
		if s.units[i].Path == path {
			s.units[i] = u
			logging.ContextDebug("reference file replaced: %s", path)
			return true
		}
	}
	s.units = append(s.units, u)
	logging.ContextDebug("reference file added: %s (%d bytes)", path, len(data))
	return true
}

// Remove deletes the unit keyed by path. Returns false when not present.
func (s *ReferenceStore) Remove(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.units {
		if s.units[i].Path == path {
			s.units = append(s.units[:i], s.units[i+1:]...)
			return true
		}
	}
	return false
}

// Clear drops all reference files.
func (s *ReferenceStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.units = nil
}

// List returns the reference units in insertion order. The slice is a copy;
// callers cannot mutate store state through it.
func (s *ReferenceStore) List() []types.SourceUnit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.SourceUnit, len(s.units))
	copy(out, s.units)
	return out
}

// Len returns the number of stored reference files.
func (s *ReferenceStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.units)
}
