package csvimport

import (
	"context"
	"sort"
	"sync"

	id "callsync/pkg/domain"
	"callsync/pkg/platform/sentinel"
)

// MemoryStore keeps import summaries in memory for tests and single-node runs.
type MemoryStore struct {
	mu      sync.RWMutex
	imports map[id.ImportID]Import
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{imports: make(map[id.ImportID]Import)}
}

func (s *MemoryStore) Insert(_ context.Context, imp Import) error {
	if err := imp.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.imports[imp.ID]; exists {
		return sentinel.ErrConflict
	}
	s.imports[imp.ID] = imp
	return nil
}

func (s *MemoryStore) GetByID(_ context.Context, impID id.ImportID) (Import, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	imp, ok := s.imports[impID]
	if !ok {
		return Import{}, sentinel.ErrNotFound
	}
	return imp, nil
}

// ListByUser returns the user's imports newest first.
func (s *MemoryStore) ListByUser(_ context.Context, userID id.UserID) ([]Import, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Import
	for _, imp := range s.imports {
		if imp.UserID == userID {
			out = append(out, imp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
