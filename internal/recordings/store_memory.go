package recordings

import (
	"context"
	"sort"
	"sync"

	id "callsync/pkg/domain"
	"callsync/pkg/platform/sentinel"
)

// MemoryStore keeps recordings in memory for tests and single-node runs.
type MemoryStore struct {
	mu         sync.RWMutex
	recordings map[id.RecordingID]Recording
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{recordings: make(map[id.RecordingID]Recording)}
}

func (s *MemoryStore) Insert(_ context.Context, rec Recording) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.recordings[rec.ID]; exists {
		return sentinel.ErrConflict
	}
	s.recordings[rec.ID] = rec
	return nil
}

func (s *MemoryStore) GetByID(_ context.Context, recID id.RecordingID) (Recording, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.recordings[recID]
	if !ok {
		return Recording{}, sentinel.ErrNotFound
	}
	return rec, nil
}

// ListByUser returns the user's recordings newest first by observed time.
func (s *MemoryStore) ListByUser(_ context.Context, userID id.UserID) ([]Recording, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Recording
	for _, rec := range s.recordings {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ObservedTime.After(out[j].ObservedTime)
	})
	return out, nil
}
