package activity

import (
	"context"
	"sort"
	"sync"

	id "callsync/pkg/domain"
)

// MemoryStore keeps events in memory for tests and single-node runs.
type MemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByUser returns the user's events newest first. A limit <= 0 falls back
// to DefaultFeedLimit.
func (s *MemoryStore) ListByUser(_ context.Context, userID id.UserID, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Event
	for _, event := range s.events {
		if event.UserID == userID {
			out = append(out, event)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
