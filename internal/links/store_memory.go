package links

import (
	"context"
	"sync"
	"time"

	id "callsync/pkg/domain"
	"callsync/pkg/platform/sentinel"
)

// MemoryStore keeps links in memory for tests and single-node runs. The
// whole history is retained; active rows are the ones without ReleasedAt,
// mirroring the partial unique indexes of the postgres store.
type MemoryStore struct {
	mu    sync.RWMutex
	links []Link
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Commit enforces the link invariant under one lock: same pair returns the
// existing row, a claimed call record is a conflict, and a prior link for
// the recording is released before the new row lands.
func (s *MemoryStore) Commit(ctx context.Context, link Link) (Link, error) {
	if err := link.Validate(); err != nil {
		return Link{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.links {
		if !s.links[i].Active() {
			continue
		}
		if s.links[i].RecordingID == link.RecordingID && s.links[i].CDRID == link.CDRID {
			return s.links[i], nil
		}
		if s.links[i].CDRID == link.CDRID {
			return Link{}, sentinel.ErrConflict
		}
	}

	for i := range s.links {
		if s.links[i].Active() && s.links[i].RecordingID == link.RecordingID {
			at := link.CreatedAt
			s.links[i].ReleasedAt = &at
		}
	}

	s.links = append(s.links, link)
	return link, nil
}

func (s *MemoryStore) Release(ctx context.Context, recordingID id.RecordingID, at time.Time) (Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.links {
		if s.links[i].Active() && s.links[i].RecordingID == recordingID {
			released := at
			s.links[i].ReleasedAt = &released
			return s.links[i], nil
		}
	}
	return Link{}, sentinel.ErrNotFound
}

func (s *MemoryStore) ActiveByRecording(ctx context.Context, recordingID id.RecordingID) (Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.links {
		if s.links[i].Active() && s.links[i].RecordingID == recordingID {
			return s.links[i], nil
		}
	}
	return Link{}, sentinel.ErrNotFound
}

func (s *MemoryStore) ActiveCDRIDs(ctx context.Context, userID id.UserID) (map[id.CDRID]id.RecordingID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[id.CDRID]id.RecordingID)
	for i := range s.links {
		if s.links[i].Active() && s.links[i].UserID == userID {
			out[s.links[i].CDRID] = s.links[i].RecordingID
		}
	}
	return out, nil
}
