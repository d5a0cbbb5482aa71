package cdr

import (
	"context"
	"sort"
	"sync"
	"time"

	id "callsync/pkg/domain"
	"callsync/pkg/platform/sentinel"
)

// dedupeKey identifies a logical call row for duplicate detection. Two rows
// from the same user with identical time and numbers are the same call, no
// matter how many times the CSV is re-uploaded.
type dedupeKey struct {
	userID   id.UserID
	callTime int64
	source   string
	dest     string
}

func keyOf(rec Record) dedupeKey {
	k := dedupeKey{userID: rec.UserID, callTime: rec.CallTime.UnixNano()}
	if rec.SourceNumber != nil {
		k.source = *rec.SourceNumber
	}
	if rec.DestinationNumber != nil {
		k.dest = *rec.DestinationNumber
	}
	return k
}

// MemoryStore keeps call records in memory. It intentionally favors clarity
// over performance and is the implementation used by unit tests and local
// development without Postgres.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[id.CDRID]Record
	seen    map[dedupeKey]struct{}
}

// NewMemoryStore creates an empty in-memory call record store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[id.CDRID]Record),
		seen:    make(map[dedupeKey]struct{}),
	}
}

// Insert stores one record. Returns sentinel.ErrConflict when a row with the
// same user, call time and numbers already exists.
func (s *MemoryStore) Insert(ctx context.Context, rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := keyOf(rec)
	if _, dup := s.seen[key]; dup {
		return sentinel.ErrConflict
	}

	s.seen[key] = struct{}{}
	s.records[rec.ID] = rec
	return nil
}

// GetByID returns one record or sentinel.ErrNotFound.
func (s *MemoryStore) GetByID(ctx context.Context, recordID id.CDRID) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[recordID]
	if !ok {
		return Record{}, sentinel.ErrNotFound
	}
	return rec, nil
}

// FindWindow returns the user's records with call time in [from, to],
// ordered by call time ascending. Link state is not consulted here; the
// matching service filters linked records out.
func (s *MemoryStore) FindWindow(ctx context.Context, userID id.UserID, from, to time.Time) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Record
	for _, rec := range s.records {
		if rec.UserID != userID {
			continue
		}
		if rec.CallTime.Before(from) || rec.CallTime.After(to) {
			continue
		}
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CallTime.Before(out[j].CallTime) })
	return out, nil
}

// CountByImport returns how many rows one import batch contributed.
func (s *MemoryStore) CountByImport(ctx context.Context, importID id.ImportID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, rec := range s.records {
		if rec.ImportID == importID {
			n++
		}
	}
	return n, nil
}
