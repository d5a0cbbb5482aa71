package activity

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "callsync/pkg/domain"
)

type recordingStore struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *recordingStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

func (s *recordingStore) ListByUser(_ context.Context, userID id.UserID, _ int) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Event
	for _, e := range s.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *recordingStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

type flakyPublisher struct {
	mu        sync.Mutex
	published []Event
	err       error
}

func (p *flakyPublisher) Publish(_ context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, event)
	return nil
}

func (p *flakyPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestWorker_PersistsAndPublishes(t *testing.T) {
	store := &recordingStore{}
	pub := &flakyPublisher{}
	inbox := make(chan Event, 4)
	worker := NewWorker(store, pub, inbox, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	inbox <- Event{UserID: id.UserID(uuid.New()), Kind: KindMatchConfirmed}
	inbox <- Event{UserID: id.UserID(uuid.New()), Kind: KindMatchRejected}

	waitFor(t, func() bool { return store.count() == 2 && pub.count() == 2 })
}

func TestWorker_StoreFailureDoesNotStopTheLoop(t *testing.T) {
	store := &recordingStore{err: errors.New("disk on fire")}
	pub := &flakyPublisher{}
	inbox := make(chan Event, 4)
	worker := NewWorker(store, pub, inbox, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	inbox <- Event{Kind: KindCDRImported}
	waitFor(t, func() bool { return pub.count() == 1 })

	// The store recovers; the next event lands.
	store.mu.Lock()
	store.err = nil
	store.mu.Unlock()

	inbox <- Event{Kind: KindCDRImported}
	waitFor(t, func() bool { return store.count() == 1 && pub.count() == 2 })
}

func TestWorker_PublisherFailureDoesNotStopTheLoop(t *testing.T) {
	store := &recordingStore{}
	pub := &flakyPublisher{err: errors.New("broker unreachable")}
	inbox := make(chan Event, 4)
	worker := NewWorker(store, pub, inbox, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	inbox <- Event{Kind: KindRecordingRegistered}
	inbox <- Event{Kind: KindRecordingRegistered}

	waitFor(t, func() bool { return store.count() == 2 })
	assert.Equal(t, 0, pub.count())
}

func TestWorker_NilPublisherIsFine(t *testing.T) {
	store := &recordingStore{}
	inbox := make(chan Event, 1)
	worker := NewWorker(store, nil, inbox, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	inbox <- Event{Kind: KindMatchConfirmed}
	waitFor(t, func() bool { return store.count() == 1 })
}

func TestWorker_StopsOnContextCancel(t *testing.T) {
	worker := NewWorker(&recordingStore{}, nil, make(chan Event), discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- worker.Run(ctx) }()

	cancel()
	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on cancel")
	}
}
