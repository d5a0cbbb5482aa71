package recordings

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"callsync/internal/activity"
	id "callsync/pkg/domain"
	"callsync/pkg/domerr"
	"callsync/pkg/platform/sentinel"
	"callsync/pkg/requestcontext"
)

// Store is what the service needs from persistence.
type Store interface {
	Insert(ctx context.Context, rec Recording) error
	GetByID(ctx context.Context, recID id.RecordingID) (Recording, error)
	ListByUser(ctx context.Context, userID id.UserID) ([]Recording, error)
}

// Service registers and serves recording metadata. Validation happens at
// this boundary; the matcher downstream never re-checks.
type Service struct {
	store    Store
	activity activity.Recorder
	logger   *slog.Logger
}

func NewService(store Store, recorder activity.Recorder, logger *slog.Logger) *Service {
	return &Service{store: store, activity: recorder, logger: logger}
}

// RegisterInput carries caller-supplied metadata for one recording.
type RegisterInput struct {
	ObservedTime    time.Time
	DurationSeconds *int
	PhoneNumber     *string
	StoragePath     string
}

// Register validates and stores one recording, minting its identity here so
// callers cannot pick IDs.
func (s *Service) Register(ctx context.Context, userID id.UserID, in RegisterInput) (Recording, error) {
	rec := Recording{
		ID:              id.NewRecordingID(),
		UserID:          userID,
		ObservedTime:    in.ObservedTime.UTC(),
		DurationSeconds: in.DurationSeconds,
		PhoneNumber:     normalizePhone(in.PhoneNumber),
		StoragePath:     strings.TrimSpace(in.StoragePath),
		CreatedAt:       requestcontext.Now(ctx).UTC(),
	}
	if err := rec.Validate(); err != nil {
		return Recording{}, err
	}

	if err := s.store.Insert(ctx, rec); err != nil {
		return Recording{}, fmt.Errorf("register recording: %w", err)
	}

	s.activity.Record(ctx, activity.Event{
		UserID: userID,
		Kind:   activity.KindRecordingRegistered,
		Attrs:  []any{"recording_id", rec.ID.String()},
	})
	s.logger.InfoContext(ctx, "recording registered",
		"recording_id", rec.ID.String(),
		"user_id", userID.String(),
	)
	return rec, nil
}

// Get returns one of the user's recordings. Rows owned by other users come
// back as not found; existence is not disclosed across users.
func (s *Service) Get(ctx context.Context, userID id.UserID, recID id.RecordingID) (Recording, error) {
	rec, err := s.store.GetByID(ctx, recID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Recording{}, domerr.New(domerr.CodeNotFound, "recording not found")
	}
	if err != nil {
		return Recording{}, fmt.Errorf("get recording: %w", err)
	}
	if rec.UserID != userID {
		return Recording{}, domerr.New(domerr.CodeNotFound, "recording not found")
	}
	return rec, nil
}

// List returns the user's recordings newest first.
func (s *Service) List(ctx context.Context, userID id.UserID) ([]Recording, error) {
	recs, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list recordings: %w", err)
	}
	return recs, nil
}

// normalizePhone trims whitespace and treats an empty value as absent.
func normalizePhone(p *string) *string {
	if p == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*p)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
