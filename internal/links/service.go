package links

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"callsync/internal/activity"
	"callsync/internal/cdr"
	"callsync/internal/matching"
	"callsync/internal/recordings"
	id "callsync/pkg/domain"
	"callsync/pkg/domerr"
	"callsync/pkg/platform/device"
	"callsync/pkg/platform/sentinel"
	"callsync/pkg/requestcontext"
)

// Store is what the service needs from link persistence. Commit must enforce
// the one-active-link-per-recording invariant atomically: release the prior
// link, refuse call records already claimed by another recording, and return
// the existing row unchanged when the same pair is committed twice.
type Store interface {
	Commit(ctx context.Context, link Link) (Link, error)
	Release(ctx context.Context, recordingID id.RecordingID, at time.Time) (Link, error)
	ActiveByRecording(ctx context.Context, recordingID id.RecordingID) (Link, error)
	ActiveCDRIDs(ctx context.Context, userID id.UserID) (map[id.CDRID]id.RecordingID, error)
}

// RecordingSource resolves a recording under the ownership rules of the
// recordings service: rows owned by other users come back as not found.
type RecordingSource interface {
	Get(ctx context.Context, userID id.UserID, recID id.RecordingID) (recordings.Recording, error)
}

// RecordSource resolves one imported call record.
type RecordSource interface {
	GetByID(ctx context.Context, recordID id.CDRID) (cdr.Record, error)
}

// Service commits and releases recording-to-record links. It is the single
// write path for the link invariant; the matcher upstream only reads.
type Service struct {
	store      Store
	recordings RecordingSource
	records    RecordSource
	activity   activity.Recorder
	logger     *slog.Logger
}

func NewService(store Store, recSrc RecordingSource, cdrSrc RecordSource, recorder activity.Recorder, logger *slog.Logger) *Service {
	return &Service{
		store:      store,
		recordings: recSrc,
		records:    cdrSrc,
		activity:   recorder,
		logger:     logger,
	}
}

// Commit links a recording to a call record on behalf of the user. The score
// and quality stored on the link are recomputed here from the two entities
// rather than trusted from the request, so a stale client cannot persist a
// score the engine never produced. Committing the same pair again returns
// the existing link; committing a different record replaces the prior link.
func (s *Service) Commit(ctx context.Context, userID id.UserID, recordingID id.RecordingID, cdrID id.CDRID, method Method) (Link, error) {
	rec, err := s.recordings.Get(ctx, userID, recordingID)
	if err != nil {
		return Link{}, err
	}

	record, err := s.records.GetByID(ctx, cdrID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Link{}, domerr.New(domerr.CodeNotFound, "call record not found")
	}
	if err != nil {
		return Link{}, fmt.Errorf("commit link: load call record: %w", err)
	}
	if record.UserID != userID {
		return Link{}, domerr.New(domerr.CodeNotFound, "call record not found")
	}

	// Re-score the confirmed pair so the stored evidence is the engine's,
	// not the client's.
	ranked, err := matching.FindAndRank(ctx, rec.MatchInput(), []matching.Candidate{record.Candidate()}, matching.DefaultOptions())
	if err != nil {
		return Link{}, fmt.Errorf("commit link: score pair: %w", err)
	}
	scored := ranked[0]
	quality := matching.Classify(scored)

	now := requestcontext.Now(ctx).UTC()
	link := Link{
		ID:            id.NewLinkID(),
		UserID:        userID,
		RecordingID:   recordingID,
		CDRID:         cdrID,
		Score:         scored.Score,
		Quality:       qualityLabel(quality),
		Method:        method,
		DeviceSummary: device.ParseUserAgent(requestcontext.UserAgent(ctx)),
		ClientIP:      requestcontext.ClientIP(ctx),
		CreatedAt:     now,
	}

	committed, err := s.store.Commit(ctx, link)
	if errors.Is(err, sentinel.ErrConflict) {
		return Link{}, domerr.New(domerr.CodeConflict, "call record is already linked to another recording")
	}
	if err != nil {
		return Link{}, fmt.Errorf("commit link: %w", err)
	}

	s.activity.Record(ctx, activity.Event{
		UserID: userID,
		Kind:   activity.KindMatchConfirmed,
		Attrs: []any{
			"recording_id", recordingID.String(),
			"cdr_id", cdrID.String(),
			"score", committed.Score,
			"quality", committed.Quality,
			"method", string(committed.Method),
			"device", committed.DeviceSummary,
		},
	})
	s.logger.InfoContext(ctx, "link committed",
		"recording_id", recordingID.String(),
		"cdr_id", cdrID.String(),
		"score", committed.Score,
		"quality", committed.Quality,
		"method", string(committed.Method),
	)
	return committed, nil
}

// Release removes the recording's active link. Releasing a recording with no
// active link is a not-found, distinct from an unknown recording.
func (s *Service) Release(ctx context.Context, userID id.UserID, recordingID id.RecordingID) (Link, error) {
	if _, err := s.recordings.Get(ctx, userID, recordingID); err != nil {
		return Link{}, err
	}

	released, err := s.store.Release(ctx, recordingID, requestcontext.Now(ctx).UTC())
	if errors.Is(err, sentinel.ErrNotFound) {
		return Link{}, domerr.New(domerr.CodeNotFound, "recording has no active link")
	}
	if err != nil {
		return Link{}, fmt.Errorf("release link: %w", err)
	}

	s.activity.Record(ctx, activity.Event{
		UserID: userID,
		Kind:   activity.KindMatchRejected,
		Attrs: []any{
			"recording_id", recordingID.String(),
			"cdr_id", released.CDRID.String(),
		},
	})
	s.logger.InfoContext(ctx, "link released",
		"recording_id", recordingID.String(),
		"cdr_id", released.CDRID.String(),
	)
	return released, nil
}

// Active returns the recording's live link, or a coded not-found.
func (s *Service) Active(ctx context.Context, userID id.UserID, recordingID id.RecordingID) (Link, error) {
	if _, err := s.recordings.Get(ctx, userID, recordingID); err != nil {
		return Link{}, err
	}

	link, err := s.store.ActiveByRecording(ctx, recordingID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Link{}, domerr.New(domerr.CodeNotFound, "recording has no active link")
	}
	if err != nil {
		return Link{}, fmt.Errorf("get active link: %w", err)
	}
	return link, nil
}

// LinkedCDRIDs returns the user's actively linked call record IDs, keyed to
// the recording holding each one. The matching service uses this to exclude
// claimed candidates from the pool.
func (s *Service) LinkedCDRIDs(ctx context.Context, userID id.UserID) (map[id.CDRID]id.RecordingID, error) {
	linked, err := s.store.ActiveCDRIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list linked records: %w", err)
	}
	return linked, nil
}

// qualityLabel flattens the layered quality booleans into the tier stored on
// the link: the highest tier still standing.
func qualityLabel(q matching.Quality) string {
	switch {
	case q.High:
		return "high"
	case q.Medium:
		return "medium"
	default:
		return "low"
	}
}
