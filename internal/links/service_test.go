package links_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"callsync/internal/activity"
	activitymocks "callsync/internal/activity/mocks"
	"callsync/internal/cdr"
	"callsync/internal/links"
	"callsync/internal/links/mocks"
	"callsync/internal/recordings"
	"callsync/pkg/attrs"
	id "callsync/pkg/domain"
	"callsync/pkg/domerr"
	"callsync/pkg/platform/sentinel"
	"callsync/pkg/requestcontext"
)

// Service behavior around ownership, re-scoring and the activity trail.
// The one-active-link invariant itself is a store contract and is proved in
// the store suites.
type ServiceSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	store      *mocks.MockStore
	recordings *mocks.MockRecordingSource
	records    *mocks.MockRecordSource
	recorder   *activitymocks.MockRecorder
	service    *links.Service
	user       id.UserID
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockStore(s.ctrl)
	s.recordings = mocks.NewMockRecordingSource(s.ctrl)
	s.records = mocks.NewMockRecordSource(s.ctrl)
	s.recorder = activitymocks.NewMockRecorder(s.ctrl)
	s.service = links.NewService(s.store, s.recordings, s.records, s.recorder, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.user = id.UserID(uuid.New())
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) fixtures() (recordings.Recording, cdr.Record) {
	observed := time.Date(2024, 1, 1, 10, 0, 30, 0, time.UTC)
	phone := "555-1111"
	recDuration := 120
	rec := recordings.Recording{
		ID:              id.NewRecordingID(),
		UserID:          s.user,
		ObservedTime:    observed,
		PhoneNumber:     &phone,
		DurationSeconds: &recDuration,
	}

	cdrDuration := 125
	record := cdr.Record{
		ID:              id.NewCDRID(),
		UserID:          s.user,
		ImportID:        id.NewImportID(),
		CallTime:        time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		Direction:       id.DirectionInbound,
		SourceNumber:    &phone,
		DurationSeconds: &cdrDuration,
	}
	return rec, record
}

func (s *ServiceSuite) TestCommit() {
	rec, record := s.fixtures()

	s.Run("re-scores the pair and stores the engine's evidence", func() {
		requestTime := time.Date(2024, 1, 1, 10, 5, 0, 0, time.UTC)
		ctx := requestcontext.WithTime(context.Background(), requestTime)
		ctx = requestcontext.WithClientMetadata(ctx, "203.0.113.9",
			"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0")

		s.recordings.EXPECT().Get(gomock.Any(), s.user, rec.ID).Return(rec, nil)
		s.records.EXPECT().GetByID(gomock.Any(), record.ID).Return(record, nil)

		var committed links.Link
		s.store.EXPECT().Commit(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, link links.Link) (links.Link, error) {
				committed = link
				return link, nil
			})
		var event activity.Event
		s.recorder.EXPECT().Record(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, ev activity.Event) { event = ev })

		link, err := s.service.Commit(ctx, s.user, rec.ID, record.ID, links.MethodManual)
		s.Require().NoError(err)
		s.Equal(committed, link)

		s.False(link.ID.IsZero())
		s.Equal(s.user, link.UserID)
		s.Equal(rec.ID, link.RecordingID)
		s.Equal(record.ID, link.CDRID)
		// 30s diff, matching phone, 5s duration diff: a near-saturated score.
		s.GreaterOrEqual(link.Score, 0.9)
		s.Equal("high", link.Quality)
		s.Equal(links.MethodManual, link.Method)
		s.Contains(link.DeviceSummary, "Firefox")
		s.Equal("203.0.113.9", link.ClientIP)
		s.Equal(requestTime, link.CreatedAt)
		s.Nil(link.ReleasedAt)

		s.Equal(activity.KindMatchConfirmed, event.Kind)
		s.Equal(rec.ID.String(), attrs.ExtractString(event.Attrs, "recording_id"))
		s.Equal(record.ID.String(), attrs.ExtractString(event.Attrs, "cdr_id"))
		score, ok := attrs.ExtractFloat64(event.Attrs, "score")
		s.True(ok)
		s.Equal(link.Score, score)
	})

	s.Run("unknown recording stops before the record lookup", func() {
		s.recordings.EXPECT().Get(gomock.Any(), s.user, rec.ID).
			Return(recordings.Recording{}, domerr.New(domerr.CodeNotFound, "recording not found"))

		_, err := s.service.Commit(context.Background(), s.user, rec.ID, record.ID, links.MethodManual)
		s.Require().Error(err)
		s.True(domerr.HasCode(err, domerr.CodeNotFound))
	})

	s.Run("missing call record reads as not found", func() {
		s.recordings.EXPECT().Get(gomock.Any(), s.user, rec.ID).Return(rec, nil)
		s.records.EXPECT().GetByID(gomock.Any(), record.ID).Return(cdr.Record{}, sentinel.ErrNotFound)

		_, err := s.service.Commit(context.Background(), s.user, rec.ID, record.ID, links.MethodManual)
		s.Require().Error(err)
		s.True(domerr.HasCode(err, domerr.CodeNotFound))
	})

	s.Run("another user's call record reads as not found", func() {
		other := record
		other.UserID = id.UserID(uuid.New())
		s.recordings.EXPECT().Get(gomock.Any(), s.user, rec.ID).Return(rec, nil)
		s.records.EXPECT().GetByID(gomock.Any(), record.ID).Return(other, nil)

		_, err := s.service.Commit(context.Background(), s.user, rec.ID, record.ID, links.MethodManual)
		s.Require().Error(err)
		s.True(domerr.HasCode(err, domerr.CodeNotFound))
	})

	s.Run("claimed call record surfaces as conflict", func() {
		s.recordings.EXPECT().Get(gomock.Any(), s.user, rec.ID).Return(rec, nil)
		s.records.EXPECT().GetByID(gomock.Any(), record.ID).Return(record, nil)
		s.store.EXPECT().Commit(gomock.Any(), gomock.Any()).Return(links.Link{}, sentinel.ErrConflict)

		_, err := s.service.Commit(context.Background(), s.user, rec.ID, record.ID, links.MethodManual)
		s.Require().Error(err)
		s.True(domerr.HasCode(err, domerr.CodeConflict))
	})
}

func (s *ServiceSuite) TestRelease() {
	rec, record := s.fixtures()

	s.Run("releases the active link and records the rejection", func() {
		requestTime := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
		ctx := requestcontext.WithTime(context.Background(), requestTime)

		released := links.Link{
			ID:          id.NewLinkID(),
			UserID:      s.user,
			RecordingID: rec.ID,
			CDRID:       record.ID,
			Method:      links.MethodManual,
			ReleasedAt:  &requestTime,
		}
		s.recordings.EXPECT().Get(gomock.Any(), s.user, rec.ID).Return(rec, nil)
		s.store.EXPECT().Release(gomock.Any(), rec.ID, requestTime).Return(released, nil)

		var event activity.Event
		s.recorder.EXPECT().Record(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, ev activity.Event) { event = ev })

		got, err := s.service.Release(ctx, s.user, rec.ID)
		s.Require().NoError(err)
		s.Equal(released, got)

		s.Equal(activity.KindMatchRejected, event.Kind)
		s.Equal(record.ID.String(), attrs.ExtractString(event.Attrs, "cdr_id"))
	})

	s.Run("recording without an active link reads as not found", func() {
		s.recordings.EXPECT().Get(gomock.Any(), s.user, rec.ID).Return(rec, nil)
		s.store.EXPECT().Release(gomock.Any(), rec.ID, gomock.Any()).Return(links.Link{}, sentinel.ErrNotFound)

		_, err := s.service.Release(context.Background(), s.user, rec.ID)
		s.Require().Error(err)
		s.True(domerr.HasCode(err, domerr.CodeNotFound))
	})

	s.Run("store failure surfaces and records nothing", func() {
		s.recordings.EXPECT().Get(gomock.Any(), s.user, rec.ID).Return(rec, nil)
		s.store.EXPECT().Release(gomock.Any(), rec.ID, gomock.Any()).Return(links.Link{}, errors.New("connection reset"))

		_, err := s.service.Release(context.Background(), s.user, rec.ID)
		s.Require().Error(err)
	})
}

func (s *ServiceSuite) TestActive() {
	rec, record := s.fixtures()

	s.Run("returns the live link", func() {
		link := links.Link{ID: id.NewLinkID(), UserID: s.user, RecordingID: rec.ID, CDRID: record.ID, Method: links.MethodManual}
		s.recordings.EXPECT().Get(gomock.Any(), s.user, rec.ID).Return(rec, nil)
		s.store.EXPECT().ActiveByRecording(gomock.Any(), rec.ID).Return(link, nil)

		got, err := s.service.Active(context.Background(), s.user, rec.ID)
		s.Require().NoError(err)
		s.Equal(link, got)
	})

	s.Run("no live link reads as not found", func() {
		s.recordings.EXPECT().Get(gomock.Any(), s.user, rec.ID).Return(rec, nil)
		s.store.EXPECT().ActiveByRecording(gomock.Any(), rec.ID).Return(links.Link{}, sentinel.ErrNotFound)

		_, err := s.service.Active(context.Background(), s.user, rec.ID)
		s.Require().Error(err)
		s.True(domerr.HasCode(err, domerr.CodeNotFound))
	})
}
