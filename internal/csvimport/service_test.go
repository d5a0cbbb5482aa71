package csvimport

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"callsync/internal/activity"
	activitymocks "callsync/internal/activity/mocks"
	"callsync/internal/cdr"
	"callsync/pkg/attrs"
	id "callsync/pkg/domain"
	"callsync/pkg/domerr"
	"callsync/pkg/requestcontext"
)

// End-to-end importer behavior over real in-memory stores; only the activity
// feed is mocked, to capture the emitted event.
type ServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	records  *cdr.MemoryStore
	imports  *MemoryStore
	recorder *activitymocks.MockRecorder
	service  *Service
	user     id.UserID
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.records = cdr.NewMemoryStore()
	s.imports = NewMemoryStore()
	s.recorder = activitymocks.NewMockRecorder(s.ctrl)
	s.service = NewService(s.records, s.imports, s.recorder, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.user = id.UserID(uuid.New())
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) TestImport() {
	requestTime := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), requestTime)

	s.Run("mixed file: inserts, skips duplicates, samples failures", func() {
		file := "Call Time,Direction,Source,Duration\n" +
			"2024-01-01 10:00:00,Inbound,555-1111,120\n" +
			"2024-01-01 11:00:00,Outbound,555-2222,60\n" +
			"2024-01-01 10:00:00,Inbound,555-1111,120\n" + // duplicate of row 2
			"not-a-time,Inbound,555-3333,30\n"

		var event activity.Event
		s.recorder.EXPECT().Record(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, ev activity.Event) { event = ev })

		summary, err := s.service.Import(ctx, s.user, "export.csv", strings.NewReader(file))
		s.Require().NoError(err)

		s.Equal(4, summary.TotalRows)
		s.Equal(2, summary.Inserted)
		s.Equal(1, summary.Skipped)
		s.Equal(1, summary.Failed)
		s.Require().Len(summary.RowErrors, 1)
		s.Contains(summary.RowErrors[0], "row 5")

		// The summary is persisted under the same ID the caller gets back.
		imp, err := s.service.Get(ctx, s.user, summary.ImportID)
		s.Require().NoError(err)
		s.Equal("export.csv", imp.Filename)
		s.Equal(summary.TotalRows, imp.TotalRows)
		s.Equal(summary.RowErrors, imp.RowErrors)
		s.Equal(requestTime, imp.CreatedAt)

		// And the inserted rows carry the import's identity.
		window, err := s.records.FindWindow(ctx, s.user,
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
		s.Require().NoError(err)
		s.Require().Len(window, 2)
		s.Equal(summary.ImportID, window[0].ImportID)

		s.Equal(activity.KindCDRImported, event.Kind)
		s.Equal(summary.ImportID.String(), attrs.ExtractString(event.Attrs, "import_id"))
		s.Equal("export.csv", attrs.ExtractString(event.Attrs, "filename"))
	})

	s.Run("unusable header rejects the whole upload", func() {
		before, err := s.service.List(ctx, s.user)
		s.Require().NoError(err)

		_, err = s.service.Import(ctx, s.user, "broken.csv",
			strings.NewReader("Source,Destination\n555-1111,555-2222\n"))
		s.Require().Error(err)
		s.True(domerr.HasCode(err, domerr.CodeInvalidInput))

		// Nothing persisted for the rejected file.
		after, err := s.service.List(ctx, s.user)
		s.Require().NoError(err)
		s.Len(after, len(before))
	})

	s.Run("file of only bad rows still produces a summary", func() {
		s.recorder.EXPECT().Record(gomock.Any(), gomock.Any())

		summary, err := s.service.Import(ctx, s.user, "junk.csv",
			strings.NewReader("Call Time,Direction\nnope,in\nalso-nope,out\n"))
		s.Require().NoError(err)
		s.Equal(2, summary.TotalRows)
		s.Equal(0, summary.Inserted)
		s.Equal(2, summary.Failed)
		s.Len(summary.RowErrors, 2)
	})
}

func (s *ServiceSuite) TestOwnership() {
	ctx := context.Background()
	s.recorder.EXPECT().Record(gomock.Any(), gomock.Any())

	summary, err := s.service.Import(ctx, s.user, "export.csv",
		strings.NewReader("Call Time,Direction\n2024-01-01 10:00:00,in\n"))
	s.Require().NoError(err)

	s.Run("another user's import reads as not found", func() {
		_, err := s.service.Get(ctx, id.UserID(uuid.New()), summary.ImportID)
		s.Require().Error(err)
		s.True(domerr.HasCode(err, domerr.CodeNotFound))
	})

	s.Run("unknown import reads as not found", func() {
		_, err := s.service.Get(ctx, s.user, id.NewImportID())
		s.Require().Error(err)
		s.True(domerr.HasCode(err, domerr.CodeNotFound))
	})
}
