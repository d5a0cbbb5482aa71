package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"callsync/internal/recordings"
	"callsync/internal/recordings/handler/mocks"
	id "callsync/pkg/domain"
	"callsync/pkg/domerr"
	"callsync/pkg/requestcontext"
)

type HandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  chi.Router
	user    id.UserID
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	h := New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.router = chi.NewRouter()
	h.Register(s.router)
	s.user = id.UserID(uuid.New())
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) serve(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req = req.WithContext(requestcontext.WithUserID(context.Background(), s.user))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerSuite) TestRegister() {
	s.Run("valid registration returns 201", func() {
		created := recordings.Recording{
			ID:           id.NewRecordingID(),
			UserID:       s.user,
			ObservedTime: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			StoragePath:  "recordings/2024/01/call.wav",
			CreatedAt:    time.Now().UTC(),
		}
		s.service.EXPECT().
			Register(gomock.Any(), s.user, recordings.RegisterInput{
				ObservedTime: created.ObservedTime,
				StoragePath:  created.StoragePath,
			}).
			Return(created, nil)

		w := s.serve(http.MethodPost, "/recordings",
			`{"observed_time": "2024-01-01T10:00:00Z", "storage_path": "recordings/2024/01/call.wav"}`)
		s.Equal(http.StatusCreated, w.Code)

		var resp map[string]any
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.Equal(created.ID.String(), resp["id"])
	})

	s.Run("missing storage path is rejected", func() {
		w := s.serve(http.MethodPost, "/recordings", `{"observed_time": "2024-01-01T10:00:00Z"}`)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("missing observed time is rejected", func() {
		w := s.serve(http.MethodPost, "/recordings", `{"storage_path": "a.wav"}`)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("unauthenticated is 401", func() {
		req := httptest.NewRequest(http.MethodPost, "/recordings", strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		s.Equal(http.StatusUnauthorized, w.Code)
	})
}

func (s *HandlerSuite) TestGet() {
	recID := id.NewRecordingID()

	s.Run("found", func() {
		s.service.EXPECT().
			Get(gomock.Any(), s.user, recID).
			Return(recordings.Recording{ID: recID, UserID: s.user, StoragePath: "a.wav"}, nil)

		w := s.serve(http.MethodGet, "/recordings/"+recID.String(), "")
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("not found maps to 404", func() {
		s.service.EXPECT().
			Get(gomock.Any(), s.user, recID).
			Return(recordings.Recording{}, domerr.New(domerr.CodeNotFound, "recording not found"))

		w := s.serve(http.MethodGet, "/recordings/"+recID.String(), "")
		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("malformed id is 400", func() {
		w := s.serve(http.MethodGet, "/recordings/zzz", "")
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *HandlerSuite) TestList() {
	s.service.EXPECT().
		List(gomock.Any(), s.user).
		Return([]recordings.Recording{
			{ID: id.NewRecordingID(), UserID: s.user, StoragePath: "a.wav"},
			{ID: id.NewRecordingID(), UserID: s.user, StoragePath: "b.wav"},
		}, nil)

	w := s.serve(http.MethodGet, "/recordings", "")
	s.Equal(http.StatusOK, w.Code)

	var resp ListResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Len(resp.Recordings, 2)
}

func (s *HandlerSuite) TestListEmpty() {
	s.service.EXPECT().List(gomock.Any(), s.user).Return(nil, nil)

	w := s.serve(http.MethodGet, "/recordings", "")
	s.Equal(http.StatusOK, w.Code)
	// An empty list serializes as [], not null.
	s.JSONEq(`{"recordings":[]}`, w.Body.String())
}
