package test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"callsync/internal/activity"
	activityhandler "callsync/internal/activity/handler"
	"callsync/internal/cdr"
	"callsync/internal/csvimport"
	csvimporthandler "callsync/internal/csvimport/handler"
	"callsync/internal/links"
	matchinghandler "callsync/internal/matching/handler"
	matchingservice "callsync/internal/matching/service"
	"callsync/internal/recordings"
	recordingshandler "callsync/internal/recordings/handler"
	"callsync/internal/token"
	httptransport "callsync/internal/transport/http"
	"callsync/pkg/testutil"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	activityStore := activity.NewMemoryStore()
	recorder := activity.NewService(logger)
	recordingSvc := recordings.NewService(recordings.NewMemoryStore(), recorder, logger)
	recordStore := cdr.NewMemoryStore()
	importSvc := csvimport.NewService(recordStore, csvimport.NewMemoryStore(), recorder, logger)
	linkSvc := links.NewService(links.NewMemoryStore(), recordingSvc, recordStore, recorder, logger)
	matchSvc := matchingservice.NewService(recordingSvc, recordStore, linkSvc, nil, nil, logger)

	return httptransport.NewRouter(httptransport.Deps{
		Recordings: recordingshandler.New(recordingSvc, logger),
		Imports:    csvimporthandler.New(importSvc, logger),
		Matching:   matchinghandler.New(matchSvc, linkSvc, logger),
		Activity:   activityhandler.New(activityStore, logger),
		Auth:       token.NewValidator("scaffold-signing-key-32-bytes!!!!!!!", "", ""),
		Logger:     logger,
	})
}

func TestRouterScaffold(t *testing.T) {
	testutil.Given(t, "the HTTP router", func(t *testing.T) {
		router := newRouter(t)

		testutil.When(t, "calling GET /healthz", func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			rec := testutil.DoRequest(router, req)

			testutil.Then(t, "it should respond ok", func(t *testing.T) {
				testutil.AssertStatus(t, rec, http.StatusOK)
			})
		})

		testutil.When(t, "calling a v1 route without a token", func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/recordings", nil)
			rec := testutil.DoRequest(router, req)

			testutil.Then(t, "it should require authentication", func(t *testing.T) {
				testutil.AssertStatus(t, rec, http.StatusUnauthorized)
				testutil.AssertErrorCode(t, rec, "unauthorized")
			})
		})

		testutil.When(t, "calling an unknown route", func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/nope", nil)
			rec := testutil.DoRequest(router, req)

			testutil.Then(t, "it should respond not found", func(t *testing.T) {
				testutil.AssertStatus(t, rec, http.StatusNotFound)
			})
		})
	})
}
