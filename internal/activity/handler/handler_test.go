package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callsync/internal/activity"
	id "callsync/pkg/domain"
	"callsync/pkg/requestcontext"
)

func setup(t *testing.T) (chi.Router, *activity.MemoryStore, id.UserID) {
	t.Helper()
	store := activity.NewMemoryStore()
	h := New(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.Register(r)
	return r, store, id.UserID(uuid.New())
}

func serve(router chi.Router, user id.UserID, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(requestcontext.WithUserID(context.Background(), user))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleFeed(t *testing.T) {
	router, store, user := setup(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	for i, kind := range []activity.Kind{
		activity.KindRecordingRegistered,
		activity.KindCDRImported,
		activity.KindMatchConfirmed,
	} {
		require.NoError(t, store.Append(ctx, activity.Event{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			UserID:    user,
			Kind:      kind,
			Attrs:     []any{"request_id", "req-1"},
		}))
	}
	// Another user's event must never leak into the feed.
	require.NoError(t, store.Append(ctx, activity.Event{
		Timestamp: base,
		UserID:    id.UserID(uuid.New()),
		Kind:      activity.KindMatchRejected,
	}))

	t.Run("newest first, user scoped", func(t *testing.T) {
		w := serve(router, user, "/activity")
		require.Equal(t, http.StatusOK, w.Code)

		var resp FeedResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Events, 3)
		assert.Equal(t, string(activity.KindMatchConfirmed), resp.Events[0].Kind)
		assert.Equal(t, string(activity.KindRecordingRegistered), resp.Events[2].Kind)
		assert.Equal(t, "req-1", resp.Events[0].Attrs["request_id"])
	})

	t.Run("limit caps the page", func(t *testing.T) {
		w := serve(router, user, "/activity?limit=1")
		require.Equal(t, http.StatusOK, w.Code)

		var resp FeedResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Events, 1)
	})

	t.Run("bad limit is rejected", func(t *testing.T) {
		w := serve(router, user, "/activity?limit=zero")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = serve(router, user, "/activity?limit=-3")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unauthenticated is 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/activity", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("empty feed serializes as an empty list", func(t *testing.T) {
		w := serve(router, id.UserID(uuid.New()), "/activity")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"events":[]}`, w.Body.String())
	})
}
