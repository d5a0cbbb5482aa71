package ratelimit

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "callsync/pkg/domain"
	"callsync/pkg/requestcontext"
)

type failingStore struct{}

func (failingStore) Allow(context.Context, string, int, time.Duration) (Result, error) {
	return Result{}, context.DeadlineExceeded
}
func (failingStore) Reset(context.Context, string) error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func authenticated(userID id.UserID) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	return req.WithContext(requestcontext.WithUserID(context.Background(), userID))
}

func TestPerUser(t *testing.T) {
	t.Run("limits by user and sets headers", func(t *testing.T) {
		mw := New(NewMemoryStore(), testLogger())
		handler := mw.PerUser("match", 2, time.Minute)(okHandler())
		user := id.UserID(uuid.New())

		for range 2 {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, authenticated(user))
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		}

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, authenticated(user))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
		assert.JSONEq(t, `{"error":"rate_limited","error_description":"too many requests"}`, w.Body.String())
	})

	t.Run("users do not share buckets", func(t *testing.T) {
		mw := New(NewMemoryStore(), testLogger())
		handler := mw.PerUser("match", 1, time.Minute)(okHandler())

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, authenticated(id.UserID(uuid.New())))
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		handler.ServeHTTP(w, authenticated(id.UserID(uuid.New())))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unauthenticated requests fall back to IP", func(t *testing.T) {
		mw := New(NewMemoryStore(), testLogger())
		handler := mw.PerUser("match", 1, time.Minute)(okHandler())

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req = req.WithContext(requestcontext.WithClientMetadata(context.Background(), "10.0.0.1", ""))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})

	t.Run("store failure fails open", func(t *testing.T) {
		mw := New(failingStore{}, testLogger())
		handler := mw.PerUser("match", 1, time.Minute)(okHandler())

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, authenticated(id.UserID(uuid.New())))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("disabled mode passes everything", func(t *testing.T) {
		mw := New(NewMemoryStore(), testLogger(), WithDisabled(true))
		handler := mw.PerUser("match", 1, time.Minute)(okHandler())
		user := id.UserID(uuid.New())

		for range 5 {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, authenticated(user))
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})
}
