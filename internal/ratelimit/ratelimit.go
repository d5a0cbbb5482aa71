package ratelimit

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"callsync/pkg/requestcontext"
)

// Result describes one rate limit decision.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Store tracks request counts per key over a sliding window.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error)
	Reset(ctx context.Context, key string) error
}

// Middleware applies per-caller limits to expensive routes. Match
// computation and CSV import are the only endpoints worth protecting; plain
// reads are cheap enough to leave alone.
type Middleware struct {
	store    Store
	logger   *slog.Logger
	disabled bool
}

type Option func(*Middleware)

// WithDisabled turns the middleware into a pass-through (testing/demo mode).
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

func New(store Store, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		store:  store,
		logger: logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled {
		logger.Info("rate limiting disabled")
	}
	return m
}

// PerUser limits authenticated requests by user ID, falling back to client
// IP when the route is hit before authentication. A store failure lets the
// request through; rate limiting must never take the API down with it.
func (m *Middleware) PerUser(name string, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.disabled {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			key := name + ":user:" + requestcontext.UserID(ctx).String()
			if requestcontext.UserID(ctx).IsZero() {
				key = name + ":ip:" + requestcontext.ClientIP(ctx)
			}

			result, err := m.store.Allow(ctx, key, limit, window)
			if err != nil {
				m.logger.ErrorContext(ctx, "rate limit check failed",
					"route", name,
					"error", err,
				)
				next.ServeHTTP(w, r)
				return
			}

			addHeaders(w, result)
			if !result.Allowed {
				m.logger.WarnContext(ctx, "rate limit exceeded",
					"route", name,
					"user_id", requestcontext.UserID(ctx).String(),
				)
				writeExceeded(w, result)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func addHeaders(w http.ResponseWriter, result Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

func writeExceeded(w http.ResponseWriter, result Result) {
	retryAfter := max(int(time.Until(result.ResetAt).Seconds()), 1)
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(`{"error":"rate_limited","error_description":"too many requests"}`))
}
