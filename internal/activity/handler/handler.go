package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"callsync/internal/activity"
	"callsync/pkg/attrs"
	id "callsync/pkg/domain"
	"callsync/pkg/domerr"
	"callsync/pkg/platform/httputil"
	"callsync/pkg/requestcontext"
)

// Feed reads the per-user activity trail.
type Feed interface {
	ListByUser(ctx context.Context, userID id.UserID, limit int) ([]activity.Event, error)
}

// Handler serves the activity feed.
type Handler struct {
	feed   Feed
	logger *slog.Logger
}

func New(feed Feed, logger *slog.Logger) *Handler {
	return &Handler{
		feed:   feed,
		logger: logger,
	}
}

// Register mounts the feed endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/activity", h.HandleFeed)
}

// EventResponse is the HTTP shape of one activity event.
type EventResponse struct {
	Timestamp time.Time      `json:"timestamp"`
	Kind      string         `json:"kind"`
	Attrs     map[string]any `json:"attrs,omitempty"`
}

// FeedResponse wraps the user's events, newest first.
type FeedResponse struct {
	Events []EventResponse `json:"events"`
}

// HandleFeed handles GET /activity. An optional "limit" query parameter
// caps the page; it defaults and clamps server-side.
func (h *Handler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, domerr.New(domerr.CodeUnauthorized, "authentication required"))
		return
	}

	limit := activity.DefaultFeedLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httputil.WriteError(w, domerr.New(domerr.CodeInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = min(n, activity.DefaultFeedLimit)
	}

	events, err := h.feed.ListByUser(ctx, userID, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "activity feed read failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	resp := FeedResponse{Events: make([]EventResponse, 0, len(events))}
	for _, ev := range events {
		resp.Events = append(resp.Events, EventResponse{
			Timestamp: ev.Timestamp,
			Kind:      string(ev.Kind),
			Attrs:     attrs.Collect(ev.Attrs),
		})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
