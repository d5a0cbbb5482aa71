package activity

import (
	"context"
	"log/slog"

	id "callsync/pkg/domain"
	"callsync/pkg/requestcontext"
)

// Recorder is the emitting side of the activity feed. Domain services hold
// this interface; Record must never block or fail the request path.
type Recorder interface {
	Record(ctx context.Context, event Event)
}

// Store persists events and serves the per-user feed.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByUser(ctx context.Context, userID id.UserID, limit int) ([]Event, error)
}

const defaultInboxSize = 256

// Service accepts events on the request path and hands them to the Worker
// through a buffered inbox. When the inbox is full the event is dropped and
// logged; activity is an observability feed, not a ledger.
type Service struct {
	inbox  chan Event
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	return &Service{
		inbox:  make(chan Event, defaultInboxSize),
		logger: logger,
	}
}

// Record enriches the event with request-scoped metadata and enqueues it.
func (s *Service) Record(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if rid := requestcontext.RequestID(ctx); rid != "" {
		event.Attrs = append(event.Attrs, "request_id", rid)
	}
	if ip := requestcontext.ClientIP(ctx); ip != "" {
		event.Attrs = append(event.Attrs, "client_ip", ip)
	}

	select {
	case s.inbox <- event:
	default:
		s.logger.WarnContext(ctx, "activity inbox full, dropping event",
			"kind", event.Kind,
			"user_id", event.UserID.String(),
		)
	}
}

// Events exposes the inbox to the Worker.
func (s *Service) Events() <-chan Event {
	return s.inbox
}
