package activity

import (
	"context"
	"log/slog"
)

// Publisher mirrors events to an external stream. Optional; nil disables it.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Worker consumes events from the service inbox and persists them. Store and
// publish failures are logged and skipped: a broken sink must never back up
// into request handling.
type Worker struct {
	store     Store
	publisher Publisher
	inbox     <-chan Event
	logger    *slog.Logger
}

func NewWorker(store Store, publisher Publisher, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{
		store:     store,
		publisher: publisher,
		inbox:     inbox,
		logger:    logger,
	}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "activity append failed",
					"kind", event.Kind,
					"user_id", event.UserID.String(),
					"error", err,
				)
			}
			if w.publisher != nil {
				if err := w.publisher.Publish(ctx, event); err != nil {
					w.logger.WarnContext(ctx, "activity publish failed",
						"kind", event.Kind,
						"error", err,
					)
				}
			}
		}
	}
}
