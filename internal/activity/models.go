package activity

import (
	"time"

	id "callsync/pkg/domain"
)

// Kind names a user-visible action in the matching lifecycle.
type Kind string

const (
	KindRecordingRegistered Kind = "recording.registered"
	KindCDRImported         Kind = "cdr.imported"
	KindMatchConfirmed      Kind = "match.confirmed"
	KindMatchRejected       Kind = "match.rejected"
)

// DefaultFeedLimit caps a feed read when the caller does not give a limit.
const DefaultFeedLimit = 100

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
//
// Attrs is an alternating key-value slice in the slog style; pkg/attrs
// extracts and collects values from it. The service enriches it with
// request-scoped metadata (request_id, client_ip) before the event leaves
// the request path.
type Event struct {
	Timestamp time.Time
	UserID    id.UserID
	Kind      Kind
	Attrs     []any
}
