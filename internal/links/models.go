package links

import (
	"time"

	id "callsync/pkg/domain"
	"callsync/pkg/domerr"
)

// Method records how a link came to exist.
type Method string

const (
	// MethodManual marks a link confirmed by a reviewer.
	MethodManual Method = "manual"

	// MethodAuto marks a link committed automatically because the best match
	// cleared the score threshold.
	MethodAuto Method = "auto"
)

// Link is the persisted association between a recording and the call record
// it was confirmed to represent. A recording and a call record each carry at
// most one live link; re-linking releases the prior row instead of mutating
// it, so the table doubles as a confirmation history.
type Link struct {
	ID            id.LinkID
	UserID        id.UserID
	RecordingID   id.RecordingID
	CDRID         id.CDRID
	Score         float64
	Quality       string
	Method        Method
	DeviceSummary string
	ClientIP      string
	CreatedAt     time.Time
	ReleasedAt    *time.Time
}

// Active reports whether the link is the live one for its recording.
func (l Link) Active() bool {
	return l.ReleasedAt == nil
}

// Validate enforces the link invariants shared by every store implementation.
func (l Link) Validate() error {
	if l.ID.IsZero() {
		return domerr.New(domerr.CodeInvalidInput, "link id is required")
	}
	if l.UserID.IsZero() {
		return domerr.New(domerr.CodeInvalidInput, "user id is required")
	}
	if l.RecordingID.IsZero() {
		return domerr.New(domerr.CodeInvalidInput, "recording id is required")
	}
	if l.CDRID.IsZero() {
		return domerr.New(domerr.CodeInvalidInput, "call record id is required")
	}
	if l.Score < 0 || l.Score > 1 {
		return domerr.New(domerr.CodeInvalidInput, "score must be in [0,1]")
	}
	if l.Method != MethodManual && l.Method != MethodAuto {
		return domerr.New(domerr.CodeInvalidInput, "invalid link method")
	}
	return nil
}
