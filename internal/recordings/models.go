package recordings

import (
	"time"

	"callsync/internal/matching"
	id "callsync/pkg/domain"
	"callsync/pkg/domerr"
)

// Recording is the metadata observed when a call recording was captured. The
// audio itself lives in object storage; StoragePath is the opaque key handed
// to us at registration. Phone number and duration are frequently missing
// from capture devices, so both stay optional all the way down.
type Recording struct {
	ID              id.RecordingID
	UserID          id.UserID
	ObservedTime    time.Time
	DurationSeconds *int
	PhoneNumber     *string
	StoragePath     string
	CreatedAt       time.Time
}

// Validate checks invariants once, at registration. Everything downstream,
// the matcher included, trusts a stored recording.
func (r Recording) Validate() error {
	if r.ID.IsZero() {
		return domerr.New(domerr.CodeInvalidInput, "recording id is required")
	}
	if r.UserID.IsZero() {
		return domerr.New(domerr.CodeInvalidInput, "user id is required")
	}
	if r.ObservedTime.IsZero() {
		return domerr.New(domerr.CodeInvalidInput, "observed time is required")
	}
	if r.DurationSeconds != nil && *r.DurationSeconds < 0 {
		return domerr.New(domerr.CodeInvalidInput, "duration must not be negative")
	}
	if r.PhoneNumber != nil && *r.PhoneNumber == "" {
		return domerr.New(domerr.CodeInvalidInput, "phone number must not be blank")
	}
	return nil
}

// MatchInput projects the recording into the matcher's input shape.
func (r Recording) MatchInput() matching.Recording {
	return matching.Recording{
		ObservedTime:    r.ObservedTime,
		PhoneNumber:     r.PhoneNumber,
		DurationSeconds: r.DurationSeconds,
	}
}
