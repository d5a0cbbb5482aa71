package cdr

import (
	"time"

	"callsync/internal/matching"
	id "callsync/pkg/domain"
	"callsync/pkg/domerr"
)

// Record is one imported call detail row: the phone system's account of a
// call. Every field beyond user, time and direction is optional because
// exports differ wildly between providers.
type Record struct {
	ID                  id.CDRID
	UserID              id.UserID
	ImportID            id.ImportID
	CallTime            time.Time
	Direction           id.Direction
	SourceNumber        *string
	DestinationNumber   *string
	DurationSeconds     *int
	Disposition         *string
	TimeToAnswerSeconds *int
	CreatedAt           time.Time
}

// Validate enforces the row invariants shared by every store implementation.
// Rows failing validation are rejected at import and never reach matching.
func (r Record) Validate() error {
	if r.ID.IsZero() {
		return domerr.New(domerr.CodeInvalidInput, "record id is required")
	}
	if r.UserID.IsZero() {
		return domerr.New(domerr.CodeInvalidInput, "user id is required")
	}
	if r.ImportID.IsZero() {
		return domerr.New(domerr.CodeInvalidInput, "import id is required")
	}
	if r.CallTime.IsZero() {
		return domerr.New(domerr.CodeInvalidInput, "call time is required")
	}
	if !r.Direction.IsValid() {
		return domerr.New(domerr.CodeInvalidInput, "invalid direction")
	}
	if r.DurationSeconds != nil && *r.DurationSeconds < 0 {
		return domerr.New(domerr.CodeInvalidInput, "duration must not be negative")
	}
	if r.TimeToAnswerSeconds != nil && *r.TimeToAnswerSeconds < 0 {
		return domerr.New(domerr.CodeInvalidInput, "time to answer must not be negative")
	}
	return nil
}

// Candidate converts the record into the matcher's input snapshot.
func (r Record) Candidate() matching.Candidate {
	return matching.Candidate{
		ID:                  r.ID,
		CallTime:            r.CallTime,
		Direction:           r.Direction,
		SourceNumber:        r.SourceNumber,
		DestinationNumber:   r.DestinationNumber,
		DurationSeconds:     r.DurationSeconds,
		Disposition:         r.Disposition,
		TimeToAnswerSeconds: r.TimeToAnswerSeconds,
	}
}
