package matching

import (
	"time"

	id "callsync/pkg/domain"
)

// Shared fixtures for the matching tests.

var baseTime = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func strPtr(s string) *string   { return &s }
func intPtr(n int) *int         { return &n }
func f64Ptr(f float64) *float64 { return &f }

// newCandidate builds a minimal candidate at the given offset from baseTime.
func newCandidate(offset time.Duration) Candidate {
	return Candidate{
		ID:        id.NewCDRID(),
		CallTime:  baseTime.Add(offset),
		Direction: id.DirectionInbound,
	}
}

// newRecording builds a recording observed at baseTime.
func newRecording() Recording {
	return Recording{ObservedTime: baseTime}
}
