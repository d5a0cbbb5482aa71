package domain

import "callsync/pkg/domerr"

// Direction is a domain value identifying which way a call travelled.
// Invariant: the value must be one of the supported directions.
//
// Usage: construct via ParseDirection at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type Direction string

// Supported call directions.
const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// validDirections is the single source of truth for valid directions.
var validDirections = map[Direction]bool{
	DirectionInbound:  true,
	DirectionOutbound: true,
}

// ParseDirection constructs a Direction from external input.
//
// Usage: call from handlers and CSV import when parsing rows.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported;
// no other errors are expected.
func ParseDirection(s string) (Direction, error) {
	if s == "" {
		return "", domerr.New(domerr.CodeInvalidInput, "direction cannot be empty")
	}
	d := Direction(s)
	if !d.IsValid() {
		return "", domerr.New(domerr.CodeInvalidInput, "invalid direction")
	}
	return d, nil
}

// IsValid checks if the direction is one of the supported enum values.
func (d Direction) IsValid() bool {
	return validDirections[d]
}

// String returns the string representation of the direction.
func (d Direction) String() string {
	return string(d)
}
