package handler

import (
	"strings"
	"time"

	"callsync/internal/recordings"
	"callsync/pkg/domerr"
)

// RegisterRequest is the HTTP request body for POST /recordings.
type RegisterRequest struct {
	ObservedTime    time.Time `json:"observed_time"`
	DurationSeconds *int      `json:"duration_seconds,omitempty"`
	PhoneNumber     *string   `json:"phone_number,omitempty"`
	StoragePath     string    `json:"storage_path"`
}

// Validate validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *RegisterRequest) Validate() error {
	if r == nil {
		return domerr.New(domerr.CodeBadRequest, "request body is required")
	}
	if r.ObservedTime.IsZero() {
		return domerr.New(domerr.CodeInvalidInput, "observed_time is required")
	}
	r.StoragePath = strings.TrimSpace(r.StoragePath)
	if r.StoragePath == "" {
		return domerr.New(domerr.CodeInvalidInput, "storage_path is required")
	}
	if r.DurationSeconds != nil && *r.DurationSeconds < 0 {
		return domerr.New(domerr.CodeInvalidInput, "duration_seconds must not be negative")
	}
	return nil
}

// Input converts the request into the service input.
func (r *RegisterRequest) Input() recordings.RegisterInput {
	return recordings.RegisterInput{
		ObservedTime:    r.ObservedTime,
		DurationSeconds: r.DurationSeconds,
		PhoneNumber:     r.PhoneNumber,
		StoragePath:     r.StoragePath,
	}
}
