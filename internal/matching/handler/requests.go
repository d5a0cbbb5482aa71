package handler

import (
	"strings"

	"callsync/internal/links"
	"callsync/internal/matching"
	id "callsync/pkg/domain"
	"callsync/pkg/domerr"
)

// ComputeMatchesRequest is the HTTP request body for
// POST /recordings/{recordingID}/matches. Every knob is optional; absent or
// zero values fall back to the defaults.
type ComputeMatchesRequest struct {
	TimeToleranceMinutes     *float64 `json:"time_tolerance_minutes,omitempty"`
	PhoneNumberMatch         *bool    `json:"phone_number_match,omitempty"`
	DurationToleranceSeconds *float64 `json:"duration_tolerance_seconds,omitempty"`
	RequireDispositionMatch  *bool    `json:"require_disposition_match,omitempty"`
}

// Validate validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *ComputeMatchesRequest) Validate() error {
	if r == nil {
		return domerr.New(domerr.CodeBadRequest, "request body is required")
	}
	if r.TimeToleranceMinutes != nil && *r.TimeToleranceMinutes <= 0 {
		return domerr.New(domerr.CodeInvalidInput, "time_tolerance_minutes must be positive")
	}
	if r.DurationToleranceSeconds != nil && *r.DurationToleranceSeconds <= 0 {
		return domerr.New(domerr.CodeInvalidInput, "duration_tolerance_seconds must be positive")
	}
	return nil
}

// Options merges the request over the default matching configuration.
func (r *ComputeMatchesRequest) Options() matching.Options {
	opts := matching.DefaultOptions()
	if r.TimeToleranceMinutes != nil {
		opts.TimeToleranceMinutes = *r.TimeToleranceMinutes
	}
	if r.PhoneNumberMatch != nil {
		opts.PhoneNumberMatch = *r.PhoneNumberMatch
	}
	if r.DurationToleranceSeconds != nil {
		opts.DurationToleranceSeconds = *r.DurationToleranceSeconds
	}
	if r.RequireDispositionMatch != nil {
		opts.RequireDispositionMatch = *r.RequireDispositionMatch
	}
	return opts
}

// CommitLinkRequest is the HTTP request body for
// POST /recordings/{recordingID}/link.
type CommitLinkRequest struct {
	CDRID  string `json:"cdr_id"`
	Method string `json:"method,omitempty"`

	// Parsed values (populated by Validate)
	parsedCDRID  id.CDRID
	parsedMethod links.Method
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *CommitLinkRequest) Validate() error {
	if r == nil {
		return domerr.New(domerr.CodeBadRequest, "request body is required")
	}

	cdrID, err := id.ParseCDRID(strings.TrimSpace(r.CDRID))
	if err != nil {
		return err
	}
	r.parsedCDRID = cdrID

	switch strings.TrimSpace(r.Method) {
	case "", string(links.MethodManual):
		r.parsedMethod = links.MethodManual
	case string(links.MethodAuto):
		r.parsedMethod = links.MethodAuto
	default:
		return domerr.Newf(domerr.CodeInvalidInput, "unknown link method %q", r.Method)
	}
	return nil
}

// ParsedCDRID returns the validated call record ID.
func (r *CommitLinkRequest) ParsedCDRID() id.CDRID {
	return r.parsedCDRID
}

// ParsedMethod returns the validated link method.
func (r *CommitLinkRequest) ParsedMethod() links.Method {
	return r.parsedMethod
}
