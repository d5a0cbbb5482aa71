package handler

import (
	"time"

	"callsync/internal/recordings"
)

// RecordingResponse is the HTTP shape of one recording.
type RecordingResponse struct {
	ID              string    `json:"id"`
	ObservedTime    time.Time `json:"observed_time"`
	DurationSeconds *int      `json:"duration_seconds,omitempty"`
	PhoneNumber     *string   `json:"phone_number,omitempty"`
	StoragePath     string    `json:"storage_path"`
	CreatedAt       time.Time `json:"created_at"`
}

// ListResponse wraps the user's recordings.
type ListResponse struct {
	Recordings []RecordingResponse `json:"recordings"`
}

// FromRecording converts a recording into the response shape.
func FromRecording(rec recordings.Recording) RecordingResponse {
	return RecordingResponse{
		ID:              rec.ID.String(),
		ObservedTime:    rec.ObservedTime,
		DurationSeconds: rec.DurationSeconds,
		PhoneNumber:     rec.PhoneNumber,
		StoragePath:     rec.StoragePath,
		CreatedAt:       rec.CreatedAt,
	}
}
