package handler

import (
	"time"

	"callsync/internal/links"
	"callsync/internal/matching/service"
)

// MatchesResponse is the HTTP response body for the match endpoints.
type MatchesResponse struct {
	RecordingID string               `json:"recording_id"`
	Outcome     string               `json:"outcome"`
	PoolSize    int                  `json:"pool_size"`
	Matches     []service.MatchView  `json:"matches"`
	Best        *service.MatchView   `json:"best,omitempty"`
	BestQuality *service.QualityView `json:"best_quality,omitempty"`
	ComputedAt  time.Time            `json:"computed_at"`
}

// FromResult converts a service result into the response shape.
func FromResult(result service.Result) MatchesResponse {
	return MatchesResponse{
		RecordingID: result.RecordingID.String(),
		Outcome:     string(result.Outcome),
		PoolSize:    result.PoolSize,
		Matches:     result.Matches,
		Best:        result.Best,
		BestQuality: result.BestQuality,
		ComputedAt:  result.ComputedAt,
	}
}

// LinkResponse is the HTTP response body for the link endpoints.
type LinkResponse struct {
	ID            string     `json:"id"`
	RecordingID   string     `json:"recording_id"`
	CDRID         string     `json:"cdr_id"`
	Score         float64    `json:"score"`
	Quality       string     `json:"quality"`
	Method        string     `json:"method"`
	DeviceSummary string     `json:"device_summary,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	ReleasedAt    *time.Time `json:"released_at,omitempty"`
}

// FromLink converts a link into the response shape.
func FromLink(link links.Link) LinkResponse {
	return LinkResponse{
		ID:            link.ID.String(),
		RecordingID:   link.RecordingID.String(),
		CDRID:         link.CDRID.String(),
		Score:         link.Score,
		Quality:       link.Quality,
		Method:        string(link.Method),
		DeviceSummary: link.DeviceSummary,
		CreatedAt:     link.CreatedAt,
		ReleasedAt:    link.ReleasedAt,
	}
}
