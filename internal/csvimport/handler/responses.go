package handler

import (
	"time"

	"callsync/internal/csvimport"
)

// SummaryResponse is the HTTP response body for a completed upload.
type SummaryResponse struct {
	ImportID  string   `json:"import_id"`
	TotalRows int      `json:"total_rows"`
	Inserted  int      `json:"inserted"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
	RowErrors []string `json:"row_errors,omitempty"`
}

// FromSummary converts an import summary into the response shape.
func FromSummary(s csvimport.Summary) SummaryResponse {
	return SummaryResponse{
		ImportID:  s.ImportID.String(),
		TotalRows: s.TotalRows,
		Inserted:  s.Inserted,
		Skipped:   s.Skipped,
		Failed:    s.Failed,
		RowErrors: s.RowErrors,
	}
}

// ImportResponse is the HTTP shape of one persisted import.
type ImportResponse struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	TotalRows int       `json:"total_rows"`
	Inserted  int       `json:"inserted"`
	Skipped   int       `json:"skipped"`
	Failed    int       `json:"failed"`
	RowErrors []string  `json:"row_errors,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ListResponse wraps the user's imports.
type ListResponse struct {
	Imports []ImportResponse `json:"imports"`
}

// FromImport converts a persisted import into the response shape.
func FromImport(imp csvimport.Import) ImportResponse {
	return ImportResponse{
		ID:        imp.ID.String(),
		Filename:  imp.Filename,
		TotalRows: imp.TotalRows,
		Inserted:  imp.Inserted,
		Skipped:   imp.Skipped,
		Failed:    imp.Failed,
		RowErrors: imp.RowErrors,
		CreatedAt: imp.CreatedAt,
	}
}
