package csvimport

import (
	"time"

	id "callsync/pkg/domain"
	"callsync/pkg/domerr"
)

// Import is the persisted record of one CSV upload: how many rows the file
// contained and what happened to each of them. RowErrors keeps the per-row
// failures so users can fix the export instead of guessing.
type Import struct {
	ID        id.ImportID
	UserID    id.UserID
	Filename  string
	TotalRows int
	Inserted  int
	Skipped   int
	Failed    int
	RowErrors []string
	CreatedAt time.Time
}

// Validate enforces the import invariants shared by every store.
func (i Import) Validate() error {
	if i.ID.IsZero() {
		return domerr.New(domerr.CodeInvalidInput, "import id is required")
	}
	if i.UserID.IsZero() {
		return domerr.New(domerr.CodeInvalidInput, "user id is required")
	}
	if i.TotalRows < 0 || i.Inserted < 0 || i.Skipped < 0 || i.Failed < 0 {
		return domerr.New(domerr.CodeInvalidInput, "row counts must not be negative")
	}
	if i.Inserted+i.Skipped+i.Failed != i.TotalRows {
		return domerr.New(domerr.CodeInvalidInput, "row counts must sum to total rows")
	}
	return nil
}

// Summary is what an import call returns to the uploader. It mirrors the
// persisted Import minus identity bookkeeping.
type Summary struct {
	ImportID  id.ImportID
	TotalRows int
	Inserted  int
	Skipped   int
	Failed    int
	RowErrors []string
}
