package csvimport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"callsync/internal/activity"
	"callsync/internal/cdr"
	id "callsync/pkg/domain"
	"callsync/pkg/domerr"
	"callsync/pkg/platform/sentinel"
	"callsync/pkg/requestcontext"
)

// RecordStore is what the importer needs from call record persistence.
type RecordStore interface {
	Insert(ctx context.Context, rec cdr.Record) error
}

// Store persists the per-upload import summaries.
type Store interface {
	Insert(ctx context.Context, imp Import) error
	GetByID(ctx context.Context, impID id.ImportID) (Import, error)
	ListByUser(ctx context.Context, userID id.UserID) ([]Import, error)
}

// maxRowErrors caps how many per-row failures one summary retains. A file
// with thousands of broken lines has a structural problem a sample conveys
// just as well.
const maxRowErrors = 50

// Service turns a CSV stream into call records. One bad row never aborts an
// upload; it is counted, sampled into RowErrors, and skipped past.
type Service struct {
	records  RecordStore
	imports  Store
	activity activity.Recorder
	logger   *slog.Logger
}

func NewService(records RecordStore, imports Store, recorder activity.Recorder, logger *slog.Logger) *Service {
	return &Service{
		records:  records,
		imports:  imports,
		activity: recorder,
		logger:   logger,
	}
}

// Import parses the stream and inserts every valid row for the user. Rows
// the dedupe index recognizes count as skipped; rows that fail parsing or
// validation count as failed. The returned summary is also persisted.
func (s *Service) Import(ctx context.Context, userID id.UserID, filename string, r io.Reader) (Summary, error) {
	parser, err := NewParser(r)
	if err != nil {
		return Summary{}, err
	}

	importID := id.NewImportID()
	now := requestcontext.Now(ctx).UTC()

	var total, inserted, skipped, failed int
	var rowErrors []string

	collect := func(err error) {
		failed++
		if len(rowErrors) < maxRowErrors {
			rowErrors = append(rowErrors, err.Error())
		}
	}

	for {
		row, err := parser.Next()
		if err == io.EOF {
			break
		}
		total++

		var rowErr *RowError
		if errors.As(err, &rowErr) {
			collect(rowErr)
			continue
		}
		if err != nil {
			return Summary{}, fmt.Errorf("import csv: %w", err)
		}

		rec := cdr.Record{
			ID:                  id.NewCDRID(),
			UserID:              userID,
			ImportID:            importID,
			CallTime:            row.CallTime,
			Direction:           row.Direction,
			SourceNumber:        row.SourceNumber,
			DestinationNumber:   row.DestinationNumber,
			DurationSeconds:     row.DurationSeconds,
			Disposition:         row.Disposition,
			TimeToAnswerSeconds: row.TimeToAnswerSeconds,
			CreatedAt:           now,
		}

		switch err := s.records.Insert(ctx, rec); {
		case err == nil:
			inserted++
		case errors.Is(err, sentinel.ErrConflict):
			skipped++
		case domerr.HasCode(err, domerr.CodeInvalidInput):
			collect(&RowError{Line: parser.Line(), Cause: err})
		default:
			return Summary{}, fmt.Errorf("import csv: insert row %d: %w", parser.Line(), err)
		}
	}

	imp := Import{
		ID:        importID,
		UserID:    userID,
		Filename:  filename,
		TotalRows: total,
		Inserted:  inserted,
		Skipped:   skipped,
		Failed:    failed,
		RowErrors: rowErrors,
		CreatedAt: now,
	}
	if err := s.imports.Insert(ctx, imp); err != nil {
		return Summary{}, fmt.Errorf("import csv: record summary: %w", err)
	}

	s.activity.Record(ctx, activity.Event{
		UserID: userID,
		Kind:   activity.KindCDRImported,
		Attrs: []any{
			"import_id", importID.String(),
			"filename", filename,
			"total_rows", total,
			"inserted", inserted,
			"skipped", skipped,
			"failed", failed,
		},
	})
	s.logger.InfoContext(ctx, "csv imported",
		"import_id", importID.String(),
		"user_id", userID.String(),
		"total_rows", total,
		"inserted", inserted,
		"skipped", skipped,
		"failed", failed,
	)

	return Summary{
		ImportID:  importID,
		TotalRows: total,
		Inserted:  inserted,
		Skipped:   skipped,
		Failed:    failed,
		RowErrors: rowErrors,
	}, nil
}

// Get returns one of the user's import summaries, hiding other users' rows.
func (s *Service) Get(ctx context.Context, userID id.UserID, impID id.ImportID) (Import, error) {
	imp, err := s.imports.GetByID(ctx, impID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Import{}, domerr.New(domerr.CodeNotFound, "import not found")
	}
	if err != nil {
		return Import{}, fmt.Errorf("get import: %w", err)
	}
	if imp.UserID != userID {
		return Import{}, domerr.New(domerr.CodeNotFound, "import not found")
	}
	return imp, nil
}

// List returns the user's imports newest first.
func (s *Service) List(ctx context.Context, userID id.UserID) ([]Import, error) {
	imps, err := s.imports.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list imports: %w", err)
	}
	return imps, nil
}
