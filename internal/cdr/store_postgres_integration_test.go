//go:build integration

package cdr_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"callsync/internal/cdr"
	id "callsync/pkg/domain"
	"callsync/pkg/platform/sentinel"
	"callsync/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *cdr.PostgresStore
	user     id.UserID
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = cdr.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx, "call_records")
	s.Require().NoError(err)
	s.user = id.UserID(uuid.New())
}

func (s *PostgresStoreSuite) newRecord(callTime time.Time, source string) cdr.Record {
	rec := cdr.Record{
		ID:        id.NewCDRID(),
		UserID:    s.user,
		ImportID:  id.NewImportID(),
		CallTime:  callTime,
		Direction: id.DirectionOutbound,
		CreatedAt: time.Now().UTC(),
	}
	if source != "" {
		rec.SourceNumber = &source
	}
	return rec
}

// TestInsertRoundTrip verifies nullable columns survive a write and read back.
func (s *PostgresStoreSuite) TestInsertRoundTrip() {
	ctx := context.Background()
	callTime := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

	dest := "555-0100"
	duration := 245
	disposition := "ANSWERED"
	tta := 4

	rec := s.newRecord(callTime, "555-0199")
	rec.DestinationNumber = &dest
	rec.DurationSeconds = &duration
	rec.Disposition = &disposition
	rec.TimeToAnswerSeconds = &tta

	s.Require().NoError(s.store.Insert(ctx, rec))

	found, err := s.store.GetByID(ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(rec.ID, found.ID)
	s.Equal(rec.UserID, found.UserID)
	s.True(found.CallTime.Equal(callTime))
	s.Require().NotNil(found.DurationSeconds)
	s.Equal(duration, *found.DurationSeconds)
	s.Require().NotNil(found.Disposition)
	s.Equal(disposition, *found.Disposition)
	s.Require().NotNil(found.TimeToAnswerSeconds)
	s.Equal(tta, *found.TimeToAnswerSeconds)
}

// TestNullColumns verifies a minimal row reads back with nil optionals.
func (s *PostgresStoreSuite) TestNullColumns() {
	ctx := context.Background()

	rec := s.newRecord(time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC), "")
	s.Require().NoError(s.store.Insert(ctx, rec))

	found, err := s.store.GetByID(ctx, rec.ID)
	s.Require().NoError(err)
	s.Nil(found.SourceNumber)
	s.Nil(found.DestinationNumber)
	s.Nil(found.DurationSeconds)
	s.Nil(found.Disposition)
	s.Nil(found.TimeToAnswerSeconds)
}

// TestNotFound verifies the sentinel for missing rows.
func (s *PostgresStoreSuite) TestNotFound() {
	_, err := s.store.GetByID(context.Background(), id.NewCDRID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

// TestConcurrentDuplicateInsert verifies that concurrent inserts of the same
// logical call (user, time, numbers) result in exactly one stored row. This
// is the guard that makes CSV re-uploads idempotent.
func (s *PostgresStoreSuite) TestConcurrentDuplicateInsert() {
	ctx := context.Background()
	callTime := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	const goroutines = 50

	var wg sync.WaitGroup
	var successCount atomic.Int32
	var conflictCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			rec := s.newRecord(callTime, "555-0142")
			err := s.store.Insert(ctx, rec)
			if err == nil {
				successCount.Add(1)
			} else if errors.Is(err, sentinel.ErrConflict) {
				conflictCount.Add(1)
			}
		}()
	}

	wg.Wait()

	s.Equal(int32(1), successCount.Load(), "exactly one insert should win")
	s.Equal(int32(goroutines-1), conflictCount.Load(), "all others should conflict")
}

// TestFindWindowBoundsAndOrder verifies inclusive window bounds, user
// isolation and ascending call-time order straight from SQL.
func (s *PostgresStoreSuite) TestFindWindowBoundsAndOrder() {
	ctx := context.Background()
	base := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	atUpper := s.newRecord(base.Add(10*time.Minute), "555-0003")
	atLower := s.newRecord(base, "555-0001")
	inside := s.newRecord(base.Add(5*time.Minute), "555-0002")
	outside := s.newRecord(base.Add(11*time.Minute), "555-0004")

	foreign := s.newRecord(base.Add(time.Minute), "555-0005")
	foreign.UserID = id.UserID(uuid.New())

	for _, rec := range []cdr.Record{atUpper, atLower, inside, outside, foreign} {
		s.Require().NoError(s.store.Insert(ctx, rec))
	}

	got, err := s.store.FindWindow(ctx, s.user, base, base.Add(10*time.Minute))
	s.Require().NoError(err)

	s.Require().Len(got, 3)
	s.Equal(atLower.ID, got[0].ID)
	s.Equal(inside.ID, got[1].ID)
	s.Equal(atUpper.ID, got[2].ID)
}

// TestCountByImport verifies the per-batch count survives concurrent inserts.
func (s *PostgresStoreSuite) TestCountByImport() {
	ctx := context.Background()
	base := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	batch := id.NewImportID()
	const rows = 20

	var wg sync.WaitGroup
	for i := 0; i < rows; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			rec := s.newRecord(base.Add(time.Duration(idx)*time.Minute), "555-0100")
			rec.ImportID = batch
			s.Require().NoError(s.store.Insert(ctx, rec))
		}(i)
	}
	wg.Wait()

	count, err := s.store.CountByImport(ctx, batch)
	s.Require().NoError(err)
	s.Equal(rows, count)
}
