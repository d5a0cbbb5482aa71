//go:build integration

package links_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"callsync/internal/links"
	id "callsync/pkg/domain"
	"callsync/pkg/platform/sentinel"
	"callsync/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *links.PostgresStore
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
	s.store = links.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx, "links")
	s.Require().NoError(err)
	s.user = id.UserID(uuid.New())
}

func (s *PostgresStoreSuite) newLink(recID id.RecordingID, cdrID id.CDRID, at time.Time) links.Link {
	return links.Link{
		ID:            id.NewLinkID(),
		UserID:        s.user,
		RecordingID:   recID,
		CDRID:         cdrID,
		Score:         0.92,
		Quality:       "high",
		Method:        links.MethodManual,
		DeviceSummary: "Firefox on GNU/Linux",
		ClientIP:      "203.0.113.9",
		CreatedAt:     at,
	}
}

// TestCommitLifecycle walks the invariant end to end: create, idempotent
// re-commit, replace, claim conflict, release, re-claim.
func (s *PostgresStoreSuite) TestCommitLifecycle() {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	recID := id.NewRecordingID()
	firstCDR := id.NewCDRID()
	secondCDR := id.NewCDRID()

	first, err := s.store.Commit(ctx, s.newLink(recID, firstCDR, base))
	s.Require().NoError(err)

	active, err := s.store.ActiveByRecording(ctx, recID)
	s.Require().NoError(err)
	s.Equal(first.ID, active.ID)
	s.Equal("Firefox on GNU/Linux", active.DeviceSummary)
	s.Equal("203.0.113.9", active.ClientIP)

	// Same pair again: existing row comes back, no second insert.
	again, err := s.store.Commit(ctx, s.newLink(recID, firstCDR, base.Add(time.Minute)))
	s.Require().NoError(err)
	s.Equal(first.ID, again.ID)

	// Different record: prior link is released, not mutated in place.
	replaced, err := s.store.Commit(ctx, s.newLink(recID, secondCDR, base.Add(2*time.Minute)))
	s.Require().NoError(err)
	s.NotEqual(first.ID, replaced.ID)

	active, err = s.store.ActiveByRecording(ctx, recID)
	s.Require().NoError(err)
	s.Equal(secondCDR, active.CDRID)

	var history int
	err = s.postgres.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM links WHERE recording_id = $1", recID.String()).Scan(&history)
	s.Require().NoError(err)
	s.Equal(2, history)

	// The claimed record is off limits to other recordings.
	_, err = s.store.Commit(ctx, s.newLink(id.NewRecordingID(), secondCDR, base.Add(3*time.Minute)))
	s.Require().ErrorIs(err, sentinel.ErrConflict)

	// Release frees both sides.
	released, err := s.store.Release(ctx, recID, base.Add(time.Hour))
	s.Require().NoError(err)
	s.Require().NotNil(released.ReleasedAt)

	_, err = s.store.ActiveByRecording(ctx, recID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.Commit(ctx, s.newLink(id.NewRecordingID(), secondCDR, base.Add(2*time.Hour)))
	s.Require().NoError(err)

	_, err = s.store.Release(ctx, recID, base.Add(3*time.Hour))
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

// TestActiveCDRIDs verifies the claimed-record view is scoped per user.
func (s *PostgresStoreSuite) TestActiveCDRIDs() {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	recA, recB := id.NewRecordingID(), id.NewRecordingID()
	cdrA, cdrB := id.NewCDRID(), id.NewCDRID()

	_, err := s.store.Commit(ctx, s.newLink(recA, cdrA, base))
	s.Require().NoError(err)
	_, err = s.store.Commit(ctx, s.newLink(recB, cdrB, base))
	s.Require().NoError(err)

	other := s.newLink(id.NewRecordingID(), id.NewCDRID(), base)
	other.UserID = id.UserID(uuid.New())
	_, err = s.store.Commit(ctx, other)
	s.Require().NoError(err)

	claimed, err := s.store.ActiveCDRIDs(ctx, s.user)
	s.Require().NoError(err)
	s.Len(claimed, 2)
	s.Equal(recA, claimed[cdrA])
	s.Equal(recB, claimed[cdrB])

	_, err = s.store.Release(ctx, recA, base.Add(time.Hour))
	s.Require().NoError(err)

	claimed, err = s.store.ActiveCDRIDs(ctx, s.user)
	s.Require().NoError(err)
	s.Len(claimed, 1)
}

// TestConcurrentCommit races two commits for the same recording; exactly one
// row may stay active whoever wins.
func (s *PostgresStoreSuite) TestConcurrentCommit() {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	recID := id.NewRecordingID()

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Unique-index violations from losing racers are acceptable;
			// the invariant below is what matters.
			_, _ = s.store.Commit(ctx, s.newLink(recID, id.NewCDRID(), base))
		}()
	}
	wg.Wait()

	var active int
	err := s.postgres.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM links WHERE recording_id = $1 AND released_at IS NULL", recID.String()).Scan(&active)
	s.Require().NoError(err)
	s.Equal(1, active)
}
