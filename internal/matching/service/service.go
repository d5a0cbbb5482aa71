package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"callsync/internal/cdr"
	"callsync/internal/matching"
	"callsync/internal/matching/metrics"
	"callsync/internal/recordings"
	id "callsync/pkg/domain"
)

// CandidateSource is the time-windowed retrieval boundary: it returns the
// user's call records with call time inside [from, to], unordered.
type CandidateSource interface {
	FindWindow(ctx context.Context, userID id.UserID, from, to time.Time) ([]cdr.Record, error)
}

// LinkSource reports which call records are already claimed by a live link.
type LinkSource interface {
	LinkedCDRIDs(ctx context.Context, userID id.UserID) (map[id.CDRID]id.RecordingID, error)
}

// RecordingSource resolves a recording under the recordings service's
// ownership rules.
type RecordingSource interface {
	Get(ctx context.Context, userID id.UserID, recID id.RecordingID) (recordings.Recording, error)
}

// Cache holds recently computed results. Optional; a nil Cache disables it.
type Cache interface {
	Get(ctx context.Context, recordingID id.RecordingID) (Result, bool, error)
	Set(ctx context.Context, recordingID id.RecordingID, result Result) error
	Invalidate(ctx context.Context, recordingID id.RecordingID) error
}

// Result is one complete match computation for a recording.
type Result struct {
	RecordingID id.RecordingID   `json:"recording_id"`
	Outcome     matching.Outcome `json:"outcome"`
	PoolSize    int              `json:"pool_size"`
	Matches     []MatchView      `json:"matches"`
	Best        *MatchView       `json:"best,omitempty"`
	BestQuality *QualityView     `json:"best_quality,omitempty"`
	ComputedAt  time.Time        `json:"computed_at"`
}

// QualityView flattens the layered quality booleans into a single tier plus
// the reasons that degraded it.
type QualityView struct {
	Tier    string   `json:"tier"`
	Reasons []string `json:"reasons"`
}

// MatchView is a ScoredMatch flattened for callers and for the cache codec.
type MatchView struct {
	CDRID               id.CDRID     `json:"cdr_id"`
	CallTime            time.Time    `json:"call_time"`
	Direction           id.Direction `json:"direction"`
	SourceNumber        *string      `json:"source_number,omitempty"`
	DestinationNumber   *string      `json:"destination_number,omitempty"`
	DurationSeconds     *int         `json:"duration_seconds,omitempty"`
	Disposition         *string      `json:"disposition,omitempty"`
	Score               float64      `json:"score"`
	TimeDiffMinutes     float64      `json:"time_diff_minutes"`
	DurationDiffSeconds *float64     `json:"duration_diff_seconds,omitempty"`
	Reasons             []string     `json:"reasons"`
}

// Service drives one match request: gather the candidate pool and the
// claimed-record set in parallel, run the engine, classify the winner.
// It holds no state of its own; everything per-request flows through.
type Service struct {
	recordings RecordingSource
	candidates CandidateSource
	links      LinkSource
	cache      Cache
	metrics    *metrics.Metrics
	logger     *slog.Logger
	tracer     trace.Tracer
}

func NewService(recSrc RecordingSource, candSrc CandidateSource, linkSrc LinkSource, cache Cache, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		recordings: recSrc,
		candidates: candSrc,
		links:      linkSrc,
		cache:      cache,
		metrics:    m,
		logger:     logger,
		tracer:     otel.Tracer("callsync/matching"),
	}
}

// Match computes the ranked match list for one recording. The window handed
// to the candidate source is the recording's observed time padded by the
// time tolerance; anything outside it would score zero on time anyway.
// Call records claimed by other recordings are excluded from the pool; the
// record linked to this very recording stays in, so re-running a match on a
// linked recording still shows its confirmed row on top.
func (s *Service) Match(ctx context.Context, userID id.UserID, recordingID id.RecordingID, opts matching.Options) (Result, error) {
	rec, err := s.recordings.Get(ctx, userID, recordingID)
	if err != nil {
		return Result{}, err
	}

	tolerance := opts.TimeToleranceMinutes
	if tolerance <= 0 {
		tolerance = matching.DefaultTimeToleranceMinutes
	}
	pad := time.Duration(tolerance * float64(time.Minute))

	// Gather the pool and the claimed-record set in parallel; both reads are
	// independent and the rank step needs them together.
	var pool []cdr.Record
	var claimed map[id.CDRID]id.RecordingID

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pool, err = s.candidates.FindWindow(gctx, userID, rec.ObservedTime.Add(-pad), rec.ObservedTime.Add(pad))
		if err != nil {
			return fmt.Errorf("find candidates: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		claimed, err = s.links.LinkedCDRIDs(gctx, userID)
		if err != nil {
			return fmt.Errorf("list claimed records: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	eligible := make([]matching.Candidate, 0, len(pool))
	for _, record := range pool {
		if holder, ok := claimed[record.ID]; ok && holder != recordingID {
			continue
		}
		eligible = append(eligible, record.Candidate())
	}
	s.metrics.ObservePool(len(eligible))

	rankCtx, span := s.tracer.Start(ctx, "matching.FindAndRank",
		trace.WithAttributes(
			attribute.Int("pool_size", len(eligible)),
			attribute.String("recording_id", recordingID.String()),
		))
	start := time.Now()
	ranked, err := matching.FindAndRank(rankCtx, rec.MatchInput(), eligible, opts)
	s.metrics.ObserveRankLatency(time.Since(start))
	span.End()
	if err != nil {
		return Result{}, fmt.Errorf("rank candidates: %w", err)
	}

	outcome, best := matching.DecideOutcome(ranked, matching.DefaultMinScore)
	s.metrics.IncrementOutcome(string(outcome))

	result := Result{
		RecordingID: recordingID,
		Outcome:     outcome,
		PoolSize:    len(eligible),
		Matches:     make([]MatchView, 0, len(ranked)),
		ComputedAt:  time.Now().UTC(),
	}
	for _, m := range ranked {
		result.Matches = append(result.Matches, toView(m))
	}
	if best != nil {
		view := toView(*best)
		quality := qualityView(matching.Classify(*best))
		result.Best = &view
		result.BestQuality = &quality
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, recordingID, result); err != nil {
			s.logger.WarnContext(ctx, "match cache write failed",
				"recording_id", recordingID.String(),
				"error", err,
			)
		}
	}

	s.logger.InfoContext(ctx, "match computed",
		"recording_id", recordingID.String(),
		"pool_size", len(eligible),
		"outcome", string(outcome),
	)
	return result, nil
}

// Cached returns the recording's cached result when one is fresh, falling
// back to a full computation. Reads after a recent Match stay cheap; link
// commits and releases invalidate through InvalidateResult.
func (s *Service) Cached(ctx context.Context, userID id.UserID, recordingID id.RecordingID, opts matching.Options) (Result, error) {
	if s.cache != nil {
		// Ownership still has to hold before serving cached data.
		if _, err := s.recordings.Get(ctx, userID, recordingID); err != nil {
			return Result{}, err
		}
		result, ok, err := s.cache.Get(ctx, recordingID)
		if err != nil {
			s.logger.WarnContext(ctx, "match cache read failed",
				"recording_id", recordingID.String(),
				"error", err,
			)
		} else if ok {
			s.metrics.IncrementCacheHit()
			return result, nil
		}
		s.metrics.IncrementCacheMiss()
	}
	return s.Match(ctx, userID, recordingID, opts)
}

// InvalidateResult drops the recording's cached result. Called after link
// commits and releases, which change which candidates are eligible.
func (s *Service) InvalidateResult(ctx context.Context, recordingID id.RecordingID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, recordingID); err != nil {
		s.logger.WarnContext(ctx, "match cache invalidation failed",
			"recording_id", recordingID.String(),
			"error", err,
		)
	}
}

func toView(m matching.ScoredMatch) MatchView {
	return MatchView{
		CDRID:               m.Candidate.ID,
		CallTime:            m.Candidate.CallTime,
		Direction:           m.Candidate.Direction,
		SourceNumber:        m.Candidate.SourceNumber,
		DestinationNumber:   m.Candidate.DestinationNumber,
		DurationSeconds:     m.Candidate.DurationSeconds,
		Disposition:         m.Candidate.Disposition,
		Score:               m.Score,
		TimeDiffMinutes:     m.TimeDiffMinutes,
		DurationDiffSeconds: m.DurationDiffSeconds,
		Reasons:             m.Reasons,
	}
}

func qualityView(q matching.Quality) QualityView {
	tier := "low"
	switch {
	case q.High:
		tier = "high"
	case q.Medium:
		tier = "medium"
	}
	return QualityView{Tier: tier, Reasons: q.Reasons}
}
