package matching

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// largePoolThreshold is the pool size above which per-candidate scoring is
// spread across workers. Small pools are cheaper to score serially than to
// coordinate.
const largePoolThreshold = 128

// FindAndRank scores every candidate in the pool against the recording and
// returns the full ranked list. Per-candidate scoring is independent, so
// large pools are split across workers; ranking waits for the complete
// scored set.
//
// The only possible error is context cancellation. On valid input the
// computation itself cannot fail; validating the recording's timestamp is
// the caller's job.
func FindAndRank(ctx context.Context, rec Recording, pool []Candidate, opts Options) ([]ScoredMatch, error) {
	if len(pool) == 0 {
		return []ScoredMatch{}, nil
	}

	scored := make([]ScoredMatch, len(pool))

	if len(pool) < largePoolThreshold {
		for i, cand := range pool {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			scored[i] = scoreOne(rec, cand, opts)
		}
		return Rank(scored), nil
	}

	// One contiguous chunk per worker. Each worker writes to its own index
	// range, so no locking is needed.
	g, ctx := errgroup.WithContext(ctx)
	workers := runtime.GOMAXPROCS(0)
	chunk := (len(pool) + workers - 1) / workers
	for start := 0; start < len(pool); start += chunk {
		end := min(start+chunk, len(pool))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				scored[i] = scoreOne(rec, pool[i], opts)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Rank(scored), nil
}

// scoreOne assembles the full evidence for one candidate: score, signed time
// difference, duration difference when known, and reason tags.
func scoreOne(rec Recording, cand Candidate, opts Options) ScoredMatch {
	timeDiff := rec.ObservedTime.Sub(cand.CallTime).Minutes()

	var durationDiff *float64
	if rec.DurationSeconds != nil && cand.DurationSeconds != nil {
		d := math.Abs(float64(*rec.DurationSeconds - *cand.DurationSeconds))
		durationDiff = &d
	}

	// Reason tags report raw phone equality regardless of whether the phone
	// factor is enabled for scoring; reviewers want the evidence either way.
	return ScoredMatch{
		Candidate:           cand,
		Score:               Score(rec, cand, opts),
		TimeDiffMinutes:     timeDiff,
		DurationDiffSeconds: durationDiff,
		Reasons:             BuildReasons(timeDiff, durationDiff, phoneMatches(rec, cand)),
	}
}

// BestMatch returns the top-ranked match when its score clears minScore.
// A minScore of zero or below falls back to DefaultMinScore. The boolean
// distinguishes "no winner" from a zero-valued match.
func BestMatch(ranked []ScoredMatch, minScore float64) (ScoredMatch, bool) {
	if minScore <= 0 {
		minScore = DefaultMinScore
	}
	if len(ranked) == 0 {
		return ScoredMatch{}, false
	}
	if ranked[0].Score >= minScore {
		return ranked[0], true
	}
	return ScoredMatch{}, false
}

// DecideOutcome labels a ranked result set: matched when the best candidate
// clears minScore, below_threshold when candidates exist but none clears it,
// no_candidates when the pool was empty. The distinction matters to callers:
// an empty pool suggests widening the import window, a below-threshold pool
// suggests human review.
func DecideOutcome(ranked []ScoredMatch, minScore float64) (Outcome, *ScoredMatch) {
	if len(ranked) == 0 {
		return OutcomeNoCandidates, nil
	}
	if best, ok := BestMatch(ranked, minScore); ok {
		return OutcomeMatched, &best
	}
	return OutcomeBelowThreshold, nil
}
