package matching

import (
	"time"

	id "callsync/pkg/domain"
)

// Default tolerances and thresholds. Callers start from DefaultOptions and
// override per request; the scorer falls back to these when a tolerance is
// missing or non-positive so it can never divide by zero.
const (
	DefaultTimeToleranceMinutes     = 5.0
	DefaultDurationToleranceSeconds = 30.0

	// DefaultMinScore is the automatic-link threshold used by BestMatch.
	DefaultMinScore = 0.7

	// ScoreEpsilon is the band within which two scores are considered tied
	// and ranking falls back to temporal closeness.
	ScoreEpsilon = 0.01
)

// Factor weights. Phone equality is as strong a signal as time proximity;
// duration is a weaker corroborating signal.
const (
	timeWeight     = 0.4
	phoneWeight    = 0.4
	durationWeight = 0.2
)

// Recording is the matcher's view of an uploaded call recording: the
// metadata observed at capture time, before any link to a call record
// exists. Phone number and duration are frequently absent, so both are
// optional.
type Recording struct {
	ObservedTime    time.Time
	PhoneNumber     *string
	DurationSeconds *int
}

// Candidate is a read-only snapshot of one imported call detail record,
// assembled by the caller from storage. The matcher never loads candidates
// itself.
type Candidate struct {
	ID                  id.CDRID
	CallTime            time.Time
	Direction           id.Direction
	SourceNumber        *string
	DestinationNumber   *string
	DurationSeconds     *int
	Disposition         *string
	TimeToAnswerSeconds *int
}

// Options configures one matching request.
type Options struct {
	TimeToleranceMinutes     float64
	PhoneNumberMatch         bool
	DurationToleranceSeconds float64

	// RequireDispositionMatch is accepted and carried on the request but not
	// consulted by the scorer. It predates the current factor model; callers
	// still send it, so it stays until the disposition factor question is
	// settled. See scorer_test.go for the pinned no-op behavior.
	RequireDispositionMatch bool
}

// DefaultOptions returns the standard matching configuration.
func DefaultOptions() Options {
	return Options{
		TimeToleranceMinutes:     DefaultTimeToleranceMinutes,
		PhoneNumberMatch:         true,
		DurationToleranceSeconds: DefaultDurationToleranceSeconds,
		RequireDispositionMatch:  false,
	}
}

// ScoredMatch pairs a candidate with its computed similarity evidence.
// TimeDiffMinutes is signed: positive when the recording was observed after
// the candidate's call time, negative when before.
type ScoredMatch struct {
	Candidate           Candidate
	Score               float64
	TimeDiffMinutes     float64
	DurationDiffSeconds *float64
	Reasons             []string
}

// Quality grades a scored match for reviewers. Reasons justify every
// downgrade; an empty list means nothing degraded the match.
type Quality struct {
	High    bool
	Medium  bool
	Low     bool
	Reasons []string
}

// Outcome labels the result of a best-match request.
type Outcome string

const (
	OutcomeMatched        Outcome = "matched"
	OutcomeBelowThreshold Outcome = "below_threshold"
	OutcomeNoCandidates   Outcome = "no_candidates"
)
