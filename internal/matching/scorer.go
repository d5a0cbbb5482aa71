package matching

import "math"

// Score computes the weighted similarity between a recording and one
// candidate call record, normalized to [0,1].
// This is pure domain logic - no I/O, no side effects.
//
// Three independent factors contribute:
//  1. Time proximity (weight 0.4, always present): linear decay, reaching
//     zero at the time tolerance.
//  2. Phone equality (weight 0.4, present when enabled and both sides carry
//     a number): all or nothing.
//  3. Duration proximity (weight 0.2, present when both durations known):
//     linear decay, reaching zero at the duration tolerance.
//
// The sum of weighted factor scores is divided by the sum of weights of the
// factors actually present, so a candidate missing optional data is judged
// on what is known rather than penalized for absence.
func Score(rec Recording, cand Candidate, opts Options) float64 {
	timeTolerance := opts.TimeToleranceMinutes
	if timeTolerance <= 0 {
		timeTolerance = DefaultTimeToleranceMinutes
	}
	durationTolerance := opts.DurationToleranceSeconds
	if durationTolerance <= 0 {
		durationTolerance = DefaultDurationToleranceSeconds
	}

	var score, totalWeight float64

	// Time factor: always present.
	timeDiff := math.Abs(rec.ObservedTime.Sub(cand.CallTime).Minutes())
	score += timeWeight * math.Max(0, 1-timeDiff/timeTolerance)
	totalWeight += timeWeight

	// Phone factor: present only when matching is enabled and both the
	// recording and the candidate carry a number to compare.
	if opts.PhoneNumberMatch && rec.PhoneNumber != nil &&
		(cand.SourceNumber != nil || cand.DestinationNumber != nil) {
		if phoneMatches(rec, cand) {
			score += phoneWeight
		}
		totalWeight += phoneWeight
	}

	// Duration factor: present only when both durations are known.
	if rec.DurationSeconds != nil && cand.DurationSeconds != nil {
		durationDiff := math.Abs(float64(*rec.DurationSeconds - *cand.DurationSeconds))
		score += durationWeight * math.Max(0, 1-durationDiff/durationTolerance)
		totalWeight += durationWeight
	}

	// Time is always present, so totalWeight is never zero in practice.
	if totalWeight == 0 {
		return 0
	}
	return score / totalWeight
}

// phoneMatches reports whether the recording's number exactly equals either
// side of the candidate call. Comparison is exact on the stored strings;
// numbers are trimmed at import, not reformatted here.
func phoneMatches(rec Recording, cand Candidate) bool {
	if rec.PhoneNumber == nil {
		return false
	}
	if cand.SourceNumber != nil && *rec.PhoneNumber == *cand.SourceNumber {
		return true
	}
	if cand.DestinationNumber != nil && *rec.PhoneNumber == *cand.DestinationNumber {
		return true
	}
	return false
}
