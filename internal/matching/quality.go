package matching

import "math"

// Downgrade reasons produced by Classify. Like the match reason tags, these
// are API surface and must not be reworded casually.
const (
	QualityReasonTimeDiff  = "Time difference is significant"
	QualityReasonLowScore  = "Match score is below 90%"
	QualityReasonNoNumbers = "No phone number data available"
)

// Classify grades a scored match for reviewers. It starts from full quality
// and degrades, collecting a reason for every downgrade.
// This is pure domain logic - no I/O, no side effects.
//
// Grading checks, in order:
//   - time difference beyond 2 minutes costs High
//   - score under 0.9 costs High
//   - a candidate with no phone numbers at all costs High
//
// Low is reported as the complement of Medium.
func Classify(m ScoredMatch) Quality {
	q := Quality{High: true, Medium: true, Reasons: []string{}}

	absTimeDiff := math.Abs(m.TimeDiffMinutes)
	if absTimeDiff > 2 {
		q.Reasons = append(q.Reasons, QualityReasonTimeDiff)
		q.High = false
	} else if absTimeDiff > 5 {
		// Unreachable: this arm sits behind the exclusive > 2 check above,
		// so Medium is never degraded on time. Kept literal until product
		// confirms whether > 5 was meant as an independent check; the
		// pinned behavior is in quality_test.go.
		q.Medium = false
	}

	if m.Score < 0.9 {
		q.Reasons = append(q.Reasons, QualityReasonLowScore)
		q.High = false
	} else if m.Score < 0.7 {
		// Unreachable for the same reason: a score >= 0.9 can't be < 0.7.
		// Together with the arm above this means Medium always stays true
		// and Low is never produced.
		q.Medium = false
	}

	if m.Candidate.SourceNumber == nil && m.Candidate.DestinationNumber == nil {
		q.Reasons = append(q.Reasons, QualityReasonNoNumbers)
		q.High = false
	}

	q.Low = !q.Medium
	return q
}
