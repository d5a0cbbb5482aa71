package matching

import "math"

// Reason tags shown to reviewers alongside a score. These strings are part
// of the API surface; clients filter on them, so changing one is a breaking
// change.
const (
	ReasonExactTime         = "Exact time match"
	ReasonCloseTime         = "Close time match"
	ReasonExactDuration     = "Exact duration match"
	ReasonVeryCloseDuration = "Very close duration"
	ReasonSimilarDuration   = "Similar duration"
	ReasonPhoneMatch        = "Phone number match"
)

// BuildReasons derives justification tags from the raw differences already
// computed for scoring. Tags are appended in a fixed order (time, then
// duration, then phone) because reviewers scan the list top to bottom
// expecting temporal evidence first.
// This is pure domain logic - no I/O, no side effects. May return an empty
// list when nothing is close enough to remark on.
func BuildReasons(timeDiffMinutes float64, durationDiffSeconds *float64, phoneMatched bool) []string {
	reasons := []string{}

	absTimeDiff := math.Abs(timeDiffMinutes)
	if absTimeDiff < 1 {
		reasons = append(reasons, ReasonExactTime)
	} else if absTimeDiff < 2 {
		reasons = append(reasons, ReasonCloseTime)
	}

	if durationDiffSeconds != nil {
		switch d := *durationDiffSeconds; {
		case d == 0:
			reasons = append(reasons, ReasonExactDuration)
		case d <= 5:
			reasons = append(reasons, ReasonVeryCloseDuration)
		case d <= 30:
			reasons = append(reasons, ReasonSimilarDuration)
		}
	}

	if phoneMatched {
		reasons = append(reasons, ReasonPhoneMatch)
	}

	return reasons
}
