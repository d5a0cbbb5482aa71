package matching

import (
	"math"
	"sort"
)

// Rank orders scored matches best-first and returns a new slice; the input
// is left untouched. The sort is stable so equal candidates keep their
// arrival order.
//
// Comparator: scores further apart than ScoreEpsilon order by score
// descending. Scores within the epsilon are treated as tied and order by
// absolute time difference ascending instead. The epsilon avoids noisy
// reordering from floating-point near-ties; among equally plausible matches,
// temporal closeness is the stronger signal.
//
// Rank never truncates. Selecting a single winner is BestMatch's job.
func Rank(matches []ScoredMatch) []ScoredMatch {
	ranked := make([]ScoredMatch, len(matches))
	copy(ranked, matches)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if math.Abs(a.Score-b.Score) > ScoreEpsilon {
			return a.Score > b.Score
		}
		return math.Abs(a.TimeDiffMinutes) < math.Abs(b.TimeDiffMinutes)
	})

	return ranked
}
