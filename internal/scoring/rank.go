package scoring

import "sort"

// DefaultResultLimit is the number of results returned when no limit is
// configured.
const DefaultResultLimit = 20

// Rank sorts results by final score descending, in place. The sort is
// stable: candidates with equal scores keep their retrieval order, with no
// secondary key. Stateless and side-effect-free aside from the reorder.
func Rank(results []*ScoredResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FinalScore > results[j].FinalScore
	})
}

// TopN truncates results to the first n. No minimum-score cutoff is
// applied; low scores are still returned when fewer than n exist.
func TopN(results []*ScoredResult, n int) []*ScoredResult {
	if n <= 0 {
		n = DefaultResultLimit
	}
	if n >= len(results) {
		return results
	}
	return results[:n]
}
