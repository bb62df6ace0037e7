package scoring

import "strings"

// MinFuzzyLength is the minimum rune count for a string to participate in
// fuzzy comparison. Shorter strings are too noisy and are handled with
// equality or substring checks by the callers.
const MinFuzzyLength = 3

// Similarity returns a case-insensitive similarity ratio in [0,1] between
// two strings, based on the longest common subsequence of their runes:
// ratio = 2*LCS / (len(a)+len(b)). It is symmetric, deterministic, and has
// no side effects. Two empty strings are identical (ratio 1).
func Similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 1
	}

	runesA := []rune(a)
	runesB := []rune(b)
	lenA := len(runesA)
	lenB := len(runesB)
	if lenA == 0 || lenB == 0 {
		return 0
	}

	// LCS length via dynamic programming; two rows suffice.
	prev := make([]int, lenB+1)
	curr := make([]int, lenB+1)
	for i := 1; i <= lenA; i++ {
		for j := 1; j <= lenB; j++ {
			if runesA[i-1] == runesB[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	lcs := prev[lenB]
	return 2 * float64(lcs) / float64(lenA+lenB)
}

// FuzzyEligible reports whether s is long enough for fuzzy comparison.
func FuzzyEligible(s string) bool {
	return len([]rune(s)) >= MinFuzzyLength
}

// containsFold reports whether substr occurs in s, ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
