// Package levenshtein computes edit distances for fuzzy catalog matching.
package levenshtein

// Distance returns the Levenshtein distance between a and b, counted in runes.
// Insertion, deletion and substitution each cost 1.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// Keep the row over the shorter string.
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1]
				continue
			}
			curr[j] = 1 + min(prev[j-1], prev[j], curr[j-1])
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
