package match

import "unicode"

// Distance returns the Levenshtein distance between two type names: the
// number of single-rune insertions, deletions and substitutions turning a
// into b. Runes that differ only in case are equal, so "Node" and "node"
// are at distance 0 and "café" and "cafe" at distance 1.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	// The DP keeps one row per rune of the shorter name.
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == 0 {
		return len(rb)
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for i := range prev {
		prev[i] = i
	}

	for j, cb := range rb {
		curr[0] = j + 1
		for i, ca := range ra {
			sub := prev[i]
			if !foldEqual(ca, cb) {
				sub++
			}
			curr[i+1] = min(prev[i+1]+1, curr[i]+1, sub)
		}
		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Similarity scores two type names in [0, 1]: 1 minus Distance over the
// rune count of the longer name. Two empty names are identical.
func Similarity(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}
	return 1 - float64(Distance(a, b))/float64(longest)
}

// foldEqual reports whether a and b are equal under Unicode simple case
// folding.
func foldEqual(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}
