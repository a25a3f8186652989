package match

import (
	"sort"
	"strings"
)

// DefaultThreshold is the minimum similarity for a name to be suggested.
const DefaultThreshold = 0.5

// Suggest returns up to limit candidates most similar to name, best first.
// Candidates scoring below DefaultThreshold are dropped. Comparison is
// case-insensitive; ties are broken alphabetically.
func Suggest(name string, candidates []string, limit int) []string {
	if limit <= 0 || name == "" {
		return nil
	}

	type scored struct {
		name  string
		score float64
	}

	query := strings.ToLower(name)

	var ranked []scored
	for _, c := range candidates {
		if c == name {
			continue
		}

		score := Similarity(name, c)
		if score < DefaultThreshold && strings.Contains(strings.ToLower(c), query) {
			// "node" -> "list_node" reads as a match even when far in edits.
			score = DefaultThreshold
		}

		if score >= DefaultThreshold {
			ranked = append(ranked, scored{name: c, score: score})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].name < ranked[j].name
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.name
	}

	return out
}
