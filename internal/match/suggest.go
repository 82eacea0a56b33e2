package match

import (
	"sort"
	"strings"
)

// Suggest returns the candidates within edit distance of name, closest first.
// A candidate qualifies when its case-insensitive distance is at most
// max(2, len(name)/3). Ties keep the candidate order.
func Suggest(name string, candidates []string) []string {
	if name == "" {
		return nil
	}

	limit := max(2, len([]rune(name))/3)
	lower := strings.ToLower(name)

	type scored struct {
		name string
		dist int
	}

	var hits []scored

	for _, c := range candidates {
		if c == name {
			continue
		}

		d := Levenshtein(lower, strings.ToLower(c))
		if d <= limit {
			hits = append(hits, scored{name: c, dist: d})
		}
	}

	if len(hits) == 0 {
		return nil
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].dist < hits[j].dist
	})

	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}

	return out
}
