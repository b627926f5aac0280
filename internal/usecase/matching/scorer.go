package matching

import (
	"math"
	"strings"
)

// Jaccard computes |A ∩ B| / |A ∪ B| over two interest lists. Elements
// are trimmed and case-folded before set construction. Returns 0 when
// either input is empty. Deterministic and symmetric; independent of
// the vector index, it is used to corroborate vector-search rankings.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	setA := toSet(a)
	setB := toSet(b)

	intersection := 0
	for e := range setA {
		if _, ok := setB[e]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

// Round3 rounds a score to three decimals, the precision every
// similarity field is reported with.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}
	return set
}
