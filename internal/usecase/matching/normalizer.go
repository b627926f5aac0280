package matching

import (
	"strings"
	"unicode/utf8"
)

const (
	// maxInterests caps how many interests a profile may carry.
	maxInterests = 10
	// maxInterestLength caps a single normalized interest, in runes.
	maxInterestLength = 50
)

// NormalizeInterests canonicalizes raw interest values: non-string
// entries are dropped, each survivor is trimmed, lowercased and has
// internal whitespace runs collapsed, empty and overlong entries are
// dropped, duplicates are removed keeping first-seen order, and the
// list is capped at ten entries. Always returns a list, never an error.
func NormalizeInterests(raw []interface{}) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		clean := strings.Join(strings.Fields(strings.ToLower(s)), " ")
		if clean == "" || utf8.RuneCountInString(clean) > maxInterestLength {
			continue
		}
		if _, dup := seen[clean]; dup {
			continue
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
		if len(out) == maxInterests {
			break
		}
	}
	return out
}

// NormalizeStrings is NormalizeInterests for already-typed input.
func NormalizeStrings(raw []string) []string {
	values := make([]interface{}, len(raw))
	for i, s := range raw {
		values[i] = s
	}
	return NormalizeInterests(values)
}
