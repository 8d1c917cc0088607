// Package strings holds small helpers for list-valued settings.
package strings

import "strings"

// Compact trims each value, drops blanks and repeats, and keeps first-seen
// order. A nil or empty input yields nil.
func Compact(values []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
