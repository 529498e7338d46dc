package interactive

import (
	"strings"
	"unicode"
)

// isBlank reports whether units is empty or all whitespace.
func isBlank(units []rune) bool {
	for _, r := range units {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// containsFold reports whether substr occurs in s, ignoring case.
// The needle is matched literally; it is never interpreted as a pattern.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// isPrintable reports whether r may be inserted into the input buffer.
func isPrintable(r rune) bool {
	return unicode.IsPrint(r)
}

// cleanCandidates drops blank entries so that a malformed candidate list
// degrades to fewer candidates (or none) instead of failing.
func cleanCandidates(candidates []string) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if strings.TrimSpace(c) == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}
