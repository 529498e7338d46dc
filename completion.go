package interactive

import (
	"slices"

	"github.com/nao1215/interactive/internal/debug"
)

// Matches returns the completion cycle for word: every candidate that
// contains word, ignoring case, in candidate order, followed by word itself.
// Word is added last only if no candidate is identical to it, so the result
// is never empty and always leads back to what the user typed.
func Matches(candidates []string, word string) []string {
	matches := make([]string, 0, len(candidates)+1)
	for _, c := range candidates {
		if containsFold(c, word) {
			matches = append(matches, c)
		}
	}
	if !slices.Contains(matches, word) {
		matches = append(matches, word)
	}
	return matches
}

// completionCycler walks the completion cycle of the word under the cursor.
//
// The cycle is computed once when a session starts and then advanced with a
// wrapping index. The cycler remembers which span of the buffer holds the
// text it inserted so the next step can replace exactly that span.
type completionCycler struct {
	candidates []string

	active  bool
	matches []string
	index   int
	start   int // first unit of the inserted completion
	end     int // one past the last unit of the inserted completion
}

func newCompletionCycler(candidates []string) *completionCycler {
	return &completionCycler{candidates: cleanCandidates(candidates)}
}

// enabled reports whether there is anything to complete against.
func (c *completionCycler) enabled() bool {
	return c != nil && len(c.candidates) > 0
}

// reset ends the current session. The next step starts a fresh cycle.
func (c *completionCycler) reset() {
	c.active = false
	c.matches = nil
	c.index = 0
}

// step performs one completion request against buf and reports whether the
// buffer changed.
func (c *completionCycler) step(buf *Buffer) bool {
	if !c.enabled() {
		return false
	}
	if !c.active || buf.Cursor() != c.end {
		c.begin(buf)
	} else {
		c.index = (c.index + 1) % len(c.matches)
	}

	next := []rune(c.matches[c.index])
	buf.replaceRange(c.start, c.end, next)
	c.end = c.start + len(next)
	debug.Log("completion step", "match", c.matches[c.index], "index", c.index, "of", len(c.matches))
	return true
}

func (c *completionCycler) begin(buf *Buffer) {
	word := buf.WordBeforeCursor()
	c.active = true
	c.matches = Matches(c.candidates, string(word))
	c.index = 0
	c.end = buf.Cursor()
	c.start = c.end - len(word)
}
