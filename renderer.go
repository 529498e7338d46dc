package interactive

import (
	"strings"

	"github.com/nao1215/interactive/internal/debug"
)

// eraseMargin is how many cells past the longer of the old and new text a
// redraw blanks, so that tails left by deletions never survive.
const eraseMargin = 5

// renderer keeps the on-screen copy of the prompt and buffer in sync with the
// edit buffer.
//
// The screen is never read back. The renderer only knows the origin captured
// when the prompt was written and how many units it drew last time, and every
// cell it touches is derived from those with ScreenPosition.
type renderer struct {
	surface Surface
	prompt  string
	origin  Origin
	width   int
	height  int
	drawn   int // units shown after the prompt by the last redraw
}

func newRenderer(surface Surface) *renderer {
	return &renderer{surface: surface}
}

// begin starts an input cycle: it moves to the start of a fresh row, writes
// the prompt and records the origin for the cycle.
func (r *renderer) begin(prompt string) error {
	width, height, err := r.surface.Size()
	if err != nil {
		debug.Log("terminal size unavailable", "error", err, "width", width, "height", height)
	}
	checkWidth(width)
	r.width, r.height = width, height
	r.prompt = prompt

	pos, err := r.surface.CursorPosition()
	if err != nil {
		return err
	}
	if pos.Col != 0 {
		if err := r.surface.Write("\r\n"); err != nil {
			return err
		}
		pos = Position{Row: pos.Row + 1}
		if r.height > 0 && pos.Row > r.height-1 {
			pos.Row = r.height - 1
		}
	}

	r.origin = Origin{PromptLength: len([]rune(prompt)), StartRow: pos.Row}
	r.drawn = 0
	if err := r.fit(0); err != nil {
		return err
	}
	if err := r.surface.SetCursorPosition(Position{Row: max(r.origin.StartRow, 0)}); err != nil {
		return err
	}
	debug.Log("cycle origin", "row", r.origin.StartRow, "prompt", r.origin.PromptLength, "width", r.width)

	// Rows of a prompt taller than the screen that scrolled off are not written.
	units := []rune(prompt)
	skip := 0
	if r.origin.StartRow < 0 {
		skip = min(-r.origin.StartRow*r.width, len(units))
	}
	if err := r.surface.Write(string(units[skip:])); err != nil {
		return err
	}
	// A prompt that ends on the last column leaves the terminal in pending
	// wrap; offset 0 belongs at column 0 of the next row.
	return r.placeCursor(0)
}

// fit scrolls the screen until the cell of offset n is on screen and shifts
// the origin by the number of rows scrolled.
func (r *renderer) fit(n int) error {
	if r.height <= 0 {
		return nil
	}
	over := ScreenPosition(r.origin, n, r.width).Row - (r.height - 1)
	if over <= 0 {
		return nil
	}
	if err := r.surface.SetCursorPosition(Position{Row: r.height - 1}); err != nil {
		return err
	}
	if err := r.surface.Write(strings.Repeat("\n", over)); err != nil {
		return err
	}
	r.origin = r.origin.Scrolled(over)
	debug.Log("scrolled", "rows", over, "origin_row", r.origin.StartRow)
	return nil
}

// firstVisible is the smallest offset whose cell is still on screen.
func (r *renderer) firstVisible() int {
	if r.origin.StartRow >= 0 {
		return 0
	}
	return LogicalOffset(r.origin, Position{}, r.width)
}

// redraw blanks the previously drawn input plus a margin, writes the buffer
// and puts the cursor back on the buffer's cursor.
func (r *renderer) redraw(buf *Buffer) error {
	extent := max(r.drawn, buf.Len()) + eraseMargin
	if err := r.fit(extent); err != nil {
		return err
	}

	from := r.firstVisible()
	if err := r.moveTo(from); err != nil {
		return err
	}
	if extent > from {
		if err := r.surface.Write(strings.Repeat(" ", extent-from)); err != nil {
			return err
		}
	}
	if err := r.moveTo(from); err != nil {
		return err
	}
	if units := buf.Units(); from < len(units) {
		if err := r.surface.Write(string(units[from:])); err != nil {
			return err
		}
	}

	r.drawn = buf.Len()
	debug.Log("redraw", "from", from, "len", buf.Len(), "rows", rowsSpanned(r.origin, buf.Len(), r.width))
	return r.placeCursor(buf.Cursor())
}

// placeCursor moves the terminal cursor onto a logical offset.
func (r *renderer) placeCursor(offset int) error {
	if err := r.fit(offset); err != nil {
		return err
	}
	return r.moveTo(offset)
}

// moveTo puts the cursor on the cell of offset. Offsets on rows that have
// scrolled off the top are clamped to row 0, keeping the column, since the
// terminal cannot address them.
func (r *renderer) moveTo(offset int) error {
	pos := ScreenPosition(r.origin, offset, r.width)
	if pos.Row < 0 {
		pos.Row = 0
	}
	return r.surface.SetCursorPosition(pos)
}

// notify prints msg on its own line below the input, then writes the prompt
// and the buffer again underneath it.
func (r *renderer) notify(msg string, buf *Buffer) error {
	if err := r.placeCursor(buf.Len()); err != nil {
		return err
	}
	if err := r.surface.Write("\r\n" + msg + "\r\n"); err != nil {
		return err
	}
	if err := r.begin(r.prompt); err != nil {
		return err
	}
	return r.redraw(buf)
}

// finish leaves the cursor at the start of the row below the input.
func (r *renderer) finish(buf *Buffer) error {
	if err := r.placeCursor(buf.Len()); err != nil {
		return err
	}
	end := ScreenPosition(r.origin, buf.Len(), r.width)
	if end.Col == 0 && end.Row > r.origin.StartRow {
		return nil
	}
	return r.surface.Write("\r\n")
}
