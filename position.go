package interactive

import (
	"errors"
	"fmt"

	"github.com/nao1215/interactive/internal/debug"
)

// ErrInvalidWidth is the panic value used when a terminal width below one
// reaches position arithmetic. Every wrap computation divides by the width,
// so there is no meaningful way to continue.
var ErrInvalidWidth = errors.New("terminal width must be at least 1")

// Position is a zero-based cell on the terminal.
type Position struct {
	Row int
	Col int
}

// Origin is the anchor of one input cycle: the cell where the prompt was
// written and the prompt's length. Every on-screen position of the input
// buffer is computed relative to it.
//
// The renderer always starts a cycle at the beginning of a row, so
// StartColumn is 0 for every origin it creates and ScreenPosition reduces to
// (PromptLength+offset) mod width. A non-zero StartColumn describes a prompt
// written after other text on the same row.
type Origin struct {
	PromptLength int
	StartRow     int
	StartColumn  int
}

// Scrolled returns the origin after the terminal scrolled its content up by rows.
func (o Origin) Scrolled(rows int) Origin {
	o.StartRow -= rows
	return o
}

// ScreenPosition translates a logical offset in the input buffer into the
// terminal cell it occupies.
//
// An offset that lands exactly on a multiple of width wraps forward to column
// zero of the next row; it is never reported as column width of the row above.
func ScreenPosition(origin Origin, offset, width int) Position {
	checkWidth(width)
	abs := origin.StartColumn + origin.PromptLength + offset
	return Position{
		Row: origin.StartRow + abs/width,
		Col: abs % width,
	}
}

// LogicalOffset is the inverse of ScreenPosition. Cells before the end of the
// prompt map to offset 0.
func LogicalOffset(origin Origin, pos Position, width int) int {
	checkWidth(width)
	abs := (pos.Row-origin.StartRow)*width + pos.Col
	offset := abs - origin.StartColumn - origin.PromptLength
	if offset < 0 {
		return 0
	}
	return offset
}

// rowsSpanned reports how many terminal rows are needed to show the prompt
// followed by n input units, counting the row the cursor wraps onto.
func rowsSpanned(origin Origin, n, width int) int {
	return ScreenPosition(origin, n, width).Row - origin.StartRow + 1
}

func checkWidth(width int) {
	if width < 1 {
		debug.Fatal(fmt.Errorf("%w: got %d", ErrInvalidWidth, width))
	}
}

func checkPosition(pos Position) {
	if pos.Row < 0 || pos.Col < 0 {
		debug.Fatal(fmt.Errorf("negative terminal position %d,%d", pos.Row, pos.Col))
	}
}
