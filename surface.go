package interactive

import (
	"fmt"
	"io"

	"github.com/nao1215/interactive/internal/debug"
)

// Surface is the terminal screen as seen by the renderer. Rows and columns
// are zero-based; (0, 0) is the top-left cell of the visible screen.
type Surface interface {
	// CursorPosition reports where the cursor currently is.
	CursorPosition() (Position, error)
	// SetCursorPosition moves the cursor. Negative coordinates are invalid.
	SetCursorPosition(pos Position) error
	// Write prints text at the cursor. Text that reaches the right edge wraps
	// onto the next row; writing past the bottom row scrolls the screen.
	Write(s string) error
	// Size returns the screen size in cells.
	Size() (width, height int, err error)
}

// ansiSurface drives a VT100-compatible terminal with CSI sequences.
type ansiSurface struct {
	out  io.Writer
	in   *inputReader
	term terminalInterface
}

func newANSISurface(out io.Writer, in *inputReader, t terminalInterface) *ansiSurface {
	return &ansiSurface{out: out, in: in, term: t}
}

// CursorPosition sends a Device Status Report request (ESC [6n) and parses
// the ESC [row;colR reply. Keys typed before the reply arrives are queued
// back onto the input.
func (s *ansiSurface) CursorPosition() (Position, error) {
	if err := s.Write("\x1b[6n"); err != nil {
		return Position{}, err
	}

	var stash []rune
	defer func() { s.in.unread(stash...) }()

	for {
		r, err := s.in.ReadRune()
		if err != nil {
			return Position{}, fmt.Errorf("failed to read cursor position: %w", err)
		}
		if r != '\x1b' {
			stash = append(stash, r)
			continue
		}
		pos, consumed, ok, err := s.readReport()
		if err != nil {
			return Position{}, fmt.Errorf("failed to read cursor position: %w", err)
		}
		if ok {
			debug.Logf("cursor report %d,%d with %d runes queued", pos.Row, pos.Col, len(stash))
			return pos, nil
		}
		stash = append(stash, '\x1b')
		stash = append(stash, consumed...)
	}
}

// readReport parses the part of a cursor report after ESC. When the input is
// not a report it returns the runes it consumed.
func (s *ansiSurface) readReport() (Position, []rune, bool, error) {
	var consumed []rune
	r, err := s.in.ReadRune()
	if err != nil {
		return Position{}, nil, false, err
	}
	consumed = append(consumed, r)
	if r != '[' {
		return Position{}, consumed, false, nil
	}

	var fields [2]int
	field := 0
	digits := 0
	for {
		r, err := s.in.ReadRune()
		if err != nil {
			return Position{}, nil, false, err
		}
		consumed = append(consumed, r)
		switch {
		case r >= '0' && r <= '9':
			fields[field] = fields[field]*10 + int(r-'0')
			digits++
		case r == ';' && field == 0 && digits > 0:
			field = 1
			digits = 0
		case r == 'R' && field == 1 && digits > 0:
			// Reports are one-based.
			return Position{Row: max(fields[0]-1, 0), Col: max(fields[1]-1, 0)}, consumed, true, nil
		default:
			return Position{}, consumed, false, nil
		}
	}
}

func (s *ansiSurface) SetCursorPosition(pos Position) error {
	checkPosition(pos)
	return s.Write(fmt.Sprintf("\x1b[%d;%dH", pos.Row+1, pos.Col+1))
}

func (s *ansiSurface) Write(text string) error {
	_, err := io.WriteString(s.out, text)
	return err
}

func (s *ansiSurface) Size() (width, height int, err error) {
	return s.term.Size()
}
