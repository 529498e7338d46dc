package interactive

import (
	"errors"
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-tty"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by New when standard output is not a terminal
// and no Surface was supplied.
var ErrNotTerminal = errors.New("interactive: standard output is not a terminal")

// terminalInterface abstracts terminal operations for testability and cross-platform compatibility.
//
// The interface sits between the prompt and the platform-specific terminal,
// so the same input loop runs against a real terminal (via go-tty) or against
// a mock terminal in tests. It covers raw mode switching, size detection,
// input reading and resource cleanup.
//
// Implementations:
//   - realTerminal: Uses go-tty for actual terminal interaction
//   - mockTerminal: Provides deterministic behavior for testing
//
// Buffered lets the key decoder tell a lone Escape key from the start of an
// escape sequence: the rest of a sequence arrives in the same read, while a
// key press by itself leaves nothing queued.
type terminalInterface interface {
	SetRaw() error                        // Enter raw mode for immediate key processing
	Restore() error                       // Restore original terminal settings
	Size() (width, height int, err error) // Get terminal dimensions with safe fallbacks
	ReadRune() (rune, int, error)         // Read a single Unicode character from input
	Buffered() bool                       // Report whether more input is already queued
	Close() error                         // Clean up resources and prevent fd leaks
}

// realTerminal implements terminalInterface using external libraries for production use.
//
// Input is read with go-tty, raw mode is managed with golang.org/x/term, and
// output goes to stdout, through go-colorable on Windows so that cursor
// sequences are interpreted by the console.
//
//   - Double-close protection: The 'closed' flag prevents Windows panics on double Close()
//   - Safe size fallbacks: Returns 80x24 if terminal size detection fails
//   - Resource management: Properly closes TTY to prevent file descriptor leaks
//   - Raw mode per input cycle: SetRaw captures the current state every time,
//     so Restore returns to the normal mode the line handler runs in
type realTerminal struct {
	tty           *tty.TTY    // TTY handle from go-tty for cross-platform terminal operations
	output        io.Writer   // Output writer (colorable on Windows, stdout elsewhere)
	closed        bool        // Track if terminal is already closed to prevent double-close panic on Windows
	stdinFd       int         // File descriptor for stdin for raw mode management
	originalState *term.State // Terminal state to restore when the input cycle ends
}

// newRealTerminal opens the controlling terminal. It fails with
// ErrNotTerminal when stdout is redirected, because cursor addressing and
// position reports only work on a terminal.
func newRealTerminal() (*realTerminal, error) {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return nil, ErrNotTerminal
	}

	t, err := tty.Open()
	if err != nil {
		return nil, err
	}

	var output io.Writer = os.Stdout
	if runtime.GOOS == "windows" {
		output = colorable.NewColorableStdout()
	}

	return &realTerminal{
		tty:     t,
		output:  output,
		stdinFd: int(os.Stdin.Fd()),
	}, nil
}

func (t *realTerminal) SetRaw() error {
	// Capture the state on every entry so Restore always returns to the
	// cooked mode the handler ran in.
	if term.IsTerminal(t.stdinFd) {
		state, err := term.GetState(t.stdinFd)
		if err != nil {
			return err
		}
		t.originalState = state

		if _, err := term.MakeRaw(t.stdinFd); err != nil {
			return err
		}
	}
	return nil
}

func (t *realTerminal) Restore() error {
	if t.originalState != nil && term.IsTerminal(t.stdinFd) {
		err := term.Restore(t.stdinFd, t.originalState)
		t.originalState = nil
		return err
	}
	return nil
}

func (t *realTerminal) Size() (width, height int, err error) {
	w, h, err := t.tty.Size()
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24, err
	}
	return w, h, nil
}

func (t *realTerminal) ReadRune() (rune, int, error) {
	r, err := t.tty.ReadRune()
	if err != nil {
		return 0, 0, err
	}
	return r, 1, nil
}

func (t *realTerminal) Buffered() bool {
	return t.tty.Buffered()
}

func (t *realTerminal) Close() error {
	if t.closed {
		return nil
	}
	if t.tty != nil {
		err := t.tty.Close()
		t.closed = true
		return err
	}
	return nil
}

// inputReader is the shared read side of a terminal. Runes that were read
// while waiting for a cursor position report are queued and served first.
type inputReader struct {
	term    terminalInterface
	pending []rune
}

func newInputReader(t terminalInterface) *inputReader {
	return &inputReader{term: t}
}

func (in *inputReader) ReadRune() (rune, error) {
	if len(in.pending) > 0 {
		r := in.pending[0]
		in.pending = in.pending[1:]
		return r, nil
	}
	r, _, err := in.term.ReadRune()
	return r, err
}

func (in *inputReader) Buffered() bool {
	return len(in.pending) > 0 || in.term.Buffered()
}

// unread puts runes back in front of the queue, preserving their order.
func (in *inputReader) unread(runes ...rune) {
	if len(runes) == 0 {
		return
	}
	in.pending = append(append([]rune{}, runes...), in.pending...)
}
