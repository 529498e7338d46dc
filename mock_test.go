package interactive

import (
	"fmt"
	"io"
	"strings"
)

// mockTerminal implements terminalInterface from a fixed input string.
type mockTerminal struct {
	input        []rune
	inputPos     int
	rawMode      bool
	closed       bool
	terminalSize [2]int
}

func newMockTerminal(input string) *mockTerminal {
	return &mockTerminal{
		input:        []rune(input),
		terminalSize: [2]int{80, 24},
	}
}

func (m *mockTerminal) SetRaw() error {
	m.rawMode = true
	return nil
}

func (m *mockTerminal) Restore() error {
	m.rawMode = false
	return nil
}

func (m *mockTerminal) Size() (width, height int, err error) {
	return m.terminalSize[0], m.terminalSize[1], nil
}

func (m *mockTerminal) ReadRune() (rune, int, error) {
	if m.inputPos >= len(m.input) {
		return 0, 0, io.EOF
	}
	r := m.input[m.inputPos]
	m.inputPos++
	return r, 1, nil
}

func (m *mockTerminal) Buffered() bool {
	return m.inputPos < len(m.input)
}

func (m *mockTerminal) Close() error {
	m.closed = true
	return nil
}

// fakeSurface is a virtual screen that behaves like a VT100 with auto-wrap:
// writing into the last column leaves the cursor there until the next
// printable rune, and a line feed on the bottom row scrolls.
type fakeSurface struct {
	width, height int
	cells         [][]rune
	cursor        Position
	pendingWrap   bool
	scrolled      int
	written       strings.Builder
}

func newFakeSurface(width, height int) *fakeSurface {
	s := &fakeSurface{width: width, height: height}
	for range height {
		s.cells = append(s.cells, s.blankRow())
	}
	return s
}

func (s *fakeSurface) blankRow() []rune {
	return []rune(strings.Repeat(" ", s.width))
}

func (s *fakeSurface) CursorPosition() (Position, error) {
	return s.cursor, nil
}

func (s *fakeSurface) SetCursorPosition(pos Position) error {
	if pos.Row < 0 || pos.Col < 0 || pos.Row >= s.height || pos.Col >= s.width {
		return fmt.Errorf("cursor position %d,%d outside %dx%d screen", pos.Row, pos.Col, s.width, s.height)
	}
	s.cursor = pos
	s.pendingWrap = false
	return nil
}

func (s *fakeSurface) Write(text string) error {
	s.written.WriteString(text)
	for _, r := range text {
		switch r {
		case '\r':
			s.cursor.Col = 0
			s.pendingWrap = false
		case '\n':
			s.lineFeed()
			s.pendingWrap = false
		default:
			if s.pendingWrap {
				s.cursor.Col = 0
				s.lineFeed()
				s.pendingWrap = false
			}
			s.cells[s.cursor.Row][s.cursor.Col] = r
			if s.cursor.Col == s.width-1 {
				s.pendingWrap = true
			} else {
				s.cursor.Col++
			}
		}
	}
	return nil
}

func (s *fakeSurface) Size() (width, height int, err error) {
	return s.width, s.height, nil
}

func (s *fakeSurface) lineFeed() {
	if s.cursor.Row < s.height-1 {
		s.cursor.Row++
		return
	}
	s.cells = append(s.cells[1:], s.blankRow())
	s.scrolled++
}

func (s *fakeSurface) cell(pos Position) rune {
	return s.cells[pos.Row][pos.Col]
}

// row returns a screen row without trailing blanks.
func (s *fakeSurface) row(i int) string {
	return strings.TrimRight(string(s.cells[i]), " ")
}

// screen returns all rows without trailing blanks.
func (s *fakeSurface) screen() []string {
	rows := make([]string, s.height)
	for i := range rows {
		rows[i] = s.row(i)
	}
	return rows
}

// fakeKeySource replays a fixed list of key events and then reports io.EOF.
type fakeKeySource struct {
	events []KeyEvent
	pos    int
}

func newFakeKeySource(events ...KeyEvent) *fakeKeySource {
	return &fakeKeySource{events: events}
}

func (f *fakeKeySource) ReadKey() (KeyEvent, error) {
	if f.pos >= len(f.events) {
		return KeyEvent{}, io.EOF
	}
	ev := f.events[f.pos]
	f.pos++
	return ev, nil
}

// typed returns one KeyRune event per rune of text.
func typed(text string) []KeyEvent {
	events := make([]KeyEvent, 0, len(text))
	for _, r := range text {
		events = append(events, KeyEvent{Code: KeyRune, Char: r})
	}
	return events
}

func key(code KeyCode) KeyEvent {
	return KeyEvent{Code: code}
}

// script joins groups of events into one sequence.
func script(groups ...[]KeyEvent) []KeyEvent {
	var events []KeyEvent
	for _, g := range groups {
		events = append(events, g...)
	}
	return events
}

func keys(codes ...KeyCode) []KeyEvent {
	events := make([]KeyEvent, 0, len(codes))
	for _, c := range codes {
		events = append(events, key(c))
	}
	return events
}
