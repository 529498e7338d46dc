package interactive

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertInSync checks that the screen shows the prompt and buffer where the
// origin says they are, that the cells after the buffer are blank and that
// the cursor sits on the buffer's cursor.
func assertInSync(t *testing.T, s *fakeSurface, r *renderer, buf *Buffer) {
	t.Helper()

	promptOrigin := r.origin
	promptOrigin.PromptLength = 0
	for i, want := range []rune(r.prompt) {
		pos := ScreenPosition(promptOrigin, i, s.width)
		if pos.Row < 0 {
			continue
		}
		require.Equalf(t, want, s.cell(pos), "prompt unit %d at %+v\n%s", i, pos, strings.Join(s.screen(), "\n"))
	}

	units := buf.Units()
	for i, want := range units {
		pos := ScreenPosition(r.origin, i, s.width)
		if pos.Row < 0 {
			continue
		}
		require.Equalf(t, want, s.cell(pos), "unit %d at %+v\n%s", i, pos, strings.Join(s.screen(), "\n"))
	}
	for i := len(units); i < len(units)+eraseMargin; i++ {
		pos := ScreenPosition(r.origin, i, s.width)
		if pos.Row < 0 || pos.Row >= s.height {
			continue
		}
		require.Equalf(t, ' ', s.cell(pos), "stale cell after the input at %+v\n%s", pos, strings.Join(s.screen(), "\n"))
	}

	want := ScreenPosition(r.origin, buf.Cursor(), s.width)
	assert.Equal(t, want, s.cursor, "cursor")
}

func TestRendererBegin(t *testing.T) {
	t.Parallel()

	s := newFakeSurface(20, 5)
	r := newRenderer(s)

	require.NoError(t, r.begin("> "))

	assert.Equal(t, Origin{PromptLength: 2, StartRow: 0}, r.origin)
	assert.Equal(t, ">", s.row(0), "trailing blank of the prompt is trimmed")
	assert.Equal(t, Position{Row: 0, Col: 2}, s.cursor)
}

func TestRendererBeginStartsOnFreshRow(t *testing.T) {
	t.Parallel()

	s := newFakeSurface(20, 5)
	require.NoError(t, s.Write("output"))
	r := newRenderer(s)

	require.NoError(t, r.begin("> "))

	assert.Equal(t, 1, r.origin.StartRow)
	assert.Equal(t, []string{"output", ">", "", "", ""}, s.screen())
}

func TestRendererBeginOnBottomRowScrolls(t *testing.T) {
	t.Parallel()

	s := newFakeSurface(20, 3)
	require.NoError(t, s.Write("one\r\ntwo\r\nthree"))
	r := newRenderer(s)

	require.NoError(t, r.begin("> "))

	assert.Equal(t, 2, r.origin.StartRow)
	assert.Equal(t, []string{"two", "three", ">"}, s.screen())
}

func TestRendererRedrawWraps(t *testing.T) {
	t.Parallel()

	s := newFakeSurface(10, 5)
	r := newRenderer(s)
	require.NoError(t, r.begin("> "))

	buf := NewBuffer("")
	for _, ch := range "abcdefghijk" {
		buf.InsertAt(buf.Cursor(), ch)
		require.NoError(t, r.redraw(buf))
		assertInSync(t, s, r, buf)
	}

	assert.Equal(t, []string{"> abcdefgh", "ijk", "", "", ""}, s.screen())
	assert.Equal(t, Position{Row: 1, Col: 3}, s.cursor)
}

func TestRendererCursorOnExactWrap(t *testing.T) {
	t.Parallel()

	s := newFakeSurface(10, 5)
	r := newRenderer(s)
	require.NoError(t, r.begin("> "))

	buf := NewBuffer("abcdefgh")
	require.NoError(t, r.redraw(buf))

	assert.Equal(t, Position{Row: 1, Col: 0}, s.cursor, "cursor after a full row wraps forward")
	assertInSync(t, s, r, buf)
}

func TestRendererRedrawErasesDeletedTail(t *testing.T) {
	t.Parallel()

	s := newFakeSurface(10, 5)
	r := newRenderer(s)
	require.NoError(t, r.begin("> "))

	buf := NewBuffer("abcdefghijkl")
	require.NoError(t, r.redraw(buf))

	buf.ReplaceAll([]rune("xy"), 2)
	require.NoError(t, r.redraw(buf))

	assert.Equal(t, []string{"> xy", "", "", "", ""}, s.screen())
	assertInSync(t, s, r, buf)
}

func TestRendererScrollsWhenInputReachesBottom(t *testing.T) {
	t.Parallel()

	s := newFakeSurface(10, 3)
	require.NoError(t, s.Write("x\r\ny\r\n"))
	r := newRenderer(s)
	require.NoError(t, r.begin("> "))
	require.Equal(t, 2, r.origin.StartRow)

	buf := NewBuffer("")
	for _, ch := range "abcdefghijklm" {
		buf.InsertAt(buf.Cursor(), ch)
		require.NoError(t, r.redraw(buf))
		assertInSync(t, s, r, buf)
	}

	assert.Positive(t, s.scrolled)
	assert.Equal(t, "> abcdefgh", s.row(r.origin.StartRow))
	assert.Equal(t, "ijklm", s.row(r.origin.StartRow+1))
}

func TestRendererInputTallerThanScreen(t *testing.T) {
	t.Parallel()

	s := newFakeSurface(5, 2)
	r := newRenderer(s)
	require.NoError(t, r.begin("> "))

	buf := NewBuffer("")
	for _, ch := range "abcdefghijklmnop" {
		buf.InsertAt(buf.Cursor(), ch)
		require.NoError(t, r.redraw(buf))
		assertInSync(t, s, r, buf)
	}

	assert.Negative(t, r.origin.StartRow)

	buf.SetCursor(0)
	require.NoError(t, r.placeCursor(0))
	assert.Equal(t, 0, s.cursor.Row, "off-screen cursor is clamped to the top row")
}

func TestRendererPlaceCursor(t *testing.T) {
	t.Parallel()

	s := newFakeSurface(10, 5)
	r := newRenderer(s)
	require.NoError(t, r.begin("> "))
	require.NoError(t, r.redraw(NewBuffer("abcdefghij")))

	tests := []struct {
		offset int
		want   Position
	}{
		{offset: 0, want: Position{Row: 0, Col: 2}},
		{offset: 7, want: Position{Row: 0, Col: 9}},
		{offset: 8, want: Position{Row: 1, Col: 0}},
		{offset: 10, want: Position{Row: 1, Col: 2}},
	}
	for _, tt := range tests {
		require.NoError(t, r.placeCursor(tt.offset))
		assert.Equal(t, tt.want, s.cursor, "offset %d", tt.offset)
	}
}

func TestRendererFinish(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		wantRow int
	}{
		{name: "short line", text: "ls", wantRow: 1},
		{name: "empty line", text: "", wantRow: 1},
		{name: "wrapped line", text: "abcdefghijk", wantRow: 2},
		{name: "line filling a row exactly", text: "abcdefgh", wantRow: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newFakeSurface(10, 5)
			r := newRenderer(s)
			require.NoError(t, r.begin("> "))
			buf := NewBuffer(tt.text)
			buf.SetCursor(0)
			require.NoError(t, r.redraw(buf))

			require.NoError(t, r.finish(buf))
			assert.Equal(t, Position{Row: tt.wantRow, Col: 0}, s.cursor)
		})
	}
}

func TestRendererNotify(t *testing.T) {
	t.Parallel()

	s := newFakeSurface(30, 6)
	r := newRenderer(s)
	require.NoError(t, r.begin("> "))
	buf := NewBuffer("draft")
	buf.SetCursor(2)
	require.NoError(t, r.redraw(buf))

	require.NoError(t, r.notify("Press Escape again to exit.", buf))

	assert.Equal(t, []string{"> draft", "Press Escape again to exit.", "> draft", "", "", ""}, s.screen())
	assert.Equal(t, 2, r.origin.StartRow)
	assertInSync(t, s, r, buf)
}

func TestRendererInvalidWidthPanics(t *testing.T) {
	t.Parallel()

	s := newFakeSurface(10, 5)
	s.width = 0
	r := newRenderer(s)

	assert.Panics(t, func() { _ = r.begin("> ") })
}

func TestRendererPromptFillingRow(t *testing.T) {
	t.Parallel()

	s := newFakeSurface(10, 5)
	r := newRenderer(s)

	require.NoError(t, r.begin("0123456789"))

	assert.Equal(t, Position{Row: 1, Col: 0}, s.cursor, "offset 0 wraps to the next row")
	assert.False(t, s.pendingWrap)
	assertInSync(t, s, r, NewBuffer(""))
}

func TestEditorNoopKeysAfterRowFillingPrompt(t *testing.T) {
	t.Parallel()

	for _, code := range []KeyCode{KeyLeft, KeyRight, KeyBackspace, KeyDelete, KeyHome} {
		t.Run(code.String(), func(t *testing.T) {
			t.Parallel()

			s := newFakeSurface(10, 5)
			r := newRenderer(s)
			e := newLineEditor(NewHistory(nil), newCompletionCycler(nil), r)
			require.NoError(t, e.start("0123456789"))

			out, err := e.handle(key(code))
			require.NoError(t, err)
			assert.Equal(t, outcomeContinue, out)
			assert.Equal(t, Position{Row: 1, Col: 0}, s.cursor)
			assertInSync(t, s, r, e.buf)
		})
	}
}

func TestRendererPromptTallerThanScreen(t *testing.T) {
	t.Parallel()

	s := newFakeSurface(3, 2)
	r := newRenderer(s)

	require.NoError(t, r.begin("abcdefg"))

	assert.Equal(t, -1, r.origin.StartRow)
	assert.Equal(t, []string{"def", "g"}, s.screen(), "only the rows still on screen are written")
	assert.Equal(t, Position{Row: 1, Col: 1}, s.cursor)
	assertInSync(t, s, r, NewBuffer(""))

	buf := NewBuffer("xy")
	require.NoError(t, r.redraw(buf))
	assertInSync(t, s, r, buf)
}

func TestRendererPromptEntirelyOffScreen(t *testing.T) {
	t.Parallel()

	s := newFakeSurface(2, 1)
	r := newRenderer(s)

	require.NoError(t, r.begin("> "))

	assert.Negative(t, r.origin.StartRow)
	assert.Equal(t, []string{""}, s.screen())
	assert.Equal(t, Position{Row: 0, Col: 0}, s.cursor)
}
