package interactive

import (
	"unicode"

	"github.com/nao1215/interactive/internal/debug"
)

// exitWarning is shown after the first Escape press.
const exitWarning = "Press Escape again to exit."

type editState int

const (
	stateComposing editState = iota
	stateCompletingWord
	stateExiting
)

type escapeState int

const (
	escapeIdle escapeState = iota
	escapePendingExit
)

// outcome tells the input loop what to do after a key was handled.
type outcome int

const (
	outcomeContinue outcome = iota
	outcomeSubmit
	outcomeExit
)

// lineEditor applies key events to the edit buffer for one input cycle and
// keeps the screen in step with it.
type lineEditor struct {
	buf     *Buffer
	history *History
	cycler  *completionCycler
	render  *renderer
	state   editState
	escape  escapeState
}

func newLineEditor(history *History, cycler *completionCycler, render *renderer) *lineEditor {
	return &lineEditor{
		buf:     NewBuffer(""),
		history: history,
		cycler:  cycler,
		render:  render,
	}
}

// start writes the prompt and resets all per-cycle state.
func (e *lineEditor) start(prompt string) error {
	e.buf = NewBuffer("")
	e.state = stateComposing
	e.escape = escapeIdle
	e.history.ResetRecall()
	if e.cycler != nil {
		e.cycler.reset()
	}
	return e.render.begin(prompt)
}

// handle dispatches one key.
func (e *lineEditor) handle(ev KeyEvent) (outcome, error) {
	debug.Log("key", "event", ev.String(), "cursor", e.buf.Cursor(), "len", e.buf.Len())

	if ev.Code != KeyEscape {
		e.escape = escapeIdle
	}
	if ev.Code != KeyTab && e.state == stateCompletingWord {
		e.cycler.reset()
		e.state = stateComposing
	}
	if ev.Code == KeyRune && ev.Mod&ModControl != 0 {
		ev = controlKey(ev.Char)
	}

	switch ev.Code {
	case KeyLeft:
		if e.buf.MoveLeft() {
			return outcomeContinue, e.render.placeCursor(e.buf.Cursor())
		}
	case KeyRight:
		if e.buf.MoveRight() {
			return outcomeContinue, e.render.placeCursor(e.buf.Cursor())
		}
	case KeyHome:
		e.buf.SetCursor(0)
		return outcomeContinue, e.render.placeCursor(0)
	case KeyEnd:
		e.buf.SetCursor(e.buf.Len())
		return outcomeContinue, e.render.placeCursor(e.buf.Len())
	case KeyUp:
		// nil means there is nothing older to recall
		if units := e.history.RecallPrevious(nil); units != nil {
			e.buf.ReplaceAll(units, len(units))
			return outcomeContinue, e.render.redraw(e.buf)
		}
	case KeyDown:
		units := e.history.RecallNext()
		e.buf.ReplaceAll(units, len(units))
		return outcomeContinue, e.render.redraw(e.buf)
	case KeyTab:
		if e.cycler.step(e.buf) {
			e.state = stateCompletingWord
			return outcomeContinue, e.render.redraw(e.buf)
		}
	case KeyBackspace:
		if e.buf.Cursor() > 0 {
			debug.AssertNoError(e.buf.RemoveAt(e.buf.Cursor() - 1))
			return outcomeContinue, e.render.redraw(e.buf)
		}
	case KeyDelete:
		if err := e.buf.RemoveAt(e.buf.Cursor()); err == nil {
			return outcomeContinue, e.render.redraw(e.buf)
		}
	case KeyEscape:
		if e.escape == escapePendingExit {
			e.state = stateExiting
			return outcomeExit, e.render.finish(e.buf)
		}
		e.escape = escapePendingExit
		return outcomeContinue, e.render.notify(exitWarning, e.buf)
	case KeyEnter:
		return outcomeSubmit, e.render.finish(e.buf)
	case KeyRune:
		if ev.Mod == 0 && isPrintable(ev.Char) {
			e.buf.InsertAt(e.buf.Cursor(), ev.Char)
			debug.Assert(e.buf.Cursor() <= e.buf.Len(), "cursor past end of buffer")
			return outcomeContinue, e.render.redraw(e.buf)
		}
	}
	return outcomeContinue, nil
}

// controlKey maps Ctrl+letter onto the keys the editor gives it a meaning
// for. Ctrl+H is Home and Ctrl+E is End; other letters are ignored.
func controlKey(letter rune) KeyEvent {
	switch unicode.ToLower(letter) {
	case 'h':
		return KeyEvent{Code: KeyHome, Mod: ModControl}
	case 'e':
		return KeyEvent{Code: KeyEnd, Mod: ModControl}
	default:
		return KeyEvent{Code: KeyUnknown, Char: letter, Mod: ModControl}
	}
}
