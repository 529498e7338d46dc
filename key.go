package interactive

import (
	"fmt"
	"strings"
)

// KeyCode identifies the kind of key that was pressed.
type KeyCode int

// Key codes understood by the line editor. Anything else arrives as KeyUnknown and is ignored.
const (
	KeyUnknown KeyCode = iota
	KeyRune            // printable character (or Ctrl+letter with ModControl)
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyDelete
	KeyBackspace
	KeyEscape
	KeyTab
	KeyEnter
)

var keyCodeNames = map[KeyCode]string{
	KeyUnknown:   "unknown",
	KeyRune:      "rune",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyDelete:    "delete",
	KeyBackspace: "backspace",
	KeyEscape:    "escape",
	KeyTab:       "tab",
	KeyEnter:     "enter",
}

func (k KeyCode) String() string {
	if name, ok := keyCodeNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KeyCode(%d)", int(k))
}

// Modifier is a set of modifier keys held during a key press.
type Modifier uint8

// Modifier flags
const (
	ModControl Modifier = 1 << iota
	ModAlt
)

// KeyEvent is one decoded key press.
type KeyEvent struct {
	Code KeyCode
	Char rune // literal character for KeyRune; the letter for Ctrl+letter
	Mod  Modifier
}

func (e KeyEvent) String() string {
	var b strings.Builder
	if e.Mod&ModControl != 0 {
		b.WriteString("ctrl+")
	}
	if e.Mod&ModAlt != 0 {
		b.WriteString("alt+")
	}
	if e.Code == KeyRune {
		b.WriteRune(e.Char)
		return b.String()
	}
	b.WriteString(e.Code.String())
	return b.String()
}

// KeySource delivers key events to the line editor. ReadKey blocks until a
// key is available; io.EOF ends the session.
type KeySource interface {
	ReadKey() (KeyEvent, error)
}

// KeyMap translates raw terminal input into key events.
type KeyMap struct {
	bindings  map[rune]KeyEvent
	sequences map[string]KeyEvent
}

// NewDefaultKeyMap creates the default key bindings.
//
// Default key bindings:
//   - Enter/Return: submit the line
//   - Tab: cycle through completion candidates
//   - Backspace: delete the character before the cursor
//   - Delete: delete the character under the cursor
//   - Left/Right arrows: move the cursor
//   - Up/Down arrows: recall history
//   - Home, Ctrl+Home, Ctrl+H: move to the beginning of the line
//   - End, Ctrl+End, Ctrl+E: move to the end of the line
//   - Escape twice: exit
//
// Ctrl+H arrives from the terminal as the byte 0x08, which some terminals
// also send for Backspace. It is bound to Home here; rebind it with
//
//	keyMap.Bind('\b', interactive.KeyEvent{Code: interactive.KeyBackspace})
//
// if your terminal needs it.
func NewDefaultKeyMap() *KeyMap {
	km := &KeyMap{
		bindings:  make(map[rune]KeyEvent),
		sequences: make(map[string]KeyEvent),
	}

	km.bindings['\r'] = KeyEvent{Code: KeyEnter}
	km.bindings['\n'] = KeyEvent{Code: KeyEnter}
	km.bindings['\t'] = KeyEvent{Code: KeyTab}
	km.bindings['\x7f'] = KeyEvent{Code: KeyBackspace}

	// Escape sequences, without the leading ESC
	km.sequences["[A"] = KeyEvent{Code: KeyUp}
	km.sequences["[B"] = KeyEvent{Code: KeyDown}
	km.sequences["[C"] = KeyEvent{Code: KeyRight}
	km.sequences["[D"] = KeyEvent{Code: KeyLeft}
	km.sequences["OA"] = KeyEvent{Code: KeyUp}
	km.sequences["OB"] = KeyEvent{Code: KeyDown}
	km.sequences["OC"] = KeyEvent{Code: KeyRight}
	km.sequences["OD"] = KeyEvent{Code: KeyLeft}
	km.sequences["[H"] = KeyEvent{Code: KeyHome}
	km.sequences["[F"] = KeyEvent{Code: KeyEnd}
	km.sequences["OH"] = KeyEvent{Code: KeyHome}
	km.sequences["OF"] = KeyEvent{Code: KeyEnd}
	km.sequences["[1~"] = KeyEvent{Code: KeyHome}
	km.sequences["[4~"] = KeyEvent{Code: KeyEnd}
	km.sequences["[7~"] = KeyEvent{Code: KeyHome}
	km.sequences["[8~"] = KeyEvent{Code: KeyEnd}
	km.sequences["[1;5H"] = KeyEvent{Code: KeyHome, Mod: ModControl}
	km.sequences["[1;5F"] = KeyEvent{Code: KeyEnd, Mod: ModControl}
	km.sequences["[3~"] = KeyEvent{Code: KeyDelete}

	return km
}

// Bind adds or updates the event produced by a single input rune.
func (km *KeyMap) Bind(key rune, ev KeyEvent) {
	km.bindings[key] = ev
}

// BindSequence adds or updates the event produced by an escape sequence.
// The sequence should not include the initial ESC character.
//
// Example:
//
//	keyMap := interactive.NewDefaultKeyMap()
//	// Shift+Tab (ESC [Z) also requests completion
//	keyMap.BindSequence("[Z", interactive.KeyEvent{Code: interactive.KeyTab})
func (km *KeyMap) BindSequence(seq string, ev KeyEvent) {
	km.sequences[seq] = ev
}

// Lookup returns the event bound to a single rune.
func (km *KeyMap) Lookup(key rune) (KeyEvent, bool) {
	if km == nil || km.bindings == nil {
		return KeyEvent{}, false
	}
	ev, ok := km.bindings[key]
	return ev, ok
}

// LookupSequence returns the event bound to an escape sequence.
func (km *KeyMap) LookupSequence(seq string) (KeyEvent, bool) {
	if km == nil || km.sequences == nil {
		return KeyEvent{}, false
	}
	ev, ok := km.sequences[seq]
	return ev, ok
}

// maxSequenceLength bounds how many runes are read after ESC.
const maxSequenceLength = 10

// keyDecoder turns the raw rune stream of a terminal into key events.
type keyDecoder struct {
	in     *inputReader
	keyMap *KeyMap
}

func newKeyDecoder(in *inputReader, keyMap *KeyMap) *keyDecoder {
	return &keyDecoder{in: in, keyMap: keyMap}
}

// ReadKey implements KeySource.
func (d *keyDecoder) ReadKey() (KeyEvent, error) {
	r, err := d.in.ReadRune()
	if err != nil {
		return KeyEvent{}, err
	}
	if ev, ok := d.keyMap.Lookup(r); ok {
		return ev, nil
	}
	if r == '\x1b' {
		return d.readEscape()
	}
	return decodeRune(r), nil
}

// decodeRune maps an unbound rune to an event. Control bytes 0x01-0x1a
// become Ctrl+letter.
func decodeRune(r rune) KeyEvent {
	switch {
	case r >= 0x01 && r <= 0x1a:
		return KeyEvent{Code: KeyRune, Char: 'a' + r - 1, Mod: ModControl}
	case isPrintable(r):
		return KeyEvent{Code: KeyRune, Char: r}
	default:
		return KeyEvent{Code: KeyUnknown, Char: r}
	}
}

// readEscape reads the rest of an escape sequence. A lone ESC, with nothing
// queued behind it, is the Escape key itself.
func (d *keyDecoder) readEscape() (KeyEvent, error) {
	if !d.in.Buffered() {
		return KeyEvent{Code: KeyEscape}, nil
	}
	r, err := d.in.ReadRune()
	if err != nil {
		return KeyEvent{}, err
	}
	if r != '[' && r != 'O' {
		d.in.unread(r)
		return KeyEvent{Code: KeyEscape}, nil
	}

	seq := []rune{r}
	for len(seq) < maxSequenceLength {
		r, err := d.in.ReadRune()
		if err != nil {
			return KeyEvent{}, fmt.Errorf("incomplete escape sequence %q: %w", string(seq), err)
		}
		seq = append(seq, r)
		// SS3 sequences carry exactly one rune, CSI ends on a final byte.
		if seq[0] == 'O' || (r >= 0x40 && r <= 0x7e) {
			break
		}
	}
	if ev, ok := d.keyMap.LookupSequence(string(seq)); ok {
		return ev, nil
	}
	return KeyEvent{Code: KeyUnknown}, nil
}
