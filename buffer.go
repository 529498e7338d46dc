package interactive

import (
	"errors"
	"unicode"
)

// ErrOutOfRange is returned when an edit addresses a unit past the buffer end.
var ErrOutOfRange = errors.New("offset out of range")

// Buffer is the editable input line: an ordered sequence of runes and a
// cursor offset that always satisfies 0 <= cursor <= Len().
//
// A Buffer owns its runes. Values handed in or out are copied, so a buffer
// recalled from history can be edited without touching the stored entry.
type Buffer struct {
	units  []rune
	cursor int
}

// NewBuffer creates a buffer holding text with the cursor at its end.
func NewBuffer(text string) *Buffer {
	units := []rune(text)
	return &Buffer{units: units, cursor: len(units)}
}

// Len returns the number of units in the buffer.
func (b *Buffer) Len() int {
	return len(b.units)
}

// Cursor returns the logical cursor offset.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// Units returns a copy of the buffer contents.
func (b *Buffer) Units() []rune {
	return append([]rune(nil), b.units...)
}

func (b *Buffer) String() string {
	return string(b.units)
}

// IsBlank reports whether the buffer is empty or holds only whitespace.
func (b *Buffer) IsBlank() bool {
	return isBlank(b.units)
}

// Clone returns an independent copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{units: b.Units(), cursor: b.cursor}
}

// InsertAt inserts r at offset and leaves the cursor just after it.
// Offsets outside the buffer are clamped to the nearest end.
func (b *Buffer) InsertAt(offset int, r rune) {
	offset = clamp(offset, 0, len(b.units))
	b.units = append(b.units, 0)
	copy(b.units[offset+1:], b.units[offset:])
	b.units[offset] = r
	b.cursor = offset + 1
}

// RemoveAt deletes the unit at offset. The cursor keeps pointing at the same
// logical unit: it moves back by one only when it was after the removed unit.
func (b *Buffer) RemoveAt(offset int) error {
	if offset < 0 || offset >= len(b.units) {
		return ErrOutOfRange
	}
	b.units = append(b.units[:offset], b.units[offset+1:]...)
	if b.cursor > offset {
		b.cursor--
	}
	return nil
}

// ReplaceAll swaps the whole content for a copy of units and places the
// cursor at cursor, clamped to the new length.
func (b *Buffer) ReplaceAll(units []rune, cursor int) {
	b.units = append([]rune(nil), units...)
	b.cursor = clamp(cursor, 0, len(b.units))
}

// replaceRange substitutes units for b[start:end] and puts the cursor at the
// end of the inserted text.
func (b *Buffer) replaceRange(start, end int, units []rune) {
	start = clamp(start, 0, len(b.units))
	end = clamp(end, start, len(b.units))
	out := make([]rune, 0, len(b.units)-(end-start)+len(units))
	out = append(out, b.units[:start]...)
	out = append(out, units...)
	out = append(out, b.units[end:]...)
	b.units = out
	b.cursor = start + len(units)
}

// SetCursor moves the cursor, clamping to the buffer bounds.
func (b *Buffer) SetCursor(offset int) {
	b.cursor = clamp(offset, 0, len(b.units))
}

// MoveLeft moves the cursor one unit left. It reports false at offset 0.
func (b *Buffer) MoveLeft() bool {
	if b.cursor == 0 {
		return false
	}
	b.cursor--
	return true
}

// MoveRight moves the cursor one unit right. It reports false at the end.
func (b *Buffer) MoveRight() bool {
	if b.cursor >= len(b.units) {
		return false
	}
	b.cursor++
	return true
}

// WordBeforeCursor returns the run of non-whitespace units that ends exactly
// at the cursor. It is empty at offset 0 or right after whitespace.
func (b *Buffer) WordBeforeCursor() []rune {
	start := b.wordStart()
	return append([]rune(nil), b.units[start:b.cursor]...)
}

func (b *Buffer) wordStart() int {
	start := b.cursor
	for start > 0 && !unicode.IsSpace(b.units[start-1]) {
		start--
	}
	return start
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
