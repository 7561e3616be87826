package document

import (
	"fmt"
	"strings"
	"sync"
)

// Buffer is the in-memory Model implementation. All offsets are rune
// based so multi-byte text behaves the same as in the browser editor.
type Buffer struct {
	mu        sync.RWMutex
	runes     []rune
	selection Range
	listeners []func(Range)

	// One entry per ReplaceRange call: a single user-visible edit is a
	// single undo boundary.
	undoStack []editRecord
	redoStack []editRecord
}

type editRecord struct {
	at       Range  // range that was replaced
	removed  string // text that was there before
	inserted string
}

var _ Model = (*Buffer)(nil)

// NewBuffer creates a buffer with the given initial content and an
// empty selection at offset 0.
func NewBuffer(content string) *Buffer {
	return &Buffer{
		runes: []rune(content),
	}
}

func (b *Buffer) Selection() Range {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.selection.Normalize()
}

func (b *Buffer) SetSelection(r Range) error {
	r = r.Normalize()

	b.mu.Lock()
	if r.From < 0 || r.To > len(b.runes) {
		b.mu.Unlock()
		return fmt.Errorf("selection [%d,%d] out of bounds (length %d)", r.From, r.To, len(b.runes))
	}
	b.selection = r
	listeners := b.listeners
	b.mu.Unlock()

	for _, fn := range listeners {
		fn(r)
	}
	return nil
}

func (b *Buffer) TextInRange(r Range) (string, error) {
	r = r.Normalize()

	b.mu.RLock()
	defer b.mu.RUnlock()
	if r.From < 0 || r.To > len(b.runes) {
		return "", fmt.Errorf("range [%d,%d] out of bounds (length %d)", r.From, r.To, len(b.runes))
	}
	return string(b.runes[r.From:r.To]), nil
}

func (b *Buffer) ReplaceRange(r Range, content string) error {
	r = r.Normalize()

	b.mu.Lock()
	if r.From < 0 || r.To > len(b.runes) {
		b.mu.Unlock()
		return fmt.Errorf("range [%d,%d] out of bounds (length %d)", r.From, r.To, len(b.runes))
	}

	removed := string(b.runes[r.From:r.To])
	inserted := []rune(content)

	next := make([]rune, 0, len(b.runes)-r.Len()+len(inserted))
	next = append(next, b.runes[:r.From]...)
	next = append(next, inserted...)
	next = append(next, b.runes[r.To:]...)
	b.runes = next

	b.undoStack = append(b.undoStack, editRecord{at: r, removed: removed, inserted: content})
	b.redoStack = nil

	// Selection collapses after the inserted content.
	end := r.From + len(inserted)
	b.selection = Range{From: end, To: end}
	sel := b.selection
	listeners := b.listeners
	b.mu.Unlock()

	for _, fn := range listeners {
		fn(sel)
	}
	return nil
}

func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return string(b.runes)
}

func (b *Buffer) Length() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.runes)
}

// CoordsAt maps a rune offset to screen coordinates on the monospace
// grid. Offsets beyond the document clamp to the end.
func (b *Buffer) CoordsAt(offset int) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if offset > len(b.runes) {
		offset = len(b.runes)
	}

	line, col := 0, 0
	for _, r := range b.runes[:offset] {
		if r == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return Point{X: float64(col) * GlyphWidth, Y: float64(line) * LineHeight}
}

func (b *Buffer) OnSelectionChanged(fn func(Range)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, fn)
}

// Undo reverts the most recent ReplaceRange. Returns false when there
// is nothing to undo.
func (b *Buffer) Undo() bool {
	b.mu.Lock()

	if len(b.undoStack) == 0 {
		b.mu.Unlock()
		return false
	}
	rec := b.undoStack[len(b.undoStack)-1]
	b.undoStack = b.undoStack[:len(b.undoStack)-1]

	insertedLen := len([]rune(rec.inserted))
	span := Range{From: rec.at.From, To: rec.at.From + insertedLen}
	b.applyLocked(span, rec.removed)
	b.redoStack = append(b.redoStack, rec)

	sel := b.selection
	listeners := b.listeners
	b.mu.Unlock()

	for _, fn := range listeners {
		fn(sel)
	}
	return true
}

// Redo re-applies the most recently undone edit.
func (b *Buffer) Redo() bool {
	b.mu.Lock()

	if len(b.redoStack) == 0 {
		b.mu.Unlock()
		return false
	}
	rec := b.redoStack[len(b.redoStack)-1]
	b.redoStack = b.redoStack[:len(b.redoStack)-1]

	b.applyLocked(rec.at, rec.inserted)
	b.undoStack = append(b.undoStack, rec)

	sel := b.selection
	listeners := b.listeners
	b.mu.Unlock()

	for _, fn := range listeners {
		fn(sel)
	}
	return true
}

// applyLocked splices content over the span without touching the undo
// stacks. Caller holds the lock.
func (b *Buffer) applyLocked(span Range, content string) {
	inserted := []rune(content)
	next := make([]rune, 0, len(b.runes)-span.Len()+len(inserted))
	next = append(next, b.runes[:span.From]...)
	next = append(next, inserted...)
	next = append(next, b.runes[span.To:]...)
	b.runes = next

	end := span.From + len(inserted)
	b.selection = Range{From: end, To: end}
}

// Preview returns a short prefix of the document for logging.
func (b *Buffer) Preview(max int) string {
	text := b.Text()
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}

// EndRange returns the collapsed range at end-of-document.
func (b *Buffer) EndRange() Range {
	n := b.Length()
	return Range{From: n, To: n}
}

// normalizeNewlines keeps seed templates platform independent.
func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
