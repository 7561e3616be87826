package document

// Range identifies a contiguous span of text by rune offsets.
// From <= To always holds for a normalized range.
type Range struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Normalize returns the range with From <= To.
func (r Range) Normalize() Range {
	if r.From > r.To {
		return Range{From: r.To, To: r.From}
	}
	return r
}

// IsEmpty reports whether the range selects no text.
func (r Range) IsEmpty() bool {
	return r.From == r.To
}

// Len returns the number of runes covered by the range.
func (r Range) Len() int {
	n := r.Normalize()
	return n.To - n.From
}

// Point is a screen-space coordinate, used to anchor the floating
// toolbar near a selection.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Glyph metrics for the headless layout. The buffer assumes a
// monospace grid so coordinates are derivable without a renderer.
const (
	GlyphWidth = 8.0
	LineHeight = 24.0
)

// Model is the capability surface the editing components depend on.
// Any editor backend satisfying this interface is substitutable.
type Model interface {
	// Selection returns the current selection range (normalized).
	Selection() Range

	// SetSelection moves the selection. Out-of-bounds offsets are an error.
	SetSelection(r Range) error

	// TextInRange extracts the text covered by the range.
	TextInRange(r Range) (string, error)

	// ReplaceRange replaces the range with content as a single edit.
	// The selection collapses to the end of the inserted content.
	ReplaceRange(r Range, content string) error

	// Text returns the full document text.
	Text() string

	// Length returns the document length in runes.
	Length() int

	// CoordsAt returns the screen coordinate of the given offset.
	CoordsAt(offset int) Point

	// OnSelectionChanged registers a listener invoked after every
	// selection move, including the implicit move after ReplaceRange.
	OnSelectionChanged(fn func(Range))
}
