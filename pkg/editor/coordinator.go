package editor

import (
	"fmt"
	"sync"

	"github.com/Aditya0026/collaborative-editor/pkg/document"

	"github.com/google/uuid"
)

// SuggestionRequest is an immutable capture of one user-initiated edit
// action. Selection is the exact range to mutate on confirmation, even
// if the live selection moves while the request is pending.
type SuggestionRequest struct {
	ID           uuid.UUID
	OriginalText string
	Action       Action
	Selection    document.Range
}

// Coordinator tracks the live selection, derives the floating-toolbar
// anchor and hands captured requests to the suggestion engine.
type Coordinator struct {
	mu           sync.Mutex
	doc          document.Model
	anchor       *document.Point
	selectedText string
}

func NewCoordinator(doc document.Model) *Coordinator {
	c := &Coordinator{doc: doc}
	doc.OnSelectionChanged(c.handleSelectionChanged)
	return c
}

// handleSelectionChanged recomputes the anchor on every selection
// event. An empty selection clears it (hides the toolbar).
func (c *Coordinator) handleSelectionChanged(r document.Range) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r.IsEmpty() {
		c.anchor = nil
		c.selectedText = ""
		return
	}

	text, err := c.doc.TextInRange(r)
	if err != nil {
		c.anchor = nil
		c.selectedText = ""
		return
	}

	p := c.doc.CoordsAt(r.From)
	c.anchor = &p
	c.selectedText = text
}

// Anchor returns the current toolbar anchor, if any.
func (c *Coordinator) Anchor() (document.Point, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.anchor == nil {
		return document.Point{}, false
	}
	return *c.anchor, true
}

// SelectedText returns the text stored at the last non-empty selection.
func (c *Coordinator) SelectedText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedText
}

// RequestEdit captures the live selection range at call time and
// clears the anchor immediately, independent of the engine outcome.
func (c *Coordinator) RequestEdit(action Action) (*SuggestionRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.anchor == nil || c.selectedText == "" {
		return nil, fmt.Errorf("no active selection to edit")
	}

	sel := c.doc.Selection()
	req := &SuggestionRequest{
		ID:           uuid.New(),
		OriginalText: c.selectedText,
		Action:       action,
		Selection:    sel,
	}

	// Toolbar disappears once an action is chosen.
	c.anchor = nil

	return req, nil
}
