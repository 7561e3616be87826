package editor

import (
	"context"
	"fmt"
	"sync"

	"github.com/Aditya0026/collaborative-editor/pkg/document"
	"github.com/Aditya0026/collaborative-editor/pkg/llm"

	"github.com/google/uuid"
)

const suggestionTemperature = 0.7

// summaryLimit caps the applied-suggestion excerpt in the chat log.
const summaryLimit = 100

// SuggestionEngine owns the single active preview and its lifecycle:
// closed -> generating -> {ready|errored} -> closed. At most one
// preview is open; beginning a new request discards the previous one.
type SuggestionEngine struct {
	mu       sync.Mutex
	doc      document.Model
	provider llm.Provider
	active   *Preview
	onChange func(Preview)
}

func NewSuggestionEngine(doc document.Model, provider llm.Provider) *SuggestionEngine {
	return &SuggestionEngine{doc: doc, provider: provider}
}

// OnChange registers a hook invoked after every preview transition.
func (e *SuggestionEngine) OnChange(fn func(Preview)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onChange = fn
}

// Begin opens a generating preview for the request, replacing any
// preview that is still open. No queuing.
func (e *SuggestionEngine) Begin(req *SuggestionRequest) Preview {
	e.mu.Lock()
	e.active = &Preview{
		RequestID: req.ID,
		Original:  req.OriginalText,
		Selection: req.Selection,
		Phase:     PhaseGenerating,
	}
	p := *e.active
	fn := e.onChange
	e.mu.Unlock()

	if fn != nil {
		fn(p)
	}
	return p
}

// Generate runs the remote call for the request. The preview must have
// been opened with Begin first. A response whose request id no longer
// matches the active preview is discarded.
func (e *SuggestionEngine) Generate(ctx context.Context, req *SuggestionRequest) Preview {
	suggestion, err := e.provider.Generate(
		ctx,
		InstructionFor(req.Action, req.OriginalText),
		llm.WithTemperature(suggestionTemperature),
	)
	if err != nil {
		e.Fail(req.ID, err)
	} else {
		e.Resolve(req.ID, suggestion)
	}
	return e.Snapshot()
}

// Resolve moves the preview to ready. Returns false for stale
// responses (the preview was closed or replaced in the meantime).
func (e *SuggestionEngine) Resolve(requestID uuid.UUID, suggestion string) bool {
	e.mu.Lock()
	if e.active == nil || e.active.RequestID != requestID {
		e.mu.Unlock()
		return false
	}
	e.active.Suggestion = suggestion
	e.active.Phase = PhaseReady
	p := *e.active
	fn := e.onChange
	e.mu.Unlock()

	if fn != nil {
		fn(p)
	}
	return true
}

// Fail moves the preview to errored. The error string takes the place
// of the suggestion for display; Err keeps confirm disabled.
func (e *SuggestionEngine) Fail(requestID uuid.UUID, cause error) bool {
	e.mu.Lock()
	if e.active == nil || e.active.RequestID != requestID {
		e.mu.Unlock()
		return false
	}
	msg := fmt.Sprintf("Error: %v", cause)
	e.active.Suggestion = msg
	e.active.Err = msg
	e.active.Phase = PhaseErrored
	p := *e.active
	fn := e.onChange
	e.mu.Unlock()

	if fn != nil {
		fn(p)
	}
	return true
}

// Snapshot returns the current preview, or a closed one when none is
// open.
func (e *SuggestionEngine) Snapshot() Preview {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil {
		return Preview{Phase: PhaseClosed}
	}
	return *e.active
}

// Confirm applies the suggestion to the range captured at request
// time, never the live selection, and closes the preview. It returns
// the summary line for the chat log.
func (e *SuggestionEngine) Confirm() (string, error) {
	e.mu.Lock()
	if e.active == nil {
		e.mu.Unlock()
		return "", fmt.Errorf("no preview to confirm")
	}
	if e.active.Phase == PhaseGenerating {
		e.mu.Unlock()
		return "", fmt.Errorf("suggestion is still generating")
	}
	if e.active.Phase == PhaseErrored {
		e.mu.Unlock()
		return "", fmt.Errorf("cannot apply an errored suggestion")
	}
	p := *e.active
	e.mu.Unlock()

	if err := e.doc.ReplaceRange(p.Selection, p.Suggestion); err != nil {
		return "", err
	}

	e.mu.Lock()
	// The document mutation may have raced with a newer Begin; only
	// close the preview we just applied.
	if e.active != nil && e.active.RequestID == p.RequestID {
		e.active = nil
	}
	fn := e.onChange
	e.mu.Unlock()

	if fn != nil {
		fn(Preview{Phase: PhaseClosed})
	}

	return fmt.Sprintf("Applied AI suggestion: %q", ellipsize(p.Suggestion, summaryLimit)), nil
}

// Cancel discards the preview from any phase with no document
// mutation. Returns false when nothing was open.
func (e *SuggestionEngine) Cancel() bool {
	e.mu.Lock()
	if e.active == nil {
		e.mu.Unlock()
		return false
	}
	e.active = nil
	fn := e.onChange
	e.mu.Unlock()

	if fn != nil {
		fn(Preview{Phase: PhaseClosed})
	}
	return true
}

func ellipsize(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
