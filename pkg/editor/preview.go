package editor

import (
	"github.com/Aditya0026/collaborative-editor/pkg/document"

	"github.com/google/uuid"
)

// Phase is the lifecycle position of the active preview.
type Phase string

const (
	PhaseClosed     Phase = "closed"
	PhaseGenerating Phase = "generating"
	PhaseReady      Phase = "ready"
	PhaseErrored    Phase = "errored"
)

// Preview is the visible state of one suggestion request. Suggestion
// stays empty until the remote call resolves. On failure the error
// string is shown where the suggestion would appear, and Err is set so
// confirm can be refused.
type Preview struct {
	RequestID  uuid.UUID      `json:"request_id"`
	Original   string         `json:"original"`
	Suggestion string         `json:"suggestion"`
	Selection  document.Range `json:"selection"`
	Phase      Phase          `json:"phase"`
	Err        string         `json:"error,omitempty"`
}
