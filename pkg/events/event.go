package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DOCUMENT_MUTATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the common implementation used across the editor.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes published on the editor bus.
const (
	TypeDocumentMutated = "DOCUMENT_MUTATED"
	TypePreviewUpdated  = "PREVIEW_UPDATED"
	TypeAnchorMoved     = "ANCHOR_MOVED"
)

// NewDocumentMutated builds the event emitted after every range
// replacement (preview confirm or tool-result application).
func NewDocumentMutated(sessionID string, from, to, length int) Event {
	return BaseEvent{
		Type: TypeDocumentMutated,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"from":       from,
			"to":         to,
			"length":     length,
		},
		OccurredAt: time.Now(),
	}
}

// NewPreviewUpdated is emitted on every preview phase transition.
func NewPreviewUpdated(sessionID, requestID, phase string) Event {
	return BaseEvent{
		Type: TypePreviewUpdated,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"request_id": requestID,
			"phase":      phase,
		},
		OccurredAt: time.Now(),
	}
}

// NewAnchorMoved is emitted when the floating-toolbar anchor appears,
// moves or disappears. Visible is false when the selection collapsed.
func NewAnchorMoved(sessionID string, visible bool, x, y float64) Event {
	return BaseEvent{
		Type: TypeAnchorMoved,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"visible":    visible,
			"x":          x,
			"y":          y,
		},
		OccurredAt: time.Now(),
	}
}
