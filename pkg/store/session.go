package store

import (
	"github.com/Aditya0026/collaborative-editor/pkg/document"
	"github.com/Aditya0026/collaborative-editor/pkg/editor"
	"github.com/Aditya0026/collaborative-editor/pkg/llm"
)

// Session is one live editing session held in memory: the document,
// the selection coordinator, the suggestion engine and the chat log
// all share a lifetime.
type Session struct {
	ID           string
	Document     *document.Buffer
	Coordinator  *editor.Coordinator
	Engine       *editor.SuggestionEngine
	Conversation *editor.Conversation
}

// NewSession wires a fresh session around the seeded document.
func NewSession(id string, provider llm.Provider) *Session {
	doc := document.Seed()
	return &Session{
		ID:           id,
		Document:     doc,
		Coordinator:  editor.NewCoordinator(doc),
		Engine:       editor.NewSuggestionEngine(doc, provider),
		Conversation: editor.NewConversation(doc, provider),
	}
}
