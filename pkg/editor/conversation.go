package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Aditya0026/collaborative-editor/pkg/document"
	"github.com/Aditya0026/collaborative-editor/pkg/llm"

	"github.com/google/uuid"
)

var (
	// ErrEmptyMessage rejects blank chat turns before any state change.
	ErrEmptyMessage = errors.New("chat message is empty")

	// ErrTurnInFlight enforces the single-flight guard: a second send
	// is rejected until the pending turn resolves.
	ErrTurnInFlight = errors.New("a chat turn is already in flight")
)

// ChatMessage is one append-only log entry. The log is never reordered
// or mutated after append.
type ChatMessage struct {
	Id          uuid.UUID    `json:"id"`
	Role        string       `json:"role"`
	Content     string       `json:"content"`
	CreatedAt   time.Time    `json:"created_at"`
	ToolResults []ToolResult `json:"tool_results,omitempty"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation maintains the message log, sends user turns to the
// assistant service and applies document-mutation tool results. It is
// the only writer to the log.
type Conversation struct {
	mu       sync.Mutex
	doc      document.Model
	provider llm.Provider
	messages []ChatMessage
	inFlight bool
}

func NewConversation(doc document.Model, provider llm.Provider) *Conversation {
	c := &Conversation{doc: doc, provider: provider}
	c.append(RoleAssistant, Greeting, nil)
	return c
}

// Messages returns a copy of the log in append order.
func (c *Conversation) Messages() []ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// AppendNote records an assistant-authored log entry that did not come
// from a remote call, e.g. the applied-suggestion summary.
func (c *Conversation) AppendNote(content string) ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.append(RoleAssistant, content, nil)
}

// Send processes one user turn: append the user message, call the
// assistant with the full history (role+content only) plus the
// selection captured at send time, apply tool results and append the
// reply. Remote failures become an assistant error message; they never
// block future turns.
func (c *Conversation) Send(ctx context.Context, text string) (ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return ChatMessage{}, ErrEmptyMessage
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return ChatMessage{}, ErrTurnInFlight
	}
	c.inFlight = true

	// Selection is captured here, at send time. The replace tool
	// result targets this range even if the live selection moves
	// during the round trip.
	capturedSel := c.doc.Selection()
	selectedText := ""
	if !capturedSel.IsEmpty() {
		if t, err := c.doc.TextInRange(capturedSel); err == nil {
			selectedText = t
		}
	}

	c.append(RoleUser, text, nil)
	history := c.historyLocked(selectedText)
	c.mu.Unlock()

	reply, err := c.provider.Chat(ctx, history)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false

	if err != nil {
		msg := c.append(RoleAssistant, fmt.Sprintf("Sorry, I encountered an error: %v", err), nil)
		return msg, nil
	}

	content, toolResults := ParseToolDirectives(reply)
	c.applyToolResults(toolResults, capturedSel, selectedText)

	return c.append(RoleAssistant, content, toolResults), nil
}

// applyToolResults mutates the document for each parsed tool result.
// Append ignores the selection entirely; replace requires the captured
// selection to be non-empty, otherwise it is a no-op.
func (c *Conversation) applyToolResults(results []ToolResult, capturedSel document.Range, selectedText string) {
	for _, tr := range results {
		switch action := tr.Action.(type) {
		case AppendAction:
			end := document.Range{From: c.doc.Length(), To: c.doc.Length()}
			_ = c.doc.SetSelection(end)
			_ = c.doc.ReplaceRange(end, "\n\n"+action.Content)
		case ReplaceAction:
			if selectedText == "" {
				continue
			}
			_ = c.doc.ReplaceRange(capturedSel, action.Content)
		}
	}
}

// historyLocked flattens the log to role+content pairs (timestamps
// stripped) with the system prompt first. Caller holds the lock.
func (c *Conversation) historyLocked(selectedText string) []llm.Message {
	history := make([]llm.Message, 0, len(c.messages)+1)
	history = append(history, llm.Message{Role: llm.RoleSystem, Content: ChatSystemPrompt(selectedText)})
	for _, msg := range c.messages {
		history = append(history, llm.Message{Role: msg.Role, Content: msg.Content})
	}
	return history
}

// append adds a log entry. Caller holds the lock (or is a constructor).
func (c *Conversation) append(role, content string, toolResults []ToolResult) ChatMessage {
	msg := ChatMessage{
		Id:          uuid.New(),
		Role:        role,
		Content:     content,
		CreatedAt:   time.Now(),
		ToolResults: toolResults,
	}
	c.messages = append(c.messages, msg)
	return msg
}
