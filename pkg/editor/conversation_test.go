package editor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/Aditya0026/collaborative-editor/pkg/document"
	"github.com/Aditya0026/collaborative-editor/pkg/llm"
)

func TestConversationStartsWithGreeting(t *testing.T) {
	c := NewConversation(document.NewBuffer("doc"), &fakeProvider{})

	msgs := c.Messages()
	if len(msgs) != 1 {
		t.Fatalf("messages = %d, want 1", len(msgs))
	}
	if msgs[0].Role != RoleAssistant || msgs[0].Content != Greeting {
		t.Errorf("greeting = %+v", msgs[0])
	}
}

func TestSendRejectsEmptyMessage(t *testing.T) {
	provider := &fakeProvider{reply: "never called"}
	c := NewConversation(document.NewBuffer("doc"), provider)

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := c.Send(context.Background(), text); !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("Send(%q) error = %v, want ErrEmptyMessage", text, err)
		}
	}

	if len(provider.history) != 0 {
		t.Errorf("provider called for empty message")
	}
	if len(c.Messages()) != 1 {
		t.Errorf("log grew on rejected send: %d entries", len(c.Messages()))
	}
}

func TestSendBuildsHistoryWithSelection(t *testing.T) {
	provider := &fakeProvider{reply: "sure"}
	doc := document.NewBuffer("hello world")
	c := NewConversation(doc, provider)

	if err := doc.SetSelection(document.Range{From: 0, To: 5}); err != nil {
		t.Fatalf("SetSelection error: %v", err)
	}

	if _, err := c.Send(context.Background(), "make it better"); err != nil {
		t.Fatalf("Send error: %v", err)
	}

	if len(provider.history) != 1 {
		t.Fatalf("provider calls = %d", len(provider.history))
	}
	h := provider.history[0]

	if h[0].Role != llm.RoleSystem {
		t.Fatalf("first history entry role = %q", h[0].Role)
	}
	if !strings.Contains(h[0].Content, `"hello"`) {
		t.Errorf("system prompt missing selected text: %q", h[0].Content)
	}
	// Greeting then the user turn; timestamps and ids are stripped.
	if h[1].Content != Greeting || h[2].Content != "make it better" {
		t.Errorf("history order wrong: %+v", h[1:])
	}
}

func TestSendAppendsReply(t *testing.T) {
	provider := &fakeProvider{reply: "glad to help"}
	c := NewConversation(document.NewBuffer("doc"), provider)

	reply, err := c.Send(context.Background(), "hi there")
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if reply.Role != RoleAssistant || reply.Content != "glad to help" {
		t.Errorf("reply = %+v", reply)
	}

	msgs := c.Messages()
	if len(msgs) != 3 {
		t.Fatalf("log = %d entries, want 3", len(msgs))
	}
	if msgs[1].Role != RoleUser || msgs[1].Content != "hi there" {
		t.Errorf("user entry = %+v", msgs[1])
	}
}

func TestSendProviderFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("rate limited")}
	c := NewConversation(document.NewBuffer("doc"), provider)

	reply, err := c.Send(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Send returned error %v, want error folded into the log", err)
	}
	if reply.Content != "Sorry, I encountered an error: rate limited" {
		t.Errorf("reply = %q", reply.Content)
	}

	// The failed turn does not block the next one.
	provider.err = nil
	provider.reply = "recovered"
	reply, err = c.Send(context.Background(), "try again")
	if err != nil {
		t.Fatalf("Send after failure error: %v", err)
	}
	if reply.Content != "recovered" {
		t.Errorf("reply after recovery = %q", reply.Content)
	}
}

func TestSendAppendToolResult(t *testing.T) {
	provider := &fakeProvider{reply: "Added it for you.\n```json\n" +
		`{"toolResults":[{"toolName":"insertToEditor","result":{"type":"append","content":"The end."}}]}` +
		"\n```"}
	doc := document.NewBuffer("Chapter one.")
	c := NewConversation(doc, provider)

	reply, err := c.Send(context.Background(), "write an ending")
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}

	if reply.Content != "Added it for you." {
		t.Errorf("reply content = %q", reply.Content)
	}
	if len(reply.ToolResults) != 1 {
		t.Fatalf("tool results = %d", len(reply.ToolResults))
	}
	if doc.Text() != "Chapter one.\n\nThe end." {
		t.Errorf("document = %q", doc.Text())
	}
}

func TestSendReplaceToolResult(t *testing.T) {
	provider := &fakeProvider{reply: "Rewrote the selection.\n```json\n" +
		`{"toolResults":[{"toolName":"insertToEditor","result":{"type":"replace","content":"Goodbye"}}]}` +
		"\n```"}
	doc := document.NewBuffer("Hello world")
	c := NewConversation(doc, provider)

	if err := doc.SetSelection(document.Range{From: 0, To: 5}); err != nil {
		t.Fatalf("SetSelection error: %v", err)
	}

	if _, err := c.Send(context.Background(), "replace my selection"); err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if doc.Text() != "Goodbye world" {
		t.Errorf("document = %q", doc.Text())
	}
}

func TestSendReplaceWithoutSelectionIsNoop(t *testing.T) {
	provider := &fakeProvider{reply: "Done.\n```json\n" +
		`{"toolResults":[{"toolName":"insertToEditor","result":{"type":"replace","content":"Goodbye"}}]}` +
		"\n```"}
	doc := document.NewBuffer("Hello world")
	c := NewConversation(doc, provider)

	reply, err := c.Send(context.Background(), "replace something")
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if doc.Text() != "Hello world" {
		t.Errorf("document mutated without a selection: %q", doc.Text())
	}
	// The directive still shows up in the log entry.
	if len(reply.ToolResults) != 1 {
		t.Errorf("tool results = %d", len(reply.ToolResults))
	}
}

// blockingProvider parks Chat until released, so a second Send can be
// attempted while the first is in flight.
type blockingProvider struct {
	entered chan struct{}
	release chan struct{}
}

func (p *blockingProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	close(p.entered)
	<-p.release
	return "finally", nil
}

func (p *blockingProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return "", nil
}

func TestSendSingleFlight(t *testing.T) {
	provider := &blockingProvider{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	c := NewConversation(document.NewBuffer("doc"), provider)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := c.Send(context.Background(), "first"); err != nil {
			t.Errorf("first Send error: %v", err)
		}
	}()

	<-provider.entered
	if _, err := c.Send(context.Background(), "second"); !errors.Is(err, ErrTurnInFlight) {
		t.Errorf("second Send error = %v, want ErrTurnInFlight", err)
	}

	close(provider.release)
	wg.Wait()

	// Once the first turn resolves, sending works again.
	msgs := c.Messages()
	last := msgs[len(msgs)-1]
	if last.Content != "finally" {
		t.Errorf("last message = %q", last.Content)
	}
}

func TestAppendNote(t *testing.T) {
	c := NewConversation(document.NewBuffer("doc"), &fakeProvider{})

	note := c.AppendNote(`Applied AI suggestion: "Short."`)
	if note.Role != RoleAssistant {
		t.Errorf("note role = %q", note.Role)
	}

	msgs := c.Messages()
	if msgs[len(msgs)-1].Content != `Applied AI suggestion: "Short."` {
		t.Errorf("note not appended: %+v", msgs)
	}
}
