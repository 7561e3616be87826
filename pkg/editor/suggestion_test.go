package editor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Aditya0026/collaborative-editor/pkg/document"
	"github.com/Aditya0026/collaborative-editor/pkg/llm"

	"github.com/google/uuid"
)

// fakeProvider returns canned responses and records the prompts it saw.
type fakeProvider struct {
	reply   string
	err     error
	prompts []string
	history [][]llm.Message
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	copied := make([]llm.Message, len(history))
	copy(copied, history)
	f.history = append(f.history, copied)
	return f.reply, f.err
}

func newTestEngine(t *testing.T, text string, provider llm.Provider) (*document.Buffer, *Coordinator, *SuggestionEngine) {
	t.Helper()
	doc := document.NewBuffer(text)
	return doc, NewCoordinator(doc), NewSuggestionEngine(doc, provider)
}

func requestFor(t *testing.T, doc *document.Buffer, c *Coordinator, from, to int, action Action) *SuggestionRequest {
	t.Helper()
	if err := doc.SetSelection(document.Range{From: from, To: to}); err != nil {
		t.Fatalf("SetSelection error: %v", err)
	}
	req, err := c.RequestEdit(action)
	if err != nil {
		t.Fatalf("RequestEdit error: %v", err)
	}
	return req
}

func TestShortenFlow(t *testing.T) {
	provider := &fakeProvider{reply: "Short."}
	doc, c, e := newTestEngine(t, "This sentence is far too long for its own good.", provider)

	req := requestFor(t, doc, c, 0, doc.Length(), ActionShorten)
	p := e.Begin(req)
	if p.Phase != PhaseGenerating {
		t.Fatalf("phase after Begin = %q", p.Phase)
	}

	p = e.Generate(context.Background(), req)
	if p.Phase != PhaseReady {
		t.Fatalf("phase after Generate = %q", p.Phase)
	}
	if p.Suggestion != "Short." {
		t.Errorf("Suggestion = %q", p.Suggestion)
	}
	if len(provider.prompts) != 1 || !strings.Contains(provider.prompts[0], "more concise") {
		t.Errorf("prompt = %v", provider.prompts)
	}

	summary, err := e.Confirm()
	if err != nil {
		t.Fatalf("Confirm error: %v", err)
	}
	if doc.Text() != "Short." {
		t.Errorf("document = %q", doc.Text())
	}
	if summary != `Applied AI suggestion: "Short."` {
		t.Errorf("summary = %q", summary)
	}
	if got := e.Snapshot(); got.Phase != PhaseClosed {
		t.Errorf("phase after Confirm = %q", got.Phase)
	}
}

func TestConfirmUsesCapturedRange(t *testing.T) {
	provider := &fakeProvider{reply: "hey"}
	doc, c, e := newTestEngine(t, "hello world", provider)

	req := requestFor(t, doc, c, 0, 5, ActionCasual)
	e.Begin(req)
	e.Generate(context.Background(), req)

	// The live selection moves while the preview is open.
	if err := doc.SetSelection(document.Range{From: 6, To: 11}); err != nil {
		t.Fatalf("SetSelection error: %v", err)
	}

	if _, err := e.Confirm(); err != nil {
		t.Fatalf("Confirm error: %v", err)
	}
	if doc.Text() != "hey world" {
		t.Errorf("document = %q, want %q", doc.Text(), "hey world")
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	provider := &fakeProvider{reply: "unused"}
	doc, c, e := newTestEngine(t, "hello world", provider)

	first := requestFor(t, doc, c, 0, 5, ActionShorten)
	e.Begin(first)

	second := requestFor(t, doc, c, 6, 11, ActionExpand)
	e.Begin(second)

	// The first request resolves after it was superseded.
	if e.Resolve(first.ID, "late arrival") {
		t.Fatalf("Resolve accepted a stale response")
	}
	if e.Fail(first.ID, errors.New("late failure")) {
		t.Fatalf("Fail accepted a stale response")
	}

	p := e.Snapshot()
	if p.RequestID != second.ID || p.Phase != PhaseGenerating {
		t.Errorf("active preview disturbed by stale response: %+v", p)
	}
}

func TestGenerateFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("network down")}
	doc, c, e := newTestEngine(t, "hello world", provider)

	req := requestFor(t, doc, c, 0, 5, ActionImprove)
	e.Begin(req)
	p := e.Generate(context.Background(), req)

	if p.Phase != PhaseErrored {
		t.Fatalf("phase = %q, want errored", p.Phase)
	}
	if p.Suggestion != "Error: network down" {
		t.Errorf("Suggestion = %q", p.Suggestion)
	}
	if p.Err != "Error: network down" {
		t.Errorf("Err = %q", p.Err)
	}

	if _, err := e.Confirm(); err == nil {
		t.Fatalf("Confirm on errored preview = nil error, want error")
	}
	if doc.Text() != "hello world" {
		t.Errorf("document mutated by errored preview: %q", doc.Text())
	}
}

func TestConfirmWhileGenerating(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}
	doc, c, e := newTestEngine(t, "hello world", provider)

	req := requestFor(t, doc, c, 0, 5, ActionEdit)
	e.Begin(req)

	if _, err := e.Confirm(); err == nil {
		t.Fatalf("Confirm while generating = nil error, want error")
	}
	if doc.Text() != "hello world" {
		t.Errorf("document mutated: %q", doc.Text())
	}
}

func TestCancelLeavesDocumentUntouched(t *testing.T) {
	provider := &fakeProvider{reply: "replacement"}
	doc, c, e := newTestEngine(t, "hello world", provider)

	if e.Cancel() {
		t.Errorf("Cancel with no preview = true, want false")
	}

	req := requestFor(t, doc, c, 0, 5, ActionEdit)
	e.Begin(req)
	e.Generate(context.Background(), req)

	if !e.Cancel() {
		t.Fatalf("Cancel = false, want true")
	}
	if doc.Text() != "hello world" {
		t.Errorf("document mutated by cancel: %q", doc.Text())
	}
	if got := e.Snapshot(); got.Phase != PhaseClosed {
		t.Errorf("phase after cancel = %q", got.Phase)
	}

	// A resolve arriving after cancel is stale.
	if e.Resolve(req.ID, "late") {
		t.Errorf("Resolve accepted after cancel")
	}
}

func TestConfirmSummaryEllipsized(t *testing.T) {
	long := strings.Repeat("x", 150)
	provider := &fakeProvider{reply: long}
	doc, c, e := newTestEngine(t, "hello world", provider)

	req := requestFor(t, doc, c, 0, 5, ActionExpand)
	e.Begin(req)
	e.Generate(context.Background(), req)

	summary, err := e.Confirm()
	if err != nil {
		t.Fatalf("Confirm error: %v", err)
	}
	want := `Applied AI suggestion: "` + strings.Repeat("x", 100) + `..."`
	if summary != want {
		t.Errorf("summary = %q, want %q", summary, want)
	}
}

func TestOnChangeNotifications(t *testing.T) {
	provider := &fakeProvider{reply: "done"}
	doc, c, e := newTestEngine(t, "hello world", provider)

	var phases []Phase
	e.OnChange(func(p Preview) {
		phases = append(phases, p.Phase)
	})

	req := requestFor(t, doc, c, 0, 5, ActionEdit)
	e.Begin(req)
	e.Generate(context.Background(), req)
	if _, err := e.Confirm(); err != nil {
		t.Fatalf("Confirm error: %v", err)
	}

	want := []Phase{PhaseGenerating, PhaseReady, PhaseClosed}
	if len(phases) != len(want) {
		t.Fatalf("transitions = %v, want %v", phases, want)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Errorf("transition %d = %q, want %q", i, phases[i], want[i])
		}
	}
}

func TestStaleGuardByRequestId(t *testing.T) {
	e := NewSuggestionEngine(document.NewBuffer("x"), &fakeProvider{})
	if e.Resolve(uuid.New(), "nothing open") {
		t.Errorf("Resolve with no active preview = true")
	}
}
