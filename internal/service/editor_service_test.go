package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Aditya0026/collaborative-editor/internal/dto"
	"github.com/Aditya0026/collaborative-editor/internal/pkg/serverutils"
	"github.com/Aditya0026/collaborative-editor/internal/repository/memory"
	"github.com/Aditya0026/collaborative-editor/pkg/events"
	"github.com/Aditya0026/collaborative-editor/pkg/llm"

	"github.com/stretchr/testify/assert"
)

type stubProvider struct {
	reply string
	err   error
}

func (p *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return p.reply, p.err
}

func (p *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.reply, p.err
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *capturingPublisher) PublishEvent(event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newTestEditorService(provider llm.Provider) (IEditorService, *capturingPublisher) {
	repo := memory.NewSessionRepository(time.Hour)
	pub := &capturingPublisher{}
	return NewEditorService(repo, provider, pub, nopLogger{}), pub
}

func TestCreateAndGetDocument(t *testing.T) {
	svc, _ := newTestEditorService(&stubProvider{})

	created, err := svc.CreateSession(context.Background())
	assert.NoError(t, err)
	assert.NotEmpty(t, created.Id)

	docRes, err := svc.GetDocument(context.Background(), created.Id)
	assert.NoError(t, err)
	assert.NotZero(t, docRes.Length)
	assert.Equal(t, len([]rune(docRes.Content)), docRes.Length)
}

func TestUnknownSessionIsNotFound(t *testing.T) {
	svc, _ := newTestEditorService(&stubProvider{})

	_, err := svc.GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, serverutils.ErrNotFound)

	err = svc.DeleteSession(context.Background(), "missing")
	assert.ErrorIs(t, err, serverutils.ErrNotFound)
}

func TestSuggestionRoundTrip(t *testing.T) {
	svc, pub := newTestEditorService(&stubProvider{reply: "Tighter."})

	created, err := svc.CreateSession(context.Background())
	assert.NoError(t, err)

	_, err = svc.UpdateSelection(context.Background(), created.Id, &dto.UpdateSelectionRequest{From: 0, To: 7})
	assert.NoError(t, err)

	preview, err := svc.RequestEdit(context.Background(), created.Id, &dto.RequestEditRequest{Action: "shorten"})
	assert.NoError(t, err)
	assert.Equal(t, "generating", preview.Phase)
	assert.NotEmpty(t, preview.RequestId)

	// The stub resolves in the background.
	assert.Eventually(t, func() bool {
		p, err := svc.GetPreview(context.Background(), created.Id)
		return err == nil && p.Phase == "ready"
	}, time.Second, 5*time.Millisecond)

	confirmed, err := svc.ConfirmSuggestion(context.Background(), created.Id)
	assert.NoError(t, err)
	assert.Contains(t, confirmed.Summary.Content, "Applied AI suggestion")
	assert.Contains(t, confirmed.Document.Content, "Tighter.")

	assert.Contains(t, pub.types(), events.TypePreviewUpdated)
	assert.Contains(t, pub.types(), events.TypeDocumentMutated)
}

func TestRequestEditWithoutSelection(t *testing.T) {
	svc, _ := newTestEditorService(&stubProvider{reply: "x"})

	created, err := svc.CreateSession(context.Background())
	assert.NoError(t, err)

	_, err = svc.RequestEdit(context.Background(), created.Id, &dto.RequestEditRequest{Action: "improve"})
	assert.Error(t, err)
}

func TestConfirmWithoutPreview(t *testing.T) {
	svc, _ := newTestEditorService(&stubProvider{reply: "x"})

	created, err := svc.CreateSession(context.Background())
	assert.NoError(t, err)

	_, err = svc.ConfirmSuggestion(context.Background(), created.Id)
	assert.Error(t, err)
}

func TestCancelIsIdempotent(t *testing.T) {
	svc, _ := newTestEditorService(&stubProvider{reply: "x"})

	created, err := svc.CreateSession(context.Background())
	assert.NoError(t, err)

	res, err := svc.CancelSuggestion(context.Background(), created.Id)
	assert.NoError(t, err)
	assert.Equal(t, "closed", res.Phase)
}

func TestUndoAfterConfirm(t *testing.T) {
	svc, _ := newTestEditorService(&stubProvider{reply: "Changed"})

	created, err := svc.CreateSession(context.Background())
	assert.NoError(t, err)

	before, err := svc.GetDocument(context.Background(), created.Id)
	assert.NoError(t, err)

	_, err = svc.UpdateSelection(context.Background(), created.Id, &dto.UpdateSelectionRequest{From: 0, To: 5})
	assert.NoError(t, err)
	_, err = svc.RequestEdit(context.Background(), created.Id, &dto.RequestEditRequest{Action: "edit"})
	assert.NoError(t, err)

	assert.Eventually(t, func() bool {
		p, err := svc.GetPreview(context.Background(), created.Id)
		return err == nil && p.Phase == "ready"
	}, time.Second, 5*time.Millisecond)

	_, err = svc.ConfirmSuggestion(context.Background(), created.Id)
	assert.NoError(t, err)

	undone, err := svc.Undo(context.Background(), created.Id)
	assert.NoError(t, err)
	assert.True(t, undone.Applied)
	assert.Equal(t, before.Content, undone.Document.Content)

	redone, err := svc.Redo(context.Background(), created.Id)
	assert.NoError(t, err)
	assert.True(t, redone.Applied)
	assert.Contains(t, redone.Document.Content, "Changed")
}

func TestUpdateSelectionOutOfBounds(t *testing.T) {
	svc, _ := newTestEditorService(&stubProvider{})

	created, err := svc.CreateSession(context.Background())
	assert.NoError(t, err)

	_, err = svc.UpdateSelection(context.Background(), created.Id, &dto.UpdateSelectionRequest{From: 0, To: 1 << 30})
	assert.Error(t, err)
}
