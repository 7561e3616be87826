package service

import (
	"context"

	"github.com/Aditya0026/collaborative-editor/internal/dto"
	"github.com/Aditya0026/collaborative-editor/internal/mapper"
	"github.com/Aditya0026/collaborative-editor/internal/pkg/logger"
	"github.com/Aditya0026/collaborative-editor/internal/pkg/serverutils"
	"github.com/Aditya0026/collaborative-editor/internal/repository/memory"
	"github.com/Aditya0026/collaborative-editor/pkg/document"
	"github.com/Aditya0026/collaborative-editor/pkg/editor"
	"github.com/Aditya0026/collaborative-editor/pkg/events"
	"github.com/Aditya0026/collaborative-editor/pkg/llm"
	"github.com/Aditya0026/collaborative-editor/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IEditorService interface {
	CreateSession(ctx context.Context) (dto.CreateSessionResponse, error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetDocument(ctx context.Context, sessionID string) (dto.DocumentResponse, error)
	GetSelectionState(ctx context.Context, sessionID string) (dto.SelectionStateResponse, error)
	UpdateSelection(ctx context.Context, sessionID string, req *dto.UpdateSelectionRequest) (dto.SelectionStateResponse, error)
	RequestEdit(ctx context.Context, sessionID string, req *dto.RequestEditRequest) (dto.PreviewResponse, error)
	GetPreview(ctx context.Context, sessionID string) (dto.PreviewResponse, error)
	ConfirmSuggestion(ctx context.Context, sessionID string) (dto.ConfirmResponse, error)
	CancelSuggestion(ctx context.Context, sessionID string) (dto.PreviewResponse, error)
	Undo(ctx context.Context, sessionID string) (dto.UndoRedoResponse, error)
	Redo(ctx context.Context, sessionID string) (dto.UndoRedoResponse, error)
}

type editorService struct {
	repo      *memory.SessionRepository
	provider  llm.Provider
	publisher IPublisherService
	log       logger.ILogger
}

func NewEditorService(
	repo *memory.SessionRepository,
	provider llm.Provider,
	publisher IPublisherService,
	log logger.ILogger,
) IEditorService {
	return &editorService{
		repo:      repo,
		provider:  provider,
		publisher: publisher,
		log:       log,
	}
}

// CreateSession builds a fresh session around the seeded document and
// wires its state transitions onto the event bus.
func (s *editorService) CreateSession(ctx context.Context) (dto.CreateSessionResponse, error) {
	id := uuid.NewString()
	session := store.NewSession(id, s.provider)

	session.Engine.OnChange(func(p editor.Preview) {
		requestID := ""
		if p.RequestID != uuid.Nil {
			requestID = p.RequestID.String()
		}
		s.publish(events.NewPreviewUpdated(id, requestID, string(p.Phase)))
	})

	session.Document.OnSelectionChanged(func(r document.Range) {
		if anchor, ok := session.Coordinator.Anchor(); ok {
			s.publish(events.NewAnchorMoved(id, true, anchor.X, anchor.Y))
		} else {
			s.publish(events.NewAnchorMoved(id, false, 0, 0))
		}
	})

	s.repo.Save(session)
	s.log.Info("EditorService", "Session created", map[string]interface{}{
		"session_id": id,
	})

	return dto.CreateSessionResponse{Id: id}, nil
}

func (s *editorService) DeleteSession(ctx context.Context, sessionID string) error {
	if _, found := s.repo.Get(sessionID); !found {
		return serverutils.ErrNotFound
	}
	s.repo.Delete(sessionID)
	s.log.Info("EditorService", "Session deleted", map[string]interface{}{
		"session_id": sessionID,
	})
	return nil
}

func (s *editorService) GetDocument(ctx context.Context, sessionID string) (dto.DocumentResponse, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return dto.DocumentResponse{}, err
	}
	return mapper.ToDocumentDTO(session.Document), nil
}

func (s *editorService) GetSelectionState(ctx context.Context, sessionID string) (dto.SelectionStateResponse, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return dto.SelectionStateResponse{}, err
	}
	return selectionState(session), nil
}

// UpdateSelection moves the live selection. The coordinator reacts via
// its registered listener; this method only reports the outcome.
func (s *editorService) UpdateSelection(ctx context.Context, sessionID string, req *dto.UpdateSelectionRequest) (dto.SelectionStateResponse, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return dto.SelectionStateResponse{}, err
	}

	sel := document.Range{From: req.From, To: req.To}
	if err := session.Document.SetSelection(sel); err != nil {
		return dto.SelectionStateResponse{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return selectionState(session), nil
}

// RequestEdit captures the current selection into an immutable request,
// opens a generating preview and resolves it in the background. The
// handler returns immediately; observers learn the outcome through
// preview events or polling.
func (s *editorService) RequestEdit(ctx context.Context, sessionID string, req *dto.RequestEditRequest) (dto.PreviewResponse, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return dto.PreviewResponse{}, err
	}

	sugReq, err := session.Coordinator.RequestEdit(editor.Action(req.Action))
	if err != nil {
		return dto.PreviewResponse{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	preview := session.Engine.Begin(sugReq)
	s.log.Info("EditorService", "Edit requested", map[string]interface{}{
		"session_id": sessionID,
		"request_id": sugReq.ID.String(),
		"action":     string(sugReq.Action),
	})

	// The remote call outlives the HTTP request.
	go func() {
		session.Engine.Generate(context.Background(), sugReq)
	}()

	return mapper.ToPreviewDTO(preview), nil
}

func (s *editorService) GetPreview(ctx context.Context, sessionID string) (dto.PreviewResponse, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return dto.PreviewResponse{}, err
	}
	return mapper.ToPreviewDTO(session.Engine.Snapshot()), nil
}

// ConfirmSuggestion applies the ready suggestion to its captured range,
// records the summary in the chat log and announces the mutation.
func (s *editorService) ConfirmSuggestion(ctx context.Context, sessionID string) (dto.ConfirmResponse, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return dto.ConfirmResponse{}, err
	}

	applied := session.Engine.Snapshot()
	summary, err := session.Engine.Confirm()
	if err != nil {
		return dto.ConfirmResponse{}, fiber.NewError(fiber.StatusConflict, err.Error())
	}

	msg := session.Conversation.AppendNote(summary)
	s.publish(events.NewDocumentMutated(sessionID, applied.Selection.From, applied.Selection.To, session.Document.Length()))
	s.log.Info("EditorService", "Suggestion applied", map[string]interface{}{
		"session_id": sessionID,
		"request_id": applied.RequestID.String(),
	})

	return dto.ConfirmResponse{
		Summary:  mapper.ToChatMessageDTO(msg),
		Document: mapper.ToDocumentDTO(session.Document),
	}, nil
}

// CancelSuggestion discards the preview without touching the document.
// Cancelling when nothing is open is a harmless no-op.
func (s *editorService) CancelSuggestion(ctx context.Context, sessionID string) (dto.PreviewResponse, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return dto.PreviewResponse{}, err
	}
	session.Engine.Cancel()
	return mapper.ToPreviewDTO(session.Engine.Snapshot()), nil
}

func (s *editorService) Undo(ctx context.Context, sessionID string) (dto.UndoRedoResponse, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return dto.UndoRedoResponse{}, err
	}
	applied := session.Document.Undo()
	if applied {
		s.publish(events.NewDocumentMutated(sessionID, 0, 0, session.Document.Length()))
	}
	return dto.UndoRedoResponse{
		Applied:  applied,
		Document: mapper.ToDocumentDTO(session.Document),
	}, nil
}

func (s *editorService) Redo(ctx context.Context, sessionID string) (dto.UndoRedoResponse, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return dto.UndoRedoResponse{}, err
	}
	applied := session.Document.Redo()
	if applied {
		s.publish(events.NewDocumentMutated(sessionID, 0, 0, session.Document.Length()))
	}
	return dto.UndoRedoResponse{
		Applied:  applied,
		Document: mapper.ToDocumentDTO(session.Document),
	}, nil
}

// session resolves the id and refreshes its expiration.
func (s *editorService) session(sessionID string) (*store.Session, error) {
	session, found := s.repo.Get(sessionID)
	if !found {
		return nil, serverutils.ErrNotFound
	}
	s.repo.Touch(sessionID)
	return session, nil
}

func (s *editorService) publish(event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishEvent(event); err != nil {
		s.log.Warn("EditorService", "Failed to publish event", map[string]interface{}{
			"event_type": event.EventType(),
			"error":      err.Error(),
		})
	}
}

func selectionState(session *store.Session) dto.SelectionStateResponse {
	resp := dto.SelectionStateResponse{
		Selection:    mapper.ToRangeDTO(session.Document.Selection()),
		SelectedText: session.Coordinator.SelectedText(),
	}
	if anchor, ok := session.Coordinator.Anchor(); ok {
		resp.Anchor = &dto.PointDTO{X: anchor.X, Y: anchor.Y}
	}
	return resp
}
