package service

import (
	"context"
	"errors"

	"github.com/Aditya0026/collaborative-editor/internal/dto"
	"github.com/Aditya0026/collaborative-editor/internal/mapper"
	"github.com/Aditya0026/collaborative-editor/internal/pkg/logger"
	"github.com/Aditya0026/collaborative-editor/internal/pkg/serverutils"
	"github.com/Aditya0026/collaborative-editor/internal/repository/memory"
	"github.com/Aditya0026/collaborative-editor/pkg/editor"
	"github.com/Aditya0026/collaborative-editor/pkg/events"

	"github.com/gofiber/fiber/v2"
)

type IChatService interface {
	SendChat(ctx context.Context, sessionID string, req *dto.SendChatRequest) (dto.SendChatResponse, error)
	GetHistory(ctx context.Context, sessionID string) (dto.GetChatHistoryResponse, error)
}

type chatService struct {
	repo      *memory.SessionRepository
	publisher IPublisherService
	log       logger.ILogger
}

func NewChatService(repo *memory.SessionRepository, publisher IPublisherService, log logger.ILogger) IChatService {
	return &chatService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// SendChat runs one conversation turn. Tool results inside the reply
// mutate the document before the response is returned, so the caller
// always sees the post-mutation document alongside the reply.
func (s *chatService) SendChat(ctx context.Context, sessionID string, req *dto.SendChatRequest) (dto.SendChatResponse, error) {
	session, found := s.repo.Get(sessionID)
	if !found {
		return dto.SendChatResponse{}, serverutils.ErrNotFound
	}
	s.repo.Touch(sessionID)

	lengthBefore := session.Document.Length()
	reply, err := session.Conversation.Send(ctx, req.Chat)
	if err != nil {
		switch {
		case errors.Is(err, editor.ErrEmptyMessage):
			return dto.SendChatResponse{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, editor.ErrTurnInFlight):
			return dto.SendChatResponse{}, serverutils.ErrConflict
		default:
			return dto.SendChatResponse{}, err
		}
	}

	if len(reply.ToolResults) > 0 {
		s.publishMutation(sessionID, lengthBefore, session.Document.Length())
	}

	s.log.Info("ChatService", "Chat turn completed", map[string]interface{}{
		"session_id":   sessionID,
		"tool_results": len(reply.ToolResults),
	})

	return dto.SendChatResponse{
		Reply:    mapper.ToChatMessageDTO(reply),
		Document: mapper.ToDocumentDTO(session.Document),
	}, nil
}

func (s *chatService) GetHistory(ctx context.Context, sessionID string) (dto.GetChatHistoryResponse, error) {
	session, found := s.repo.Get(sessionID)
	if !found {
		return dto.GetChatHistoryResponse{}, serverutils.ErrNotFound
	}
	s.repo.Touch(sessionID)

	return dto.GetChatHistoryResponse{
		Messages: mapper.ToChatMessageDTOs(session.Conversation.Messages()),
	}, nil
}

func (s *chatService) publishMutation(sessionID string, lengthBefore, lengthAfter int) {
	if s.publisher == nil {
		return
	}
	event := events.NewDocumentMutated(sessionID, 0, lengthBefore, lengthAfter)
	if err := s.publisher.PublishEvent(event); err != nil {
		s.log.Warn("ChatService", "Failed to publish event", map[string]interface{}{
			"event_type": event.EventType(),
			"error":      err.Error(),
		})
	}
}
