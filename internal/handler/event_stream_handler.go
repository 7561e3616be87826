package handler

import (
	"github.com/Aditya0026/collaborative-editor/internal/pkg/logger"
	"github.com/Aditya0026/collaborative-editor/internal/repository/memory"
	internalWS "github.com/Aditya0026/collaborative-editor/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// EventStreamHandler upgrades observers onto a session's event stream:
// selection anchors, preview transitions and document mutations.
type EventStreamHandler struct {
	hub    *internalWS.Hub
	repo   *memory.SessionRepository
	logger logger.ILogger
}

func NewEventStreamHandler(hub *internalWS.Hub, repo *memory.SessionRepository, log logger.ILogger) *EventStreamHandler {
	return &EventStreamHandler{
		hub:    hub,
		repo:   repo,
		logger: log,
	}
}

func (h *EventStreamHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/ws/:sessionId", h.ServeWs)
}

// ServeWs handles websocket requests from the peer.
func (h *EventStreamHandler) ServeWs(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")
	if _, found := h.repo.Get(sessionID); !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Unknown session"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("EventStreamHandler", "Starting WebSocket session", map[string]interface{}{"session_id": sessionID})
			internalWS.ServeWs(h.hub, conn, sessionID)
			h.logger.Info("EventStreamHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}
