package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/Aditya0026/collaborative-editor/internal/config"
	"github.com/Aditya0026/collaborative-editor/internal/controller"
	"github.com/Aditya0026/collaborative-editor/internal/handler"
	"github.com/Aditya0026/collaborative-editor/internal/pkg/logger"
	"github.com/Aditya0026/collaborative-editor/internal/repository/memory"
	"github.com/Aditya0026/collaborative-editor/internal/service"
	"github.com/Aditya0026/collaborative-editor/internal/websocket"
	"github.com/Aditya0026/collaborative-editor/pkg/llm/factory"

	pktNats "github.com/Aditya0026/collaborative-editor/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

const editorEventsTopic = "editor.events"

type Container struct {
	// Controllers
	SessionController controller.ISessionController
	EditController    controller.IEditController
	ChatController    controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	EventStreamHandler *handler.EventStreamHandler
	WebSocketHub       *websocket.Hub
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. LLM Provider
	llmProvider, err := factory.NewProvider(factory.Settings{
		Provider:      cfg.Ai.Provider,
		Model:         cfg.Ai.Model,
		GeminiAPIKey:  cfg.Keys.GoogleGemini,
		OpenAIAPIKey:  cfg.Keys.OpenAI,
		OpenAIBaseURL: cfg.Ai.OpenAIBaseURL,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	// 4. In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository(time.Duration(cfg.App.SessionTTLMinutes) * time.Minute)

	// 5. Infrastructure
	// NATS mirror is best-effort; the editor works without it.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 6. Services
	publisherService := service.NewPublisherService(editorEventsTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		editorEventsTopic,
		wsHub,
		natsPub,
	)

	editorService := service.NewEditorService(sessionRepo, llmProvider, publisherService, sysLogger)
	chatService := service.NewChatService(sessionRepo, publisherService, sysLogger)

	// 7. Controllers
	sessionController := controller.NewSessionController(editorService)
	editController := controller.NewEditController(editorService)
	chatController := controller.NewChatController(chatService)

	eventStreamHandler := handler.NewEventStreamHandler(wsHub, sessionRepo, wsLogger)

	return &Container{
		SessionController:  sessionController,
		EditController:     editController,
		ChatController:     chatController,
		ConsumerService:    consumerService,
		EventStreamHandler: eventStreamHandler,
		WebSocketHub:       wsHub,
	}
}
