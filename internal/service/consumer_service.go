package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/Aditya0026/collaborative-editor/internal/websocket"
	"github.com/Aditya0026/collaborative-editor/pkg/events"
	pktNats "github.com/Aditya0026/collaborative-editor/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process editor event bus, fans events
// out to websocket observers and mirrors them to NATS best-effort.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	hub       *websocket.Hub
	natsPub   *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	hub *websocket.Hub,
	natsPub *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		hub:       hub,
		natsPub:   natsPub,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var envelope struct {
		Type    string                 `json:"type"`
		Payload map[string]interface{} `json:"payload"`
	}
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		log.Printf("[ERROR] Failed to unmarshal editor event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	sessionID, _ := envelope.Payload["session_id"].(string)
	if sessionID != "" && cs.hub != nil {
		cs.hub.Send(sessionID, envelope.Type, envelope.Payload)
	}

	if cs.natsPub != nil {
		event := events.BaseEvent{
			Type: envelope.Type,
			Data: envelope.Payload,
		}
		if err := cs.natsPub.Publish(ctx, event); err != nil {
			log.Printf("[WARN] Failed to mirror event to NATS: %v", err)
		}
	}

	msg.Ack()
}
