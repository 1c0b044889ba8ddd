package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// EntityEvent announces a committed write on a lead or an interest.
type EntityEvent struct {
	ID         string          `json:"id"`
	Entity     string          `json:"entity"`
	Action     string          `json:"action"`
	EntityID   int64           `json:"entity_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// LeadPayload is the part of a lead the notification worker reads.
type LeadPayload struct {
	Name  string `json:"name"`
	Phone int64  `json:"phone"`
}

func NewEntityEvent(entityName, action string, entityID int64, payload any) EntityEvent {
	event := EntityEvent{
		ID:         uuid.NewString(),
		Entity:     entityName,
		Action:     action,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
	}
	if payload != nil {
		if body, err := json.Marshal(payload); err == nil {
			event.Payload = body
		}
	}
	return event
}

func (e EntityEvent) RoutingKey() string {
	return "k.entity." + e.Entity + "." + e.Action
}

type RabbitMQProducer struct {
	mu sync.Mutex
	Ch *amqp.Channel
}

func NewProducer(ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishEntityEvent(ctx context.Context, event EntityEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		event.RoutingKey(),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    event.ID,
			Type:         event.Entity + "." + event.Action,
			Timestamp:    event.OccurredAt,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish to rabbitmq: %w", err)
	}
	return nil
}

// NoopProducer is used when no broker is configured.
type NoopProducer struct{}

func (NoopProducer) PublishEntityEvent(ctx context.Context, event EntityEvent) error {
	slog.DebugContext(ctx, "event not published, broker disabled",
		"entity", event.Entity, "action", event.Action, "entity_id", event.EntityID)
	return nil
}
