package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadNotifier tells the sales team about new leads.
type LeadNotifier interface {
	NotifyLeadCreated(ctx context.Context, leadID int64, lead LeadPayload) error
}

// Notifiers fans a new lead out to every notifier and joins the failures.
type Notifiers []LeadNotifier

func (n Notifiers) NotifyLeadCreated(ctx context.Context, leadID int64, lead LeadPayload) error {
	var errs []error
	for _, notifier := range n {
		if err := notifier.NotifyLeadCreated(ctx, leadID, lead); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier LeadNotifier
}

func NewWorker(ch *amqp.Channel, notifier LeadNotifier) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
	}
}

// Start consumes queueName until ctx is cancelled. Messages that fail are
// rejected without requeue and land in the dead-letter queue.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	slog.Info("worker waiting for events", "queue", queueName)

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			if err := w.Process(ctx, d.Body); err != nil {
				slog.Error("event processing failed", "message_id", d.MessageId, "error", err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (w *Worker) Process(ctx context.Context, body []byte) error {
	var event EntityEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("invalid event: %w", err)
	}

	switch {
	case event.Entity == "lead" && event.Action == ActionCreated:
		var lead LeadPayload
		if len(event.Payload) > 0 {
			if err := json.Unmarshal(event.Payload, &lead); err != nil {
				return fmt.Errorf("invalid lead payload: %w", err)
			}
		}
		return w.Notifier.NotifyLeadCreated(ctx, event.EntityID, lead)

	default:
		slog.InfoContext(ctx, "entity event",
			"entity", event.Entity, "action", event.Action, "entity_id", event.EntityID)
		return nil
	}
}
