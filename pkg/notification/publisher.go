package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hotspot-events/hotspot/pkg/model"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Queue holds notifications waiting to be emailed.
const Queue = "event-notifications"

func declareQueue(channel *amqp.Channel) error {
	_, err := channel.QueueDeclare(Queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue %q: %v", Queue, err)
	}
	return nil
}

func NewPublisher(channel *amqp.Channel) (*Publisher, error) {
	if err := declareQueue(channel); err != nil {
		return nil, err
	}
	return &Publisher{channel: channel}, nil
}

// Publisher queues notifications instead of sending them inline.
type Publisher struct {
	channel *amqp.Channel
}

// Queued reports that notifications are only accepted for delivery once published.
func (p Publisher) Queued() bool {
	return true
}

func (p Publisher) EventCreated(ctx context.Context, recipient string, event model.Event) error {
	return p.Publish(ctx, Message{Kind: KindCreated, Recipient: recipient, Event: event})
}

func (p Publisher) EventReminder(ctx context.Context, recipient string, event model.Event) error {
	return p.Publish(ctx, Message{Kind: KindReminder, Recipient: recipient, Event: event})
}

func (p Publisher) Publish(ctx context.Context, message Message) error {
	if err := message.validate(); err != nil {
		return err
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %v", err)
	}

	err = p.channel.PublishWithContext(ctx, "", Queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish notification: %v", err)
	}
	return nil
}
