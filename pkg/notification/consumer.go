package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

const consumerTag = "hotspot-notifications"

func NewConsumer(logger *slog.Logger, channel *amqp.Channel, sender sender) (*Consumer, error) {
	if err := declareQueue(channel); err != nil {
		return nil, err
	}
	return &Consumer{logger: logger, channel: channel, sender: sender}, nil
}

type sender interface {
	Send(ctx context.Context, message Message) error
}

// Consumer emails the notifications queued by the Publisher.
type Consumer struct {
	logger  *slog.Logger
	channel *amqp.Channel
	sender  sender
}

// Consume handles deliveries until ctx is done or the channel is closed. Messages which can't be decoded or sent are
// dropped.
func (c *Consumer) Consume(ctx context.Context) error {
	deliveries, err := c.channel.Consume(Queue, consumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume %q: %v", Queue, err)
	}
	defer func() {
		_ = c.channel.Cancel(consumerTag, false)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("notification deliveries closed")
			}
			c.handle(ctx, delivery)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, delivery amqp.Delivery) {
	var message Message
	if err := json.Unmarshal(delivery.Body, &message); err != nil {
		c.logger.ErrorContext(ctx, "Error unmarshalling notification", "error", err)
		c.nack(ctx, delivery)
		return
	}

	if err := c.sender.Send(ctx, message); err != nil {
		c.logger.ErrorContext(ctx, "Error sending notification", "kind", message.Kind, "event", message.Event.ID, "error", err)
		c.nack(ctx, delivery)
		return
	}

	if err := delivery.Ack(false); err != nil {
		c.logger.ErrorContext(ctx, "Error acknowledging notification", "event", message.Event.ID, "error", err)
	}
}

func (c *Consumer) nack(ctx context.Context, delivery amqp.Delivery) {
	if err := delivery.Nack(false, false); err != nil {
		c.logger.ErrorContext(ctx, "Error negatively acknowledging notification", "error", err)
	}
}
