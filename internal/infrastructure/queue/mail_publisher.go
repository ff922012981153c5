package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/workfusion/workforce-system/internal/core/domain"
)

const mailQueueName = "email_queue"

// MailPublisher pushes mail messages onto the durable email queue. A
// separate mail worker process consumes the queue and talks SMTP, so a slow
// or failing mail server never blocks an API request.
type MailPublisher struct {
	ch *amqp.Channel
}

// NewMailPublisher declares the queue and returns a publisher bound to it.
func NewMailPublisher(conn *amqp.Connection) (*MailPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		mailQueueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare queue %s: %w", mailQueueName, err)
	}

	return &MailPublisher{ch: ch}, nil
}

// Publish serializes the message and enqueues it as a persistent delivery.
func (p *MailPublisher) Publish(ctx context.Context, msg domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal mail message: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		"",            // default exchange
		mailQueueName, // routing key
		false,         // mandatory
		false,         // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish mail message: %w", err)
	}
	return nil
}

// Close releases the channel.
func (p *MailPublisher) Close() error {
	return p.ch.Close()
}
