package queue

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const reviewCreatedQueue = "review.created"

// Publisher pushes domain events to RabbitMQ. Publishing is best
// effort: errors are logged and returned so the caller can ignore them
// without failing the request that produced the event.
type Publisher struct {
	url string
	log *slog.Logger
}

// NewPublisher returns nil when no broker URL is configured; a nil
// Publisher silently drops events.
func NewPublisher(url string, log *slog.Logger) *Publisher {
	if url == "" {
		return nil
	}
	return &Publisher{url: url, log: log}
}

// PublishReviewCreated sends the event to the review.created queue.
// Messages are persistent and the queue is declared durable.
func (p *Publisher) PublishReviewCreated(ctx context.Context, event ReviewCreatedEvent) error {
	if p == nil {
		return nil
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn("rabbitmq dial failed", "err", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("rabbitmq channel open failed", "err", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		reviewCreatedQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		p.log.Warn("rabbitmq queue declare failed", "err", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", reviewCreatedQueue, false, false, pub); err != nil {
		p.log.Warn("rabbitmq publish failed", "err", err)
		return err
	}
	return nil
}
