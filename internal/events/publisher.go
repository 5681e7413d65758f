package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const auditQueue = "user_events"

// Types of events emitted by the services.
const (
	UserCreated      = "user.created"
	UserUpdated      = "user.updated"
	UserDeleted      = "user.deleted"
	UserUpserted     = "user.upserted"
	AuthorRegistered = "author.registered"
)

type envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
	At   time.Time   `json:"at"`
}

// Publisher emits audit events for panel mutations onto a durable queue.
// A nil Publisher (or nil connection) disables publishing entirely.
type Publisher struct {
	conn *amqp.Connection
}

// NewPublisher wraps an established AMQP connection.
func NewPublisher(conn *amqp.Connection) *Publisher {
	return &Publisher{conn: conn}
}

// Publish sends one event. Callers treat it as fire-and-forget; a failed
// publish must never fail the request that triggered it.
func (p *Publisher) Publish(ctx context.Context, eventType string, data interface{}) error {
	if p == nil || p.conn == nil {
		return nil
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if _, err = ch.QueueDeclare(auditQueue, true, false, false, false, nil); err != nil {
		return err
	}

	body, err := json.Marshal(&envelope{Type: eventType, Data: data, At: time.Now()})
	if err != nil {
		return err
	}

	return ch.PublishWithContext(
		ctx,
		"",
		auditQueue,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
