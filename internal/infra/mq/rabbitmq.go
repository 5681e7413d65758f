package mq

import (
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/example/useradmin/internal/config"
)

// Dial opens the RabbitMQ connection. An empty URL means audit events are
// disabled; callers get a nil connection back.
func Dial(cfg *config.RabbitMQConfig) (*amqp.Connection, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	return amqp.Dial(cfg.URL)
}
