package ports

import (
	"context"

	"github.com/rabbitmq/amqp091-go"

	"file-share-api/internal/infrastructure/mq"
)

type EventPublisher interface {
	Enqueue(e mq.Event) bool
}

type RabbitMQ interface {
	EventPublisher
	Connect(ctx context.Context, dsn string) error
	Init() error
	PublisherWorker(ctx context.Context)
	GetConn() *amqp091.Connection
}
