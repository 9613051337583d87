package ports

import (
	"context"

	"github.com/rabbitmq/amqp091-go"
)

// AuditFeed reads back the audit events the publisher fans out.
type AuditFeed interface {
	Connect(dsn string) error
	Init() error
	DeliveryWorker(ctx context.Context)
	GetConn() *amqp091.Connection
}
