package interfaces

import "context"

// EventPublisher публикует события в брокер сообщений.
type EventPublisher interface {
	// Publish сериализует payload в JSON и отправляет его с указанным routing key.
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}
