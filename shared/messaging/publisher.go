package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"gym-server/shared/interfaces"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var _ interfaces.EventPublisher = (*RabbitMQPublisher)(nil)

// RabbitMQPublisher публикует JSON-события в topic exchange.
type RabbitMQPublisher struct {
	mu       sync.Mutex
	ch       *amqp.Channel
	exchange string
	logger   *zap.Logger
}

// NewRabbitMQPublisher открывает канал и объявляет exchange.
func NewRabbitMQPublisher(conn *amqp.Connection, exchange string, logger *zap.Logger) (*RabbitMQPublisher, error) {
	if conn == nil {
		return nil, errors.New("rabbitmq connection is nil")
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	if err := declareTopicExchange(ch, exchange); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare exchange '%s': %w", exchange, err)
	}

	logger.Info("Exchange declared", zap.String("exchange", exchange))
	return &RabbitMQPublisher{
		ch:       ch,
		exchange: exchange,
		logger:   logger.Named("Publisher").With(zap.String("exchange", exchange)),
	}, nil
}

// Publish сериализует payload и отправляет persistent-сообщение.
func (p *RabbitMQPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("Failed to marshal event payload", zap.String("routingKey", routingKey), zap.Error(err))
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	p.mu.Lock()
	err = p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg)
	p.mu.Unlock()
	if err != nil {
		p.logger.Error("Failed to publish event", zap.String("routingKey", routingKey), zap.Error(err))
		return fmt.Errorf("failed to publish event %s: %w", routingKey, err)
	}

	p.logger.Debug("Event published", zap.String("routingKey", routingKey), zap.String("messageId", msg.MessageId))
	return nil
}

// Close закрывает канал.
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		return p.ch.Close()
	}
	return nil
}
