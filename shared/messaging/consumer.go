package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ErrPermanent помечает ошибку обработки, после которой сообщение не нужно возвращать в очередь.
var ErrPermanent = errors.New("permanent message processing error")

// HandlerFunc обрабатывает одно сообщение. routingKey - ключ, с которым пришло сообщение.
type HandlerFunc func(ctx context.Context, routingKey string, body []byte) error

// ConsumerConfig описывает очередь и ее привязки.
type ConsumerConfig struct {
	Exchange    string
	Queue       string
	RoutingKeys []string
	Prefetch    int
}

// Consumer читает сообщения из durable очереди с ручным подтверждением.
type Consumer struct {
	conn    *amqp.Connection
	cfg     ConsumerConfig
	handler HandlerFunc
	logger  *zap.Logger

	mu       sync.Mutex
	channel  *amqp.Channel
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewConsumer создает консьюмер. Start нужно вызвать отдельно.
func NewConsumer(conn *amqp.Connection, cfg ConsumerConfig, handler HandlerFunc, logger *zap.Logger) *Consumer {
	if cfg.Prefetch <= 0 {
		cfg.Prefetch = 1
	}
	return &Consumer{
		conn:     conn,
		cfg:      cfg,
		handler:  handler,
		logger:   logger.Named("Consumer").With(zap.String("queue", cfg.Queue)),
		stopChan: make(chan struct{}),
	}
}

// Start объявляет exchange, очередь, привязки и запускает обработку в отдельной горутине.
func (c *Consumer) Start(ctx context.Context) error {
	if c.conn == nil {
		return errors.New("rabbitmq connection is nil")
	}
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open a channel: %w", err)
	}

	if err := declareTopicExchange(ch, c.cfg.Exchange); err != nil {
		c.cleanupChannel(ch)
		return fmt.Errorf("failed to declare exchange '%s': %w", c.cfg.Exchange, err)
	}

	q, err := ch.QueueDeclare(
		c.cfg.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		amqp.Table{"x-queue-mode": "lazy"},
	)
	if err != nil {
		c.cleanupChannel(ch)
		return fmt.Errorf("failed to declare queue '%s': %w", c.cfg.Queue, err)
	}

	for _, key := range c.cfg.RoutingKeys {
		if err := ch.QueueBind(q.Name, key, c.cfg.Exchange, false, nil); err != nil {
			c.cleanupChannel(ch)
			return fmt.Errorf("failed to bind queue '%s' to '%s' with key '%s': %w", q.Name, c.cfg.Exchange, key, err)
		}
	}

	if err := ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
		c.cleanupChannel(ch)
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		c.cleanupChannel(ch)
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	c.mu.Lock()
	c.channel = ch
	c.mu.Unlock()

	c.logger.Info("Consumer started", zap.Strings("routingKeys", c.cfg.RoutingKeys))

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			select {
			case <-ctx.Done():
				c.logger.Info("Context cancelled, stopping consumer")
				return
			case <-c.stopChan:
				c.logger.Info("Stop signal received, stopping consumer")
				return
			case d, ok := <-msgs:
				if !ok {
					c.logger.Warn("Message channel closed")
					return
				}
				c.handleDelivery(ctx, d)
			}
		}
	}()
	return nil
}

func (c *Consumer) handleDelivery(ctx context.Context, d amqp.Delivery) {
	log := c.logger.With(zap.String("routingKey", d.RoutingKey), zap.String("messageId", d.MessageId))

	err := c.handler(ctx, d.RoutingKey, d.Body)
	switch {
	case err == nil:
		if ackErr := d.Ack(false); ackErr != nil {
			log.Error("Failed to ack message", zap.Error(ackErr))
		}
	case errors.Is(err, ErrPermanent):
		log.Error("Dropping message after permanent error", zap.Error(err))
		_ = d.Nack(false, false)
	case d.Redelivered:
		// вторая неудача подряд, сообщение отбрасываем
		log.Error("Dropping redelivered message after processing error", zap.Error(err))
		_ = d.Nack(false, false)
	default:
		log.Warn("Processing failed, requeueing message", zap.Error(err))
		_ = d.Nack(false, true)
	}
}

// Stop останавливает обработку и закрывает канал.
func (c *Consumer) Stop() error {
	c.mu.Lock()
	select {
	case <-c.stopChan:
	default:
		close(c.stopChan)
	}
	ch := c.channel
	c.channel = nil
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		c.logger.Warn("Timeout waiting for consumer goroutine to finish")
	}

	if ch != nil {
		if err := ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			return fmt.Errorf("failed to close channel: %w", err)
		}
	}
	c.logger.Info("Consumer stopped")
	return nil
}

func (c *Consumer) cleanupChannel(ch *amqp.Channel) {
	if err := ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		c.logger.Warn("Failed to close channel during cleanup", zap.Error(err))
	}
}
