package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gym-server/notifications/internal/service"
	sharedMessaging "gym-server/shared/messaging"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// NotificationsQueue - очередь сервиса уведомлений.
const NotificationsQueue = "notifications_training_events"

var trainingEventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notifications_training_events_processed_total",
		Help: "Total number of training notifications processed.",
	},
	[]string{"kind", "status"},
)

// TrainingEventsHandler превращает события trainings-сервиса в push-уведомления.
type TrainingEventsHandler struct {
	notifications service.NotificationService
	timeout       time.Duration
	logger        *zap.Logger
}

func NewTrainingEventsHandler(notifications service.NotificationService, logger *zap.Logger) *TrainingEventsHandler {
	return &TrainingEventsHandler{
		notifications: notifications,
		timeout:       30 * time.Second,
		logger:        logger.Named("TrainingEventsHandler"),
	}
}

// ConsumerConfig - очередь, привязанная ко всем уведомлениям о тренировках.
func ConsumerConfig() sharedMessaging.ConsumerConfig {
	return sharedMessaging.ConsumerConfig{
		Exchange:    sharedMessaging.TrainingNotificationExchange,
		Queue:       NotificationsQueue,
		RoutingKeys: []string{sharedMessaging.RoutingKeyTrainingPrefix + "#"},
		Prefetch:    10,
	}
}

// Handle реализует messaging.HandlerFunc.
func (h *TrainingEventsHandler) Handle(ctx context.Context, routingKey string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	var payload sharedMessaging.TrainingNotificationPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		h.logger.Error("Failed to unmarshal training notification", zap.Error(err), zap.ByteString("body", body))
		trainingEventsProcessedTotal.WithLabelValues("unknown", "error").Inc()
		return fmt.Errorf("%w: %v", sharedMessaging.ErrPermanent, err)
	}
	if payload.UserID == uuid.Nil || payload.Kind == "" {
		trainingEventsProcessedTotal.WithLabelValues("unknown", "error").Inc()
		return fmt.Errorf("notification %q without user or kind: %w", routingKey, sharedMessaging.ErrPermanent)
	}

	err := h.notifications.Deliver(ctx, payload)
	status := "success"
	if err != nil {
		status = "error"
	}
	trainingEventsProcessedTotal.WithLabelValues(string(payload.Kind), status).Inc()
	return err
}
