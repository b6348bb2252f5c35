package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gym-server/account/internal/service"
	sharedMessaging "gym-server/shared/messaging"
	"gym-server/shared/models"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var userEventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "account_user_events_processed_total",
		Help: "Total number of user events processed by the account service.",
	},
	[]string{"routing_key", "status"},
)

// UserEventsHandler применяет события auth-сервиса к профилям.
type UserEventsHandler struct {
	accounts service.AccountService
	timeout  time.Duration
	logger   *zap.Logger
}

// NewUserEventsHandler creates the user events handler.
func NewUserEventsHandler(accounts service.AccountService, logger *zap.Logger) *UserEventsHandler {
	return &UserEventsHandler{
		accounts: accounts,
		timeout:  30 * time.Second,
		logger:   logger.Named("UserEventsHandler"),
	}
}

// ConsumerConfig возвращает привязки очереди account-сервиса.
func ConsumerConfig() sharedMessaging.ConsumerConfig {
	return sharedMessaging.ConsumerConfig{
		Exchange: sharedMessaging.UserEventsExchange,
		Queue:    sharedMessaging.AccountUserEventsQueue,
		RoutingKeys: []string{
			sharedMessaging.RoutingKeyUserRegistered,
			sharedMessaging.RoutingKeyUserRolesChanged,
		},
		Prefetch: 1,
	}
}

// Handle реализует messaging.HandlerFunc.
func (h *UserEventsHandler) Handle(ctx context.Context, routingKey string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	var err error
	switch routingKey {
	case sharedMessaging.RoutingKeyUserRegistered:
		err = h.handleUserRegistered(ctx, body)
	case sharedMessaging.RoutingKeyUserRolesChanged:
		err = h.handleRolesChanged(ctx, body)
	default:
		h.logger.Warn("Unknown routing key, dropping message", zap.String("routingKey", routingKey))
		err = fmt.Errorf("unknown routing key %q: %w", routingKey, sharedMessaging.ErrPermanent)
	}

	status := "success"
	if err != nil {
		status = "error"
	}
	userEventsProcessedTotal.WithLabelValues(routingKey, status).Inc()
	return err
}

func (h *UserEventsHandler) handleUserRegistered(ctx context.Context, body []byte) error {
	var payload sharedMessaging.UserRegisteredPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		h.logger.Error("Failed to unmarshal user.registered", zap.Error(err), zap.ByteString("body", body))
		return fmt.Errorf("%w: %v", sharedMessaging.ErrPermanent, err)
	}

	err := h.accounts.CreateProfile(ctx, &models.Profile{
		UserID:  payload.UserID,
		Email:   payload.Email,
		Name:    payload.Name,
		Surname: payload.Surname,
		Phone:   payload.Phone,
	})
	if errors.Is(err, models.ErrInvalidInput) {
		return fmt.Errorf("%w: %v", sharedMessaging.ErrPermanent, err)
	}
	return err
}

func (h *UserEventsHandler) handleRolesChanged(ctx context.Context, body []byte) error {
	var payload sharedMessaging.UserRolesChangedPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		h.logger.Error("Failed to unmarshal user.roles_changed", zap.Error(err), zap.ByteString("body", body))
		return fmt.Errorf("%w: %v", sharedMessaging.ErrPermanent, err)
	}
	if payload.UserID == uuid.Nil {
		return fmt.Errorf("roles event without user id: %w", sharedMessaging.ErrPermanent)
	}
	// ErrProfileNotFound отдаем консьюмеру: сообщение вернется в очередь один раз
	return h.accounts.SyncTrainerRole(ctx, payload.UserID, payload.Roles)
}
