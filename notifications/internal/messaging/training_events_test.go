package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"gym-server/notifications/internal/mocks"
	sharedMessaging "gym-server/shared/messaging"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleDeliversNotification(t *testing.T) {
	notifications := new(mocks.NotificationService)
	h := NewTrainingEventsHandler(notifications, zap.NewNop())

	payload := sharedMessaging.TrainingNotificationPayload{
		UserID:       uuid.New(),
		Kind:         sharedMessaging.NotificationPromotedFromReserve,
		TrainingID:   uuid.New(),
		TrainingType: sharedMessaging.TrainingTypeGroup,
		Title:        "Yoga",
		StartsAt:     time.Date(2026, 5, 4, 18, 0, 0, 0, time.UTC),
	}
	notifications.On("Deliver", mock.Anything, payload).Return(nil).Once()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, h.Handle(context.Background(), payload.RoutingKey(), body))
	notifications.AssertExpectations(t)
}

func TestHandleDeliveryErrorIsRetryable(t *testing.T) {
	notifications := new(mocks.NotificationService)
	h := NewTrainingEventsHandler(notifications, zap.NewNop())
	sendErr := errors.New("fcm unavailable")
	notifications.On("Deliver", mock.Anything, mock.Anything).Return(sendErr).Once()

	body, err := json.Marshal(sharedMessaging.TrainingNotificationPayload{
		UserID: uuid.New(),
		Kind:   sharedMessaging.NotificationIndividualRequested,
	})
	require.NoError(t, err)

	err = h.Handle(context.Background(), "training.INDIVIDUAL_TRAINING_REQUESTED", body)
	assert.ErrorIs(t, err, sendErr)
	assert.False(t, errors.Is(err, sharedMessaging.ErrPermanent))
}

func TestHandlePermanentErrors(t *testing.T) {
	notifications := new(mocks.NotificationService)
	h := NewTrainingEventsHandler(notifications, zap.NewNop())
	ctx := context.Background()

	err := h.Handle(ctx, "training.PROMOTED_FROM_RESERVE", []byte("{broken"))
	assert.ErrorIs(t, err, sharedMessaging.ErrPermanent)

	err = h.Handle(ctx, "training.PROMOTED_FROM_RESERVE", []byte(`{"kind":"PROMOTED_FROM_RESERVE"}`))
	assert.ErrorIs(t, err, sharedMessaging.ErrPermanent)

	notifications.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
}
