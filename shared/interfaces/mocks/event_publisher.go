package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// EventPublisher - мок interfaces.EventPublisher.
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	args := m.Called(ctx, routingKey, payload)
	return args.Error(0)
}
