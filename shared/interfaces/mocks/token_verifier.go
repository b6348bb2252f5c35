package mocks

import (
	"context"

	"gym-server/shared/models"

	"github.com/stretchr/testify/mock"
)

// TokenVerifier - мок interfaces.TokenVerifier.
type TokenVerifier struct {
	mock.Mock
}

func (m *TokenVerifier) VerifyToken(ctx context.Context, tokenString string) (*models.Claims, error) {
	args := m.Called(ctx, tokenString)
	c, _ := args.Get(0).(*models.Claims)
	return c, args.Error(1)
}
func (m *TokenVerifier) VerifyInterServiceToken(ctx context.Context, tokenString string) (*models.InterServiceClaims, error) {
	args := m.Called(ctx, tokenString)
	c, _ := args.Get(0).(*models.InterServiceClaims)
	return c, args.Error(1)
}
