package mocks

import (
	"context"
	"time"

	"gym-server/gympass/internal/service"
	"gym-server/shared/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// OfferService - мок service.OfferService.
type OfferService struct {
	mock.Mock
}

var _ service.OfferService = (*OfferService)(nil)

func (m *OfferService) ListOffers(ctx context.Context) ([]models.GymPassOffer, error) {
	args := m.Called(ctx)
	o, _ := args.Get(0).([]models.GymPassOffer)
	return o, args.Error(1)
}

func (m *OfferService) GetOffer(ctx context.Context, id uuid.UUID) (*models.GymPassOffer, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*models.GymPassOffer)
	return o, args.Error(1)
}

func (m *OfferService) CreateOffer(ctx context.Context, in service.OfferInput) (*models.GymPassOffer, error) {
	args := m.Called(ctx, in)
	o, _ := args.Get(0).(*models.GymPassOffer)
	return o, args.Error(1)
}

func (m *OfferService) UpdateOffer(ctx context.Context, id uuid.UUID, in service.OfferInput) (*models.GymPassOffer, error) {
	args := m.Called(ctx, id, in)
	o, _ := args.Get(0).(*models.GymPassOffer)
	return o, args.Error(1)
}

func (m *OfferService) DeleteOffer(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// GymPassService - мок service.GymPassService.
type GymPassService struct {
	mock.Mock
}

var _ service.GymPassService = (*GymPassService)(nil)

func (m *GymPassService) Purchase(ctx context.Context, actor models.Actor, in service.PurchaseInput) (*models.PurchasedGymPass, error) {
	args := m.Called(ctx, actor, in)
	p, _ := args.Get(0).(*models.PurchasedGymPass)
	return p, args.Error(1)
}

func (m *GymPassService) Status(ctx context.Context, actor models.Actor, passID uuid.UUID) (*service.PassStatus, error) {
	args := m.Called(ctx, actor, passID)
	s, _ := args.Get(0).(*service.PassStatus)
	return s, args.Error(1)
}

func (m *GymPassService) RegisterEntry(ctx context.Context, actor models.Actor, passID uuid.UUID) (*models.PurchasedGymPass, error) {
	args := m.Called(ctx, actor, passID)
	p, _ := args.Get(0).(*models.PurchasedGymPass)
	return p, args.Error(1)
}

func (m *GymPassService) Suspend(ctx context.Context, actor models.Actor, passID uuid.UUID, until time.Time) (*models.PurchasedGymPass, error) {
	args := m.Called(ctx, actor, passID, until)
	p, _ := args.Get(0).(*models.PurchasedGymPass)
	return p, args.Error(1)
}

func (m *GymPassService) ListForUser(ctx context.Context, actor models.Actor, userID uuid.UUID) ([]service.PassStatus, error) {
	args := m.Called(ctx, actor, userID)
	s, _ := args.Get(0).([]service.PassStatus)
	return s, args.Error(1)
}
