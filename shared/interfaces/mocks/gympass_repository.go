package mocks

import (
	"context"
	"time"

	"gym-server/shared/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// GymPassOfferRepository - мок interfaces.GymPassOfferRepository.
type GymPassOfferRepository struct {
	mock.Mock
}

func (m *GymPassOfferRepository) List(ctx context.Context) ([]models.GymPassOffer, error) {
	args := m.Called(ctx)
	o, _ := args.Get(0).([]models.GymPassOffer)
	return o, args.Error(1)
}
func (m *GymPassOfferRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.GymPassOffer, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*models.GymPassOffer)
	return o, args.Error(1)
}
func (m *GymPassOfferRepository) Create(ctx context.Context, offer *models.GymPassOffer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}
func (m *GymPassOfferRepository) Update(ctx context.Context, offer *models.GymPassOffer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}
func (m *GymPassOfferRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// GymPassOfferCache - мок interfaces.GymPassOfferCache.
type GymPassOfferCache struct {
	mock.Mock
}

func (m *GymPassOfferCache) GetOffers(ctx context.Context) ([]models.GymPassOffer, bool, error) {
	args := m.Called(ctx)
	o, _ := args.Get(0).([]models.GymPassOffer)
	return o, args.Bool(1), args.Error(2)
}
func (m *GymPassOfferCache) SetOffers(ctx context.Context, offers []models.GymPassOffer) error {
	args := m.Called(ctx, offers)
	return args.Error(0)
}
func (m *GymPassOfferCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// PurchasedGymPassRepository - мок interfaces.PurchasedGymPassRepository.
type PurchasedGymPassRepository struct {
	mock.Mock
}

func (m *PurchasedGymPassRepository) Create(ctx context.Context, pass *models.PurchasedGymPass) error {
	args := m.Called(ctx, pass)
	return args.Error(0)
}
func (m *PurchasedGymPassRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PurchasedGymPass, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.PurchasedGymPass)
	return p, args.Error(1)
}
func (m *PurchasedGymPassRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PurchasedGymPass, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).([]models.PurchasedGymPass)
	return p, args.Error(1)
}
func (m *PurchasedGymPassRepository) RegisterEntry(ctx context.Context, id uuid.UUID, at time.Time) (*models.PurchasedGymPass, error) {
	args := m.Called(ctx, id, at)
	p, _ := args.Get(0).(*models.PurchasedGymPass)
	return p, args.Error(1)
}
func (m *PurchasedGymPassRepository) Suspend(ctx context.Context, id uuid.UUID, suspensionDate, endDate time.Time) (*models.PurchasedGymPass, error) {
	args := m.Called(ctx, id, suspensionDate, endDate)
	p, _ := args.Get(0).(*models.PurchasedGymPass)
	return p, args.Error(1)
}
