package interfaces

import (
	"context"
	"time"

	"gym-server/shared/models"

	"github.com/google/uuid"
)

// GymPassOfferRepository - предложения абонементов.
type GymPassOfferRepository interface {
	List(ctx context.Context) ([]models.GymPassOffer, error)
	// GetByID возвращает models.ErrOfferNotFound. Снятые с продажи предложения тоже находятся.
	GetByID(ctx context.Context, id uuid.UUID) (*models.GymPassOffer, error)
	// Create заполняет ID и временные метки. Дубликат названия -> models.ErrOfferTitleTaken.
	Create(ctx context.Context, offer *models.GymPassOffer) error
	// Update и Delete не видят снятые с продажи предложения (models.ErrOfferNotFound).
	Update(ctx context.Context, offer *models.GymPassOffer) error
	// Delete снимает предложение с продажи; купленные абонементы не затрагиваются.
	Delete(ctx context.Context, id uuid.UUID) error
}

// GymPassOfferCache кеширует список предложений.
type GymPassOfferCache interface {
	// GetOffers возвращает found=false при промахе.
	GetOffers(ctx context.Context) (offers []models.GymPassOffer, found bool, err error)
	SetOffers(ctx context.Context, offers []models.GymPassOffer) error
	Invalidate(ctx context.Context) error
}

// PurchasedGymPassRepository - купленные абонементы.
type PurchasedGymPassRepository interface {
	Create(ctx context.Context, pass *models.PurchasedGymPass) error
	// GetByID возвращает models.ErrGymPassNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*models.PurchasedGymPass, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PurchasedGymPass, error)
	// RegisterEntry списывает посещение (если абонемент по посещениям) атомарно.
	// Посещений не осталось -> models.ErrGymPassNoEntries.
	RegisterEntry(ctx context.Context, id uuid.UUID, at time.Time) (*models.PurchasedGymPass, error)
	// Suspend сохраняет дату заморозки и новую дату окончания.
	Suspend(ctx context.Context, id uuid.UUID, suspensionDate, endDate time.Time) (*models.PurchasedGymPass, error)
}
