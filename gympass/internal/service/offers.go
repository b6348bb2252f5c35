package service

import (
	"context"
	"fmt"
	"strings"

	"gym-server/shared/interfaces"
	"gym-server/shared/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OfferInput - поля предложения, которые задает менеджер.
type OfferInput struct {
	Title     string
	Subheader string
	Amount    float64
	Currency  string
	Period    string
	IsPremium bool
	Synopsis  string
	Features  []string
	TimeUnit  models.TimeUnit
	Duration  int
	Entries   *int
}

// OfferService - каталог абонементов.
type OfferService interface {
	ListOffers(ctx context.Context) ([]models.GymPassOffer, error)
	GetOffer(ctx context.Context, id uuid.UUID) (*models.GymPassOffer, error)
	CreateOffer(ctx context.Context, in OfferInput) (*models.GymPassOffer, error)
	UpdateOffer(ctx context.Context, id uuid.UUID, in OfferInput) (*models.GymPassOffer, error)
	DeleteOffer(ctx context.Context, id uuid.UUID) error
}

type offerServiceImpl struct {
	offers interfaces.GymPassOfferRepository
	cache  interfaces.GymPassOfferCache
	logger *zap.Logger
}

// NewOfferService создает сервис предложений. Список кешируется в cache.
func NewOfferService(offers interfaces.GymPassOfferRepository, cache interfaces.GymPassOfferCache, logger *zap.Logger) OfferService {
	return &offerServiceImpl{
		offers: offers,
		cache:  cache,
		logger: logger.Named("OfferService"),
	}
}

func (s *offerServiceImpl) ListOffers(ctx context.Context) ([]models.GymPassOffer, error) {
	cached, found, err := s.cache.GetOffers(ctx)
	if err != nil {
		s.logger.Warn("Offers cache read failed, falling back to database", zap.Error(err))
	} else if found {
		return cached, nil
	}

	offers, err := s.offers.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetOffers(ctx, offers); err != nil {
		s.logger.Warn("Failed to populate offers cache", zap.Error(err))
	}
	return offers, nil
}

func (s *offerServiceImpl) GetOffer(ctx context.Context, id uuid.UUID) (*models.GymPassOffer, error) {
	offer, err := s.offers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if offer.IsDeleted() {
		return nil, models.ErrOfferNotFound
	}
	return offer, nil
}

func (s *offerServiceImpl) CreateOffer(ctx context.Context, in OfferInput) (*models.GymPassOffer, error) {
	offer, err := buildOffer(in)
	if err != nil {
		return nil, err
	}
	if err := s.offers.Create(ctx, offer); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return offer, nil
}

func (s *offerServiceImpl) UpdateOffer(ctx context.Context, id uuid.UUID, in OfferInput) (*models.GymPassOffer, error) {
	offer, err := buildOffer(in)
	if err != nil {
		return nil, err
	}
	offer.ID = id
	if err := s.offers.Update(ctx, offer); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return offer, nil
}

func (s *offerServiceImpl) DeleteOffer(ctx context.Context, id uuid.UUID) error {
	if err := s.offers.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *offerServiceImpl) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		// кеш истечет по TTL
		s.logger.Error("Failed to invalidate offers cache", zap.Error(err))
	}
}

func buildOffer(in OfferInput) (*models.GymPassOffer, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("offer title is required: %w", models.ErrInvalidInput)
	}
	if in.Amount < 0 {
		return nil, fmt.Errorf("offer amount must not be negative: %w", models.ErrInvalidInput)
	}
	if in.Duration <= 0 {
		return nil, fmt.Errorf("offer duration must be positive: %w", models.ErrInvalidInput)
	}
	if in.Entries != nil && *in.Entries <= 0 {
		return nil, fmt.Errorf("offer entries must be positive: %w", models.ErrInvalidInput)
	}
	switch in.TimeUnit {
	case models.TimeUnitDay, models.TimeUnitWeek, models.TimeUnitMonth, models.TimeUnitYear:
	default:
		return nil, fmt.Errorf("unknown time unit %q: %w", in.TimeUnit, models.ErrInvalidInput)
	}

	features := make([]string, 0, len(in.Features))
	for _, f := range in.Features {
		if f = strings.TrimSpace(f); f != "" {
			features = append(features, f)
		}
	}

	return &models.GymPassOffer{
		Title:     title,
		Subheader: strings.TrimSpace(in.Subheader),
		Amount:    in.Amount,
		Currency:  strings.ToUpper(strings.TrimSpace(in.Currency)),
		Period:    strings.TrimSpace(in.Period),
		IsPremium: in.IsPremium,
		Synopsis:  strings.TrimSpace(in.Synopsis),
		Features:  features,
		TimeUnit:  in.TimeUnit,
		Duration:  in.Duration,
		Entries:   in.Entries,
	}, nil
}
