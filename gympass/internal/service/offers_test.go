package service

import (
	"context"
	"errors"
	"testing"

	"gym-server/shared/interfaces/mocks"
	"gym-server/shared/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestOfferService(t *testing.T) (OfferService, *mocks.GymPassOfferRepository, *mocks.GymPassOfferCache) {
	t.Helper()
	repo := new(mocks.GymPassOfferRepository)
	cache := new(mocks.GymPassOfferCache)
	t.Cleanup(func() {
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})
	return NewOfferService(repo, cache, zap.NewNop()), repo, cache
}

func validOfferInput() OfferInput {
	return OfferInput{
		Title:    "  Open 30  ",
		Amount:   129.99,
		Currency: "pln",
		Period:   "month",
		Features: []string{"sauna", " ", "pool "},
		TimeUnit: models.TimeUnitMonth,
		Duration: 1,
	}
}

func TestListOffers(t *testing.T) {
	ctx := context.Background()
	offers := []models.GymPassOffer{{ID: uuid.New(), Title: "Open"}}

	t.Run("cache hit skips database", func(t *testing.T) {
		svc, _, cache := newTestOfferService(t)
		cache.On("GetOffers", ctx).Return(offers, true, nil).Once()

		got, err := svc.ListOffers(ctx)
		require.NoError(t, err)
		assert.Equal(t, offers, got)
	})

	t.Run("cache miss populates cache", func(t *testing.T) {
		svc, repo, cache := newTestOfferService(t)
		cache.On("GetOffers", ctx).Return(nil, false, nil).Once()
		repo.On("List", ctx).Return(offers, nil).Once()
		cache.On("SetOffers", ctx, offers).Return(nil).Once()

		got, err := svc.ListOffers(ctx)
		require.NoError(t, err)
		assert.Equal(t, offers, got)
	})

	t.Run("cache failure falls back to database", func(t *testing.T) {
		svc, repo, cache := newTestOfferService(t)
		cache.On("GetOffers", ctx).Return(nil, false, errors.New("redis down")).Once()
		repo.On("List", ctx).Return(offers, nil).Once()
		cache.On("SetOffers", ctx, offers).Return(errors.New("redis down")).Once()

		got, err := svc.ListOffers(ctx)
		require.NoError(t, err)
		assert.Equal(t, offers, got)
	})
}

func TestCreateOffer(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes and invalidates cache", func(t *testing.T) {
		svc, repo, cache := newTestOfferService(t)
		repo.On("Create", ctx, mock.MatchedBy(func(o *models.GymPassOffer) bool {
			return o.Title == "Open 30" && o.Currency == "PLN" &&
				assert.ObjectsAreEqual([]string{"sauna", "pool"}, o.Features)
		})).Return(nil).Once()
		cache.On("Invalidate", ctx).Return(nil).Once()

		offer, err := svc.CreateOffer(ctx, validOfferInput())
		require.NoError(t, err)
		assert.Equal(t, "Open 30", offer.Title)
	})

	t.Run("duplicate title", func(t *testing.T) {
		svc, repo, _ := newTestOfferService(t)
		repo.On("Create", ctx, mock.Anything).Return(models.ErrOfferTitleTaken).Once()

		_, err := svc.CreateOffer(ctx, validOfferInput())
		assert.ErrorIs(t, err, models.ErrOfferTitleTaken)
	})

	t.Run("invalid input", func(t *testing.T) {
		cases := map[string]func(*OfferInput){
			"empty title":       func(in *OfferInput) { in.Title = " " },
			"negative amount":   func(in *OfferInput) { in.Amount = -1 },
			"zero duration":     func(in *OfferInput) { in.Duration = 0 },
			"zero entries":      func(in *OfferInput) { in.Entries = intPtr(0) },
			"unknown time unit": func(in *OfferInput) { in.TimeUnit = "DECADE" },
		}
		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				svc, _, _ := newTestOfferService(t)
				in := validOfferInput()
				mutate(&in)
				_, err := svc.CreateOffer(ctx, in)
				assert.ErrorIs(t, err, models.ErrInvalidInput)
			})
		}
	})
}

func TestUpdateAndDeleteOffer(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("update keeps id", func(t *testing.T) {
		svc, repo, cache := newTestOfferService(t)
		repo.On("Update", ctx, mock.MatchedBy(func(o *models.GymPassOffer) bool { return o.ID == id })).Return(nil).Once()
		cache.On("Invalidate", ctx).Return(errors.New("redis down")).Once()

		offer, err := svc.UpdateOffer(ctx, id, validOfferInput())
		require.NoError(t, err)
		assert.Equal(t, id, offer.ID)
	})

	t.Run("delete unknown does not touch cache", func(t *testing.T) {
		svc, repo, _ := newTestOfferService(t)
		repo.On("Delete", ctx, id).Return(models.ErrOfferNotFound).Once()

		assert.ErrorIs(t, svc.DeleteOffer(ctx, id), models.ErrOfferNotFound)
	})

	t.Run("delete invalidates cache", func(t *testing.T) {
		svc, repo, cache := newTestOfferService(t)
		repo.On("Delete", ctx, id).Return(nil).Once()
		cache.On("Invalidate", ctx).Return(nil).Once()

		require.NoError(t, svc.DeleteOffer(ctx, id))
	})
}

func TestGetOfferHidesRetired(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestOfferService(t)
	active := &models.GymPassOffer{ID: uuid.New(), Title: "Open"}
	deletedAt := fixedNow
	retired := &models.GymPassOffer{ID: uuid.New(), Title: "Morning", DeletedAt: &deletedAt}
	repo.On("GetByID", ctx, active.ID).Return(active, nil).Once()
	repo.On("GetByID", ctx, retired.ID).Return(retired, nil).Once()

	got, err := svc.GetOffer(ctx, active.ID)
	require.NoError(t, err)
	assert.Equal(t, active, got)

	_, err = svc.GetOffer(ctx, retired.ID)
	assert.ErrorIs(t, err, models.ErrOfferNotFound)
}
