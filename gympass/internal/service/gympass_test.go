package service

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"gym-server/shared/interfaces/mocks"
	"gym-server/shared/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

func newTestGymPassService(t *testing.T) (GymPassService, *mocks.GymPassOfferRepository, *mocks.PurchasedGymPassRepository) {
	t.Helper()
	offers := new(mocks.GymPassOfferRepository)
	passes := new(mocks.PurchasedGymPassRepository)
	t.Cleanup(func() {
		offers.AssertExpectations(t)
		passes.AssertExpectations(t)
	})
	svc := NewGymPassService(offers, passes, 30, zap.NewNop(), WithClock(func() time.Time { return fixedNow }))
	return svc, offers, passes
}

func member() models.Actor {
	return models.Actor{UserID: uuid.New(), Roles: []string{models.RoleUser}}
}

func employee() models.Actor {
	return models.Actor{UserID: uuid.New(), Roles: []string{models.RoleUser, models.RoleEmployee}}
}

func TestPurchase(t *testing.T) {
	ctx := context.Background()
	monthly := &models.GymPassOffer{ID: uuid.New(), Title: "Open", TimeUnit: models.TimeUnitMonth, Duration: 1}
	tenEntries := &models.GymPassOffer{ID: uuid.New(), Title: "10x", TimeUnit: models.TimeUnitMonth, Duration: 3, Entries: intPtr(10)}

	t.Run("defaults to today for self", func(t *testing.T) {
		svc, offers, passes := newTestGymPassService(t)
		actor := member()
		offers.On("GetByID", ctx, monthly.ID).Return(monthly, nil).Once()
		passes.On("Create", ctx, mock.MatchedBy(func(p *models.PurchasedGymPass) bool {
			return p.UserID == actor.UserID &&
				p.StartDate.Equal(date(2026, 3, 10)) &&
				p.EndDate.Equal(date(2026, 4, 9)) &&
				p.EntriesLeft == nil
		})).Return(nil).Once()

		pass, err := svc.Purchase(ctx, actor, PurchaseInput{OfferID: monthly.ID})
		require.NoError(t, err)
		assert.Equal(t, "Open", pass.OfferTitle)
	})

	t.Run("copies entries", func(t *testing.T) {
		svc, offers, passes := newTestGymPassService(t)
		offers.On("GetByID", ctx, tenEntries.ID).Return(tenEntries, nil).Once()
		passes.On("Create", ctx, mock.Anything).Return(nil).Once()

		pass, err := svc.Purchase(ctx, member(), PurchaseInput{OfferID: tenEntries.ID, StartDate: timePtr(date(2026, 4, 1))})
		require.NoError(t, err)
		require.NotNil(t, pass.EntriesLeft)
		assert.Equal(t, 10, *pass.EntriesLeft)
		assert.Equal(t, date(2026, 6, 30), pass.EndDate)
	})

	t.Run("past start date", func(t *testing.T) {
		svc, _, _ := newTestGymPassService(t)
		_, err := svc.Purchase(ctx, member(), PurchaseInput{OfferID: monthly.ID, StartDate: timePtr(date(2026, 3, 9))})
		assert.ErrorIs(t, err, models.ErrInvalidStartDate)
	})

	t.Run("member cannot buy for others", func(t *testing.T) {
		svc, _, _ := newTestGymPassService(t)
		other := uuid.New()
		_, err := svc.Purchase(ctx, member(), PurchaseInput{OfferID: monthly.ID, UserID: &other})
		assert.ErrorIs(t, err, models.ErrForbidden)
	})

	t.Run("employee buys for client", func(t *testing.T) {
		svc, offers, passes := newTestGymPassService(t)
		client := uuid.New()
		offers.On("GetByID", ctx, monthly.ID).Return(monthly, nil).Once()
		passes.On("Create", ctx, mock.MatchedBy(func(p *models.PurchasedGymPass) bool { return p.UserID == client })).Return(nil).Once()

		_, err := svc.Purchase(ctx, employee(), PurchaseInput{OfferID: monthly.ID, UserID: &client})
		require.NoError(t, err)
	})

	t.Run("retired offer cannot be bought", func(t *testing.T) {
		svc, offers, _ := newTestGymPassService(t)
		retired := *monthly
		deletedAt := fixedNow.Add(-time.Hour)
		retired.DeletedAt = &deletedAt
		offers.On("GetByID", ctx, monthly.ID).Return(&retired, nil).Once()

		_, err := svc.Purchase(ctx, member(), PurchaseInput{OfferID: monthly.ID})
		assert.ErrorIs(t, err, models.ErrOfferNotFound)
	})

	t.Run("unknown offer", func(t *testing.T) {
		svc, offers, _ := newTestGymPassService(t)
		id := uuid.New()
		offers.On("GetByID", ctx, id).Return(nil, models.ErrOfferNotFound).Once()

		_, err := svc.Purchase(ctx, member(), PurchaseInput{OfferID: id})
		assert.ErrorIs(t, err, models.ErrOfferNotFound)
	})
}

func TestRegisterEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("requires employee", func(t *testing.T) {
		svc, _, _ := newTestGymPassService(t)
		_, err := svc.RegisterEntry(ctx, member(), uuid.New())
		assert.ErrorIs(t, err, models.ErrForbidden)
	})

	t.Run("rejects expired pass", func(t *testing.T) {
		svc, _, passes := newTestGymPassService(t)
		pass := &models.PurchasedGymPass{ID: uuid.New(), StartDate: date(2026, 1, 1), EndDate: date(2026, 1, 31)}
		passes.On("GetByID", ctx, pass.ID).Return(pass, nil).Once()

		_, err := svc.RegisterEntry(ctx, employee(), pass.ID)
		assert.ErrorIs(t, err, models.ErrGymPassExpired)
	})

	t.Run("rejects exhausted pass", func(t *testing.T) {
		svc, _, passes := newTestGymPassService(t)
		pass := &models.PurchasedGymPass{ID: uuid.New(), StartDate: date(2026, 3, 1), EndDate: date(2026, 5, 31), EntriesLeft: intPtr(0)}
		passes.On("GetByID", ctx, pass.ID).Return(pass, nil).Once()

		_, err := svc.RegisterEntry(ctx, employee(), pass.ID)
		assert.ErrorIs(t, err, models.ErrGymPassNoEntries)
	})

	t.Run("decrements valid pass", func(t *testing.T) {
		svc, _, passes := newTestGymPassService(t)
		pass := &models.PurchasedGymPass{ID: uuid.New(), StartDate: date(2026, 3, 1), EndDate: date(2026, 5, 31), EntriesLeft: intPtr(3)}
		after := *pass
		after.EntriesLeft = intPtr(2)
		passes.On("GetByID", ctx, pass.ID).Return(pass, nil).Once()
		passes.On("RegisterEntry", ctx, pass.ID, fixedNow).Return(&after, nil).Once()

		got, err := svc.RegisterEntry(ctx, employee(), pass.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, *got.EntriesLeft)
	})
}

func TestSuspend(t *testing.T) {
	ctx := context.Background()
	owner := member()
	timeLimited := func() *models.PurchasedGymPass {
		return &models.PurchasedGymPass{ID: uuid.New(), UserID: owner.UserID, StartDate: date(2026, 3, 1), EndDate: date(2026, 3, 31)}
	}

	t.Run("extends end date by frozen days", func(t *testing.T) {
		svc, _, passes := newTestGymPassService(t)
		pass := timeLimited()
		passes.On("GetByID", ctx, pass.ID).Return(pass, nil).Once()
		// 10..14 марта - пять дней
		passes.On("Suspend", ctx, pass.ID, date(2026, 3, 14), date(2026, 4, 5)).Return(pass, nil).Once()

		_, err := svc.Suspend(ctx, owner, pass.ID, date(2026, 3, 14))
		require.NoError(t, err)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		svc, _, passes := newTestGymPassService(t)
		pass := timeLimited()
		passes.On("GetByID", ctx, pass.ID).Return(pass, nil).Once()

		_, err := svc.Suspend(ctx, member(), pass.ID, date(2026, 3, 14))
		assert.ErrorIs(t, err, models.ErrForbidden)
	})

	t.Run("entry based pass", func(t *testing.T) {
		svc, _, passes := newTestGymPassService(t)
		pass := timeLimited()
		pass.EntriesLeft = intPtr(5)
		passes.On("GetByID", ctx, pass.ID).Return(pass, nil).Once()

		_, err := svc.Suspend(ctx, employee(), pass.ID, date(2026, 3, 14))
		assert.ErrorIs(t, err, models.ErrGymPassNotTimeLimited)
	})

	t.Run("already suspended", func(t *testing.T) {
		svc, _, passes := newTestGymPassService(t)
		pass := timeLimited()
		pass.SuspensionDate = timePtr(date(2026, 3, 12))
		passes.On("GetByID", ctx, pass.ID).Return(pass, nil).Once()

		_, err := svc.Suspend(ctx, owner, pass.ID, date(2026, 3, 20))
		assert.ErrorIs(t, err, models.ErrGymPassSuspended)
	})

	t.Run("invalid dates", func(t *testing.T) {
		for name, until := range map[string]time.Time{
			"today":    date(2026, 3, 10),
			"past":     date(2026, 3, 1),
			"too long": date(2026, 4, 10),
		} {
			t.Run(name, func(t *testing.T) {
				svc, _, passes := newTestGymPassService(t)
				pass := timeLimited()
				passes.On("GetByID", ctx, pass.ID).Return(pass, nil).Once()

				_, err := svc.Suspend(ctx, owner, pass.ID, until)
				assert.ErrorIs(t, err, models.ErrInvalidSuspensionDate)
			})
		}
	})
}

func TestStatusAndList(t *testing.T) {
	ctx := context.Background()
	owner := member()
	pass := &models.PurchasedGymPass{ID: uuid.New(), UserID: owner.UserID, StartDate: date(2026, 3, 20), EndDate: date(2026, 4, 19)}

	t.Run("owner sees status", func(t *testing.T) {
		svc, _, passes := newTestGymPassService(t)
		passes.On("GetByID", ctx, pass.ID).Return(pass, nil).Once()

		st, err := svc.Status(ctx, owner, pass.ID)
		require.NoError(t, err)
		assert.Equal(t, models.GymPassNotStarted, st.Status)
	})

	t.Run("stranger cannot see status", func(t *testing.T) {
		svc, _, passes := newTestGymPassService(t)
		passes.On("GetByID", ctx, pass.ID).Return(pass, nil).Once()

		_, err := svc.Status(ctx, member(), pass.ID)
		assert.ErrorIs(t, err, models.ErrForbidden)
	})

	t.Run("staff lists other user", func(t *testing.T) {
		svc, _, passes := newTestGymPassService(t)
		passes.On("ListByUser", ctx, owner.UserID).Return([]models.PurchasedGymPass{*pass}, nil).Once()

		list, err := svc.ListForUser(ctx, employee(), owner.UserID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, models.GymPassNotStarted, list[0].Status)
	})

	t.Run("member cannot list other user", func(t *testing.T) {
		svc, _, _ := newTestGymPassService(t)
		_, err := svc.ListForUser(ctx, member(), owner.UserID)
		assert.ErrorIs(t, err, models.ErrForbidden)
	})
}

func TestTodayFollowsClubTimezone(t *testing.T) {
	ctx := context.Background()
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)

	// 23:30 UTC - в Варшаве уже 11 марта
	lateEvening := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)
	offers := new(mocks.GymPassOfferRepository)
	passes := new(mocks.PurchasedGymPassRepository)
	svc := NewGymPassService(offers, passes, 30, zap.NewNop(),
		WithClock(func() time.Time { return lateEvening }),
		WithLocation(warsaw),
	)

	monthly := &models.GymPassOffer{ID: uuid.New(), Title: "Open", TimeUnit: models.TimeUnitMonth, Duration: 1}
	offers.On("GetByID", ctx, monthly.ID).Return(monthly, nil).Once()
	passes.On("Create", ctx, mock.MatchedBy(func(p *models.PurchasedGymPass) bool {
		return p.StartDate.Equal(date(2026, 3, 11))
	})).Return(nil).Once()

	_, err = svc.Purchase(ctx, member(), PurchaseInput{OfferID: monthly.ID})
	require.NoError(t, err)

	actor := member()
	endedYesterday := &models.PurchasedGymPass{
		ID:        uuid.New(),
		UserID:    actor.UserID,
		StartDate: date(2026, 2, 11),
		EndDate:   date(2026, 3, 10),
	}
	passes.On("GetByID", ctx, endedYesterday.ID).Return(endedYesterday, nil).Once()

	status, err := svc.Status(ctx, actor, endedYesterday.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GymPassExpired, status.Status)

	offers.AssertExpectations(t)
	passes.AssertExpectations(t)
}
