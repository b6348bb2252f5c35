package collision

import (
	"context"
	"errors"
	"testing"
	"time"

	"gym-server/shared/interfaces/mocks"
	"gym-server/shared/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var base = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return base.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name         string
		aStart, aEnd time.Time
		bStart, bEnd time.Time
		want         bool
	}{
		{"identical", at(0, 0), at(1, 0), at(0, 0), at(1, 0), true},
		{"inside", at(0, 0), at(2, 0), at(0, 30), at(1, 0), true},
		{"partial", at(0, 0), at(1, 0), at(0, 30), at(1, 30), true},
		{"back to back", at(0, 0), at(1, 0), at(1, 0), at(2, 0), false},
		{"back to back reversed", at(1, 0), at(2, 0), at(0, 0), at(1, 0), false},
		{"disjoint", at(0, 0), at(1, 0), at(3, 0), at(4, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

type fixture struct {
	v          *Validator
	group      *mocks.GroupTrainingRepository
	individual *mocks.IndividualTrainingRepository
}

func newFixture(t *testing.T, groups []models.GroupTraining, individuals []models.IndividualTraining) *fixture {
	t.Helper()
	f := &fixture{
		group:      new(mocks.GroupTrainingRepository),
		individual: new(mocks.IndividualTrainingRepository),
	}
	f.group.On("FindOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(groups, nil)
	f.individual.On("FindOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(individuals, nil)
	f.v = NewValidator(f.group, f.individual, zap.NewNop())
	return f
}

func TestCheck(t *testing.T) {
	ctx := context.Background()
	trainer := uuid.New()
	otherTrainer := uuid.New()
	hall := uuid.New()
	otherHall := uuid.New()

	groupAt := func(start, end time.Time, loc uuid.UUID, trainers ...uuid.UUID) models.GroupTraining {
		return models.GroupTraining{ID: uuid.New(), TrainerIDs: trainers, LocationID: loc, StartsAt: start, EndsAt: end}
	}

	t.Run("invalid range", func(t *testing.T) {
		f := &fixture{v: NewValidator(new(mocks.GroupTrainingRepository), new(mocks.IndividualTrainingRepository), zap.NewNop())}
		err := f.v.Check(ctx, Request{TrainerIDs: []uuid.UUID{trainer}, Start: at(1, 0), End: at(1, 0)})
		assert.ErrorIs(t, err, models.ErrInvalidTimeRange)
	})

	t.Run("free slot", func(t *testing.T) {
		f := newFixture(t, nil, nil)
		require.NoError(t, f.v.Check(ctx, Request{TrainerIDs: []uuid.UUID{trainer}, LocationID: &hall, Start: at(0, 0), End: at(1, 0)}))
	})

	t.Run("trainer busy in group training", func(t *testing.T) {
		busy := groupAt(at(0, 30), at(1, 30), otherHall, trainer)
		f := newFixture(t, []models.GroupTraining{busy}, nil)

		err := f.v.Check(ctx, Request{TrainerIDs: []uuid.UUID{trainer}, LocationID: &hall, Start: at(0, 0), End: at(1, 0)})
		require.ErrorIs(t, err, models.ErrTrainerOccupied)
		var occupied *TrainerOccupiedError
		require.True(t, errors.As(err, &occupied))
		assert.Equal(t, trainer, occupied.TrainerID)
		assert.Equal(t, busy.ID, occupied.BookingID)
	})

	t.Run("trainer conflict wins over location conflict", func(t *testing.T) {
		hallBusy := groupAt(at(0, 0), at(1, 0), hall, otherTrainer)
		individual := models.IndividualTraining{ID: uuid.New(), TrainerID: trainer, StartsAt: at(0, 15), EndsAt: at(0, 45), Status: models.IndividualAccepted}
		f := newFixture(t, []models.GroupTraining{hallBusy}, []models.IndividualTraining{individual})

		err := f.v.Check(ctx, Request{TrainerIDs: []uuid.UUID{trainer}, LocationID: &hall, Start: at(0, 0), End: at(1, 0)})
		assert.ErrorIs(t, err, models.ErrTrainerOccupied)
	})

	t.Run("location busy", func(t *testing.T) {
		hallBusy := groupAt(at(0, 0), at(1, 0), hall, otherTrainer)
		f := newFixture(t, []models.GroupTraining{hallBusy}, nil)

		err := f.v.Check(ctx, Request{TrainerIDs: []uuid.UUID{trainer}, LocationID: &hall, Start: at(0, 30), End: at(1, 30)})
		require.ErrorIs(t, err, models.ErrLocationOccupied)
		var occupied *LocationOccupiedError
		require.True(t, errors.As(err, &occupied))
		assert.Equal(t, hallBusy.ID, occupied.BookingID)
	})

	t.Run("back to back is allowed", func(t *testing.T) {
		before := groupAt(at(-1, 0), at(0, 0), hall, trainer)
		f := newFixture(t, []models.GroupTraining{before}, nil)

		require.NoError(t, f.v.Check(ctx, Request{TrainerIDs: []uuid.UUID{trainer}, LocationID: &hall, Start: at(0, 0), End: at(1, 0)}))
	})

	t.Run("excluded booking is ignored", func(t *testing.T) {
		self := groupAt(at(0, 0), at(1, 0), hall, trainer)
		f := newFixture(t, []models.GroupTraining{self}, nil)

		require.NoError(t, f.v.Check(ctx, Request{
			TrainerIDs: []uuid.UUID{trainer}, LocationID: &hall,
			Start: at(0, 30), End: at(1, 30), ExcludeID: &self.ID,
		}))
	})

	t.Run("individual without location does not block hall", func(t *testing.T) {
		pending := models.IndividualTraining{ID: uuid.New(), TrainerID: otherTrainer, StartsAt: at(0, 0), EndsAt: at(1, 0), Status: models.IndividualPending}
		f := newFixture(t, nil, []models.IndividualTraining{pending})

		require.NoError(t, f.v.Check(ctx, Request{TrainerIDs: []uuid.UUID{trainer}, LocationID: &hall, Start: at(0, 0), End: at(1, 0)}))
	})

	t.Run("repository error", func(t *testing.T) {
		group := new(mocks.GroupTrainingRepository)
		group.On("FindOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))
		v := NewValidator(group, new(mocks.IndividualTrainingRepository), zap.NewNop())

		err := v.Check(ctx, Request{TrainerIDs: []uuid.UUID{trainer}, Start: at(0, 0), End: at(1, 0)})
		require.Error(t, err)
		assert.False(t, errors.Is(err, models.ErrTrainerOccupied))
	})
}
