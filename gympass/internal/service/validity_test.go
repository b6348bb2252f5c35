package service

import (
	"errors"
	"testing"
	"time"

	"gym-server/shared/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func TestEvaluateStatus(t *testing.T) {
	base := models.PurchasedGymPass{
		StartDate: date(2026, 3, 1),
		EndDate:   date(2026, 3, 31),
	}

	tests := []struct {
		name   string
		mutate func(p *models.PurchasedGymPass)
		today  time.Time
		want   models.GymPassStatus
	}{
		{"valid on first day", nil, date(2026, 3, 1), models.GymPassValid},
		{"valid on last day", nil, date(2026, 3, 31).Add(23 * time.Hour), models.GymPassValid},
		{"not started", nil, date(2026, 2, 28), models.GymPassNotStarted},
		{"expired", nil, date(2026, 4, 1), models.GymPassExpired},
		{
			"suspended until inclusive",
			func(p *models.PurchasedGymPass) { p.SuspensionDate = timePtr(date(2026, 3, 10)) },
			date(2026, 3, 10),
			models.GymPassSuspended,
		},
		{
			"valid after suspension",
			func(p *models.PurchasedGymPass) { p.SuspensionDate = timePtr(date(2026, 3, 10)) },
			date(2026, 3, 11),
			models.GymPassValid,
		},
		{
			"suspension wins over expiry",
			func(p *models.PurchasedGymPass) { p.SuspensionDate = timePtr(date(2026, 4, 5)) },
			date(2026, 4, 2),
			models.GymPassSuspended,
		},
		{
			"no entries left",
			func(p *models.PurchasedGymPass) { p.EntriesLeft = intPtr(0) },
			date(2026, 3, 5),
			models.GymPassNoEntries,
		},
		{
			"expired before no entries",
			func(p *models.PurchasedGymPass) { p.EntriesLeft = intPtr(0) },
			date(2026, 5, 1),
			models.GymPassExpired,
		},
		{
			"entries left",
			func(p *models.PurchasedGymPass) { p.EntriesLeft = intPtr(3) },
			date(2026, 3, 5),
			models.GymPassValid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			if tt.mutate != nil {
				tt.mutate(&p)
			}
			assert.Equal(t, tt.want, EvaluateStatus(&p, tt.today))
		})
	}
}

func TestStatusError(t *testing.T) {
	assert.NoError(t, StatusError(models.GymPassValid))
	assert.True(t, errors.Is(StatusError(models.GymPassNotStarted), models.ErrGymPassNotStarted))
	assert.True(t, errors.Is(StatusError(models.GymPassExpired), models.ErrGymPassExpired))
	assert.True(t, errors.Is(StatusError(models.GymPassSuspended), models.ErrGymPassSuspended))
	assert.True(t, errors.Is(StatusError(models.GymPassNoEntries), models.ErrGymPassNoEntries))
	assert.Error(t, StatusError("BROKEN"))
}

func TestEndDate(t *testing.T) {
	start := date(2026, 1, 31)

	tests := []struct {
		unit     models.TimeUnit
		duration int
		want     time.Time
	}{
		{models.TimeUnitDay, 1, date(2026, 1, 31)},
		{models.TimeUnitDay, 10, date(2026, 2, 9)},
		{models.TimeUnitWeek, 2, date(2026, 2, 13)},
		{models.TimeUnitMonth, 1, date(2026, 3, 2)},
		{models.TimeUnitYear, 1, date(2027, 1, 30)},
	}
	for _, tt := range tests {
		got, err := EndDate(start, tt.unit, tt.duration)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s x%d", tt.unit, tt.duration)
	}

	_, err := EndDate(start, "DECADE", 1)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
	_, err = EndDate(start, models.TimeUnitDay, 0)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}
