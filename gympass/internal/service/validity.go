package service

import (
	"fmt"
	"time"

	"gym-server/shared/models"
	"gym-server/shared/utils"
)

// EvaluateStatus определяет состояние абонемента на дату today.
// Порядок проверок: заморозка, окончание, начало, остаток посещений.
func EvaluateStatus(pass *models.PurchasedGymPass, today time.Time) models.GymPassStatus {
	today = utils.TruncateToDate(today)

	if pass.SuspensionDate != nil && !today.After(utils.TruncateToDate(*pass.SuspensionDate)) {
		return models.GymPassSuspended
	}
	if today.After(utils.TruncateToDate(pass.EndDate)) {
		return models.GymPassExpired
	}
	if today.Before(utils.TruncateToDate(pass.StartDate)) {
		return models.GymPassNotStarted
	}
	if pass.EntriesLeft != nil && *pass.EntriesLeft <= 0 {
		return models.GymPassNoEntries
	}
	return models.GymPassValid
}

// StatusError возвращает ошибку, соответствующую невалидному статусу, или nil для VALID.
func StatusError(status models.GymPassStatus) error {
	switch status {
	case models.GymPassValid:
		return nil
	case models.GymPassNotStarted:
		return models.ErrGymPassNotStarted
	case models.GymPassExpired:
		return models.ErrGymPassExpired
	case models.GymPassSuspended:
		return models.ErrGymPassSuspended
	case models.GymPassNoEntries:
		return models.ErrGymPassNoEntries
	default:
		return fmt.Errorf("unknown gym pass status %q", status)
	}
}

// EndDate - последний день действия абонемента, купленного на start.
func EndDate(start time.Time, unit models.TimeUnit, duration int) (time.Time, error) {
	start = utils.TruncateToDate(start)
	if duration <= 0 {
		return time.Time{}, fmt.Errorf("duration must be positive: %w", models.ErrInvalidInput)
	}

	var next time.Time
	switch unit {
	case models.TimeUnitDay:
		next = start.AddDate(0, 0, duration)
	case models.TimeUnitWeek:
		next = start.AddDate(0, 0, 7*duration)
	case models.TimeUnitMonth:
		next = start.AddDate(0, duration, 0)
	case models.TimeUnitYear:
		next = start.AddDate(duration, 0, 0)
	default:
		return time.Time{}, fmt.Errorf("unknown time unit %q: %w", unit, models.ErrInvalidInput)
	}
	return next.AddDate(0, 0, -1), nil
}
