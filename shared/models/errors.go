package models

import "errors"

// Общие ошибки приложения. Сервисы сравнивают их через errors.Is.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInternalServer = errors.New("internal server error")
	ErrBadRequest     = errors.New("bad request")
	ErrInvalidInput   = errors.New("invalid input data")
	ErrConflict       = errors.New("resource state conflict")

	// Пользователи и аутентификация
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotEnabled     = errors.New("user account is not confirmed")
	ErrUserBanned         = errors.New("user is banned")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")

	// Токены
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenNotFound  = errors.New("token not found in storage")

	// Профили
	ErrProfileNotFound = errors.New("profile not found")
	ErrTrainerNotFound = errors.New("trainer not found")

	// Абонементы
	ErrOfferNotFound         = errors.New("gym pass offer not found")
	ErrOfferTitleTaken       = errors.New("gym pass offer with this title already exists")
	ErrGymPassNotFound       = errors.New("gym pass not found")
	ErrGymPassNotStarted     = errors.New("gym pass is not active yet")
	ErrGymPassExpired        = errors.New("gym pass has expired")
	ErrGymPassSuspended      = errors.New("gym pass is suspended")
	ErrGymPassNoEntries      = errors.New("gym pass has no entries left")
	ErrGymPassNotTimeLimited = errors.New("only time-limited gym passes can be suspended")
	ErrInvalidSuspensionDate = errors.New("invalid suspension date")
	ErrInvalidStartDate      = errors.New("gym pass start date cannot be in the past")

	// Тренировки
	ErrLocationNotFound       = errors.New("location not found")
	ErrLocationNameTaken      = errors.New("location with this name already exists")
	ErrLocationInUse          = errors.New("location is used by upcoming trainings")
	ErrTrainingNotFound       = errors.New("training not found")
	ErrInvalidTimeRange       = errors.New("training must end after it starts")
	ErrTrainingInPast         = errors.New("training has already started")
	ErrTrainerOccupied        = errors.New("trainer is occupied in the requested time")
	ErrLocationOccupied       = errors.New("location is occupied in the requested time")
	ErrNotATrainer            = errors.New("user is not a trainer")
	ErrAlreadyEnrolled        = errors.New("user is already enrolled")
	ErrNotEnrolled            = errors.New("user is not enrolled")
	ErrLimitBelowParticipants = errors.New("participant limit is below current participant count")
	ErrInvalidTransition      = errors.New("training status does not allow this action")
	ErrSelfTraining           = errors.New("trainer cannot book a training with themselves")

	// Push-уведомления
	ErrDeviceTokenNotFound = errors.New("device token not found")
)
