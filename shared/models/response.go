package models

// ErrorResponse - тело ответа об ошибке во всех сервисах.
// Message локализуется по Accept-Language, Code стабилен для клиентов.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Коды ошибок API. Значения также служат ключами каталога сообщений i18n.
const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeValidation       = "VALIDATION_FAILED"
	ErrCodeInternal         = "INTERNAL_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"
	ErrCodeWrongCredentials = "WRONG_CREDENTIALS"
	ErrCodeDuplicateEmail   = "DUPLICATE_EMAIL"
	ErrCodeUserNotFound     = "USER_NOT_FOUND"
	ErrCodeUserNotEnabled   = "USER_NOT_ENABLED"
	ErrCodeUserBanned       = "USER_BANNED"
	ErrCodeTokenInvalid     = "TOKEN_INVALID"
	ErrCodeTokenExpired     = "TOKEN_EXPIRED"
	ErrCodeTokenNotFound    = "TOKEN_NOT_FOUND"

	ErrCodeProfileNotFound = "PROFILE_NOT_FOUND"
	ErrCodeTrainerNotFound = "TRAINER_NOT_FOUND"

	ErrCodeOfferNotFound         = "OFFER_NOT_FOUND"
	ErrCodeOfferTitleTaken       = "OFFER_TITLE_TAKEN"
	ErrCodeGymPassNotFound       = "GYMPASS_NOT_FOUND"
	ErrCodeGymPassNotStarted     = "GYMPASS_NOT_STARTED"
	ErrCodeGymPassExpired        = "GYMPASS_EXPIRED"
	ErrCodeGymPassSuspended      = "GYMPASS_SUSPENDED"
	ErrCodeGymPassNoEntries      = "GYMPASS_NO_ENTRIES"
	ErrCodeGymPassNotTimeLimited = "GYMPASS_NOT_TIME_LIMITED"
	ErrCodeInvalidSuspensionDate = "INVALID_SUSPENSION_DATE"
	ErrCodeInvalidStartDate      = "INVALID_START_DATE"

	ErrCodeLocationNotFound       = "LOCATION_NOT_FOUND"
	ErrCodeLocationNameTaken      = "LOCATION_NAME_TAKEN"
	ErrCodeLocationInUse          = "LOCATION_IN_USE"
	ErrCodeTrainingNotFound       = "TRAINING_NOT_FOUND"
	ErrCodeInvalidTimeRange       = "INVALID_TIME_RANGE"
	ErrCodeTrainingInPast         = "TRAINING_IN_PAST"
	ErrCodeTrainerOccupied        = "TRAINER_OCCUPIED"
	ErrCodeLocationOccupied       = "LOCATION_OCCUPIED"
	ErrCodeNotATrainer            = "NOT_A_TRAINER"
	ErrCodeAlreadyEnrolled        = "ALREADY_ENROLLED"
	ErrCodeNotEnrolled            = "NOT_ENROLLED"
	ErrCodeLimitBelowParticipants = "LIMIT_BELOW_PARTICIPANTS"
	ErrCodeInvalidTransition      = "INVALID_STATUS_TRANSITION"
	ErrCodeSelfTraining           = "SELF_TRAINING"

	ErrCodeDeviceTokenNotFound = "DEVICE_TOKEN_NOT_FOUND"
)

// PaginatedResponse - страница результатов с курсором на следующую.
type PaginatedResponse[T any] struct {
	Data       []T    `json:"data"`
	NextCursor string `json:"next_cursor,omitempty"`
}
