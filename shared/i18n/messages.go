package i18n

import "gym-server/shared/models"

var customEN = map[string]string{
	"password": "{0} must be 8-100 characters long and contain at least one letter and one digit",
}

var customRU = map[string]string{
	"password": "{0} должен содержать от 8 до 100 символов, хотя бы одну букву и одну цифру",
}

var catalogEN = map[string]string{
	models.ErrCodeBadRequest:       "Bad request",
	models.ErrCodeValidation:       "Request validation failed",
	models.ErrCodeInternal:         "An unexpected internal error occurred",
	models.ErrCodeNotFound:         "Resource not found",
	models.ErrCodeConflict:         "The resource state does not allow this operation",
	models.ErrCodeUnauthorized:     "Authentication required",
	models.ErrCodeForbidden:        "You do not have permission to perform this action",
	models.ErrCodeTooManyRequests:  "Too many requests, try again later",
	models.ErrCodeWrongCredentials: "Invalid email or password",
	models.ErrCodeDuplicateEmail:   "A user with this email already exists",
	models.ErrCodeUserNotFound:     "User not found",
	models.ErrCodeUserNotEnabled:   "Account is not confirmed yet",
	models.ErrCodeUserBanned:       "User is banned",
	models.ErrCodeTokenInvalid:     "Token is invalid",
	models.ErrCodeTokenExpired:     "Token has expired",
	models.ErrCodeTokenNotFound:    "Token not found or already used",

	models.ErrCodeProfileNotFound: "Profile not found",
	models.ErrCodeTrainerNotFound: "Trainer not found",

	models.ErrCodeOfferNotFound:         "Gym pass offer not found",
	models.ErrCodeOfferTitleTaken:       "A gym pass offer with this title already exists",
	models.ErrCodeGymPassNotFound:       "Gym pass not found",
	models.ErrCodeGymPassNotStarted:     "The gym pass is not active yet",
	models.ErrCodeGymPassExpired:        "The gym pass has expired",
	models.ErrCodeGymPassSuspended:      "The gym pass is suspended",
	models.ErrCodeGymPassNoEntries:      "The gym pass has no entries left",
	models.ErrCodeGymPassNotTimeLimited: "Only time-limited gym passes can be suspended",
	models.ErrCodeInvalidSuspensionDate: "Invalid suspension date",
	models.ErrCodeInvalidStartDate:      "The start date cannot be in the past",

	models.ErrCodeLocationNotFound:       "Location not found",
	models.ErrCodeLocationNameTaken:      "A location with this name already exists",
	models.ErrCodeLocationInUse:          "The location is used by upcoming trainings",
	models.ErrCodeTrainingNotFound:       "Training not found",
	models.ErrCodeInvalidTimeRange:       "The training must end after it starts",
	models.ErrCodeTrainingInPast:         "The training has already started",
	models.ErrCodeTrainerOccupied:        "The trainer already has a training at this time",
	models.ErrCodeLocationOccupied:       "The location is already booked at this time",
	models.ErrCodeNotATrainer:            "The selected user is not a trainer",
	models.ErrCodeAlreadyEnrolled:        "You are already enrolled in this training",
	models.ErrCodeNotEnrolled:            "You are not enrolled in this training",
	models.ErrCodeLimitBelowParticipants: "The participant limit is lower than the number of enrolled participants",
	models.ErrCodeInvalidTransition:      "The training status does not allow this action",
	models.ErrCodeSelfTraining:           "A trainer cannot book a training with themselves",

	models.ErrCodeDeviceTokenNotFound: "Device token not found",
}

var catalogRU = map[string]string{
	models.ErrCodeBadRequest:       "Некорректный запрос",
	models.ErrCodeValidation:       "Ошибка валидации запроса",
	models.ErrCodeInternal:         "Внутренняя ошибка сервера",
	models.ErrCodeNotFound:         "Ресурс не найден",
	models.ErrCodeConflict:         "Текущее состояние ресурса не позволяет выполнить операцию",
	models.ErrCodeUnauthorized:     "Требуется аутентификация",
	models.ErrCodeForbidden:        "Недостаточно прав для выполнения действия",
	models.ErrCodeTooManyRequests:  "Слишком много запросов, попробуйте позже",
	models.ErrCodeWrongCredentials: "Неверный email или пароль",
	models.ErrCodeDuplicateEmail:   "Пользователь с таким email уже существует",
	models.ErrCodeUserNotFound:     "Пользователь не найден",
	models.ErrCodeUserNotEnabled:   "Аккаунт еще не подтвержден",
	models.ErrCodeUserBanned:       "Пользователь заблокирован",
	models.ErrCodeTokenInvalid:     "Недействительный токен",
	models.ErrCodeTokenExpired:     "Срок действия токена истек",
	models.ErrCodeTokenNotFound:    "Токен не найден или уже использован",

	models.ErrCodeProfileNotFound: "Профиль не найден",
	models.ErrCodeTrainerNotFound: "Тренер не найден",

	models.ErrCodeOfferNotFound:         "Предложение абонемента не найдено",
	models.ErrCodeOfferTitleTaken:       "Предложение с таким названием уже существует",
	models.ErrCodeGymPassNotFound:       "Абонемент не найден",
	models.ErrCodeGymPassNotStarted:     "Абонемент еще не начал действовать",
	models.ErrCodeGymPassExpired:        "Срок действия абонемента истек",
	models.ErrCodeGymPassSuspended:      "Абонемент заморожен",
	models.ErrCodeGymPassNoEntries:      "На абонементе не осталось посещений",
	models.ErrCodeGymPassNotTimeLimited: "Заморозить можно только абонемент по времени",
	models.ErrCodeInvalidSuspensionDate: "Некорректная дата заморозки",
	models.ErrCodeInvalidStartDate:      "Дата начала не может быть в прошлом",

	models.ErrCodeLocationNotFound:       "Зал не найден",
	models.ErrCodeLocationNameTaken:      "Зал с таким названием уже существует",
	models.ErrCodeLocationInUse:          "Зал используется в предстоящих тренировках",
	models.ErrCodeTrainingNotFound:       "Тренировка не найдена",
	models.ErrCodeInvalidTimeRange:       "Тренировка должна заканчиваться после начала",
	models.ErrCodeTrainingInPast:         "Тренировка уже началась",
	models.ErrCodeTrainerOccupied:        "У тренера уже есть тренировка в это время",
	models.ErrCodeLocationOccupied:       "Зал уже занят в это время",
	models.ErrCodeNotATrainer:            "Выбранный пользователь не является тренером",
	models.ErrCodeAlreadyEnrolled:        "Вы уже записаны на эту тренировку",
	models.ErrCodeNotEnrolled:            "Вы не записаны на эту тренировку",
	models.ErrCodeLimitBelowParticipants: "Лимит участников меньше числа уже записанных",
	models.ErrCodeInvalidTransition:      "Статус тренировки не позволяет выполнить действие",
	models.ErrCodeSelfTraining:           "Тренер не может записаться на тренировку к самому себе",

	models.ErrCodeDeviceTokenNotFound: "Токен устройства не найден",
}

// Тексты push-уведомлений. Для групповых {0} - название, {1} - время начала;
// для индивидуальных {0} - время начала.
var pushEN = map[string]string{
	"push.GROUP_TRAINING_CANCELLED.title":      "Training cancelled",
	"push.GROUP_TRAINING_CANCELLED.body":       "{0} on {1} has been cancelled",
	"push.PROMOTED_FROM_RESERVE.title":         "You are in!",
	"push.PROMOTED_FROM_RESERVE.body":          "A place on {0} ({1}) has opened up for you",
	"push.INDIVIDUAL_TRAINING_REQUESTED.title": "New training request",
	"push.INDIVIDUAL_TRAINING_REQUESTED.body":  "A client asks for an individual training on {0}",
	"push.INDIVIDUAL_TRAINING_ACCEPTED.title":  "Training accepted",
	"push.INDIVIDUAL_TRAINING_ACCEPTED.body":   "Your individual training on {0} has been accepted",
	"push.INDIVIDUAL_TRAINING_REJECTED.title":  "Training rejected",
	"push.INDIVIDUAL_TRAINING_REJECTED.body":   "Your individual training request for {0} has been rejected",
	"push.INDIVIDUAL_TRAINING_CANCELLED.title": "Training cancelled",
	"push.INDIVIDUAL_TRAINING_CANCELLED.body":  "The individual training on {0} has been cancelled",
}

var pushRU = map[string]string{
	"push.GROUP_TRAINING_CANCELLED.title":      "Тренировка отменена",
	"push.GROUP_TRAINING_CANCELLED.body":       "{0} ({1}) отменена",
	"push.PROMOTED_FROM_RESERVE.title":         "Вы в основном списке!",
	"push.PROMOTED_FROM_RESERVE.body":          "Для вас освободилось место на {0} ({1})",
	"push.INDIVIDUAL_TRAINING_REQUESTED.title": "Новая заявка на тренировку",
	"push.INDIVIDUAL_TRAINING_REQUESTED.body":  "Клиент просит индивидуальную тренировку на {0}",
	"push.INDIVIDUAL_TRAINING_ACCEPTED.title":  "Тренировка подтверждена",
	"push.INDIVIDUAL_TRAINING_ACCEPTED.body":   "Ваша индивидуальная тренировка {0} подтверждена",
	"push.INDIVIDUAL_TRAINING_REJECTED.title":  "Заявка отклонена",
	"push.INDIVIDUAL_TRAINING_REJECTED.body":   "Заявка на индивидуальную тренировку {0} отклонена",
	"push.INDIVIDUAL_TRAINING_CANCELLED.title": "Тренировка отменена",
	"push.INDIVIDUAL_TRAINING_CANCELLED.body":  "Индивидуальная тренировка {0} отменена",
}
