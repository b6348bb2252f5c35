package handler

import (
	"errors"
	"net/http"

	sharedMiddleware "gym-server/shared/middleware"
	"gym-server/shared/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *TrainingsHandler) handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var code string

	switch {
	case errors.Is(err, models.ErrLocationNotFound):
		statusCode, code = http.StatusNotFound, models.ErrCodeLocationNotFound
	case errors.Is(err, models.ErrTrainingNotFound):
		statusCode, code = http.StatusNotFound, models.ErrCodeTrainingNotFound
	case errors.Is(err, models.ErrLocationNameTaken):
		statusCode, code = http.StatusConflict, models.ErrCodeLocationNameTaken
	case errors.Is(err, models.ErrLocationInUse):
		statusCode, code = http.StatusConflict, models.ErrCodeLocationInUse
	case errors.Is(err, models.ErrTrainerOccupied):
		statusCode, code = http.StatusConflict, models.ErrCodeTrainerOccupied
	case errors.Is(err, models.ErrLocationOccupied):
		statusCode, code = http.StatusConflict, models.ErrCodeLocationOccupied
	case errors.Is(err, models.ErrAlreadyEnrolled):
		statusCode, code = http.StatusConflict, models.ErrCodeAlreadyEnrolled
	case errors.Is(err, models.ErrNotEnrolled):
		statusCode, code = http.StatusConflict, models.ErrCodeNotEnrolled
	case errors.Is(err, models.ErrLimitBelowParticipants):
		statusCode, code = http.StatusConflict, models.ErrCodeLimitBelowParticipants
	case errors.Is(err, models.ErrInvalidTransition):
		statusCode, code = http.StatusConflict, models.ErrCodeInvalidTransition
	case errors.Is(err, models.ErrTrainingInPast):
		statusCode, code = http.StatusConflict, models.ErrCodeTrainingInPast
	case errors.Is(err, models.ErrInvalidTimeRange):
		statusCode, code = http.StatusBadRequest, models.ErrCodeInvalidTimeRange
	case errors.Is(err, models.ErrNotATrainer):
		statusCode, code = http.StatusBadRequest, models.ErrCodeNotATrainer
	case errors.Is(err, models.ErrSelfTraining):
		statusCode, code = http.StatusBadRequest, models.ErrCodeSelfTraining
	case errors.Is(err, models.ErrForbidden):
		statusCode, code = http.StatusForbidden, models.ErrCodeForbidden
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrBadRequest):
		statusCode, code = http.StatusBadRequest, models.ErrCodeBadRequest
	default:
		h.logger.Error("Unhandled internal error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		statusCode, code = http.StatusInternalServerError, models.ErrCodeInternal
	}

	sharedMiddleware.AbortGin(c, h.translator, statusCode, code)
}

// handleBindError отвечает 400; для ошибок validator добавляет details по полям.
func (h *TrainingsHandler) handleBindError(c *gin.Context, err error) {
	locale := sharedMiddleware.LocaleFromGin(c)
	resp := models.ErrorResponse{
		Code:    models.ErrCodeBadRequest,
		Message: h.translator.Message(locale, models.ErrCodeBadRequest),
	}
	if details := h.translator.ValidationDetails(locale, err); details != nil {
		resp.Code = models.ErrCodeValidation
		resp.Message = h.translator.Message(locale, models.ErrCodeValidation)
		resp.Details = details
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, resp)
}
