package handler

import (
	"errors"
	"net/http"

	sharedMiddleware "gym-server/shared/middleware"
	"gym-server/shared/models"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (h *GymPassHandler) handleServiceError(c echo.Context, err error) error {
	var statusCode int
	var code string

	switch {
	case errors.Is(err, models.ErrOfferNotFound):
		statusCode, code = http.StatusNotFound, models.ErrCodeOfferNotFound
	case errors.Is(err, models.ErrGymPassNotFound):
		statusCode, code = http.StatusNotFound, models.ErrCodeGymPassNotFound
	case errors.Is(err, models.ErrOfferTitleTaken):
		statusCode, code = http.StatusConflict, models.ErrCodeOfferTitleTaken
	case errors.Is(err, models.ErrGymPassNotStarted):
		statusCode, code = http.StatusConflict, models.ErrCodeGymPassNotStarted
	case errors.Is(err, models.ErrGymPassExpired):
		statusCode, code = http.StatusConflict, models.ErrCodeGymPassExpired
	case errors.Is(err, models.ErrGymPassSuspended):
		statusCode, code = http.StatusConflict, models.ErrCodeGymPassSuspended
	case errors.Is(err, models.ErrGymPassNoEntries):
		statusCode, code = http.StatusConflict, models.ErrCodeGymPassNoEntries
	case errors.Is(err, models.ErrGymPassNotTimeLimited):
		statusCode, code = http.StatusConflict, models.ErrCodeGymPassNotTimeLimited
	case errors.Is(err, models.ErrInvalidSuspensionDate):
		statusCode, code = http.StatusBadRequest, models.ErrCodeInvalidSuspensionDate
	case errors.Is(err, models.ErrInvalidStartDate):
		statusCode, code = http.StatusBadRequest, models.ErrCodeInvalidStartDate
	case errors.Is(err, models.ErrForbidden):
		statusCode, code = http.StatusForbidden, models.ErrCodeForbidden
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrBadRequest):
		statusCode, code = http.StatusBadRequest, models.ErrCodeBadRequest
	default:
		h.logger.Error("Unhandled internal error", zap.Error(err), zap.String("path", c.Request().URL.Path))
		statusCode, code = http.StatusInternalServerError, models.ErrCodeInternal
	}

	return sharedMiddleware.EchoError(c, h.translator, statusCode, code)
}

// handleBindError отвечает 400; для ошибок validator добавляет details по полям.
func (h *GymPassHandler) handleBindError(c echo.Context, err error) error {
	locale := sharedMiddleware.LocaleFromEcho(c)
	resp := models.ErrorResponse{
		Code:    models.ErrCodeBadRequest,
		Message: h.translator.Message(locale, models.ErrCodeBadRequest),
	}
	if details := h.translator.ValidationDetails(locale, err); details != nil {
		resp.Code = models.ErrCodeValidation
		resp.Message = h.translator.Message(locale, models.ErrCodeValidation)
		resp.Details = details
	}
	return c.JSON(http.StatusBadRequest, resp)
}

func (h *GymPassHandler) badRequest(c echo.Context) error {
	return sharedMiddleware.EchoError(c, h.translator, http.StatusBadRequest, models.ErrCodeBadRequest)
}
