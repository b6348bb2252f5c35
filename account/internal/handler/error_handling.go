package handler

import (
	"errors"
	"net/http"

	sharedMiddleware "gym-server/shared/middleware"
	"gym-server/shared/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *AccountHandler) handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var code string

	switch {
	case errors.Is(err, models.ErrProfileNotFound):
		statusCode, code = http.StatusNotFound, models.ErrCodeProfileNotFound
	case errors.Is(err, models.ErrTrainerNotFound):
		statusCode, code = http.StatusNotFound, models.ErrCodeTrainerNotFound
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

func (h *AccountHandler) handleBindError(c *gin.Context, err error) {
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
