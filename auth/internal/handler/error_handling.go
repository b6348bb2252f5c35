package handler

import (
	"errors"
	"net/http"

	"gym-server/shared/i18n"
	sharedMiddleware "gym-server/shared/middleware"
	"gym-server/shared/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *AuthHandler) handleServiceError(c *gin.Context, err error) {
	handleServiceError(c, h.translator, err)
}

func handleServiceError(c *gin.Context, translator *i18n.Translator, err error) {
	var statusCode int
	var code string

	switch {
	case errors.Is(err, models.ErrInvalidCredentials):
		statusCode, code = http.StatusUnauthorized, models.ErrCodeWrongCredentials
	case errors.Is(err, models.ErrUserNotEnabled):
		statusCode, code = http.StatusForbidden, models.ErrCodeUserNotEnabled
	case errors.Is(err, models.ErrUserBanned):
		statusCode, code = http.StatusForbidden, models.ErrCodeUserBanned
	case errors.Is(err, models.ErrEmailAlreadyExists):
		statusCode, code = http.StatusConflict, models.ErrCodeDuplicateEmail
	case errors.Is(err, models.ErrUserNotFound):
		statusCode, code = http.StatusNotFound, models.ErrCodeUserNotFound
	case errors.Is(err, models.ErrTokenExpired):
		statusCode, code = http.StatusUnauthorized, models.ErrCodeTokenExpired
	case errors.Is(err, models.ErrTokenInvalid), errors.Is(err, models.ErrTokenMalformed):
		statusCode, code = http.StatusUnauthorized, models.ErrCodeTokenInvalid
	case errors.Is(err, models.ErrTokenNotFound):
		statusCode, code = http.StatusUnauthorized, models.ErrCodeTokenNotFound
	case errors.Is(err, models.ErrForbidden):
		statusCode, code = http.StatusForbidden, models.ErrCodeForbidden
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrBadRequest):
		statusCode, code = http.StatusBadRequest, models.ErrCodeBadRequest
	default:
		zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err), zap.String("path", c.Request.URL.Path))
		statusCode, code = http.StatusInternalServerError, models.ErrCodeInternal
	}

	sharedMiddleware.AbortGin(c, translator, statusCode, code)
}

// handleBindError отвечает 400 с локализованными ошибками по полям.
func (h *AuthHandler) handleBindError(c *gin.Context, err error) {
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
