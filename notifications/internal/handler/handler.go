package handler

import (
	"errors"
	"net/http"
	"time"

	"gym-server/notifications/internal/service"
	"gym-server/shared/i18n"
	"gym-server/shared/interfaces"
	sharedMiddleware "gym-server/shared/middleware"
	"gym-server/shared/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DevicesHandler - регистрация устройств для push-уведомлений.
type DevicesHandler struct {
	devices    service.DeviceService
	verifier   interfaces.TokenVerifier
	translator *i18n.Translator
	logger     *zap.Logger
}

func NewDevicesHandler(devices service.DeviceService, verifier interfaces.TokenVerifier, translator *i18n.Translator, logger *zap.Logger) *DevicesHandler {
	return &DevicesHandler{
		devices:    devices,
		verifier:   verifier,
		translator: translator,
		logger:     logger.Named("DevicesHandler"),
	}
}

func (h *DevicesHandler) RegisterRoutes(router *gin.Engine) {
	devices := router.Group("/notifications/devices")
	devices.Use(sharedMiddleware.GinAuth(h.verifier, h.translator, h.logger))
	{
		devices.GET("", h.listDevices)
		devices.POST("", h.registerDevice)
		devices.DELETE("", h.unregisterDevice)
	}
}

type registerDeviceRequest struct {
	Token    string `json:"token" binding:"required,max=4096"`
	Platform string `json:"platform" binding:"required,oneof=android ios"`
}

type unregisterDeviceRequest struct {
	Token string `json:"token" binding:"required"`
}

type deviceResponse struct {
	Platform  string `json:"platform"`
	Locale    string `json:"locale"`
	UpdatedAt string `json:"updatedAt"`
}

func (h *DevicesHandler) listDevices(c *gin.Context) {
	userID, ok := sharedMiddleware.GinUserID(c)
	if !ok {
		h.handleServiceError(c, errors.New("context missing user id"))
		return
	}
	devices, err := h.devices.List(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	// сами токены наружу не отдаем
	resp := make([]deviceResponse, 0, len(devices))
	for _, d := range devices {
		resp = append(resp, deviceResponse{Platform: d.Platform, Locale: d.Locale, UpdatedAt: d.UpdatedAt.UTC().Format(time.RFC3339)})
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *DevicesHandler) registerDevice(c *gin.Context) {
	userID, ok := sharedMiddleware.GinUserID(c)
	if !ok {
		h.handleServiceError(c, errors.New("context missing user id"))
		return
	}
	var req registerDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}
	// язык уведомлений = язык клиента на момент регистрации
	locale := sharedMiddleware.LocaleFromGin(c)
	if _, err := h.devices.Register(c.Request.Context(), userID, req.Token, req.Platform, locale); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DevicesHandler) unregisterDevice(c *gin.Context) {
	userID, ok := sharedMiddleware.GinUserID(c)
	if !ok {
		h.handleServiceError(c, errors.New("context missing user id"))
		return
	}
	var req unregisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBindError(c, err)
		return
	}
	if err := h.devices.Unregister(c.Request.Context(), userID, req.Token); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DevicesHandler) handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var code string

	switch {
	case errors.Is(err, models.ErrDeviceTokenNotFound):
		statusCode, code = http.StatusNotFound, models.ErrCodeDeviceTokenNotFound
	case errors.Is(err, models.ErrInvalidInput):
		statusCode, code = http.StatusBadRequest, models.ErrCodeBadRequest
	default:
		h.logger.Error("Unhandled internal error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		statusCode, code = http.StatusInternalServerError, models.ErrCodeInternal
	}

	sharedMiddleware.AbortGin(c, h.translator, statusCode, code)
}

func (h *DevicesHandler) handleBindError(c *gin.Context, err error) {
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
