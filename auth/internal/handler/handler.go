package handler

import (
	"gym-server/auth/internal/config"
	"gym-server/auth/internal/service"
	"gym-server/shared/i18n"
	"gym-server/shared/interfaces"
	sharedMiddleware "gym-server/shared/middleware"
	"gym-server/shared/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles HTTP requests of the auth service.
type AuthHandler struct {
	authService      service.AuthService
	translator       *i18n.Translator
	internalVerifier interfaces.TokenVerifier
	cfg              *config.Config
	logger           *zap.Logger
}

// NewAuthHandler создает обработчик. internalVerifier проверяет межсервисные JWT.
func NewAuthHandler(
	authService service.AuthService,
	translator *i18n.Translator,
	internalVerifier interfaces.TokenVerifier,
	cfg *config.Config,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService:      authService,
		translator:       translator,
		internalVerifier: internalVerifier,
		cfg:              cfg,
		logger:           logger.Named("AuthHandler"),
	}
}

// RegisterRoutes регистрирует маршруты. rateLimit применяется к /auth/register и /auth/login.
func (h *AuthHandler) RegisterRoutes(router *gin.Engine, rateLimit gin.HandlerFunc) {
	if rateLimit == nil {
		rateLimit = func(c *gin.Context) { c.Next() }
	}

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", rateLimit, h.register)
		authGroup.GET("/confirm", h.confirm)
		authGroup.POST("/login", rateLimit, h.login)
		authGroup.POST("/refresh", h.refresh)
		authGroup.POST("/logout", h.AuthMiddleware(), h.logout)
		authGroup.POST("/token/verify", h.verify)
	}

	protected := router.Group("/api")
	protected.Use(h.AuthMiddleware())
	{
		protected.GET("/me", h.getMe)
		protected.PUT("/me/password", h.changePassword)
	}

	admin := router.Group("/admin")
	admin.Use(h.AuthMiddleware(), sharedMiddleware.GinRequireRoles(h.translator, models.RoleAdmin))
	{
		admin.GET("/users", h.listUsers)
		admin.PUT("/users/:user_id/roles", h.updateRoles)
		admin.POST("/users/:user_id/ban", h.banUser)
		admin.DELETE("/users/:user_id/ban", h.unbanUser)
	}

	interServiceGroup := router.Group("/internal/auth")
	interServiceGroup.Use(sharedMiddleware.GinInternalAuth(h.cfg.InterServiceSecret, h.internalVerifier, h.translator, h.logger))
	{
		interServiceGroup.POST("/token/generate", h.generateInterServiceToken)
		interServiceGroup.POST("/token/verify", h.verifyInterServiceToken)
		interServiceGroup.GET("/users/:user_id", h.getUserDetails)
	}
}
