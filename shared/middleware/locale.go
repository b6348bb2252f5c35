package middleware

import (
	"context"

	"gym-server/shared/i18n"
	"gym-server/shared/models"

	"github.com/gin-gonic/gin"
	"github.com/labstack/echo/v4"
)

// Localizer возвращает текст сообщения для кода ошибки в нужной локали.
type Localizer interface {
	Message(locale, code string, params ...string) string
}

// GinLocale определяет локаль ответа по Accept-Language.
func GinLocale() gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := i18n.ParseAcceptLanguage(c.GetHeader("Accept-Language"))
		c.Set(models.CtxKeyLocale, locale)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), models.LocaleContextKey, locale))
		c.Header("Content-Language", locale)
		c.Next()
	}
}

// EchoLocale - то же для echo.
func EchoLocale() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			locale := i18n.ParseAcceptLanguage(c.Request().Header.Get("Accept-Language"))
			c.Set(models.CtxKeyLocale, locale)
			c.Response().Header().Set("Content-Language", locale)
			return next(c)
		}
	}
}

// LocaleFromGin возвращает локаль, выставленную GinLocale, или локаль по умолчанию.
func LocaleFromGin(c *gin.Context) string {
	if locale := c.GetString(models.CtxKeyLocale); locale != "" {
		return locale
	}
	return i18n.ParseAcceptLanguage(c.GetHeader("Accept-Language"))
}

func LocaleFromEcho(c echo.Context) string {
	if locale, ok := c.Get(models.CtxKeyLocale).(string); ok && locale != "" {
		return locale
	}
	return i18n.ParseAcceptLanguage(c.Request().Header.Get("Accept-Language"))
}

// AbortGin прерывает запрос с локализованной ошибкой.
func AbortGin(c *gin.Context, loc Localizer, status int, code string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Code:    code,
		Message: loc.Message(LocaleFromGin(c), code),
	})
}

// EchoError отвечает локализованной ошибкой.
func EchoError(c echo.Context, loc Localizer, status int, code string) error {
	return c.JSON(status, models.ErrorResponse{
		Code:    code,
		Message: loc.Message(LocaleFromEcho(c), code),
	})
}
