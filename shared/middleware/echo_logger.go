package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// EchoZapLogger логирует запросы echo через zap. /health и /metrics пропускаются.
func EchoZapLogger(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			if p := req.URL.Path; p == "/health" || p == "/metrics" {
				return next(c)
			}

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			res.Header().Set(echo.HeaderXRequestID, id)

			start := time.Now()
			err := next(c)
			if err != nil {
				// echo сам выставит статус по ошибке
				c.Error(err)
			}

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.String("remote_ip", c.RealIP()),
				zap.String("user_agent", req.UserAgent()),
				zap.String("request_id", id),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
			}
			if userID, ok := EchoUserID(c); ok {
				fields = append(fields, zap.Stringer("user_id", userID))
			}

			n := res.Status
			switch {
			case err != nil && n >= http.StatusInternalServerError:
				log.Error("Handler error", append(fields, zap.Error(err))...)
			case n >= http.StatusInternalServerError:
				log.Error("Server error", fields...)
			case n >= http.StatusBadRequest:
				log.Warn("Client error", fields...)
			default:
				log.Info("Success", fields...)
			}
			return nil
		}
	}
}
