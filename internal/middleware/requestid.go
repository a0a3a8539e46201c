package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ericfaux/gamehost-sub002/internal/logger"
)

// RequestID assigns each request a UUID, echoes it in the X-Request-ID
// header and logs one structured line per request on completion.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get("X-Request-ID")
			if id == "" {
				id = logger.NewRequestID()
			}
			c.Set("request_id", id)
			c.Response().Header().Set("X-Request-ID", id)

			start := time.Now()
			err := next(c)
			logger.WithRequestID(id).Info("request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
				"ip", c.RealIP())
			return err
		}
	}
}
