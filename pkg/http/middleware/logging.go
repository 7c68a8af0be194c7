package middleware

import (
	"time"

	"CryptoVision/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs each HTTP request with method, path, status, latency.
func RequestLogging(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			log.Info("http request",
				logger.String("method", c.Request().Method),
				logger.String("path", c.Request().URL.Path),
				logger.Int("status", c.Response().Status),
				logger.Duration("latency", time.Since(start)),
			)

			return err
		}
	}
}
