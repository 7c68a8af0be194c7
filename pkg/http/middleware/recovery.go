package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"CryptoVision/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Recover returns recovery middleware. A panic in a handler becomes a 500
// response instead of tearing down the connection.
func Recover(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("%v", r)
					}
					log.Error("panic recovered",
						logger.Error(err),
						logger.String("stack", string(debug.Stack())),
					)
					_ = c.JSON(http.StatusInternalServerError, map[string]interface{}{
						"success": false,
						"error":   "Internal Server Error",
					})
				}
			}()
			return next(c)
		}
	}
}
