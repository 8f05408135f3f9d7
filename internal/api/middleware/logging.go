package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"jobly/internal/logging"
)

// RequestLogger logs one line per request once the handler has finished
func RequestLogger(logger logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// let the error handler write the status before it is logged
				c.Error(err)
			}

			req := c.Request()
			fields := map[string]interface{}{
				"request_id":      GetRequestID(c),
				"method":          req.Method,
				"path":            c.Path(),
				"uri":             req.RequestURI,
				"status":          c.Response().Status,
				"processing_time": time.Since(start).String(),
				"remote_ip":       c.RealIP(),
			}

			switch {
			case err != nil && c.Response().Status >= 500:
				logger.WithError(err).Error("Request failed", fields)
			case err != nil:
				logger.WithError(err).Warn("Request rejected", fields)
			default:
				logger.Info("Request completed", fields)
			}

			return nil
		}
	}
}
