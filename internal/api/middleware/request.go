package middleware

import (
	"github.com/labstack/echo/v4"

	"jobly/pkg/utils"
)

// RequestIDKey is the echo context key holding the request id
const RequestIDKey = "request_id"

// RequestID tags every request with an id, reusing the caller's X-Request-ID
// when one is supplied.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = utils.GenerateRequestID()
			}
			c.Set(RequestIDKey, requestID)
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			return next(c)
		}
	}
}

// GetRequestID returns the id assigned by RequestID, if any
func GetRequestID(c echo.Context) string {
	id, _ := c.Get(RequestIDKey).(string)
	return id
}
