package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"jobly/internal/api/middleware"
	"jobly/internal/logging"
	"jobly/pkg/models"
	"jobly/pkg/utils"
)

// ErrorHandler renders every error returned by a handler or middleware as an
// ErrorResponse. Server-side failures are logged and their details hidden.
func ErrorHandler(logger logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, name, message := describeError(err)
		requestID := middleware.GetRequestID(c)

		if status >= http.StatusInternalServerError {
			logger.WithError(err).Error("Request failed", map[string]interface{}{
				"request_id": requestID,
				"method":     c.Request().Method,
				"path":       c.Path(),
			})
		}

		resp := models.ErrorResponse{
			Error:     name,
			Message:   message,
			Status:    status,
			RequestID: requestID,
			Timestamp: time.Now(),
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, resp)
		}
		if writeErr != nil {
			logger.WithError(writeErr).Warn("Failed to write error response")
		}
	}
}

func describeError(err error) (int, string, string) {
	var ce *utils.CustomError
	if errors.As(err, &ce) {
		if ce.Code >= http.StatusInternalServerError {
			return ce.Code, string(ce.Kind), ce.Message
		}
		return ce.Code, string(ce.Kind), ce.Error()
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			message = m
		}
		return he.Code, errorName(he.Code), message
	}

	return http.StatusInternalServerError, errorName(http.StatusInternalServerError), "Internal server error"
}

func errorName(status int) string {
	switch status {
	case http.StatusBadRequest:
		return string(utils.InvalidArgument)
	case http.StatusUnauthorized:
		return string(utils.Unauthorized)
	case http.StatusNotFound:
		return string(utils.NotFound)
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusRequestEntityTooLarge:
		return "request_too_large"
	case http.StatusTooManyRequests:
		return "rate_limited"
	case http.StatusServiceUnavailable:
		return "service_unavailable"
	}
	if status >= http.StatusInternalServerError {
		return "internal_error"
	}
	return fmt.Sprintf("http_%d", status)
}
