package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"jobly/internal/auth"
	"jobly/pkg/utils"
)

// UserKey is the echo context key holding the authenticated user
const UserKey = "user"

// AuthenticateJWT reads a bearer token and, when it verifies, stores the
// user on the context. A missing or bad token is not an error here; routes
// that need an admin add EnsureAdmin.
func AuthenticateJWT(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if found && token != "" {
				if claims, err := auth.ParseToken(strings.TrimSpace(token), secret); err == nil {
					c.Set(UserKey, &auth.User{Username: claims.Username, IsAdmin: claims.IsAdmin})
				}
			}
			return next(c)
		}
	}
}

// CurrentUser returns the user set by AuthenticateJWT, or nil
func CurrentUser(c echo.Context) *auth.User {
	user, _ := c.Get(UserKey).(*auth.User)
	return user
}

// EnsureAdmin rejects requests unless the token belongs to an admin
func EnsureAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil || !user.IsAdmin {
				return utils.NewUnauthorizedError()
			}
			return next(c)
		}
	}
}
