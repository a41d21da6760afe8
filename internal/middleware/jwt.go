package middleware // middleware contains reusable HTTP middleware for the API

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cartacaixa/filmlog/internal/utils"
)

// Context keys under which RequireToken stores the decoded identity.  The
// values are typed (uint64 and bool) so downstream consumers never deal with
// raw claim maps.
const (
	CtxUserID  = "user_id"
	CtxEhAdmin = "eh_admin"
)

// RequireToken returns an Echo middleware that validates the access token
// carried in the Authorization header and injects the decoded identity into
// the request context.  A missing header yields 401 with a distinct message
// from an invalid or expired token.  The "Bearer " prefix is optional: some
// clients send the raw token value, and both forms are accepted.
func RequireToken(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get("Authorization")
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"status": false, "error": "Token não fornecido.",
				})
			}
			raw = strings.TrimPrefix(raw, "Bearer ")

			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"status": false, "error": "Token inválido ou expirado.",
				})
			}

			// Attach the identity for handlers and RequireAdmin.
			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxEhAdmin, claims.EhAdmin)
			return next(c)
		}
	}
}

// UserID extracts the authenticated user id stored by RequireToken.  The
// boolean is false when the request never passed the token gate.
func UserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(CtxUserID).(uint64)
	return id, ok
}

// IsAdmin reports the admin flag stored by RequireToken.
func IsAdmin(c echo.Context) bool {
	admin, _ := c.Get(CtxEhAdmin).(bool)
	return admin
}
