package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAdmin returns a middleware that rejects non-admin identities with
// 403.  It must run after RequireToken: the identity has to be in the
// context already.  Registering it on a route without the token gate is a
// programming error, and the middleware panics in that case rather than
// letting an unauthenticated request through.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v := c.Get(CtxEhAdmin)
			if v == nil {
				panic("RequireAdmin registered without RequireToken")
			}
			if admin, ok := v.(bool); !ok || !admin {
				return c.JSON(http.StatusForbidden, echo.Map{
					"status": false, "error": "Negado. Acesso permitido apenas para admins.",
				})
			}
			return next(c)
		}
	}
}
