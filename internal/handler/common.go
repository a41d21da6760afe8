package handler // handler implements the HTTP layer of the film-log API

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// fail writes the failure envelope shared by every endpoint: a false status
// plus a Portuguese error message, matching the API's established surface.
func fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, echo.Map{"status": false, "error": msg})
}

// parseID parses a numeric path parameter.  Non-numeric ids are reported as
// a bad request before any repository work happens.
func parseID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// Health is a plain health check for load balancers and monitoring.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Index answers the API root with a greeting, kept from the first revision
// of the service.
func Index(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": true, "msg": "Hello World!"})
}
