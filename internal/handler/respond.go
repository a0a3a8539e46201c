// Package handler implements the HTTP surface over the booking engine.
// Every response uses a tagged envelope: {"success":true,"data":...} on
// success, {"success":false,"error":...,"code":...} on failure, where
// code echoes the engine's error kind verbatim.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ericfaux/gamehost-sub002/internal/booking"
)

func ok(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

func fail(c echo.Context, status int, kind booking.ErrorKind, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "error": msg, "code": string(kind)})
}

// failErr maps an engine error onto its HTTP status.  TooEarly covers
// both the lookup throttle and premature no-show calls; both read as
// "retry later", hence 429.
func failErr(c echo.Context, err *booking.Error) error {
	status := http.StatusInternalServerError
	switch err.Kind {
	case booking.KindValidation:
		status = http.StatusBadRequest
	case booking.KindNotFound:
		status = http.StatusNotFound
	case booking.KindConflict, booking.KindCapacity, booking.KindInvalidTransition:
		status = http.StatusConflict
	case booking.KindTooEarly:
		status = http.StatusTooManyRequests
	case booking.KindUnauthorized:
		status = http.StatusUnauthorized
	}
	return fail(c, status, err.Kind, err.Message)
}

func badRequest(c echo.Context, msg string) error {
	return fail(c, http.StatusBadRequest, booking.KindValidation, msg)
}

func notFound(c echo.Context, msg string) error {
	return fail(c, http.StatusNotFound, booking.KindNotFound, msg)
}

func serverError(c echo.Context) error {
	return fail(c, http.StatusInternalServerError, booking.KindUnknown,
		"An unexpected error occurred. Please try again.")
}
