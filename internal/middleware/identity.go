package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// StaffID returns the authenticated staff member's user ID, or 0 when
// the request is unauthenticated.
func StaffID(c echo.Context) uint64 {
	if v, ok := c.Get("user_id").(uint64); ok {
		return v
	}
	return 0
}

// StaffVenueID returns the venue the authenticated staff member belongs
// to, or 0 when the request is unauthenticated.
func StaffVenueID(c echo.Context) uint64 {
	if v, ok := c.Get("venue_id").(uint64); ok {
		return v
	}
	return 0
}

// StaffRole returns the authenticated role, or "" when absent.
func StaffRole(c echo.Context) string {
	if v, ok := c.Get("role").(string); ok {
		return v
	}
	return ""
}

// currentUserID renders the identity for rate-limit key building:
// the staff ID when authenticated, "anon" otherwise.
func currentUserID(c echo.Context) string {
	if id := StaffID(c); id != 0 {
		return strconv.FormatUint(id, 10)
	}
	return "anon"
}
