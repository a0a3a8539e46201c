package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole enforces that the authenticated staff member holds one of
// the given roles.  It assumes JWTAuth already ran and stored the role
// claim in the context; missing or unknown roles are rejected with 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !allowed[StaffRole(c)] {
				return c.JSON(http.StatusForbidden, echo.Map{
					"success": false,
					"error":   "forbidden",
					"code":    "Unauthorized",
				})
			}
			return next(c)
		}
	}
}
