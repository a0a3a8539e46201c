// Package middleware provides the HTTP middleware chain: staff JWT
// authentication, role enforcement, the Redis token-bucket rate limiter
// for the public surface, the view-tagged response cache, request IDs
// and Prometheus instrumentation.
package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the staff identity into the request context under
// "user_id", "venue_id" and "role".  The secret must match the one the
// login handler signs with.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, authError("missing bearer token"))
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, authError("invalid token"))
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, authError("invalid claims"))
			}

			c.Set("user_id", claimUint64(claims, "sub"))
			c.Set("venue_id", claimUint64(claims, "venue"))
			if role, ok := claims["role"].(string); ok {
				c.Set("role", role)
			}
			return next(c)
		}
	}
}

// claimUint64 reads a numeric claim.  JSON numbers decode as float64;
// tokens we issued ourselves always fit.
func claimUint64(claims jwt.MapClaims, key string) uint64 {
	if f, ok := claims[key].(float64); ok && f > 0 {
		return uint64(f)
	}
	return 0
}

func authError(msg string) echo.Map {
	return echo.Map{
		"success": false,
		"error":   msg,
		"code":    "Unauthorized",
	}
}
