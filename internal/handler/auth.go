package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ericfaux/gamehost-sub002/internal/booking"
	"github.com/ericfaux/gamehost-sub002/internal/middleware"
	"github.com/ericfaux/gamehost-sub002/internal/repository"
	"github.com/ericfaux/gamehost-sub002/internal/utils"
)

// AuthHandler issues staff access tokens.  Guests never authenticate;
// their self-service flows are gated by confirmation code and email.
type AuthHandler struct {
	Users        *repository.UserRepo
	JWTSecret    string
	AccessTTLMin int
}

// NewAuthHandler constructs an AuthHandler.  The user repository must
// be non-nil.
func NewAuthHandler(users *repository.UserRepo, jwtSecret string, accessTTLMin int) *AuthHandler {
	if users == nil {
		panic("nil repository passed to NewAuthHandler")
	}
	return &AuthHandler{Users: users, JWTSecret: jwtSecret, AccessTTLMin: accessTTLMin}
}

// Login handles POST /v1/auth/login.  A single generic message covers
// both unknown email and wrong password.
func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body.")
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))
	if email == "" || body.Password == "" {
		return badRequest(c, "Email and password are required.")
	}

	user, err := h.Users.GetByEmail(c.Request().Context(), email)
	if err != nil {
		return serverError(c)
	}
	if user == nil || !utils.VerifyPassword(user.PasswordHash, body.Password) {
		return fail(c, http.StatusUnauthorized, booking.KindUnauthorized, "Invalid email or password.")
	}

	tok, err := utils.NewAccessToken(h.JWTSecret, user.ID, user.VenueID, user.Role, h.AccessTTLMin)
	if err != nil {
		return serverError(c)
	}
	return ok(c, http.StatusOK, echo.Map{
		"access_token": tok.Token,
		"expires_at":   tok.Exp,
		"role":         user.Role,
		"venue_id":     user.VenueID,
	})
}

// Me handles GET /v1/me and returns the authenticated staff profile.
func (h *AuthHandler) Me(c echo.Context) error {
	id := middleware.StaffID(c)
	if id == 0 {
		return fail(c, http.StatusUnauthorized, booking.KindUnauthorized, "unauthorized")
	}
	user, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		return serverError(c)
	}
	if user == nil {
		return notFound(c, "User not found.")
	}
	return ok(c, http.StatusOK, echo.Map{
		"id":       user.ID,
		"email":    user.Email,
		"role":     user.Role,
		"venue_id": user.VenueID,
	})
}
