// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ericfaux/gamehost-sub002/internal/booking"
	"github.com/ericfaux/gamehost-sub002/internal/handler"
	"github.com/ericfaux/gamehost-sub002/internal/middleware"
)

// RegisterRoutes registers the unauthenticated infrastructure
// endpoints: health check and the Prometheus scrape target.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers staff login under /v1/auth and the
// token-protected profile endpoint.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	e.POST("/v1/auth/login", a.Login)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("MANAGER", "HOST"))
	auth.GET("/me", a.Me)
}

// RegisterGuest registers the public booking surface.  Reads go through
// the view-tagged response cache; the whole group sits behind the
// token-bucket rate limiter.
func RegisterGuest(e *echo.Echo, g *handler.GuestHandler, limiter, cache echo.MiddlewareFunc) {
	pub := e.Group("/v1/venues/:id")
	if limiter != nil {
		pub.Use(limiter)
	}

	if cache != nil {
		pub.GET("/availability", g.GetAvailability, cache)
	} else {
		pub.GET("/availability", g.GetAvailability)
	}
	pub.POST("/reservations", g.CreateReservation)
	pub.POST("/reservations/lookup", g.Lookup)
	pub.POST("/reservations/cancel", g.CancelByGuest)
}

// RegisterStaff registers the venue-facing surface behind JWT and role
// enforcement.  Both roles can operate bookings; amendments and walk-in
// management are open to hosts as well since the floor staff performs
// them.
func RegisterStaff(e *echo.Echo, s *handler.StaffHandler, sess *handler.SessionHandler, jwtSecret string) {
	staff := e.Group("/v1/staff")
	staff.Use(middleware.JWTAuth(jwtSecret))
	staff.Use(middleware.RequireRole("MANAGER", "HOST"))

	staff.POST("/reservations", s.Create)
	staff.GET("/reservations", s.List)
	staff.GET("/reservations/:id", s.Get)
	staff.PATCH("/reservations/:id", s.Amend)
	staff.POST("/reservations/:id/confirm", s.Confirm)
	staff.POST("/reservations/:id/arrive", s.MarkArrived)
	staff.POST("/reservations/:id/no-show", s.MarkNoShow)
	staff.POST("/reservations/:id/seat", s.Seat)
	staff.POST("/reservations/:id/complete", s.Complete)
	staff.POST("/reservations/:id/cancel", s.Cancel)

	staff.GET("/sessions", sess.List)
	staff.POST("/sessions/:id/end", sess.End)
	staff.POST("/tables/:id/sessions", sess.StartWalkIn)
}

// AvailabilityViewKeys maps a cached availability response onto the
// view keys the engine invalidates when bookings at the venue change.
func AvailabilityViewKeys(c echo.Context) []string {
	venueID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || venueID == 0 {
		return nil
	}
	keys := []string{booking.ViewPage(venueID)}
	if date := c.QueryParam("date"); date != "" {
		keys = append(keys, booking.ViewBookings(venueID, date))
	}
	return keys
}
