package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ericfaux/gamehost-sub002/internal/booking"
	"github.com/ericfaux/gamehost-sub002/internal/middleware"
	"github.com/ericfaux/gamehost-sub002/internal/repository"
)

// SessionHandler serves the live-floor surface: open sessions, walk-in
// seating and ending a session (which completes any linked booking).
type SessionHandler struct {
	Engine   *booking.Engine
	Sessions *repository.SessionRepo
}

// NewSessionHandler constructs a SessionHandler.  Both dependencies
// must be non-nil.
func NewSessionHandler(engine *booking.Engine, sessions *repository.SessionRepo) *SessionHandler {
	if engine == nil || sessions == nil {
		panic("nil dependency passed to NewSessionHandler")
	}
	return &SessionHandler{Engine: engine, Sessions: sessions}
}

// List handles GET /v1/staff/sessions and returns the venue's open
// sessions.
func (h *SessionHandler) List(c echo.Context) error {
	list, err := h.Sessions.ListOpenByVenue(c.Request().Context(), middleware.StaffVenueID(c))
	if err != nil {
		return serverError(c)
	}
	out := make([]echo.Map, 0, len(list))
	for i := range list {
		out = append(out, sessionView(&list[i]))
	}
	return ok(c, http.StatusOK, echo.Map{"sessions": out})
}

// StartWalkIn handles POST /v1/staff/tables/:id/sessions and opens a
// session for a party without a reservation.
func (h *SessionHandler) StartWalkIn(c echo.Context) error {
	tableID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || tableID == 0 {
		return badRequest(c, "Invalid table id.")
	}
	var body struct {
		GameID *uint64 `json:"game_id,omitempty"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body.")
	}

	session, bErr := h.Engine.StartWalkIn(c.Request().Context(), middleware.StaffVenueID(c), tableID, body.GameID)
	if bErr != nil {
		return failErr(c, bErr)
	}
	return ok(c, http.StatusCreated, sessionView(session))
}

// End handles POST /v1/staff/sessions/:id/end.  Ending a session that
// seated a booking also completes that booking.
func (h *SessionHandler) End(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return badRequest(c, "Invalid session id.")
	}
	session, dbErr := h.Sessions.GetByID(c.Request().Context(), id)
	if dbErr != nil {
		return serverError(c)
	}
	if session == nil || session.VenueID != middleware.StaffVenueID(c) {
		return notFound(c, "Session not found.")
	}

	ended, bErr := h.Engine.EndSession(c.Request().Context(), id)
	if bErr != nil {
		return failErr(c, bErr)
	}
	return ok(c, http.StatusOK, sessionView(ended))
}
