package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ericfaux/gamehost-sub002/internal/booking"
	"github.com/ericfaux/gamehost-sub002/internal/repository"
)

// GuestHandler serves the public booking surface: the availability
// grid, reservation creation, the code+email lookup and guest
// cancellation.  No authentication; abuse is contained by the rate
// limiter and the lookup gate.
type GuestHandler struct {
	Engine *booking.Engine
	Venues *repository.VenueRepo
}

// NewGuestHandler constructs a GuestHandler.  Both dependencies must be
// non-nil.
func NewGuestHandler(engine *booking.Engine, venues *repository.VenueRepo) *GuestHandler {
	if engine == nil || venues == nil {
		panic("nil dependency passed to NewGuestHandler")
	}
	return &GuestHandler{Engine: engine, Venues: venues}
}

// venueID parses and verifies the :id path parameter.
func (h *GuestHandler) venueID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, badRequest(c, "Invalid venue id.")
	}
	v, dbErr := h.Venues.GetByID(c.Request().Context(), id)
	if dbErr != nil {
		return 0, serverError(c)
	}
	if v == nil {
		return 0, notFound(c, "Venue not found.")
	}
	return id, nil
}

// GetAvailability handles GET /v1/venues/:id/availability.  Query
// parameters: date (required), party_size (required), duration_min
// (optional, venue default applies).
func (h *GuestHandler) GetAvailability(c echo.Context) error {
	venueID, err := h.venueID(c)
	if err != nil {
		return err
	}
	date := c.QueryParam("date")
	if date == "" {
		return badRequest(c, "date is required.")
	}
	partySize, convErr := strconv.Atoi(c.QueryParam("party_size"))
	if convErr != nil || partySize <= 0 {
		return badRequest(c, "party_size must be a positive number.")
	}
	durationMin := 0
	if s := c.QueryParam("duration_min"); s != "" {
		if durationMin, convErr = strconv.Atoi(s); convErr != nil || durationMin <= 0 {
			return badRequest(c, "duration_min must be a positive number.")
		}
	}

	slots, bErr := h.Engine.SlotGrid(c.Request().Context(), venueID, date, partySize, durationMin)
	if bErr != nil {
		return failErr(c, bErr)
	}
	return ok(c, http.StatusOK, echo.Map{"date": date, "slots": slots})
}

// CreateReservation handles POST /v1/venues/:id/reservations.
func (h *GuestHandler) CreateReservation(c echo.Context) error {
	venueID, err := h.venueID(c)
	if err != nil {
		return err
	}
	var req booking.CreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body.")
	}
	req.VenueID = venueID

	res, bErr := h.Engine.Create(c.Request().Context(), req)
	if bErr != nil {
		return failErr(c, bErr)
	}
	return ok(c, http.StatusCreated, reservationView(res, false))
}

// Lookup handles POST /v1/venues/:id/reservations/lookup.  The body
// carries the confirmation code and the guest email; the engine
// enforces the attempt gate and returns one generic message for every
// mismatch.
func (h *GuestHandler) Lookup(c echo.Context) error {
	venueID, err := h.venueID(c)
	if err != nil {
		return err
	}
	var body struct {
		Code  string `json:"code"`
		Email string `json:"email"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body.")
	}

	res, bErr := h.Engine.Lookup(c.Request().Context(), venueID, body.Code, body.Email)
	if bErr != nil {
		return failErr(c, bErr)
	}
	return ok(c, http.StatusOK, reservationView(res, false))
}

// CancelByGuest handles POST /v1/venues/:id/reservations/cancel.  The
// booking is resolved through the same gated lookup, then cancelled on
// the guest's behalf.
func (h *GuestHandler) CancelByGuest(c echo.Context) error {
	venueID, err := h.venueID(c)
	if err != nil {
		return err
	}
	var body struct {
		Code   string `json:"code"`
		Email  string `json:"email"`
		Reason string `json:"reason"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body.")
	}

	res, bErr := h.Engine.Lookup(c.Request().Context(), venueID, body.Code, body.Email)
	if bErr != nil {
		return failErr(c, bErr)
	}
	cancelled, bErr := h.Engine.Cancel(c.Request().Context(), res.ID, booking.ActorGuest, body.Reason)
	if bErr != nil {
		return failErr(c, bErr)
	}
	return ok(c, http.StatusOK, reservationView(cancelled, false))
}
