package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ericfaux/gamehost-sub002/internal/booking"
	"github.com/ericfaux/gamehost-sub002/internal/middleware"
	"github.com/ericfaux/gamehost-sub002/internal/model"
	"github.com/ericfaux/gamehost-sub002/internal/repository"
)

// StaffHandler serves the venue-facing booking surface.  Every method
// scopes to the venue carried in the access token; a booking belonging
// to another venue renders as not found so IDs don't leak.
type StaffHandler struct {
	Engine       *booking.Engine
	Reservations *repository.ReservationRepo
}

// NewStaffHandler constructs a StaffHandler.  Both dependencies must be
// non-nil.
func NewStaffHandler(engine *booking.Engine, reservations *repository.ReservationRepo) *StaffHandler {
	if engine == nil || reservations == nil {
		panic("nil dependency passed to NewStaffHandler")
	}
	return &StaffHandler{Engine: engine, Reservations: reservations}
}

// owned resolves the :id path parameter into a reservation at the
// caller's venue.  It writes the error response itself and returns nil
// when the caller should stop.
func (h *StaffHandler) owned(c echo.Context) (*model.Reservation, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return nil, badRequest(c, "Invalid reservation id.")
	}
	r, bErr := h.Engine.Get(c.Request().Context(), id)
	if bErr != nil {
		return nil, failErr(c, bErr)
	}
	if r.VenueID != middleware.StaffVenueID(c) {
		return nil, notFound(c, "Reservation not found.")
	}
	return r, nil
}

// Create handles POST /v1/staff/reservations.  Unlike the guest flow
// the staff note and creator are recorded.
func (h *StaffHandler) Create(c echo.Context) error {
	var body struct {
		booking.CreateRequest
		StaffNote string `json:"staff_note"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body.")
	}
	req := body.CreateRequest
	req.VenueID = middleware.StaffVenueID(c)
	req.StaffNote = body.StaffNote
	staffID := middleware.StaffID(c)
	req.CreatedBy = &staffID

	res, bErr := h.Engine.Create(c.Request().Context(), req)
	if bErr != nil {
		return failErr(c, bErr)
	}
	return ok(c, http.StatusCreated, reservationView(res, true))
}

// List handles GET /v1/staff/reservations?date=YYYY-MM-DD.  It returns
// every booking on the date, terminal statuses included, in start-time
// order.
func (h *StaffHandler) List(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return badRequest(c, "date is required.")
	}
	list, err := h.Reservations.ListByVenueDate(c.Request().Context(), middleware.StaffVenueID(c), date)
	if err != nil {
		return serverError(c)
	}
	out := make([]echo.Map, 0, len(list))
	for i := range list {
		out = append(out, reservationView(&list[i], true))
	}
	return ok(c, http.StatusOK, echo.Map{"date": date, "reservations": out})
}

// Get handles GET /v1/staff/reservations/:id.
func (h *StaffHandler) Get(c echo.Context) error {
	r, err := h.owned(c)
	if r == nil {
		return err
	}
	return ok(c, http.StatusOK, reservationView(r, true))
}

// Amend handles PATCH /v1/staff/reservations/:id with a partial update.
func (h *StaffHandler) Amend(c echo.Context) error {
	r, err := h.owned(c)
	if r == nil {
		return err
	}
	var req booking.AmendRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body.")
	}
	res, bErr := h.Engine.Amend(c.Request().Context(), r.ID, req)
	if bErr != nil {
		return failErr(c, bErr)
	}
	return ok(c, http.StatusOK, reservationView(res, true))
}

// Confirm handles POST /v1/staff/reservations/:id/confirm.
func (h *StaffHandler) Confirm(c echo.Context) error {
	return h.simpleTransition(c, h.Engine.Confirm)
}

// MarkArrived handles POST /v1/staff/reservations/:id/arrive.
func (h *StaffHandler) MarkArrived(c echo.Context) error {
	return h.simpleTransition(c, h.Engine.MarkArrived)
}

// MarkNoShow handles POST /v1/staff/reservations/:id/no-show.  The
// engine rejects the call while the grace period is still running.
func (h *StaffHandler) MarkNoShow(c echo.Context) error {
	return h.simpleTransition(c, h.Engine.MarkNoShow)
}

// Complete handles POST /v1/staff/reservations/:id/complete.
func (h *StaffHandler) Complete(c echo.Context) error {
	return h.simpleTransition(c, h.Engine.Complete)
}

func (h *StaffHandler) simpleTransition(c echo.Context, op func(ctx context.Context, id uint64) (*model.Reservation, *booking.Error)) error {
	r, err := h.owned(c)
	if r == nil {
		return err
	}
	res, bErr := op(c.Request().Context(), r.ID)
	if bErr != nil {
		return failErr(c, bErr)
	}
	return ok(c, http.StatusOK, reservationView(res, true))
}

// Cancel handles POST /v1/staff/reservations/:id/cancel.
func (h *StaffHandler) Cancel(c echo.Context) error {
	r, err := h.owned(c)
	if r == nil {
		return err
	}
	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.Bind(&body)
	res, bErr := h.Engine.Cancel(c.Request().Context(), r.ID, booking.ActorVenue, body.Reason)
	if bErr != nil {
		return failErr(c, bErr)
	}
	return ok(c, http.StatusOK, reservationView(res, true))
}

// Seat handles POST /v1/staff/reservations/:id/seat and bridges the
// booking into a live table session.  A non-empty warning in the
// response flags an early seating; the operation still succeeded.
func (h *StaffHandler) Seat(c echo.Context) error {
	r, err := h.owned(c)
	if r == nil {
		return err
	}
	result, bErr := h.Engine.SeatParty(c.Request().Context(), r.ID)
	if bErr != nil {
		return failErr(c, bErr)
	}
	return ok(c, http.StatusOK, echo.Map{
		"reservation": reservationView(result.Reservation, true),
		"session":     sessionView(result.Session),
		"warning":     result.Warning,
	})
}
