package booking

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/ericfaux/gamehost-sub002/internal/model"
)

// Actor identifies who initiates a cancellation; the target state
// depends on it.
type Actor string

const (
	ActorGuest Actor = "guest"
	ActorVenue Actor = "venue"
)

// Get fetches a reservation by ID.
func (e *Engine) Get(ctx context.Context, id uint64) (*model.Reservation, *Error) {
	r, err := e.Reservations.GetByID(ctx, id)
	if err != nil {
		return nil, unknown("get", err)
	}
	if r == nil {
		return nil, errf(KindNotFound, "Booking not found.")
	}
	return r, nil
}

// transition re-fetches the reservation, consults the guard table and,
// when the edge is legal, applies stamp and persists.  Every simple
// status change funnels through here so the table stays the single
// source of legality.
func (e *Engine) transition(ctx context.Context, id uint64, to model.Status, stamp func(*model.Reservation, time.Time)) (*model.Reservation, *Error) {
	r, bErr := e.Get(ctx, id)
	if bErr != nil {
		return nil, bErr
	}
	if !e.canTransition(r.Status, to) {
		return nil, invalidTransition(r.Status)
	}
	now := e.now()
	r.Status = to
	if stamp != nil {
		stamp(r, now)
	}
	if err := e.Reservations.Update(ctx, r); err != nil {
		return nil, unknown("transition", err)
	}
	e.invalidate(ctx, ViewBookings(r.VenueID, r.Date), ViewPage(r.VenueID))
	return r, nil
}

// Confirm moves a pending booking to confirmed.
func (e *Engine) Confirm(ctx context.Context, id uint64) (*model.Reservation, *Error) {
	r, err := e.transition(ctx, id, model.StatusConfirmed, func(r *model.Reservation, now time.Time) {
		r.ConfirmedAt = &now
	})
	if err != nil {
		return nil, err
	}
	e.publish(ctx, evConfirmed, r)
	return r, nil
}

// MarkArrived records that the guest has checked in.
func (e *Engine) MarkArrived(ctx context.Context, id uint64) (*model.Reservation, *Error) {
	return e.transition(ctx, id, model.StatusArrived, func(r *model.Reservation, now time.Time) {
		r.ArrivedAt = &now
	})
}

// Complete closes out a seated booking.
func (e *Engine) Complete(ctx context.Context, id uint64) (*model.Reservation, *Error) {
	r, err := e.transition(ctx, id, model.StatusCompleted, func(r *model.Reservation, now time.Time) {
		r.CompletedAt = &now
	})
	if err != nil {
		return nil, err
	}
	e.publish(ctx, evCompleted, r)
	return r, nil
}

// Cancel cancels a booking on behalf of the given actor.  A booking
// already in a terminal state gets a distinct "already closed" message
// rather than the generic invalid-transition one, since that is the
// common double-click case.
func (e *Engine) Cancel(ctx context.Context, id uint64, actor Actor, reason string) (*model.Reservation, *Error) {
	r, bErr := e.Get(ctx, id)
	if bErr != nil {
		return nil, bErr
	}
	if r.Status.IsTerminal() {
		return nil, errf(KindInvalidTransition, "This booking is already cancelled or completed.")
	}
	target := model.StatusCancelledByVenue
	if actor == ActorGuest {
		target = model.StatusCancelledByGuest
	}
	if !e.canTransition(r.Status, target) {
		return nil, invalidTransition(r.Status)
	}
	now := e.now()
	r.Status = target
	r.CancelledAt = &now
	if v := strings.TrimSpace(reason); v != "" {
		r.CancelReason = &v
	}
	if err := e.Reservations.Update(ctx, r); err != nil {
		return nil, unknown("cancel", err)
	}
	e.invalidate(ctx, ViewBookings(r.VenueID, r.Date), ViewPage(r.VenueID))
	e.publish(ctx, evCancelled, r)
	return r, nil
}

// MarkNoShow marks a booking as a no-show, but only once the venue's
// grace period past the scheduled start has fully elapsed.  At exactly
// start+grace the determination is permitted.
func (e *Engine) MarkNoShow(ctx context.Context, id uint64) (*model.Reservation, *Error) {
	r, bErr := e.Get(ctx, id)
	if bErr != nil {
		return nil, bErr
	}
	if !e.canTransition(r.Status, model.StatusNoShow) {
		return nil, invalidTransition(r.Status)
	}
	st, err := e.Settings.GetOrCreate(ctx, r.VenueID)
	if err != nil {
		return nil, unknown("no_show", err)
	}
	start, err := startAt(r.Date, r.StartTime)
	if err != nil {
		return nil, unknown("no_show", err)
	}
	deadline := start.Add(time.Duration(st.NoShowGraceMin) * time.Minute)
	now := e.now()
	if now.Before(deadline) {
		remaining := int(math.Ceil(deadline.Sub(now).Minutes()))
		return nil, errf(KindTooEarly, "Too early to mark a no-show: %d more minutes of grace period remain.", remaining)
	}
	r.Status = model.StatusNoShow
	r.NoShowAt = &now
	if err := e.Reservations.Update(ctx, r); err != nil {
		return nil, unknown("no_show", err)
	}
	e.invalidate(ctx, ViewBookings(r.VenueID, r.Date), ViewPage(r.VenueID))
	return r, nil
}

// AmendRequest is a partial update; nil fields are left untouched.
type AmendRequest struct {
	TableID     *uint64 `json:"table_id,omitempty"`
	GameID      *uint64 `json:"game_id,omitempty"`
	ClearGame   bool    `json:"clear_game,omitempty"`
	Date        *string `json:"date,omitempty"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	DurationMin *int    `json:"duration_min,omitempty"`
	PartySize   *int    `json:"party_size,omitempty"`
	GuestName   *string `json:"guest_name,omitempty"`
	GuestEmail  *string `json:"guest_email,omitempty"`
	GuestPhone  *string `json:"guest_phone,omitempty"`
	GuestNote   *string `json:"guest_note,omitempty"`
	StaffNote   *string `json:"staff_note,omitempty"`
}

// Amend applies a partial update to a booking still in pending or
// confirmed state.  Any change to date, time, duration or table re-runs
// the table availability check excluding the booking's own row; party
// size or table changes re-check capacity; game or window changes
// re-check copy availability (also excluding the booking's own row, so
// a time change on a game-linked booking doesn't count itself).  Any
// guard failure aborts the whole amendment; no partial writes.
func (e *Engine) Amend(ctx context.Context, id uint64, req AmendRequest) (*model.Reservation, *Error) {
	r, bErr := e.Get(ctx, id)
	if bErr != nil {
		return nil, bErr
	}
	if r.Status != model.StatusPending && r.Status != model.StatusConfirmed {
		return nil, invalidTransition(r.Status)
	}
	st, err := e.Settings.GetOrCreate(ctx, r.VenueID)
	if err != nil {
		return nil, unknown("amend", err)
	}

	// Work on a copy; r stays untouched until every guard has passed.
	next := *r
	windowChanged := false
	tableChanged := false
	gameChanged := false

	if req.Date != nil && *req.Date != next.Date {
		if _, err := parseDate(*req.Date); err != nil {
			return nil, errf(KindValidation, "Date must be a real calendar date in YYYY-MM-DD format.")
		}
		next.Date = *req.Date
		windowChanged = true
	}
	startMin, _ := parseClock(next.StartTime)
	endMin, _ := parseClock(next.EndTime)
	if req.StartTime != nil {
		m, err := parseClock(*req.StartTime)
		if err != nil {
			return nil, errf(KindValidation, "Start time must be in HH:MM format.")
		}
		if m != startMin {
			duration := endMin - startMin
			startMin = m
			endMin = m + duration
			windowChanged = true
		}
	}
	if req.DurationMin != nil {
		if *req.DurationMin <= 0 {
			return nil, errf(KindValidation, "Duration must be a positive number of minutes.")
		}
		if startMin+*req.DurationMin != endMin {
			endMin = startMin + *req.DurationMin
			windowChanged = true
		}
	}
	if req.EndTime != nil {
		m, err := parseClock(*req.EndTime)
		if err != nil {
			return nil, errf(KindValidation, "End time must be in HH:MM format.")
		}
		if m != endMin {
			endMin = m
			windowChanged = true
		}
	}
	if endMin <= startMin {
		return nil, errf(KindValidation, "End time must be after the start time.")
	}
	if endMin > 24*60 {
		return nil, errf(KindValidation, "The booking cannot run past midnight.")
	}
	next.StartTime = formatClock(startMin)
	next.EndTime = formatClock(endMin)

	if req.TableID != nil && *req.TableID != next.TableID {
		next.TableID = *req.TableID
		tableChanged = true
	}
	if req.PartySize != nil && *req.PartySize != next.PartySize {
		if *req.PartySize <= 0 {
			return nil, errf(KindValidation, "Party size must be a positive number.")
		}
		next.PartySize = *req.PartySize
	}
	if req.ClearGame {
		next.GameID = nil
		gameChanged = r.GameID != nil
	} else if req.GameID != nil && (r.GameID == nil || *req.GameID != *r.GameID) {
		next.GameID = req.GameID
		gameChanged = true
	}

	if req.GuestName != nil {
		if strings.TrimSpace(*req.GuestName) == "" {
			return nil, errf(KindValidation, "Guest name is required.")
		}
		next.GuestName = strings.TrimSpace(*req.GuestName)
	}
	if req.GuestEmail != nil {
		v := strings.ToLower(strings.TrimSpace(*req.GuestEmail))
		if v == "" {
			next.GuestEmail = nil
		} else if !validEmail(v) {
			return nil, errf(KindValidation, "That email address doesn't look valid.")
		} else {
			next.GuestEmail = &v
		}
	}
	if req.GuestPhone != nil {
		v := strings.TrimSpace(*req.GuestPhone)
		if v == "" {
			next.GuestPhone = nil
		} else if !validPhone(v) {
			return nil, errf(KindValidation, "That phone number doesn't look valid.")
		} else {
			next.GuestPhone = &v
		}
	}
	if next.GuestEmail == nil && next.GuestPhone == nil {
		return nil, errf(KindValidation, "Provide an email address or a phone number.")
	}
	if req.GuestNote != nil {
		v := strings.TrimSpace(*req.GuestNote)
		if v == "" {
			next.GuestNote = nil
		} else {
			next.GuestNote = &v
		}
	}
	if req.StaffNote != nil {
		v := strings.TrimSpace(*req.StaffNote)
		if v == "" {
			next.StaffNote = nil
		} else {
			next.StaffNote = &v
		}
	}

	// Capacity whenever the table or the party changed.
	table, err := e.Tables.GetByID(ctx, next.TableID)
	if err != nil {
		return nil, unknown("amend", err)
	}
	if table == nil || table.VenueID != next.VenueID {
		return nil, errf(KindNotFound, "That table doesn't exist at this venue.")
	}
	if tableChanged && !table.IsActive {
		return nil, errf(KindValidation, "Table %s is not currently bookable.", table.Name)
	}
	if next.PartySize > table.Capacity {
		return nil, errf(KindCapacity, "Table %s seats up to %d guests.", table.Name, table.Capacity)
	}

	if windowChanged || tableChanged {
		conflict, err := e.tableFree(ctx, next.TableID, next.Date, startMin, endMin, st.BufferMin, r.ID)
		if err != nil {
			return nil, unknown("amend", err)
		}
		if conflict != nil {
			metricConflicts.WithLabelValues("table").Inc()
			return nil, errf(KindConflict, "Table %s is already booked from %s to %s.",
				table.Name, conflict.StartTime, conflict.EndTime)
		}
	}

	if next.GameID != nil && (gameChanged || windowChanged) {
		game, err := e.Games.GetByID(ctx, *next.GameID)
		if err != nil {
			return nil, unknown("amend", err)
		}
		if game == nil || game.VenueID != next.VenueID {
			return nil, errf(KindNotFound, "That game isn't in this venue's library.")
		}
		avail, ok, err := e.gameFree(ctx, game, next.Date, startMin, endMin, r.ID)
		if err != nil {
			return nil, unknown("amend", err)
		}
		if !ok {
			metricConflicts.WithLabelValues("game").Inc()
			return nil, errf(KindConflict, "All %d copies of %s are reserved for that time (%d reserved).",
				avail.Copies, game.Title, avail.Reserved)
		}
	}

	if err := e.Reservations.Update(ctx, &next); err != nil {
		return nil, unknown("amend", err)
	}
	e.invalidate(ctx, ViewBookings(next.VenueID, next.Date), ViewPage(next.VenueID))
	if next.Date != r.Date {
		e.invalidate(ctx, ViewBookings(r.VenueID, r.Date))
	}
	return &next, nil
}
