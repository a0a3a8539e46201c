package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/ericfaux/gamehost-sub002/internal/logger"
	"github.com/ericfaux/gamehost-sub002/internal/model"
)

// SeatResult is returned by SeatParty: the updated reservation, the
// session that now occupies the table and an optional advisory warning.
type SeatResult struct {
	Reservation *model.Reservation `json:"reservation"`
	Session     *model.Session     `json:"session"`
	Warning     string             `json:"warning,omitempty"`
}

// SeatParty bridges a confirmed or arrived booking into a live session
// on its table.  Seating straight from confirmed also stamps the
// arrival time, since the guest is implicitly present.  Seating well
// before the scheduled start is allowed but produces an advisory
// warning rather than an error.  Any unended session already on the
// table is ended first; the table is physically singular.
func (e *Engine) SeatParty(ctx context.Context, id uint64) (*SeatResult, *Error) {
	r, bErr := e.Get(ctx, id)
	if bErr != nil {
		return nil, bErr
	}
	if !e.canTransition(r.Status, model.StatusSeated) {
		return nil, invalidTransition(r.Status)
	}

	table, err := e.Tables.GetByID(ctx, r.TableID)
	if err != nil {
		return nil, unknown("seat", err)
	}
	if table == nil {
		return nil, errf(KindNotFound, "That table doesn't exist at this venue.")
	}
	if !table.IsActive {
		return nil, errf(KindValidation, "Table %s is not currently in service.", table.Name)
	}

	st, err := e.Settings.GetOrCreate(ctx, r.VenueID)
	if err != nil {
		return nil, unknown("seat", err)
	}
	now := e.now()

	var warning string
	if start, err := startAt(r.Date, r.StartTime); err == nil {
		early := start.Sub(now)
		if threshold := time.Duration(st.EarlySeatWarnMin) * time.Minute; threshold > 0 && early > threshold {
			warning = fmt.Sprintf("Seating %d minutes before the %s booking time.", int(early.Minutes()), r.StartTime)
		}
	}

	if stale, err := e.Sessions.GetOpenByTable(ctx, r.TableID); err != nil {
		return nil, unknown("seat", err)
	} else if stale != nil {
		if err := e.Sessions.End(ctx, stale.ID, now); err != nil {
			return nil, unknown("seat", err)
		}
	}

	session := &model.Session{
		VenueID:   r.VenueID,
		TableID:   r.TableID,
		GameID:    r.GameID,
		StartedAt: now,
	}
	if err := e.Sessions.Insert(ctx, session); err != nil {
		return nil, unknown("seat", err)
	}

	from := r.Status
	r.Status = model.StatusSeated
	r.SeatedAt = &now
	if from == model.StatusConfirmed && r.ArrivedAt == nil {
		r.ArrivedAt = &now
	}
	r.SessionID = &session.ID
	if err := e.Reservations.Update(ctx, r); err != nil {
		// Don't leave an orphaned live session on the table.
		if endErr := e.Sessions.End(ctx, session.ID, e.now()); endErr != nil {
			logger.Get().Error("failed to end session after seat rollback",
				"error", endErr, "session_id", session.ID)
		}
		return nil, unknown("seat", err)
	}

	e.invalidate(ctx, ViewBookings(r.VenueID, r.Date), ViewSessions(r.VenueID), ViewPage(r.VenueID))
	e.publish(ctx, evSeated, r)
	return &SeatResult{Reservation: r, Session: session, Warning: warning}, nil
}

// StartWalkIn opens a session on a table for a party without a
// reservation.  Any stale open session on the table is ended first.
func (e *Engine) StartWalkIn(ctx context.Context, venueID, tableID uint64, gameID *uint64) (*model.Session, *Error) {
	table, err := e.Tables.GetByID(ctx, tableID)
	if err != nil {
		return nil, unknown("walk_in", err)
	}
	if table == nil || table.VenueID != venueID {
		return nil, errf(KindNotFound, "That table doesn't exist at this venue.")
	}
	if !table.IsActive {
		return nil, errf(KindValidation, "Table %s is not currently in service.", table.Name)
	}
	if gameID != nil {
		game, err := e.Games.GetByID(ctx, *gameID)
		if err != nil {
			return nil, unknown("walk_in", err)
		}
		if game == nil || game.VenueID != venueID {
			return nil, errf(KindNotFound, "That game isn't in this venue's library.")
		}
	}
	now := e.now()
	if stale, err := e.Sessions.GetOpenByTable(ctx, tableID); err != nil {
		return nil, unknown("walk_in", err)
	} else if stale != nil {
		if err := e.Sessions.End(ctx, stale.ID, now); err != nil {
			return nil, unknown("walk_in", err)
		}
	}
	session := &model.Session{
		VenueID:   venueID,
		TableID:   tableID,
		GameID:    gameID,
		StartedAt: now,
	}
	if err := e.Sessions.Insert(ctx, session); err != nil {
		return nil, unknown("walk_in", err)
	}
	e.invalidate(ctx, ViewSessions(venueID))
	return session, nil
}

// EndSession closes a live session and, when a seated reservation is
// linked to it, auto-completes that reservation.
func (e *Engine) EndSession(ctx context.Context, id uint64) (*model.Session, *Error) {
	session, err := e.Sessions.GetByID(ctx, id)
	if err != nil {
		return nil, unknown("end_session", err)
	}
	if session == nil {
		return nil, errf(KindNotFound, "Session not found.")
	}
	if session.EndedAt != nil {
		return nil, errf(KindValidation, "This session has already ended.")
	}
	now := e.now()
	if err := e.Sessions.End(ctx, session.ID, now); err != nil {
		return nil, unknown("end_session", err)
	}
	session.EndedAt = &now

	linked, err := e.Reservations.GetBySessionID(ctx, session.ID)
	if err != nil {
		return nil, unknown("end_session", err)
	}
	if linked != nil && linked.Status == model.StatusSeated {
		if _, cErr := e.Complete(ctx, linked.ID); cErr != nil {
			logger.Get().Error("failed to auto-complete reservation on session end",
				"error", cErr, "reservation_id", linked.ID, "session_id", session.ID)
		}
	}
	e.invalidate(ctx, ViewSessions(session.VenueID))
	return session, nil
}
