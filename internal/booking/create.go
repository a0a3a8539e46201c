package booking

import (
	"context"
	"errors"
	"strings"

	"github.com/ericfaux/gamehost-sub002/internal/logger"
	"github.com/ericfaux/gamehost-sub002/internal/model"
	"github.com/ericfaux/gamehost-sub002/internal/repository"
)

// Create runs the conflict-safe creation protocol.  The availability
// pre-check is an optimization to avoid doomed write attempts, not the
// correctness guarantee: two writers can both pass it.  Correctness
// comes from the storage uniqueness constraint (retried, bounded) plus
// the post-insert overlap re-verification, which deletes the just
// inserted row and reports Conflict when a second writer won the race.
func (e *Engine) Create(ctx context.Context, req CreateRequest) (*model.Reservation, *Error) {
	st, err := e.Settings.GetOrCreate(ctx, req.VenueID)
	if err != nil {
		return nil, unknown("create", err)
	}

	if errs := validateCreate(req, st, e.now()); len(errs) > 0 {
		return nil, errf(KindValidation, "%s", errs[0].Message)
	}

	// Normalize to canonical minute precision, deriving the end from
	// the duration when not given explicitly.
	startMin, _ := parseClock(req.StartTime)
	var endMin int
	if req.EndTime != "" {
		endMin, _ = parseClock(req.EndTime)
	} else {
		dur := req.DurationMin
		if dur <= 0 {
			dur = st.DefaultDurationMin
		}
		endMin = startMin + dur
	}
	if endMin > 24*60 {
		return nil, errf(KindValidation, "The booking cannot run past midnight.")
	}
	start := formatClock(startMin)
	end := formatClock(endMin)

	table, err := e.Tables.GetByID(ctx, req.TableID)
	if err != nil {
		return nil, unknown("create", err)
	}
	if table == nil || table.VenueID != req.VenueID {
		return nil, errf(KindNotFound, "That table doesn't exist at this venue.")
	}
	if !table.IsActive {
		return nil, errf(KindValidation, "Table %s is not currently bookable.", table.Name)
	}
	if req.PartySize > table.Capacity {
		return nil, errf(KindCapacity, "Table %s seats up to %d guests.", table.Name, table.Capacity)
	}

	conflict, err := e.tableFree(ctx, table.ID, req.Date, startMin, endMin, st.BufferMin, 0)
	if err != nil {
		return nil, unknown("create", err)
	}
	if conflict != nil {
		metricConflicts.WithLabelValues("table").Inc()
		return nil, errf(KindConflict, "Table %s is already booked from %s to %s.",
			table.Name, conflict.StartTime, conflict.EndTime)
	}

	var game *model.Game
	if req.GameID != nil {
		game, err = e.Games.GetByID(ctx, *req.GameID)
		if err != nil {
			return nil, unknown("create", err)
		}
		if game == nil || game.VenueID != req.VenueID {
			return nil, errf(KindNotFound, "That game isn't in this venue's library.")
		}
		avail, ok, err := e.gameFree(ctx, game, req.Date, startMin, endMin, 0)
		if err != nil {
			return nil, unknown("create", err)
		}
		if !ok {
			metricConflicts.WithLabelValues("game").Inc()
			return nil, errf(KindConflict, "All %d copies of %s are reserved for that time (%d reserved).",
				avail.Copies, game.Title, avail.Reserved)
		}
	}

	code, err := e.newConfirmationCode(ctx)
	if err != nil {
		return nil, unknown("create", err)
	}

	res := &model.Reservation{
		VenueID:   req.VenueID,
		TableID:   table.ID,
		GameID:    req.GameID,
		Date:      req.Date,
		StartTime: start,
		EndTime:   end,
		PartySize: req.PartySize,
		GuestName: strings.TrimSpace(req.GuestName),
		Status:    model.StatusConfirmed,
		Code:      code,
		CreatedBy: req.CreatedBy,
	}
	if v := strings.ToLower(strings.TrimSpace(req.GuestEmail)); v != "" {
		res.GuestEmail = &v
	}
	if v := strings.TrimSpace(req.GuestPhone); v != "" {
		res.GuestPhone = &v
	}
	if v := strings.TrimSpace(req.GuestNote); v != "" {
		res.GuestNote = &v
	}
	if v := strings.TrimSpace(req.StaffNote); v != "" {
		res.StaffNote = &v
	}
	now := e.now()
	res.ConfirmedAt = &now

	// Bounded optimistic insert.  A duplicate-key rejection means a
	// concurrent writer won on something both readers saw as free; we
	// re-run the availability check and, if the window still looks
	// open, regenerate the code and try again.
	insertErr := e.cfg.InsertRetry.Do(func(attempt int) error {
		if attempt > 1 {
			again, err := e.tableFree(ctx, table.ID, req.Date, startMin, endMin, st.BufferMin, 0)
			if err != nil {
				return err
			}
			if again != nil {
				return errConflictRace
			}
			fresh, err := e.newConfirmationCode(ctx)
			if err != nil {
				return err
			}
			res.Code = fresh
		}
		err := e.Reservations.Insert(ctx, res)
		if errors.Is(err, repository.ErrDuplicate) {
			logger.Get().Warn("reservation insert hit uniqueness constraint, retrying",
				"table_id", table.ID, "date", req.Date, "attempt", attempt)
			return ErrRetryAgain
		}
		return err
	})
	switch {
	case insertErr == nil:
	case errors.Is(insertErr, ErrRetriesExhausted) || errors.Is(insertErr, errConflictRace):
		metricConflicts.WithLabelValues("table").Inc()
		return nil, errf(KindConflict, "That time was just taken. Please pick another slot.")
	default:
		return nil, unknown("create", insertErr)
	}

	// Post-commit re-verification: the correctness backstop.  If any
	// other active reservation overlaps the committed row, both inserts
	// passed their pre-checks in the race window; ours rolls back.
	verify, err := e.tableFree(ctx, table.ID, req.Date, startMin, endMin, st.BufferMin, res.ID)
	if err != nil {
		return nil, unknown("create", err)
	}
	if verify != nil {
		if delErr := e.Reservations.Delete(ctx, res.ID); delErr != nil {
			logger.Get().Error("failed to roll back double-booked reservation",
				"error", delErr, "reservation_id", res.ID)
		}
		metricConflicts.WithLabelValues("table").Inc()
		return nil, errf(KindConflict, "That time was just taken. Please pick another slot.")
	}

	metricCreated.Inc()
	e.invalidate(ctx, ViewBookings(res.VenueID, res.Date), ViewPage(res.VenueID))
	e.publish(ctx, evConfirmed, res)
	return res, nil
}

// errConflictRace aborts the retry loop when the re-check finds the
// window taken; mapped to Conflict at the boundary.
var errConflictRace = errors.New("booking: window taken during retry")
