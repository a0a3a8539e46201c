package booking

import (
	"context"
	"fmt"

	"github.com/ericfaux/gamehost-sub002/internal/model"
)

// TableConflict describes the reservation blocking a requested window,
// with enough detail for operator-facing messaging.
type TableConflict struct {
	ReservationID uint64 `json:"reservation_id"`
	GuestName     string `json:"guest_name"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
}

// tableFree scans the active reservations on a table/date for an
// interval overlapping [startMin, endMin).  The buffer widens the query
// window on both sides so back-to-back bookings keep the configured gap.
// excludeID omits one reservation from the scan (the amendment path
// passes the booking's own ID); zero excludes nothing.  Returns nil
// when the window is free.
func (e *Engine) tableFree(ctx context.Context, tableID uint64, date string, startMin, endMin, bufferMin int, excludeID uint64) (*TableConflict, error) {
	existing, err := e.Reservations.ListActiveByTableDate(ctx, tableID, date)
	if err != nil {
		return nil, err
	}
	qStart := startMin - bufferMin
	qEnd := endMin + bufferMin
	for _, r := range existing {
		if r.ID == excludeID {
			continue
		}
		s, err := parseClock(r.StartTime)
		if err != nil {
			continue
		}
		en, err := parseClock(r.EndTime)
		if err != nil {
			continue
		}
		if overlaps(qStart, qEnd, s, en) {
			return &TableConflict{
				ReservationID: r.ID,
				GuestName:     r.GuestName,
				StartTime:     r.StartTime,
				EndTime:       r.EndTime,
			}, nil
		}
	}
	return nil, nil
}

// GameAvailability reports copy usage for a window: how many copies are
// in rotation and how many are already committed to overlapping
// reservations.
type GameAvailability struct {
	Copies   int `json:"copies"`
	Reserved int `json:"reserved"`
}

// gameFree counts active reservations referencing a game whose interval
// overlaps [startMin, endMin) and compares against the copies in
// rotation.  excludeID omits one reservation from the count.
func (e *Engine) gameFree(ctx context.Context, game *model.Game, date string, startMin, endMin int, excludeID uint64) (GameAvailability, bool, error) {
	existing, err := e.Reservations.ListActiveByGameDate(ctx, game.ID, date)
	if err != nil {
		return GameAvailability{}, false, err
	}
	reserved := 0
	for _, r := range existing {
		if r.ID == excludeID {
			continue
		}
		s, err := parseClock(r.StartTime)
		if err != nil {
			continue
		}
		en, err := parseClock(r.EndTime)
		if err != nil {
			continue
		}
		if overlaps(startMin, endMin, s, en) {
			reserved++
		}
	}
	avail := GameAvailability{Copies: game.Copies, Reserved: reserved}
	return avail, reserved < game.Copies, nil
}

// SlotStatus classifies a slot in the guest-facing grid.
type SlotStatus string

const (
	SlotAvailable   SlotStatus = "available"
	SlotLimited     SlotStatus = "limited"
	SlotUnavailable SlotStatus = "unavailable"
)

// Slot is one entry of the availability grid: a candidate start time
// with the tables that could host the party for the whole duration.
type Slot struct {
	StartTime  string     `json:"start_time"`
	EndTime    string     `json:"end_time"`
	Status     SlotStatus `json:"status"`
	FreeTables int        `json:"free_tables"`
	TableIDs   []uint64   `json:"table_ids,omitempty"`
}

// SlotGrid enumerates fixed-cadence start times across the venue's
// operating hours for a date, party size and duration, and classifies
// each slot by how many capacity-sufficient tables are interval-free.
// A slot is "available" above the venue's limited threshold, "limited"
// at or below it, "unavailable" at zero.
func (e *Engine) SlotGrid(ctx context.Context, venueID uint64, date string, partySize, durationMin int) ([]Slot, *Error) {
	st, err := e.Settings.GetOrCreate(ctx, venueID)
	if err != nil {
		return nil, unknown("slot_grid", err)
	}
	if _, err := parseDate(date); err != nil {
		return nil, errf(KindValidation, "Date must be a real calendar date in YYYY-MM-DD format.")
	}
	if partySize <= 0 {
		return nil, errf(KindValidation, "Party size must be a positive number.")
	}
	if durationMin <= 0 {
		durationMin = st.DefaultDurationMin
	}

	tables, err := e.Tables.ListActiveByVenue(ctx, venueID)
	if err != nil {
		return nil, unknown("slot_grid", err)
	}
	candidates := make([]model.Table, 0, len(tables))
	for _, t := range tables {
		if t.Capacity >= partySize {
			candidates = append(candidates, t)
		}
	}

	// One scan for the whole day, grouped by table, instead of a query
	// per slot per table.
	active, err := e.Reservations.ListActiveByVenueDate(ctx, venueID, date)
	if err != nil {
		return nil, unknown("slot_grid", err)
	}
	type window struct{ start, end int }
	byTable := make(map[uint64][]window, len(candidates))
	for _, r := range active {
		s, err1 := parseClock(r.StartTime)
		en, err2 := parseClock(r.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		byTable[r.TableID] = append(byTable[r.TableID], window{s, en})
	}

	openMin, err1 := parseClock(st.OpenTime)
	closeMin, err2 := parseClock(st.CloseTime)
	if err1 != nil || err2 != nil || closeMin <= openMin {
		return nil, unknown("slot_grid", fmt.Errorf("venue %d has unusable operating hours", venueID))
	}
	step := st.SlotIntervalMin
	if step <= 0 {
		step = 30
	}

	var grid []Slot
	for start := openMin; start+durationMin <= closeMin; start += step {
		end := start + durationMin
		var free []uint64
		for _, t := range candidates {
			blocked := false
			for _, w := range byTable[t.ID] {
				if overlaps(start-st.BufferMin, end+st.BufferMin, w.start, w.end) {
					blocked = true
					break
				}
			}
			if !blocked {
				free = append(free, t.ID)
			}
		}
		slot := Slot{
			StartTime:  formatClock(start),
			EndTime:    formatClock(end),
			FreeTables: len(free),
			TableIDs:   free,
		}
		switch {
		case len(free) == 0:
			slot.Status = SlotUnavailable
		case len(free) <= st.LimitedThreshold:
			slot.Status = SlotLimited
		default:
			slot.Status = SlotAvailable
		}
		grid = append(grid, slot)
	}
	return grid, nil
}
