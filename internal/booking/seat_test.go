package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfaux/gamehost-sub002/internal/model"
	"github.com/ericfaux/gamehost-sub002/internal/queue"
)

func TestSeatPartyFromArrived(t *testing.T) {
	e, ms := newTestEngine(t)
	table := ms.addTable(1, "T1", 4, true)
	notifier := &memNotifier{}
	e.Events = notifier
	r := seedBooking(e, ms, table.ID, model.StatusArrived)
	arrivedAt := testNow.Add(-10 * time.Minute)
	r.ArrivedAt = &arrivedAt

	out, bErr := e.SeatParty(context.Background(), r.ID)
	require.Nil(t, bErr)
	assert.Equal(t, model.StatusSeated, out.Reservation.Status)
	require.NotNil(t, out.Reservation.SeatedAt)
	// The earlier arrival stamp is preserved.
	assert.Equal(t, arrivedAt, *out.Reservation.ArrivedAt)
	require.NotNil(t, out.Session)
	assert.Equal(t, table.ID, out.Session.TableID)
	require.NotNil(t, out.Reservation.SessionID)
	assert.Equal(t, out.Session.ID, *out.Reservation.SessionID)
	assert.Empty(t, out.Warning)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, queue.KindReservationSeated, notifier.events[0].Kind)
}

func TestSeatPartyDirectFromConfirmedStampsArrival(t *testing.T) {
	e, ms := newTestEngine(t)
	table := ms.addTable(1, "T1", 4, true)
	r := seedBooking(e, ms, table.ID, model.StatusConfirmed)

	out, bErr := e.SeatParty(context.Background(), r.ID)
	require.Nil(t, bErr)
	assert.Equal(t, model.StatusSeated, out.Reservation.Status)
	require.NotNil(t, out.Reservation.ArrivedAt)
	assert.Equal(t, testNow, *out.Reservation.ArrivedAt)
}

func TestSeatPartyDirectSeatDisabled(t *testing.T) {
	e, ms := newTestEngine(t)
	e.cfg.DirectSeat = false
	table := ms.addTable(1, "T1", 4, true)
	r := seedBooking(e, ms, table.ID, model.StatusConfirmed)

	_, bErr := e.SeatParty(context.Background(), r.ID)
	require.NotNil(t, bErr)
	assert.Equal(t, KindInvalidTransition, bErr.Kind)
}

func TestSeatPartyEarlyWarning(t *testing.T) {
	e, ms := newTestEngine(t)
	table := ms.addTable(1, "T1", 4, true)
	r := seedBooking(e, ms, table.ID, model.StatusConfirmed)

	// Booking starts 11:00; seating at 10:00 is 60 minutes early, past
	// the default 30-minute advisory threshold.
	e.now = func() time.Time { return time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC) }
	out, bErr := e.SeatParty(context.Background(), r.ID)
	require.Nil(t, bErr)
	assert.Contains(t, out.Warning, "60 minutes before the 11:00 booking time")

	// Within the threshold there is no warning.
	r2 := seedBooking(e, ms, table.ID, model.StatusConfirmed)
	e.now = func() time.Time { return time.Date(2026, 3, 10, 10, 45, 0, 0, time.UTC) }
	out, bErr = e.SeatParty(context.Background(), r2.ID)
	require.Nil(t, bErr)
	assert.Empty(t, out.Warning)
}

func TestSeatPartyEndsStaleSession(t *testing.T) {
	e, ms := newTestEngine(t)
	table := ms.addTable(1, "T1", 4, true)
	r := seedBooking(e, ms, table.ID, model.StatusArrived)

	stale, bErr := e.StartWalkIn(context.Background(), 1, table.ID, nil)
	require.Nil(t, bErr)

	out, seatErr := e.SeatParty(context.Background(), r.ID)
	require.Nil(t, seatErr)
	assert.NotEqual(t, stale.ID, out.Session.ID)

	prev, _ := sessionsView{ms}.GetByID(context.Background(), stale.ID)
	require.NotNil(t, prev)
	assert.NotNil(t, prev.EndedAt, "the stale session must be ended")
}

func TestStartWalkIn(t *testing.T) {
	e, ms := newTestEngine(t)
	table := ms.addTable(1, "T1", 4, true)
	game := ms.addGame(1, "Azul", 3)
	ctx := context.Background()

	s, bErr := e.StartWalkIn(ctx, 1, table.ID, &game.ID)
	require.Nil(t, bErr)
	assert.Equal(t, table.ID, s.TableID)
	require.NotNil(t, s.GameID)
	assert.Equal(t, testNow, s.StartedAt)

	// Unknown table and cross-venue table render the same way.
	_, bErr = e.StartWalkIn(ctx, 1, 9999, nil)
	require.NotNil(t, bErr)
	assert.Equal(t, KindNotFound, bErr.Kind)

	other := ms.addTable(2, "Elsewhere", 4, true)
	_, bErr = e.StartWalkIn(ctx, 1, other.ID, nil)
	require.NotNil(t, bErr)
	assert.Equal(t, KindNotFound, bErr.Kind)

	inactive := ms.addTable(1, "Backroom", 4, false)
	_, bErr = e.StartWalkIn(ctx, 1, inactive.ID, nil)
	require.NotNil(t, bErr)
	assert.Equal(t, KindValidation, bErr.Kind)
}

func TestEndSessionCompletesLinkedBooking(t *testing.T) {
	e, ms := newTestEngine(t)
	table := ms.addTable(1, "T1", 4, true)
	r := seedBooking(e, ms, table.ID, model.StatusArrived)

	seated, bErr := e.SeatParty(context.Background(), r.ID)
	require.Nil(t, bErr)

	ended, bErr := e.EndSession(context.Background(), seated.Session.ID)
	require.Nil(t, bErr)
	require.NotNil(t, ended.EndedAt)

	after, gErr := e.Get(context.Background(), r.ID)
	require.Nil(t, gErr)
	assert.Equal(t, model.StatusCompleted, after.Status)
	require.NotNil(t, after.CompletedAt)
}

func TestEndSessionWalkInHasNoBooking(t *testing.T) {
	e, ms := newTestEngine(t)
	table := ms.addTable(1, "T1", 4, true)

	s, bErr := e.StartWalkIn(context.Background(), 1, table.ID, nil)
	require.Nil(t, bErr)

	ended, bErr := e.EndSession(context.Background(), s.ID)
	require.Nil(t, bErr)
	assert.NotNil(t, ended.EndedAt)

	// Ending twice is rejected.
	_, bErr = e.EndSession(context.Background(), s.ID)
	require.NotNil(t, bErr)
	assert.Equal(t, KindValidation, bErr.Kind)

	_, bErr = e.EndSession(context.Background(), 9999)
	require.NotNil(t, bErr)
	assert.Equal(t, KindNotFound, bErr.Kind)
}
