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

func seedBooking(e *Engine, ms *memStore, tableID uint64, status model.Status) *model.Reservation {
	email := "robin@example.com"
	r := &model.Reservation{
		ID:        ms.id(),
		VenueID:   1,
		TableID:   tableID,
		Date:      "2026-03-10",
		StartTime: "11:00",
		EndTime:   "13:00",
		PartySize: 4,
		GuestName: "Robin Vale",
		GuestEmail: func() *string {
			v := email
			return &v
		}(),
		Status: status,
		Code:   "ABCD23",
	}
	ms.reservations[r.ID] = r
	return r
}

func TestConfirm(t *testing.T) {
	e, ms := newTestEngine(t)
	table := ms.addTable(1, "T1", 4, true)
	notifier := &memNotifier{}
	e.Events = notifier
	r := seedBooking(e, ms, table.ID, model.StatusPending)

	out, bErr := e.Confirm(context.Background(), r.ID)
	require.Nil(t, bErr)
	assert.Equal(t, model.StatusConfirmed, out.Status)
	require.NotNil(t, out.ConfirmedAt)
	assert.Equal(t, testNow, *out.ConfirmedAt)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, queue.KindReservationConfirmed, notifier.events[0].Kind)

	// Confirming twice is an invalid transition.
	_, bErr = e.Confirm(context.Background(), r.ID)
	require.NotNil(t, bErr)
	assert.Equal(t, KindInvalidTransition, bErr.Kind)
}

func TestGetNotFound(t *testing.T) {
	e, _ := newTestEngine(t)
	_, bErr := e.Get(context.Background(), 42)
	require.NotNil(t, bErr)
	assert.Equal(t, KindNotFound, bErr.Kind)
}

func TestMarkArrived(t *testing.T) {
	e, ms := newTestEngine(t)
	table := ms.addTable(1, "T1", 4, true)
	r := seedBooking(e, ms, table.ID, model.StatusConfirmed)

	out, bErr := e.MarkArrived(context.Background(), r.ID)
	require.Nil(t, bErr)
	assert.Equal(t, model.StatusArrived, out.Status)
	require.NotNil(t, out.ArrivedAt)

	// Arrival from pending is not allowed.
	p := seedBooking(e, ms, table.ID, model.StatusPending)
	_, bErr = e.MarkArrived(context.Background(), p.ID)
	require.NotNil(t, bErr)
	assert.Equal(t, KindInvalidTransition, bErr.Kind)
	assert.Contains(t, bErr.Message, "still pending confirmation")
}

func TestCancelByActor(t *testing.T) {
	e, ms := newTestEngine(t)
	table := ms.addTable(1, "T1", 4, true)
	notifier := &memNotifier{}
	e.Events = notifier
	ctx := context.Background()

	guest := seedBooking(e, ms, table.ID, model.StatusConfirmed)
	out, bErr := e.Cancel(ctx, guest.ID, ActorGuest, "plans changed")
	require.Nil(t, bErr)
	assert.Equal(t, model.StatusCancelledByGuest, out.Status)
	require.NotNil(t, out.CancelReason)
	assert.Equal(t, "plans changed", *out.CancelReason)
	require.NotNil(t, out.CancelledAt)

	venue := seedBooking(e, ms, table.ID, model.StatusArrived)
	out, bErr = e.Cancel(ctx, venue.ID, ActorVenue, "")
	require.Nil(t, bErr)
	assert.Equal(t, model.StatusCancelledByVenue, out.Status)
	assert.Nil(t, out.CancelReason)

	// A guest cannot cancel once arrived; only the venue edge exists.
	arrived := seedBooking(e, ms, table.ID, model.StatusArrived)
	_, bErr = e.Cancel(ctx, arrived.ID, ActorGuest, "")
	require.NotNil(t, bErr)
	assert.Equal(t, KindInvalidTransition, bErr.Kind)

	require.Len(t, notifier.events, 2)
	assert.Equal(t, queue.KindReservationCancelled, notifier.events[0].Kind)
}

func TestCancelTerminalGetsDistinctMessage(t *testing.T) {
	e, ms := newTestEngine(t)
	table := ms.addTable(1, "T1", 4, true)

	for _, status := range model.TerminalStatuses {
		r := seedBooking(e, ms, table.ID, status)
		_, bErr := e.Cancel(context.Background(), r.ID, ActorVenue, "")
		require.NotNil(t, bErr)
		assert.Equal(t, KindInvalidTransition, bErr.Kind)
		assert.Equal(t, "This booking is already cancelled or completed.", bErr.Message)
	}
}

func TestMarkNoShowGracePeriod(t *testing.T) {
	e, ms := newTestEngine(t)
	table := ms.addTable(1, "T1", 4, true)
	ctx := context.Background()

	// Booking starts 11:00; default grace is 15 minutes, so the
	// determination opens at 11:15.
	r := seedBooking(e, ms, table.ID, model.StatusConfirmed)

	e.now = func() time.Time { return time.Date(2026, 3, 10, 11, 5, 0, 0, time.UTC) }
	_, bErr := e.MarkNoShow(ctx, r.ID)
	require.NotNil(t, bErr)
	assert.Equal(t, KindTooEarly, bErr.Kind)
	assert.Contains(t, bErr.Message, "10 more minutes")

	// Partial minutes round up.
	e.now = func() time.Time { return time.Date(2026, 3, 10, 11, 5, 30, 0, time.UTC) }
	_, bErr = e.MarkNoShow(ctx, r.ID)
	require.NotNil(t, bErr)
	assert.Contains(t, bErr.Message, "10 more minutes")

	// At exactly start+grace the call succeeds.
	e.now = func() time.Time { return time.Date(2026, 3, 10, 11, 15, 0, 0, time.UTC) }
	out, bErr := e.MarkNoShow(ctx, r.ID)
	require.Nil(t, bErr)
	assert.Equal(t, model.StatusNoShow, out.Status)
	require.NotNil(t, out.NoShowAt)
}

func TestMarkNoShowGuard(t *testing.T) {
	e, ms := newTestEngine(t)
	table := ms.addTable(1, "T1", 4, true)
	e.now = func() time.Time { return time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC) }

	seated := seedBooking(e, ms, table.ID, model.StatusSeated)
	_, bErr := e.MarkNoShow(context.Background(), seated.ID)
	require.NotNil(t, bErr)
	assert.Equal(t, KindInvalidTransition, bErr.Kind)
}

func TestAmendGuestFields(t *testing.T) {
	e, ms := newTestEngine(t)
	table := ms.addTable(1, "T1", 4, true)
	r := seedBooking(e, ms, table.ID, model.StatusConfirmed)

	name := "Dana Reyes"
	note := "window seat please"
	out, bErr := e.Amend(context.Background(), r.ID, AmendRequest{
		GuestName: &name,
		GuestNote: &note,
	})
	require.Nil(t, bErr)
	assert.Equal(t, "Dana Reyes", out.GuestName)
	require.NotNil(t, out.GuestNote)
	assert.Equal(t, "window seat please", *out.GuestNote)
	// Untouched fields survive.
	assert.Equal(t, "11:00", out.StartTime)
	assert.Equal(t, model.StatusConfirmed, out.Status)
}

func TestAmendRejectsAfterConfirmedStates(t *testing.T) {
	e, ms := newTestEngine(t)
	table := ms.addTable(1, "T1", 4, true)
	name := "Dana Reyes"

	for _, status := range []model.Status{
		model.StatusArrived, model.StatusSeated, model.StatusCompleted,
		model.StatusNoShow, model.StatusCancelledByGuest,
	} {
		r := seedBooking(e, ms, table.ID, status)
		_, bErr := e.Amend(context.Background(), r.ID, AmendRequest{GuestName: &name})
		require.NotNil(t, bErr, "status %s", status)
		assert.Equal(t, KindInvalidTransition, bErr.Kind)
	}
}

func TestAmendWindowReChecksExcludingSelf(t *testing.T) {
	e, ms := newTestEngine(t)
	table := ms.addTable(1, "T1", 4, true)
	r := seedBooking(e, ms, table.ID, model.StatusConfirmed)

	// Shifting the booking by half an hour overlaps its own old window;
	// the check must exclude the booking itself.
	start := "11:30"
	out, bErr := e.Amend(context.Background(), r.ID, AmendRequest{StartTime: &start})
	require.Nil(t, bErr)
	assert.Equal(t, "11:30", out.StartTime)
	// Duration is preserved.
	assert.Equal(t, "13:30", out.EndTime)
}

func TestAmendConflictAbortsWholeUpdate(t *testing.T) {
	e, ms := newTestEngine(t)
	table := ms.addTable(1, "T1", 4, true)
	r := seedBooking(e, ms, table.ID, model.StatusConfirmed)
	seedReservation(ms, 1, table.ID, "2026-03-10", "14:00", "16:00", model.StatusConfirmed)

	name := "Dana Reyes"
	start := "15:00"
	_, bErr := e.Amend(context.Background(), r.ID, AmendRequest{
		GuestName: &name,
		StartTime: &start,
	})
	require.NotNil(t, bErr)
	assert.Equal(t, KindConflict, bErr.Kind)

	// Nothing was written, including the name change.
	unchanged, _ := e.Get(context.Background(), r.ID)
	assert.Equal(t, "Robin Vale", unchanged.GuestName)
	assert.Equal(t, "11:00", unchanged.StartTime)
}

func TestAmendCapacityAndGame(t *testing.T) {
	e, ms := newTestEngine(t)
	small := ms.addTable(1, "Small", 4, true)
	big := ms.addTable(1, "Big", 8, true)
	game := ms.addGame(1, "Root", 1)
	ctx := context.Background()

	r := seedBooking(e, ms, small.ID, model.StatusConfirmed)

	// Party growth past the table's capacity is rejected.
	party := 6
	_, bErr := e.Amend(ctx, r.ID, AmendRequest{PartySize: &party})
	require.NotNil(t, bErr)
	assert.Equal(t, KindCapacity, bErr.Kind)

	// Moving to the bigger table makes the same party fit.
	out, bErr := e.Amend(ctx, r.ID, AmendRequest{PartySize: &party, TableID: &big.ID})
	require.Nil(t, bErr)
	assert.Equal(t, big.ID, out.TableID)
	assert.Equal(t, 6, out.PartySize)

	// Attaching the game takes its only copy.
	out, bErr = e.Amend(ctx, r.ID, AmendRequest{GameID: &game.ID})
	require.Nil(t, bErr)
	require.NotNil(t, out.GameID)

	// A second overlapping booking cannot take the same game.
	other := seedBooking(e, ms, small.ID, model.StatusConfirmed)
	_, bErr = e.Amend(ctx, other.ID, AmendRequest{GameID: &game.ID})
	require.NotNil(t, bErr)
	assert.Equal(t, KindConflict, bErr.Kind)

	// Clearing the game releases the copy.
	_, bErr = e.Amend(ctx, r.ID, AmendRequest{ClearGame: true})
	require.Nil(t, bErr)
	_, bErr = e.Amend(ctx, other.ID, AmendRequest{GameID: &game.ID})
	assert.Nil(t, bErr)
}

func TestAmendContactCannotVanish(t *testing.T) {
	e, ms := newTestEngine(t)
	table := ms.addTable(1, "T1", 4, true)
	r := seedBooking(e, ms, table.ID, model.StatusConfirmed)

	empty := ""
	_, bErr := e.Amend(context.Background(), r.ID, AmendRequest{GuestEmail: &empty})
	require.NotNil(t, bErr)
	assert.Equal(t, KindValidation, bErr.Kind)
	assert.Contains(t, bErr.Message, "email address or a phone number")

	// Swapping email for phone in one update is fine.
	phone := "+1 555 123 4567"
	out, bErr := e.Amend(context.Background(), r.ID, AmendRequest{GuestEmail: &empty, GuestPhone: &phone})
	require.Nil(t, bErr)
	assert.Nil(t, out.GuestEmail)
	require.NotNil(t, out.GuestPhone)
}
