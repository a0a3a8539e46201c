package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/ericfaux/gamehost-sub002/internal/logger"
	"github.com/ericfaux/gamehost-sub002/internal/model"
	"github.com/ericfaux/gamehost-sub002/internal/queue"
)

// ReservationEvent is re-exported so collaborators only depend on the
// booking package for the Notifier contract.
type ReservationEvent = queue.ReservationEvent

const (
	evConfirmed = queue.KindReservationConfirmed
	evCancelled = queue.KindReservationCancelled
	evSeated    = queue.KindReservationSeated
	evCompleted = queue.KindReservationCompleted
)

// View key builders.  These are the named read views the engine signals
// as stale after a mutation; the cache layer owns what "stale" means.
// The response cache tags cached pages with the same keys.
func ViewBookings(venueID uint64, date string) string {
	return fmt.Sprintf("view:bookings:%d:%s", venueID, date)
}

func ViewSessions(venueID uint64) string {
	return fmt.Sprintf("view:sessions:%d", venueID)
}

func ViewPage(venueID uint64) string {
	return fmt.Sprintf("view:page:%d", venueID)
}

// publish sends a lifecycle event when a notifier is wired.  Failure is
// logged and swallowed: notification dispatch must never fail a booking.
func (e *Engine) publish(ctx context.Context, kind string, r *model.Reservation) {
	if e.Events == nil {
		return
	}
	ev := queue.ReservationEvent{
		Kind:          kind,
		ReservationID: r.ID,
		VenueID:       r.VenueID,
		TableID:       r.TableID,
		Code:          r.Code,
		GuestName:     r.GuestName,
		GuestEmail:    r.GuestEmail,
		GuestPhone:    r.GuestPhone,
		Date:          r.Date,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		PartySize:     r.PartySize,
		CancelReason:  r.CancelReason,
		OccurredAt:    e.now().Format(time.RFC3339),
	}
	if err := e.Events.Publish(ctx, ev); err != nil {
		logger.Get().Error("failed to publish reservation event",
			"error", err,
			"kind", kind,
			"reservation_id", r.ID)
	}
}
