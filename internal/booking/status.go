package booking

import "github.com/ericfaux/gamehost-sub002/internal/model"

// transitions is the reservation state machine as data.  Each key maps
// to the complete set of states reachable from it; the guard function
// below is the only consumer.  Terminal states are intentionally absent.
//
// The confirmed -> seated edge is the direct-seat shortcut; whether it
// is honoured is a configuration switch (Config.DirectSeat), not a
// separate table.
var transitions = map[model.Status][]model.Status{
	model.StatusPending: {
		model.StatusConfirmed,
		model.StatusCancelledByGuest,
		model.StatusCancelledByVenue,
	},
	model.StatusConfirmed: {
		model.StatusArrived,
		model.StatusSeated,
		model.StatusCancelledByGuest,
		model.StatusCancelledByVenue,
		model.StatusNoShow,
	},
	model.StatusArrived: {
		model.StatusSeated,
		model.StatusCancelledByVenue,
		model.StatusNoShow,
	},
	model.StatusSeated: {
		model.StatusCompleted,
	},
}

// canTransition reports whether the state machine permits from -> to,
// honouring the direct-seat configuration.
func (e *Engine) canTransition(from, to model.Status) bool {
	if from == model.StatusConfirmed && to == model.StatusSeated && !e.cfg.DirectSeat {
		return false
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// blockedReason yields the operator-facing explanation for why a
// reservation in the given state rejects a transition.  Keyed by the
// current status so the message names what the booking already is, not
// what the caller attempted.
var blockedReason = map[model.Status]string{
	model.StatusPending:          "this booking is still pending confirmation",
	model.StatusConfirmed:        "this booking is confirmed and not in a compatible state",
	model.StatusArrived:          "the guest has already been marked as arrived",
	model.StatusSeated:           "the party is already seated",
	model.StatusCompleted:        "this booking has already been completed",
	model.StatusNoShow:           "this booking was already marked as a no-show",
	model.StatusCancelledByGuest: "this booking has already been cancelled",
	model.StatusCancelledByVenue: "this booking has already been cancelled",
}

// invalidTransition builds the InvalidTransition error for a rejected
// from -> to edge.
func invalidTransition(from model.Status) *Error {
	reason, ok := blockedReason[from]
	if !ok {
		reason = "the booking is not in a compatible state"
	}
	return errf(KindInvalidTransition, "Cannot update this booking: %s.", reason)
}
