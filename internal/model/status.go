package model

// Status enumerates the lifecycle states of a reservation.  The string
// values are stored verbatim in the reservations.status column, so they
// must never be renamed without a migration.
type Status string

const (
	StatusPending          Status = "pending"
	StatusConfirmed        Status = "confirmed"
	StatusArrived          Status = "arrived"
	StatusSeated           Status = "seated"
	StatusCompleted        Status = "completed"
	StatusNoShow           Status = "no_show"
	StatusCancelledByGuest Status = "cancelled_by_guest"
	StatusCancelledByVenue Status = "cancelled_by_venue"
)

// TerminalStatuses are the states from which no further transition is
// possible.  A reservation in a terminal state no longer occupies its
// table or game copy, so availability scans must exclude these.
var TerminalStatuses = []Status{
	StatusCompleted,
	StatusNoShow,
	StatusCancelledByGuest,
	StatusCancelledByVenue,
}

// IsTerminal reports whether s is one of the terminal states.
func (s Status) IsTerminal() bool {
	for _, t := range TerminalStatuses {
		if s == t {
			return true
		}
	}
	return false
}

// ActiveStatusPlaceholders returns a comma separated list of SQL
// placeholders and the matching argument slice for the non-terminal
// statuses.  Repositories use it to build "status IN (...)" filters.
func ActiveStatusPlaceholders() (string, []interface{}) {
	active := []Status{StatusPending, StatusConfirmed, StatusArrived, StatusSeated}
	args := make([]interface{}, 0, len(active))
	ph := ""
	for i, s := range active {
		if i > 0 {
			ph += ","
		}
		ph += "?"
		args = append(args, string(s))
	}
	return ph, args
}
