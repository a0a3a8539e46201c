package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/ericfaux/gamehost-sub002/internal/logger"
	"github.com/ericfaux/gamehost-sub002/internal/model"
)

// lookupNotFound is the single message returned for both "no such
// code" and "email doesn't match", so a caller probing codes learns
// nothing about which half failed.
const lookupNotFound = "We couldn't find a booking matching that code and email."

// Lookup resolves a booking from its confirmation code and contact
// email for the self-service flow.  Attempts are budgeted per
// (venue, normalized email) over a fixed window; when the attempt store
// is unavailable the gate fails open, matching how the HTTP rate
// limiter degrades when Redis is down.
func (e *Engine) Lookup(ctx context.Context, venueID uint64, code, email string) (*model.Reservation, *Error) {
	email = strings.ToLower(strings.TrimSpace(email))
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || email == "" {
		return nil, errf(KindValidation, "Confirmation code and email are required.")
	}

	if e.Attempts != nil {
		key := fmt.Sprintf("lookup:%d:%s", venueID, email)
		count, err := e.Attempts.Incr(ctx, key, e.cfg.LookupWindow)
		if err != nil {
			logger.Get().Warn("lookup attempt counter unavailable", "error", err)
		} else if count > e.cfg.LookupAttempts {
			metricLookupThrottled.Inc()
			return nil, errf(KindTooEarly, "Too many lookup attempts. Please try again later.")
		}
	}

	r, err := e.Reservations.GetByCode(ctx, venueID, code)
	if err != nil {
		return nil, unknown("lookup", err)
	}
	if r == nil || r.GuestEmail == nil || !strings.EqualFold(*r.GuestEmail, email) {
		return nil, errf(KindNotFound, "%s", lookupNotFound)
	}
	return r, nil
}
