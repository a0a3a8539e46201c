package booking

import (
	"strconv"
	"strings"
	"time"

	"github.com/ericfaux/gamehost-sub002/internal/model"
)

// CreateRequest is the input to the creation protocol.  Either EndTime
// or DurationMin must be provided; when both are absent the venue's
// default duration applies.
type CreateRequest struct {
	VenueID     uint64  `json:"-"`
	TableID     uint64  `json:"table_id"`
	GameID      *uint64 `json:"game_id,omitempty"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time,omitempty"`
	DurationMin int     `json:"duration_min,omitempty"`
	PartySize   int     `json:"party_size"`
	GuestName   string  `json:"guest_name"`
	GuestEmail  string  `json:"guest_email,omitempty"`
	GuestPhone  string  `json:"guest_phone,omitempty"`
	GuestNote   string  `json:"guest_note,omitempty"`
	StaffNote   string  `json:"-"`
	CreatedBy   *uint64 `json:"-"`
}

// fieldError is a single validation failure.  Failures are collected in
// field order rather than fail-fast, but only the first one crosses the
// operation boundary so error reporting stays deterministic.
type fieldError struct {
	Field   string
	Message string
}

// validEmail accepts local@domain where the domain contains a dot.
// Deliberately loose; deliverability is the notification layer's problem.
func validEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at != strings.LastIndex(s, "@") {
		return false
	}
	domain := s[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// validPhone accepts 7 to 15 digits after stripping common separators.
func validPhone(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '+' || r == '.':
			// separator, ignore
		default:
			return false
		}
	}
	return digits >= 7 && digits <= 15
}

// validateCreate checks a creation request against the venue policy.
// now is the engine clock in UTC.
func validateCreate(req CreateRequest, st *model.VenueSettings, now time.Time) []fieldError {
	var errs []fieldError

	if strings.TrimSpace(req.GuestName) == "" {
		errs = append(errs, fieldError{"guest_name", "Guest name is required."})
	}
	if req.PartySize <= 0 {
		errs = append(errs, fieldError{"party_size", "Party size must be a positive number."})
	}

	email := strings.TrimSpace(req.GuestEmail)
	phone := strings.TrimSpace(req.GuestPhone)
	if email == "" && phone == "" {
		errs = append(errs, fieldError{"guest_email", "Provide an email address or a phone number."})
	}
	if email != "" && !validEmail(email) {
		errs = append(errs, fieldError{"guest_email", "That email address doesn't look valid."})
	}
	if phone != "" && !validPhone(phone) {
		errs = append(errs, fieldError{"guest_phone", "That phone number doesn't look valid."})
	}
	if st.RequireEmail && email == "" {
		errs = append(errs, fieldError{"guest_email", "An email address is required for bookings at this venue."})
	}
	if st.RequirePhone && phone == "" {
		errs = append(errs, fieldError{"guest_phone", "A phone number is required for bookings at this venue."})
	}

	startMin, startErr := parseClock(req.StartTime)
	if req.StartTime == "" {
		errs = append(errs, fieldError{"start_time", "Start time is required."})
	} else if startErr != nil {
		errs = append(errs, fieldError{"start_time", "Start time must be in HH:MM format."})
	}

	if req.EndTime != "" {
		endMin, err := parseClock(req.EndTime)
		if err != nil {
			errs = append(errs, fieldError{"end_time", "End time must be in HH:MM format."})
		} else if startErr == nil && endMin <= startMin {
			errs = append(errs, fieldError{"end_time", "End time must be after the start time."})
		}
	} else if req.DurationMin < 0 {
		errs = append(errs, fieldError{"duration_min", "Duration must be a positive number of minutes."})
	}

	day, err := parseDate(req.Date)
	if err != nil {
		errs = append(errs, fieldError{"date", "Date must be a real calendar date in YYYY-MM-DD format."})
		return errs
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(today) {
		errs = append(errs, fieldError{"date", "That date is in the past."})
		return errs
	}
	if st.MaxAdvanceDays > 0 && day.After(today.AddDate(0, 0, st.MaxAdvanceDays)) {
		errs = append(errs, fieldError{"date", "Bookings can be made at most " + strconv.Itoa(st.MaxAdvanceDays) + " days in advance."})
	}

	// Same-day bookings need minimum notice.  Distinguish a start time
	// that has already passed from one that is merely too soon.
	if day.Equal(today) && startErr == nil {
		start := day.Add(time.Duration(startMin) * time.Minute)
		if !start.After(now) {
			errs = append(errs, fieldError{"start_time", "That start time has already passed."})
		} else if st.MinNoticeHours > 0 && start.Before(now.Add(time.Duration(st.MinNoticeHours)*time.Hour)) {
			errs = append(errs, fieldError{"start_time", "Same-day bookings need at least " + strconv.Itoa(st.MinNoticeHours) + " hours notice."})
		}
	}

	return errs
}
