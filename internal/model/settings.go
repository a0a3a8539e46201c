package model

import "time"

// VenueSettings carries the per-venue booking policy.  A row is
// materialized with defaults on first access and is treated as an
// immutable read for the duration of any single booking operation.
//
// Fields:
//  VenueID          – venue the policy applies to.
//  MinNoticeHours   – same-day bookings must start at least this many
//                     hours in the future.
//  MaxAdvanceDays   – bookings may be placed at most this many days out.
//  DefaultDurationMin – duration applied when a request omits one.
//  BufferMin        – required gap between consecutive reservations on
//                     the same table.
//  NoShowGraceMin   – minutes past the scheduled start before a no-show
//                     determination is permitted.
//  EarlySeatWarnMin – seating earlier than this many minutes before the
//                     scheduled start produces an advisory warning.
//  DepositRequired  – whether a deposit is collected upstream.
//  DepositCents     – deposit amount; informational only here.
//  NotifyEmail      – outbound email notifications enabled.
//  NotifySMS        – outbound SMS notifications enabled.
//  RequireEmail     – guest email is mandatory on creation.
//  RequirePhone     – guest phone is mandatory on creation.
//  OpenTime         – first bookable start of day, "15:04".
//  CloseTime        – end of operating hours, "15:04".
//  SlotIntervalMin  – cadence of the guest-facing slot grid.
//  LimitedThreshold – free-table count at or below which a slot is
//                     reported as "limited" instead of "available".
type VenueSettings struct {
	VenueID            uint64    // venue_settings.venue_id
	MinNoticeHours     int       // venue_settings.min_notice_hours
	MaxAdvanceDays     int       // venue_settings.max_advance_days
	DefaultDurationMin int       // venue_settings.default_duration_min
	BufferMin          int       // venue_settings.buffer_min
	NoShowGraceMin     int       // venue_settings.no_show_grace_min
	EarlySeatWarnMin   int       // venue_settings.early_seat_warn_min
	DepositRequired    bool      // venue_settings.deposit_required
	DepositCents       uint32    // venue_settings.deposit_cents
	NotifyEmail        bool      // venue_settings.notify_email
	NotifySMS          bool      // venue_settings.notify_sms
	RequireEmail       bool      // venue_settings.require_email
	RequirePhone       bool      // venue_settings.require_phone
	OpenTime           string    // venue_settings.open_time
	CloseTime          string    // venue_settings.close_time
	SlotIntervalMin    int       // venue_settings.slot_interval_min
	LimitedThreshold   int       // venue_settings.limited_threshold
	CreatedAt          time.Time // venue_settings.created_at
	UpdatedAt          time.Time // venue_settings.updated_at
}

// DefaultVenueSettings returns the policy applied when a venue is first
// seen.  These match the values the settings repository inserts.
func DefaultVenueSettings(venueID uint64) VenueSettings {
	return VenueSettings{
		VenueID:            venueID,
		MinNoticeHours:     1,
		MaxAdvanceDays:     30,
		DefaultDurationMin: 120,
		BufferMin:          0,
		NoShowGraceMin:     15,
		EarlySeatWarnMin:   30,
		RequireEmail:       false,
		RequirePhone:       false,
		OpenTime:           "10:00",
		CloseTime:          "23:00",
		SlotIntervalMin:    30,
		LimitedThreshold:   2,
	}
}
