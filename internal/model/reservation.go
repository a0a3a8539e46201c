package model

import "time"

// Reservation records a guest's claim on a table (and optionally a board
// game copy) for a time window on a given date.  Times are stored as
// minute-precision "HH:MM" strings and the window is half-open: a
// reservation ending at 18:00 does not conflict with one starting at
// 18:00.  All timestamp fields are UTC.
//
// Fields:
//  ID          – primary key identifier.
//  VenueID     – venue the reservation belongs to.
//  TableID     – table being reserved.
//  GameID      – optional board game attached to the reservation.
//  SessionID   – back-reference to the live session once seated.
//  Date        – calendar date, "2006-01-02".
//  StartTime   – start of the window, "15:04".
//  EndTime     – end of the window, "15:04", exclusive.
//  PartySize   – number of guests; bounded by the table capacity.
//  GuestName   – required contact name.
//  GuestEmail  – contact email; at least one of email/phone is set.
//  GuestPhone  – contact phone.
//  GuestNote   – free-text note from the guest.
//  StaffNote   – staff-only note, never shown to guests.
//  Status      – lifecycle state, see status.go.
//  Code        – unique human-readable confirmation code.
//  CancelReason – set only when the reservation is cancelled.
//  CreatedBy   – staff user who created the booking; nil for self-service.
type Reservation struct {
	ID          uint64     // reservations.id
	VenueID     uint64     // reservations.venue_id
	TableID     uint64     // reservations.table_id
	GameID      *uint64    // reservations.game_id (nullable)
	SessionID   *uint64    // reservations.session_id (nullable)
	Date        string     // reservations.res_date
	StartTime   string     // reservations.start_time
	EndTime     string     // reservations.end_time
	PartySize   int        // reservations.party_size
	GuestName   string     // reservations.guest_name
	GuestEmail  *string    // reservations.guest_email (nullable)
	GuestPhone  *string    // reservations.guest_phone (nullable)
	GuestNote   *string    // reservations.guest_note (nullable)
	StaffNote   *string    // reservations.staff_note (nullable)
	Status      Status     // reservations.status
	Code        string     // reservations.confirmation_code (unique)
	ConfirmedAt *time.Time // reservations.confirmed_at (nullable)
	ArrivedAt   *time.Time // reservations.arrived_at (nullable)
	SeatedAt    *time.Time // reservations.seated_at (nullable)
	CompletedAt *time.Time // reservations.completed_at (nullable)
	CancelledAt *time.Time // reservations.cancelled_at (nullable)
	NoShowAt    *time.Time // reservations.no_show_at (nullable)
	CancelReason *string   // reservations.cancel_reason (nullable)
	CreatedBy   *uint64    // reservations.created_by (nullable)
	CreatedAt   time.Time  // reservations.created_at
	UpdatedAt   time.Time  // reservations.updated_at
}
