// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationEvent is published whenever a reservation changes state in
// a way downstream notification dispatch cares about.  It carries enough
// information for a consumer to render an email or SMS without querying
// the primary database.
type ReservationEvent struct {
	Kind          string  `json:"kind"` // reservation.confirmed | reservation.cancelled | reservation.seated | reservation.completed
	ReservationID uint64  `json:"reservation_id"`
	VenueID       uint64  `json:"venue_id"`
	TableID       uint64  `json:"table_id"`
	Code          string  `json:"confirmation_code"`
	GuestName     string  `json:"guest_name"`
	GuestEmail    *string `json:"guest_email,omitempty"`
	GuestPhone    *string `json:"guest_phone,omitempty"`
	Date          string  `json:"date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	PartySize     int     `json:"party_size"`
	CancelReason  *string `json:"cancel_reason,omitempty"`
	OccurredAt    string  `json:"occurred_at"`
}

// Event kinds understood by the notification consumer.
const (
	KindReservationConfirmed = "reservation.confirmed"
	KindReservationCancelled = "reservation.cancelled"
	KindReservationSeated    = "reservation.seated"
	KindReservationCompleted = "reservation.completed"
)
