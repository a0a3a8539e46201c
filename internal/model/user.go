package model

import "time"

// User is a staff account.  Guests never authenticate; staff log in to
// operate the venue-facing flows and their ID is recorded as the
// creator of bookings they place.
type User struct {
	ID           uint64    // users.id
	VenueID      uint64    // users.venue_id
	Email        string    // users.email (unique)
	PasswordHash string    // users.password_hash (bcrypt)
	Role         string    // users.role (MANAGER | HOST)
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
