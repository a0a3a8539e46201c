package model

import "time"

// Venue is a single physical location.  The slug identifies the venue's
// public booking page and is the key invalidated when bookings change.
type Venue struct {
	ID        uint64    // venues.id
	Name      string    // venues.name
	Slug      string    // venues.slug (unique)
	Timezone  string    // venues.timezone (IANA name)
	CreatedAt time.Time // venues.created_at
	UpdatedAt time.Time // venues.updated_at
}
