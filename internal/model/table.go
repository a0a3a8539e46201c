package model

import "time"

// Table is a physical table in a venue.  Capacity bounds the party size
// a reservation may admit; inactive tables are never offered for
// booking but keep their historical reservations.
type Table struct {
	ID        uint64    // tables.id
	VenueID   uint64    // tables.venue_id
	Name      string    // tables.name
	Capacity  int       // tables.capacity
	IsActive  bool      // tables.is_active
	CreatedAt time.Time // tables.created_at
	UpdatedAt time.Time // tables.updated_at
}
