package model

import "time"

// Game is a board game title with a finite number of physical copies in
// rotation.  A copy is considered committed for any time window that an
// active reservation referencing the game overlaps, so at most Copies
// reservations may share a window.
type Game struct {
	ID        uint64    // games.id
	VenueID   uint64    // games.venue_id
	Title     string    // games.title
	Copies    int       // games.copies_in_rotation
	CreatedAt time.Time // games.created_at
	UpdatedAt time.Time // games.updated_at
}
