package model

import "time"

// Session is a live occupancy of a table, independent of whether it
// originated from a reservation (seated booking) or a walk-in.  A table
// should have at most one session with a nil EndedAt at any moment; the
// seating flow actively ends stale ones before opening a new session.
//
// Fields:
//  ID        – primary key identifier.
//  VenueID   – owning venue.
//  TableID   – table in use.
//  GameID    – board game taken to the table, if any.
//  StartedAt – when the party was seated.
//  EndedAt   – when the table was freed; nil while live.
type Session struct {
	ID        uint64     // sessions.id
	VenueID   uint64     // sessions.venue_id
	TableID   uint64     // sessions.table_id
	GameID    *uint64    // sessions.game_id (nullable)
	StartedAt time.Time  // sessions.started_at
	EndedAt   *time.Time // sessions.ended_at (nullable)
	CreatedAt time.Time  // sessions.created_at
}
