package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/ericfaux/gamehost-sub002/internal/model"
)

// reservationView renders a reservation for a response body.  Staff
// note and creator are only exposed on the staff surface.
func reservationView(r *model.Reservation, staff bool) echo.Map {
	m := echo.Map{
		"id":                r.ID,
		"venue_id":          r.VenueID,
		"table_id":          r.TableID,
		"game_id":           r.GameID,
		"session_id":        r.SessionID,
		"date":              r.Date,
		"start_time":        r.StartTime,
		"end_time":          r.EndTime,
		"party_size":        r.PartySize,
		"guest_name":        r.GuestName,
		"guest_email":       r.GuestEmail,
		"guest_phone":       r.GuestPhone,
		"guest_note":        r.GuestNote,
		"status":            string(r.Status),
		"confirmation_code": r.Code,
		"confirmed_at":      r.ConfirmedAt,
		"arrived_at":        r.ArrivedAt,
		"seated_at":         r.SeatedAt,
		"completed_at":      r.CompletedAt,
		"cancelled_at":      r.CancelledAt,
		"no_show_at":        r.NoShowAt,
		"cancel_reason":     r.CancelReason,
		"created_at":        r.CreatedAt,
		"updated_at":        r.UpdatedAt,
	}
	if staff {
		m["staff_note"] = r.StaffNote
		m["created_by"] = r.CreatedBy
	}
	return m
}

func sessionView(s *model.Session) echo.Map {
	return echo.Map{
		"id":         s.ID,
		"venue_id":   s.VenueID,
		"table_id":   s.TableID,
		"game_id":    s.GameID,
		"started_at": s.StartedAt,
		"ended_at":   s.EndedAt,
	}
}
