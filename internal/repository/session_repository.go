package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/ericfaux/gamehost-sub002/internal/model"
)

// SessionRepo provides CRUD operations for live table sessions.
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo returns a new SessionRepo bound to the given database.
func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{db: db} }

const sessionColumns = `id, venue_id, table_id, game_id, started_at, ended_at, created_at`

func scanSession(row rowScanner) (*model.Session, error) {
	var s model.Session
	var gameID sql.NullInt64
	var endedAt sql.NullTime
	err := row.Scan(&s.ID, &s.VenueID, &s.TableID, &gameID, &s.StartedAt, &endedAt, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if gameID.Valid {
		v := uint64(gameID.Int64)
		s.GameID = &v
	}
	if endedAt.Valid {
		t := endedAt.Time.UTC()
		s.EndedAt = &t
	}
	return &s, nil
}

// Insert persists a new session and populates its generated ID.
func (r *SessionRepo) Insert(ctx context.Context, s *model.Session) error {
	const q = `INSERT INTO sessions (venue_id, table_id, game_id, started_at)
		VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, s.VenueID, s.TableID, s.GameID, s.StartedAt)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID returns the session with the given ID, or (nil, nil).
func (r *SessionRepo) GetByID(ctx context.Context, id uint64) (*model.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	s, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

// GetOpenByTable returns the table's live session, or (nil, nil) when
// the table is free.
func (r *SessionRepo) GetOpenByTable(ctx context.Context, tableID uint64) (*model.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions
		WHERE table_id = ? AND ended_at IS NULL ORDER BY started_at DESC LIMIT 1`, tableID)
	s, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

// End marks a session closed at the given instant.  Already-ended
// sessions are left untouched so End is safe to repeat.
func (r *SessionRepo) End(ctx context.Context, id uint64, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET ended_at = ? WHERE id = ? AND ended_at IS NULL`, at, id)
	return err
}

// ListOpenByVenue returns the venue's live sessions ordered by start.
func (r *SessionRepo) ListOpenByVenue(ctx context.Context, venueID uint64) ([]model.Session, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions
		WHERE venue_id = ? AND ended_at IS NULL ORDER BY started_at`, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}
