package repository

import (
	"context"
	"database/sql"

	"github.com/ericfaux/gamehost-sub002/internal/model"
)

// GameRepo provides read access to the venue's game library.
type GameRepo struct {
	db *sql.DB
}

// NewGameRepo returns a new GameRepo bound to the given database.
func NewGameRepo(db *sql.DB) *GameRepo { return &GameRepo{db: db} }

const gameColumns = `id, venue_id, title, copies_in_rotation, created_at, updated_at`

func scanGame(row rowScanner) (*model.Game, error) {
	var g model.Game
	err := row.Scan(&g.ID, &g.VenueID, &g.Title, &g.Copies, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// GetByID returns the game with the given ID, or (nil, nil).
func (r *GameRepo) GetByID(ctx context.Context, id uint64) (*model.Game, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE id = ?`, id)
	g, err := scanGame(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return g, err
}

// ListByVenue returns the venue's games ordered by title.
func (r *GameRepo) ListByVenue(ctx context.Context, venueID uint64) ([]model.Game, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE venue_id = ? ORDER BY title`, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}
