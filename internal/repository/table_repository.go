package repository

import (
	"context"
	"database/sql"

	"github.com/ericfaux/gamehost-sub002/internal/model"
)

// TableRepo provides read access to venue tables.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo returns a new TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

const tableColumns = `id, venue_id, name, capacity, is_active, created_at, updated_at`

func scanTable(row rowScanner) (*model.Table, error) {
	var t model.Table
	err := row.Scan(&t.ID, &t.VenueID, &t.Name, &t.Capacity, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByID returns the table with the given ID, or (nil, nil).
func (r *TableRepo) GetByID(ctx context.Context, id uint64) (*model.Table, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+tableColumns+` FROM tables WHERE id = ?`, id)
	t, err := scanTable(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return t, err
}

// ListActiveByVenue returns the venue's active tables ordered by name.
func (r *TableRepo) ListActiveByVenue(ctx context.Context, venueID uint64) ([]model.Table, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+tableColumns+` FROM tables WHERE venue_id = ? AND is_active = 1 ORDER BY name`,
		venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Table
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}
