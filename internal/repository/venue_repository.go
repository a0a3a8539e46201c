package repository

import (
	"context"
	"database/sql"

	"github.com/ericfaux/gamehost-sub002/internal/model"
)

// VenueRepo provides read access to venues.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo returns a new VenueRepo bound to the given database.
func NewVenueRepo(db *sql.DB) *VenueRepo { return &VenueRepo{db: db} }

const venueColumns = `id, name, slug, timezone, created_at, updated_at`

func scanVenue(row rowScanner) (*model.Venue, error) {
	var v model.Venue
	err := row.Scan(&v.ID, &v.Name, &v.Slug, &v.Timezone, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// GetByID returns the venue with the given ID, or (nil, nil).
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+venueColumns+` FROM venues WHERE id = ?`, id)
	v, err := scanVenue(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return v, err
}

// GetBySlug returns the venue with the given slug, or (nil, nil).
func (r *VenueRepo) GetBySlug(ctx context.Context, slug string) (*model.Venue, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+venueColumns+` FROM venues WHERE slug = ?`, slug)
	v, err := scanVenue(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return v, err
}
