package repository

import (
	"context"
	"database/sql"

	"github.com/ericfaux/gamehost-sub002/internal/model"
)

// SettingsRepo reads per-venue booking policy, materializing a default
// row the first time a venue is seen.
type SettingsRepo struct {
	db *sql.DB
}

// NewSettingsRepo returns a new SettingsRepo bound to the given database.
func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{db: db} }

const settingsColumns = `venue_id, min_notice_hours, max_advance_days, default_duration_min,
	buffer_min, no_show_grace_min, early_seat_warn_min,
	deposit_required, deposit_cents, notify_email, notify_sms, require_email, require_phone,
	TIME_FORMAT(open_time, '%H:%i'), TIME_FORMAT(close_time, '%H:%i'),
	slot_interval_min, limited_threshold, created_at, updated_at`

func scanSettings(row rowScanner) (*model.VenueSettings, error) {
	var s model.VenueSettings
	err := row.Scan(
		&s.VenueID, &s.MinNoticeHours, &s.MaxAdvanceDays, &s.DefaultDurationMin,
		&s.BufferMin, &s.NoShowGraceMin, &s.EarlySeatWarnMin,
		&s.DepositRequired, &s.DepositCents, &s.NotifyEmail, &s.NotifySMS, &s.RequireEmail, &s.RequirePhone,
		&s.OpenTime, &s.CloseTime,
		&s.SlotIntervalMin, &s.LimitedThreshold, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetOrCreate returns the venue's policy row, inserting the defaults
// when none exists yet.  A concurrent first-access race resolves via
// the duplicate-key rejection: the loser re-reads the winner's row.
func (r *SettingsRepo) GetOrCreate(ctx context.Context, venueID uint64) (*model.VenueSettings, error) {
	s, err := r.get(ctx, venueID)
	if err != nil || s != nil {
		return s, err
	}

	d := model.DefaultVenueSettings(venueID)
	const q = `INSERT INTO venue_settings
		(venue_id, min_notice_hours, max_advance_days, default_duration_min,
		 buffer_min, no_show_grace_min, early_seat_warn_min,
		 deposit_required, deposit_cents, notify_email, notify_sms, require_email, require_phone,
		 open_time, close_time, slot_interval_min, limited_threshold)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, q,
		d.VenueID, d.MinNoticeHours, d.MaxAdvanceDays, d.DefaultDurationMin,
		d.BufferMin, d.NoShowGraceMin, d.EarlySeatWarnMin,
		d.DepositRequired, d.DepositCents, d.NotifyEmail, d.NotifySMS, d.RequireEmail, d.RequirePhone,
		d.OpenTime, d.CloseTime, d.SlotIntervalMin, d.LimitedThreshold,
	)
	if err != nil && !isDuplicate(err) {
		return nil, err
	}
	return r.get(ctx, venueID)
}

func (r *SettingsRepo) get(ctx context.Context, venueID uint64) (*model.VenueSettings, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+settingsColumns+` FROM venue_settings WHERE venue_id = ?`, venueID)
	s, err := scanSettings(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}
