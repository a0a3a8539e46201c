package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/ericfaux/gamehost-sub002/internal/model"
)

// ReservationRepo provides CRUD operations for reservations.  Dates are
// stored in a DATE column and times in TIME columns; queries format
// them back to the canonical "2006-01-02" / "HH:MM" strings the engine
// works with.  All timestamp columns hold UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, venue_id, table_id, game_id, session_id,
	DATE_FORMAT(res_date, '%Y-%m-%d'), TIME_FORMAT(start_time, '%H:%i'), TIME_FORMAT(end_time, '%H:%i'),
	party_size, guest_name, guest_email, guest_phone, guest_note, staff_note,
	status, confirmation_code,
	confirmed_at, arrived_at, seated_at, completed_at, cancelled_at, no_show_at,
	cancel_reason, created_by, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*model.Reservation, error) {
	var r model.Reservation
	var gameID, sessionID, createdBy sql.NullInt64
	var email, phone, guestNote, staffNote, cancelReason sql.NullString
	var status string
	var confirmedAt, arrivedAt, seatedAt, completedAt, cancelledAt, noShowAt sql.NullTime
	err := row.Scan(
		&r.ID, &r.VenueID, &r.TableID, &gameID, &sessionID,
		&r.Date, &r.StartTime, &r.EndTime,
		&r.PartySize, &r.GuestName, &email, &phone, &guestNote, &staffNote,
		&status, &r.Code,
		&confirmedAt, &arrivedAt, &seatedAt, &completedAt, &cancelledAt, &noShowAt,
		&cancelReason, &createdBy, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.Status = model.Status(status)
	if gameID.Valid {
		v := uint64(gameID.Int64)
		r.GameID = &v
	}
	if sessionID.Valid {
		v := uint64(sessionID.Int64)
		r.SessionID = &v
	}
	if createdBy.Valid {
		v := uint64(createdBy.Int64)
		r.CreatedBy = &v
	}
	if email.Valid {
		v := email.String
		r.GuestEmail = &v
	}
	if phone.Valid {
		v := phone.String
		r.GuestPhone = &v
	}
	if guestNote.Valid {
		v := guestNote.String
		r.GuestNote = &v
	}
	if staffNote.Valid {
		v := staffNote.String
		r.StaffNote = &v
	}
	if cancelReason.Valid {
		v := cancelReason.String
		r.CancelReason = &v
	}
	if confirmedAt.Valid {
		t := confirmedAt.Time.UTC()
		r.ConfirmedAt = &t
	}
	if arrivedAt.Valid {
		t := arrivedAt.Time.UTC()
		r.ArrivedAt = &t
	}
	if seatedAt.Valid {
		t := seatedAt.Time.UTC()
		r.SeatedAt = &t
	}
	if completedAt.Valid {
		t := completedAt.Time.UTC()
		r.CompletedAt = &t
	}
	if cancelledAt.Valid {
		t := cancelledAt.Time.UTC()
		r.CancelledAt = &t
	}
	if noShowAt.Valid {
		t := noShowAt.Time.UTC()
		r.NoShowAt = &t
	}
	return &r, nil
}

// isDuplicate reports whether err is a MySQL duplicate-key rejection.
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// Insert persists a new reservation and populates its generated ID and
// timestamps.  When a uniqueness constraint rejects the row it returns
// ErrDuplicate so the caller's retry loop can react.
func (r *ReservationRepo) Insert(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations
		(venue_id, table_id, game_id, session_id, res_date, start_time, end_time,
		 party_size, guest_name, guest_email, guest_phone, guest_note, staff_note,
		 status, confirmation_code,
		 confirmed_at, arrived_at, seated_at, completed_at, cancelled_at, no_show_at,
		 cancel_reason, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		res.VenueID, res.TableID, res.GameID, res.SessionID,
		res.Date, res.StartTime, res.EndTime,
		res.PartySize, res.GuestName, res.GuestEmail, res.GuestPhone, res.GuestNote, res.StaffNote,
		string(res.Status), res.Code,
		res.ConfirmedAt, res.ArrivedAt, res.SeatedAt, res.CompletedAt, res.CancelledAt, res.NoShowAt,
		res.CancelReason, res.CreatedBy,
	)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	// Query back to populate database-assigned timestamps.
	fresh, err := r.GetByID(ctx, res.ID)
	if err != nil {
		return err
	}
	if fresh != nil {
		res.CreatedAt = fresh.CreatedAt
		res.UpdatedAt = fresh.UpdatedAt
	}
	return nil
}

// Update rewrites every mutable column of the reservation.
func (r *ReservationRepo) Update(ctx context.Context, res *model.Reservation) error {
	const q = `UPDATE reservations SET
		table_id = ?, game_id = ?, session_id = ?, res_date = ?, start_time = ?, end_time = ?,
		party_size = ?, guest_name = ?, guest_email = ?, guest_phone = ?, guest_note = ?, staff_note = ?,
		status = ?,
		confirmed_at = ?, arrived_at = ?, seated_at = ?, completed_at = ?, cancelled_at = ?, no_show_at = ?,
		cancel_reason = ?, updated_at = UTC_TIMESTAMP()
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q,
		res.TableID, res.GameID, res.SessionID, res.Date, res.StartTime, res.EndTime,
		res.PartySize, res.GuestName, res.GuestEmail, res.GuestPhone, res.GuestNote, res.StaffNote,
		string(res.Status),
		res.ConfirmedAt, res.ArrivedAt, res.SeatedAt, res.CompletedAt, res.CancelledAt, res.NoShowAt,
		res.CancelReason, res.ID,
	)
	return err
}

// Delete removes a reservation row.  Only the creation protocol's
// rollback path uses it; bookings are otherwise never physically deleted.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	return err
}

// GetByID returns the reservation with the given ID, or (nil, nil).
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id)
	res, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return res, err
}

// GetByCode returns the reservation with the given confirmation code at
// the venue, or (nil, nil).
func (r *ReservationRepo) GetByCode(ctx context.Context, venueID uint64, code string) (*model.Reservation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE venue_id = ? AND confirmation_code = ?`,
		venueID, code)
	res, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return res, err
}

// GetBySessionID returns the reservation linked to a session, or (nil, nil).
func (r *ReservationRepo) GetBySessionID(ctx context.Context, sessionID uint64) (*model.Reservation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE session_id = ?`, sessionID)
	res, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return res, err
}

// CodeExists reports whether any reservation already carries the code.
func (r *ReservationRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM reservations WHERE confirmation_code = ? LIMIT 1`, code).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *ReservationRepo) listActive(ctx context.Context, where string, args ...interface{}) ([]model.Reservation, error) {
	ph, statusArgs := model.ActiveStatusPlaceholders()
	q := `SELECT ` + reservationColumns + ` FROM reservations WHERE ` + where +
		` AND status IN (` + ph + `) ORDER BY start_time`
	args = append(args, statusArgs...)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

// ListActiveByTableDate returns the non-terminal reservations on a
// table for a date, ordered by start time.
func (r *ReservationRepo) ListActiveByTableDate(ctx context.Context, tableID uint64, date string) ([]model.Reservation, error) {
	return r.listActive(ctx, `table_id = ? AND res_date = ?`, tableID, date)
}

// ListActiveByGameDate returns the non-terminal reservations holding a
// copy of the game on a date.
func (r *ReservationRepo) ListActiveByGameDate(ctx context.Context, gameID uint64, date string) ([]model.Reservation, error) {
	return r.listActive(ctx, `game_id = ? AND res_date = ?`, gameID, date)
}

// ListActiveByVenueDate returns every non-terminal reservation at the
// venue on a date; the slot grid groups them by table.
func (r *ReservationRepo) ListActiveByVenueDate(ctx context.Context, venueID uint64, date string) ([]model.Reservation, error) {
	return r.listActive(ctx, `venue_id = ? AND res_date = ?`, venueID, date)
}

// ListByVenueDate returns every reservation at the venue on a date,
// terminal ones included, for the staff booking list.
func (r *ReservationRepo) ListByVenueDate(ctx context.Context, venueID uint64, date string) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations
		WHERE venue_id = ? AND res_date = ? ORDER BY start_time, id`
	rows, err := r.db.QueryContext(ctx, q, venueID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}
