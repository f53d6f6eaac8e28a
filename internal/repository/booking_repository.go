package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/aurora-nuptials/marketplace/internal/model"
)

// BookingRepo persists bookings. Creation runs in a transaction that
// locks conflicting rows so two couples cannot claim the same venue or
// vendor for the same date.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

const bookingCols = `b.id, b.couple_profile_id, b.venue_id, b.vendor_id, b.event_date,
	b.status, b.notes, b.created_at, b.updated_at,
	v.name, v.vendor_id, vp.business_name, vp.category, u.name`

const bookingJoins = `FROM bookings b
	LEFT JOIN venues v ON v.id = b.venue_id
	LEFT JOIN vendor_profiles vp ON vp.id = b.vendor_id
	JOIN couple_profiles cp ON cp.id = b.couple_profile_id
	JOIN users u ON u.id = cp.user_id`

func scanBooking(row interface{ Scan(...any) error }) (model.Booking, error) {
	var b model.Booking
	err := row.Scan(&b.ID, &b.CoupleProfileID, &b.VenueID, &b.VendorID, &b.EventDate,
		&b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
		&b.VenueName, &b.VenueVendorID, &b.VendorBusinessName, &b.VendorCategory, &b.CoupleName)
	return b, err
}

// Create inserts a pending booking after verifying, under row locks,
// that neither target already holds a non-cancelled booking for the
// date. Each target is checked on its own: a venue conflict does not
// depend on the vendor and vice versa. Returns ErrSlotTaken when either
// check fails.
func (r *BookingRepo) Create(ctx context.Context, coupleProfileID uint64, venueID, vendorID *uint64, eventDate time.Time, notes *string) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	day := eventDate.Format("2006-01-02")
	if venueID != nil {
		var n int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM bookings
			 WHERE venue_id = ? AND event_date = ? AND status <> 'cancelled' FOR UPDATE`,
			*venueID, day).Scan(&n)
		if err != nil {
			return 0, err
		}
		if n > 0 {
			return 0, ErrSlotTaken
		}
	}
	if vendorID != nil {
		var n int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM bookings
			 WHERE vendor_id = ? AND event_date = ? AND status <> 'cancelled' FOR UPDATE`,
			*vendorID, day).Scan(&n)
		if err != nil {
			return 0, err
		}
		if n > 0 {
			return 0, ErrSlotTaken
		}
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (couple_profile_id, venue_id, vendor_id, event_date, status, notes)
		 VALUES (?,?,?,?,?,?)`,
		coupleProfileID, venueID, vendorID, day, model.BookingPending, notes)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a booking with the joined-in names the handlers need
// for scoping checks and responses.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	return scanBooking(r.DB.QueryRowContext(ctx,
		"SELECT "+bookingCols+" "+bookingJoins+" WHERE b.id = ? LIMIT 1", id))
}

// BookingFilter narrows a booking listing. The Couple/Vendor fields
// carry the caller's scope; handlers set exactly one of them for
// non-admin callers.
type BookingFilter struct {
	CoupleProfileID uint64
	VendorProfileID uint64
	OwnedVenueIDs   []uint64
	Status          string
	VenueType       string
	VendorCategory  string
	DateFrom        string
	DateTo          string
	Page            int
	Limit           int
}

func (f BookingFilter) build() (string, []any) {
	where := []string{"1=1"}
	args := []any{}

	if f.CoupleProfileID != 0 {
		where = append(where, "b.couple_profile_id = ?")
		args = append(args, f.CoupleProfileID)
	}
	if f.VendorProfileID != 0 {
		ors := []string{"b.vendor_id = ?"}
		args = append(args, f.VendorProfileID)
		if len(f.OwnedVenueIDs) > 0 {
			ph := make([]string, len(f.OwnedVenueIDs))
			for i, id := range f.OwnedVenueIDs {
				ph[i] = "?"
				args = append(args, id)
			}
			ors = append(ors, "b.venue_id IN ("+strings.Join(ph, ",")+")")
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}
	if f.Status != "" {
		where = append(where, "b.status = ?")
		args = append(args, f.Status)
	}
	if f.VenueType != "" {
		where = append(where, "v.venue_type = ?")
		args = append(args, f.VenueType)
	}
	if f.VendorCategory != "" {
		where = append(where, "vp.category = ?")
		args = append(args, f.VendorCategory)
	}
	if f.DateFrom != "" {
		where = append(where, "b.event_date >= ?")
		args = append(args, f.DateFrom)
	}
	if f.DateTo != "" {
		where = append(where, "b.event_date <= ?")
		args = append(args, f.DateTo)
	}
	return strings.Join(where, " AND "), args
}

// List returns bookings matching the filter, newest first.
func (r *BookingRepo) List(ctx context.Context, f BookingFilter) ([]model.Booking, Pagination, error) {
	cond, args := f.build()

	var total int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) "+bookingJoins+" WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, Pagination{}, err
	}
	offset, page := paginate(f.Page, f.Limit, total)

	q := "SELECT " + bookingCols + " " + bookingJoins + " WHERE " + cond +
		" ORDER BY b.created_at DESC LIMIT ? OFFSET ?"
	rows, err := r.DB.QueryContext(ctx, q, append(args, pageLimit(f.Limit), offset)...)
	if err != nil {
		return nil, Pagination{}, err
	}
	defer rows.Close()

	bookings := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, Pagination{}, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, Pagination{}, err
	}
	return bookings, page, nil
}

// ListAll returns every booking matching the scope without pagination.
// The statistics and timeline endpoints reduce over the full set.
func (r *BookingRepo) ListAll(ctx context.Context, f BookingFilter) ([]model.Booking, error) {
	cond, args := f.build()
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+bookingCols+" "+bookingJoins+" WHERE "+cond+" ORDER BY b.event_date ASC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// UpdateStatus sets the booking status.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status model.BookingStatus) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE id=?", status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var exists int
		if e := r.DB.QueryRowContext(ctx,
			"SELECT 1 FROM bookings WHERE id=?", id).Scan(&exists); e != nil {
			return e
		}
	}
	return nil
}

// Delete removes a booking.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM bookings WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// FindConflict returns the non-cancelled booking holding the given
// venue or vendor on the date, or sql.ErrNoRows when the slot is free.
// It backs the public availability endpoint, which reveals only the
// booking id, couple name and status.
func (r *BookingRepo) FindConflict(ctx context.Context, venueID, vendorID *uint64, eventDate string) (model.Booking, error) {
	where := []string{"b.event_date = ?", "b.status <> 'cancelled'"}
	args := []any{eventDate}
	if venueID != nil {
		where = append(where, "b.venue_id = ?")
		args = append(args, *venueID)
	}
	if vendorID != nil {
		where = append(where, "b.vendor_id = ?")
		args = append(args, *vendorID)
	}
	return scanBooking(r.DB.QueryRowContext(ctx,
		"SELECT "+bookingCols+" "+bookingJoins+" WHERE "+strings.Join(where, " AND ")+" LIMIT 1",
		args...))
}
