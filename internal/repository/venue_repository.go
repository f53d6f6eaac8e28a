package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/aurora-nuptials/marketplace/internal/model"
)

// VenueRepo persists venues. The amenities and images lists are stored
// as JSON columns.
type VenueRepo struct{ DB *sql.DB }

func NewVenueRepo(db *sql.DB) *VenueRepo { return &VenueRepo{DB: db} }

const venueCols = `v.id, v.name, v.description, v.venue_type, v.address, v.city, v.state,
	v.zip_code, v.capacity, v.price_range, v.amenities, v.images, v.vendor_id,
	v.created_at, v.updated_at, vp.business_name, vp.verified`

func scanVenue(row interface{ Scan(...any) error }) (model.Venue, error) {
	var (
		v                model.Venue
		amenities, images []byte
	)
	err := row.Scan(&v.ID, &v.Name, &v.Description, &v.VenueType, &v.Address, &v.City, &v.State,
		&v.ZipCode, &v.Capacity, &v.PriceRange, &amenities, &images, &v.VendorID,
		&v.CreatedAt, &v.UpdatedAt, &v.VendorBusinessName, &v.VendorVerified)
	if err != nil {
		return v, err
	}
	v.Amenities = decodeStrings(amenities)
	v.Images = decodeStrings(images)
	return v, nil
}

func decodeStrings(raw []byte) []string {
	out := []string{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return out
}

func encodeStrings(v []string) []byte {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return b
}

// Create inserts a venue and returns its id. VendorID is nil for venues
// created by admins without an owning vendor.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO venues (name, description, venue_type, address, city, state, zip_code,
		 capacity, price_range, amenities, images, vendor_id)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		v.Name, v.Description, v.VenueType, v.Address, v.City, v.State, v.ZipCode,
		v.Capacity, v.PriceRange, encodeStrings(v.Amenities), encodeStrings(v.Images), v.VendorID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a venue with its owner's business name and badge.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (model.Venue, error) {
	return scanVenue(r.DB.QueryRowContext(ctx,
		`SELECT `+venueCols+` FROM venues v
		 LEFT JOIN vendor_profiles vp ON vp.id = v.vendor_id
		 WHERE v.id = ? LIMIT 1`, id))
}

// VenueFilter narrows the public venue listing. Zero values mean no
// filtering on that dimension. Amenities matches venues carrying any of
// the listed values.
type VenueFilter struct {
	VenueType   string
	City        string
	State       string
	MinCapacity int
	PriceRange  string
	Amenities   []string
	Search      string
	Page        int
	Limit       int
}

// List returns venues matching the filter, newest first.
func (r *VenueRepo) List(ctx context.Context, f VenueFilter) ([]model.Venue, Pagination, error) {
	where := []string{"1=1"}
	args := []any{}

	if f.VenueType != "" {
		where = append(where, "v.venue_type = ?")
		args = append(args, f.VenueType)
	}
	if f.City != "" {
		where = append(where, "v.city LIKE ?")
		args = append(args, "%"+f.City+"%")
	}
	if f.State != "" {
		where = append(where, "v.state LIKE ?")
		args = append(args, "%"+f.State+"%")
	}
	if f.MinCapacity > 0 {
		where = append(where, "v.capacity >= ?")
		args = append(args, f.MinCapacity)
	}
	if f.PriceRange != "" {
		where = append(where, "v.price_range = ?")
		args = append(args, f.PriceRange)
	}
	if len(f.Amenities) > 0 {
		ors := make([]string, 0, len(f.Amenities))
		for _, a := range f.Amenities {
			ors = append(ors, "JSON_CONTAINS(v.amenities, JSON_QUOTE(?))")
			args = append(args, a)
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}
	if f.Search != "" {
		where = append(where, "(v.name LIKE ? OR v.description LIKE ? OR v.city LIKE ?)")
		s := "%" + f.Search + "%"
		args = append(args, s, s, s)
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM venues v WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, Pagination{}, err
	}
	offset, page := paginate(f.Page, f.Limit, total)

	q := `SELECT ` + venueCols + ` FROM venues v
	      LEFT JOIN vendor_profiles vp ON vp.id = v.vendor_id
	      WHERE ` + cond + `
	      ORDER BY v.created_at DESC
	      LIMIT ? OFFSET ?`
	rows, err := r.DB.QueryContext(ctx, q, append(args, pageLimit(f.Limit), offset)...)
	if err != nil {
		return nil, Pagination{}, err
	}
	defer rows.Close()

	venues := make([]model.Venue, 0)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, Pagination{}, err
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, Pagination{}, err
	}
	return venues, page, nil
}

// VenueUpdate carries the updatable venue fields; nil leaves a field
// unchanged.
type VenueUpdate struct {
	Name        *string
	Description *string
	VenueType   *model.VenueType
	Address     *string
	City        *string
	State       *string
	ZipCode     *string
	Capacity    *int
	PriceRange  *string
	Amenities   []string
	Images      []string
}

// Update applies the provided fields to the venue.
func (r *VenueRepo) Update(ctx context.Context, id uint64, upd VenueUpdate) error {
	set := ""
	args := []any{}
	add := func(col string, v any) {
		if set != "" {
			set += ", "
		}
		set += col + "=?"
		args = append(args, v)
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.VenueType != nil {
		add("venue_type", *upd.VenueType)
	}
	if upd.Address != nil {
		add("address", *upd.Address)
	}
	if upd.City != nil {
		add("city", *upd.City)
	}
	if upd.State != nil {
		add("state", *upd.State)
	}
	if upd.ZipCode != nil {
		add("zip_code", *upd.ZipCode)
	}
	if upd.Capacity != nil {
		add("capacity", *upd.Capacity)
	}
	if upd.PriceRange != nil {
		add("price_range", *upd.PriceRange)
	}
	if upd.Amenities != nil {
		add("amenities", encodeStrings(upd.Amenities))
	}
	if upd.Images != nil {
		add("images", encodeStrings(upd.Images))
	}
	if set == "" {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx, "UPDATE venues SET "+set+" WHERE id=?", args...)
	return err
}

// Delete removes a venue. It refuses with ErrConflict while the venue
// still has non-cancelled bookings on future dates; past and cancelled
// bookings do not block removal.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var blocking int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings
		 WHERE venue_id = ? AND status <> 'cancelled' AND event_date >= CURDATE()`,
		id).Scan(&blocking)
	if err != nil {
		return err
	}
	if blocking > 0 {
		return ErrConflict
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM venues WHERE id=?", id)
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
	return tx.Commit()
}
