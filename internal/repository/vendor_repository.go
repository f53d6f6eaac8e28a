package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/aurora-nuptials/marketplace/internal/model"
)

// VendorRepo persists vendor profiles and their reviews.
type VendorRepo struct{ DB *sql.DB }

func NewVendorRepo(db *sql.DB) *VendorRepo { return &VendorRepo{DB: db} }

const vendorCols = `vp.id, vp.user_id, vp.business_name, vp.category, vp.description,
	vp.price_range, vp.verified, vp.created_at, vp.updated_at, u.name, u.email`

func scanVendor(row interface{ Scan(...any) error }) (model.VendorProfile, error) {
	var vp model.VendorProfile
	err := row.Scan(&vp.ID, &vp.UserID, &vp.BusinessName, &vp.Category, &vp.Description,
		&vp.PriceRange, &vp.Verified, &vp.CreatedAt, &vp.UpdatedAt, &vp.UserName, &vp.UserEmail)
	return vp, err
}

// GetByUserID fetches the profile belonging to a user account.
func (r *VendorRepo) GetByUserID(ctx context.Context, userID uint64) (model.VendorProfile, error) {
	return scanVendor(r.DB.QueryRowContext(ctx,
		`SELECT `+vendorCols+` FROM vendor_profiles vp JOIN users u ON u.id = vp.user_id
		 WHERE vp.user_id = ? LIMIT 1`, userID))
}

// GetByID fetches a profile by its own id.
func (r *VendorRepo) GetByID(ctx context.Context, id uint64) (model.VendorProfile, error) {
	return scanVendor(r.DB.QueryRowContext(ctx,
		`SELECT `+vendorCols+` FROM vendor_profiles vp JOIN users u ON u.id = vp.user_id
		 WHERE vp.id = ? LIMIT 1`, id))
}

// VendorFilter narrows the public vendor listing. Zero values mean no
// filtering on that dimension.
type VendorFilter struct {
	Category   string
	City       string
	State      string
	Verified   *bool
	PriceRange string
	Search     string
	Page       int
	Limit      int
}

// List returns vendors matching the filter, verified vendors first and
// newest within each group, with the average review rating joined in.
// City and state match against the vendor's venues.
func (r *VendorRepo) List(ctx context.Context, f VendorFilter) ([]model.VendorProfile, Pagination, error) {
	where := []string{"1=1"}
	args := []any{}

	if f.Category != "" {
		where = append(where, "vp.category = ?")
		args = append(args, f.Category)
	}
	if f.City != "" {
		where = append(where, "EXISTS (SELECT 1 FROM venues v WHERE v.vendor_id = vp.id AND v.city LIKE ?)")
		args = append(args, "%"+f.City+"%")
	}
	if f.State != "" {
		where = append(where, "EXISTS (SELECT 1 FROM venues v WHERE v.vendor_id = vp.id AND v.state LIKE ?)")
		args = append(args, "%"+f.State+"%")
	}
	if f.Verified != nil {
		where = append(where, "vp.verified = ?")
		args = append(args, *f.Verified)
	}
	if f.PriceRange != "" {
		where = append(where, "vp.price_range LIKE ?")
		args = append(args, "%"+f.PriceRange+"%")
	}
	if f.Search != "" {
		where = append(where, "(vp.business_name LIKE ? OR vp.description LIKE ? OR u.name LIKE ?)")
		s := "%" + f.Search + "%"
		args = append(args, s, s, s)
	}
	cond := strings.Join(where, " AND ")

	var total int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM vendor_profiles vp JOIN users u ON u.id = vp.user_id WHERE "+cond,
		args...).Scan(&total)
	if err != nil {
		return nil, Pagination{}, err
	}
	offset, page := paginate(f.Page, f.Limit, total)

	q := `SELECT ` + vendorCols + `, AVG(rv.rating)
	      FROM vendor_profiles vp
	      JOIN users u ON u.id = vp.user_id
	      LEFT JOIN reviews rv ON rv.vendor_id = vp.id
	      WHERE ` + cond + `
	      GROUP BY vp.id
	      ORDER BY vp.verified DESC, vp.created_at DESC
	      LIMIT ? OFFSET ?`
	rows, err := r.DB.QueryContext(ctx, q, append(args, pageLimit(f.Limit), offset)...)
	if err != nil {
		return nil, Pagination{}, err
	}
	defer rows.Close()

	vendors := make([]model.VendorProfile, 0)
	for rows.Next() {
		var vp model.VendorProfile
		var avg sql.NullFloat64
		if err := rows.Scan(&vp.ID, &vp.UserID, &vp.BusinessName, &vp.Category, &vp.Description,
			&vp.PriceRange, &vp.Verified, &vp.CreatedAt, &vp.UpdatedAt,
			&vp.UserName, &vp.UserEmail, &avg); err != nil {
			return nil, Pagination{}, err
		}
		if avg.Valid {
			v := avg.Float64
			vp.AvgRating = &v
		}
		vendors = append(vendors, vp)
	}
	if err := rows.Err(); err != nil {
		return nil, Pagination{}, err
	}
	return vendors, page, nil
}

func pageLimit(limit int) int {
	if limit < 1 {
		return 12
	}
	return limit
}

// VendorUpdate carries the updatable profile fields; nil leaves a field
// unchanged.
type VendorUpdate struct {
	BusinessName *string
	Category     *model.VendorCategory
	Description  *string
	PriceRange   *string
}

// Update applies the provided fields to the profile.
func (r *VendorRepo) Update(ctx context.Context, id uint64, upd VendorUpdate) error {
	set := ""
	args := []any{}
	add := func(col string, v any) {
		if set != "" {
			set += ", "
		}
		set += col + "=?"
		args = append(args, v)
	}
	if upd.BusinessName != nil {
		add("business_name", *upd.BusinessName)
	}
	if upd.Category != nil {
		add("category", *upd.Category)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.PriceRange != nil {
		add("price_range", *upd.PriceRange)
	}
	if set == "" {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx, "UPDATE vendor_profiles SET "+set+" WHERE id=?", args...)
	return err
}

// SetVerified toggles the verification badge.
func (r *VendorRepo) SetVerified(ctx context.Context, id uint64, verified bool) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE vendor_profiles SET verified=? WHERE id=?", verified, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		// Distinguish a missing vendor from a no-op update.
		var exists int
		if e := r.DB.QueryRowContext(ctx,
			"SELECT 1 FROM vendor_profiles WHERE id=?", id).Scan(&exists); e != nil {
			return e
		}
	}
	return err
}

// OwnedVenueIDs returns the ids of every venue owned by the vendor.
func (r *VendorRepo) OwnedVenueIDs(ctx context.Context, vendorID uint64) ([]uint64, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id FROM venues WHERE vendor_id=?", vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountVenues returns how many venues the vendor owns.
func (r *VendorRepo) CountVenues(ctx context.Context, vendorID uint64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM venues WHERE vendor_id=?", vendorID).Scan(&n)
	return n, err
}

// CountFavorites returns how many couples favorited the vendor.
func (r *VendorRepo) CountFavorites(ctx context.Context, vendorID uint64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM favorites WHERE vendor_id=?", vendorID).Scan(&n)
	return n, err
}
