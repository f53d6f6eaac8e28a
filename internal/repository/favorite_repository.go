package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/aurora-nuptials/marketplace/internal/model"
)

// FavoriteRepo persists a couple's saved venues and vendors. A unique
// key on (couple_profile_id, venue_id) and (couple_profile_id,
// vendor_id) backs the duplicate check.
type FavoriteRepo struct{ DB *sql.DB }

func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{DB: db} }

// Create saves a favorite for exactly one target. A pre-check gives the
// common duplicate a clean error; the unique key catches the race.
func (r *FavoriteRepo) Create(ctx context.Context, coupleProfileID uint64, venueID, vendorID *uint64) (uint64, error) {
	var existing int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM favorites
		 WHERE couple_profile_id = ? AND (venue_id <=> ? AND vendor_id <=> ?)`,
		coupleProfileID, venueID, vendorID).Scan(&existing)
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		return 0, ErrDuplicateFavorite
	}

	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO favorites (couple_profile_id, venue_id, vendor_id) VALUES (?,?,?)",
		coupleProfileID, venueID, vendorID)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrDuplicateFavorite
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// DeleteByVenue removes the couple's favorite for a venue.
func (r *FavoriteRepo) DeleteByVenue(ctx context.Context, coupleProfileID, venueID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM favorites WHERE couple_profile_id=? AND venue_id=?",
		coupleProfileID, venueID)
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

// DeleteByVendor removes the couple's favorite for a vendor.
func (r *FavoriteRepo) DeleteByVendor(ctx context.Context, coupleProfileID, vendorID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM favorites WHERE couple_profile_id=? AND vendor_id=?",
		coupleProfileID, vendorID)
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

// ListByCouple returns the couple's favorites, newest first, with the
// saved venue or vendor summary joined in. kind filters to "venues" or
// "vendors"; anything else returns both.
func (r *FavoriteRepo) ListByCouple(ctx context.Context, coupleProfileID uint64, kind string) ([]model.Favorite, error) {
	cond := "f.couple_profile_id = ?"
	switch kind {
	case "venues":
		cond += " AND f.venue_id IS NOT NULL"
	case "vendors":
		cond += " AND f.vendor_id IS NOT NULL"
	}

	q := `SELECT f.id, f.couple_profile_id, f.venue_id, f.vendor_id, f.created_at,
	             v.id, v.name, v.venue_type, v.city, v.state, v.capacity, v.price_range, v.images,
	             vp.id, vp.business_name, vp.category, vp.description, vp.price_range, vp.verified
	      FROM favorites f
	      LEFT JOIN venues v ON v.id = f.venue_id
	      LEFT JOIN vendor_profiles vp ON vp.id = f.vendor_id
	      WHERE ` + cond + `
	      ORDER BY f.created_at DESC`
	rows, err := r.DB.QueryContext(ctx, q, coupleProfileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favorites := make([]model.Favorite, 0)
	for rows.Next() {
		var (
			f model.Favorite

			venueID    sql.NullInt64
			venueName  sql.NullString
			venueType  sql.NullString
			venueCity  sql.NullString
			venueState sql.NullString
			capacity   sql.NullInt64
			venuePrice sql.NullString
			images     []byte

			vendorID     sql.NullInt64
			businessName sql.NullString
			category     sql.NullString
			description  sql.NullString
			vendorPrice  sql.NullString
			verified     sql.NullBool
		)
		if err := rows.Scan(&f.ID, &f.CoupleProfileID, &f.VenueID, &f.VendorID, &f.CreatedAt,
			&venueID, &venueName, &venueType, &venueCity, &venueState, &capacity, &venuePrice, &images,
			&vendorID, &businessName, &category, &description, &vendorPrice, &verified); err != nil {
			return nil, err
		}
		if venueID.Valid {
			v := &model.Venue{
				ID:        uint64(venueID.Int64),
				Name:      venueName.String,
				VenueType: model.VenueType(venueType.String),
				City:      venueCity.String,
				State:     venueState.String,
			}
			if capacity.Valid {
				c := int(capacity.Int64)
				v.Capacity = &c
			}
			if venuePrice.Valid {
				p := venuePrice.String
				v.PriceRange = &p
			}
			v.Images = []string{}
			if len(images) > 0 {
				_ = json.Unmarshal(images, &v.Images)
			}
			f.Venue = v
		}
		if vendorID.Valid {
			vp := &model.VendorProfile{
				ID:           uint64(vendorID.Int64),
				BusinessName: businessName.String,
				Category:     model.VendorCategory(category.String),
				Verified:     verified.Bool,
			}
			if description.Valid {
				d := description.String
				vp.Description = &d
			}
			if vendorPrice.Valid {
				p := vendorPrice.String
				vp.PriceRange = &p
			}
			f.Vendor = vp
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}
