package model

import "time"

// VendorCategory is the closed set of service types a vendor can offer.
type VendorCategory string

const (
	CategoryVenue          VendorCategory = "VENUE"
	CategoryPhotographer   VendorCategory = "PHOTOGRAPHER"
	CategoryVideographer   VendorCategory = "VIDEOGRAPHER"
	CategoryCaterer        VendorCategory = "CATERER"
	CategoryFlorist        VendorCategory = "FLORIST"
	CategoryMakeupBeauty   VendorCategory = "MAKEUP_BEAUTY"
	CategoryWeddingPlanner VendorCategory = "WEDDING_PLANNER"
	CategoryBandDJ         VendorCategory = "BAND_DJ"
	CategoryCakeDessert    VendorCategory = "CAKE_DESSERT"
	CategoryBarBeverage    VendorCategory = "BAR_BEVERAGE"
	CategoryOfficiant      VendorCategory = "OFFICIANT"
)

// VendorCategories lists every category in a stable order, used by the
// public filter endpoint and by input validation.
func VendorCategories() []VendorCategory {
	return []VendorCategory{
		CategoryVenue, CategoryPhotographer, CategoryVideographer,
		CategoryCaterer, CategoryFlorist, CategoryMakeupBeauty,
		CategoryWeddingPlanner, CategoryBandDJ, CategoryCakeDessert,
		CategoryBarBeverage, CategoryOfficiant,
	}
}

// Valid reports whether c is one of the known categories.
func (c VendorCategory) Valid() bool {
	for _, k := range VendorCategories() {
		if c == k {
			return true
		}
	}
	return false
}

// VendorProfile is the business record attached 1:1 to a VENDOR user.
// A vendor may own venues, receives reviews (authored externally) and
// accumulates bookings and favorites.
type VendorProfile struct {
	ID           uint64         `json:"id"`
	UserID       uint64         `json:"user_id"`
	BusinessName string         `json:"business_name"`
	Category     VendorCategory `json:"category"`
	Description  *string        `json:"description"`
	PriceRange   *string        `json:"price_range"`
	Verified     bool           `json:"verified"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`

	// Joined-in display fields, not columns.
	UserName  string  `json:"user_name,omitempty"`
	UserEmail string  `json:"user_email,omitempty"`
	AvgRating *float64 `json:"average_rating,omitempty"`
}

// Review is a rating left for a vendor. Reviews are read-only in this
// service; they are written by an external channel and only surfaced on
// vendor detail pages.
type Review struct {
	ID           uint64    `json:"id"`
	VendorID     uint64    `json:"vendor_id"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment"`
	ReviewerName string    `json:"reviewer_name"`
	CreatedAt    time.Time `json:"created_at"`
}
