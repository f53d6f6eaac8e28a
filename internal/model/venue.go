package model

import "time"

// VenueType is the closed set of venue styles used for browsing filters.
type VenueType string

const (
	VenueOutdoor         VenueType = "OUTDOOR"
	VenueIntimate        VenueType = "INTIMATE"
	VenueBeachWaterfront VenueType = "BEACH_WATERFRONT"
	VenueBarn            VenueType = "BARN"
	VenueEstate          VenueType = "ESTATE"
	VenueVineyard        VenueType = "VINEYARD"
	VenueAllInclusive    VenueType = "ALL_INCLUSIVE"
	VenueRehearsalDinner VenueType = "REHEARSAL_DINNER"
	VenueWeddingShower   VenueType = "WEDDING_SHOWER"
)

// VenueTypes lists every venue type in a stable order.
func VenueTypes() []VenueType {
	return []VenueType{
		VenueOutdoor, VenueIntimate, VenueBeachWaterfront, VenueBarn,
		VenueEstate, VenueVineyard, VenueAllInclusive,
		VenueRehearsalDinner, VenueWeddingShower,
	}
}

// Valid reports whether t is one of the known venue types.
func (t VenueType) Valid() bool {
	for _, k := range VenueTypes() {
		if t == k {
			return true
		}
	}
	return false
}

// Venue is a physical location offered on the marketplace. Ownership is
// optional: a venue created by an admin may have no vendor attached.
// Amenities and Images are persisted as JSON columns.
type Venue struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	VenueType   VenueType `json:"venue_type"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	ZipCode     *string   `json:"zip_code"`
	Capacity    *int      `json:"capacity"`
	PriceRange  *string   `json:"price_range"`
	Amenities   []string  `json:"amenities"`
	Images      []string  `json:"images"`
	VendorID    *uint64   `json:"vendor_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined-in display fields, not columns.
	VendorBusinessName *string `json:"vendor_business_name,omitempty"`
	VendorVerified     *bool   `json:"vendor_verified,omitempty"`
}
