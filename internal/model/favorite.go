package model

import "time"

// Favorite links a couple to a saved venue or vendor (exactly one of the
// two targets is set). A couple may favorite a given target at most once;
// the uniqueness is enforced by a database key, with an application-level
// pre-check for a friendlier error.
type Favorite struct {
	ID              uint64    `json:"id"`
	CoupleProfileID uint64    `json:"couple_profile_id"`
	VenueID         *uint64   `json:"venue_id"`
	VendorID        *uint64   `json:"vendor_id"`
	CreatedAt       time.Time `json:"created_at"`

	// Joined-in summaries for listing endpoints; not columns.
	Venue  *Venue         `json:"venue,omitempty"`
	Vendor *VendorProfile `json:"vendor,omitempty"`
}
