package model

import "time"

// BookingStatus is the closed set of booking states. Values are stored
// lower-cased, matching the public API.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// ParseBookingStatus validates a status string from a request body.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return BookingStatus(s), true
	}
	return "", false
}

// Booking reserves a venue and/or a vendor for a couple on a date.
// At least one of VenueID/VendorID is set; both are allowed and each
// target is checked independently for availability at creation time.
type Booking struct {
	ID              uint64        `json:"id"`
	CoupleProfileID uint64        `json:"couple_profile_id"`
	VenueID         *uint64       `json:"venue_id"`
	VendorID        *uint64       `json:"vendor_id"`
	EventDate       time.Time     `json:"event_date"`
	Status          BookingStatus `json:"status"`
	Notes           *string       `json:"notes"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	// Joined-in fields used by scoping checks and responses; not columns
	// on the bookings table.
	VenueName          *string         `json:"venue_name,omitempty"`
	VenueVendorID      *uint64         `json:"-"`
	VendorBusinessName *string         `json:"vendor_business_name,omitempty"`
	VendorCategory     *VendorCategory `json:"vendor_category,omitempty"`
	CoupleName         string          `json:"couple_name,omitempty"`
}
