// Package queue defines the payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// BookingConfirmedEvent is published when a booking reaches confirmed.
// It carries enough context for downstream consumers to notify the
// couple or feed analytics without touching the primary database.
type BookingConfirmedEvent struct {
	BookingID      uint64 `json:"booking_id"`
	CoupleName     string `json:"couple_name"`
	VenueName      string `json:"venue_name,omitempty"`
	VendorBusiness string `json:"vendor_business,omitempty"`
	VendorCategory string `json:"vendor_category,omitempty"`
	EventDate      string `json:"event_date"`
	ConfirmedAt    string `json:"confirmed_at"`
}
