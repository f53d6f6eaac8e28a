package model

import "time"

// CoupleProfile is the planning record attached 1:1 to a COUPLE user.
// It owns the couple's registry, favorites and bookings. All planning
// fields are optional until the couple fills them in; the progress
// checklist treats an unset field as an incomplete task.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – owning user (unique).
//  WeddingDate – planned wedding date, nil until chosen.
//  Budget      – overall budget, nil until set.
//  GuestCount  – expected guest count, nil until set.
//  Theme       – free-text wedding theme.
//  Venue       – free-text venue note (kept separate from Booking records).
//  Notes       – free-text planning notes.
type CoupleProfile struct {
	ID          uint64     `json:"id"`
	UserID      uint64     `json:"user_id"`
	WeddingDate *time.Time `json:"wedding_date"`
	Budget      *float64   `json:"budget"`
	GuestCount  *int       `json:"guest_count"`
	Theme       *string    `json:"theme"`
	Venue       *string    `json:"venue"`
	Notes       *string    `json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// UserName is joined in for responses that show who the profile
	// belongs to (public registry, availability check). Not a column.
	UserName string `json:"user_name,omitempty"`
}
