// Package repository implements MySQL persistence. Each repository is a
// thin struct over *sql.DB with context-aware queries; row-not-found is
// reported as sql.ErrNoRows and the sentinel errors below cover the
// failure modes handlers must tell apart.
package repository

import "errors"

// ErrConflict is returned when a delete or update cannot proceed because
// of dependent state, such as removing a venue that still has upcoming
// bookings. Handlers translate it to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned on registration with an address that is
// already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrSlotTaken is returned when a booking cannot be created because the
// venue or vendor already holds a non-cancelled booking for that date.
var ErrSlotTaken = errors.New("date not available")

// ErrDuplicateFavorite is returned when a couple favorites the same
// venue or vendor twice.
var ErrDuplicateFavorite = errors.New("already favorited")

// ErrAlreadyPurchased is returned when a guest tries to purchase a
// registry item someone else already claimed.
var ErrAlreadyPurchased = errors.New("item already purchased")
