package model

import "time"

// User represents a row in the `users` table. Exactly one role-specific
// profile (CoupleProfile or VendorProfile) is created together with the
// user at registration; admins carry no profile.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique email address, stored lower-cased.
//  PasswordHash – bcrypt hashed password, never serialized.
//  Name         – display name shown to other parties.
//  Role         – account role (COUPLE, VENDOR, ADMIN).
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RefreshToken models an entry in the `refresh_tokens` table. Only the
// SHA-256 hash of the raw token is stored; the raw value goes back to the
// client once and is never persisted.
type RefreshToken struct {
	ID        uint64
	UserID    uint64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
