package model

import "time"

// Priority orders registry items in the public guest view.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// ParsePriority validates a priority string; empty input defaults to MEDIUM.
func ParsePriority(s string) (Priority, bool) {
	if s == "" {
		return PriorityMedium, true
	}
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), true
	}
	return "", false
}

// WeddingRegistry is the 1:1 gift registry of a couple. It is created
// lazily the first time the couple (or a handler on their behalf) asks
// for it, and never deleted.
type WeddingRegistry struct {
	ID              uint64    `json:"id"`
	CoupleProfileID uint64    `json:"couple_profile_id"`
	CreatedAt       time.Time `json:"created_at"`
}

// RegistryItem is a single gift on a registry. Guests mark items
// purchased through the public purchase endpoint; a purchased item keeps
// its purchaser metadata and can only be reset by the owning couple.
type RegistryItem struct {
	ID              uint64     `json:"id"`
	RegistryID      uint64     `json:"registry_id"`
	Name            string     `json:"name"`
	Description     *string    `json:"description"`
	Price           float64    `json:"price"`
	Quantity        int        `json:"quantity"`
	Category        *string    `json:"category"`
	Brand           *string    `json:"brand"`
	URL             *string    `json:"url"`
	Image           *string    `json:"image"`
	Priority        Priority   `json:"priority"`
	Purchased       bool       `json:"purchased"`
	PurchasedBy     *string    `json:"purchased_by"`
	PurchaseDate    *time.Time `json:"purchase_date"`
	PurchaseMessage *string    `json:"purchase_message"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// RegistryCategories is the fixed list offered to couples when adding
// items; items may also carry a free-text category.
func RegistryCategories() []string {
	return []string{
		"Kitchen & Dining",
		"Bedroom & Bath",
		"Home Decor",
		"Appliances",
		"Outdoor & Garden",
		"Electronics",
		"Furniture",
		"Cookware",
		"Linens & Bedding",
		"China & Serveware",
		"Glassware & Barware",
		"Experience & Travel",
		"Cash Fund",
		"Other",
	}
}
