// Package scope holds the resource scoping rules: pure predicates that
// decide whether a subject may read or write a specific record. Handlers
// resolve a Subject once per request and call these functions before
// touching the persistence layer; the predicates themselves never do I/O.
package scope

import "github.com/aurora-nuptials/marketplace/internal/model"

// Subject is the authenticated actor a request executes on behalf of.
// Profile IDs are zero when the role has no matching profile (an admin,
// or a vendor evaluated against couple-owned records). OwnedVenueIDs is
// loaded for vendors so venue-mediated booking access can be decided
// without further queries.
type Subject struct {
	UserID          uint64
	Role            model.Role
	CoupleProfileID uint64
	VendorProfileID uint64
	OwnedVenueIDs   []uint64
}

// ownsVenue reports whether the subject's vendor profile owns the venue.
func (s Subject) ownsVenue(venueID *uint64) bool {
	if venueID == nil {
		return false
	}
	for _, id := range s.OwnedVenueIDs {
		if id == *venueID {
			return true
		}
	}
	return false
}

// vendorHoldsBooking reports whether a vendor subject is a party to the
// booking, either directly or through an owned venue.
func (s Subject) vendorHoldsBooking(b model.Booking) bool {
	if s.VendorProfileID == 0 {
		return false
	}
	if b.VendorID != nil && *b.VendorID == s.VendorProfileID {
		return true
	}
	if b.VenueVendorID != nil && *b.VenueVendorID == s.VendorProfileID {
		return true
	}
	return s.ownsVenue(b.VenueID)
}

// CanReadBooking decides read access to a single booking.
func CanReadBooking(s Subject, b model.Booking) bool {
	switch s.Role {
	case model.RoleCouple:
		return s.CoupleProfileID != 0 && b.CoupleProfileID == s.CoupleProfileID
	case model.RoleVendor:
		return s.vendorHoldsBooking(b)
	case model.RoleAdmin:
		return true
	}
	return false
}

// CanCreateBooking decides whether the subject may create bookings at
// all. Bookings are always created for the caller's own couple profile.
func CanCreateBooking(s Subject) bool {
	switch s.Role {
	case model.RoleCouple:
		return s.CoupleProfileID != 0
	case model.RoleVendor, model.RoleAdmin:
		return false
	}
	return false
}

// CanUpdateBookingStatus decides a status transition. Admins may set any
// status on any booking; couples may only cancel their own; vendors may
// set any status on bookings they are a party to.
func CanUpdateBookingStatus(s Subject, b model.Booking, next model.BookingStatus) bool {
	switch s.Role {
	case model.RoleAdmin:
		return true
	case model.RoleCouple:
		return s.CoupleProfileID != 0 &&
			b.CoupleProfileID == s.CoupleProfileID &&
			next == model.BookingCancelled
	case model.RoleVendor:
		return s.vendorHoldsBooking(b)
	}
	return false
}

// CanDeleteBooking decides deletion: the owning couple or an admin.
func CanDeleteBooking(s Subject, b model.Booking) bool {
	switch s.Role {
	case model.RoleAdmin:
		return true
	case model.RoleCouple:
		return s.CoupleProfileID != 0 && b.CoupleProfileID == s.CoupleProfileID
	case model.RoleVendor:
		return false
	}
	return false
}

// CanCreateVenue decides venue creation: vendors (for themselves) and
// admins. Venue reads are public and carry no predicate.
func CanCreateVenue(s Subject) bool {
	switch s.Role {
	case model.RoleVendor:
		return s.VendorProfileID != 0
	case model.RoleAdmin:
		return true
	case model.RoleCouple:
		return false
	}
	return false
}

// CanModifyVenue decides update and delete on a venue: the owning vendor
// or an admin. A venue without an owner is admin-only.
func CanModifyVenue(s Subject, v model.Venue) bool {
	switch s.Role {
	case model.RoleAdmin:
		return true
	case model.RoleVendor:
		return v.VendorID != nil && s.VendorProfileID != 0 && *v.VendorID == s.VendorProfileID
	case model.RoleCouple:
		return false
	}
	return false
}

// CanUpdateVendorProfile decides profile updates: the owner or an admin.
func CanUpdateVendorProfile(s Subject, vp model.VendorProfile) bool {
	switch s.Role {
	case model.RoleAdmin:
		return true
	case model.RoleVendor:
		return vp.UserID == s.UserID
	case model.RoleCouple:
		return false
	}
	return false
}

// CanVerifyVendor decides toggling the verified flag: admin only.
func CanVerifyVendor(s Subject) bool {
	return s.Role == model.RoleAdmin
}

// CanManageRegistry decides authenticated access to a registry and its
// items, given the profile that owns the registry. Guests reach
// unpurchased items through the separate public view, which carries no
// predicate, and the open purchase mutation is guarded only by the
// already-purchased check.
func CanManageRegistry(s Subject, ownerCoupleProfileID uint64) bool {
	switch s.Role {
	case model.RoleCouple:
		return s.CoupleProfileID != 0 && s.CoupleProfileID == ownerCoupleProfileID
	case model.RoleVendor, model.RoleAdmin:
		return false
	}
	return false
}

// CanManageFavorite decides create/delete/list on favorites: the owning
// couple only.
func CanManageFavorite(s Subject, ownerCoupleProfileID uint64) bool {
	switch s.Role {
	case model.RoleCouple:
		return s.CoupleProfileID != 0 && s.CoupleProfileID == ownerCoupleProfileID
	case model.RoleVendor, model.RoleAdmin:
		return false
	}
	return false
}
