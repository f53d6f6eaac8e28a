package scope

import (
	"testing"

	"github.com/aurora-nuptials/marketplace/internal/model"
)

func u64(v uint64) *uint64 { return &v }

func TestCanReadBooking(t *testing.T) {
	booking := model.Booking{ID: 1, CoupleProfileID: 5, VenueID: u64(10), VenueVendorID: u64(3)}

	cases := []struct {
		name string
		sub  Subject
		want bool
	}{
		{"owning couple", Subject{Role: model.RoleCouple, CoupleProfileID: 5}, true},
		{"foreign couple", Subject{Role: model.RoleCouple, CoupleProfileID: 6}, false},
		{"couple without profile", Subject{Role: model.RoleCouple}, false},
		{"vendor owning the venue", Subject{Role: model.RoleVendor, VendorProfileID: 3, OwnedVenueIDs: []uint64{10}}, true},
		{"vendor via venue vendor id", Subject{Role: model.RoleVendor, VendorProfileID: 3}, true},
		{"unrelated vendor", Subject{Role: model.RoleVendor, VendorProfileID: 4, OwnedVenueIDs: []uint64{11}}, false},
		{"admin", Subject{Role: model.RoleAdmin}, true},
		{"unknown role", Subject{Role: model.Role("GUEST")}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanReadBooking(tc.sub, booking); got != tc.want {
				t.Fatalf("CanReadBooking = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanReadBookingDirectVendor(t *testing.T) {
	b := model.Booking{ID: 2, CoupleProfileID: 5, VendorID: u64(7)}
	if !CanReadBooking(Subject{Role: model.RoleVendor, VendorProfileID: 7}, b) {
		t.Fatal("vendor booked directly should read own booking")
	}
	if CanReadBooking(Subject{Role: model.RoleVendor, VendorProfileID: 8}, b) {
		t.Fatal("other vendor must not read the booking")
	}
}

func TestCanCreateBooking(t *testing.T) {
	if !CanCreateBooking(Subject{Role: model.RoleCouple, CoupleProfileID: 1}) {
		t.Fatal("couple with profile should create bookings")
	}
	if CanCreateBooking(Subject{Role: model.RoleCouple}) {
		t.Fatal("couple without profile must not create bookings")
	}
	if CanCreateBooking(Subject{Role: model.RoleVendor, VendorProfileID: 1}) {
		t.Fatal("vendors must not create bookings")
	}
	if CanCreateBooking(Subject{Role: model.RoleAdmin}) {
		t.Fatal("admins must not create bookings for couples")
	}
}

func TestCanUpdateBookingStatus(t *testing.T) {
	booking := model.Booking{ID: 1, CoupleProfileID: 5, VenueID: u64(10)}

	cases := []struct {
		name string
		sub  Subject
		next model.BookingStatus
		want bool
	}{
		{"admin any status", Subject{Role: model.RoleAdmin}, model.BookingCompleted, true},
		{"couple cancels own", Subject{Role: model.RoleCouple, CoupleProfileID: 5}, model.BookingCancelled, true},
		{"couple confirms own", Subject{Role: model.RoleCouple, CoupleProfileID: 5}, model.BookingConfirmed, false},
		{"couple cancels foreign", Subject{Role: model.RoleCouple, CoupleProfileID: 6}, model.BookingCancelled, false},
		{"vendor owns venue 10", Subject{Role: model.RoleVendor, VendorProfileID: 3, OwnedVenueIDs: []uint64{10}}, model.BookingConfirmed, true},
		{"vendor owns venue 11 only", Subject{Role: model.RoleVendor, VendorProfileID: 3, OwnedVenueIDs: []uint64{11}}, model.BookingConfirmed, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanUpdateBookingStatus(tc.sub, booking, tc.next); got != tc.want {
				t.Fatalf("CanUpdateBookingStatus = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanDeleteBooking(t *testing.T) {
	booking := model.Booking{ID: 1, CoupleProfileID: 5, VendorID: u64(3)}

	if !CanDeleteBooking(Subject{Role: model.RoleAdmin}, booking) {
		t.Fatal("admin should delete any booking")
	}
	if !CanDeleteBooking(Subject{Role: model.RoleCouple, CoupleProfileID: 5}, booking) {
		t.Fatal("owning couple should delete own booking")
	}
	if CanDeleteBooking(Subject{Role: model.RoleCouple, CoupleProfileID: 6}, booking) {
		t.Fatal("foreign couple must not delete the booking")
	}
	if CanDeleteBooking(Subject{Role: model.RoleVendor, VendorProfileID: 3}, booking) {
		t.Fatal("vendors must not delete bookings, even their own")
	}
}

func TestVenuePredicates(t *testing.T) {
	owned := model.Venue{ID: 10, VendorID: u64(3)}
	orphan := model.Venue{ID: 11}

	if !CanCreateVenue(Subject{Role: model.RoleVendor, VendorProfileID: 3}) {
		t.Fatal("vendor should create venues")
	}
	if CanCreateVenue(Subject{Role: model.RoleCouple, CoupleProfileID: 5}) {
		t.Fatal("couple must not create venues")
	}
	if !CanModifyVenue(Subject{Role: model.RoleVendor, VendorProfileID: 3}, owned) {
		t.Fatal("owning vendor should modify own venue")
	}
	if CanModifyVenue(Subject{Role: model.RoleVendor, VendorProfileID: 4}, owned) {
		t.Fatal("other vendor must not modify the venue")
	}
	if CanModifyVenue(Subject{Role: model.RoleVendor, VendorProfileID: 3}, orphan) {
		t.Fatal("ownerless venue is admin-only")
	}
	if !CanModifyVenue(Subject{Role: model.RoleAdmin}, orphan) {
		t.Fatal("admin should modify ownerless venue")
	}
}

func TestVendorProfilePredicates(t *testing.T) {
	profile := model.VendorProfile{ID: 3, UserID: 42}

	if !CanUpdateVendorProfile(Subject{Role: model.RoleVendor, UserID: 42, VendorProfileID: 3}, profile) {
		t.Fatal("owner should update own profile")
	}
	if CanUpdateVendorProfile(Subject{Role: model.RoleVendor, UserID: 43, VendorProfileID: 4}, profile) {
		t.Fatal("other vendor must not update the profile")
	}
	if !CanUpdateVendorProfile(Subject{Role: model.RoleAdmin, UserID: 1}, profile) {
		t.Fatal("admin should update any profile")
	}
	if CanVerifyVendor(Subject{Role: model.RoleVendor, UserID: 42}) {
		t.Fatal("vendors must not self-verify")
	}
	if !CanVerifyVendor(Subject{Role: model.RoleAdmin}) {
		t.Fatal("admin should verify vendors")
	}
}

func TestRegistryAndFavoriteOwnership(t *testing.T) {
	owner := Subject{Role: model.RoleCouple, CoupleProfileID: 5}
	other := Subject{Role: model.RoleCouple, CoupleProfileID: 6}

	if !CanManageRegistry(owner, 5) {
		t.Fatal("owner couple should manage own registry")
	}
	if CanManageRegistry(other, 5) {
		t.Fatal("foreign couple must not manage the registry")
	}
	if CanManageRegistry(Subject{Role: model.RoleAdmin}, 5) {
		t.Fatal("registry management is couple-only")
	}
	if !CanManageFavorite(owner, 5) {
		t.Fatal("owner couple should manage own favorites")
	}
	if CanManageFavorite(other, 5) {
		t.Fatal("foreign couple must not manage the favorites")
	}
	if CanManageFavorite(Subject{Role: model.RoleVendor, VendorProfileID: 3}, 5) {
		t.Fatal("favorites are couple-only")
	}
}
