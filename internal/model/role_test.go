package model

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"COUPLE", RoleCouple, true},
		{"couple", RoleCouple, true},
		{"  Vendor ", RoleVendor, true},
		{"ADMIN", RoleAdmin, true},
		{"OWNER", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseRole(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseRole(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleVendor.Valid() {
		t.Error("RoleVendor should be valid")
	}
	if Role("SUPERUSER").Valid() {
		t.Error("unknown role should be invalid")
	}
}

func TestParseBookingStatus(t *testing.T) {
	for _, s := range []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted} {
		if got, ok := ParseBookingStatus(string(s)); !ok || got != s {
			t.Errorf("ParseBookingStatus(%q) = (%q, %v)", s, got, ok)
		}
	}
	if _, ok := ParseBookingStatus("CONFIRMED"); ok {
		t.Error("statuses are stored lower-cased; upper-case input should be rejected")
	}
	if _, ok := ParseBookingStatus(""); ok {
		t.Error("empty status should be rejected")
	}
}

func TestParsePriorityDefaultsToMedium(t *testing.T) {
	got, ok := ParsePriority("")
	if !ok || got != PriorityMedium {
		t.Fatalf("ParsePriority(\"\") = (%q, %v), want (MEDIUM, true)", got, ok)
	}
	if _, ok := ParsePriority("URGENT"); ok {
		t.Error("unknown priority should be rejected")
	}
}

func TestVendorCategoryValid(t *testing.T) {
	if len(VendorCategories()) != 11 {
		t.Fatalf("expected 11 categories, got %d", len(VendorCategories()))
	}
	if !CategoryBandDJ.Valid() {
		t.Error("BAND_DJ should be valid")
	}
	if VendorCategory("DJ").Valid() {
		t.Error("DJ is not a known category")
	}
}

func TestVenueTypeValid(t *testing.T) {
	if len(VenueTypes()) != 9 {
		t.Fatalf("expected 9 venue types, got %d", len(VenueTypes()))
	}
	if !VenueBeachWaterfront.Valid() {
		t.Error("BEACH_WATERFRONT should be valid")
	}
	if VenueType("CASTLE").Valid() {
		t.Error("CASTLE is not a known venue type")
	}
}
