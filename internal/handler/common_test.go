package handler

import (
	"testing"

	"github.com/aurora-nuptials/marketplace/internal/model"
	"github.com/aurora-nuptials/marketplace/internal/scope"
)

func TestParseEventDate(t *testing.T) {
	d, err := parseEventDate("2026-09-12")
	if err != nil {
		t.Fatalf("parseEventDate: %v", err)
	}
	if d.Format("2006-01-02") != "2026-09-12" {
		t.Errorf("got %s", d.Format("2006-01-02"))
	}

	// Time suffixes are discarded.
	d, err = parseEventDate("2026-09-12T00:00:00.000Z")
	if err != nil {
		t.Fatalf("parseEventDate with time suffix: %v", err)
	}
	if d.Format("2006-01-02") != "2026-09-12" {
		t.Errorf("got %s", d.Format("2006-01-02"))
	}

	if _, err := parseEventDate("12/09/2026"); err == nil {
		t.Error("expected error for non-ISO date")
	}
	if _, err := parseEventDate(""); err == nil {
		t.Error("expected error for empty date")
	}
}

func TestFilterForScopesByRole(t *testing.T) {
	couple := scope.Subject{Role: model.RoleCouple, CoupleProfileID: 4}
	f := filterFor(couple)
	if f.CoupleProfileID != 4 || f.VendorProfileID != 0 {
		t.Errorf("couple filter = %+v", f)
	}

	vendor := scope.Subject{Role: model.RoleVendor, VendorProfileID: 9, OwnedVenueIDs: []uint64{1, 2}}
	f = filterFor(vendor)
	if f.VendorProfileID != 9 || len(f.OwnedVenueIDs) != 2 || f.CoupleProfileID != 0 {
		t.Errorf("vendor filter = %+v", f)
	}

	admin := scope.Subject{Role: model.RoleAdmin}
	f = filterFor(admin)
	if f.CoupleProfileID != 0 || f.VendorProfileID != 0 || f.OwnedVenueIDs != nil {
		t.Errorf("admin filter should be unscoped, got %+v", f)
	}
}
