package stats

import (
	"testing"
	"time"

	"github.com/aurora-nuptials/marketplace/internal/model"
)

func TestCurrentPhase(t *testing.T) {
	cases := []struct {
		days int
		want string
	}{
		{400, "12+ months before"},
		{366, "12+ months before"},
		{365, "9-12 months before"},
		{271, "9-12 months before"},
		{270, "6-9 months before"},
		{181, "6-9 months before"},
		{180, "3-6 months before"},
		{91, "3-6 months before"},
		{90, "1-3 months before"},
		{1, "1-3 months before"},
		{0, "Wedding time!"},
		{-10, "Wedding time!"},
	}
	for _, tc := range cases {
		if got := CurrentPhase(tc.days); got != tc.want {
			t.Errorf("CurrentPhase(%d) = %q, want %q", tc.days, got, tc.want)
		}
	}
}

func TestDaysUntilRoundsUp(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	if got := DaysUntil(now.Add(36*time.Hour), now); got != 2 {
		t.Fatalf("36h out = %d days, want 2", got)
	}
	if got := DaysUntil(now.Add(6*time.Hour), now); got != 1 {
		t.Fatalf("later today = %d days, want 1", got)
	}
	if got := DaysUntil(now.AddDate(0, 0, -3), now); got != -3 {
		t.Fatalf("3 days past = %d, want -3", got)
	}
}

func TestWeddingTimelinePhaseCounts(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	wedding := now.AddDate(0, 0, 200)

	bookings := []model.Booking{
		{VenueID: ptr(uint64(1)), Status: model.BookingConfirmed},
		{VendorID: ptr(uint64(2)), VendorCategory: cat(model.CategoryPhotographer), Status: model.BookingPending},
		{VendorID: ptr(uint64(3)), VendorCategory: cat(model.CategoryCaterer), Status: model.BookingConfirmed},
		{VendorID: ptr(uint64(4)), VendorCategory: cat(model.CategoryFlorist), Status: model.BookingPending},
		{VendorID: ptr(uint64(5)), VendorCategory: cat(model.CategoryMakeupBeauty), Status: model.BookingCancelled},
	}

	tl := WeddingTimeline(wedding, now, bookings)

	if tl.DaysUntilWedding != 200 {
		t.Fatalf("DaysUntilWedding = %d, want 200", tl.DaysUntilWedding)
	}
	if tl.CurrentPhase != "6-9 months before" {
		t.Fatalf("CurrentPhase = %q", tl.CurrentPhase)
	}
	if len(tl.Phases) != 5 {
		t.Fatalf("phase count = %d, want 5", len(tl.Phases))
	}

	// venue + photographer, caterer, florist, makeup, confirmed.
	wantCompleted := []int{2, 1, 1, 1, 2}
	for i, phase := range tl.Phases {
		if phase.Completed != wantCompleted[i] {
			t.Errorf("phase %q completed = %d, want %d", phase.Phase, phase.Completed, wantCompleted[i])
		}
		if len(phase.Tasks) != 4 {
			t.Errorf("phase %q has %d tasks, want 4", phase.Phase, len(phase.Tasks))
		}
	}
}
