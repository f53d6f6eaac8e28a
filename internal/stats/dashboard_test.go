package stats

import (
	"testing"
	"time"

	"github.com/aurora-nuptials/marketplace/internal/model"
)

func TestCoupleOverview(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	wedding := now.AddDate(0, 0, 90)

	favorites := []model.Favorite{
		{VenueID: ptr(uint64(1))},
		{VenueID: ptr(uint64(2))},
		{VendorID: ptr(uint64(3))},
	}
	bookings := []model.Booking{
		{Status: model.BookingPending},
		{Status: model.BookingConfirmed},
		{Status: model.BookingCancelled},
	}

	d := CoupleOverview(model.CoupleProfile{WeddingDate: &wedding}, favorites, bookings, 7, now)

	if d.TotalFavorites != 3 || d.FavoriteVenues != 2 || d.FavoriteVendors != 1 {
		t.Fatalf("favorite counts = %d/%d/%d", d.TotalFavorites, d.FavoriteVenues, d.FavoriteVendors)
	}
	if d.TotalBookings != 3 || d.PendingBookings != 1 || d.ConfirmedBookings != 1 {
		t.Fatalf("booking counts = %d/%d/%d", d.TotalBookings, d.PendingBookings, d.ConfirmedBookings)
	}
	if d.RegistryItems != 7 {
		t.Fatalf("RegistryItems = %d, want 7", d.RegistryItems)
	}
	if d.DaysUntilWedding == nil || *d.DaysUntilWedding != 90 {
		t.Fatalf("DaysUntilWedding = %v, want 90", d.DaysUntilWedding)
	}
}

func TestCoupleOverviewNoWeddingDate(t *testing.T) {
	d := CoupleOverview(model.CoupleProfile{}, nil, nil, 0, time.Now())
	if d.DaysUntilWedding != nil {
		t.Fatalf("DaysUntilWedding should be nil without a date, got %d", *d.DaysUntilWedding)
	}
}

func TestUpcomingBookings(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	bookings := []model.Booking{
		{ID: 1, EventDate: now.AddDate(0, 0, -1)},
		{ID: 2, EventDate: now.AddDate(0, 0, 5)},
		{ID: 3, EventDate: now.AddDate(0, 0, 10)},
		{ID: 4, EventDate: now.AddDate(0, 0, 20)},
		{ID: 5, EventDate: now.AddDate(0, 0, 30)},
	}

	got := UpcomingBookings(bookings, now, 3)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].ID != 2 || got[2].ID != 4 {
		t.Fatalf("past events should be skipped, got %d..%d", got[0].ID, got[2].ID)
	}
}

func TestVendorOverview(t *testing.T) {
	reviews := []model.Review{{Rating: 5}, {Rating: 4}, {Rating: 4}}
	bookings := []model.Booking{
		{Status: model.BookingPending},
		{Status: model.BookingPending},
		{Status: model.BookingConfirmed},
	}

	d := VendorOverview(2, 6, reviews, bookings)

	if d.TotalVenues != 2 || d.TotalFavorites != 6 || d.TotalReviews != 3 {
		t.Fatalf("counts = %d/%d/%d", d.TotalVenues, d.TotalFavorites, d.TotalReviews)
	}
	if d.AverageRating == nil || *d.AverageRating < 4.33 || *d.AverageRating > 4.34 {
		t.Fatalf("AverageRating = %v", d.AverageRating)
	}
	if d.TotalBookings != 3 || d.PendingBookings != 2 || d.ConfirmedBookings != 1 {
		t.Fatalf("booking counts = %d/%d/%d", d.TotalBookings, d.PendingBookings, d.ConfirmedBookings)
	}
}

func TestVendorOverviewNoReviews(t *testing.T) {
	d := VendorOverview(0, 0, nil, nil)
	if d.AverageRating != nil {
		t.Fatalf("AverageRating should be nil without reviews, got %v", *d.AverageRating)
	}
}
