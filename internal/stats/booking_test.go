package stats

import (
	"testing"
	"time"

	"github.com/aurora-nuptials/marketplace/internal/model"
)

func TestBookingsStatusCounts(t *testing.T) {
	now := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)

	bookings := []model.Booking{
		{Status: model.BookingPending, EventDate: now.AddDate(0, 1, 0), CreatedAt: now},
		{Status: model.BookingConfirmed, EventDate: now.AddDate(0, 2, 0), CreatedAt: now},
		{Status: model.BookingConfirmed, EventDate: now.AddDate(0, 0, -5), CreatedAt: now.AddDate(0, -1, 0)},
		{Status: model.BookingCancelled, EventDate: now.AddDate(0, 3, 0), CreatedAt: now},
		{Status: model.BookingCompleted, EventDate: now.AddDate(0, 0, -30), CreatedAt: now.AddDate(0, -2, 0)},
	}

	s := Bookings(bookings, now)

	if s.TotalBookings != 5 {
		t.Fatalf("TotalBookings = %d, want 5", s.TotalBookings)
	}
	if s.PendingBookings != 1 || s.ConfirmedBookings != 2 || s.CancelledBookings != 1 || s.CompletedBookings != 1 {
		t.Fatalf("status counts = %d/%d/%d/%d", s.PendingBookings, s.ConfirmedBookings, s.CancelledBookings, s.CompletedBookings)
	}
	// Two future bookings, one of them cancelled.
	if s.UpcomingBookings != 2 {
		t.Fatalf("UpcomingBookings = %d, want 2", s.UpcomingBookings)
	}
}

func TestBookingsMonthlyTrends(t *testing.T) {
	now := time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)

	bookings := []model.Booking{
		{Status: model.BookingPending, CreatedAt: now},
		{Status: model.BookingPending, CreatedAt: now.AddDate(0, 0, -10)},
		{Status: model.BookingConfirmed, CreatedAt: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)},
		{Status: model.BookingConfirmed, CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}, // outside the window
	}

	s := Bookings(bookings, now)

	if len(s.MonthlyTrends) != 12 {
		t.Fatalf("trend length = %d, want 12", len(s.MonthlyTrends))
	}
	if s.MonthlyTrends[0].Month != "2025-06" {
		t.Fatalf("oldest bucket = %q, want 2025-06", s.MonthlyTrends[0].Month)
	}
	last := s.MonthlyTrends[11]
	if last.Month != "2026-05" || last.Count != 2 {
		t.Fatalf("current bucket = %+v, want 2026-05 with 2", last)
	}
	for _, mc := range s.MonthlyTrends {
		if mc.Month == "2026-02" && mc.Count != 1 {
			t.Fatalf("2026-02 count = %d, want 1", mc.Count)
		}
	}

	total := 0
	for _, mc := range s.MonthlyTrends {
		total += mc.Count
	}
	if total != 3 {
		t.Fatalf("bookings inside the window = %d, want 3", total)
	}
}

func TestBookingsEmpty(t *testing.T) {
	s := Bookings(nil, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	if s.TotalBookings != 0 || s.UpcomingBookings != 0 {
		t.Fatalf("empty input should yield zero counts, got %+v", s)
	}
	if len(s.MonthlyTrends) != 12 {
		t.Fatalf("trend length = %d, want 12", len(s.MonthlyTrends))
	}
}
