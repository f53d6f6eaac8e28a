package stats

import (
	"testing"
	"time"

	"github.com/aurora-nuptials/marketplace/internal/model"
)

func ptr[T any](v T) *T { return &v }

func cat(c model.VendorCategory) *model.VendorCategory { return &c }

func TestWeddingProgressEmpty(t *testing.T) {
	p := WeddingProgress(model.CoupleProfile{}, nil, false)

	if p.TotalTasks != 8 {
		t.Fatalf("TotalTasks = %d, want 8", p.TotalTasks)
	}
	if p.CompletedTasks != 0 || p.ProgressPercentage != 0 {
		t.Fatalf("fresh profile should have zero progress, got %d/%d%%", p.CompletedTasks, p.ProgressPercentage)
	}
	for _, task := range p.Tasks {
		if task.Completed {
			t.Fatalf("task %q unexpectedly completed", task.Name)
		}
	}
}

func TestWeddingProgressBookingTasks(t *testing.T) {
	bookings := []model.Booking{
		{VenueID: ptr(uint64(1)), Status: model.BookingConfirmed},
		{VendorID: ptr(uint64(2)), VendorCategory: cat(model.CategoryPhotographer), Status: model.BookingPending},
		{VendorID: ptr(uint64(3)), VendorCategory: cat(model.CategoryCaterer), Status: model.BookingConfirmed},
	}
	p := WeddingProgress(model.CoupleProfile{}, bookings, true)

	byName := map[string]bool{}
	for _, task := range p.Tasks {
		byName[task.Name] = task.Completed
	}
	if !byName["Book Venue"] {
		t.Fatal("confirmed venue booking should complete Book Venue")
	}
	if byName["Book Photographer"] {
		t.Fatal("pending photographer booking must not complete Book Photographer")
	}
	if !byName["Book Caterer"] {
		t.Fatal("confirmed caterer booking should complete Book Caterer")
	}
	if !byName["Create Registry"] {
		t.Fatal("existing registry should complete Create Registry")
	}
	if p.CompletedTasks != 3 {
		t.Fatalf("CompletedTasks = %d, want 3", p.CompletedTasks)
	}
	if p.ProgressPercentage != 38 {
		t.Fatalf("ProgressPercentage = %d, want 38", p.ProgressPercentage)
	}
}

func TestWeddingProgressFullProfile(t *testing.T) {
	cp := model.CoupleProfile{
		WeddingDate: ptr(time.Now().AddDate(1, 0, 0)),
		Budget:      ptr(25000.0),
		GuestCount:  ptr(120),
		Theme:       ptr("rustic"),
	}
	p := WeddingProgress(cp, nil, false)
	if p.CompletedTasks != 4 {
		t.Fatalf("CompletedTasks = %d, want 4", p.CompletedTasks)
	}
	if p.ProgressPercentage != 50 {
		t.Fatalf("ProgressPercentage = %d, want 50", p.ProgressPercentage)
	}
}
