// Package stats computes the derived read models served by the
// dashboard and statistics endpoints: the planning checklist, the
// countdown timeline, registry totals and booking aggregates. Every
// function is a pure reducer over rows the caller already fetched.
package stats

import (
	"math"

	"github.com/aurora-nuptials/marketplace/internal/model"
)

// Task is one entry on the planning checklist.
type Task struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// Progress is the planning checklist with its completion summary.
type Progress struct {
	Tasks              []Task `json:"tasks"`
	CompletedTasks     int    `json:"completedTasks"`
	TotalTasks         int    `json:"totalTasks"`
	ProgressPercentage int    `json:"progressPercentage"`
}

func hasConfirmedVenue(bookings []model.Booking) bool {
	for _, b := range bookings {
		if b.VenueID != nil && b.Status == model.BookingConfirmed {
			return true
		}
	}
	return false
}

func hasConfirmedVendor(bookings []model.Booking, cat model.VendorCategory) bool {
	for _, b := range bookings {
		if b.VendorCategory != nil && *b.VendorCategory == cat && b.Status == model.BookingConfirmed {
			return true
		}
	}
	return false
}

// WeddingProgress builds the eight-task planning checklist for a couple.
// Profile fields count as done when set; the booking tasks require a
// confirmed booking of the matching kind.
func WeddingProgress(cp model.CoupleProfile, bookings []model.Booking, hasRegistry bool) Progress {
	tasks := []Task{
		{Name: "Set Wedding Date", Completed: cp.WeddingDate != nil},
		{Name: "Set Budget", Completed: cp.Budget != nil},
		{Name: "Guest Count", Completed: cp.GuestCount != nil},
		{Name: "Choose Theme", Completed: cp.Theme != nil},
		{Name: "Book Venue", Completed: hasConfirmedVenue(bookings)},
		{Name: "Book Photographer", Completed: hasConfirmedVendor(bookings, model.CategoryPhotographer)},
		{Name: "Book Caterer", Completed: hasConfirmedVendor(bookings, model.CategoryCaterer)},
		{Name: "Create Registry", Completed: hasRegistry},
	}

	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}

	return Progress{
		Tasks:              tasks,
		CompletedTasks:     completed,
		TotalTasks:         len(tasks),
		ProgressPercentage: int(math.Round(float64(completed) / float64(len(tasks)) * 100)),
	}
}
