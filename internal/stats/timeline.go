package stats

import (
	"math"
	"time"

	"github.com/aurora-nuptials/marketplace/internal/model"
)

// Phase is one planning window on the countdown timeline, with the
// number of the couple's bookings that count toward it.
type Phase struct {
	Phase     string   `json:"phase"`
	Tasks     []string `json:"tasks"`
	Completed int      `json:"completed"`
}

// Timeline is the countdown view for a couple with a wedding date set.
type Timeline struct {
	DaysUntilWedding int     `json:"daysUntilWedding"`
	Phases           []Phase `json:"timeline"`
	CurrentPhase     string  `json:"currentPhase"`
}

// DaysUntil counts the days from now until the wedding, rounding up so
// that a wedding later today still reads as one day away.
func DaysUntil(wedding, now time.Time) int {
	return int(math.Ceil(wedding.Sub(now).Hours() / 24))
}

// CurrentPhase maps the countdown to the planning window it falls in.
// A date in the past, or today, reads as the day itself.
func CurrentPhase(daysUntilWedding int) string {
	switch {
	case daysUntilWedding > 365:
		return "12+ months before"
	case daysUntilWedding > 270:
		return "9-12 months before"
	case daysUntilWedding > 180:
		return "6-9 months before"
	case daysUntilWedding > 90:
		return "3-6 months before"
	case daysUntilWedding > 0:
		return "1-3 months before"
	}
	return "Wedding time!"
}

func countBookings(bookings []model.Booking, match func(model.Booking) bool) int {
	n := 0
	for _, b := range bookings {
		if match(b) {
			n++
		}
	}
	return n
}

func hasCategory(b model.Booking, cats ...model.VendorCategory) bool {
	if b.VendorCategory == nil {
		return false
	}
	for _, c := range cats {
		if *b.VendorCategory == c {
			return true
		}
	}
	return false
}

// WeddingTimeline builds the five-phase countdown for a couple. Each
// phase counts the bookings relevant to its window regardless of when
// they were made; the last phase counts every confirmed booking.
func WeddingTimeline(wedding, now time.Time, bookings []model.Booking) Timeline {
	days := DaysUntil(wedding, now)

	phases := []Phase{
		{
			Phase: "12+ months before",
			Tasks: []string{"Set date and budget", "Create guest list", "Book venue", "Hire photographer"},
			Completed: countBookings(bookings, func(b model.Booking) bool {
				return b.VenueID != nil || hasCategory(b, model.CategoryPhotographer)
			}),
		},
		{
			Phase: "9-12 months before",
			Tasks: []string{"Send save-the-dates", "Book caterer", "Choose wedding party", "Order invitations"},
			Completed: countBookings(bookings, func(b model.Booking) bool {
				return hasCategory(b, model.CategoryCaterer)
			}),
		},
		{
			Phase: "6-9 months before",
			Tasks: []string{"Book band/DJ", "Choose flowers", "Plan honeymoon", "Register for gifts"},
			Completed: countBookings(bookings, func(b model.Booking) bool {
				return hasCategory(b, model.CategoryBandDJ, model.CategoryFlorist)
			}),
		},
		{
			Phase: "3-6 months before",
			Tasks: []string{"Send invitations", "Order cake", "Book makeup artist", "Final venue walkthrough"},
			Completed: countBookings(bookings, func(b model.Booking) bool {
				return hasCategory(b, model.CategoryCakeDessert, model.CategoryMakeupBeauty)
			}),
		},
		{
			Phase: "1-3 months before",
			Tasks: []string{"Final headcount", "Confirm all vendors", "Wedding rehearsal", "Get marriage license"},
			Completed: countBookings(bookings, func(b model.Booking) bool {
				return b.Status == model.BookingConfirmed
			}),
		},
	}

	return Timeline{
		DaysUntilWedding: days,
		Phases:           phases,
		CurrentPhase:     CurrentPhase(days),
	}
}
