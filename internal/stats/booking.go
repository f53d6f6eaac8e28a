package stats

import (
	"time"

	"github.com/aurora-nuptials/marketplace/internal/model"
)

// MonthCount is one bucket of the monthly booking trend.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// BookingStats aggregates a set of bookings by status, with the count
// of upcoming non-cancelled events and the creation trend over the
// last twelve calendar months.
type BookingStats struct {
	TotalBookings     int          `json:"totalBookings"`
	PendingBookings   int          `json:"pendingBookings"`
	ConfirmedBookings int          `json:"confirmedBookings"`
	CancelledBookings int          `json:"cancelledBookings"`
	CompletedBookings int          `json:"completedBookings"`
	UpcomingBookings  int          `json:"upcomingBookings"`
	MonthlyTrends     []MonthCount `json:"monthlyTrends"`
}

// Bookings reduces the given bookings, already scoped to the caller,
// into their statistics. Trend buckets run oldest to newest and always
// cover exactly twelve months, current month last.
func Bookings(bookings []model.Booking, now time.Time) BookingStats {
	s := BookingStats{TotalBookings: len(bookings)}

	byMonth := map[string]int{}
	for _, b := range bookings {
		switch b.Status {
		case model.BookingPending:
			s.PendingBookings++
		case model.BookingConfirmed:
			s.ConfirmedBookings++
		case model.BookingCancelled:
			s.CancelledBookings++
		case model.BookingCompleted:
			s.CompletedBookings++
		}
		if !b.EventDate.Before(now) && b.Status != model.BookingCancelled {
			s.UpcomingBookings++
		}
		byMonth[b.CreatedAt.Format("2006-01")]++
	}

	// Anchor on the first of the month so AddDate never skips a short month.
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	s.MonthlyTrends = make([]MonthCount, 0, 12)
	for i := 11; i >= 0; i-- {
		month := anchor.AddDate(0, -i, 0).Format("2006-01")
		s.MonthlyTrends = append(s.MonthlyTrends, MonthCount{
			Month: month,
			Count: byMonth[month],
		})
	}

	return s
}
