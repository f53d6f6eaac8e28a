package stats

import (
	"time"

	"github.com/aurora-nuptials/marketplace/internal/model"
)

// CoupleDashboard is the headline numbers on the couple dashboard.
// DaysUntilWedding is nil until a wedding date is set.
type CoupleDashboard struct {
	TotalFavorites    int  `json:"totalFavorites"`
	FavoriteVenues    int  `json:"favoriteVenues"`
	FavoriteVendors   int  `json:"favoriteVendors"`
	TotalBookings     int  `json:"totalBookings"`
	PendingBookings   int  `json:"pendingBookings"`
	ConfirmedBookings int  `json:"confirmedBookings"`
	RegistryItems     int  `json:"registryItems"`
	DaysUntilWedding  *int `json:"daysUntilWedding"`
}

// CoupleOverview reduces a couple's favorites and bookings into the
// dashboard numbers.
func CoupleOverview(cp model.CoupleProfile, favorites []model.Favorite, bookings []model.Booking, registryItems int, now time.Time) CoupleDashboard {
	d := CoupleDashboard{
		TotalFavorites: len(favorites),
		TotalBookings:  len(bookings),
		RegistryItems:  registryItems,
	}
	for _, f := range favorites {
		if f.VenueID != nil {
			d.FavoriteVenues++
		}
		if f.VendorID != nil {
			d.FavoriteVendors++
		}
	}
	for _, b := range bookings {
		switch b.Status {
		case model.BookingPending:
			d.PendingBookings++
		case model.BookingConfirmed:
			d.ConfirmedBookings++
		}
	}
	if cp.WeddingDate != nil {
		days := DaysUntil(*cp.WeddingDate, now)
		d.DaysUntilWedding = &days
	}
	return d
}

// UpcomingBookings returns up to limit bookings whose event date has
// not passed, preserving the caller's ordering.
func UpcomingBookings(bookings []model.Booking, now time.Time, limit int) []model.Booking {
	upcoming := make([]model.Booking, 0, limit)
	for _, b := range bookings {
		if b.EventDate.Before(now) {
			continue
		}
		upcoming = append(upcoming, b)
		if len(upcoming) == limit {
			break
		}
	}
	return upcoming
}

// VendorDashboard is the summary block on a vendor's own profile view.
// AverageRating is nil until the vendor has at least one review.
type VendorDashboard struct {
	TotalVenues       int      `json:"totalVenues"`
	TotalReviews      int      `json:"totalReviews"`
	AverageRating     *float64 `json:"averageRating"`
	TotalFavorites    int      `json:"totalFavorites"`
	TotalBookings     int      `json:"totalBookings"`
	PendingBookings   int      `json:"pendingBookings"`
	ConfirmedBookings int      `json:"confirmedBookings"`
}

// VendorOverview reduces a vendor's venues, reviews and bookings into
// the profile summary.
func VendorOverview(totalVenues, totalFavorites int, reviews []model.Review, bookings []model.Booking) VendorDashboard {
	d := VendorDashboard{
		TotalVenues:    totalVenues,
		TotalReviews:   len(reviews),
		TotalFavorites: totalFavorites,
		TotalBookings:  len(bookings),
	}
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		avg := float64(sum) / float64(len(reviews))
		d.AverageRating = &avg
	}
	for _, b := range bookings {
		switch b.Status {
		case model.BookingPending:
			d.PendingBookings++
		case model.BookingConfirmed:
			d.ConfirmedBookings++
		}
	}
	return d
}
