package handler

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aurora-nuptials/marketplace/internal/model"
	"github.com/aurora-nuptials/marketplace/internal/queue"
	"github.com/aurora-nuptials/marketplace/internal/repository"
	"github.com/aurora-nuptials/marketplace/internal/scope"
	"github.com/aurora-nuptials/marketplace/internal/service"
	"github.com/aurora-nuptials/marketplace/internal/stats"
)

// BookingHandler serves booking creation, listing, status transitions
// and the public availability check.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Subjects *SubjectLoader
}

func NewBookingHandler(b *repository.BookingRepo, s *SubjectLoader) *BookingHandler {
	if b == nil || s == nil {
		panic("handler: NewBookingHandler requires non-nil dependencies")
	}
	return &BookingHandler{Bookings: b, Subjects: s}
}

type createBookingReq struct {
	VenueID   *uint64 `json:"venueId"`
	VendorID  *uint64 `json:"vendorId"`
	EventDate string  `json:"eventDate"` // YYYY-MM-DD
	Notes     *string `json:"notes"`
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// parseEventDate accepts a calendar date, optionally with a time suffix
// that is discarded.
func parseEventDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		s = s[:10]
	}
	return time.Parse("2006-01-02", s)
}

// Create books a venue and/or a vendor for the caller's couple profile.
// Each target's availability is checked inside the repository
// transaction, so two couples racing for the same date cannot both win.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.VenueID == nil && req.VendorID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "venueId or vendorId required"})
	}
	day, err := parseEventDate(req.EventDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "eventDate must be YYYY-MM-DD"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	sub, err := h.Subjects.Load(ctx, c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !scope.CanCreateBooking(sub) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only couples can create bookings"})
	}

	id, err := h.Bookings.Create(ctx, sub.CoupleProfileID, req.VenueID, req.VendorID, day, req.Notes)
	if err != nil {
		if err == repository.ErrSlotTaken {
			return c.JSON(http.StatusConflict, echo.Map{"error": "date not available"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"booking": b})
}

// filterFor builds the scoped list filter: couples see their own
// bookings, vendors see bookings naming them or one of their venues,
// admins see everything.
func filterFor(sub scope.Subject) repository.BookingFilter {
	var f repository.BookingFilter
	switch sub.Role {
	case model.RoleCouple:
		f.CoupleProfileID = sub.CoupleProfileID
	case model.RoleVendor:
		f.VendorProfileID = sub.VendorProfileID
		f.OwnedVenueIDs = sub.OwnedVenueIDs
	}
	return f
}

// List returns the caller's bookings, filtered and paginated.
func (h *BookingHandler) List(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	sub, err := h.Subjects.Load(ctx, c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if sub.Role == model.RoleCouple && sub.CoupleProfileID == 0 ||
		sub.Role == model.RoleVendor && sub.VendorProfileID == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
	}

	f := filterFor(sub)
	// Admins may narrow the unscoped listing to one couple.
	if sub.Role == model.RoleAdmin {
		if raw := strings.TrimSpace(c.QueryParam("coupleId")); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid coupleId"})
			}
			f.CoupleProfileID = id
		}
	}
	f.Status = strings.TrimSpace(c.QueryParam("status"))
	f.VenueType = strings.TrimSpace(c.QueryParam("venueType"))
	f.VendorCategory = strings.TrimSpace(c.QueryParam("vendorCategory"))
	f.DateFrom = strings.TrimSpace(c.QueryParam("dateFrom"))
	f.DateTo = strings.TrimSpace(c.QueryParam("dateTo"))
	f.Page, _ = strconv.Atoi(c.QueryParam("page"))
	f.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	bookings, page, err := h.Bookings.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings, "pagination": page})
}

// GetByID returns one booking the caller is a party to. A couple probing
// another couple's booking gets 404 so booking ids are not enumerable;
// a vendor who can see the id exists but is not a party gets 403.
func (h *BookingHandler) GetByID(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	sub, err := h.Subjects.Load(ctx, c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	if !scope.CanReadBooking(sub, b) {
		if sub.Role == model.RoleCouple {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": b})
}

// UpdateStatus transitions a booking. Confirmations are announced on the
// message queue after the write commits; a broker outage never fails the
// request.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	next, ok := model.ParseBookingStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	sub, err := h.Subjects.Load(ctx, c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	if !scope.CanUpdateBookingStatus(sub, b, next) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := h.Bookings.UpdateStatus(ctx, id, next); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}

	if next == model.BookingConfirmed && b.Status != model.BookingConfirmed {
		go publishConfirmation(b)
	}

	b.Status = next
	return c.JSON(http.StatusOK, echo.Map{"booking": b})
}

func publishConfirmation(b model.Booking) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ev := queue.BookingConfirmedEvent{
		BookingID:   b.ID,
		CoupleName:  b.CoupleName,
		EventDate:   b.EventDate.Format("2006-01-02"),
		ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if b.VenueName != nil {
		ev.VenueName = *b.VenueName
	}
	if b.VendorBusinessName != nil {
		ev.VendorBusiness = *b.VendorBusinessName
	}
	if b.VendorCategory != nil {
		ev.VendorCategory = string(*b.VendorCategory)
	}
	if err := service.PublishBookingConfirmed(ctx, ev); err != nil {
		log.Printf("booking %d: confirmation event not published: %v", b.ID, err)
	}
}

// Delete removes a booking. Only the owning couple or an admin; vendors
// cancel instead of deleting.
func (h *BookingHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	sub, err := h.Subjects.Load(ctx, c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	if !scope.CanDeleteBooking(sub, b) {
		if sub.Role == model.RoleCouple {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := h.Bookings.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete booking failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Stats aggregates the caller's bookings into status counts, upcoming
// count and a twelve month trend.
func (h *BookingHandler) Stats(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	sub, err := h.Subjects.Load(ctx, c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if sub.Role == model.RoleCouple && sub.CoupleProfileID == 0 ||
		sub.Role == model.RoleVendor && sub.VendorProfileID == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
	}

	bookings, err := h.Bookings.ListAll(ctx, filterFor(sub))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load bookings failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"stats": stats.Bookings(bookings, time.Now())})
}

// VenueAvailability is the public probe for a venue date.
func (h *BookingHandler) VenueAvailability(c echo.Context) error {
	id, err := parseID(c, "venueId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	return h.availability(c, &id, nil)
}

// VendorAvailability is the public probe for a vendor date.
func (h *BookingHandler) VendorAvailability(c echo.Context) error {
	id, err := parseID(c, "vendorId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	return h.availability(c, nil, &id)
}

// availability answers a date probe. Only the minimum about a
// conflicting booking is disclosed.
func (h *BookingHandler) availability(c echo.Context, venueID, vendorID *uint64) error {
	day, err := parseEventDate(c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	b, err := h.Bookings.FindConflict(ctx, venueID, vendorID, day.Format("2006-01-02"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusOK, echo.Map{
				"date":      day.Format("2006-01-02"),
				"available": true,
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "availability check failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":      day.Format("2006-01-02"),
		"available": false,
		"booking": echo.Map{
			"id":         b.ID,
			"coupleName": b.CoupleName,
			"status":     b.Status,
		},
	})
}
