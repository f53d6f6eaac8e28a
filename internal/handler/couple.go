package handler

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aurora-nuptials/marketplace/internal/repository"
	"github.com/aurora-nuptials/marketplace/internal/scope"
	"github.com/aurora-nuptials/marketplace/internal/stats"
)

// CoupleHandler serves the couple's own profile, planning dashboard,
// checklist, timeline and favorites.
type CoupleHandler struct {
	Users     *repository.UserRepo
	Couples   *repository.CoupleRepo
	Bookings  *repository.BookingRepo
	Favorites *repository.FavoriteRepo
	Registry  *repository.RegistryRepo
	Subjects  *SubjectLoader
}

func NewCoupleHandler(u *repository.UserRepo, cp *repository.CoupleRepo, b *repository.BookingRepo,
	f *repository.FavoriteRepo, reg *repository.RegistryRepo, s *SubjectLoader) *CoupleHandler {
	if u == nil || cp == nil || b == nil || f == nil || reg == nil || s == nil {
		panic("handler: NewCoupleHandler requires non-nil dependencies")
	}
	return &CoupleHandler{Users: u, Couples: cp, Bookings: b, Favorites: f, Registry: reg, Subjects: s}
}

// loadOwnProfile resolves the caller into their couple profile or writes
// the error response and returns ok=false.
func (h *CoupleHandler) loadOwnProfile(c echo.Context) (scope.Subject, bool) {
	ctx, cancel := dbCtx(c)
	defer cancel()

	sub, err := h.Subjects.Load(ctx, c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return scope.Subject{}, false
	}
	if sub.CoupleProfileID == 0 {
		_ = c.JSON(http.StatusNotFound, echo.Map{"error": "couple profile not found"})
		return scope.Subject{}, false
	}
	return sub, true
}

// Profile returns the caller's planning profile.
func (h *CoupleHandler) Profile(c echo.Context) error {
	sub, ok := h.loadOwnProfile(c)
	if !ok {
		return nil
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	cp, err := h.Couples.GetByID(ctx, sub.CoupleProfileID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"profile": cp})
}

type updateProfileReq struct {
	Name        *string  `json:"name"`
	WeddingDate *string  `json:"weddingDate"` // YYYY-MM-DD
	Budget      *float64 `json:"budget"`
	GuestCount  *int     `json:"guestCount"`
	Theme       *string  `json:"theme"`
	Venue       *string  `json:"venue"`
	Notes       *string  `json:"notes"`
}

// UpdateProfile applies partial planning updates; a name change is
// forwarded to the account record.
func (h *CoupleHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.WeddingDate != nil {
		if _, err := time.Parse("2006-01-02", *req.WeddingDate); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "weddingDate must be YYYY-MM-DD"})
		}
	}
	if req.Budget != nil && *req.Budget < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "budget must not be negative"})
	}
	if req.GuestCount != nil && *req.GuestCount < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "guestCount must not be negative"})
	}

	sub, ok := h.loadOwnProfile(c)
	if !ok {
		return nil
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name must not be empty"})
		}
		if err := h.Users.UpdateName(ctx, sub.UserID, name); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update name failed"})
		}
	}

	upd := repository.CoupleUpdate{
		WeddingDate: req.WeddingDate,
		Budget:      req.Budget,
		GuestCount:  req.GuestCount,
		Theme:       req.Theme,
		Venue:       req.Venue,
		Notes:       req.Notes,
	}
	if err := h.Couples.Update(ctx, sub.CoupleProfileID, upd); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update profile failed"})
	}

	cp, err := h.Couples.GetByID(ctx, sub.CoupleProfileID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"profile": cp})
}

// Dashboard returns the planning overview: counters, the progress
// checklist and the next few upcoming bookings.
func (h *CoupleHandler) Dashboard(c echo.Context) error {
	sub, ok := h.loadOwnProfile(c)
	if !ok {
		return nil
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	cp, err := h.Couples.GetByID(ctx, sub.CoupleProfileID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}
	favorites, err := h.Favorites.ListByCouple(ctx, sub.CoupleProfileID, "")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load favorites failed"})
	}
	bookings, err := h.Bookings.ListAll(ctx, repository.BookingFilter{CoupleProfileID: sub.CoupleProfileID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load bookings failed"})
	}
	registryItems, err := h.Registry.CountItems(ctx, sub.CoupleProfileID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load registry failed"})
	}

	now := time.Now()
	return c.JSON(http.StatusOK, echo.Map{
		"stats":            stats.CoupleOverview(cp, favorites, bookings, registryItems, now),
		"progress":         stats.WeddingProgress(cp, bookings, registryItems > 0),
		"upcomingBookings": stats.UpcomingBookings(bookings, now, 5),
	})
}

// Progress returns the eight-task planning checklist.
func (h *CoupleHandler) Progress(c echo.Context) error {
	sub, ok := h.loadOwnProfile(c)
	if !ok {
		return nil
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	cp, err := h.Couples.GetByID(ctx, sub.CoupleProfileID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}
	bookings, err := h.Bookings.ListAll(ctx, repository.BookingFilter{CoupleProfileID: sub.CoupleProfileID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load bookings failed"})
	}
	hasRegistry, err := h.Registry.Exists(ctx, sub.CoupleProfileID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load registry failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"progress": stats.WeddingProgress(cp, bookings, hasRegistry)})
}

// Timeline returns the phased countdown plan. It requires a wedding
// date, since every phase is anchored to it.
func (h *CoupleHandler) Timeline(c echo.Context) error {
	sub, ok := h.loadOwnProfile(c)
	if !ok {
		return nil
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	cp, err := h.Couples.GetByID(ctx, sub.CoupleProfileID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}
	if cp.WeddingDate == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "wedding date not set"})
	}
	bookings, err := h.Bookings.ListAll(ctx, repository.BookingFilter{CoupleProfileID: sub.CoupleProfileID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load bookings failed"})
	}
	return c.JSON(http.StatusOK, stats.WeddingTimeline(*cp.WeddingDate, time.Now(), bookings))
}

// ListFavorites lists saved venues and vendors. type=venues or
// type=vendors narrows the result; anything else returns both.
func (h *CoupleHandler) ListFavorites(c echo.Context) error {
	sub, ok := h.loadOwnProfile(c)
	if !ok {
		return nil
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	kind := strings.ToLower(strings.TrimSpace(c.QueryParam("type")))
	favorites, err := h.Favorites.ListByCouple(ctx, sub.CoupleProfileID, kind)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load favorites failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"favorites": favorites})
}

// ListBookings lists the couple's own bookings with the standard
// filters.
func (h *CoupleHandler) ListBookings(c echo.Context) error {
	sub, ok := h.loadOwnProfile(c)
	if !ok {
		return nil
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	f := repository.BookingFilter{
		CoupleProfileID: sub.CoupleProfileID,
		Status:          strings.TrimSpace(c.QueryParam("status")),
		DateFrom:        strings.TrimSpace(c.QueryParam("dateFrom")),
		DateTo:          strings.TrimSpace(c.QueryParam("dateTo")),
	}
	f.Page, _ = strconv.Atoi(c.QueryParam("page"))
	f.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	bookings, page, err := h.Bookings.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings, "pagination": page})
}

// favorite saves one target for the caller.
func (h *CoupleHandler) favorite(c echo.Context, venueID, vendorID *uint64) error {
	sub, ok := h.loadOwnProfile(c)
	if !ok {
		return nil
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	id, err := h.Favorites.Create(ctx, sub.CoupleProfileID, venueID, vendorID)
	if err != nil {
		if err == repository.ErrDuplicateFavorite {
			return c.JSON(http.StatusConflict, echo.Map{"error": "already in favorites"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add favorite failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// FavoriteVenue saves a venue.
func (h *CoupleHandler) FavoriteVenue(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	return h.favorite(c, &id, nil)
}

// FavoriteVendor saves a vendor.
func (h *CoupleHandler) FavoriteVendor(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	return h.favorite(c, nil, &id)
}

// UnfavoriteVenue unsaves a venue.
func (h *CoupleHandler) UnfavoriteVenue(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	sub, ok := h.loadOwnProfile(c)
	if !ok {
		return nil
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Favorites.DeleteByVenue(ctx, sub.CoupleProfileID, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "favorite not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove favorite failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// UnfavoriteVendor unsaves a vendor.
func (h *CoupleHandler) UnfavoriteVendor(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	sub, ok := h.loadOwnProfile(c)
	if !ok {
		return nil
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Favorites.DeleteByVendor(ctx, sub.CoupleProfileID, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "favorite not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove favorite failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
