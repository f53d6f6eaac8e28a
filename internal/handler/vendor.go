package handler

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aurora-nuptials/marketplace/internal/model"
	"github.com/aurora-nuptials/marketplace/internal/repository"
	"github.com/aurora-nuptials/marketplace/internal/scope"
	"github.com/aurora-nuptials/marketplace/internal/stats"
)

// VendorHandler serves the public vendor directory and the vendor's own
// profile and dashboard.
type VendorHandler struct {
	Vendors  *repository.VendorRepo
	Reviews  *repository.ReviewRepo
	Bookings *repository.BookingRepo
	Subjects *SubjectLoader
}

func NewVendorHandler(v *repository.VendorRepo, r *repository.ReviewRepo,
	b *repository.BookingRepo, s *SubjectLoader) *VendorHandler {
	if v == nil || r == nil || b == nil || s == nil {
		panic("handler: NewVendorHandler requires non-nil dependencies")
	}
	return &VendorHandler{Vendors: v, Reviews: r, Bookings: b, Subjects: s}
}

// List browses the directory. Public; verified vendors sort first.
func (h *VendorHandler) List(c echo.Context) error {
	f := repository.VendorFilter{
		Category:   strings.ToUpper(strings.TrimSpace(c.QueryParam("category"))),
		City:       strings.TrimSpace(c.QueryParam("city")),
		State:      strings.TrimSpace(c.QueryParam("state")),
		PriceRange: strings.TrimSpace(c.QueryParam("priceRange")),
		Search:     strings.TrimSpace(c.QueryParam("search")),
	}
	if raw := strings.TrimSpace(c.QueryParam("verified")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid verified"})
		}
		f.Verified = &v
	}
	f.Page, _ = strconv.Atoi(c.QueryParam("page"))
	f.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	ctx, cancel := dbCtx(c)
	defer cancel()

	vendors, page, err := h.Vendors.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list vendors failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"vendors": vendors, "pagination": page})
}

// Categories lists the filterable vendor categories. Public.
func (h *VendorHandler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"categories": model.VendorCategories()})
}

// GetByID returns one vendor with their reviews and rating summary.
// Public.
func (h *VendorHandler) GetByID(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	vp, err := h.Vendors.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vendor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load vendor failed"})
	}
	reviews, err := h.Reviews.ListByVendor(ctx, id, 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reviews failed"})
	}

	var avg *float64
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		v := float64(sum) / float64(len(reviews))
		avg = &v
	}
	return c.JSON(http.StatusOK, echo.Map{
		"vendor":  vp,
		"reviews": reviews,
		"stats": echo.Map{
			"averageRating": avg,
			"totalReviews":  len(reviews),
		},
	})
}

// loadOwnProfile resolves the caller into their vendor profile or writes
// the error response and returns ok=false.
func (h *VendorHandler) loadOwnProfile(c echo.Context) (scope.Subject, bool) {
	ctx, cancel := dbCtx(c)
	defer cancel()

	sub, err := h.Subjects.Load(ctx, c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return scope.Subject{}, false
	}
	if sub.VendorProfileID == 0 {
		_ = c.JSON(http.StatusNotFound, echo.Map{"error": "vendor profile not found"})
		return scope.Subject{}, false
	}
	return sub, true
}

// MyProfile returns the caller's business profile with dashboard
// counters.
func (h *VendorHandler) MyProfile(c echo.Context) error {
	sub, ok := h.loadOwnProfile(c)
	if !ok {
		return nil
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	vp, err := h.Vendors.GetByID(ctx, sub.VendorProfileID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load vendor failed"})
	}
	reviews, err := h.Reviews.ListByVendor(ctx, sub.VendorProfileID, 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reviews failed"})
	}
	totalVenues, err := h.Vendors.CountVenues(ctx, sub.VendorProfileID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load venues failed"})
	}
	totalFavorites, err := h.Vendors.CountFavorites(ctx, sub.VendorProfileID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load favorites failed"})
	}
	bookings, err := h.Bookings.ListAll(ctx, repository.BookingFilter{
		VendorProfileID: sub.VendorProfileID,
		OwnedVenueIDs:   sub.OwnedVenueIDs,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load bookings failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"vendor": vp,
		"stats":  stats.VendorOverview(totalVenues, totalFavorites, reviews, bookings),
	})
}

type updateVendorReq struct {
	BusinessName *string `json:"businessName"`
	Category     *string `json:"category"`
	Description  *string `json:"description"`
	PriceRange   *string `json:"priceRange"`
}

// Update applies partial changes to a business profile. The owning
// vendor or an admin.
func (h *VendorHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateVendorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	upd := repository.VendorUpdate{
		Description: req.Description,
		PriceRange:  req.PriceRange,
	}
	if req.BusinessName != nil {
		name := strings.TrimSpace(*req.BusinessName)
		if name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "businessName must not be empty"})
		}
		upd.BusinessName = &name
	}
	if req.Category != nil {
		cat := model.VendorCategory(strings.ToUpper(strings.TrimSpace(*req.Category)))
		if !cat.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category"})
		}
		upd.Category = &cat
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	sub, err := h.Subjects.Load(ctx, c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	vp, err := h.Vendors.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vendor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load vendor failed"})
	}
	if !scope.CanUpdateVendorProfile(sub, vp) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := h.Vendors.Update(ctx, id, upd); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update vendor failed"})
	}
	updated, err := h.Vendors.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load vendor failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"vendor": updated})
}

type verifyReq struct {
	Verified *bool `json:"verified"`
}

// Verify toggles the verified badge on a vendor. Admin only; the role
// gate lives here rather than in the router so the rule survives route
// rewiring.
func (h *VendorHandler) Verify(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req verifyReq
	if err := c.Bind(&req); err != nil || req.Verified == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "verified required"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	sub, err := h.Subjects.Load(ctx, c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !scope.CanVerifyVendor(sub) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := h.Vendors.SetVerified(ctx, id, *req.Verified); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vendor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verify vendor failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "verified": *req.Verified})
}
