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
)

// VenueHandler serves the public venue catalog and the vendor-facing
// venue management endpoints.
type VenueHandler struct {
	Venues   *repository.VenueRepo
	Subjects *SubjectLoader
}

func NewVenueHandler(v *repository.VenueRepo, s *SubjectLoader) *VenueHandler {
	if v == nil || s == nil {
		panic("handler: NewVenueHandler requires non-nil dependencies")
	}
	return &VenueHandler{Venues: v, Subjects: s}
}

// List browses the catalog. Public; supports type, location, capacity,
// price, amenity and text filters plus pagination.
func (h *VenueHandler) List(c echo.Context) error {
	f := repository.VenueFilter{
		VenueType:  strings.TrimSpace(c.QueryParam("venueType")),
		City:       strings.TrimSpace(c.QueryParam("city")),
		State:      strings.TrimSpace(c.QueryParam("state")),
		PriceRange: strings.TrimSpace(c.QueryParam("priceRange")),
		Search:     strings.TrimSpace(c.QueryParam("search")),
	}
	f.MinCapacity, _ = strconv.Atoi(c.QueryParam("capacity"))
	f.Page, _ = strconv.Atoi(c.QueryParam("page"))
	f.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if raw := strings.TrimSpace(c.QueryParam("amenities")); raw != "" {
		for _, a := range strings.Split(raw, ",") {
			if a = strings.TrimSpace(a); a != "" {
				f.Amenities = append(f.Amenities, a)
			}
		}
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	venues, page, err := h.Venues.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list venues failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"venues": venues, "pagination": page})
}

// GetByID returns one venue with its owner summary. Public.
func (h *VenueHandler) GetByID(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load venue failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"venue": v})
}

// Types lists the filterable venue types. Public.
func (h *VenueHandler) Types(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"types": model.VenueTypes()})
}

type venueReq struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	VenueType   *string  `json:"venueType"`
	Address     *string  `json:"address"`
	City        *string  `json:"city"`
	State       *string  `json:"state"`
	ZipCode     *string  `json:"zipCode"`
	Capacity    *int     `json:"capacity"`
	PriceRange  *string  `json:"priceRange"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
	// Admin-only; vendors always create under their own profile.
	VendorID *uint64 `json:"vendorId"`
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

// Create adds a venue. Vendors create venues under their own profile;
// admins may attach any vendor or none.
func (h *VenueHandler) Create(c echo.Context) error {
	var req venueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strOrEmpty(req.Name)
	address := strOrEmpty(req.Address)
	city := strOrEmpty(req.City)
	state := strOrEmpty(req.State)
	vt := model.VenueType(strings.ToUpper(strOrEmpty(req.VenueType)))
	if name == "" || address == "" || city == "" || state == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/address/city/state required"})
	}
	if !vt.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venueType"})
	}
	if req.Capacity != nil && *req.Capacity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must be positive"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	sub, err := h.Subjects.Load(ctx, c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !scope.CanCreateVenue(sub) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	v := model.Venue{
		Name:        name,
		Description: req.Description,
		VenueType:   vt,
		Address:     address,
		City:        city,
		State:       state,
		ZipCode:     req.ZipCode,
		Capacity:    req.Capacity,
		PriceRange:  req.PriceRange,
		Amenities:   req.Amenities,
		Images:      req.Images,
	}
	switch sub.Role {
	case model.RoleVendor:
		owner := sub.VendorProfileID
		v.VendorID = &owner
	case model.RoleAdmin:
		v.VendorID = req.VendorID
	}

	id, err := h.Venues.Create(ctx, &v)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create venue failed"})
	}
	created, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load venue failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"venue": created})
}

// Update applies partial changes to a venue owned by the caller.
func (h *VenueHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req venueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	upd := repository.VenueUpdate{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Capacity:    req.Capacity,
		PriceRange:  req.PriceRange,
		Amenities:   req.Amenities,
		Images:      req.Images,
	}
	if req.VenueType != nil {
		vt := model.VenueType(strings.ToUpper(strings.TrimSpace(*req.VenueType)))
		if !vt.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venueType"})
		}
		upd.VenueType = &vt
	}
	if req.Capacity != nil && *req.Capacity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must be positive"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	sub, err := h.Subjects.Load(ctx, c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load venue failed"})
	}
	if !scope.CanModifyVenue(sub, v) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := h.Venues.Update(ctx, id, upd); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update venue failed"})
	}
	updated, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load venue failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"venue": updated})
}

// Delete removes a venue. Refused while active bookings reference it.
func (h *VenueHandler) Delete(c echo.Context) error {
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
	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load venue failed"})
	}
	if !scope.CanModifyVenue(sub, v) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := h.Venues.Delete(ctx, id); err != nil {
		switch err {
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "venue has active bookings"})
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete venue failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
