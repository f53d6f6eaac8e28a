package handler

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aurora-nuptials/marketplace/internal/model"
	"github.com/aurora-nuptials/marketplace/internal/repository"
	"github.com/aurora-nuptials/marketplace/internal/scope"
	"github.com/aurora-nuptials/marketplace/internal/stats"
)

// RegistryHandler serves the couple-facing registry management and the
// public guest view with its open purchase endpoint.
type RegistryHandler struct {
	Registry *repository.RegistryRepo
	Couples  *repository.CoupleRepo
	Subjects *SubjectLoader
}

func NewRegistryHandler(r *repository.RegistryRepo, cp *repository.CoupleRepo, s *SubjectLoader) *RegistryHandler {
	if r == nil || cp == nil || s == nil {
		panic("handler: NewRegistryHandler requires non-nil dependencies")
	}
	return &RegistryHandler{Registry: r, Couples: cp, Subjects: s}
}

// loadOwner resolves the caller into the couple profile that owns the
// registry, or writes the error response and returns ok=false.
func (h *RegistryHandler) loadOwner(c echo.Context) (scope.Subject, bool) {
	ctx, cancel := dbCtx(c)
	defer cancel()

	sub, err := h.Subjects.Load(ctx, c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return scope.Subject{}, false
	}
	if !scope.CanManageRegistry(sub, sub.CoupleProfileID) {
		_ = c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		return scope.Subject{}, false
	}
	return sub, true
}

// Get returns the caller's registry, creating it on first access, with
// every item and the rollup stats.
func (h *RegistryHandler) Get(c echo.Context) error {
	sub, ok := h.loadOwner(c)
	if !ok {
		return nil
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	reg, err := h.Registry.GetOrCreate(ctx, sub.CoupleProfileID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load registry failed"})
	}
	items, err := h.Registry.ListItems(ctx, reg.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load items failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"registry": reg,
		"items":    items,
		"stats":    stats.Registry(items),
	})
}

// Stats returns just the rollup for the caller's registry.
func (h *RegistryHandler) Stats(c echo.Context) error {
	sub, ok := h.loadOwner(c)
	if !ok {
		return nil
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	reg, err := h.Registry.GetOrCreate(ctx, sub.CoupleProfileID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load registry failed"})
	}
	items, err := h.Registry.ListItems(ctx, reg.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load items failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"stats": stats.Registry(items)})
}

// Categories lists the suggested item categories. Public.
func (h *RegistryHandler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"categories": model.RegistryCategories()})
}

type itemReq struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	Category    *string  `json:"category"`
	Brand       *string  `json:"brand"`
	URL         *string  `json:"url"`
	Image       *string  `json:"image"`
	Priority    *string  `json:"priority"`
	Purchased   *bool    `json:"purchased"`
}

// AddItem puts a new gift on the caller's registry.
func (h *RegistryHandler) AddItem(c echo.Context) error {
	var req itemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strOrEmpty(req.Name)
	if name == "" || req.Price == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and price required"})
	}
	if *req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
	}
	quantity := 1
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be positive"})
		}
		quantity = *req.Quantity
	}
	var prio model.Priority
	if req.Priority == nil {
		prio = model.PriorityMedium
	} else {
		var ok bool
		prio, ok = model.ParsePriority(strings.ToUpper(strings.TrimSpace(*req.Priority)))
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid priority"})
		}
	}

	sub, ok := h.loadOwner(c)
	if !ok {
		return nil
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	reg, err := h.Registry.GetOrCreate(ctx, sub.CoupleProfileID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load registry failed"})
	}

	it := model.RegistryItem{
		RegistryID:  reg.ID,
		Name:        name,
		Description: req.Description,
		Price:       *req.Price,
		Quantity:    quantity,
		Category:    req.Category,
		Brand:       req.Brand,
		URL:         req.URL,
		Image:       req.Image,
		Priority:    prio,
	}
	id, err := h.Registry.AddItem(ctx, &it)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add item failed"})
	}
	created, _, err := h.Registry.GetItem(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load item failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": created})
}

// loadOwnedItem fetches an item and verifies the caller's registry owns
// it. Foreign items read as 404 so item ids are not enumerable.
func (h *RegistryHandler) loadOwnedItem(c echo.Context, sub scope.Subject, itemID uint64) (model.RegistryItem, bool) {
	ctx, cancel := dbCtx(c)
	defer cancel()

	it, owner, err := h.Registry.GetItem(ctx, itemID)
	if err != nil {
		if err == sql.ErrNoRows {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "load item failed"})
		}
		return model.RegistryItem{}, false
	}
	if !scope.CanManageRegistry(sub, owner) {
		_ = c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		return model.RegistryItem{}, false
	}
	return it, true
}

// UpdateItem applies partial changes to an item, including resetting a
// purchase mark.
func (h *RegistryHandler) UpdateItem(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req itemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	upd := repository.ItemUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
		Brand:       req.Brand,
		URL:         req.URL,
		Image:       req.Image,
		Purchased:   req.Purchased,
	}
	if req.Price != nil && *req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
	}
	if req.Quantity != nil && *req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be positive"})
	}
	if req.Priority != nil {
		prio, ok := model.ParsePriority(strings.ToUpper(strings.TrimSpace(*req.Priority)))
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid priority"})
		}
		upd.Priority = &prio
	}

	sub, ok := h.loadOwner(c)
	if !ok {
		return nil
	}
	if _, ok := h.loadOwnedItem(c, sub, id); !ok {
		return nil
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Registry.UpdateItem(ctx, id, upd); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update item failed"})
	}
	updated, _, err := h.Registry.GetItem(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load item failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": updated})
}

// DeleteItem removes a gift from the caller's registry.
func (h *RegistryHandler) DeleteItem(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	sub, ok := h.loadOwner(c)
	if !ok {
		return nil
	}
	if _, ok := h.loadOwnedItem(c, sub, id); !ok {
		return nil
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Registry.DeleteItem(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete item failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Public returns the guest view of a couple's registry: the couple's
// name and wedding date plus the unpurchased items grouped by category.
func (h *RegistryHandler) Public(c echo.Context) error {
	coupleID, err := parseID(c, "coupleId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	cp, err := h.Couples.GetByID(ctx, coupleID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "registry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load couple failed"})
	}
	reg, err := h.Registry.Get(ctx, coupleID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "registry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load registry failed"})
	}
	items, err := h.Registry.ListUnpurchased(ctx, reg.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load items failed"})
	}

	grouped := map[string][]model.RegistryItem{}
	for _, it := range items {
		key := "Other"
		if it.Category != nil && *it.Category != "" {
			key = *it.Category
		}
		grouped[key] = append(grouped[key], it)
	}

	var weddingDate *string
	if cp.WeddingDate != nil {
		d := cp.WeddingDate.Format("2006-01-02")
		weddingDate = &d
	}
	return c.JSON(http.StatusOK, echo.Map{
		"coupleName":  cp.UserName,
		"weddingDate": weddingDate,
		"items":       grouped,
	})
}

type purchaseReq struct {
	PurchasedBy string  `json:"purchasedBy"`
	Message     *string `json:"message"`
}

// Purchase marks an item bought. Open to guests; first writer wins and a
// second attempt reads as already purchased.
func (h *RegistryHandler) Purchase(c echo.Context) error {
	id, err := parseID(c, "itemId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req purchaseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.PurchasedBy = strings.TrimSpace(req.PurchasedBy)
	if req.PurchasedBy == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "purchasedBy required"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	it, err := h.Registry.MarkPurchased(ctx, id, req.PurchasedBy, req.Message)
	if err != nil {
		switch err {
		case repository.ErrAlreadyPurchased:
			return c.JSON(http.StatusConflict, echo.Map{"error": "item already purchased"})
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "purchase failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": it})
}
